package server

import (
	"context"
	"strconv"

	"wellrng/internal/biz"
	"wellrng/internal/conf"
	"wellrng/internal/service"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/logging"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"
)

// NewHTTPServer 创建 HTTP 查询接口
//
//	GET  /v1/variants
//	GET  /v1/results?variant=&limit=
//	POST /v1/verify/{name}?iterations=
//	POST /v1/jobs/{name}?iterations=
func NewHTTPServer(c *conf.Server, svc *service.VerifyService, logger log.Logger) *http.Server {
	var opts = []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
			logging.Server(logger),
		),
	}
	if c.GetHttp().GetNetwork() != "" {
		opts = append(opts, http.Network(c.GetHttp().GetNetwork()))
	}
	if c.GetHttp().GetAddr() != "" {
		opts = append(opts, http.Address(c.GetHttp().GetAddr()))
	}
	if c.GetHttp().GetTimeout() > 0 {
		opts = append(opts, http.Timeout(c.GetHttp().GetTimeout()))
	}
	srv := http.NewServer(opts...)
	registerVerifyRoutes(srv, svc)
	return srv
}

func registerVerifyRoutes(srv *http.Server, svc *service.VerifyService) {
	r := srv.Route("/v1")

	r.GET("/variants", func(ctx http.Context) error {
		return invoke(ctx, func(c context.Context) (interface{}, error) {
			return svc.ListVariants(c), nil
		})
	})

	r.GET("/results", func(ctx http.Context) error {
		q := ctx.Query()
		limit := 0
		if s := q.Get("limit"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil {
				return errors.BadRequest("INVALID_LIMIT", "limit must be an integer")
			}
			limit = n
		}
		variant := q.Get("variant")
		return invoke(ctx, func(c context.Context) (interface{}, error) {
			return svc.ListResults(c, variant, limit)
		})
	})

	r.POST("/verify/{name}", func(ctx http.Context) error {
		iterations, err := iterationsParam(ctx)
		if err != nil {
			return err
		}
		name := ctx.Vars().Get("name")
		return invoke(ctx, func(c context.Context) (interface{}, error) {
			return svc.Verify(c, name, iterations)
		})
	})

	r.POST("/jobs/{name}", func(ctx http.Context) error {
		iterations, err := iterationsParam(ctx)
		if err != nil {
			return err
		}
		name := ctx.Vars().Get("name")
		return invoke(ctx, func(c context.Context) (interface{}, error) {
			return svc.Enqueue(c, name, iterations)
		})
	})
}

// invoke 让手写路由也经过服务端中间件
func invoke(ctx http.Context, fn func(context.Context) (interface{}, error)) error {
	h := ctx.Middleware(func(c context.Context, _ interface{}) (interface{}, error) {
		return fn(c)
	})
	out, err := h(ctx, nil)
	if err != nil {
		return err
	}
	return ctx.Result(200, out)
}

func iterationsParam(ctx http.Context) (uint64, error) {
	s := ctx.Query().Get("iterations")
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, biz.ErrInvalidIterations.WithCause(err)
	}
	return n, nil
}
