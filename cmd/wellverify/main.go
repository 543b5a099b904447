package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"wellrng/internal/biz"
	"wellrng/internal/conf"
	"wellrng/internal/server"

	"github.com/go-kratos/kratos/v2"
	"github.com/go-kratos/kratos/v2/config"
	"github.com/go-kratos/kratos/v2/config/file"
	_ "github.com/go-kratos/kratos/v2/encoding/yaml"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/transport"
	"github.com/go-kratos/kratos/v2/transport/grpc"
	"github.com/go-kratos/kratos/v2/transport/http"
	_ "go.uber.org/automaxprocs"
)

// go build -ldflags "-X main.Version=x.y.z"
var (
	// Name is the name of the compiled software.
	Name = "wellverify"
	// Version is the version of the compiled software.
	Version string

	flagconf    string
	flagvariant string
	flagn       uint64
	flagserve   bool

	id, _ = os.Hostname()
)

func init() {
	flag.StringVar(&flagconf, "conf", "../../configs", "config path, eg: -conf config.yaml")
	flag.StringVar(&flagvariant, "variant", "", "comma separated variants, empty means all configured")
	flag.Uint64Var(&flagn, "n", 0, "iterations per variant, 0 means configured value")
	flag.BoolVar(&flagserve, "serve", false, "run HTTP/gRPC servers and consume verify jobs")
}

func newApp(logger log.Logger, gs *grpc.Server, hs *http.Server, rs *server.RedisServer, streams []transport.Server) *kratos.App {
	servers := []transport.Server{gs, hs}
	if rs != nil {
		servers = append(servers, rs)
	}
	servers = append(servers, streams...)

	return kratos.New(
		kratos.ID(id),
		kratos.Name(Name),
		kratos.Version(Version),
		kratos.Metadata(map[string]string{}),
		kratos.Logger(logger),
		kratos.Server(servers...),
	)
}

func main() {
	flag.Parse()
	logger := log.With(log.NewStdLogger(os.Stdout),
		"ts", log.DefaultTimestamp,
		"caller", log.DefaultCaller,
		"service.id", id,
		"service.name", Name,
		"service.version", Version,
	)

	c := config.New(
		config.WithSource(
			file.NewSource(flagconf),
		),
	)
	defer c.Close()

	if err := c.Load(); err != nil {
		panic(err)
	}

	var bc conf.Bootstrap
	if err := c.Scan(&bc); err != nil {
		panic(err)
	}

	if flagserve {
		app, cleanup, err := wireApp(bc.Server, bc.Data, bc.Verify, logger)
		if err != nil {
			panic(err)
		}
		defer cleanup()

		// start and wait for stop signal
		if err := app.Run(); err != nil {
			panic(err)
		}
		return
	}

	uc, cleanup, err := wireVerifier(bc.Data, bc.Verify, logger)
	if err != nil {
		panic(err)
	}
	failed := runOnce(uc, splitVariants(flagvariant), flagn)
	cleanup()
	if failed {
		os.Exit(1)
	}
}

func splitVariants(s string) []string {
	var out []string
	for _, name := range strings.Split(s, ",") {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}
	return out
}

// runOnce 一次性校验，逐行输出结果，返回是否存在失败
func runOnce(uc *biz.VerifyUsecase, names []string, iterations uint64) bool {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	results, err := uc.VerifyAll(ctx, names, iterations)
	if err != nil {
		fmt.Fprintf(os.Stderr, "verify: %v\n", err)
		return true
	}

	failed := false
	for _, r := range results {
		status := "ok"
		switch {
		case !r.Passed:
			status = "FAIL"
			failed = true
		case !r.Reference:
			status = "ok (no reference at this length)"
		}
		fmt.Printf("%-12s r=%-5d n=%-10d last=%#08x expected=%#08x %s\n",
			r.Variant, r.StateSize, r.Iterations, r.Last, r.Expected, status)
	}
	return failed
}
