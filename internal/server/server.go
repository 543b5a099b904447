package server

import (
	"wellrng/internal/conf"
	"wellrng/internal/service"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/transport"
	"github.com/google/wire"
)

// ProviderSet is server providers.
var ProviderSet = wire.NewSet(
	NewGRPCServer,
	NewHTTPServer,
	NewRedisServer,
	NewVerifyStreamServers,
)

// NewVerifyStreamServers 创建校验任务消费者；Redis 不可用时不消费
func NewVerifyStreamServers(
	c *conf.Verify,
	rs *RedisServer,
	svc *service.VerifyService,
	logger log.Logger,
) []transport.Server {
	helper := log.NewHelper(logger)

	if rs.Client() == nil {
		helper.Warn("redis not available, skip verify stream server")
		return nil
	}

	server := NewVerifyStreamServer(rs.Client(), c.GetStream(), svc, logger)
	helper.Infof("created verify stream server: stream=%s", c.GetStream().GetKey())
	return []transport.Server{server}
}
