//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package main

import (
	"wellrng/internal/biz"
	"wellrng/internal/conf"
	"wellrng/internal/data"
	"wellrng/internal/server"
	"wellrng/internal/service"

	"github.com/go-kratos/kratos/v2"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"
)

// wireApp init kratos application.
func wireApp(*conf.Server, *conf.Data, *conf.Verify, log.Logger) (*kratos.App, func(), error) {
	panic(wire.Build(server.ProviderSet, data.ProviderSet, biz.ProviderSet, service.ProviderSet, newApp))
}

// wireVerifier init the verify usecase for one-shot runs.
func wireVerifier(*conf.Data, *conf.Verify, log.Logger) (*biz.VerifyUsecase, func(), error) {
	panic(wire.Build(data.ProviderSet, biz.ProviderSet))
}
