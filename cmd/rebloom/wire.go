//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package main

import (
	"rebloom/internal/biz"
	"rebloom/internal/conf"
	"rebloom/internal/data"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"
)

// wireApp init the filter usecase.
func wireApp(*conf.Data, log.Logger) (*biz.FilterUsecase, func(), error) {
	panic(wire.Build(data.ProviderSet, biz.ProviderSet))
}
