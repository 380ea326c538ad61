// Code generated by Wire. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package cart

import (
	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/mall/internal/cart/internal/repository"
	"github.com/ecodeclub/mall/internal/cart/internal/repository/cache"
	"github.com/ecodeclub/mall/internal/cart/internal/service"
	"github.com/ecodeclub/mall/internal/cart/internal/web"
	"github.com/ecodeclub/mall/internal/product"
	"github.com/google/wire"
)

// Injectors from wire.go:

func InitModule(ec ecache.Cache, productModule *product.Module) *Module {
	cartCache := cache.NewCartECache(ec)
	cartRepository := repository.NewCartRepository(cartCache)
	v := productModule.Svc
	serviceService := service.NewService(cartRepository, v)
	v2 := web.NewHandler(serviceService)
	module := &Module{
		Hdl: v2,
		Svc: serviceService,
	}
	return module
}

// wire.go:

var ModuleSet = wire.NewSet(cache.NewCartECache, repository.NewCartRepository, service.NewService, web.NewHandler, wire.Struct(new(Module), "*"))
