// Code generated by Wire. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package pricing

import (
	"github.com/ecodeclub/mall/internal/pricing/internal/service"
	"github.com/ecodeclub/mall/internal/settings"
	"github.com/google/wire"
)

// Injectors from wire.go:

func InitModule(settingsModule *settings.Module) *Module {
	v := settingsModule.Svc
	v2 := service.NewService(v)
	module := &Module{
		Svc: v2,
	}
	return module
}

// wire.go:

var ModuleSet = wire.NewSet(service.NewService, wire.Struct(new(Module), "*"))
