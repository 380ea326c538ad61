// Code generated by Wire. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package inventory

import (
	"github.com/ecodeclub/mall/internal/audit"
	"github.com/ecodeclub/mall/internal/inventory/internal/repository"
	"github.com/ecodeclub/mall/internal/inventory/internal/repository/dao"
	"github.com/ecodeclub/mall/internal/inventory/internal/service"
	"github.com/ecodeclub/mall/internal/inventory/internal/web"
	"github.com/ecodeclub/mall/internal/settings"
	"github.com/ego-component/egorm"
	"github.com/google/wire"
	"sync"
)

// Injectors from wire.go:

func InitModule(db *egorm.Component, auditModule *audit.Module, settingsModule *settings.Module) *Module {
	inventoryDAO := InitTablesOnce(db)
	inventoryRepository := repository.NewInventoryRepository(inventoryDAO)
	v := auditModule.Svc
	v2 := settingsModule.Svc
	serviceService := service.NewService(inventoryRepository, v, v2)
	v3 := web.NewAdminHandler(serviceService)
	module := &Module{
		AdminHdl: v3,
		Svc:      serviceService,
	}
	return module
}

// wire.go:

var ModuleSet = wire.NewSet(
	InitTablesOnce, repository.NewInventoryRepository, service.NewService, web.NewAdminHandler, wire.Struct(new(Module), "*"))

var once = &sync.Once{}

func InitTablesOnce(db *egorm.Component) dao.InventoryDAO {
	once.Do(func() {
		_ = dao.InitTables(db)
	})
	return dao.NewInventoryGORMDAO(db)
}
