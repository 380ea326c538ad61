// Code generated by Wire. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package order

import (
	"github.com/ecodeclub/mall/internal/audit"
	"github.com/ecodeclub/mall/internal/cart"
	"github.com/ecodeclub/mall/internal/inventory"
	"github.com/ecodeclub/mall/internal/notification"
	"github.com/ecodeclub/mall/internal/order/internal/event"
	"github.com/ecodeclub/mall/internal/order/internal/repository"
	"github.com/ecodeclub/mall/internal/order/internal/repository/dao"
	"github.com/ecodeclub/mall/internal/order/internal/service"
	"github.com/ecodeclub/mall/internal/order/internal/web"
	"github.com/ecodeclub/mall/internal/payment"
	"github.com/ecodeclub/mall/internal/pkg/ordercode"
	"github.com/ecodeclub/mall/internal/pricing"
	"github.com/ecodeclub/mq-api"
	"github.com/ego-component/egorm"
	"github.com/google/wire"
	"sync"
)

// Injectors from wire.go:

func InitModule(db *egorm.Component, q mq.MQ, cartModule *cart.Module, pricingModule *pricing.Module, inventoryModule *inventory.Module, paymentModule *payment.Module, notificationModule *notification.Module, auditModule *audit.Module) *Module {
	orderDAO := InitTablesOnce(db)
	orderRepository := repository.NewOrderRepository(orderDAO)
	v := cartModule.Svc
	v2 := pricingModule.Svc
	v3 := inventoryModule.Svc
	v4 := paymentModule.Svc
	v5 := notificationModule.Svc
	v6 := auditModule.Svc
	generator := ordercode.NewGenerator()
	serviceService := service.NewService(orderRepository, v, v2, v3, v4, v5, v6, generator)
	v7 := web.NewHandler(serviceService)
	v8 := web.NewAdminHandler(serviceService)
	v9 := initConsumer(serviceService, q)
	module := &Module{
		Hdl:      v7,
		AdminHdl: v8,
		Svc:      serviceService,
		C:        v9,
	}
	return module
}

// wire.go:

var ModuleSet = wire.NewSet(
	InitTablesOnce, repository.NewOrderRepository, ordercode.NewGenerator, service.NewService, initConsumer, web.NewHandler, web.NewAdminHandler, wire.Struct(new(Module), "*"))

func initConsumer(svc service.Service, q mq.MQ) *event.PaymentEventConsumer {
	consumer, err := event.NewPaymentEventConsumer(svc, q)
	if err != nil {
		panic(err)
	}
	return consumer
}

var once = &sync.Once{}

func InitTablesOnce(db *egorm.Component) dao.OrderDAO {
	once.Do(func() {
		_ = dao.InitTables(db)
	})
	return dao.NewOrderGORMDAO(db)
}
