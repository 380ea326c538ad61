// Code generated by Wire. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package ioc

import (
	"github.com/ecodeclub/mall/internal/audit"
	"github.com/ecodeclub/mall/internal/cart"
	"github.com/ecodeclub/mall/internal/inventory"
	"github.com/ecodeclub/mall/internal/notification"
	"github.com/ecodeclub/mall/internal/order"
	"github.com/ecodeclub/mall/internal/payment"
	"github.com/ecodeclub/mall/internal/pricing"
	"github.com/ecodeclub/mall/internal/product"
	"github.com/ecodeclub/mall/internal/settings"
	"github.com/google/wire"
)

// Injectors from wire.go:

func InitApp() (*App, error) {
	cmdable := InitRedis()
	provider := InitSession(cmdable)
	v := InitDB()
	module := product.InitModule(v)
	v2 := module.Hdl
	cache := InitCache(cmdable)
	cartModule := cart.InitModule(cache, module)
	v3 := cartModule.Hdl
	mq := InitMQ()
	settingsModule := settings.InitModule(v, cache)
	pricingModule := pricing.InitModule(settingsModule)
	auditModule, err := audit.InitModule(v, mq)
	if err != nil {
		return nil, err
	}
	inventoryModule := inventory.InitModule(v, auditModule, settingsModule)
	node := InitSnowflakeNode()
	paymentModule := payment.InitModule(v, mq, node)
	service := InitEmailService()
	v4 := settingsModule.Svc
	notificationModule, err := notification.InitModule(mq, service, v4)
	if err != nil {
		return nil, err
	}
	orderModule := order.InitModule(v, mq, cartModule, pricingModule, inventoryModule, paymentModule, notificationModule, auditModule)
	v5 := orderModule.Hdl
	v6 := paymentModule.WechatHdl
	component := initGinxServer(provider, v2, v3, v5, v6)
	v7 := orderModule.AdminHdl
	v8 := inventoryModule.AdminHdl
	v9 := settingsModule.AdminHdl
	v10 := auditModule.AdminHdl
	adminServer := InitAdminServer(v7, v8, v9, v10)
	v11 := orderModule.Svc
	v12 := initCronJobs(v11)
	v13 := initConsumers(orderModule)
	app := &App{
		Web:       component,
		Admin:     adminServer,
		Crons:     v12,
		Consumers: v13,
	}
	return app, nil
}

// wire.go:

var BaseSet = wire.NewSet(InitDB, InitCache, InitRedis, InitMQ,
	InitSnowflakeNode, InitEmailService)

func initConsumers(orderModule *order.Module) []Consumer {

	return []Consumer{orderModule.C}
}
