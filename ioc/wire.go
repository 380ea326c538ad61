//go:build wireinject

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

var BaseSet = wire.NewSet(InitDB, InitCache, InitRedis, InitMQ,
	InitSnowflakeNode, InitEmailService)

func InitApp() (*App, error) {
	wire.Build(wire.Struct(new(App), "*"),
		BaseSet,
		settings.InitModule,
		product.InitModule,
		audit.InitModule,
		notification.InitModule,
		inventory.InitModule,
		cart.InitModule,
		pricing.InitModule,
		payment.InitModule,
		order.InitModule,
		wire.FieldsOf(new(*settings.Module), "Svc", "AdminHdl"),
		wire.FieldsOf(new(*product.Module), "Hdl"),
		wire.FieldsOf(new(*audit.Module), "AdminHdl"),
		wire.FieldsOf(new(*inventory.Module), "AdminHdl"),
		wire.FieldsOf(new(*cart.Module), "Hdl"),
		wire.FieldsOf(new(*payment.Module), "WechatHdl"),
		wire.FieldsOf(new(*order.Module), "Hdl", "AdminHdl", "Svc"),
		initConsumers,
		initCronJobs,
		InitSession,
		initGinxServer,
		InitAdminServer)
	return new(App), nil
}

func initConsumers(orderModule *order.Module) []Consumer {
	// 审计与通知的消费者在各自模块装配时已经启动,
	// 这里只挂订单的支付结果消费者
	return []Consumer{orderModule.C}
}
