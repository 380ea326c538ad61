// Code generated by Wire. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package payment

import (
	"github.com/bwmarrin/snowflake"
	"github.com/ecodeclub/mall/internal/payment/internal/event"
	"github.com/ecodeclub/mall/internal/payment/internal/repository"
	"github.com/ecodeclub/mall/internal/payment/internal/repository/dao"
	"github.com/ecodeclub/mall/internal/payment/internal/service"
	"github.com/ecodeclub/mall/internal/payment/internal/service/wechat"
	"github.com/ecodeclub/mall/internal/payment/internal/web"
	"github.com/ecodeclub/mall/internal/payment/ioc"
	"github.com/ecodeclub/mq-api"
	"github.com/ego-component/egorm"
	"github.com/google/wire"
	"sync"
)

// Injectors from wire.go:

func InitModule(db *egorm.Component, q mq.MQ, node *snowflake.Node) *Module {
	wechatConfig := ioc.InitWechatConfig()
	handler := ioc.InitWechatNotifyHandler(wechatConfig)
	paymentDAO := InitTablesOnce(db)
	paymentRepository := repository.NewPaymentRepository(paymentDAO)
	refundService := ioc.InitRefundService(wechatConfig)
	paymentEventProducer := initProducer(q)
	serviceService := service.NewService(paymentRepository, refundService, paymentEventProducer, node)
	v := web.NewWechatHandler(handler, serviceService)
	module := &Module{
		WechatHdl: v,
		Svc:       serviceService,
	}
	return module
}

// wire.go:

var ModuleSet = wire.NewSet(
	InitTablesOnce,
	initProducer, repository.NewPaymentRepository, ioc.InitWechatConfig, ioc.InitRefundService, ioc.InitWechatNotifyHandler, wire.Bind(new(service.Gateway), new(*wechat.RefundService)), service.NewService, web.NewWechatHandler, wire.Struct(new(Module), "*"))

func initProducer(q mq.MQ) event.PaymentEventProducer {
	producer, err := event.NewPaymentEventProducer(q)
	if err != nil {
		panic(err)
	}
	return producer
}

var once = &sync.Once{}

func InitTablesOnce(db *egorm.Component) dao.PaymentDAO {
	once.Do(func() {
		_ = dao.InitTables(db)
	})
	return dao.NewPaymentGORMDAO(db)
}
