// Copyright 2023 ecodeclub
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

//go:build wireinject

package payment

import (
	"sync"

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
)

var ModuleSet = wire.NewSet(
	InitTablesOnce,
	initProducer,
	repository.NewPaymentRepository,
	ioc.InitWechatConfig,
	ioc.InitRefundService,
	ioc.InitWechatNotifyHandler,
	wire.Bind(new(service.Gateway), new(*wechat.RefundService)),
	service.NewService,
	web.NewWechatHandler,
	wire.Struct(new(Module), "*"))

func InitModule(db *egorm.Component, q mq.MQ, node *snowflake.Node) *Module {
	wire.Build(ModuleSet)
	return new(Module)
}

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
