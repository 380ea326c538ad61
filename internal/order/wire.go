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

package order

import (
	"sync"

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
)

var ModuleSet = wire.NewSet(
	InitTablesOnce,
	repository.NewOrderRepository,
	ordercode.NewGenerator,
	service.NewService,
	initConsumer,
	web.NewHandler,
	web.NewAdminHandler,
	wire.Struct(new(Module), "*"))

func InitModule(db *egorm.Component,
	q mq.MQ,
	cartModule *cart.Module,
	pricingModule *pricing.Module,
	inventoryModule *inventory.Module,
	paymentModule *payment.Module,
	notificationModule *notification.Module,
	auditModule *audit.Module) *Module {
	wire.Build(
		ModuleSet,
		wire.FieldsOf(new(*cart.Module), "Svc"),
		wire.FieldsOf(new(*pricing.Module), "Svc"),
		wire.FieldsOf(new(*inventory.Module), "Svc"),
		wire.FieldsOf(new(*payment.Module), "Svc"),
		wire.FieldsOf(new(*notification.Module), "Svc"),
		wire.FieldsOf(new(*audit.Module), "Svc"),
	)
	return new(Module)
}

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
