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

package notification

import (
	"context"

	"github.com/ecodeclub/mall/internal/email"
	"github.com/ecodeclub/mall/internal/notification/internal/event"
	"github.com/ecodeclub/mall/internal/notification/internal/service"
	"github.com/ecodeclub/mall/internal/settings"
	"github.com/ecodeclub/mq-api"
	"github.com/google/wire"
)

func InitModule(q mq.MQ, emailSvc email.Service, settingsSvc settings.Service) (*Module, error) {
	wire.Build(
		initProducer,
		initConsumer,
		service.NewService,
		wire.Struct(new(Module), "*"))
	return new(Module), nil
}

func initProducer(q mq.MQ) event.NotificationEventProducer {
	p, err := event.NewNotificationEventProducer(q)
	if err != nil {
		panic(err)
	}
	return p
}

func initConsumer(emailSvc email.Service, settingsSvc settings.Service, q mq.MQ) *event.EmailNotificationConsumer {
	c, err := event.NewEmailNotificationConsumer(emailSvc, settingsSvc, q)
	if err != nil {
		panic(err)
	}
	c.Start(context.Background())
	return c
}
