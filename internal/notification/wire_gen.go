// Code generated by Wire. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package notification

import (
	"context"
	"github.com/ecodeclub/mall/internal/email"
	"github.com/ecodeclub/mall/internal/notification/internal/event"
	"github.com/ecodeclub/mall/internal/notification/internal/service"
	"github.com/ecodeclub/mall/internal/settings"
	"github.com/ecodeclub/mq-api"
)

// Injectors from wire.go:

func InitModule(q mq.MQ, emailSvc email.Service, settingsSvc settings.Service) (*Module, error) {
	notificationEventProducer := initProducer(q)
	v := service.NewService(notificationEventProducer)
	v2 := initConsumer(emailSvc, settingsSvc, q)
	module := &Module{
		Svc: v,
		C:   v2,
	}
	return module, nil
}

// wire.go:

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
