// Code generated by Wire. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package audit

import (
	"context"
	"github.com/ecodeclub/mall/internal/audit/internal/event"
	"github.com/ecodeclub/mall/internal/audit/internal/repository"
	"github.com/ecodeclub/mall/internal/audit/internal/repository/dao"
	"github.com/ecodeclub/mall/internal/audit/internal/service"
	"github.com/ecodeclub/mall/internal/audit/internal/web"
	"github.com/ecodeclub/mq-api"
	"github.com/ego-component/egorm"
	"sync"
)

// Injectors from wire.go:

func InitModule(db *egorm.Component, q mq.MQ) (*Module, error) {
	auditEventProducer := initProducer(q)
	auditLogDAO := InitTablesOnce(db)
	auditRepository := repository.NewRepository(auditLogDAO)
	serviceService := service.NewService(auditEventProducer, auditRepository)
	v := web.NewAdminHandler(serviceService)
	v2 := initConsumer(auditRepository, q)
	module := &Module{
		AdminHdl: v,
		Svc:      serviceService,
		C:        v2,
	}
	return module, nil
}

// wire.go:

var once = &sync.Once{}

func InitTablesOnce(db *egorm.Component) dao.AuditLogDAO {
	once.Do(func() {
		_ = dao.InitTables(db)
	})
	return dao.NewAuditLogGORMDAO(db)
}

func initProducer(q mq.MQ) event.AuditEventProducer {
	p, err := event.NewAuditEventProducer(q)
	if err != nil {
		panic(err)
	}
	return p
}

func initConsumer(repo repository.AuditRepository, q mq.MQ) *event.AuditLogConsumer {
	c, err := event.NewAuditLogConsumer(repo, q)
	if err != nil {
		panic(err)
	}
	c.Start(context.Background())
	return c
}
