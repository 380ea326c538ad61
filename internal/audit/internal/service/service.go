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

package service

import (
	"context"
	"time"

	"github.com/ecodeclub/mall/internal/audit/internal/domain"
	"github.com/ecodeclub/mall/internal/audit/internal/event"
	"github.com/ecodeclub/mall/internal/audit/internal/repository"
	"github.com/gotomicro/ego/core/elog"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -source=./service.go -destination=../../mocks/audit.mock.go -package=auditmocks -typed Service
type Service interface {
	// Record 追加一条审计记录。发送失败只记日志,
	// 审计写入永远不会让业务操作回滚
	Record(ctx context.Context, entry domain.Entry)
	List(ctx context.Context, offset, limit int) ([]domain.Entry, int64, error)
}

func NewService(producer event.AuditEventProducer, repo repository.AuditRepository) Service {
	return &service{
		producer: producer,
		repo:     repo,
		logger:   elog.DefaultLogger,
	}
}

type service struct {
	producer event.AuditEventProducer
	repo     repository.AuditRepository
	logger   *elog.Component
}

func (s *service) Record(ctx context.Context, entry domain.Entry) {
	evt := event.AuditEvent{
		Action:       entry.Action,
		ActorID:      entry.Actor.ID,
		ActorType:    string(entry.Actor.Type),
		ActorName:    entry.Actor.Name,
		ResourceType: entry.ResourceType,
		ResourceID:   entry.ResourceID,
		ResourceName: entry.ResourceName,
		Details:      entry.Details,
		OccurredAt:   time.Now().UnixMilli(),
	}
	go func() {
		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 3*time.Second)
		defer cancel()
		if err := s.producer.Produce(sendCtx, evt); err != nil {
			s.logger.Error("发送审计事件失败",
				elog.FieldErr(err),
				elog.String("action", entry.Action),
				elog.String("resource_id", entry.ResourceID))
		}
	}()
}

func (s *service) List(ctx context.Context, offset, limit int) ([]domain.Entry, int64, error) {
	var (
		eg      errgroup.Group
		entries []domain.Entry
		total   int64
	)
	eg.Go(func() error {
		var err error
		entries, err = s.repo.List(ctx, offset, limit)
		return err
	})
	eg.Go(func() error {
		var err error
		total, err = s.repo.Total(ctx)
		return err
	})
	return entries, total, eg.Wait()
}
