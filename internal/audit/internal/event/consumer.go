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

package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ecodeclub/mall/internal/audit/internal/domain"
	"github.com/ecodeclub/mall/internal/audit/internal/repository"
	"github.com/ecodeclub/mq-api"
	"github.com/gotomicro/ego/core/elog"
)

type AuditLogConsumer struct {
	repo     repository.AuditRepository
	consumer mq.Consumer
	logger   *elog.Component
}

func NewAuditLogConsumer(repo repository.AuditRepository, q mq.MQ) (*AuditLogConsumer, error) {
	const groupID = "audit"
	consumer, err := q.Consumer(AuditEventName, groupID)
	if err != nil {
		return nil, err
	}
	return &AuditLogConsumer{
		repo:     repo,
		consumer: consumer,
		logger:   elog.DefaultLogger,
	}, nil
}

func (c *AuditLogConsumer) Start(ctx context.Context) {
	go func() {
		for {
			err := c.Consume(ctx)
			if err != nil {
				c.logger.Error("消费审计事件失败", elog.FieldErr(err))
			}
		}
	}()
}

func (c *AuditLogConsumer) Consume(ctx context.Context) error {
	msg, err := c.consumer.Consume(ctx)
	if err != nil {
		return fmt.Errorf("获取消息失败: %w", err)
	}

	var evt AuditEvent
	err = json.Unmarshal(msg.Value, &evt)
	if err != nil {
		return fmt.Errorf("解析消息失败: %w", err)
	}

	return c.repo.Create(ctx, domain.Entry{
		Action: evt.Action,
		Actor: domain.Actor{
			ID:   evt.ActorID,
			Type: domain.ActorType(evt.ActorType),
			Name: evt.ActorName,
		},
		ResourceType: evt.ResourceType,
		ResourceID:   evt.ResourceID,
		ResourceName: evt.ResourceName,
		Details:      evt.Details,
		Ctime:        evt.OccurredAt,
	})
}
