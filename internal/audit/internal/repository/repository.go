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

package repository

import (
	"context"
	"encoding/json"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/mall/internal/audit/internal/domain"
	"github.com/ecodeclub/mall/internal/audit/internal/repository/dao"
)

type AuditRepository interface {
	Create(ctx context.Context, entry domain.Entry) error
	List(ctx context.Context, offset, limit int) ([]domain.Entry, error)
	Total(ctx context.Context) (int64, error)
}

func NewRepository(d dao.AuditLogDAO) AuditRepository {
	return &auditRepository{d: d}
}

type auditRepository struct {
	d dao.AuditLogDAO
}

func (r *auditRepository) Create(ctx context.Context, entry domain.Entry) error {
	_, err := r.d.Create(ctx, r.toEntity(entry))
	return err
}

func (r *auditRepository) List(ctx context.Context, offset, limit int) ([]domain.Entry, error) {
	logs, err := r.d.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	return slice.Map(logs, func(idx int, src dao.AuditLog) domain.Entry {
		return r.toDomain(src)
	}), nil
}

func (r *auditRepository) Total(ctx context.Context) (int64, error) {
	return r.d.Count(ctx)
}

func (r *auditRepository) toEntity(entry domain.Entry) dao.AuditLog {
	var details string
	if len(entry.Details) > 0 {
		data, err := json.Marshal(entry.Details)
		if err == nil {
			details = string(data)
		}
	}
	return dao.AuditLog{
		Action:       entry.Action,
		ActorId:      entry.Actor.ID,
		ActorType:    string(entry.Actor.Type),
		ActorName:    entry.Actor.Name,
		ResourceType: entry.ResourceType,
		ResourceId:   entry.ResourceID,
		ResourceName: entry.ResourceName,
		Details:      details,
		Ctime:        entry.Ctime,
	}
}

func (r *auditRepository) toDomain(l dao.AuditLog) domain.Entry {
	var details map[string]string
	if l.Details != "" {
		_ = json.Unmarshal([]byte(l.Details), &details)
	}
	return domain.Entry{
		ID:     l.Id,
		Action: l.Action,
		Actor: domain.Actor{
			ID:   l.ActorId,
			Type: domain.ActorType(l.ActorType),
			Name: l.ActorName,
		},
		ResourceType: l.ResourceType,
		ResourceID:   l.ResourceId,
		ResourceName: l.ResourceName,
		Details:      details,
		Ctime:        l.Ctime,
	}
}
