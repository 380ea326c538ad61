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

package dao

import (
	"context"
	"time"

	"github.com/ego-component/egorm"
)

type AuditLogDAO interface {
	Create(ctx context.Context, l AuditLog) (int64, error)
	List(ctx context.Context, offset, limit int) ([]AuditLog, error)
	Count(ctx context.Context) (int64, error)
}

type auditLogDAO struct {
	db *egorm.Component
}

func NewAuditLogGORMDAO(db *egorm.Component) AuditLogDAO {
	return &auditLogDAO{db: db}
}

func (g *auditLogDAO) Create(ctx context.Context, l AuditLog) (int64, error) {
	if l.Ctime == 0 {
		l.Ctime = time.Now().UnixMilli()
	}
	err := g.db.WithContext(ctx).Create(&l).Error
	return l.Id, err
}

func (g *auditLogDAO) List(ctx context.Context, offset, limit int) ([]AuditLog, error) {
	var res []AuditLog
	err := g.db.WithContext(ctx).
		Offset(offset).Limit(limit).
		Order("id DESC").
		Find(&res).Error
	return res, err
}

func (g *auditLogDAO) Count(ctx context.Context) (int64, error) {
	var res int64
	err := g.db.WithContext(ctx).Model(&AuditLog{}).Count(&res).Error
	return res, err
}

func InitTables(db *egorm.Component) error {
	return db.AutoMigrate(&AuditLog{})
}

type AuditLog struct {
	Id           int64  `gorm:"primaryKey;autoIncrement;comment:审计日志自增ID"`
	Action       string `gorm:"type:varchar(128);not null;index:idx_action;comment:动作"`
	ActorId      int64  `gorm:"not null;index:idx_actor_id;comment:操作者ID"`
	ActorType    string `gorm:"type:varchar(32);not null;comment:操作者类型 customer/admin/system"`
	ActorName    string `gorm:"type:varchar(128);not null;comment:操作者名称"`
	ResourceType string `gorm:"type:varchar(64);not null;index:idx_resource,priority:1;comment:资源类型"`
	ResourceId   string `gorm:"type:varchar(64);not null;index:idx_resource,priority:2;comment:资源ID"`
	ResourceName string `gorm:"type:varchar(255);not null;comment:资源名称"`
	Details      string `gorm:"type:text;comment:结构化明细,JSON"`
	Ctime        int64
}
