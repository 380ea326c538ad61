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
	"errors"
	"time"

	"github.com/ego-component/egorm"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrSettingNotFound = gorm.ErrRecordNotFound

type SettingDAO interface {
	FindByKey(ctx context.Context, key string) (Setting, error)
	Upsert(ctx context.Context, s Setting) error
}

type settingDAO struct {
	db *egorm.Component
}

func NewSettingGORMDAO(db *egorm.Component) SettingDAO {
	return &settingDAO{db: db}
}

func (g *settingDAO) FindByKey(ctx context.Context, key string) (Setting, error) {
	var res Setting
	err := g.db.WithContext(ctx).First(&res, "`key` = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Setting{}, ErrSettingNotFound
	}
	return res, err
}

func (g *settingDAO) Upsert(ctx context.Context, s Setting) error {
	now := time.Now().UnixMilli()
	s.Ctime, s.Utime = now, now
	return g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]any{
			"value": s.Value,
			"utime": now,
		}),
	}).Create(&s).Error
}

func InitTables(db *egorm.Component) error {
	return db.AutoMigrate(&Setting{})
}

type Setting struct {
	Id    int64  `gorm:"primaryKey;autoIncrement;comment:配置自增ID"`
	Key   string `gorm:"type:varchar(128);not null;uniqueIndex:uniq_setting_key;comment:配置键"`
	Value string `gorm:"type:text;not null;comment:配置值,JSON或纯文本"`
	Ctime int64
	Utime int64
}
