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

	"github.com/ecodeclub/mall/internal/settings/internal/domain"
	"github.com/ecodeclub/mall/internal/settings/internal/repository/cache"
	"github.com/ecodeclub/mall/internal/settings/internal/repository/dao"
	"github.com/gotomicro/ego/core/elog"
)

var ErrSettingNotFound = dao.ErrSettingNotFound

type SettingRepository interface {
	Get(ctx context.Context, key string) (domain.Setting, error)
	Set(ctx context.Context, s domain.Setting) error
}

func NewRepository(d dao.SettingDAO, c cache.SettingCache) SettingRepository {
	return &settingRepository{d: d, c: c, logger: elog.DefaultLogger}
}

type settingRepository struct {
	d      dao.SettingDAO
	c      cache.SettingCache
	logger *elog.Component
}

func (r *settingRepository) Get(ctx context.Context, key string) (domain.Setting, error) {
	s, err := r.c.Get(ctx, key)
	if err == nil {
		return s, nil
	}
	entity, err := r.d.FindByKey(ctx, key)
	if err != nil {
		return domain.Setting{}, err
	}
	s = r.toDomain(entity)
	if er := r.c.Set(ctx, s); er != nil {
		// 回填失败只影响下次命中率
		r.logger.Warn("回填配置缓存失败", elog.FieldErr(er), elog.String("key", key))
	}
	return s, nil
}

// Set 写穿数据库后显式失效缓存, 避免进程级隐式缓存读到旧值
func (r *settingRepository) Set(ctx context.Context, s domain.Setting) error {
	err := r.d.Upsert(ctx, dao.Setting{Key: s.Key, Value: s.Value})
	if err != nil {
		return err
	}
	return r.c.Invalidate(ctx, s.Key)
}

func (r *settingRepository) toDomain(s dao.Setting) domain.Setting {
	return domain.Setting{
		Key:   s.Key,
		Value: s.Value,
		Ctime: s.Ctime,
		Utime: s.Utime,
	}
}
