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

package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/mall/internal/settings/internal/domain"
	"github.com/pkg/errors"
)

const expiration = 10 * time.Minute

var ErrSettingNotCached = errors.New("配置不在缓存中")

// SettingCache 配置读多写少, 走拉取式缓存, 写路径负责显式失效
type SettingCache interface {
	Get(ctx context.Context, key string) (domain.Setting, error)
	Set(ctx context.Context, s domain.Setting) error
	Invalidate(ctx context.Context, key string) error
}

type settingECache struct {
	ec ecache.Cache
}

func NewSettingECache(ec ecache.Cache) SettingCache {
	return &settingECache{
		ec: &ecache.NamespaceCache{
			Namespace: "setting:",
			C:         ec,
		},
	}
}

func (c *settingECache) Get(ctx context.Context, key string) (domain.Setting, error) {
	val := c.ec.Get(ctx, key)
	if val.KeyNotFound() {
		return domain.Setting{}, ErrSettingNotCached
	}
	if val.Err != nil {
		return domain.Setting{}, val.Err
	}
	data, err := val.AsBytes()
	if err != nil {
		return domain.Setting{}, err
	}
	var res domain.Setting
	if err = json.Unmarshal(data, &res); err != nil {
		return domain.Setting{}, errors.Wrap(err, "反序列化配置失败")
	}
	return res, nil
}

func (c *settingECache) Set(ctx context.Context, s domain.Setting) error {
	data, err := json.Marshal(s)
	if err != nil {
		return errors.Wrap(err, "序列化配置失败")
	}
	return c.ec.Set(ctx, s.Key, string(data), expiration)
}

func (c *settingECache) Invalidate(ctx context.Context, key string) error {
	_, err := c.ec.Delete(ctx, key)
	return err
}
