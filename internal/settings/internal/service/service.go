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
	"encoding/json"
	"errors"
	"strconv"

	"github.com/ecodeclub/mall/internal/settings/internal/domain"
	"github.com/ecodeclub/mall/internal/settings/internal/repository"
	"github.com/gotomicro/ego/core/elog"
)

//go:generate mockgen -source=./service.go -destination=../../mocks/settings.mock.go -package=settingsmocks -typed Service
type Service interface {
	// Get 读取配置项, 未配置或读取失败时返回默认值
	Get(ctx context.Context, key string, def string) string
	GetBool(ctx context.Context, key string, def bool) bool
	Set(ctx context.Context, key string, value string) error

	Shipping(ctx context.Context) domain.ShippingConfig
	Tax(ctx context.Context) domain.TaxConfig
	// Feature 功能开关, 未配置时默认开启
	Feature(ctx context.Context, name string) bool
	AdminEmail(ctx context.Context) string
}

func NewService(repo repository.SettingRepository) Service {
	return &service{repo: repo, logger: elog.DefaultLogger}
}

type service struct {
	repo   repository.SettingRepository
	logger *elog.Component
}

func (s *service) Get(ctx context.Context, key string, def string) string {
	setting, err := s.repo.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, repository.ErrSettingNotFound) {
			s.logger.Warn("读取配置失败", elog.FieldErr(err), elog.String("key", key))
		}
		return def
	}
	return setting.Value
}

func (s *service) GetBool(ctx context.Context, key string, def bool) bool {
	val := s.Get(ctx, key, strconv.FormatBool(def))
	res, err := strconv.ParseBool(val)
	if err != nil {
		return def
	}
	return res
}

func (s *service) Set(ctx context.Context, key string, value string) error {
	return s.repo.Set(ctx, domain.Setting{Key: key, Value: value})
}

func (s *service) Shipping(ctx context.Context) domain.ShippingConfig {
	res := domain.ShippingConfig{Strategy: domain.ShippingStrategyFree}
	val := s.Get(ctx, domain.KeyShipping, "")
	if val == "" {
		return res
	}
	if err := json.Unmarshal([]byte(val), &res); err != nil {
		s.logger.Warn("解析运费配置失败", elog.FieldErr(err))
		return domain.ShippingConfig{Strategy: domain.ShippingStrategyFree}
	}
	return res
}

func (s *service) Tax(ctx context.Context) domain.TaxConfig {
	var res domain.TaxConfig
	val := s.Get(ctx, domain.KeyTax, "")
	if val == "" {
		return res
	}
	if err := json.Unmarshal([]byte(val), &res); err != nil {
		s.logger.Warn("解析税率配置失败", elog.FieldErr(err))
		return domain.TaxConfig{}
	}
	return res
}

func (s *service) Feature(ctx context.Context, name string) bool {
	return s.GetBool(ctx, name, true)
}

func (s *service) AdminEmail(ctx context.Context) string {
	return s.Get(ctx, domain.KeyAdminEmail, "")
}
