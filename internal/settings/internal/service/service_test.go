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
	"errors"
	"testing"

	"github.com/ecodeclub/mall/internal/settings/internal/domain"
	"github.com/ecodeclub/mall/internal/settings/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSettingRepository struct {
	data   map[string]string
	getErr error
}

func (f *fakeSettingRepository) Get(_ context.Context, key string) (domain.Setting, error) {
	if f.getErr != nil {
		return domain.Setting{}, f.getErr
	}
	val, ok := f.data[key]
	if !ok {
		return domain.Setting{}, repository.ErrSettingNotFound
	}
	return domain.Setting{Key: key, Value: val}, nil
}

func (f *fakeSettingRepository) Set(_ context.Context, s domain.Setting) error {
	f.data[s.Key] = s.Value
	return nil
}

func TestService_Get(t *testing.T) {
	t.Parallel()
	repo := &fakeSettingRepository{data: map[string]string{
		"store.name": "星穹杂货铺",
		"bad.bool":   "not-a-bool",
	}}
	svc := NewService(repo)

	assert.Equal(t, "星穹杂货铺", svc.Get(context.Background(), "store.name", "默认"))
	assert.Equal(t, "默认", svc.Get(context.Background(), "missing", "默认"))
	// 非 not-found 错误也回落默认值
	broken := NewService(&fakeSettingRepository{getErr: errors.New("db down")})
	assert.Equal(t, "默认", broken.Get(context.Background(), "store.name", "默认"))

	assert.True(t, svc.GetBool(context.Background(), "missing", true))
	assert.False(t, svc.GetBool(context.Background(), "missing", false))
	// 值解析失败时同样回落默认值
	assert.True(t, svc.GetBool(context.Background(), "bad.bool", true))
}

func TestService_Set(t *testing.T) {
	t.Parallel()
	repo := &fakeSettingRepository{data: map[string]string{}}
	svc := NewService(repo)
	require.NoError(t, svc.Set(context.Background(), domain.KeyAdminEmail, "admin@example.com"))
	assert.Equal(t, "admin@example.com", svc.AdminEmail(context.Background()))
}

func TestService_Shipping(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name  string
		value string
		want  domain.ShippingConfig
	}{
		{
			name: "未配置时默认免邮",
			want: domain.ShippingConfig{Strategy: domain.ShippingStrategyFree},
		},
		{
			name:  "flat策略",
			value: `{"strategy":"flat","flatRate":800,"freeThreshold":9900}`,
			want: domain.ShippingConfig{
				Strategy:      domain.ShippingStrategyFlat,
				FlatRate:      800,
				FreeThreshold: 9900,
			},
		},
		{
			name:  "tiered策略",
			value: `{"strategy":"tiered","flatRate":1200,"tiers":[{"minSubtotal":5000,"cost":600}]}`,
			want: domain.ShippingConfig{
				Strategy: domain.ShippingStrategyTiered,
				FlatRate: 1200,
				Tiers:    []domain.ShippingTier{{MinSubtotal: 5000, Cost: 600}},
			},
		},
		{
			name:  "配置损坏回落免邮",
			value: `{"strategy":`,
			want:  domain.ShippingConfig{Strategy: domain.ShippingStrategyFree},
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			repo := &fakeSettingRepository{data: map[string]string{}}
			if tc.value != "" {
				repo.data[domain.KeyShipping] = tc.value
			}
			svc := NewService(repo)
			assert.Equal(t, tc.want, svc.Shipping(context.Background()))
		})
	}
}

func TestService_Tax(t *testing.T) {
	t.Parallel()
	repo := &fakeSettingRepository{data: map[string]string{
		domain.KeyTax: `{"enabled":true,"rateBasisPoints":1300}`,
	}}
	svc := NewService(repo)
	assert.Equal(t, domain.TaxConfig{Enabled: true, RateBasisPoints: 1300}, svc.Tax(context.Background()))

	empty := NewService(&fakeSettingRepository{data: map[string]string{}})
	assert.Equal(t, domain.TaxConfig{}, empty.Tax(context.Background()))
}

func TestService_Feature(t *testing.T) {
	t.Parallel()
	repo := &fakeSettingRepository{data: map[string]string{
		domain.FeatureEmailNotifications: "false",
	}}
	svc := NewService(repo)
	// 未配置的开关默认开启
	assert.True(t, svc.Feature(context.Background(), domain.FeatureInventory))
	assert.False(t, svc.Feature(context.Background(), domain.FeatureEmailNotifications))
}
