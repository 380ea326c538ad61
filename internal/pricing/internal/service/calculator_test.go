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
	"testing"

	"github.com/ecodeclub/mall/internal/cart"
	"github.com/ecodeclub/mall/internal/pricing/internal/domain"
	"github.com/ecodeclub/mall/internal/settings"
	"github.com/stretchr/testify/assert"
)

type fakeSettingService struct {
	settings.Service
	shipping settings.ShippingConfig
	tax      settings.TaxConfig
}

func (f *fakeSettingService) Shipping(_ context.Context) settings.ShippingConfig {
	return f.shipping
}

func (f *fakeSettingService) Tax(_ context.Context) settings.TaxConfig {
	return f.tax
}

func TestService_ComputeShipping(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name          string
		shipping      settings.ShippingConfig
		afterDiscount int64
		want          int64
	}{
		{
			name:          "free策略",
			shipping:      settings.ShippingConfig{Strategy: settings.ShippingStrategyFree},
			afterDiscount: 100,
			want:          0,
		},
		{
			name: "flat策略未达免邮门槛",
			shipping: settings.ShippingConfig{
				Strategy:      settings.ShippingStrategyFlat,
				FlatRate:      50,
				FreeThreshold: 2000,
			},
			afterDiscount: 1500,
			want:          50,
		},
		{
			name: "flat策略达到免邮门槛",
			shipping: settings.ShippingConfig{
				Strategy:      settings.ShippingStrategyFlat,
				FlatRate:      50,
				FreeThreshold: 2000,
			},
			afterDiscount: 2000,
			want:          0,
		},
		{
			name: "flat策略无免邮门槛",
			shipping: settings.ShippingConfig{
				Strategy: settings.ShippingStrategyFlat,
				FlatRate: 50,
			},
			afterDiscount: 999999,
			want:          50,
		},
		{
			name: "tiered策略命中最高档",
			shipping: settings.ShippingConfig{
				Strategy: settings.ShippingStrategyTiered,
				FlatRate: 100,
				Tiers: []settings.ShippingTier{
					{MinSubtotal: 1000, Cost: 80},
					{MinSubtotal: 5000, Cost: 30},
					{MinSubtotal: 10000, Cost: 0},
				},
			},
			afterDiscount: 12000,
			want:          0,
		},
		{
			name: "tiered策略命中中间档",
			shipping: settings.ShippingConfig{
				Strategy: settings.ShippingStrategyTiered,
				FlatRate: 100,
				Tiers: []settings.ShippingTier{
					{MinSubtotal: 1000, Cost: 80},
					{MinSubtotal: 5000, Cost: 30},
				},
			},
			afterDiscount: 5000,
			want:          30,
		},
		{
			name: "tiered策略未命中任何档位时退回固定运费",
			shipping: settings.ShippingConfig{
				Strategy: settings.ShippingStrategyTiered,
				FlatRate: 100,
				Tiers: []settings.ShippingTier{
					{MinSubtotal: 1000, Cost: 80},
				},
			},
			afterDiscount: 999,
			want:          100,
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			svc := NewService(&fakeSettingService{shipping: tc.shipping})
			assert.Equal(t, tc.want, svc.ComputeShipping(context.Background(), tc.afterDiscount))
		})
	}
}

func TestService_ComputeTax(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name          string
		tax           settings.TaxConfig
		afterDiscount int64
		want          int64
	}{
		{
			name:          "税率未启用",
			tax:           settings.TaxConfig{RateBasisPoints: 1300},
			afterDiscount: 10000,
			want:          0,
		},
		{
			name:          "整除",
			tax:           settings.TaxConfig{Enabled: true, RateBasisPoints: 1300},
			afterDiscount: 10000,
			want:          1300,
		},
		{
			name: "半数进位",
			// 1050 * 1000 / 10000 = 105 整除; 105 * 1000 / 10000 = 10.5 进到 11
			tax:           settings.TaxConfig{Enabled: true, RateBasisPoints: 1000},
			afterDiscount: 105,
			want:          11,
		},
		{
			name:          "不足半数舍去",
			tax:           settings.TaxConfig{Enabled: true, RateBasisPoints: 1000},
			afterDiscount: 104,
			want:          10,
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			svc := NewService(&fakeSettingService{tax: tc.tax})
			assert.Equal(t, tc.want, svc.ComputeTax(context.Background(), tc.afterDiscount))
		})
	}
}

func TestService_ComputePricing(t *testing.T) {
	t.Parallel()
	c := cart.Cart{
		Lines: []cart.Line{
			{SKUSN: "SKU001", Quantity: 2, UnitPrice: 500},
			{SKUSN: "SKU002", Quantity: 1, UnitPrice: 500},
		},
	}

	t.Run("flat运费未免邮且不计税", func(t *testing.T) {
		t.Parallel()
		svc := NewService(&fakeSettingService{
			shipping: settings.ShippingConfig{
				Strategy:      settings.ShippingStrategyFlat,
				FlatRate:      50,
				FreeThreshold: 2000,
			},
		})
		got := svc.ComputePricing(context.Background(), c)
		assert.Equal(t, domain.Breakdown{
			Subtotal: 1500,
			Shipping: 50,
			Total:    1550,
		}, got)
	})

	t.Run("折扣参与运费和税的基数", func(t *testing.T) {
		t.Parallel()
		svc := NewService(&fakeSettingService{
			shipping: settings.ShippingConfig{
				Strategy:      settings.ShippingStrategyFlat,
				FlatRate:      50,
				FreeThreshold: 1000,
			},
			tax: settings.TaxConfig{Enabled: true, RateBasisPoints: 1000},
		})
		discounted := c
		discounted.DiscountAmount = 500
		got := svc.ComputePricing(context.Background(), discounted)
		assert.Equal(t, domain.Breakdown{
			Subtotal: 1500,
			Discount: 500,
			Shipping: 0,
			Tax:      100,
			Total:    1100,
		}, got)
	})

	t.Run("折扣超过小计时封顶", func(t *testing.T) {
		t.Parallel()
		svc := NewService(&fakeSettingService{})
		discounted := c
		discounted.DiscountAmount = 99999
		got := svc.ComputePricing(context.Background(), discounted)
		assert.Equal(t, int64(1500), got.Discount)
		assert.Equal(t, int64(0), got.Total)
	})
}
