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
	"sort"

	"github.com/ecodeclub/mall/internal/cart"
	"github.com/ecodeclub/mall/internal/pricing/internal/domain"
	"github.com/ecodeclub/mall/internal/settings"
)

//go:generate mockgen -source=./calculator.go -destination=../../mocks/pricing.mock.go -package=pricingmocks -typed Service
type Service interface {
	// ComputePricing 从购物车快照算出冻结价格明细, 单价用加购时的快照价
	ComputePricing(ctx context.Context, c cart.Cart) domain.Breakdown
	ComputeShipping(ctx context.Context, afterDiscount int64) int64
	// ComputeTax 在订单总额上算一次税, 不逐行累计, 避免舍入漂移
	ComputeTax(ctx context.Context, afterDiscount int64) int64
}

func NewService(settingSvc settings.Service) Service {
	return &service{settingSvc: settingSvc}
}

type service struct {
	settingSvc settings.Service
}

func (s *service) ComputePricing(ctx context.Context, c cart.Cart) domain.Breakdown {
	subtotal := c.Subtotal()
	discount := c.DiscountAmount
	if discount > subtotal {
		discount = subtotal
	}
	afterDiscount := subtotal - discount
	shipping := s.ComputeShipping(ctx, afterDiscount)
	tax := s.ComputeTax(ctx, afterDiscount)
	return domain.Breakdown{
		Subtotal: subtotal,
		Discount: discount,
		Shipping: shipping,
		Tax:      tax,
		Total:    afterDiscount + shipping + tax,
	}
}

func (s *service) ComputeShipping(ctx context.Context, afterDiscount int64) int64 {
	cfg := s.settingSvc.Shipping(ctx)
	switch cfg.Strategy {
	case settings.ShippingStrategyFlat:
		if cfg.FreeThreshold > 0 && afterDiscount >= cfg.FreeThreshold {
			return 0
		}
		return cfg.FlatRate
	case settings.ShippingStrategyTiered:
		tiers := make([]settings.ShippingTier, len(cfg.Tiers))
		copy(tiers, cfg.Tiers)
		sort.Slice(tiers, func(i, j int) bool {
			return tiers[i].MinSubtotal > tiers[j].MinSubtotal
		})
		for _, tier := range tiers {
			if afterDiscount >= tier.MinSubtotal {
				return tier.Cost
			}
		}
		// 没命中任何档位, 退回固定运费
		return cfg.FlatRate
	default:
		return 0
	}
}

func (s *service) ComputeTax(ctx context.Context, afterDiscount int64) int64 {
	cfg := s.settingSvc.Tax(ctx)
	if !cfg.Enabled || cfg.RateBasisPoints <= 0 {
		return 0
	}
	// 万分比税率, 四舍五入
	return (afterDiscount*cfg.RateBasisPoints + 5000) / 10000
}
