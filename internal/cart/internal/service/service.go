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
	"fmt"

	"github.com/ecodeclub/mall/internal/cart/internal/domain"
	"github.com/ecodeclub/mall/internal/cart/internal/repository"
	"github.com/ecodeclub/mall/internal/product"
)

var (
	ErrEmptyCart       = errors.New("购物车为空")
	ErrInvalidQuantity = errors.New("商品数量非法")
	ErrSKUNotFound     = errors.New("商品不存在或已下架")
)

//go:generate mockgen -source=./service.go -destination=../../mocks/cart.mock.go -package=cartmocks -typed Service
type Service interface {
	Get(ctx context.Context, customerID int64) (domain.Cart, error)
	// Add 加购。单价在此刻从商品目录抓取快照, 之后不再变动
	Add(ctx context.Context, customerID int64, skuSN string, quantity int64) (domain.Cart, error)
	// UpdateQuantity 把某行数量改为 quantity, 0 表示移除该行
	UpdateQuantity(ctx context.Context, customerID int64, skuSN string, quantity int64) (domain.Cart, error)
	Clear(ctx context.Context, customerID int64) error
	// Validate 结算前校验: 非空且每行数量至少为 1
	Validate(cart domain.Cart) error
}

func NewService(repo repository.CartRepository, productSvc product.Service) Service {
	return &service{repo: repo, productSvc: productSvc}
}

type service struct {
	repo       repository.CartRepository
	productSvc product.Service
}

func (s *service) Get(ctx context.Context, customerID int64) (domain.Cart, error) {
	return s.repo.Get(ctx, customerID)
}

func (s *service) Add(ctx context.Context, customerID int64, skuSN string, quantity int64) (domain.Cart, error) {
	if quantity < 1 {
		return domain.Cart{}, ErrInvalidQuantity
	}
	spu, err := s.productSvc.FindSKUBySN(ctx, skuSN)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("%w: %s", ErrSKUNotFound, skuSN)
	}
	sku := spu.SKUs[0]
	cart, err := s.repo.Get(ctx, customerID)
	if err != nil {
		return domain.Cart{}, err
	}
	found := false
	for i := range cart.Lines {
		if cart.Lines[i].SKUSN == skuSN {
			cart.Lines[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		cart.Lines = append(cart.Lines, domain.Line{
			ProductID: spu.ID,
			VariantID: sku.ID,
			SKUSN:     sku.SN,
			Name:      sku.Name,
			Image:     sku.Image,
			Quantity:  quantity,
			UnitPrice: sku.Price,
		})
	}
	if err = s.repo.Save(ctx, cart); err != nil {
		return domain.Cart{}, fmt.Errorf("保存购物车失败: %w", err)
	}
	return cart, nil
}

func (s *service) UpdateQuantity(ctx context.Context, customerID int64, skuSN string, quantity int64) (domain.Cart, error) {
	if quantity < 0 {
		return domain.Cart{}, ErrInvalidQuantity
	}
	cart, err := s.repo.Get(ctx, customerID)
	if err != nil {
		return domain.Cart{}, err
	}
	lines := make([]domain.Line, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		if line.SKUSN == skuSN {
			if quantity == 0 {
				continue
			}
			line.Quantity = quantity
		}
		lines = append(lines, line)
	}
	cart.Lines = lines
	if err = s.repo.Save(ctx, cart); err != nil {
		return domain.Cart{}, fmt.Errorf("保存购物车失败: %w", err)
	}
	return cart, nil
}

func (s *service) Clear(ctx context.Context, customerID int64) error {
	return s.repo.Clear(ctx, customerID)
}

func (s *service) Validate(cart domain.Cart) error {
	if cart.Empty() {
		return ErrEmptyCart
	}
	for _, line := range cart.Lines {
		if line.Quantity < 1 {
			return fmt.Errorf("%w: %s", ErrInvalidQuantity, line.SKUSN)
		}
	}
	return nil
}
