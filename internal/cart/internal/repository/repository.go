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
	"errors"

	"github.com/ecodeclub/mall/internal/cart/internal/domain"
	"github.com/ecodeclub/mall/internal/cart/internal/repository/cache"
)

type CartRepository interface {
	// Get 读取购物车, 不存在时返回空购物车
	Get(ctx context.Context, customerID int64) (domain.Cart, error)
	Save(ctx context.Context, cart domain.Cart) error
	Clear(ctx context.Context, customerID int64) error
}

func NewCartRepository(c cache.CartCache) CartRepository {
	return &cartRepository{c: c}
}

type cartRepository struct {
	c cache.CartCache
}

func (r *cartRepository) Get(ctx context.Context, customerID int64) (domain.Cart, error) {
	cart, err := r.c.Get(ctx, customerID)
	if errors.Is(err, cache.ErrCartNotFound) {
		return domain.Cart{CustomerID: customerID}, nil
	}
	if err != nil {
		return domain.Cart{}, err
	}
	return cart, nil
}

func (r *cartRepository) Save(ctx context.Context, cart domain.Cart) error {
	return r.c.Set(ctx, cart)
}

func (r *cartRepository) Clear(ctx context.Context, customerID int64) error {
	return r.c.Delete(ctx, customerID)
}
