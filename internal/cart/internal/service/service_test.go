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

	"github.com/ecodeclub/mall/internal/cart/internal/domain"
	"github.com/ecodeclub/mall/internal/product"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeCartRepository struct {
	carts map[int64]domain.Cart
}

func newFakeCartRepository() *fakeCartRepository {
	return &fakeCartRepository{carts: make(map[int64]domain.Cart)}
}

func (f *fakeCartRepository) Get(_ context.Context, customerID int64) (domain.Cart, error) {
	cart, ok := f.carts[customerID]
	if !ok {
		return domain.Cart{CustomerID: customerID}, nil
	}
	return cart, nil
}

func (f *fakeCartRepository) Save(_ context.Context, cart domain.Cart) error {
	f.carts[cart.CustomerID] = cart
	return nil
}

func (f *fakeCartRepository) Clear(_ context.Context, customerID int64) error {
	delete(f.carts, customerID)
	return nil
}

type fakeProductService struct {
	product.Service
	skus map[string]product.SPU
}

func (f *fakeProductService) FindSKUBySN(_ context.Context, sn string) (product.SPU, error) {
	spu, ok := f.skus[sn]
	if !ok {
		return product.SPU{}, gorm.ErrRecordNotFound
	}
	return spu, nil
}

func newTestService() (Service, *fakeCartRepository) {
	repo := newFakeCartRepository()
	productSvc := &fakeProductService{
		skus: map[string]product.SPU{
			"SKU001": {
				ID:   1,
				Name: "Go 实战课",
				SKUs: []product.SKU{
					{ID: 11, SPUID: 1, SN: "SKU001", Name: "Go 实战课", Price: 9900},
				},
			},
			"SKU002": {
				ID:   2,
				Name: "算法训练营",
				SKUs: []product.SKU{
					{ID: 21, SPUID: 2, SN: "SKU002", Name: "算法训练营", Price: 19900},
				},
			},
		},
	}
	return NewService(repo, productSvc), repo
}

func TestService_Add(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService()
	ctx := context.Background()

	cart, err := svc.Add(ctx, 7, "SKU001", 2)
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, int64(9900), cart.Lines[0].UnitPrice)
	assert.Equal(t, int64(19800), cart.Subtotal())

	// 重复加购合并数量
	cart, err = svc.Add(ctx, 7, "SKU001", 1)
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, int64(3), cart.Lines[0].Quantity)

	cart, err = svc.Add(ctx, 7, "SKU002", 1)
	require.NoError(t, err)
	assert.Len(t, cart.Lines, 2)

	_, err = svc.Add(ctx, 7, "SKU404", 1)
	assert.ErrorIs(t, err, ErrSKUNotFound)

	_, err = svc.Add(ctx, 7, "SKU001", 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestService_UpdateQuantity(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Add(ctx, 7, "SKU001", 2)
	require.NoError(t, err)

	cart, err := svc.UpdateQuantity(ctx, 7, "SKU001", 5)
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, int64(5), cart.Lines[0].Quantity)

	// 数量改为 0 移除该行
	cart, err = svc.UpdateQuantity(ctx, 7, "SKU001", 0)
	require.NoError(t, err)
	assert.True(t, cart.Empty())

	_, err = svc.UpdateQuantity(ctx, 7, "SKU001", -1)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestService_Clear(t *testing.T) {
	t.Parallel()
	svc, repo := newTestService()
	ctx := context.Background()

	_, err := svc.Add(ctx, 7, "SKU001", 2)
	require.NoError(t, err)
	require.NoError(t, svc.Clear(ctx, 7))
	assert.Empty(t, repo.carts)

	cart, err := svc.Get(ctx, 7)
	require.NoError(t, err)
	assert.True(t, cart.Empty())
}

func TestService_Validate(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService()

	assert.ErrorIs(t, svc.Validate(domain.Cart{}), ErrEmptyCart)
	assert.ErrorIs(t, svc.Validate(domain.Cart{
		Lines: []domain.Line{{SKUSN: "SKU001", Quantity: 0}},
	}), ErrInvalidQuantity)
	assert.NoError(t, svc.Validate(domain.Cart{
		Lines: []domain.Line{{SKUSN: "SKU001", Quantity: 1, UnitPrice: 9900}},
	}))
}
