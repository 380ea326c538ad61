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

	"github.com/ecodeclub/mall/internal/inventory/internal/domain"
	"github.com/ecodeclub/mall/internal/inventory/internal/repository/dao"
)

var (
	ErrRecordNotFound            = dao.ErrRecordNotFound
	ErrInsufficientStock         = dao.ErrInsufficientStock
	ErrRecordChangedConcurrently = dao.ErrRecordChangedConcurrently
)

type InventoryRepository interface {
	FindByTarget(ctx context.Context, target domain.Target) (domain.Record, error)
	Reserve(ctx context.Context, target domain.Target, quantity int64) (domain.Record, error)
	Release(ctx context.Context, target domain.Target, quantity int64) error
	IncrSalesCount(ctx context.Context, target domain.Target, quantity int64) error
	SetStock(ctx context.Context, target domain.Target, stock int64) (before int64, after int64, err error)
	Save(ctx context.Context, record domain.Record) error
}

func NewInventoryRepository(d dao.InventoryDAO) InventoryRepository {
	return &inventoryRepository{d: d}
}

type inventoryRepository struct {
	d dao.InventoryDAO
}

func (r *inventoryRepository) FindByTarget(ctx context.Context, target domain.Target) (domain.Record, error) {
	record, err := r.d.FindByTarget(ctx, target.ProductID, target.VariantID)
	if err != nil {
		return domain.Record{}, err
	}
	return r.toDomain(record), nil
}

func (r *inventoryRepository) Reserve(ctx context.Context, target domain.Target, quantity int64) (domain.Record, error) {
	record, err := r.d.Reserve(ctx, target.ProductID, target.VariantID, quantity)
	if err != nil {
		return r.toDomain(record), err
	}
	return r.toDomain(record), nil
}

func (r *inventoryRepository) Release(ctx context.Context, target domain.Target, quantity int64) error {
	return r.d.Release(ctx, target.ProductID, target.VariantID, quantity)
}

func (r *inventoryRepository) IncrSalesCount(ctx context.Context, target domain.Target, quantity int64) error {
	return r.d.IncrSalesCount(ctx, target.ProductID, target.VariantID, quantity)
}

// SetStock 把库存写为 stock, 返回修改前后的值。并发修改冲突时重读重试
func (r *inventoryRepository) SetStock(ctx context.Context, target domain.Target, stock int64) (int64, int64, error) {
	for {
		record, err := r.d.FindByTarget(ctx, target.ProductID, target.VariantID)
		if err != nil {
			return 0, 0, err
		}
		err = r.d.UpdateStock(ctx, record, stock)
		if errors.Is(err, dao.ErrRecordChangedConcurrently) {
			continue
		}
		if err != nil {
			return 0, 0, err
		}
		return record.Stock, stock, nil
	}
}

func (r *inventoryRepository) Save(ctx context.Context, record domain.Record) error {
	return r.d.Upsert(ctx, r.toEntity(record))
}

func (r *inventoryRepository) toDomain(record dao.InventoryRecord) domain.Record {
	return domain.Record{
		Target: domain.Target{
			ProductID: record.ProductID,
			VariantID: record.VariantID,
		},
		Stock:             record.Stock,
		Track:             record.Track == 1,
		LowStockThreshold: record.LowStockThreshold,
		SalesCount:        record.SalesCount,
	}
}

func (r *inventoryRepository) toEntity(record domain.Record) dao.InventoryRecord {
	track := uint8(0)
	if record.Track {
		track = 1
	}
	return dao.InventoryRecord{
		ProductID:         record.Target.ProductID,
		VariantID:         record.Target.VariantID,
		Stock:             record.Stock,
		Track:             track,
		LowStockThreshold: record.LowStockThreshold,
		SalesCount:        record.SalesCount,
	}
}
