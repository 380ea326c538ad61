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

package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ego-component/egorm"
	"gorm.io/gorm"
)

var (
	ErrRecordNotFound            = gorm.ErrRecordNotFound
	ErrInsufficientStock         = errors.New("库存不足")
	ErrRecordChangedConcurrently = errors.New("库存记录已被并发修改")
)

type InventoryDAO interface {
	FindByTarget(ctx context.Context, productID, variantID int64) (InventoryRecord, error)
	// Reserve 原子扣减库存, 返回扣减后的记录。
	// 未开启跟踪的记录不扣减, 直接返回成功
	Reserve(ctx context.Context, productID, variantID, quantity int64) (InventoryRecord, error)
	// Release 归还库存。记录不存在或未跟踪时静默跳过
	Release(ctx context.Context, productID, variantID, quantity int64) error
	IncrSalesCount(ctx context.Context, productID, variantID, quantity int64) error
	// UpdateStock 带乐观锁地把库存写为 stock
	UpdateStock(ctx context.Context, record InventoryRecord, stock int64) error
	Upsert(ctx context.Context, record InventoryRecord) error
}

type InventoryGORMDAO struct {
	db *egorm.Component
}

func NewInventoryGORMDAO(db *egorm.Component) InventoryDAO {
	return &InventoryGORMDAO{db: db}
}

func (d *InventoryGORMDAO) FindByTarget(ctx context.Context, productID, variantID int64) (InventoryRecord, error) {
	var res InventoryRecord
	err := d.db.WithContext(ctx).
		Where("product_id = ? AND variant_id = ?", productID, variantID).
		First(&res).Error
	return res, err
}

func (d *InventoryGORMDAO) Reserve(ctx context.Context, productID, variantID, quantity int64) (InventoryRecord, error) {
	now := time.Now().UnixMilli()
	// 单条语句完成检查加扣减, 并发预占同一记录时数据库串行化,
	// 不会把库存扣成负数
	res := d.db.WithContext(ctx).Model(&InventoryRecord{}).
		Where("product_id = ? AND variant_id = ? AND track = 1 AND stock >= ?",
			productID, variantID, quantity).
		Updates(map[string]any{
			"stock": gorm.Expr("stock - ?", quantity),
			"utime": now,
		})
	if res.Error != nil {
		return InventoryRecord{}, fmt.Errorf("扣减库存失败: %w", res.Error)
	}
	if res.RowsAffected == 1 {
		return d.FindByTarget(ctx, productID, variantID)
	}
	// 没扣到, 区分记录不存在、未跟踪、库存不足三种情况
	record, err := d.FindByTarget(ctx, productID, variantID)
	if err != nil {
		return InventoryRecord{}, err
	}
	if record.Track == 0 {
		return record, nil
	}
	return record, ErrInsufficientStock
}

func (d *InventoryGORMDAO) Release(ctx context.Context, productID, variantID, quantity int64) error {
	now := time.Now().UnixMilli()
	return d.db.WithContext(ctx).Model(&InventoryRecord{}).
		Where("product_id = ? AND variant_id = ? AND track = 1", productID, variantID).
		Updates(map[string]any{
			"stock": gorm.Expr("stock + ?", quantity),
			"utime": now,
		}).Error
}

func (d *InventoryGORMDAO) IncrSalesCount(ctx context.Context, productID, variantID, quantity int64) error {
	now := time.Now().UnixMilli()
	return d.db.WithContext(ctx).Model(&InventoryRecord{}).
		Where("product_id = ? AND variant_id = ?", productID, variantID).
		Updates(map[string]any{
			"sales_count": gorm.Expr("sales_count + ?", quantity),
			"utime":       now,
		}).Error
}

func (d *InventoryGORMDAO) UpdateStock(ctx context.Context, record InventoryRecord, stock int64) error {
	now := time.Now().UnixMilli()
	res := d.db.WithContext(ctx).Model(&InventoryRecord{}).
		Where("id = ? AND version = ?", record.Id, record.Version).
		Updates(map[string]any{
			"stock":   stock,
			"version": record.Version + 1,
			"utime":   now,
		})
	if res.Error != nil {
		return fmt.Errorf("更新库存失败: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrRecordChangedConcurrently
	}
	return nil
}

func (d *InventoryGORMDAO) Upsert(ctx context.Context, record InventoryRecord) error {
	now := time.Now().UnixMilli()
	record.Ctime, record.Utime = now, now
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing InventoryRecord
		err := tx.Where("product_id = ? AND variant_id = ?",
			record.ProductID, record.VariantID).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(&record).Error
		}
		if err != nil {
			return err
		}
		return tx.Model(&InventoryRecord{}).
			Where("id = ?", existing.Id).
			Updates(map[string]any{
				"stock":               record.Stock,
				"track":               record.Track,
				"low_stock_threshold": record.LowStockThreshold,
				"utime":               now,
			}).Error
	})
}

func InitTables(db *egorm.Component) error {
	return db.AutoMigrate(&InventoryRecord{})
}

type InventoryRecord struct {
	Id        int64 `gorm:"primaryKey;autoIncrement;comment:库存记录自增ID"`
	ProductID int64 `gorm:"column:product_id;not null;uniqueIndex:uniq_product_variant,priority:1;comment:商品SPU自增ID"`
	// VariantID 为 0 表示库存挂在商品本身而非具体规格上
	VariantID         int64 `gorm:"column:variant_id;not null;default:0;uniqueIndex:uniq_product_variant,priority:2;comment:商品SKU自增ID,0表示商品级库存"`
	Stock             int64 `gorm:"not null;default:0;comment:当前库存数量"`
	Track             uint8 `gorm:"type:tinyint unsigned;not null;default:1;comment:是否跟踪库存 0=否 1=是"`
	LowStockThreshold int64 `gorm:"not null;default:0;comment:低库存告警阈值"`
	SalesCount        int64 `gorm:"not null;default:0;comment:累计销量"`
	Version           int64 `gorm:"not null;default:1;comment:乐观锁版本号"`
	Ctime             int64
	Utime             int64
}
