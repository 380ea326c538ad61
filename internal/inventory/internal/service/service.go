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
	"strconv"

	"github.com/ecodeclub/mall/internal/audit"
	"github.com/ecodeclub/mall/internal/inventory/internal/domain"
	"github.com/ecodeclub/mall/internal/inventory/internal/repository"
	"github.com/ecodeclub/mall/internal/settings"
	"github.com/gotomicro/ego/core/elog"
)

//go:generate mockgen -source=./service.go -destination=../../mocks/inventory.mock.go -package=inventorymocks -typed Service
type Service interface {
	// Reserve 批量预占库存。逐条处理, 单条失败不影响其余条目,
	// Result.Success 为 false 时调用方必须用 Result.Reserved 回滚
	Reserve(ctx context.Context, items []domain.ReserveItem) (domain.ReserveResult, error)
	// Release 归还库存。记录缺失时静默跳过, 传入 actor 时逐条审计
	Release(ctx context.Context, items []domain.ReserveItem, orderSN string, actor *audit.Actor) error
	// ConfirmSale 付款确定后把预占转为正式扣减。库存在预占时已经扣过,
	// 这里只累加销量。调用方保证同一订单只调用一次
	ConfirmSale(ctx context.Context, items []domain.ReserveItem, orderSN string, actor *audit.Actor) error
	StockStatus(ctx context.Context, target domain.Target) (domain.StockStatus, error)
	// BulkAdjust 管理端批量调整库存, 每条调整带前后值审计
	BulkAdjust(ctx context.Context, adjustments []domain.Adjustment, actor audit.Actor) ([]domain.AdjustResult, error)
	SaveRecord(ctx context.Context, record domain.Record) error
}

func NewService(repo repository.InventoryRepository,
	auditSvc audit.Service,
	settingSvc settings.Service) Service {
	return &service{
		repo:       repo,
		auditSvc:   auditSvc,
		settingSvc: settingSvc,
		logger:     elog.DefaultLogger,
	}
}

type service struct {
	repo       repository.InventoryRepository
	auditSvc   audit.Service
	settingSvc settings.Service
	logger     *elog.Component
}

func (s *service) Reserve(ctx context.Context, items []domain.ReserveItem) (domain.ReserveResult, error) {
	res := domain.ReserveResult{Success: true}
	if !s.settingSvc.Feature(ctx, settings.FeatureInventory) {
		// 库存功能关闭时不扣减, 全部视为预占成功
		res.Reserved = items
		return res, nil
	}
	for _, item := range items {
		record, err := s.repo.Reserve(ctx, item.Target, item.Quantity)
		switch {
		case err == nil:
			res.Reserved = append(res.Reserved, item)
			if record.LowStock() {
				res.LowStock = append(res.LowStock, record)
			}
		case errors.Is(err, repository.ErrRecordNotFound):
			res.Errors = append(res.Errors, domain.ItemError{
				Target:    item.Target,
				Code:      domain.ItemErrorNotFound,
				Requested: item.Quantity,
			})
		case errors.Is(err, repository.ErrInsufficientStock):
			res.Errors = append(res.Errors, domain.ItemError{
				Target:    item.Target,
				Code:      domain.ItemErrorInsufficient,
				Available: record.Stock,
				Requested: item.Quantity,
			})
		default:
			return domain.ReserveResult{
				Success:  false,
				Reserved: res.Reserved,
			}, fmt.Errorf("预占库存失败: %w", err)
		}
	}
	res.Success = len(res.Errors) == 0
	return res, nil
}

func (s *service) Release(ctx context.Context, items []domain.ReserveItem, orderSN string, actor *audit.Actor) error {
	if !s.settingSvc.Feature(ctx, settings.FeatureInventory) {
		return nil
	}
	for _, item := range items {
		err := s.repo.Release(ctx, item.Target, item.Quantity)
		if err != nil {
			return fmt.Errorf("释放库存失败: %w", err)
		}
		if actor != nil {
			s.auditSvc.Record(ctx, audit.Entry{
				Action:       "inventory_released",
				Actor:        *actor,
				ResourceType: "inventory",
				ResourceID:   s.resourceID(item.Target),
				ResourceName: orderSN,
				Details: map[string]string{
					"order_sn": orderSN,
					"quantity": strconv.FormatInt(item.Quantity, 10),
				},
			})
		}
	}
	return nil
}

func (s *service) ConfirmSale(ctx context.Context, items []domain.ReserveItem, orderSN string, actor *audit.Actor) error {
	if !s.settingSvc.Feature(ctx, settings.FeatureInventory) {
		return nil
	}
	for _, item := range items {
		err := s.repo.IncrSalesCount(ctx, item.Target, item.Quantity)
		if err != nil {
			return fmt.Errorf("确认销售失败: %w", err)
		}
		if actor != nil {
			s.auditSvc.Record(ctx, audit.Entry{
				Action:       "inventory_sale_confirmed",
				Actor:        *actor,
				ResourceType: "inventory",
				ResourceID:   s.resourceID(item.Target),
				ResourceName: orderSN,
				Details: map[string]string{
					"order_sn": orderSN,
					"quantity": strconv.FormatInt(item.Quantity, 10),
				},
			})
		}
	}
	return nil
}

func (s *service) StockStatus(ctx context.Context, target domain.Target) (domain.StockStatus, error) {
	record, err := s.repo.FindByTarget(ctx, target)
	if errors.Is(err, repository.ErrRecordNotFound) {
		return domain.StockStatus{}, nil
	}
	if err != nil {
		return domain.StockStatus{}, fmt.Errorf("查询库存状态失败: %w", err)
	}
	if !record.Track {
		return domain.StockStatus{
			Exists:   true,
			InStock:  true,
			Quantity: domain.UnboundedQuantity,
		}, nil
	}
	return domain.StockStatus{
		Exists:   true,
		InStock:  record.Stock > 0,
		Quantity: record.Stock,
		LowStock: record.LowStock(),
	}, nil
}

func (s *service) BulkAdjust(ctx context.Context, adjustments []domain.Adjustment, actor audit.Actor) ([]domain.AdjustResult, error) {
	results := make([]domain.AdjustResult, 0, len(adjustments))
	for _, adj := range adjustments {
		results = append(results, s.adjust(ctx, adj, actor))
	}
	return results, nil
}

func (s *service) adjust(ctx context.Context, adj domain.Adjustment, actor audit.Actor) domain.AdjustResult {
	res := domain.AdjustResult{Target: adj.Target}
	record, err := s.repo.FindByTarget(ctx, adj.Target)
	if err != nil {
		res.Error = fmt.Sprintf("查找库存记录失败: %s", err.Error())
		return res
	}
	target := record.Stock
	switch adj.Op {
	case domain.AdjustOpSet:
		target = adj.Quantity
	case domain.AdjustOpAdd:
		target = record.Stock + adj.Quantity
	case domain.AdjustOpSubtract:
		target = record.Stock - adj.Quantity
		if target < 0 {
			target = 0
		}
	default:
		res.Error = fmt.Sprintf("未知的调整操作: %s", adj.Op)
		return res
	}
	before, after, err := s.repo.SetStock(ctx, adj.Target, target)
	if err != nil {
		res.Error = fmt.Sprintf("调整库存失败: %s", err.Error())
		return res
	}
	res.Success = true
	res.Before = before
	res.After = after
	s.auditSvc.Record(ctx, audit.Entry{
		Action:       "inventory_adjusted",
		Actor:        actor,
		ResourceType: "inventory",
		ResourceID:   s.resourceID(adj.Target),
		Details: map[string]string{
			"op":     string(adj.Op),
			"before": strconv.FormatInt(before, 10),
			"after":  strconv.FormatInt(after, 10),
		},
	})
	return res
}

func (s *service) SaveRecord(ctx context.Context, record domain.Record) error {
	return s.repo.Save(ctx, record)
}

func (s *service) resourceID(target domain.Target) string {
	if target.IsVariant() {
		return fmt.Sprintf("%d/%d", target.ProductID, target.VariantID)
	}
	return strconv.FormatInt(target.ProductID, 10)
}
