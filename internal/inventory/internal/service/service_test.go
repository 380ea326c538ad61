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

	"github.com/ecodeclub/mall/internal/audit"
	"github.com/ecodeclub/mall/internal/inventory/internal/domain"
	"github.com/ecodeclub/mall/internal/inventory/internal/repository"
	"github.com/ecodeclub/mall/internal/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInventoryRepository struct {
	records map[domain.Target]*domain.Record
}

func newFakeInventoryRepository(records ...domain.Record) *fakeInventoryRepository {
	res := &fakeInventoryRepository{records: make(map[domain.Target]*domain.Record, len(records))}
	for i := range records {
		r := records[i]
		res.records[r.Target] = &r
	}
	return res
}

func (f *fakeInventoryRepository) FindByTarget(_ context.Context, target domain.Target) (domain.Record, error) {
	record, ok := f.records[target]
	if !ok {
		return domain.Record{}, repository.ErrRecordNotFound
	}
	return *record, nil
}

func (f *fakeInventoryRepository) Reserve(_ context.Context, target domain.Target, quantity int64) (domain.Record, error) {
	record, ok := f.records[target]
	if !ok {
		return domain.Record{}, repository.ErrRecordNotFound
	}
	if !record.Track {
		return *record, nil
	}
	if record.Stock < quantity {
		return *record, repository.ErrInsufficientStock
	}
	record.Stock -= quantity
	return *record, nil
}

func (f *fakeInventoryRepository) Release(_ context.Context, target domain.Target, quantity int64) error {
	record, ok := f.records[target]
	if !ok || !record.Track {
		return nil
	}
	record.Stock += quantity
	return nil
}

func (f *fakeInventoryRepository) IncrSalesCount(_ context.Context, target domain.Target, quantity int64) error {
	if record, ok := f.records[target]; ok {
		record.SalesCount += quantity
	}
	return nil
}

func (f *fakeInventoryRepository) SetStock(_ context.Context, target domain.Target, stock int64) (int64, int64, error) {
	record, ok := f.records[target]
	if !ok {
		return 0, 0, repository.ErrRecordNotFound
	}
	before := record.Stock
	record.Stock = stock
	return before, stock, nil
}

func (f *fakeInventoryRepository) Save(_ context.Context, record domain.Record) error {
	f.records[record.Target] = &record
	return nil
}

func (f *fakeInventoryRepository) stock(t *testing.T, target domain.Target) int64 {
	t.Helper()
	record, ok := f.records[target]
	require.True(t, ok)
	return record.Stock
}

type fakeAuditService struct {
	entries []audit.Entry
}

func (f *fakeAuditService) Record(_ context.Context, entry audit.Entry) {
	f.entries = append(f.entries, entry)
}

func (f *fakeAuditService) List(_ context.Context, _, _ int) ([]audit.Entry, int64, error) {
	return f.entries, int64(len(f.entries)), nil
}

type fakeSettingService struct {
	settings.Service
	features map[string]bool
}

func (f *fakeSettingService) Feature(_ context.Context, name string) bool {
	if f.features == nil {
		return true
	}
	enabled, ok := f.features[name]
	if !ok {
		return true
	}
	return enabled
}

func newTestService(repo repository.InventoryRepository) (Service, *fakeAuditService) {
	auditSvc := &fakeAuditService{}
	return NewService(repo, auditSvc, &fakeSettingService{}), auditSvc
}

func TestService_Reserve(t *testing.T) {
	t.Parallel()

	tracked := domain.Target{ProductID: 1}
	variant := domain.Target{ProductID: 2, VariantID: 21}
	untracked := domain.Target{ProductID: 3}
	missing := domain.Target{ProductID: 99}

	testCases := []struct {
		name       string
		items      []domain.ReserveItem
		assertFunc func(t *testing.T, repo *fakeInventoryRepository, res domain.ReserveResult)
	}{
		{
			name: "全部成功",
			items: []domain.ReserveItem{
				{Target: tracked, Quantity: 3},
				{Target: variant, Quantity: 2},
			},
			assertFunc: func(t *testing.T, repo *fakeInventoryRepository, res domain.ReserveResult) {
				assert.True(t, res.Success)
				assert.Len(t, res.Reserved, 2)
				assert.Empty(t, res.Errors)
				assert.Equal(t, int64(7), repo.stock(t, tracked))
				assert.Equal(t, int64(3), repo.stock(t, variant))
			},
		},
		{
			name: "库存不足时不扣减",
			items: []domain.ReserveItem{
				{Target: tracked, Quantity: 11},
			},
			assertFunc: func(t *testing.T, repo *fakeInventoryRepository, res domain.ReserveResult) {
				assert.False(t, res.Success)
				assert.Empty(t, res.Reserved)
				require.Len(t, res.Errors, 1)
				assert.Equal(t, domain.ItemErrorInsufficient, res.Errors[0].Code)
				assert.Equal(t, int64(10), res.Errors[0].Available)
				assert.Equal(t, int64(11), res.Errors[0].Requested)
				assert.Equal(t, int64(10), repo.stock(t, tracked))
			},
		},
		{
			name: "部分失败时成功条目照常扣减",
			items: []domain.ReserveItem{
				{Target: tracked, Quantity: 3},
				{Target: missing, Quantity: 1},
				{Target: variant, Quantity: 100},
			},
			assertFunc: func(t *testing.T, repo *fakeInventoryRepository, res domain.ReserveResult) {
				assert.False(t, res.Success)
				require.Len(t, res.Reserved, 1)
				assert.Equal(t, tracked, res.Reserved[0].Target)
				require.Len(t, res.Errors, 2)
				assert.Equal(t, domain.ItemErrorNotFound, res.Errors[0].Code)
				assert.Equal(t, domain.ItemErrorInsufficient, res.Errors[1].Code)
				assert.Equal(t, int64(7), repo.stock(t, tracked))
				assert.Equal(t, int64(5), repo.stock(t, variant))
			},
		},
		{
			name: "未跟踪库存视为无限",
			items: []domain.ReserveItem{
				{Target: untracked, Quantity: 10000},
			},
			assertFunc: func(t *testing.T, repo *fakeInventoryRepository, res domain.ReserveResult) {
				assert.True(t, res.Success)
				assert.Len(t, res.Reserved, 1)
				assert.Equal(t, int64(0), repo.stock(t, untracked))
			},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			repo := newFakeInventoryRepository(
				domain.Record{Target: tracked, Stock: 10, Track: true},
				domain.Record{Target: variant, Stock: 5, Track: true},
				domain.Record{Target: untracked, Stock: 0, Track: false},
			)
			svc, _ := newTestService(repo)
			res, err := svc.Reserve(context.Background(), tc.items)
			require.NoError(t, err)
			tc.assertFunc(t, repo, res)
		})
	}
}

func TestService_Reserve_LowStockDetection(t *testing.T) {
	t.Parallel()
	target := domain.Target{ProductID: 1}
	repo := newFakeInventoryRepository(
		domain.Record{Target: target, Stock: 5, Track: true, LowStockThreshold: 3},
	)
	svc, _ := newTestService(repo)

	res, err := svc.Reserve(context.Background(), []domain.ReserveItem{{Target: target, Quantity: 1}})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Empty(t, res.LowStock, "未跌破阈值时不告警")

	res, err = svc.Reserve(context.Background(), []domain.ReserveItem{{Target: target, Quantity: 2}})
	require.NoError(t, err)
	assert.True(t, res.Success)
	require.Len(t, res.LowStock, 1)
	assert.Equal(t, int64(2), res.LowStock[0].Stock)
}

func TestService_ReserveRelease_RoundTrip(t *testing.T) {
	t.Parallel()
	target := domain.Target{ProductID: 1}
	repo := newFakeInventoryRepository(
		domain.Record{Target: target, Stock: 10, Track: true},
	)
	svc, auditSvc := newTestService(repo)

	res, err := svc.Reserve(context.Background(), []domain.ReserveItem{{Target: target, Quantity: 4}})
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Equal(t, int64(6), repo.stock(t, target))

	// 无 actor 释放, 不审计
	err = svc.Release(context.Background(), res.Reserved, "ORD-TEST-000001", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(10), repo.stock(t, target))
	assert.Empty(t, auditSvc.entries)

	// 带 actor 释放, 逐条审计
	res, err = svc.Reserve(context.Background(), []domain.ReserveItem{{Target: target, Quantity: 4}})
	require.NoError(t, err)
	actor := audit.Actor{ID: 7, Type: audit.ActorTypeCustomer}
	err = svc.Release(context.Background(), res.Reserved, "ORD-TEST-000002", &actor)
	require.NoError(t, err)
	assert.Equal(t, int64(10), repo.stock(t, target))
	require.Len(t, auditSvc.entries, 1)
	assert.Equal(t, "inventory_released", auditSvc.entries[0].Action)
}

func TestService_Release_ToleratesMissingRecord(t *testing.T) {
	t.Parallel()
	repo := newFakeInventoryRepository()
	svc, _ := newTestService(repo)
	err := svc.Release(context.Background(), []domain.ReserveItem{
		{Target: domain.Target{ProductID: 404}, Quantity: 2},
	}, "ORD-TEST-000003", nil)
	require.NoError(t, err)
}

func TestService_ConfirmSale(t *testing.T) {
	t.Parallel()
	target := domain.Target{ProductID: 1}
	repo := newFakeInventoryRepository(
		domain.Record{Target: target, Stock: 10, Track: true},
	)
	svc, auditSvc := newTestService(repo)

	actor := audit.Actor{ID: 1, Type: audit.ActorTypeSystem}
	err := svc.ConfirmSale(context.Background(), []domain.ReserveItem{
		{Target: target, Quantity: 3},
	}, "ORD-TEST-000004", &actor)
	require.NoError(t, err)
	// 确认销售只加销量, 库存在预占时已经扣过
	assert.Equal(t, int64(10), repo.stock(t, target))
	assert.Equal(t, int64(3), repo.records[target].SalesCount)
	require.Len(t, auditSvc.entries, 1)
	assert.Equal(t, "inventory_sale_confirmed", auditSvc.entries[0].Action)
}

func TestService_StockStatus(t *testing.T) {
	t.Parallel()
	tracked := domain.Target{ProductID: 1}
	untracked := domain.Target{ProductID: 2}
	repo := newFakeInventoryRepository(
		domain.Record{Target: tracked, Stock: 2, Track: true, LowStockThreshold: 3},
		domain.Record{Target: untracked, Track: false},
	)
	svc, _ := newTestService(repo)

	status, err := svc.StockStatus(context.Background(), tracked)
	require.NoError(t, err)
	assert.Equal(t, domain.StockStatus{
		Exists:   true,
		InStock:  true,
		Quantity: 2,
		LowStock: true,
	}, status)

	status, err = svc.StockStatus(context.Background(), untracked)
	require.NoError(t, err)
	assert.Equal(t, domain.StockStatus{
		Exists:   true,
		InStock:  true,
		Quantity: domain.UnboundedQuantity,
	}, status)

	status, err = svc.StockStatus(context.Background(), domain.Target{ProductID: 404})
	require.NoError(t, err)
	assert.False(t, status.Exists)
}

func TestService_BulkAdjust(t *testing.T) {
	t.Parallel()
	target := domain.Target{ProductID: 1}
	repo := newFakeInventoryRepository(
		domain.Record{Target: target, Stock: 10, Track: true},
	)
	svc, auditSvc := newTestService(repo)
	actor := audit.Actor{ID: 8, Type: audit.ActorTypeAdmin}

	results, err := svc.BulkAdjust(context.Background(), []domain.Adjustment{
		{Target: target, Op: domain.AdjustOpSet, Quantity: 20},
		{Target: target, Op: domain.AdjustOpAdd, Quantity: 5},
		{Target: target, Op: domain.AdjustOpSubtract, Quantity: 100},
		{Target: domain.Target{ProductID: 404}, Op: domain.AdjustOpSet, Quantity: 1},
	}, actor)
	require.NoError(t, err)
	require.Len(t, results, 4)

	assert.True(t, results[0].Success)
	assert.Equal(t, int64(10), results[0].Before)
	assert.Equal(t, int64(20), results[0].After)

	assert.True(t, results[1].Success)
	assert.Equal(t, int64(25), results[1].After)

	// subtract 超出存量时落到 0, 不会出现负库存
	assert.True(t, results[2].Success)
	assert.Equal(t, int64(0), results[2].After)

	assert.False(t, results[3].Success)
	assert.NotEmpty(t, results[3].Error)

	assert.Equal(t, int64(0), repo.stock(t, target))
	assert.Len(t, auditSvc.entries, 3, "只有成功的调整才审计")
}

func TestService_InventoryFeatureDisabled(t *testing.T) {
	t.Parallel()
	target := domain.Target{ProductID: 1}
	repo := newFakeInventoryRepository(
		domain.Record{Target: target, Stock: 1, Track: true},
	)
	auditSvc := &fakeAuditService{}
	svc := NewService(repo, auditSvc, &fakeSettingService{
		features: map[string]bool{settings.FeatureInventory: false},
	})

	res, err := svc.Reserve(context.Background(), []domain.ReserveItem{{Target: target, Quantity: 100}})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Len(t, res.Reserved, 1)
	assert.Equal(t, int64(1), repo.stock(t, target), "功能关闭时不碰库存")

	require.NoError(t, svc.Release(context.Background(), res.Reserved, "ORD-TEST-000005", nil))
	require.NoError(t, svc.ConfirmSale(context.Background(), res.Reserved, "ORD-TEST-000005", nil))
	assert.Equal(t, int64(1), repo.stock(t, target))
}
