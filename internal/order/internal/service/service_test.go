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
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ecodeclub/mall/internal/audit"
	"github.com/ecodeclub/mall/internal/cart"
	"github.com/ecodeclub/mall/internal/inventory"
	"github.com/ecodeclub/mall/internal/notification"
	"github.com/ecodeclub/mall/internal/order/internal/domain"
	"github.com/ecodeclub/mall/internal/order/internal/repository"
	"github.com/ecodeclub/mall/internal/payment"
	"github.com/ecodeclub/mall/internal/pkg/ordercode"
	"github.com/ecodeclub/mall/internal/pricing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrderRepository struct {
	mu     sync.Mutex
	nextID int64
	orders map[string]*domain.Order
	// createErrs 逐次弹出, 用来模拟落库失败
	createErrs []error
}

func newFakeOrderRepository() *fakeOrderRepository {
	return &fakeOrderRepository{orders: make(map[string]*domain.Order)}
}

func (f *fakeOrderRepository) Create(_ context.Context, o domain.Order) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.createErrs) > 0 {
		err := f.createErrs[0]
		f.createErrs = f.createErrs[1:]
		if err != nil {
			return 0, err
		}
	}
	if _, ok := f.orders[o.SN]; ok {
		return 0, repository.ErrDuplicatedOrderSN
	}
	f.nextID++
	o.ID = f.nextID
	f.orders[o.SN] = &o
	return o.ID, nil
}

func (f *fakeOrderRepository) FindBySN(_ context.Context, sn string) (domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[sn]
	if !ok {
		return domain.Order{}, repository.ErrOrderNotFound
	}
	return *o, nil
}

func (f *fakeOrderRepository) FindByUIDAndSN(_ context.Context, uid int64, sn string) (domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[sn]
	if !ok || o.BuyerID != uid {
		return domain.Order{}, repository.ErrOrderNotFound
	}
	return *o, nil
}

func (f *fakeOrderRepository) ListByUID(_ context.Context, uid int64, _, _ int) ([]domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var res []domain.Order
	for _, o := range f.orders {
		if o.BuyerID == uid {
			res = append(res, *o)
		}
	}
	return res, nil
}

func (f *fakeOrderRepository) CountByUID(_ context.Context, uid int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var res int64
	for _, o := range f.orders {
		if o.BuyerID == uid {
			res++
		}
	}
	return res, nil
}

func (f *fakeOrderRepository) List(_ context.Context, _, _ int) ([]domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var res []domain.Order
	for _, o := range f.orders {
		res = append(res, *o)
	}
	return res, nil
}

func (f *fakeOrderRepository) Count(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.orders)), nil
}

func (f *fakeOrderRepository) UpdateStatus(_ context.Context, o domain.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.orders[o.SN]
	if !ok {
		return repository.ErrOrderNotFound
	}
	stored.Status = o.Status
	stored.History = o.History
	stored.Tracking = o.Tracking
	stored.AdminNotes = o.AdminNotes
	stored.Version++
	return nil
}

func (f *fakeOrderRepository) UpdateTracking(_ context.Context, o domain.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.orders[o.SN]
	if !ok {
		return repository.ErrOrderNotFound
	}
	stored.Tracking = o.Tracking
	stored.Version++
	return nil
}

func (f *fakeOrderRepository) FindExpired(_ context.Context, status domain.Status, before int64, _, limit int) ([]domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var res []domain.Order
	for _, o := range f.orders {
		if o.Status == status && o.Ctime < before && len(res) < limit {
			res = append(res, *o)
		}
	}
	return res, nil
}

type fakeCartService struct {
	cart.Service
	carts   map[int64]cart.Cart
	cleared []int64
}

func (f *fakeCartService) Get(_ context.Context, customerID int64) (cart.Cart, error) {
	c, ok := f.carts[customerID]
	if !ok {
		return cart.Cart{CustomerID: customerID}, nil
	}
	return c, nil
}

func (f *fakeCartService) Validate(c cart.Cart) error {
	if c.Empty() {
		return cart.ErrEmptyCart
	}
	return nil
}

func (f *fakeCartService) Clear(_ context.Context, customerID int64) error {
	f.cleared = append(f.cleared, customerID)
	delete(f.carts, customerID)
	return nil
}

type fakePricingService struct {
	pricing.Service
	shipping int64
	tax      int64
}

func (f *fakePricingService) ComputePricing(_ context.Context, c cart.Cart) pricing.Breakdown {
	subtotal := c.Subtotal()
	discount := c.DiscountAmount
	if discount > subtotal {
		discount = subtotal
	}
	return pricing.Breakdown{
		Subtotal: subtotal,
		Discount: discount,
		Shipping: f.shipping,
		Tax:      f.tax,
		Total:    subtotal - discount + f.shipping + f.tax,
	}
}

type fakeInventoryService struct {
	inventory.Service
	// reserveFn 为 nil 时全部预占成功
	reserveFn func(items []inventory.ReserveItem) (inventory.ReserveResult, error)
	released  [][]inventory.ReserveItem
	confirmed [][]inventory.ReserveItem
}

func (f *fakeInventoryService) Reserve(_ context.Context, items []inventory.ReserveItem) (inventory.ReserveResult, error) {
	if f.reserveFn != nil {
		return f.reserveFn(items)
	}
	return inventory.ReserveResult{Success: true, Reserved: items}, nil
}

func (f *fakeInventoryService) Release(_ context.Context, items []inventory.ReserveItem, _ string, _ *audit.Actor) error {
	f.released = append(f.released, items)
	return nil
}

func (f *fakeInventoryService) ConfirmSale(_ context.Context, items []inventory.ReserveItem, _ string, _ *audit.Actor) error {
	f.confirmed = append(f.confirmed, items)
	return nil
}

type fakePaymentService struct {
	payment.Service
	nextID    int64
	payments  map[int64]*payment.Payment
	refundErr error
	failed    []int64
}

func newFakePaymentService() *fakePaymentService {
	return &fakePaymentService{payments: make(map[int64]*payment.Payment)}
}

func (f *fakePaymentService) CreatePayment(_ context.Context, pmt payment.Payment) (payment.Payment, error) {
	if existing, ok := f.payments[pmt.OrderID]; ok {
		return *existing, nil
	}
	f.nextID++
	pmt.ID = f.nextID
	pmt.Status = payment.StatusPending
	f.payments[pmt.OrderID] = &pmt
	return pmt, nil
}

func (f *fakePaymentService) FindByOrderID(_ context.Context, orderID int64) (payment.Payment, error) {
	pmt, ok := f.payments[orderID]
	if !ok {
		return payment.Payment{}, payment.ErrPaymentNotFound
	}
	return *pmt, nil
}

func (f *fakePaymentService) MarkCompleted(_ context.Context, orderID int64, txnID string) error {
	pmt, ok := f.payments[orderID]
	if !ok {
		return payment.ErrPaymentNotFound
	}
	pmt.Status = payment.StatusCompleted
	pmt.TxnID = txnID
	return nil
}

func (f *fakePaymentService) MarkFailed(_ context.Context, orderID int64) error {
	f.failed = append(f.failed, orderID)
	pmt, ok := f.payments[orderID]
	if !ok {
		return payment.ErrPaymentNotFound
	}
	pmt.Status = payment.StatusFailed
	return nil
}

func (f *fakePaymentService) Refund(_ context.Context, orderID int64, amount int64, reason string) (payment.Payment, error) {
	if f.refundErr != nil {
		return payment.Payment{}, f.refundErr
	}
	pmt, ok := f.payments[orderID]
	if !ok {
		return payment.Payment{}, payment.ErrPaymentNotFound
	}
	if amount > pmt.Refundable() {
		return payment.Payment{}, payment.ErrExceedsRefundable
	}
	pmt.RefundedAmount += amount
	pmt.RefundReason = reason
	if pmt.RefundedAmount == pmt.Amount {
		pmt.Status = payment.StatusRefunded
	} else {
		pmt.Status = payment.StatusPartiallyRefunded
	}
	return *pmt, nil
}

type fakeNotificationService struct {
	sent     map[string]int
	lowStock []notification.LowStockProduct
}

func newFakeNotificationService() *fakeNotificationService {
	return &fakeNotificationService{sent: make(map[string]int)}
}

func (f *fakeNotificationService) SendOrderConfirmation(_ context.Context, _ notification.OrderInfo) {
	f.sent["confirmation"]++
}

func (f *fakeNotificationService) SendOrderShipped(_ context.Context, _ notification.OrderInfo) {
	f.sent["shipped"]++
}

func (f *fakeNotificationService) SendOrderDelivered(_ context.Context, _ notification.OrderInfo) {
	f.sent["delivered"]++
}

func (f *fakeNotificationService) SendOrderCancelled(_ context.Context, _ notification.OrderInfo, _ string) {
	f.sent["cancelled"]++
}

func (f *fakeNotificationService) SendRefundNotification(_ context.Context, _ notification.OrderInfo, _ int64) {
	f.sent["refund"]++
}

func (f *fakeNotificationService) SendLowStockAlert(_ context.Context, products []notification.LowStockProduct) {
	f.sent["low_stock"]++
	f.lowStock = append(f.lowStock, products...)
}

func (f *fakeNotificationService) NotifyAdminNewOrder(_ context.Context, _ notification.OrderInfo) {
	f.sent["admin_new_order"]++
}

type fakeAuditService struct {
	audit.Service
	entries []audit.Entry
}

func (f *fakeAuditService) Record(_ context.Context, entry audit.Entry) {
	f.entries = append(f.entries, entry)
}

type orderTestDeps struct {
	repo         *fakeOrderRepository
	cartSvc      *fakeCartService
	inventorySvc *fakeInventoryService
	paymentSvc   *fakePaymentService
	notifySvc    *fakeNotificationService
	auditSvc     *fakeAuditService
	svc          Service
}

func newTestService(t *testing.T) *orderTestDeps {
	t.Helper()
	deps := &orderTestDeps{
		repo: newFakeOrderRepository(),
		cartSvc: &fakeCartService{carts: map[int64]cart.Cart{
			7: {
				CustomerID: 7,
				Lines: []cart.Line{
					{ProductID: 1, VariantID: 11, SKUSN: "SKU001", Name: "星穹手办", Quantity: 2, UnitPrice: 9900},
					{ProductID: 2, SKUSN: "SKU002", Name: "棉质T恤", Quantity: 1, UnitPrice: 5900},
				},
			},
		}},
		inventorySvc: &fakeInventoryService{},
		paymentSvc:   newFakePaymentService(),
		notifySvc:    newFakeNotificationService(),
		auditSvc:     &fakeAuditService{},
	}
	deps.svc = NewService(deps.repo,
		deps.cartSvc,
		&fakePricingService{shipping: 1000, tax: 0},
		deps.inventorySvc,
		deps.paymentSvc,
		deps.notifySvc,
		deps.auditSvc,
		ordercode.NewGenerator())
	return deps
}

func (d *orderTestDeps) customer() Customer {
	return Customer{ID: 7, Name: "王小明", Email: "xiaoming@example.com"}
}

func (d *orderTestDeps) checkout(t *testing.T, method payment.Method) domain.Order {
	t.Helper()
	o, err := d.svc.CreateOrderFromCart(context.Background(), d.customer(), CreateOrderReq{
		ShippingAddress: domain.Address{Name: "王小明", City: "上海", Detail: "浦东新区 1 号"},
		PaymentMethod:   method.ToUint8(),
	})
	require.NoError(t, err)
	return o
}

func TestService_CreateOrderFromCart(t *testing.T) {
	t.Run("货到付款下单", func(t *testing.T) {
		deps := newTestService(t)
		o := deps.checkout(t, payment.MethodCOD)

		assert.True(t, strings.HasPrefix(o.SN, "ORD-"))
		assert.Equal(t, domain.StatusPending, o.Status)
		// 2*9900 + 5900 + 运费1000
		assert.Equal(t, int64(26700), o.Pricing.Total)
		require.Len(t, o.Items, 2)
		assert.Equal(t, int64(19800), o.Items[0].Subtotal)
		require.Len(t, o.History, 1)
		assert.Equal(t, int64(7), o.History[0].ActorID)

		// 货到付款在确认阶段才建支付记录
		_, err := deps.paymentSvc.FindByOrderID(context.Background(), o.ID)
		assert.ErrorIs(t, err, payment.ErrPaymentNotFound)

		require.Len(t, deps.auditSvc.entries, 1)
		assert.Equal(t, "order_created", deps.auditSvc.entries[0].Action)
	})

	t.Run("在线支付下单创建待支付记录", func(t *testing.T) {
		deps := newTestService(t)
		o := deps.checkout(t, payment.MethodWechat)

		assert.Equal(t, domain.StatusPaymentPending, o.Status)
		pmt, err := deps.paymentSvc.FindByOrderID(context.Background(), o.ID)
		require.NoError(t, err)
		assert.Equal(t, payment.StatusPending, pmt.Status)
		assert.Equal(t, o.Pricing.Total, pmt.Amount)
	})

	t.Run("空购物车拒绝下单", func(t *testing.T) {
		deps := newTestService(t)
		_, err := deps.svc.CreateOrderFromCart(context.Background(),
			Customer{ID: 99}, CreateOrderReq{PaymentMethod: payment.MethodCOD.ToUint8()})
		assert.ErrorIs(t, err, cart.ErrEmptyCart)
		assert.Empty(t, deps.repo.orders)
	})

	t.Run("部分预占失败回滚已预占条目", func(t *testing.T) {
		deps := newTestService(t)
		deps.inventorySvc.reserveFn = func(items []inventory.ReserveItem) (inventory.ReserveResult, error) {
			return inventory.ReserveResult{
				Success:  false,
				Reserved: items[:1],
				Errors: []inventory.ItemError{{
					Target:    items[1].Target,
					Code:      inventory.ItemErrorInsufficient,
					Available: 0,
					Requested: items[1].Quantity,
				}},
			}, nil
		}
		_, err := deps.svc.CreateOrderFromCart(context.Background(), deps.customer(),
			CreateOrderReq{PaymentMethod: payment.MethodCOD.ToUint8()})

		var rfe *ReserveFailedError
		require.ErrorAs(t, err, &rfe)
		assert.Contains(t, rfe.Error(), "库存不足")
		// 只回滚真正扣到的那一条
		require.Len(t, deps.inventorySvc.released, 1)
		require.Len(t, deps.inventorySvc.released[0], 1)
		assert.Equal(t, int64(1), deps.inventorySvc.released[0][0].Target.ProductID)
		assert.Empty(t, deps.repo.orders)
	})

	t.Run("预占中途报错释放已扣条目", func(t *testing.T) {
		deps := newTestService(t)
		boom := errors.New("数据库连接中断")
		deps.inventorySvc.reserveFn = func(items []inventory.ReserveItem) (inventory.ReserveResult, error) {
			return inventory.ReserveResult{Success: false, Reserved: items[:1]}, boom
		}
		_, err := deps.svc.CreateOrderFromCart(context.Background(), deps.customer(),
			CreateOrderReq{PaymentMethod: payment.MethodCOD.ToUint8()})
		require.ErrorIs(t, err, boom)
		// 报错前扣到的那一条不能悬在库存里
		require.Len(t, deps.inventorySvc.released, 1)
		require.Len(t, deps.inventorySvc.released[0], 1)
		assert.Equal(t, int64(1), deps.inventorySvc.released[0][0].Target.ProductID)
		assert.Empty(t, deps.repo.orders)
	})

	t.Run("落库失败释放预占", func(t *testing.T) {
		deps := newTestService(t)
		boom := errors.New("连接中断")
		deps.repo.createErrs = []error{boom}
		_, err := deps.svc.CreateOrderFromCart(context.Background(), deps.customer(),
			CreateOrderReq{PaymentMethod: payment.MethodCOD.ToUint8()})
		require.ErrorIs(t, err, boom)
		require.Len(t, deps.inventorySvc.released, 1)
		assert.Len(t, deps.inventorySvc.released[0], 2)
	})

	t.Run("订单号冲突自动换号重试", func(t *testing.T) {
		deps := newTestService(t)
		deps.repo.createErrs = []error{repository.ErrDuplicatedOrderSN}
		o := deps.checkout(t, payment.MethodCOD)
		assert.NotEmpty(t, o.SN)
		assert.Empty(t, deps.inventorySvc.released)
	})

	t.Run("预占触发低库存告警", func(t *testing.T) {
		deps := newTestService(t)
		deps.inventorySvc.reserveFn = func(items []inventory.ReserveItem) (inventory.ReserveResult, error) {
			return inventory.ReserveResult{
				Success:  true,
				Reserved: items,
				LowStock: []inventory.Record{{
					Target: inventory.Target{ProductID: 1, VariantID: 11},
					Stock:  3,
				}},
			}, nil
		}
		deps.checkout(t, payment.MethodCOD)
		assert.Equal(t, 1, deps.notifySvc.sent["low_stock"])
		require.Len(t, deps.notifySvc.lowStock, 1)
		// 名称从购物车行里解析
		assert.Equal(t, "星穹手办", deps.notifySvc.lowStock[0].Name)
		assert.Equal(t, "SKU001", deps.notifySvc.lowStock[0].SKUSN)
		assert.Equal(t, int64(3), deps.notifySvc.lowStock[0].Stock)
	})
}

func TestService_ProcessCODOrder(t *testing.T) {
	deps := newTestService(t)
	o := deps.checkout(t, payment.MethodCOD)

	require.NoError(t, deps.svc.ProcessCODOrder(context.Background(), o.SN))

	got, err := deps.repo.FindBySN(context.Background(), o.SN)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusProcessing, got.Status)

	pmt, err := deps.paymentSvc.FindByOrderID(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, payment.MethodCOD, pmt.Method)
	assert.Equal(t, payment.StatusPending, pmt.Status)

	require.Len(t, deps.inventorySvc.confirmed, 1)
	assert.Equal(t, []int64{7}, deps.cartSvc.cleared)
	assert.Equal(t, 1, deps.notifySvc.sent["confirmation"])
	assert.Equal(t, 1, deps.notifySvc.sent["admin_new_order"])

	// 重复调用幂等
	require.NoError(t, deps.svc.ProcessCODOrder(context.Background(), o.SN))
	assert.Len(t, deps.inventorySvc.confirmed, 1)
	assert.Equal(t, 1, deps.notifySvc.sent["confirmation"])
}

func TestService_ProcessOnlinePaymentOrder(t *testing.T) {
	deps := newTestService(t)
	o := deps.checkout(t, payment.MethodWechat)

	require.NoError(t, deps.svc.ProcessOnlinePaymentOrder(context.Background(), o.SN, "WX-TXN-001"))

	got, err := deps.repo.FindBySN(context.Background(), o.SN)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusProcessing, got.Status)

	pmt, err := deps.paymentSvc.FindByOrderID(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, payment.StatusCompleted, pmt.Status)
	assert.Equal(t, "WX-TXN-001", pmt.TxnID)

	require.Len(t, deps.inventorySvc.confirmed, 1)
	assert.Equal(t, 1, deps.notifySvc.sent["confirmation"])

	// 网关重试回调, 第二次不重复确认销售
	require.NoError(t, deps.svc.ProcessOnlinePaymentOrder(context.Background(), o.SN, "WX-TXN-001"))
	assert.Len(t, deps.inventorySvc.confirmed, 1)
	assert.Equal(t, 1, deps.notifySvc.sent["confirmation"])
}

func TestService_HandlePaymentFailure(t *testing.T) {
	deps := newTestService(t)
	o := deps.checkout(t, payment.MethodWechat)

	require.NoError(t, deps.svc.HandlePaymentFailure(context.Background(), o.SN, "支付被拒"))

	got, err := deps.repo.FindBySN(context.Background(), o.SN)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, got.Status)
	require.Len(t, deps.inventorySvc.released, 1)
	assert.Len(t, deps.inventorySvc.released[0], 2)
	assert.Equal(t, []int64{o.ID}, deps.paymentSvc.failed)
	assert.Equal(t, 1, deps.notifySvc.sent["cancelled"])

	// 已取消的订单重复通知失败是无操作
	require.NoError(t, deps.svc.HandlePaymentFailure(context.Background(), o.SN, "支付被拒"))
	assert.Len(t, deps.inventorySvc.released, 1)
}

func TestService_ShipOrder(t *testing.T) {
	deps := newTestService(t)
	o := deps.checkout(t, payment.MethodCOD)
	require.NoError(t, deps.svc.ProcessCODOrder(context.Background(), o.SN))

	admin := audit.Actor{ID: 1, Type: audit.ActorTypeAdmin, Name: "管理员"}
	tracking := domain.Tracking{Carrier: "顺丰", Number: "SF123456"}

	shipped, err := deps.svc.ShipOrder(context.Background(), o.SN, tracking, admin, "已出库")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusShipped, shipped.Status)
	assert.Equal(t, 1, deps.notifySvc.sent["shipped"])

	// 换单号重发: 只更新物流, 不重复通知不追加历史
	updated := domain.Tracking{Carrier: "中通", Number: "ZT999"}
	reshipped, err := deps.svc.ShipOrder(context.Background(), o.SN, updated, admin, "")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusShipped, reshipped.Status)
	assert.Equal(t, updated, reshipped.Tracking)
	assert.Equal(t, 1, deps.notifySvc.sent["shipped"])
	got, err := deps.repo.FindBySN(context.Background(), o.SN)
	require.NoError(t, err)
	assert.Equal(t, updated, got.Tracking)
	assert.Len(t, got.History, len(shipped.History))
}

func TestService_DeliverOrder(t *testing.T) {
	deps := newTestService(t)
	o := deps.checkout(t, payment.MethodCOD)
	require.NoError(t, deps.svc.ProcessCODOrder(context.Background(), o.SN))
	admin := audit.Actor{ID: 1, Type: audit.ActorTypeAdmin}
	_, err := deps.svc.ShipOrder(context.Background(), o.SN, domain.Tracking{Number: "SF1"}, admin, "")
	require.NoError(t, err)

	delivered, err := deps.svc.DeliverOrder(context.Background(), o.SN, admin, "")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDelivered, delivered.Status)
	assert.Equal(t, 1, deps.notifySvc.sent["delivered"])

	// 货到付款在送达时标记收款完成
	pmt, err := deps.paymentSvc.FindByOrderID(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, payment.StatusCompleted, pmt.Status)
}

func TestService_CancelOrder(t *testing.T) {
	t.Run("已支付在线订单取消时自动全额退款", func(t *testing.T) {
		deps := newTestService(t)
		o := deps.checkout(t, payment.MethodWechat)
		require.NoError(t, deps.svc.ProcessOnlinePaymentOrder(context.Background(), o.SN, "WX-TXN-001"))

		admin := audit.Actor{ID: 1, Type: audit.ActorTypeAdmin}
		require.NoError(t, deps.svc.CancelOrder(context.Background(), o.SN, "缺货", admin, true))

		got, err := deps.repo.FindBySN(context.Background(), o.SN)
		require.NoError(t, err)
		// 退到100%, 终态是已退款
		assert.Equal(t, domain.StatusRefunded, got.Status)

		pmt, err := deps.paymentSvc.FindByOrderID(context.Background(), o.ID)
		require.NoError(t, err)
		assert.Equal(t, payment.StatusRefunded, pmt.Status)
		assert.Equal(t, pmt.Amount, pmt.RefundedAmount)

		assert.NotEmpty(t, deps.inventorySvc.released)
		assert.Equal(t, 1, deps.notifySvc.sent["cancelled"])
	})

	t.Run("未支付的在线订单取消不触发退款", func(t *testing.T) {
		deps := newTestService(t)
		o := deps.checkout(t, payment.MethodWechat)

		buyer := audit.Actor{ID: 7, Type: audit.ActorTypeCustomer}
		require.NoError(t, deps.svc.CancelOrder(context.Background(), o.SN, "不想要了", buyer, false))

		got, err := deps.repo.FindBySN(context.Background(), o.SN)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCancelled, got.Status)

		// 支付记录还在待支付, 没有被退款
		pmt, err := deps.paymentSvc.FindByOrderID(context.Background(), o.ID)
		require.NoError(t, err)
		assert.Equal(t, payment.StatusPending, pmt.Status)
		assert.Zero(t, pmt.RefundedAmount)
	})

	t.Run("退款失败不阻塞取消", func(t *testing.T) {
		deps := newTestService(t)
		o := deps.checkout(t, payment.MethodWechat)
		require.NoError(t, deps.svc.ProcessOnlinePaymentOrder(context.Background(), o.SN, "WX-TXN-001"))
		deps.paymentSvc.refundErr = errors.New("网关超时")

		admin := audit.Actor{ID: 1, Type: audit.ActorTypeAdmin}
		require.NoError(t, deps.svc.CancelOrder(context.Background(), o.SN, "缺货", admin, true))

		got, err := deps.repo.FindBySN(context.Background(), o.SN)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCancelled, got.Status)
		assert.NotEmpty(t, deps.inventorySvc.released)
	})

	t.Run("已发货买家不能自助取消", func(t *testing.T) {
		deps := newTestService(t)
		o := deps.checkout(t, payment.MethodCOD)
		require.NoError(t, deps.svc.ProcessCODOrder(context.Background(), o.SN))
		admin := audit.Actor{ID: 1, Type: audit.ActorTypeAdmin}
		_, err := deps.svc.ShipOrder(context.Background(), o.SN, domain.Tracking{Number: "SF1"}, admin, "")
		require.NoError(t, err)

		buyer := audit.Actor{ID: 7, Type: audit.ActorTypeCustomer}
		err = deps.svc.CancelOrder(context.Background(), o.SN, "不想要了", buyer, false)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})
}

func TestService_ProcessRefund(t *testing.T) {
	t.Run("货到付款不支持线上退款", func(t *testing.T) {
		deps := newTestService(t)
		o := deps.checkout(t, payment.MethodCOD)
		admin := audit.Actor{ID: 1, Type: audit.ActorTypeAdmin}
		_, err := deps.svc.ProcessRefund(context.Background(), o.SN, 100, "质量问题", admin)
		assert.ErrorIs(t, err, ErrCODNotRefundable)
	})

	t.Run("部分退款不改订单状态", func(t *testing.T) {
		deps := newTestService(t)
		o := deps.checkout(t, payment.MethodWechat)
		require.NoError(t, deps.svc.ProcessOnlinePaymentOrder(context.Background(), o.SN, "WX-TXN-001"))

		admin := audit.Actor{ID: 1, Type: audit.ActorTypeAdmin}
		pmt, err := deps.svc.ProcessRefund(context.Background(), o.SN, 5900, "少发一件", admin)
		require.NoError(t, err)
		assert.Equal(t, payment.StatusPartiallyRefunded, pmt.Status)

		got, err := deps.repo.FindBySN(context.Background(), o.SN)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusProcessing, got.Status)
		assert.Equal(t, 1, deps.notifySvc.sent["refund"])
	})

	t.Run("全额退款订单转为已退款", func(t *testing.T) {
		deps := newTestService(t)
		o := deps.checkout(t, payment.MethodWechat)
		require.NoError(t, deps.svc.ProcessOnlinePaymentOrder(context.Background(), o.SN, "WX-TXN-001"))

		admin := audit.Actor{ID: 1, Type: audit.ActorTypeAdmin}
		pmt, err := deps.svc.ProcessRefund(context.Background(), o.SN, o.Pricing.Total, "全部退掉", admin)
		require.NoError(t, err)
		assert.Equal(t, payment.StatusRefunded, pmt.Status)

		got, err := deps.repo.FindBySN(context.Background(), o.SN)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusRefunded, got.Status)
		assert.NotEmpty(t, deps.inventorySvc.released)
	})

	t.Run("超过可退金额被拒", func(t *testing.T) {
		deps := newTestService(t)
		o := deps.checkout(t, payment.MethodWechat)
		require.NoError(t, deps.svc.ProcessOnlinePaymentOrder(context.Background(), o.SN, "WX-TXN-001"))

		admin := audit.Actor{ID: 1, Type: audit.ActorTypeAdmin}
		_, err := deps.svc.ProcessRefund(context.Background(), o.SN, o.Pricing.Total+1, "", admin)
		assert.ErrorIs(t, err, payment.ErrExceedsRefundable)
	})
}

func TestService_HoldAndResume(t *testing.T) {
	deps := newTestService(t)
	o := deps.checkout(t, payment.MethodCOD)
	require.NoError(t, deps.svc.ProcessCODOrder(context.Background(), o.SN))

	admin := audit.Actor{ID: 1, Type: audit.ActorTypeAdmin}
	require.NoError(t, deps.svc.HoldOrder(context.Background(), o.SN, admin, "疑似刷单"))
	got, err := deps.repo.FindBySN(context.Background(), o.SN)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOnHold, got.Status)

	require.NoError(t, deps.svc.ResumeOrder(context.Background(), o.SN, domain.StatusProcessing, admin, "核实通过"))
	got, err = deps.repo.FindBySN(context.Background(), o.SN)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusProcessing, got.Status)
}

func TestService_CloseExpiredOrders(t *testing.T) {
	deps := newTestService(t)
	o := deps.checkout(t, payment.MethodWechat)

	// 下单时间在截止时间之前, 应该被扫到
	require.NoError(t, deps.svc.CloseExpiredOrders(context.Background(), time.Now().Add(time.Minute)))

	got, err := deps.repo.FindBySN(context.Background(), o.SN)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, got.Status)
	require.Len(t, deps.inventorySvc.released, 1)

	// 再跑一遍没有可关的
	require.NoError(t, deps.svc.CloseExpiredOrders(context.Background(), time.Now().Add(time.Minute)))
	assert.Len(t, deps.inventorySvc.released, 1)
}

func TestService_List(t *testing.T) {
	deps := newTestService(t)
	o := deps.checkout(t, payment.MethodCOD)

	orders, total, err := deps.svc.List(context.Background(), 7, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, orders, 1)
	assert.Equal(t, o.SN, orders[0].SN)

	_, total, err = deps.svc.List(context.Background(), 999, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}
