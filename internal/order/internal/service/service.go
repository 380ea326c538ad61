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
	"strings"
	"time"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/mall/internal/audit"
	"github.com/ecodeclub/mall/internal/cart"
	"github.com/ecodeclub/mall/internal/inventory"
	"github.com/ecodeclub/mall/internal/notification"
	"github.com/ecodeclub/mall/internal/order/internal/domain"
	"github.com/ecodeclub/mall/internal/order/internal/repository"
	"github.com/ecodeclub/mall/internal/payment"
	"github.com/ecodeclub/mall/internal/pkg/ordercode"
	"github.com/ecodeclub/mall/internal/pricing"
	"github.com/gotomicro/ego/core/elog"
	"golang.org/x/sync/errgroup"
)

var (
	ErrOrderNotFound = repository.ErrOrderNotFound
	// ErrCODNotRefundable 货到付款没有线上退款通道
	ErrCODNotRefundable = errors.New("货到付款订单不支持线上退款")
)

// ReserveFailedError 预占库存失败, 携带逐条失败原因
type ReserveFailedError struct {
	Errors []inventory.ItemError
}

func (e *ReserveFailedError) Error() string {
	msgs := slice.Map(e.Errors, func(idx int, src inventory.ItemError) string {
		if src.Code == inventory.ItemErrorInsufficient {
			return fmt.Sprintf("商品%d库存不足, 可用%d, 需要%d",
				src.Target.ProductID, src.Available, src.Requested)
		}
		return fmt.Sprintf("商品%d无库存记录", src.Target.ProductID)
	})
	return "预占库存失败: " + strings.Join(msgs, "; ")
}

type Customer struct {
	ID    int64
	Name  string
	Email string
}

type CreateOrderReq struct {
	ShippingAddress domain.Address
	BillingAddress  domain.Address
	PaymentMethod   uint8
	Note            string
}

// Service 订单工作流的协调者。每个操作都是一段跨组件的流程,
// 失败时执行文档化的补偿动作。通知和审计即发即忘, 绝不阻塞状态变更;
// 库存和支付网关调用同步阻塞, 失败会中止整个操作
//
//go:generate mockgen -source=./service.go -destination=../../mocks/order.mock.go -package=ordermocks -typed Service
type Service interface {
	// CreateOrderFromCart 结算下单。先预占库存再落库,
	// 落库失败释放预占, 保证不会出现"占着库存却没有订单"
	CreateOrderFromCart(ctx context.Context, customer Customer, req CreateOrderReq) (domain.Order, error)
	// ProcessCODOrder 货到付款下单后立即进入处理中
	ProcessCODOrder(ctx context.Context, orderSN string) error
	// ProcessOnlinePaymentOrder 支付成功回调重入。
	// 网关会重试回调, 订单已过待支付时视为幂等成功
	ProcessOnlinePaymentOrder(ctx context.Context, orderSN string, txnID string) error
	// HandlePaymentFailure 整个结算 saga 的补偿动作
	HandlePaymentFailure(ctx context.Context, orderSN string, reason string) error
	ShipOrder(ctx context.Context, orderSN string, tracking domain.Tracking, actor audit.Actor, note string) (domain.Order, error)
	// DeliverOrder 确认送达。货到付款在此刻视为收款完成
	DeliverOrder(ctx context.Context, orderSN string, actor audit.Actor, note string) (domain.Order, error)
	CompleteOrder(ctx context.Context, orderSN string, actor audit.Actor, note string) error
	HoldOrder(ctx context.Context, orderSN string, actor audit.Actor, note string) error
	// ResumeOrder 从挂起恢复到指定状态, 管理员专用
	ResumeOrder(ctx context.Context, orderSN string, status domain.Status, actor audit.Actor, note string) error
	// CancelOrder 取消订单。已完成的在线支付自动全额退款,
	// 退满100%时订单终态是已退款而不是已取消;
	// 退款失败只记日志不阻塞取消, 库存无条件释放
	CancelOrder(ctx context.Context, orderSN string, reason string, actor audit.Actor, isAdmin bool) error
	// ProcessRefund 退款。退满转为已退款状态, 库存无条件释放
	ProcessRefund(ctx context.Context, orderSN string, amount int64, reason string, actor audit.Actor) (payment.Payment, error)

	FindByUIDAndSN(ctx context.Context, uid int64, sn string) (domain.Order, error)
	FindBySN(ctx context.Context, sn string) (domain.Order, error)
	List(ctx context.Context, uid int64, offset, limit int) ([]domain.Order, int64, error)
	ListAll(ctx context.Context, offset, limit int) ([]domain.Order, int64, error)
	// CloseExpiredOrders 清理超时未支付的订单, 释放其预占库存
	CloseExpiredOrders(ctx context.Context, before time.Time) error
}

func NewService(repo repository.OrderRepository,
	cartSvc cart.Service,
	pricingSvc pricing.Service,
	inventorySvc inventory.Service,
	paymentSvc payment.Service,
	notificationSvc notification.Service,
	auditSvc audit.Service,
	codeGen *ordercode.Generator) Service {
	return &service{
		repo:            repo,
		cartSvc:         cartSvc,
		pricingSvc:      pricingSvc,
		inventorySvc:    inventorySvc,
		paymentSvc:      paymentSvc,
		notificationSvc: notificationSvc,
		auditSvc:        auditSvc,
		codeGen:         codeGen,
		logger:          elog.DefaultLogger,
	}
}

type service struct {
	repo            repository.OrderRepository
	cartSvc         cart.Service
	pricingSvc      pricing.Service
	inventorySvc    inventory.Service
	paymentSvc      payment.Service
	notificationSvc notification.Service
	auditSvc        audit.Service
	codeGen         *ordercode.Generator
	logger          *elog.Component
}

func (s *service) CreateOrderFromCart(ctx context.Context, customer Customer, req CreateOrderReq) (domain.Order, error) {
	c, err := s.cartSvc.Get(ctx, customer.ID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("读取购物车失败: %w", err)
	}
	if err = s.cartSvc.Validate(c); err != nil {
		return domain.Order{}, err
	}
	breakdown := s.pricingSvc.ComputePricing(ctx, c)
	items := slice.Map(c.Lines, func(idx int, src cart.Line) domain.Item {
		return domain.Item{
			ProductID: src.ProductID,
			VariantID: src.VariantID,
			SKUSN:     src.SKUSN,
			Name:      src.Name,
			Image:     src.Image,
			Quantity:  src.Quantity,
			UnitPrice: src.UnitPrice,
			Subtotal:  src.Subtotal(),
		}
	})

	// 先预占库存再落订单, 崩溃时留下的是"有预占无订单",
	// 可以被超时清理扫掉, 反过来则会超卖
	reserved, err := s.inventorySvc.Reserve(ctx, s.toReserveItems(items))
	if err != nil {
		// 中途报错时前面的条目可能已经扣掉了, 同样要吐回去
		if len(reserved.Reserved) > 0 {
			if rerr := s.inventorySvc.Release(ctx, reserved.Reserved, "", nil); rerr != nil {
				s.logger.Error("回滚部分预占失败", elog.FieldErr(rerr))
			}
		}
		return domain.Order{}, err
	}
	if !reserved.Success {
		// 只释放真正扣到的条目, 不能用原始请求列表
		if rerr := s.inventorySvc.Release(ctx, reserved.Reserved, "", nil); rerr != nil {
			s.logger.Error("回滚部分预占失败", elog.FieldErr(rerr))
		}
		return domain.Order{}, &ReserveFailedError{Errors: reserved.Errors}
	}
	if len(reserved.LowStock) > 0 {
		s.notificationSvc.SendLowStockAlert(ctx, s.toLowStockProducts(reserved.LowStock, c.Lines))
	}

	status := domain.StatusPaymentPending
	if req.PaymentMethod == payment.MethodCOD.ToUint8() {
		status = domain.StatusPending
	}
	o := domain.Order{
		BuyerID:         customer.ID,
		BuyerName:       customer.Name,
		BuyerEmail:      customer.Email,
		Items:           items,
		ShippingAddress: req.ShippingAddress,
		BillingAddress:  req.BillingAddress,
		Pricing: domain.PriceInfo{
			Subtotal: breakdown.Subtotal,
			Discount: breakdown.Discount,
			Shipping: breakdown.Shipping,
			Tax:      breakdown.Tax,
			Total:    breakdown.Total,
		},
		Status:        status,
		PaymentMethod: req.PaymentMethod,
		History: []domain.StatusChange{{
			Status:    status,
			ActorID:   customer.ID,
			ActorType: string(audit.ActorTypeCustomer),
			Note:      req.Note,
			Ctime:     time.Now().UnixMilli(),
		}},
	}

	id, err := s.createWithRetry(ctx, &o)
	if err != nil {
		// 订单没落下来, 预占必须吐回去
		if rerr := s.inventorySvc.Release(ctx, reserved.Reserved, o.SN, nil); rerr != nil {
			s.logger.Error("订单落库失败后释放预占失败",
				elog.FieldErr(rerr), elog.String("sn", o.SN))
		}
		return domain.Order{}, err
	}
	o.ID = id

	if o.PaymentMethod == payment.MethodWechat.ToUint8() {
		// 在线支付在结算开始时就建支付记录
		_, err = s.paymentSvc.CreatePayment(ctx, payment.Payment{
			OrderID: o.ID,
			OrderSN: o.SN,
			Method:  payment.MethodWechat,
			Amount:  o.Pricing.Total,
		})
		if err != nil {
			s.logger.Error("创建支付记录失败",
				elog.FieldErr(err), elog.String("sn", o.SN))
		}
	}

	s.auditSvc.Record(ctx, audit.Entry{
		Action:       "order_created",
		Actor:        audit.Actor{ID: customer.ID, Type: audit.ActorTypeCustomer, Name: customer.Name},
		ResourceType: "order",
		ResourceID:   o.SN,
		ResourceName: o.SN,
		Details:      map[string]string{"total": fmt.Sprintf("%d", o.Pricing.Total)},
	})
	return o, nil
}

// createWithRetry 订单号冲突时换一个再试, 唯一索引兜底
func (s *service) createWithRetry(ctx context.Context, o *domain.Order) (int64, error) {
	const maxAttempts = 3
	for i := 0; i < maxAttempts; i++ {
		o.SN = s.codeGen.Generate()
		id, err := s.repo.Create(ctx, *o)
		if errors.Is(err, repository.ErrDuplicatedOrderSN) {
			continue
		}
		if err != nil {
			return 0, fmt.Errorf("订单落库失败: %w", err)
		}
		return id, nil
	}
	return 0, fmt.Errorf("订单落库失败: %w", repository.ErrDuplicatedOrderSN)
}

func (s *service) ProcessCODOrder(ctx context.Context, orderSN string) error {
	o, err := s.repo.FindBySN(ctx, orderSN)
	if err != nil {
		return fmt.Errorf("查找订单失败: %w", err)
	}
	if o.Status != domain.StatusPending {
		s.logger.Info("货到付款订单已处理, 跳过",
			elog.String("sn", orderSN), elog.String("status", o.Status.String()))
		return nil
	}
	_, err = s.paymentSvc.CreatePayment(ctx, payment.Payment{
		OrderID: o.ID,
		OrderSN: o.SN,
		Method:  payment.MethodCOD,
		Amount:  o.Pricing.Total,
	})
	if err != nil {
		return fmt.Errorf("创建货到付款记录失败: %w", err)
	}
	return s.settleOrder(ctx, &o, "货到付款确认")
}

func (s *service) ProcessOnlinePaymentOrder(ctx context.Context, orderSN string, txnID string) error {
	o, err := s.repo.FindBySN(ctx, orderSN)
	if err != nil {
		return fmt.Errorf("查找订单失败: %w", err)
	}
	if o.Status != domain.StatusPaymentPending {
		// 网关重试回调, 第二次进来直接视为成功,
		// 不再碰库存和通知
		s.logger.Info("重复的支付确认, 跳过",
			elog.String("sn", orderSN), elog.String("status", o.Status.String()))
		return nil
	}
	// 结算开始时创建的支付记录可能因竞争缺失, 这里兜底补一条
	_, err = s.paymentSvc.CreatePayment(ctx, payment.Payment{
		OrderID: o.ID,
		OrderSN: o.SN,
		Method:  payment.MethodWechat,
		Amount:  o.Pricing.Total,
	})
	if err != nil {
		return fmt.Errorf("创建支付记录失败: %w", err)
	}
	if err = s.paymentSvc.MarkCompleted(ctx, o.ID, txnID); err != nil {
		return fmt.Errorf("标记支付完成失败: %w", err)
	}
	return s.settleOrder(ctx, &o, "支付成功")
}

// settleOrder 支付确定后的公共路径: 进入处理中、确认销售、清购物车、发通知
func (s *service) settleOrder(ctx context.Context, o *domain.Order, note string) error {
	if err := o.MarkProcessing(0, string(audit.ActorTypeSystem), note); err != nil {
		return err
	}
	if err := s.repo.UpdateStatus(ctx, *o); err != nil {
		return fmt.Errorf("更新订单状态失败: %w", err)
	}
	systemActor := audit.Actor{Type: audit.ActorTypeSystem}
	if err := s.inventorySvc.ConfirmSale(ctx, s.toReserveItems(o.Items), o.SN, &systemActor); err != nil {
		return fmt.Errorf("确认销售失败: %w", err)
	}
	if err := s.cartSvc.Clear(ctx, o.BuyerID); err != nil {
		s.logger.Warn("清空购物车失败", elog.FieldErr(err), elog.String("sn", o.SN))
	}
	s.notificationSvc.SendOrderConfirmation(ctx, s.orderInfo(*o))
	s.notificationSvc.NotifyAdminNewOrder(ctx, s.orderInfo(*o))
	return nil
}

func (s *service) HandlePaymentFailure(ctx context.Context, orderSN string, reason string) error {
	o, err := s.repo.FindBySN(ctx, orderSN)
	if err != nil {
		return fmt.Errorf("查找订单失败: %w", err)
	}
	if o.Status != domain.StatusPaymentPending {
		return nil
	}
	if err = s.inventorySvc.Release(ctx, s.toReserveItems(o.Items), o.SN, nil); err != nil {
		return fmt.Errorf("释放预占失败: %w", err)
	}
	if err = s.paymentSvc.MarkFailed(ctx, o.ID); err != nil {
		if !errors.Is(err, payment.ErrPaymentNotFound) {
			s.logger.Warn("标记支付失败出错", elog.FieldErr(err), elog.String("sn", orderSN))
		}
	}
	if err = o.Cancel(0, string(audit.ActorTypeSystem), reason, true); err != nil {
		return err
	}
	if err = s.repo.UpdateStatus(ctx, o); err != nil {
		return fmt.Errorf("更新订单状态失败: %w", err)
	}
	s.notificationSvc.SendOrderCancelled(ctx, s.orderInfo(o), reason)
	return nil
}

func (s *service) ShipOrder(ctx context.Context, orderSN string, tracking domain.Tracking, actor audit.Actor, note string) (domain.Order, error) {
	o, err := s.repo.FindBySN(ctx, orderSN)
	if err != nil {
		return domain.Order{}, fmt.Errorf("查找订单失败: %w", err)
	}
	transitioned, err := o.Ship(tracking, actor.ID, string(actor.Type), note)
	if err != nil {
		return domain.Order{}, err
	}
	if !transitioned {
		// 重复发货只更新物流信息
		if err = s.repo.UpdateTracking(ctx, o); err != nil {
			return domain.Order{}, fmt.Errorf("更新物流信息失败: %w", err)
		}
		return o, nil
	}
	if err = s.repo.UpdateStatus(ctx, o); err != nil {
		return domain.Order{}, fmt.Errorf("更新订单状态失败: %w", err)
	}
	s.auditSvc.Record(ctx, audit.Entry{
		Action:       "order_shipped",
		Actor:        actor,
		ResourceType: "order",
		ResourceID:   o.SN,
		ResourceName: o.SN,
		Details:      map[string]string{"tracking_number": tracking.Number},
	})
	s.notificationSvc.SendOrderShipped(ctx, s.orderInfo(o))
	return o, nil
}

func (s *service) DeliverOrder(ctx context.Context, orderSN string, actor audit.Actor, note string) (domain.Order, error) {
	o, err := s.repo.FindBySN(ctx, orderSN)
	if err != nil {
		return domain.Order{}, fmt.Errorf("查找订单失败: %w", err)
	}
	if err = o.Deliver(actor.ID, string(actor.Type), note); err != nil {
		return domain.Order{}, err
	}
	if err = s.repo.UpdateStatus(ctx, o); err != nil {
		return domain.Order{}, fmt.Errorf("更新订单状态失败: %w", err)
	}
	if o.PaymentMethod == payment.MethodCOD.ToUint8() {
		// 货到付款的钱在送达这一刻才算收到
		pmt, perr := s.paymentSvc.FindByOrderID(ctx, o.ID)
		if perr != nil {
			s.logger.Warn("送达时找不到支付记录", elog.FieldErr(perr), elog.String("sn", orderSN))
		} else if pmt.Status != payment.StatusCompleted {
			if perr = s.paymentSvc.MarkCompleted(ctx, o.ID, ""); perr != nil {
				s.logger.Warn("标记货到付款收款失败", elog.FieldErr(perr), elog.String("sn", orderSN))
			}
		}
	}
	s.auditSvc.Record(ctx, audit.Entry{
		Action:       "order_delivered",
		Actor:        actor,
		ResourceType: "order",
		ResourceID:   o.SN,
		ResourceName: o.SN,
	})
	s.notificationSvc.SendOrderDelivered(ctx, s.orderInfo(o))
	return o, nil
}

func (s *service) CompleteOrder(ctx context.Context, orderSN string, actor audit.Actor, note string) error {
	o, err := s.repo.FindBySN(ctx, orderSN)
	if err != nil {
		return fmt.Errorf("查找订单失败: %w", err)
	}
	if err = o.Complete(actor.ID, string(actor.Type), note); err != nil {
		return err
	}
	return s.repo.UpdateStatus(ctx, o)
}

func (s *service) HoldOrder(ctx context.Context, orderSN string, actor audit.Actor, note string) error {
	o, err := s.repo.FindBySN(ctx, orderSN)
	if err != nil {
		return fmt.Errorf("查找订单失败: %w", err)
	}
	if err = o.Hold(actor.ID, note); err != nil {
		return err
	}
	if err = s.repo.UpdateStatus(ctx, o); err != nil {
		return err
	}
	s.auditSvc.Record(ctx, audit.Entry{
		Action:       "order_held",
		Actor:        actor,
		ResourceType: "order",
		ResourceID:   o.SN,
		ResourceName: o.SN,
		Details:      map[string]string{"note": note},
	})
	return nil
}

func (s *service) ResumeOrder(ctx context.Context, orderSN string, status domain.Status, actor audit.Actor, note string) error {
	o, err := s.repo.FindBySN(ctx, orderSN)
	if err != nil {
		return fmt.Errorf("查找订单失败: %w", err)
	}
	if err = o.Resume(status, actor.ID, note); err != nil {
		return err
	}
	if err = s.repo.UpdateStatus(ctx, o); err != nil {
		return err
	}
	s.auditSvc.Record(ctx, audit.Entry{
		Action:       "order_resumed",
		Actor:        actor,
		ResourceType: "order",
		ResourceID:   o.SN,
		ResourceName: o.SN,
		Details:      map[string]string{"status": status.String(), "note": note},
	})
	return nil
}

func (s *service) CancelOrder(ctx context.Context, orderSN string, reason string, actor audit.Actor, isAdmin bool) error {
	o, err := s.repo.FindBySN(ctx, orderSN)
	if err != nil {
		return fmt.Errorf("查找订单失败: %w", err)
	}
	if err = o.CancelAllowed(isAdmin); err != nil {
		return err
	}
	// 已完成的在线支付先自动全额退款。退款失败不阻塞取消,
	// 留给管理员人工对账
	fullyRefunded := false
	if o.PaymentMethod == payment.MethodWechat.ToUint8() {
		pmt, perr := s.paymentSvc.FindByOrderID(ctx, o.ID)
		if perr == nil && pmt.Refundable() > 0 &&
			(pmt.Status == payment.StatusCompleted || pmt.Status == payment.StatusPartiallyRefunded) {
			res, rerr := s.paymentSvc.Refund(ctx, o.ID, pmt.Refundable(), reason)
			if rerr != nil {
				s.logger.Error("取消订单自动退款失败, 需人工处理",
					elog.FieldErr(rerr), elog.String("sn", orderSN))
			} else {
				fullyRefunded = res.Status == payment.StatusRefunded
			}
		}
	}
	// 退款成败与否, 库存都要释放
	if err = s.inventorySvc.Release(ctx, s.toReserveItems(o.Items), o.SN, &actor); err != nil {
		return fmt.Errorf("释放库存失败: %w", err)
	}
	// 退到100%的取消终态是已退款
	if fullyRefunded {
		err = o.MarkRefunded(actor.ID, string(actor.Type), reason)
	} else {
		err = o.Cancel(actor.ID, string(actor.Type), reason, isAdmin)
	}
	if err != nil {
		return err
	}
	if err = s.repo.UpdateStatus(ctx, o); err != nil {
		return fmt.Errorf("更新订单状态失败: %w", err)
	}
	s.auditSvc.Record(ctx, audit.Entry{
		Action:       "order_cancelled",
		Actor:        actor,
		ResourceType: "order",
		ResourceID:   o.SN,
		ResourceName: o.SN,
		Details: map[string]string{
			"reason":   reason,
			"refunded": fmt.Sprintf("%t", fullyRefunded),
		},
	})
	s.notificationSvc.SendOrderCancelled(ctx, s.orderInfo(o), reason)
	return nil
}

func (s *service) ProcessRefund(ctx context.Context, orderSN string, amount int64, reason string, actor audit.Actor) (payment.Payment, error) {
	o, err := s.repo.FindBySN(ctx, orderSN)
	if err != nil {
		return payment.Payment{}, fmt.Errorf("查找订单失败: %w", err)
	}
	if o.PaymentMethod == payment.MethodCOD.ToUint8() {
		return payment.Payment{}, ErrCODNotRefundable
	}
	pmt, err := s.paymentSvc.Refund(ctx, o.ID, amount, reason)
	if err != nil {
		return payment.Payment{}, err
	}
	// 库存无条件释放
	if err = s.inventorySvc.Release(ctx, s.toReserveItems(o.Items), o.SN, &actor); err != nil {
		return payment.Payment{}, fmt.Errorf("释放库存失败: %w", err)
	}
	if pmt.Status == payment.StatusRefunded {
		if err = o.MarkRefunded(actor.ID, string(actor.Type), reason); err != nil {
			return payment.Payment{}, err
		}
		if err = s.repo.UpdateStatus(ctx, o); err != nil {
			return payment.Payment{}, fmt.Errorf("更新订单状态失败: %w", err)
		}
	}
	s.auditSvc.Record(ctx, audit.Entry{
		Action:       "order_refunded",
		Actor:        actor,
		ResourceType: "order",
		ResourceID:   o.SN,
		ResourceName: o.SN,
		Details: map[string]string{
			"amount": fmt.Sprintf("%d", amount),
			"reason": reason,
		},
	})
	s.notificationSvc.SendRefundNotification(ctx, s.orderInfo(o), amount)
	return pmt, nil
}

func (s *service) FindByUIDAndSN(ctx context.Context, uid int64, sn string) (domain.Order, error) {
	return s.repo.FindByUIDAndSN(ctx, uid, sn)
}

func (s *service) FindBySN(ctx context.Context, sn string) (domain.Order, error) {
	return s.repo.FindBySN(ctx, sn)
}

func (s *service) List(ctx context.Context, uid int64, offset, limit int) ([]domain.Order, int64, error) {
	var (
		eg     errgroup.Group
		orders []domain.Order
		total  int64
	)
	eg.Go(func() error {
		var err error
		orders, err = s.repo.ListByUID(ctx, uid, offset, limit)
		return err
	})
	eg.Go(func() error {
		var err error
		total, err = s.repo.CountByUID(ctx, uid)
		return err
	})
	return orders, total, eg.Wait()
}

func (s *service) ListAll(ctx context.Context, offset, limit int) ([]domain.Order, int64, error) {
	var (
		eg     errgroup.Group
		orders []domain.Order
		total  int64
	)
	eg.Go(func() error {
		var err error
		orders, err = s.repo.List(ctx, offset, limit)
		return err
	})
	eg.Go(func() error {
		var err error
		total, err = s.repo.Count(ctx)
		return err
	})
	return orders, total, eg.Wait()
}

func (s *service) CloseExpiredOrders(ctx context.Context, before time.Time) error {
	const batchSize = 100
	for {
		orders, err := s.repo.FindExpired(ctx, domain.StatusPaymentPending, before.UnixMilli(), 0, batchSize)
		if err != nil {
			return fmt.Errorf("查找超时订单失败: %w", err)
		}
		for _, o := range orders {
			full, err := s.repo.FindBySN(ctx, o.SN)
			if err != nil {
				s.logger.Error("加载超时订单失败", elog.FieldErr(err), elog.String("sn", o.SN))
				continue
			}
			if err = s.HandlePaymentFailure(ctx, full.SN, "支付超时自动关闭"); err != nil {
				s.logger.Error("关闭超时订单失败", elog.FieldErr(err), elog.String("sn", o.SN))
			}
		}
		if len(orders) < batchSize {
			return nil
		}
	}
}

func (s *service) toReserveItems(items []domain.Item) []inventory.ReserveItem {
	return slice.Map(items, func(idx int, src domain.Item) inventory.ReserveItem {
		return inventory.ReserveItem{
			Target: inventory.Target{
				ProductID: src.ProductID,
				VariantID: src.VariantID,
			},
			Quantity: src.Quantity,
		}
	})
}

func (s *service) toLowStockProducts(records []inventory.Record, lines []cart.Line) []notification.LowStockProduct {
	return slice.Map(records, func(idx int, src inventory.Record) notification.LowStockProduct {
		res := notification.LowStockProduct{Stock: src.Stock}
		for _, line := range lines {
			if line.ProductID == src.Target.ProductID && line.VariantID == src.Target.VariantID {
				res.Name = line.Name
				res.SKUSN = line.SKUSN
				break
			}
		}
		return res
	})
}

func (s *service) orderInfo(o domain.Order) notification.OrderInfo {
	return notification.OrderInfo{
		SN:         o.SN,
		BuyerName:  o.BuyerName,
		BuyerEmail: o.BuyerEmail,
		Total:      o.Pricing.Total,
	}
}
