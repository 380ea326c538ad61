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
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/ecodeclub/mall/internal/payment/internal/domain"
	"github.com/ecodeclub/mall/internal/payment/internal/event"
	"github.com/ecodeclub/mall/internal/payment/internal/repository"
	"github.com/gotomicro/ego/core/elog"
	"github.com/wechatpay-apiv3/wechatpay-go/services/payments"
)

var (
	ErrPaymentNotFound     = repository.ErrPaymentNotFound
	ErrPaymentNotCompleted = errors.New("支付未完成, 不能退款")
	ErrExceedsRefundable   = errors.New("退款金额超过可退余额")
)

// Gateway 外部支付网关的退款能力。未配置时 IsConfigured 返回 false,
// 退款降级为仅本地记录
type Gateway interface {
	IsConfigured() bool
	Refund(ctx context.Context, pmt domain.Payment, refundSN string, amount int64, reason string) (string, error)
}

//go:generate mockgen -source=./service.go -destination=../../mocks/payment.mock.go -package=paymentmocks -typed Service
type Service interface {
	// CreatePayment 按订单幂等创建支付记录, 重复调用返回已有记录
	CreatePayment(ctx context.Context, pmt domain.Payment) (domain.Payment, error)
	FindByOrderID(ctx context.Context, orderID int64) (domain.Payment, error)
	FindByOrderSN(ctx context.Context, orderSN string) (domain.Payment, error)
	MarkCompleted(ctx context.Context, orderID int64, txnID string) error
	MarkFailed(ctx context.Context, orderID int64) error
	// Refund 退款。全额退完后状态置为已退款, 否则为部分退款。
	// 网关未配置时仅本地记录
	Refund(ctx context.Context, orderID int64, amount int64, reason string) (domain.Payment, error)
	// HandleWechatCallback 微信支付结果回调, 更新支付记录并发出支付结果事件
	HandleWechatCallback(ctx context.Context, txn *payments.Transaction) error
}

func NewService(repo repository.PaymentRepository,
	gateway Gateway,
	producer event.PaymentEventProducer,
	node *snowflake.Node) Service {
	return &service{
		repo:     repo,
		gateway:  gateway,
		producer: producer,
		node:     node,
		logger:   elog.DefaultLogger,
	}
}

type service struct {
	repo     repository.PaymentRepository
	gateway  Gateway
	producer event.PaymentEventProducer
	node     *snowflake.Node
	logger   *elog.Component
}

func (s *service) CreatePayment(ctx context.Context, pmt domain.Payment) (domain.Payment, error) {
	pmt.SN = s.node.Generate().String()
	if pmt.Currency == "" {
		pmt.Currency = "CNY"
	}
	pmt.Status = domain.StatusPending
	return s.repo.FindOrCreate(ctx, pmt)
}

func (s *service) FindByOrderID(ctx context.Context, orderID int64) (domain.Payment, error) {
	return s.repo.FindByOrderID(ctx, orderID)
}

func (s *service) FindByOrderSN(ctx context.Context, orderSN string) (domain.Payment, error) {
	return s.repo.FindByOrderSN(ctx, orderSN)
}

func (s *service) MarkCompleted(ctx context.Context, orderID int64, txnID string) error {
	return s.repo.MarkCompleted(ctx, orderID, txnID, time.Now().UnixMilli())
}

func (s *service) MarkFailed(ctx context.Context, orderID int64) error {
	return s.repo.MarkFailed(ctx, orderID)
}

func (s *service) Refund(ctx context.Context, orderID int64, amount int64, reason string) (domain.Payment, error) {
	// 先用条件更新占住退款额度再走网关, 并发退款在累计退款额上串行化,
	// 累计额不可能超过支付金额。网关失败时把占住的额度吐回去
	const maxAttempts = 3
	for i := 0; i < maxAttempts; i++ {
		pmt, err := s.repo.FindByOrderID(ctx, orderID)
		if err != nil {
			return domain.Payment{}, fmt.Errorf("查找支付记录失败: %w", err)
		}
		if pmt.Status != domain.StatusCompleted && pmt.Status != domain.StatusPartiallyRefunded {
			return domain.Payment{}, ErrPaymentNotCompleted
		}
		if amount <= 0 || amount > pmt.Refundable() {
			return domain.Payment{}, ErrExceedsRefundable
		}
		newRefunded := pmt.RefundedAmount + amount
		newStatus := domain.StatusPartiallyRefunded
		if newRefunded == pmt.Amount {
			newStatus = domain.StatusRefunded
		}
		err = s.repo.UpdateRefund(ctx, orderID, pmt.RefundedAmount, newRefunded, newStatus, reason, "")
		if errors.Is(err, repository.ErrRefundConflict) {
			// 并发退款抢先改了累计额, 重读再校验
			continue
		}
		if err != nil {
			return domain.Payment{}, fmt.Errorf("更新退款记录失败: %w", err)
		}
		var refundTxnID string
		if s.gateway.IsConfigured() {
			refundSN := fmt.Sprintf("R%s", s.node.Generate().String())
			refundTxnID, err = s.gateway.Refund(ctx, pmt, refundSN, amount, reason)
			if err != nil {
				if rerr := s.repo.UpdateRefund(ctx, orderID, newRefunded,
					pmt.RefundedAmount, pmt.Status, pmt.RefundReason, pmt.RefundTxnID); rerr != nil {
					s.logger.Error("网关失败后回滚退款额度失败, 需人工对账",
						elog.FieldErr(rerr), elog.String("order_sn", pmt.OrderSN))
				}
				return domain.Payment{}, fmt.Errorf("网关退款失败: %w", err)
			}
			if err = s.repo.SetRefundTxnID(ctx, orderID, refundTxnID); err != nil {
				s.logger.Warn("回写退款单号失败",
					elog.FieldErr(err), elog.String("order_sn", pmt.OrderSN))
			}
		} else {
			s.logger.Warn("支付网关未配置, 仅本地记录退款",
				elog.String("order_sn", pmt.OrderSN),
				elog.Int64("amount", amount))
		}
		pmt.RefundedAmount = newRefunded
		pmt.Status = newStatus
		pmt.RefundReason = reason
		pmt.RefundTxnID = refundTxnID
		return pmt, nil
	}
	return domain.Payment{}, fmt.Errorf("退款失败: %w", repository.ErrRefundConflict)
}

func (s *service) HandleWechatCallback(ctx context.Context, txn *payments.Transaction) error {
	if txn.OutTradeNo == nil || txn.TradeState == nil {
		return fmt.Errorf("回调缺少必要字段")
	}
	orderSN := *txn.OutTradeNo
	pmt, err := s.repo.FindByOrderSN(ctx, orderSN)
	if err != nil {
		return fmt.Errorf("回调找不到支付记录 %s: %w", orderSN, err)
	}
	var txnID string
	if txn.TransactionId != nil {
		txnID = *txn.TransactionId
	}
	switch *txn.TradeState {
	case "SUCCESS":
		if err = s.repo.MarkCompleted(ctx, pmt.OrderID, txnID, time.Now().UnixMilli()); err != nil {
			return fmt.Errorf("标记支付完成失败: %w", err)
		}
		return s.producer.Produce(ctx, event.PaymentEvent{
			OrderSN: orderSN,
			Status:  event.StatusCompleted,
			TxnID:   txnID,
		})
	case "CLOSED", "REVOKED", "PAYERROR":
		if err = s.repo.MarkFailed(ctx, pmt.OrderID); err != nil {
			return fmt.Errorf("标记支付失败失败: %w", err)
		}
		return s.producer.Produce(ctx, event.PaymentEvent{
			OrderSN: orderSN,
			Status:  event.StatusFailed,
			Reason:  *txn.TradeState,
		})
	default:
		// NOTPAY/USERPAYING 等中间态, 等下一次回调
		s.logger.Info("忽略中间态支付回调",
			elog.String("order_sn", orderSN),
			elog.String("trade_state", *txn.TradeState))
		return nil
	}
}
