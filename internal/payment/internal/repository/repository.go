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
	"time"

	"github.com/ecodeclub/mall/internal/payment/internal/domain"
	"github.com/ecodeclub/mall/internal/payment/internal/repository/dao"
)

var (
	ErrPaymentNotFound = dao.ErrPaymentNotFound
	ErrRefundConflict  = dao.ErrRefundConflict
)

type PaymentRepository interface {
	FindOrCreate(ctx context.Context, pmt domain.Payment) (domain.Payment, error)
	FindByOrderID(ctx context.Context, orderID int64) (domain.Payment, error)
	FindByOrderSN(ctx context.Context, orderSN string) (domain.Payment, error)
	MarkCompleted(ctx context.Context, orderID int64, txnID string, paidAt int64) error
	MarkFailed(ctx context.Context, orderID int64) error
	// UpdateRefund 以 fromRefunded 为条件更新累计退款额和状态,
	// 读到的值已经过期时返回 ErrRefundConflict
	UpdateRefund(ctx context.Context, orderID int64, fromRefunded int64, refundedAmount int64, status domain.Status, reason string, refundTxnID string) error
	// SetRefundTxnID 网关退款成功后回写第三方退款单号
	SetRefundTxnID(ctx context.Context, orderID int64, refundTxnID string) error
}

func NewPaymentRepository(d dao.PaymentDAO) PaymentRepository {
	return &paymentRepository{d: d}
}

type paymentRepository struct {
	d dao.PaymentDAO
}

func (r *paymentRepository) FindOrCreate(ctx context.Context, pmt domain.Payment) (domain.Payment, error) {
	res, err := r.d.FindOrCreate(ctx, r.toEntity(pmt))
	if err != nil {
		return domain.Payment{}, err
	}
	return r.toDomain(res), nil
}

func (r *paymentRepository) FindByOrderID(ctx context.Context, orderID int64) (domain.Payment, error) {
	res, err := r.d.FindByOrderID(ctx, orderID)
	if err != nil {
		return domain.Payment{}, err
	}
	return r.toDomain(res), nil
}

func (r *paymentRepository) FindByOrderSN(ctx context.Context, orderSN string) (domain.Payment, error) {
	res, err := r.d.FindByOrderSN(ctx, orderSN)
	if err != nil {
		return domain.Payment{}, err
	}
	return r.toDomain(res), nil
}

func (r *paymentRepository) MarkCompleted(ctx context.Context, orderID int64, txnID string, paidAt int64) error {
	return r.d.Update(ctx, orderID, map[string]any{
		"status":  domain.StatusCompleted.ToUint8(),
		"txn_id":  txnID,
		"paid_at": paidAt,
	})
}

func (r *paymentRepository) MarkFailed(ctx context.Context, orderID int64) error {
	return r.d.Update(ctx, orderID, map[string]any{
		"status": domain.StatusFailed.ToUint8(),
	})
}

func (r *paymentRepository) UpdateRefund(ctx context.Context, orderID int64, fromRefunded int64, refundedAmount int64, status domain.Status, reason string, refundTxnID string) error {
	return r.d.UpdateRefund(ctx, orderID, fromRefunded, map[string]any{
		"refunded_amount": refundedAmount,
		"status":          status.ToUint8(),
		"refund_reason":   reason,
		"refund_txn_id":   refundTxnID,
		"refunded_at":     time.Now().UnixMilli(),
	})
}

func (r *paymentRepository) SetRefundTxnID(ctx context.Context, orderID int64, refundTxnID string) error {
	return r.d.Update(ctx, orderID, map[string]any{
		"refund_txn_id": refundTxnID,
	})
}

func (r *paymentRepository) toDomain(pmt dao.Payment) domain.Payment {
	return domain.Payment{
		ID:             pmt.Id,
		SN:             pmt.SN,
		OrderID:        pmt.OrderID,
		OrderSN:        pmt.OrderSN,
		Method:         domain.Method(pmt.Method),
		Amount:         pmt.Amount,
		Currency:       pmt.Currency,
		Status:         domain.Status(pmt.Status),
		TxnID:          pmt.TxnID,
		RefundedAmount: pmt.RefundedAmount,
		RefundReason:   pmt.RefundReason,
		RefundTxnID:    pmt.RefundTxnID,
		RefundedAt:     pmt.RefundedAt,
		PaidAt:         pmt.PaidAt,
		Ctime:          pmt.Ctime,
		Utime:          pmt.Utime,
	}
}

func (r *paymentRepository) toEntity(pmt domain.Payment) dao.Payment {
	return dao.Payment{
		Id:             pmt.ID,
		SN:             pmt.SN,
		OrderID:        pmt.OrderID,
		OrderSN:        pmt.OrderSN,
		Method:         pmt.Method.ToUint8(),
		Amount:         pmt.Amount,
		Currency:       pmt.Currency,
		Status:         pmt.Status.ToUint8(),
		TxnID:          pmt.TxnID,
		RefundedAmount: pmt.RefundedAmount,
		RefundReason:   pmt.RefundReason,
		RefundTxnID:    pmt.RefundTxnID,
		RefundedAt:     pmt.RefundedAt,
		PaidAt:         pmt.PaidAt,
	}
}
