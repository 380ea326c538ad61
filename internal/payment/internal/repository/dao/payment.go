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
	ErrPaymentNotFound = gorm.ErrRecordNotFound
	ErrRefundConflict  = errors.New("退款记录已被并发修改")
)

type PaymentDAO interface {
	// FindOrCreate 按订单维度幂等创建支付记录。
	// 结算开始和支付确认是两个请求, 可能竞争或重试, 这里兜底
	FindOrCreate(ctx context.Context, pmt Payment) (Payment, error)
	FindByOrderID(ctx context.Context, orderID int64) (Payment, error)
	FindByOrderSN(ctx context.Context, orderSN string) (Payment, error)
	// Update 按订单ID更新给定字段
	Update(ctx context.Context, orderID int64, fields map[string]any) error
	// UpdateRefund 以读到的累计退款额为条件更新退款字段,
	// 并发退款在这里串行化, 冲突时返回 ErrRefundConflict
	UpdateRefund(ctx context.Context, orderID int64, fromRefunded int64, fields map[string]any) error
}

type PaymentGORMDAO struct {
	db *egorm.Component
}

func NewPaymentGORMDAO(db *egorm.Component) PaymentDAO {
	return &PaymentGORMDAO{db: db}
}

func (d *PaymentGORMDAO) FindOrCreate(ctx context.Context, pmt Payment) (Payment, error) {
	now := time.Now().UnixMilli()
	pmt.Ctime, pmt.Utime = now, now
	err := d.db.WithContext(ctx).
		FirstOrCreate(&pmt, "order_id = ?", pmt.OrderID).Error
	if err != nil {
		return Payment{}, fmt.Errorf("创建支付记录失败: %w", err)
	}
	return pmt, nil
}

func (d *PaymentGORMDAO) FindByOrderID(ctx context.Context, orderID int64) (Payment, error) {
	var res Payment
	err := d.db.WithContext(ctx).Where("order_id = ?", orderID).First(&res).Error
	return res, err
}

func (d *PaymentGORMDAO) FindByOrderSN(ctx context.Context, orderSN string) (Payment, error) {
	var res Payment
	err := d.db.WithContext(ctx).Where("order_sn = ?", orderSN).First(&res).Error
	return res, err
}

func (d *PaymentGORMDAO) Update(ctx context.Context, orderID int64, fields map[string]any) error {
	fields["utime"] = time.Now().UnixMilli()
	return d.db.WithContext(ctx).Model(&Payment{}).
		Where("order_id = ?", orderID).
		Updates(fields).Error
}

func (d *PaymentGORMDAO) UpdateRefund(ctx context.Context, orderID int64, fromRefunded int64, fields map[string]any) error {
	fields["utime"] = time.Now().UnixMilli()
	res := d.db.WithContext(ctx).Model(&Payment{}).
		Where("order_id = ? AND refunded_amount = ?", orderID, fromRefunded).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRefundConflict
	}
	return nil
}

func InitTables(db *egorm.Component) error {
	return db.AutoMigrate(&Payment{})
}

type Payment struct {
	Id             int64  `gorm:"primaryKey;autoIncrement;comment:支付自增ID"`
	SN             string `gorm:"column:sn;type:varchar(255);not null;uniqueIndex:uniq_payment_sn;comment:支付序列号"`
	OrderID        int64  `gorm:"column:order_id;not null;uniqueIndex:uniq_order_id;comment:订单自增ID,一单一支付"`
	OrderSN        string `gorm:"column:order_sn;type:varchar(255);not null;index:idx_order_sn;comment:订单序列号"`
	Method         uint8  `gorm:"type:tinyint unsigned;not null;comment:支付方式 1=货到付款 2=微信"`
	Amount         int64  `gorm:"not null;comment:支付金额,单位为分"`
	Currency       string `gorm:"type:varchar(16);not null;default:'CNY';comment:币种"`
	Status         uint8  `gorm:"type:tinyint unsigned;not null;default:1;comment:状态 1=待支付 2=已完成 3=失败 4=部分退款 5=已退款"`
	TxnID          string `gorm:"column:txn_id;type:varchar(255);not null;default:'';comment:第三方支付单号"`
	RefundedAmount int64  `gorm:"not null;default:0;comment:累计退款金额,单位为分"`
	RefundReason   string `gorm:"type:varchar(512);not null;default:'';comment:退款原因"`
	RefundTxnID    string `gorm:"column:refund_txn_id;type:varchar(255);not null;default:'';comment:第三方退款单号"`
	RefundedAt     int64  `gorm:"not null;default:0;comment:最近退款时间"`
	PaidAt         int64  `gorm:"not null;default:0;comment:支付完成时间"`
	Ctime          int64
	Utime          int64
}
