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

package domain

type Method uint8

func (m Method) ToUint8() uint8 {
	return uint8(m)
}

const (
	// MethodCOD 货到付款, 收货时标记收款
	MethodCOD Method = 1
	// MethodWechat 微信在线支付
	MethodWechat Method = 2
)

type Status uint8

func (s Status) ToUint8() uint8 {
	return uint8(s)
}

const (
	StatusPending           Status = 1
	StatusCompleted         Status = 2
	StatusFailed            Status = 3
	StatusPartiallyRefunded Status = 4
	StatusRefunded          Status = 5
)

// Payment 与订单一对一, 延迟创建。
// RefundedAmount 累计退款额, 永远不超过 Amount
type Payment struct {
	ID      int64
	SN      string
	OrderID int64
	OrderSN string
	Method  Method
	// Amount 单位为分
	Amount   int64
	Currency string
	Status   Status
	// TxnID 第三方支付单号
	TxnID          string
	RefundedAmount int64
	RefundReason   string
	// RefundTxnID 第三方退款单号, 降级本地退款时为空
	RefundTxnID string
	RefundedAt  int64
	PaidAt      int64
	Ctime       int64
	Utime       int64
}

// Refundable 剩余可退金额
func (p Payment) Refundable() int64 {
	return p.Amount - p.RefundedAmount
}
