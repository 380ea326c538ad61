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

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidTransition = errors.New("非法的订单状态流转")

type Status uint8

func (s Status) ToUint8() uint8 {
	return uint8(s)
}

const (
	// StatusPaymentPending 在线支付下单后等待支付结果
	StatusPaymentPending Status = 1
	// StatusPending 货到付款下单后的初始状态
	StatusPending    Status = 2
	StatusProcessing Status = 3
	StatusShipped    Status = 4
	StatusDelivered  Status = 5
	StatusCompleted  Status = 6
	StatusCancelled  Status = 7
	StatusRefunded   Status = 8
	// StatusOnHold 管理员挂起, 只能由管理员恢复
	StatusOnHold Status = 9
)

func (s Status) String() string {
	switch s {
	case StatusPaymentPending:
		return "待支付"
	case StatusPending:
		return "待处理"
	case StatusProcessing:
		return "处理中"
	case StatusShipped:
		return "已发货"
	case StatusDelivered:
		return "已送达"
	case StatusCompleted:
		return "已完成"
	case StatusCancelled:
		return "已取消"
	case StatusRefunded:
		return "已退款"
	case StatusOnHold:
		return "已挂起"
	default:
		return fmt.Sprintf("未知状态(%d)", s)
	}
}

// Terminal 终态不允许任何复活
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusRefunded
}

type Item struct {
	ProductID int64
	VariantID int64
	SKUSN     string
	Name      string
	Image     string
	Quantity  int64
	// UnitPrice 下单时刻的快照单价, 单位为分
	UnitPrice int64
	Subtotal  int64
}

type Address struct {
	Name     string
	Phone    string
	Province string
	City     string
	Detail   string
	Zip      string
}

// PriceInfo 下单时冻结的价格明细, 此后不再重算
type PriceInfo struct {
	Subtotal int64
	Discount int64
	Shipping int64
	Tax      int64
	Total    int64
}

type Tracking struct {
	Carrier string
	Number  string
	URL     string
}

// StatusChange 状态流转历史, 只追加不改写
type StatusChange struct {
	Status    Status
	ActorID   int64
	ActorType string
	Note      string
	Ctime     int64
}

type Order struct {
	ID              int64
	SN              string
	BuyerID         int64
	BuyerName       string
	BuyerEmail      string
	Items           []Item
	ShippingAddress Address
	BillingAddress  Address
	Pricing         PriceInfo
	Status          Status
	History         []StatusChange
	Tracking        Tracking
	AdminNotes      string
	// PaymentMethod 与支付模块的支付方式编码一致
	PaymentMethod uint8
	// Version 乐观锁版本号, 由存储层维护
	Version int64
	Ctime   int64
	Utime   int64
}

// CanCancel 买家自助取消的资格, 发货后不再允许
func (o *Order) CanCancel() bool {
	switch o.Status {
	case StatusPaymentPending, StatusPending, StatusProcessing:
		return true
	default:
		return false
	}
}

func (o *Order) transition(status Status, actorID int64, actorType, note string) {
	o.Status = status
	o.History = append(o.History, StatusChange{
		Status:    status,
		ActorID:   actorID,
		ActorType: actorType,
		Note:      note,
		Ctime:     time.Now().UnixMilli(),
	})
}

// MarkProcessing 支付确定后进入处理中
func (o *Order) MarkProcessing(actorID int64, actorType, note string) error {
	if o.Status != StatusPaymentPending && o.Status != StatusPending {
		return fmt.Errorf("%w: %s 不能进入处理中", ErrInvalidTransition, o.Status)
	}
	o.transition(StatusProcessing, actorID, actorType, note)
	return nil
}

// Ship 发货。已发货及之后的重复调用只更新物流信息不报错,
// 返回值表示这次调用是否真的发生了状态流转
func (o *Order) Ship(tracking Tracking, actorID int64, actorType, note string) (bool, error) {
	switch o.Status {
	case StatusProcessing:
		o.Tracking = tracking
		o.transition(StatusShipped, actorID, actorType, note)
		return true, nil
	case StatusShipped, StatusDelivered, StatusCompleted:
		o.Tracking = tracking
		return false, nil
	default:
		return false, fmt.Errorf("%w: %s 不能发货", ErrInvalidTransition, o.Status)
	}
}

func (o *Order) Deliver(actorID int64, actorType, note string) error {
	if o.Status != StatusShipped {
		return fmt.Errorf("%w: %s 不能确认送达", ErrInvalidTransition, o.Status)
	}
	o.transition(StatusDelivered, actorID, actorType, note)
	return nil
}

func (o *Order) Complete(actorID int64, actorType, note string) error {
	if o.Status != StatusDelivered {
		return fmt.Errorf("%w: %s 不能完成订单", ErrInvalidTransition, o.Status)
	}
	o.transition(StatusCompleted, actorID, actorType, note)
	return nil
}

// CancelAllowed 校验取消资格, 不做流转
func (o *Order) CancelAllowed(isAdmin bool) error {
	if o.Status.Terminal() {
		return fmt.Errorf("%w: %s 是终态", ErrInvalidTransition, o.Status)
	}
	if !isAdmin && !o.CanCancel() {
		return fmt.Errorf("%w: %s 不能自助取消", ErrInvalidTransition, o.Status)
	}
	return nil
}

// Cancel 取消订单。isAdmin 为 true 时绕过买家取消资格检查
func (o *Order) Cancel(actorID int64, actorType, note string, isAdmin bool) error {
	if err := o.CancelAllowed(isAdmin); err != nil {
		return err
	}
	o.transition(StatusCancelled, actorID, actorType, note)
	return nil
}

func (o *Order) MarkRefunded(actorID int64, actorType, note string) error {
	if o.Status.Terminal() {
		return fmt.Errorf("%w: %s 是终态", ErrInvalidTransition, o.Status)
	}
	o.transition(StatusRefunded, actorID, actorType, note)
	return nil
}

// Hold 管理员挂起
func (o *Order) Hold(actorID int64, note string) error {
	if o.Status.Terminal() {
		return fmt.Errorf("%w: %s 是终态", ErrInvalidTransition, o.Status)
	}
	o.transition(StatusOnHold, actorID, "admin", note)
	return nil
}

// Resume 从挂起恢复到指定状态
func (o *Order) Resume(status Status, actorID int64, note string) error {
	if o.Status != StatusOnHold {
		return fmt.Errorf("%w: %s 不是挂起状态", ErrInvalidTransition, o.Status)
	}
	if status.Terminal() || status == StatusOnHold {
		return fmt.Errorf("%w: 不能恢复到 %s", ErrInvalidTransition, status)
	}
	o.transition(status, actorID, "admin", note)
	return nil
}
