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

package event

const NotificationEventName = "notification_events"

const (
	TypeOrderConfirmation = "order_confirmation"
	TypeOrderShipped      = "order_shipped"
	TypeOrderDelivered    = "order_delivered"
	TypeOrderCancelled    = "order_cancelled"
	TypeRefundIssued      = "refund_issued"
	TypeLowStockAlert     = "low_stock_alert"
	TypeAdminNewOrder     = "admin_new_order"
)

type NotificationEvent struct {
	Type           string `json:"type"`
	OrderSN        string `json:"orderSn,omitempty"`
	RecipientEmail string `json:"recipientEmail,omitempty"`
	RecipientName  string `json:"recipientName,omitempty"`
	// Amount 金额, 单位为分
	Amount   int64          `json:"amount,omitempty"`
	Reason   string         `json:"reason,omitempty"`
	Products []ProductAlert `json:"products,omitempty"`
}

type ProductAlert struct {
	Name  string `json:"name"`
	SKUSN string `json:"skuSn"`
	Stock int64  `json:"stock"`
}
