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

package web

type CheckoutReq struct {
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	ShippingAddress Address `json:"shippingAddress"`
	BillingAddress  Address `json:"billingAddress"`
	PaymentMethod   uint8   `json:"paymentMethod"`
	Note            string  `json:"note"`
}

type ListOrdersReq struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type DetailReq struct {
	SN string `json:"sn"`
}

type CancelOrderReq struct {
	SN     string `json:"sn"`
	Reason string `json:"reason"`
}

type Address struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Province string `json:"province"`
	City     string `json:"city"`
	Detail   string `json:"detail"`
	Zip      string `json:"zip"`
}

type Item struct {
	ProductID int64  `json:"productId"`
	VariantID int64  `json:"variantId"`
	SKUSN     string `json:"skuSn"`
	Name      string `json:"name"`
	Image     string `json:"image"`
	Quantity  int64  `json:"quantity"`
	UnitPrice int64  `json:"unitPrice"`
	Subtotal  int64  `json:"subtotal"`
}

type PriceInfo struct {
	Subtotal int64 `json:"subtotal"`
	Discount int64 `json:"discount"`
	Shipping int64 `json:"shipping"`
	Tax      int64 `json:"tax"`
	Total    int64 `json:"total"`
}

type Tracking struct {
	Carrier string `json:"carrier"`
	Number  string `json:"number"`
	URL     string `json:"url"`
}

type StatusChange struct {
	Status     uint8  `json:"status"`
	StatusText string `json:"statusText"`
	ActorType  string `json:"actorType"`
	Note       string `json:"note"`
	Ctime      int64  `json:"ctime"`
}

type Order struct {
	SN              string         `json:"sn"`
	Status          uint8          `json:"status"`
	StatusText      string         `json:"statusText"`
	PaymentMethod   uint8          `json:"paymentMethod"`
	Items           []Item         `json:"items,omitempty"`
	ShippingAddress Address        `json:"shippingAddress"`
	BillingAddress  Address        `json:"billingAddress"`
	Pricing         PriceInfo      `json:"pricing"`
	Tracking        Tracking       `json:"tracking"`
	History         []StatusChange `json:"history,omitempty"`
	Ctime           int64          `json:"ctime"`
}

type OrderList struct {
	Total  int64   `json:"total"`
	Orders []Order `json:"orders"`
}

type ShipOrderReq struct {
	SN      string `json:"sn"`
	Carrier string `json:"carrier"`
	Number  string `json:"number"`
	URL     string `json:"url"`
	Note    string `json:"note"`
}

type DeliverOrderReq struct {
	SN   string `json:"sn"`
	Note string `json:"note"`
}

type CompleteOrderReq struct {
	SN   string `json:"sn"`
	Note string `json:"note"`
}

type HoldOrderReq struct {
	SN   string `json:"sn"`
	Note string `json:"note"`
}

type ResumeOrderReq struct {
	SN string `json:"sn"`
	// Status 恢复到的状态编码
	Status uint8  `json:"status"`
	Note   string `json:"note"`
}

type RefundResp struct {
	Status         uint8 `json:"status"`
	RefundedAmount int64 `json:"refundedAmount"`
}

type RefundReq struct {
	SN string `json:"sn"`
	// Amount 退款金额, 单位为分
	Amount int64  `json:"amount"`
	Reason string `json:"reason"`
}
