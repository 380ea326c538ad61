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

import (
	"errors"
	"fmt"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/ginx/session"
	"github.com/ecodeclub/mall/internal/audit"
	"github.com/ecodeclub/mall/internal/cart"
	"github.com/ecodeclub/mall/internal/order/internal/domain"
	"github.com/ecodeclub/mall/internal/order/internal/service"
	"github.com/ecodeclub/mall/internal/payment"
	"github.com/gin-gonic/gin"
)

var _ ginx.Handler = &Handler{}

type Handler struct {
	svc service.Service
}

func NewHandler(svc service.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) PrivateRoutes(server *gin.Engine) {
	g := server.Group("/order")
	g.POST("/checkout", ginx.BS[CheckoutReq](h.Checkout))
	g.POST("/list", ginx.BS[ListOrdersReq](h.ListOrders))
	g.POST("/detail", ginx.BS[DetailReq](h.Detail))
	g.POST("/cancel", ginx.BS[CancelOrderReq](h.CancelOrder))
}

func (h *Handler) PublicRoutes(_ *gin.Engine) {}

// Checkout 从购物车结算下单。货到付款的订单同步进入处理中,
// 在线支付的订单停在待支付, 等支付回调推进
func (h *Handler) Checkout(ctx *ginx.Context, req CheckoutReq, sess session.Session) (ginx.Result, error) {
	uid := sess.Claims().Uid
	o, err := h.svc.CreateOrderFromCart(ctx.Request.Context(), service.Customer{
		ID:    uid,
		Name:  req.Name,
		Email: req.Email,
	}, service.CreateOrderReq{
		ShippingAddress: toAddress(req.ShippingAddress),
		BillingAddress:  toAddress(req.BillingAddress),
		PaymentMethod:   req.PaymentMethod,
		Note:            req.Note,
	})
	var rfe *service.ReserveFailedError
	if errors.As(err, &rfe) {
		return insufficientStockResult, err
	}
	if errors.Is(err, cart.ErrEmptyCart) || errors.Is(err, cart.ErrInvalidQuantity) {
		return invalidCartResult, err
	}
	if err != nil {
		return systemErrorResult, fmt.Errorf("下单失败: %w", err)
	}
	if o.PaymentMethod == payment.MethodCOD.ToUint8() {
		if err = h.svc.ProcessCODOrder(ctx.Request.Context(), o.SN); err != nil {
			return systemErrorResult, fmt.Errorf("确认货到付款订单失败: %w", err)
		}
		o, err = h.svc.FindByUIDAndSN(ctx.Request.Context(), uid, o.SN)
		if err != nil {
			return systemErrorResult, fmt.Errorf("查找订单失败: %w", err)
		}
	}
	return ginx.Result{Data: toVO(o)}, nil
}

func (h *Handler) ListOrders(ctx *ginx.Context, req ListOrdersReq, sess session.Session) (ginx.Result, error) {
	orders, total, err := h.svc.List(ctx.Request.Context(), sess.Claims().Uid, req.Offset, req.Limit)
	if err != nil {
		return systemErrorResult, fmt.Errorf("查询订单列表失败: %w", err)
	}
	return ginx.Result{Data: OrderList{
		Total: total,
		Orders: slice.Map(orders, func(idx int, src domain.Order) Order {
			return toVO(src)
		}),
	}}, nil
}

func (h *Handler) Detail(ctx *ginx.Context, req DetailReq, sess session.Session) (ginx.Result, error) {
	o, err := h.svc.FindByUIDAndSN(ctx.Request.Context(), sess.Claims().Uid, req.SN)
	if errors.Is(err, service.ErrOrderNotFound) {
		return orderNotFoundResult, err
	}
	if err != nil {
		return systemErrorResult, fmt.Errorf("查询订单详情失败: %w", err)
	}
	return ginx.Result{Data: toVO(o)}, nil
}

func (h *Handler) CancelOrder(ctx *ginx.Context, req CancelOrderReq, sess session.Session) (ginx.Result, error) {
	uid := sess.Claims().Uid
	// 先做归属校验, 买家只能取消自己的订单
	if _, err := h.svc.FindByUIDAndSN(ctx.Request.Context(), uid, req.SN); err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			return orderNotFoundResult, err
		}
		return systemErrorResult, fmt.Errorf("查找订单失败: %w", err)
	}
	err := h.svc.CancelOrder(ctx.Request.Context(), req.SN, req.Reason, audit.Actor{
		ID:   uid,
		Type: audit.ActorTypeCustomer,
	}, false)
	if errors.Is(err, domain.ErrInvalidTransition) {
		return invalidTransitionResult, err
	}
	if err != nil {
		return systemErrorResult, fmt.Errorf("取消订单失败: %w", err)
	}
	return ginx.Result{Msg: "OK"}, nil
}

func toAddress(a Address) domain.Address {
	return domain.Address{
		Name:     a.Name,
		Phone:    a.Phone,
		Province: a.Province,
		City:     a.City,
		Detail:   a.Detail,
		Zip:      a.Zip,
	}
}

func toVO(o domain.Order) Order {
	return Order{
		SN:            o.SN,
		Status:        o.Status.ToUint8(),
		StatusText:    o.Status.String(),
		PaymentMethod: o.PaymentMethod,
		Items: slice.Map(o.Items, func(idx int, src domain.Item) Item {
			return Item{
				ProductID: src.ProductID,
				VariantID: src.VariantID,
				SKUSN:     src.SKUSN,
				Name:      src.Name,
				Image:     src.Image,
				Quantity:  src.Quantity,
				UnitPrice: src.UnitPrice,
				Subtotal:  src.Subtotal,
			}
		}),
		ShippingAddress: toAddressVO(o.ShippingAddress),
		BillingAddress:  toAddressVO(o.BillingAddress),
		Pricing: PriceInfo{
			Subtotal: o.Pricing.Subtotal,
			Discount: o.Pricing.Discount,
			Shipping: o.Pricing.Shipping,
			Tax:      o.Pricing.Tax,
			Total:    o.Pricing.Total,
		},
		Tracking: Tracking{
			Carrier: o.Tracking.Carrier,
			Number:  o.Tracking.Number,
			URL:     o.Tracking.URL,
		},
		History: slice.Map(o.History, func(idx int, src domain.StatusChange) StatusChange {
			return StatusChange{
				Status:     src.Status.ToUint8(),
				StatusText: src.Status.String(),
				ActorType:  src.ActorType,
				Note:       src.Note,
				Ctime:      src.Ctime,
			}
		}),
		Ctime: o.Ctime,
	}
}

func toAddressVO(a domain.Address) Address {
	return Address{
		Name:     a.Name,
		Phone:    a.Phone,
		Province: a.Province,
		City:     a.City,
		Detail:   a.Detail,
		Zip:      a.Zip,
	}
}
