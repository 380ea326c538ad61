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
	"github.com/ecodeclub/mall/internal/order/internal/domain"
	"github.com/ecodeclub/mall/internal/order/internal/service"
	"github.com/ecodeclub/mall/internal/payment"
	"github.com/gin-gonic/gin"
)

var _ ginx.Handler = &AdminHandler{}

type AdminHandler struct {
	svc service.Service
}

func NewAdminHandler(svc service.Service) *AdminHandler {
	return &AdminHandler{svc: svc}
}

func (h *AdminHandler) PrivateRoutes(server *gin.Engine) {
	g := server.Group("/order")
	g.POST("/list", ginx.B[ListOrdersReq](h.ListOrders))
	g.POST("/detail", ginx.B[DetailReq](h.Detail))
	g.POST("/ship", ginx.BS[ShipOrderReq](h.ShipOrder))
	g.POST("/deliver", ginx.BS[DeliverOrderReq](h.DeliverOrder))
	g.POST("/complete", ginx.BS[CompleteOrderReq](h.CompleteOrder))
	g.POST("/hold", ginx.BS[HoldOrderReq](h.HoldOrder))
	g.POST("/resume", ginx.BS[ResumeOrderReq](h.ResumeOrder))
	g.POST("/cancel", ginx.BS[CancelOrderReq](h.CancelOrder))
	g.POST("/refund", ginx.BS[RefundReq](h.Refund))
}

func (h *AdminHandler) PublicRoutes(_ *gin.Engine) {}

func (h *AdminHandler) ListOrders(ctx *ginx.Context, req ListOrdersReq) (ginx.Result, error) {
	orders, total, err := h.svc.ListAll(ctx.Request.Context(), req.Offset, req.Limit)
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

func (h *AdminHandler) Detail(ctx *ginx.Context, req DetailReq) (ginx.Result, error) {
	o, err := h.svc.FindBySN(ctx.Request.Context(), req.SN)
	if errors.Is(err, service.ErrOrderNotFound) {
		return orderNotFoundResult, err
	}
	if err != nil {
		return systemErrorResult, fmt.Errorf("查询订单详情失败: %w", err)
	}
	return ginx.Result{Data: toVO(o)}, nil
}

func (h *AdminHandler) ShipOrder(ctx *ginx.Context, req ShipOrderReq, sess session.Session) (ginx.Result, error) {
	o, err := h.svc.ShipOrder(ctx.Request.Context(), req.SN, domain.Tracking{
		Carrier: req.Carrier,
		Number:  req.Number,
		URL:     req.URL,
	}, h.adminActor(sess), req.Note)
	if res, handled := h.mapErr(err); handled {
		return res, err
	}
	return ginx.Result{Data: toVO(o)}, nil
}

func (h *AdminHandler) DeliverOrder(ctx *ginx.Context, req DeliverOrderReq, sess session.Session) (ginx.Result, error) {
	o, err := h.svc.DeliverOrder(ctx.Request.Context(), req.SN, h.adminActor(sess), req.Note)
	if res, handled := h.mapErr(err); handled {
		return res, err
	}
	return ginx.Result{Data: toVO(o)}, nil
}

func (h *AdminHandler) CompleteOrder(ctx *ginx.Context, req CompleteOrderReq, sess session.Session) (ginx.Result, error) {
	err := h.svc.CompleteOrder(ctx.Request.Context(), req.SN, h.adminActor(sess), req.Note)
	if res, handled := h.mapErr(err); handled {
		return res, err
	}
	return ginx.Result{Msg: "OK"}, nil
}

func (h *AdminHandler) HoldOrder(ctx *ginx.Context, req HoldOrderReq, sess session.Session) (ginx.Result, error) {
	err := h.svc.HoldOrder(ctx.Request.Context(), req.SN, h.adminActor(sess), req.Note)
	if res, handled := h.mapErr(err); handled {
		return res, err
	}
	return ginx.Result{Msg: "OK"}, nil
}

func (h *AdminHandler) ResumeOrder(ctx *ginx.Context, req ResumeOrderReq, sess session.Session) (ginx.Result, error) {
	err := h.svc.ResumeOrder(ctx.Request.Context(), req.SN, domain.Status(req.Status), h.adminActor(sess), req.Note)
	if res, handled := h.mapErr(err); handled {
		return res, err
	}
	return ginx.Result{Msg: "OK"}, nil
}

func (h *AdminHandler) CancelOrder(ctx *ginx.Context, req CancelOrderReq, sess session.Session) (ginx.Result, error) {
	err := h.svc.CancelOrder(ctx.Request.Context(), req.SN, req.Reason, h.adminActor(sess), true)
	if res, handled := h.mapErr(err); handled {
		return res, err
	}
	return ginx.Result{Msg: "OK"}, nil
}

func (h *AdminHandler) Refund(ctx *ginx.Context, req RefundReq, sess session.Session) (ginx.Result, error) {
	pmt, err := h.svc.ProcessRefund(ctx.Request.Context(), req.SN, req.Amount, req.Reason, h.adminActor(sess))
	if errors.Is(err, service.ErrCODNotRefundable) ||
		errors.Is(err, payment.ErrExceedsRefundable) ||
		errors.Is(err, payment.ErrPaymentNotCompleted) {
		return invalidTransitionResult, err
	}
	if res, handled := h.mapErr(err); handled {
		return res, err
	}
	return ginx.Result{Data: RefundResp{
		Status:         pmt.Status.ToUint8(),
		RefundedAmount: pmt.RefundedAmount,
	}}, nil
}

func (h *AdminHandler) adminActor(sess session.Session) audit.Actor {
	return audit.Actor{
		ID:   sess.Claims().Uid,
		Type: audit.ActorTypeAdmin,
	}
}

func (h *AdminHandler) mapErr(err error) (ginx.Result, bool) {
	switch {
	case err == nil:
		return ginx.Result{}, false
	case errors.Is(err, service.ErrOrderNotFound):
		return orderNotFoundResult, true
	case errors.Is(err, domain.ErrInvalidTransition):
		return invalidTransitionResult, true
	default:
		return systemErrorResult, true
	}
}
