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
	"github.com/ecodeclub/mall/internal/cart/internal/domain"
	"github.com/ecodeclub/mall/internal/cart/internal/service"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc service.Service
}

func NewHandler(svc service.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) PrivateRoutes(server *gin.Engine) {
	g := server.Group("/cart")
	g.POST("/detail", ginx.BS[DetailReq](h.Detail))
	g.POST("/add", ginx.BS[AddReq](h.Add))
	g.POST("/update", ginx.BS[UpdateQuantityReq](h.UpdateQuantity))
	g.POST("/clear", ginx.BS[ClearReq](h.Clear))
}

func (h *Handler) PublicRoutes(_ *gin.Engine) {}

func (h *Handler) Detail(ctx *ginx.Context, _ DetailReq, sess session.Session) (ginx.Result, error) {
	cart, err := h.svc.Get(ctx.Request.Context(), sess.Claims().Uid)
	if err != nil {
		return systemErrorResult, fmt.Errorf("读取购物车失败: %w", err)
	}
	return ginx.Result{Data: h.toVO(cart)}, nil
}

func (h *Handler) Add(ctx *ginx.Context, req AddReq, sess session.Session) (ginx.Result, error) {
	cart, err := h.svc.Add(ctx.Request.Context(), sess.Claims().Uid, req.SKUSN, req.Quantity)
	if errors.Is(err, service.ErrInvalidQuantity) || errors.Is(err, service.ErrSKUNotFound) {
		return invalidCartResult, err
	}
	if err != nil {
		return systemErrorResult, fmt.Errorf("加购失败: %w", err)
	}
	return ginx.Result{Data: h.toVO(cart)}, nil
}

func (h *Handler) UpdateQuantity(ctx *ginx.Context, req UpdateQuantityReq, sess session.Session) (ginx.Result, error) {
	cart, err := h.svc.UpdateQuantity(ctx.Request.Context(), sess.Claims().Uid, req.SKUSN, req.Quantity)
	if errors.Is(err, service.ErrInvalidQuantity) {
		return invalidCartResult, err
	}
	if err != nil {
		return systemErrorResult, fmt.Errorf("更新购物车失败: %w", err)
	}
	return ginx.Result{Data: h.toVO(cart)}, nil
}

func (h *Handler) Clear(ctx *ginx.Context, _ ClearReq, sess session.Session) (ginx.Result, error) {
	if err := h.svc.Clear(ctx.Request.Context(), sess.Claims().Uid); err != nil {
		return systemErrorResult, fmt.Errorf("清空购物车失败: %w", err)
	}
	return ginx.Result{Msg: "OK"}, nil
}

func (h *Handler) toVO(cart domain.Cart) Cart {
	return Cart{
		DiscountAmount: cart.DiscountAmount,
		Subtotal:       cart.Subtotal(),
		Lines: slice.Map(cart.Lines, func(idx int, src domain.Line) Line {
			return Line{
				ProductID: src.ProductID,
				VariantID: src.VariantID,
				SKUSN:     src.SKUSN,
				Name:      src.Name,
				Image:     src.Image,
				Quantity:  src.Quantity,
				UnitPrice: src.UnitPrice,
				Subtotal:  src.Subtotal(),
			}
		}),
	}
}
