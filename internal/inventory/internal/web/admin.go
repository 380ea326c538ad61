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
	"fmt"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/ginx/session"
	"github.com/ecodeclub/mall/internal/audit"
	"github.com/ecodeclub/mall/internal/inventory/internal/domain"
	"github.com/ecodeclub/mall/internal/inventory/internal/service"
	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	svc service.Service
}

func NewAdminHandler(svc service.Service) *AdminHandler {
	return &AdminHandler{svc: svc}
}

func (h *AdminHandler) PrivateRoutes(server *gin.Engine) {
	g := server.Group("/inventory")
	g.POST("/status", ginx.B[StockStatusReq](h.StockStatus))
	g.POST("/adjust", ginx.BS[BulkAdjustReq](h.BulkAdjust))
	g.POST("/save", ginx.B[SaveRecordReq](h.SaveRecord))
}

func (h *AdminHandler) PublicRoutes(_ *gin.Engine) {}

func (h *AdminHandler) StockStatus(ctx *ginx.Context, req StockStatusReq) (ginx.Result, error) {
	status, err := h.svc.StockStatus(ctx.Request.Context(), domain.Target{
		ProductID: req.ProductID,
		VariantID: req.VariantID,
	})
	if err != nil {
		return systemErrorResult, fmt.Errorf("查询库存状态失败: %w", err)
	}
	return ginx.Result{Data: StockStatusResp{
		Exists:   status.Exists,
		InStock:  status.InStock,
		Quantity: status.Quantity,
		LowStock: status.LowStock,
	}}, nil
}

func (h *AdminHandler) BulkAdjust(ctx *ginx.Context, req BulkAdjustReq, sess session.Session) (ginx.Result, error) {
	adjustments := slice.Map(req.Adjustments, func(idx int, src Adjustment) domain.Adjustment {
		return domain.Adjustment{
			Target: domain.Target{
				ProductID: src.ProductID,
				VariantID: src.VariantID,
			},
			Op:       domain.AdjustOp(src.Op),
			Quantity: src.Quantity,
		}
	})
	results, err := h.svc.BulkAdjust(ctx.Request.Context(), adjustments, audit.Actor{
		ID:   sess.Claims().Uid,
		Type: audit.ActorTypeAdmin,
	})
	if err != nil {
		return systemErrorResult, fmt.Errorf("批量调整库存失败: %w", err)
	}
	return ginx.Result{Data: BulkAdjustResp{
		Results: slice.Map(results, func(idx int, src domain.AdjustResult) AdjustResult {
			return AdjustResult{
				ProductID: src.Target.ProductID,
				VariantID: src.Target.VariantID,
				Success:   src.Success,
				Before:    src.Before,
				After:     src.After,
				Error:     src.Error,
			}
		}),
	}}, nil
}

func (h *AdminHandler) SaveRecord(ctx *ginx.Context, req SaveRecordReq) (ginx.Result, error) {
	err := h.svc.SaveRecord(ctx.Request.Context(), domain.Record{
		Target: domain.Target{
			ProductID: req.ProductID,
			VariantID: req.VariantID,
		},
		Stock:             req.Stock,
		Track:             req.Track,
		LowStockThreshold: req.LowStockThreshold,
	})
	if err != nil {
		return systemErrorResult, fmt.Errorf("保存库存记录失败: %w", err)
	}
	return ginx.Result{Msg: "OK"}, nil
}
