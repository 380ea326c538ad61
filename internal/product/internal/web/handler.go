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
	"github.com/ecodeclub/mall/internal/product/internal/domain"
	"github.com/ecodeclub/mall/internal/product/internal/service"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc service.Service
}

func NewHandler(svc service.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) PublicRoutes(server *gin.Engine) {
	g := server.Group("/product")
	g.POST("/detail", ginx.B[SPUDetailReq](h.Detail))
	g.POST("/sku/detail", ginx.B[SKUDetailReq](h.SKUDetail))
}

func (h *Handler) PrivateRoutes(_ *gin.Engine) {}

func (h *Handler) Detail(ctx *ginx.Context, req SPUDetailReq) (ginx.Result, error) {
	spu, err := h.svc.FindSPUByID(ctx.Request.Context(), req.ID)
	if err != nil {
		return systemErrorResult, fmt.Errorf("查找商品详情失败: %w", err)
	}
	return ginx.Result{Data: h.toSPUVO(spu)}, nil
}

func (h *Handler) SKUDetail(ctx *ginx.Context, req SKUDetailReq) (ginx.Result, error) {
	spu, err := h.svc.FindSKUBySN(ctx.Request.Context(), req.SN)
	if err != nil {
		return systemErrorResult, fmt.Errorf("查找SKU详情失败: %w", err)
	}
	return ginx.Result{Data: h.toSPUVO(spu)}, nil
}

func (h *Handler) toSPUVO(spu domain.SPU) SPU {
	return SPU{
		ID:     spu.ID,
		SN:     spu.SN,
		Name:   spu.Name,
		Desc:   spu.Desc,
		Status: spu.Status.ToUint8(),
		SKUs: slice.Map(spu.SKUs, func(idx int, src domain.SKU) SKU {
			return SKU{
				ID:    src.ID,
				SN:    src.SN,
				Name:  src.Name,
				Desc:  src.Desc,
				Price: src.Price,
				Attrs: src.Attrs,
				Image: src.Image,
			}
		}),
	}
}
