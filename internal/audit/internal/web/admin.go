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
	"github.com/ecodeclub/mall/internal/audit/internal/domain"
	"github.com/ecodeclub/mall/internal/audit/internal/service"
	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	svc service.Service
}

func NewAdminHandler(svc service.Service) *AdminHandler {
	return &AdminHandler{svc: svc}
}

func (h *AdminHandler) PrivateRoutes(server *gin.Engine) {
	g := server.Group("/audit")
	g.POST("/list", ginx.B[ListAuditLogsReq](h.ListAuditLogs))
}

func (h *AdminHandler) PublicRoutes(_ *gin.Engine) {}

func (h *AdminHandler) ListAuditLogs(ctx *ginx.Context, req ListAuditLogsReq) (ginx.Result, error) {
	entries, total, err := h.svc.List(ctx.Request.Context(), req.Offset, req.Limit)
	if err != nil {
		return ginx.Result{}, fmt.Errorf("查询审计日志失败: %w", err)
	}
	return ginx.Result{
		Data: ListAuditLogsResp{
			Total: total,
			Logs: slice.Map(entries, func(idx int, src domain.Entry) AuditLog {
				return AuditLog{
					ID:           src.ID,
					Action:       src.Action,
					ActorID:      src.Actor.ID,
					ActorType:    string(src.Actor.Type),
					ActorName:    src.Actor.Name,
					ResourceType: src.ResourceType,
					ResourceID:   src.ResourceID,
					ResourceName: src.ResourceName,
					Details:      src.Details,
					Ctime:        src.Ctime,
				}
			}),
		},
	}, nil
}
