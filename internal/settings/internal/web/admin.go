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

	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/mall/internal/settings/internal/service"
	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	svc service.Service
}

func NewAdminHandler(svc service.Service) *AdminHandler {
	return &AdminHandler{svc: svc}
}

func (h *AdminHandler) PrivateRoutes(server *gin.Engine) {
	g := server.Group("/settings")
	g.POST("/detail", ginx.B[SettingReq](h.Setting))
	g.POST("/update", ginx.B[UpdateSettingReq](h.UpdateSetting))
}

func (h *AdminHandler) PublicRoutes(_ *gin.Engine) {}

func (h *AdminHandler) Setting(ctx *ginx.Context, req SettingReq) (ginx.Result, error) {
	val := h.svc.Get(ctx.Request.Context(), req.Key, "")
	return ginx.Result{
		Data: SettingResp{Key: req.Key, Value: val},
	}, nil
}

// UpdateSetting 更新配置并失效缓存, 下一次读取走数据库
func (h *AdminHandler) UpdateSetting(ctx *ginx.Context, req UpdateSettingReq) (ginx.Result, error) {
	if req.Key == "" {
		return systemErrorResult, fmt.Errorf("配置键为空")
	}
	err := h.svc.Set(ctx.Request.Context(), req.Key, req.Value)
	if err != nil {
		return systemErrorResult, fmt.Errorf("更新配置失败: %w", err)
	}
	return ginx.Result{Msg: "OK"}, nil
}
