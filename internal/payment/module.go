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

package payment

import (
	"github.com/ecodeclub/mall/internal/payment/internal/domain"
	"github.com/ecodeclub/mall/internal/payment/internal/event"
	"github.com/ecodeclub/mall/internal/payment/internal/service"
	"github.com/ecodeclub/mall/internal/payment/internal/web"
)

type (
	WechatHandler = web.WechatHandler
	Service       = service.Service
	Payment       = domain.Payment
	Method        = domain.Method
	Status        = domain.Status
	Event         = event.PaymentEvent
)

const (
	MethodCOD    = domain.MethodCOD
	MethodWechat = domain.MethodWechat

	StatusPending           = domain.StatusPending
	StatusCompleted         = domain.StatusCompleted
	StatusFailed            = domain.StatusFailed
	StatusPartiallyRefunded = domain.StatusPartiallyRefunded
	StatusRefunded          = domain.StatusRefunded

	EventName            = event.PaymentEventName
	EventStatusCompleted = event.StatusCompleted
	EventStatusFailed    = event.StatusFailed
)

var (
	ErrPaymentNotFound     = service.ErrPaymentNotFound
	ErrPaymentNotCompleted = service.ErrPaymentNotCompleted
	ErrExceedsRefundable   = service.ErrExceedsRefundable
)

type Module struct {
	WechatHdl *WechatHandler
	Svc       Service
}
