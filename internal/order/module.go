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

package order

import (
	"github.com/ecodeclub/mall/internal/order/internal/domain"
	"github.com/ecodeclub/mall/internal/order/internal/event"
	"github.com/ecodeclub/mall/internal/order/internal/job"
	"github.com/ecodeclub/mall/internal/order/internal/service"
	"github.com/ecodeclub/mall/internal/order/internal/web"
)

type (
	Handler      = web.Handler
	AdminHandler = web.AdminHandler
	Service      = service.Service
	Customer     = service.Customer
	Order        = domain.Order
	Item         = domain.Item
	Address      = domain.Address
	Tracking     = domain.Tracking
	Status       = domain.Status
	Consumer     = event.PaymentEventConsumer

	CloseExpiredOrdersJob = job.CloseExpiredOrdersJob
)

const (
	StatusPaymentPending = domain.StatusPaymentPending
	StatusPending        = domain.StatusPending
	StatusProcessing     = domain.StatusProcessing
	StatusShipped        = domain.StatusShipped
	StatusDelivered      = domain.StatusDelivered
	StatusCompleted      = domain.StatusCompleted
	StatusCancelled      = domain.StatusCancelled
	StatusRefunded       = domain.StatusRefunded
	StatusOnHold         = domain.StatusOnHold
)

var (
	ErrOrderNotFound         = service.ErrOrderNotFound
	ErrInvalidTransition     = domain.ErrInvalidTransition
	NewCloseExpiredOrdersJob = job.NewCloseExpiredOrdersJob
)

type Module struct {
	Hdl      *Handler
	AdminHdl *AdminHandler
	Svc      Service
	C        *Consumer
}
