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

package service

import (
	"context"
	"time"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/mall/internal/notification/internal/domain"
	"github.com/ecodeclub/mall/internal/notification/internal/event"
	"github.com/gotomicro/ego/core/elog"
)

// Service 面向业务流程的通知出口。
// 所有方法都是即发即忘: 事件异步发送, 失败只记日志,
// 不重试, 也绝不阻塞调用方的状态变更
//
//go:generate mockgen -source=./service.go -destination=../../mocks/notification.mock.go -package=notificationmocks -typed Service
type Service interface {
	SendOrderConfirmation(ctx context.Context, o domain.OrderInfo)
	SendOrderShipped(ctx context.Context, o domain.OrderInfo)
	SendOrderDelivered(ctx context.Context, o domain.OrderInfo)
	SendOrderCancelled(ctx context.Context, o domain.OrderInfo, reason string)
	SendRefundNotification(ctx context.Context, o domain.OrderInfo, amount int64)
	SendLowStockAlert(ctx context.Context, products []domain.LowStockProduct)
	NotifyAdminNewOrder(ctx context.Context, o domain.OrderInfo)
}

func NewService(producer event.NotificationEventProducer) Service {
	return &service{producer: producer, logger: elog.DefaultLogger}
}

type service struct {
	producer event.NotificationEventProducer
	logger   *elog.Component
}

func (s *service) SendOrderConfirmation(ctx context.Context, o domain.OrderInfo) {
	s.send(ctx, s.orderEvent(event.TypeOrderConfirmation, o))
}

func (s *service) SendOrderShipped(ctx context.Context, o domain.OrderInfo) {
	s.send(ctx, s.orderEvent(event.TypeOrderShipped, o))
}

func (s *service) SendOrderDelivered(ctx context.Context, o domain.OrderInfo) {
	s.send(ctx, s.orderEvent(event.TypeOrderDelivered, o))
}

func (s *service) SendOrderCancelled(ctx context.Context, o domain.OrderInfo, reason string) {
	evt := s.orderEvent(event.TypeOrderCancelled, o)
	evt.Reason = reason
	s.send(ctx, evt)
}

func (s *service) SendRefundNotification(ctx context.Context, o domain.OrderInfo, amount int64) {
	evt := s.orderEvent(event.TypeRefundIssued, o)
	evt.Amount = amount
	s.send(ctx, evt)
}

func (s *service) SendLowStockAlert(ctx context.Context, products []domain.LowStockProduct) {
	s.send(ctx, event.NotificationEvent{
		Type: event.TypeLowStockAlert,
		Products: slice.Map(products, func(idx int, src domain.LowStockProduct) event.ProductAlert {
			return event.ProductAlert{
				Name:  src.Name,
				SKUSN: src.SKUSN,
				Stock: src.Stock,
			}
		}),
	})
}

func (s *service) NotifyAdminNewOrder(ctx context.Context, o domain.OrderInfo) {
	s.send(ctx, s.orderEvent(event.TypeAdminNewOrder, o))
}

func (s *service) orderEvent(typ string, o domain.OrderInfo) event.NotificationEvent {
	return event.NotificationEvent{
		Type:           typ,
		OrderSN:        o.SN,
		RecipientEmail: o.BuyerEmail,
		RecipientName:  o.BuyerName,
		Amount:         o.Total,
	}
}

func (s *service) send(ctx context.Context, evt event.NotificationEvent) {
	go func() {
		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 3*time.Second)
		defer cancel()
		if err := s.producer.Produce(sendCtx, evt); err != nil {
			s.logger.Error("发送通知事件失败",
				elog.FieldErr(err),
				elog.String("type", evt.Type),
				elog.String("order_sn", evt.OrderSN))
		}
	}()
}
