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

package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ecodeclub/mall/internal/email"
	"github.com/ecodeclub/mall/internal/settings"
	"github.com/ecodeclub/mq-api"
	"github.com/gotomicro/ego/core/elog"
)

// EmailNotificationConsumer 消费通知事件并发送邮件。
// 邮件发送失败只记日志, 上游不感知也不重试
type EmailNotificationConsumer struct {
	emailSvc    email.Service
	settingsSvc settings.Service
	consumer    mq.Consumer
	logger      *elog.Component
}

func NewEmailNotificationConsumer(emailSvc email.Service, settingsSvc settings.Service, q mq.MQ) (*EmailNotificationConsumer, error) {
	const groupID = "notification-email"
	consumer, err := q.Consumer(NotificationEventName, groupID)
	if err != nil {
		return nil, err
	}
	return &EmailNotificationConsumer{
		emailSvc:    emailSvc,
		settingsSvc: settingsSvc,
		consumer:    consumer,
		logger:      elog.DefaultLogger,
	}, nil
}

func (c *EmailNotificationConsumer) Start(ctx context.Context) {
	go func() {
		for {
			err := c.Consume(ctx)
			if err != nil {
				c.logger.Error("消费通知事件失败", elog.FieldErr(err))
			}
		}
	}()
}

func (c *EmailNotificationConsumer) Consume(ctx context.Context) error {
	msg, err := c.consumer.Consume(ctx)
	if err != nil {
		return fmt.Errorf("获取消息失败: %w", err)
	}

	var evt NotificationEvent
	err = json.Unmarshal(msg.Value, &evt)
	if err != nil {
		return fmt.Errorf("解析消息失败: %w", err)
	}

	mail, ok := c.buildMail(ctx, evt)
	if !ok {
		return nil
	}

	if err = c.emailSvc.SendMail(ctx, mail); err != nil {
		c.logger.Warn("发送通知邮件失败",
			elog.FieldErr(err),
			elog.String("type", evt.Type),
			elog.String("to", mail.To))
	}
	return nil
}

func (c *EmailNotificationConsumer) buildMail(ctx context.Context, evt NotificationEvent) (email.Mail, bool) {
	switch evt.Type {
	case TypeLowStockAlert, TypeAdminNewOrder:
		if !c.settingsSvc.Feature(ctx, settings.FeatureAdminNotifications) {
			return email.Mail{}, false
		}
		to := c.settingsSvc.AdminEmail(ctx)
		if to == "" {
			c.logger.Warn("未配置管理员邮箱, 丢弃管理员通知", elog.String("type", evt.Type))
			return email.Mail{}, false
		}
		return email.Mail{
			From:    "商城通知",
			To:      to,
			Subject: c.subject(evt),
			Body:    []byte(c.body(evt)),
		}, true
	default:
		if !c.settingsSvc.Feature(ctx, settings.FeatureEmailNotifications) {
			return email.Mail{}, false
		}
		if evt.RecipientEmail == "" {
			return email.Mail{}, false
		}
		return email.Mail{
			From:    "商城通知",
			To:      evt.RecipientEmail,
			Subject: c.subject(evt),
			Body:    []byte(c.body(evt)),
		}, true
	}
}

func (c *EmailNotificationConsumer) subject(evt NotificationEvent) string {
	switch evt.Type {
	case TypeOrderConfirmation:
		return fmt.Sprintf("订单 %s 已确认", evt.OrderSN)
	case TypeOrderShipped:
		return fmt.Sprintf("订单 %s 已发货", evt.OrderSN)
	case TypeOrderDelivered:
		return fmt.Sprintf("订单 %s 已送达", evt.OrderSN)
	case TypeOrderCancelled:
		return fmt.Sprintf("订单 %s 已取消", evt.OrderSN)
	case TypeRefundIssued:
		return fmt.Sprintf("订单 %s 退款通知", evt.OrderSN)
	case TypeLowStockAlert:
		return "低库存告警"
	case TypeAdminNewOrder:
		return fmt.Sprintf("新订单 %s", evt.OrderSN)
	default:
		return "商城通知"
	}
}

func (c *EmailNotificationConsumer) body(evt NotificationEvent) string {
	switch evt.Type {
	case TypeOrderCancelled:
		return fmt.Sprintf("<p>订单 %s 已取消。原因: %s</p>", evt.OrderSN, evt.Reason)
	case TypeRefundIssued:
		return fmt.Sprintf("<p>订单 %s 已退款 %.2f 元。</p>", evt.OrderSN, float64(evt.Amount)/100)
	case TypeLowStockAlert:
		body := "<p>以下商品库存不足:</p><ul>"
		for _, p := range evt.Products {
			body += fmt.Sprintf("<li>%s (%s): 剩余 %d</li>", p.Name, p.SKUSN, p.Stock)
		}
		return body + "</ul>"
	default:
		return fmt.Sprintf("<p>%s, 您好!</p><p>订单 %s 状态已更新。</p>", evt.RecipientName, evt.OrderSN)
	}
}
