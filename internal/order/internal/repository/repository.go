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

package repository

import (
	"context"
	"encoding/json"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/mall/internal/order/internal/domain"
	"github.com/ecodeclub/mall/internal/order/internal/repository/dao"
	"github.com/gotomicro/ego/core/elog"
)

var (
	ErrOrderNotFound            = dao.ErrOrderNotFound
	ErrDuplicatedOrderSN        = dao.ErrDuplicatedOrderSN
	ErrOrderChangedConcurrently = dao.ErrOrderChangedConcurrently
)

type OrderRepository interface {
	Create(ctx context.Context, o domain.Order) (int64, error)
	// FindBySN 返回带订单项和状态历史的完整订单
	FindBySN(ctx context.Context, sn string) (domain.Order, error)
	FindByUIDAndSN(ctx context.Context, uid int64, sn string) (domain.Order, error)
	// ListByUID 列表不带订单项和历史
	ListByUID(ctx context.Context, uid int64, offset, limit int) ([]domain.Order, error)
	CountByUID(ctx context.Context, uid int64) (int64, error)
	List(ctx context.Context, offset, limit int) ([]domain.Order, error)
	Count(ctx context.Context) (int64, error)
	// UpdateStatus 持久化状态流转: 状态、物流、备注加最后一条历史
	UpdateStatus(ctx context.Context, o domain.Order) error
	// UpdateTracking 幂等重复发货只改物流信息, 不追加历史
	UpdateTracking(ctx context.Context, o domain.Order) error
	FindExpired(ctx context.Context, status domain.Status, before int64, offset, limit int) ([]domain.Order, error)
}

func NewOrderRepository(d dao.OrderDAO) OrderRepository {
	return &orderRepository{d: d, logger: elog.DefaultLogger}
}

type orderRepository struct {
	d      dao.OrderDAO
	logger *elog.Component
}

func (r *orderRepository) Create(ctx context.Context, o domain.Order) (int64, error) {
	entity := r.toEntity(o)
	items := slice.Map(o.Items, func(idx int, src domain.Item) dao.OrderItem {
		return dao.OrderItem{
			ProductID: src.ProductID,
			VariantID: src.VariantID,
			SKUSN:     src.SKUSN,
			Name:      src.Name,
			Image:     src.Image,
			Quantity:  src.Quantity,
			UnitPrice: src.UnitPrice,
			Subtotal:  src.Subtotal,
		}
	})
	history := dao.OrderStatusHistory{
		Status:    o.Status.ToUint8(),
		ActorID:   0,
		ActorType: "system",
		Note:      "下单",
	}
	if len(o.History) > 0 {
		last := o.History[len(o.History)-1]
		history.Status = last.Status.ToUint8()
		history.ActorID = last.ActorID
		history.ActorType = last.ActorType
		history.Note = last.Note
	}
	return r.d.Create(ctx, entity, items, history)
}

func (r *orderRepository) FindBySN(ctx context.Context, sn string) (domain.Order, error) {
	entity, err := r.d.FindBySN(ctx, sn)
	if err != nil {
		return domain.Order{}, err
	}
	return r.assemble(ctx, entity)
}

func (r *orderRepository) FindByUIDAndSN(ctx context.Context, uid int64, sn string) (domain.Order, error) {
	entity, err := r.d.FindByUIDAndSN(ctx, uid, sn)
	if err != nil {
		return domain.Order{}, err
	}
	return r.assemble(ctx, entity)
}

func (r *orderRepository) assemble(ctx context.Context, entity dao.Order) (domain.Order, error) {
	o := r.toDomain(entity)
	items, err := r.d.FindItemsByOrderID(ctx, entity.Id)
	if err != nil {
		return domain.Order{}, err
	}
	o.Items = slice.Map(items, func(idx int, src dao.OrderItem) domain.Item {
		return domain.Item{
			ProductID: src.ProductID,
			VariantID: src.VariantID,
			SKUSN:     src.SKUSN,
			Name:      src.Name,
			Image:     src.Image,
			Quantity:  src.Quantity,
			UnitPrice: src.UnitPrice,
			Subtotal:  src.Subtotal,
		}
	})
	history, err := r.d.FindHistoryByOrderID(ctx, entity.Id)
	if err != nil {
		return domain.Order{}, err
	}
	o.History = slice.Map(history, func(idx int, src dao.OrderStatusHistory) domain.StatusChange {
		return domain.StatusChange{
			Status:    domain.Status(src.Status),
			ActorID:   src.ActorID,
			ActorType: src.ActorType,
			Note:      src.Note,
			Ctime:     src.Ctime,
		}
	})
	return o, nil
}

func (r *orderRepository) ListByUID(ctx context.Context, uid int64, offset, limit int) ([]domain.Order, error) {
	entities, err := r.d.ListByUID(ctx, uid, offset, limit)
	if err != nil {
		return nil, err
	}
	return slice.Map(entities, func(idx int, src dao.Order) domain.Order {
		return r.toDomain(src)
	}), nil
}

func (r *orderRepository) CountByUID(ctx context.Context, uid int64) (int64, error) {
	return r.d.CountByUID(ctx, uid)
}

func (r *orderRepository) List(ctx context.Context, offset, limit int) ([]domain.Order, error) {
	entities, err := r.d.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	return slice.Map(entities, func(idx int, src dao.Order) domain.Order {
		return r.toDomain(src)
	}), nil
}

func (r *orderRepository) Count(ctx context.Context) (int64, error) {
	return r.d.Count(ctx)
}

func (r *orderRepository) UpdateStatus(ctx context.Context, o domain.Order) error {
	last := o.History[len(o.History)-1]
	return r.d.UpdateStatus(ctx, dao.Order{Id: o.ID, Version: o.Version}, dao.OrderStatusHistory{
		Status:    last.Status.ToUint8(),
		ActorID:   last.ActorID,
		ActorType: last.ActorType,
		Note:      last.Note,
	}, map[string]any{
		"tracking_carrier": o.Tracking.Carrier,
		"tracking_number":  o.Tracking.Number,
		"tracking_url":     o.Tracking.URL,
		"admin_notes":      o.AdminNotes,
	})
}

func (r *orderRepository) UpdateTracking(ctx context.Context, o domain.Order) error {
	return r.d.UpdateFields(ctx, dao.Order{Id: o.ID, Version: o.Version}, map[string]any{
		"tracking_carrier": o.Tracking.Carrier,
		"tracking_number":  o.Tracking.Number,
		"tracking_url":     o.Tracking.URL,
	})
}

func (r *orderRepository) FindExpired(ctx context.Context, status domain.Status, before int64, offset, limit int) ([]domain.Order, error) {
	entities, err := r.d.FindExpired(ctx, status.ToUint8(), before, offset, limit)
	if err != nil {
		return nil, err
	}
	return slice.Map(entities, func(idx int, src dao.Order) domain.Order {
		return r.toDomain(src)
	}), nil
}

func (r *orderRepository) toDomain(entity dao.Order) domain.Order {
	var shipping, billing domain.Address
	if entity.ShippingAddress != "" {
		if err := json.Unmarshal([]byte(entity.ShippingAddress), &shipping); err != nil {
			r.logger.Warn("解析收货地址失败", elog.FieldErr(err), elog.String("sn", entity.SN))
		}
	}
	if entity.BillingAddress != "" {
		if err := json.Unmarshal([]byte(entity.BillingAddress), &billing); err != nil {
			r.logger.Warn("解析账单地址失败", elog.FieldErr(err), elog.String("sn", entity.SN))
		}
	}
	return domain.Order{
		ID:              entity.Id,
		SN:              entity.SN,
		BuyerID:         entity.BuyerID,
		BuyerName:       entity.BuyerName,
		BuyerEmail:      entity.BuyerEmail,
		ShippingAddress: shipping,
		BillingAddress:  billing,
		Pricing: domain.PriceInfo{
			Subtotal: entity.Subtotal,
			Discount: entity.Discount,
			Shipping: entity.Shipping,
			Tax:      entity.Tax,
			Total:    entity.Total,
		},
		Status: domain.Status(entity.Status),
		Tracking: domain.Tracking{
			Carrier: entity.TrackingCarrier,
			Number:  entity.TrackingNumber,
			URL:     entity.TrackingURL,
		},
		AdminNotes:    entity.AdminNotes,
		PaymentMethod: entity.PaymentMethod,
		Version:       entity.Version,
		Ctime:         entity.Ctime,
		Utime:         entity.Utime,
	}
}

func (r *orderRepository) toEntity(o domain.Order) dao.Order {
	shipping, _ := json.Marshal(o.ShippingAddress)
	billing, _ := json.Marshal(o.BillingAddress)
	return dao.Order{
		Id:              o.ID,
		SN:              o.SN,
		BuyerID:         o.BuyerID,
		BuyerName:       o.BuyerName,
		BuyerEmail:      o.BuyerEmail,
		ShippingAddress: string(shipping),
		BillingAddress:  string(billing),
		Subtotal:        o.Pricing.Subtotal,
		Discount:        o.Pricing.Discount,
		Shipping:        o.Pricing.Shipping,
		Tax:             o.Pricing.Tax,
		Total:           o.Pricing.Total,
		Status:          o.Status.ToUint8(),
		PaymentMethod:   o.PaymentMethod,
		TrackingCarrier: o.Tracking.Carrier,
		TrackingNumber:  o.Tracking.Number,
		TrackingURL:     o.Tracking.URL,
		AdminNotes:      o.AdminNotes,
	}
}
