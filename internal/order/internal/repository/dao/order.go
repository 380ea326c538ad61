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

package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ego-component/egorm"
	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound     = gorm.ErrRecordNotFound
	ErrDuplicatedOrderSN = errors.New("订单序列号重复")
	// ErrOrderChangedConcurrently 乐观锁冲突, 订单已被并发修改
	ErrOrderChangedConcurrently = errors.New("订单已被并发修改")
)

type OrderDAO interface {
	// Create 在一个事务里落订单、订单项和第一条状态历史
	Create(ctx context.Context, o Order, items []OrderItem, history OrderStatusHistory) (int64, error)
	FindBySN(ctx context.Context, sn string) (Order, error)
	FindByUIDAndSN(ctx context.Context, uid int64, sn string) (Order, error)
	FindItemsByOrderID(ctx context.Context, orderID int64) ([]OrderItem, error)
	FindHistoryByOrderID(ctx context.Context, orderID int64) ([]OrderStatusHistory, error)
	ListByUID(ctx context.Context, uid int64, offset, limit int) ([]Order, error)
	CountByUID(ctx context.Context, uid int64) (int64, error)
	List(ctx context.Context, offset, limit int) ([]Order, error)
	Count(ctx context.Context) (int64, error)
	// UpdateStatus 带乐观锁更新状态并追加历史, fields 里带同批更新的其他列
	UpdateStatus(ctx context.Context, o Order, history OrderStatusHistory, fields map[string]any) error
	// UpdateFields 带乐观锁更新若干列, 不追加历史
	UpdateFields(ctx context.Context, o Order, fields map[string]any) error
	// FindExpired 查超过截止时间仍未支付的订单
	FindExpired(ctx context.Context, status uint8, before int64, offset, limit int) ([]Order, error)
}

type OrderGORMDAO struct {
	db *egorm.Component
}

func NewOrderGORMDAO(db *egorm.Component) OrderDAO {
	return &OrderGORMDAO{db: db}
}

func (d *OrderGORMDAO) Create(ctx context.Context, o Order, items []OrderItem, history OrderStatusHistory) (int64, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UnixMilli()
		o.Ctime, o.Utime = now, now
		if err := tx.Create(&o).Error; err != nil {
			var me *mysql.MySQLError
			if errors.As(err, &me) {
				const uniqueIndexErrNo uint16 = 1062
				if me.Number == uniqueIndexErrNo {
					return fmt.Errorf("%w: %s", ErrDuplicatedOrderSN, o.SN)
				}
			}
			return fmt.Errorf("创建订单失败: %w", err)
		}
		for i := range items {
			items[i].OrderID = o.Id
			items[i].Ctime, items[i].Utime = now, now
		}
		if err := tx.Create(&items).Error; err != nil {
			return fmt.Errorf("创建订单项失败: %w", err)
		}
		history.OrderID = o.Id
		history.Ctime = now
		if err := tx.Create(&history).Error; err != nil {
			return fmt.Errorf("创建状态历史失败: %w", err)
		}
		return nil
	})
	return o.Id, err
}

func (d *OrderGORMDAO) FindBySN(ctx context.Context, sn string) (Order, error) {
	var res Order
	err := d.db.WithContext(ctx).Where("sn = ?", sn).First(&res).Error
	return res, err
}

func (d *OrderGORMDAO) FindByUIDAndSN(ctx context.Context, uid int64, sn string) (Order, error) {
	var res Order
	err := d.db.WithContext(ctx).Where("buyer_id = ? AND sn = ?", uid, sn).First(&res).Error
	return res, err
}

func (d *OrderGORMDAO) FindItemsByOrderID(ctx context.Context, orderID int64) ([]OrderItem, error) {
	var res []OrderItem
	err := d.db.WithContext(ctx).Where("order_id = ?", orderID).Find(&res).Error
	return res, err
}

func (d *OrderGORMDAO) FindHistoryByOrderID(ctx context.Context, orderID int64) ([]OrderStatusHistory, error) {
	var res []OrderStatusHistory
	err := d.db.WithContext(ctx).Where("order_id = ?", orderID).
		Order("ctime ASC, id ASC").
		Find(&res).Error
	return res, err
}

func (d *OrderGORMDAO) ListByUID(ctx context.Context, uid int64, offset, limit int) ([]Order, error) {
	var res []Order
	err := d.db.WithContext(ctx).Where("buyer_id = ?", uid).
		Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&res).Error
	return res, err
}

func (d *OrderGORMDAO) CountByUID(ctx context.Context, uid int64) (int64, error) {
	var res int64
	err := d.db.WithContext(ctx).Model(&Order{}).Where("buyer_id = ?", uid).Count(&res).Error
	return res, err
}

func (d *OrderGORMDAO) List(ctx context.Context, offset, limit int) ([]Order, error) {
	var res []Order
	err := d.db.WithContext(ctx).
		Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&res).Error
	return res, err
}

func (d *OrderGORMDAO) Count(ctx context.Context) (int64, error) {
	var res int64
	err := d.db.WithContext(ctx).Model(&Order{}).Count(&res).Error
	return res, err
}

func (d *OrderGORMDAO) UpdateStatus(ctx context.Context, o Order, history OrderStatusHistory, fields map[string]any) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UnixMilli()
		if fields == nil {
			fields = make(map[string]any, 3)
		}
		fields["status"] = history.Status
		fields["version"] = o.Version + 1
		fields["utime"] = now
		res := tx.Model(&Order{}).
			Where("id = ? AND version = ?", o.Id, o.Version).
			Updates(fields)
		if res.Error != nil {
			return fmt.Errorf("更新订单状态失败: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrOrderChangedConcurrently
		}
		history.OrderID = o.Id
		history.Ctime = now
		if err := tx.Create(&history).Error; err != nil {
			return fmt.Errorf("追加状态历史失败: %w", err)
		}
		return nil
	})
}

func (d *OrderGORMDAO) UpdateFields(ctx context.Context, o Order, fields map[string]any) error {
	fields["version"] = o.Version + 1
	fields["utime"] = time.Now().UnixMilli()
	res := d.db.WithContext(ctx).Model(&Order{}).
		Where("id = ? AND version = ?", o.Id, o.Version).
		Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("更新订单失败: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrOrderChangedConcurrently
	}
	return nil
}

func (d *OrderGORMDAO) FindExpired(ctx context.Context, status uint8, before int64, offset, limit int) ([]Order, error) {
	var res []Order
	err := d.db.WithContext(ctx).
		Where("status = ? AND ctime < ?", status, before).
		Order("id ASC").
		Offset(offset).Limit(limit).
		Find(&res).Error
	return res, err
}

func InitTables(db *egorm.Component) error {
	return db.AutoMigrate(&Order{}, &OrderItem{}, &OrderStatusHistory{})
}

type Order struct {
	Id         int64  `gorm:"primaryKey;autoIncrement;comment:订单自增ID"`
	SN         string `gorm:"type:varchar(255);not null;uniqueIndex:uniq_order_sn;comment:订单序列号"`
	BuyerID    int64  `gorm:"column:buyer_id;not null;index:idx_buyer_id;comment:购买者ID"`
	BuyerName  string `gorm:"type:varchar(255);not null;default:'';comment:购买者姓名快照"`
	BuyerEmail string `gorm:"type:varchar(255);not null;default:'';comment:购买者邮箱快照"`
	// 地址为下单时刻的快照, JSON格式
	ShippingAddress string `gorm:"type:varchar(1024);not null;default:'';comment:收货地址快照"`
	BillingAddress  string `gorm:"type:varchar(1024);not null;default:'';comment:账单地址快照"`
	Subtotal        int64  `gorm:"not null;comment:商品小计;单位为分"`
	Discount        int64  `gorm:"not null;default:0;comment:优惠金额;单位为分"`
	Shipping        int64  `gorm:"not null;default:0;comment:运费;单位为分"`
	Tax             int64  `gorm:"not null;default:0;comment:税费;单位为分"`
	Total           int64  `gorm:"not null;comment:实付总价;单位为分"`
	Status          uint8  `gorm:"type:tinyint unsigned;not null;default:1;comment:订单状态"`
	PaymentMethod   uint8  `gorm:"type:tinyint unsigned;not null;comment:支付方式 1=货到付款 2=微信"`
	TrackingCarrier string `gorm:"type:varchar(255);not null;default:'';comment:承运商"`
	TrackingNumber  string `gorm:"type:varchar(255);not null;default:'';comment:运单号"`
	TrackingURL     string `gorm:"column:tracking_url;type:varchar(512);not null;default:'';comment:物流查询链接"`
	AdminNotes      string `gorm:"type:varchar(1024);not null;default:'';comment:管理员备注"`
	Version         int64  `gorm:"not null;default:1;comment:乐观锁版本号"`
	Ctime           int64
	Utime           int64
}

type OrderItem struct {
	Id        int64  `gorm:"primaryKey;autoIncrement;comment:订单项自增ID"`
	OrderID   int64  `gorm:"column:order_id;not null;index:idx_order_id;comment:订单自增ID"`
	ProductID int64  `gorm:"column:product_id;not null;comment:商品SPU自增ID"`
	VariantID int64  `gorm:"column:variant_id;not null;default:0;comment:商品SKU自增ID,0表示无规格"`
	SKUSN     string `gorm:"column:sku_sn;type:varchar(255);not null;comment:SKU序列号"`
	Name      string `gorm:"type:varchar(255);not null;comment:商品名称快照"`
	Image     string `gorm:"type:varchar(512);not null;default:'';comment:商品缩略图快照"`
	Quantity  int64  `gorm:"not null;comment:购买数量"`
	UnitPrice int64  `gorm:"not null;comment:快照单价;单位为分"`
	Subtotal  int64  `gorm:"not null;comment:行小计;单位为分"`
	Ctime     int64
	Utime     int64
}

type OrderStatusHistory struct {
	Id        int64  `gorm:"primaryKey;autoIncrement;comment:历史自增ID"`
	OrderID   int64  `gorm:"column:order_id;not null;index:idx_order_id;comment:订单自增ID"`
	Status    uint8  `gorm:"type:tinyint unsigned;not null;comment:流转后的状态"`
	ActorID   int64  `gorm:"not null;default:0;comment:操作者ID,0表示系统"`
	ActorType string `gorm:"type:varchar(32);not null;default:'system';comment:操作者类型"`
	Note      string `gorm:"type:varchar(512);not null;default:'';comment:备注"`
	Ctime     int64
}
