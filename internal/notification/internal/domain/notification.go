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

package domain

// OrderInfo 通知所需的订单摘要, 与订单聚合解耦
type OrderInfo struct {
	SN         string
	BuyerName  string
	BuyerEmail string
	// Total 订单总价, 单位为分
	Total int64
}

// LowStockProduct 低库存告警条目
type LowStockProduct struct {
	Name  string
	SKUSN string
	Stock int64
}
