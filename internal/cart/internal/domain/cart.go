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

// Line 购物车行。UnitPrice 是加购时抓取的快照价,
// 结算时沿用快照价, 不回查商品目录, 避免改价竞态
type Line struct {
	ProductID int64
	VariantID int64
	SKUSN     string
	Name      string
	Image     string
	Quantity  int64
	UnitPrice int64
}

func (l Line) Subtotal() int64 {
	return l.Quantity * l.UnitPrice
}

type Cart struct {
	CustomerID int64
	Lines      []Line
	// DiscountAmount 单位为分, 结算时原样计入价格明细
	DiscountAmount int64
}

func (c Cart) Empty() bool {
	return len(c.Lines) == 0
}

func (c Cart) Subtotal() int64 {
	var res int64
	for _, line := range c.Lines {
		res += line.Subtotal()
	}
	return res
}
