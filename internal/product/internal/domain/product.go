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

type Status uint8

func (s Status) ToUint8() uint8 {
	return uint8(s)
}

const (
	StatusOffShelf Status = 1 // 下架
	StatusOnShelf  Status = 2 // 上架
)

// SPU 标准化产品单元, 即商品本身
type SPU struct {
	ID     int64
	SN     string
	Name   string
	Desc   string
	SKUs   []SKU
	Status Status
}

// SKU 库存量单位, 即商品的具体规格。
// 库存数量由库存模块单独维护, 这里只有目录信息
type SKU struct {
	ID    int64
	SPUID int64
	SN    string
	Name  string
	Desc  string
	// Price 单价, 单位为分
	Price  int64
	Attrs  string
	Image  string
	Status Status
}
