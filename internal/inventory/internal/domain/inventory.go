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

// UnboundedQuantity 未开启库存跟踪时对外报告的库存数量
const UnboundedQuantity int64 = -1

// Target 库存目标。VariantID 为 0 时指向商品本身, 否则指向具体规格。
// 所有库存操作都通过它定位唯一的库存记录
type Target struct {
	ProductID int64
	VariantID int64
}

func (t Target) IsVariant() bool {
	return t.VariantID > 0
}

// Record 库存记录。Track 为 false 时库存视为无限, 预占和释放不改动 Stock
type Record struct {
	Target            Target
	Stock             int64
	Track             bool
	LowStockThreshold int64
	SalesCount        int64
}

func (r Record) LowStock() bool {
	return r.Track && r.Stock <= r.LowStockThreshold
}

type ReserveItem struct {
	Target   Target
	Quantity int64
}

const (
	ItemErrorNotFound     = "not_found"
	ItemErrorInsufficient = "insufficient"
)

// ItemError 单个条目的预占失败原因。
// Code 为 insufficient 时携带可用数量与请求数量
type ItemError struct {
	Target    Target
	Code      string
	Available int64
	Requested int64
}

// ReserveResult 批量预占结果。Reserved 只包含真正扣减成功的条目,
// 调用方回滚时必须只释放 Reserved, 不能用原始请求列表
type ReserveResult struct {
	Success  bool
	Reserved []ReserveItem
	Errors   []ItemError
	LowStock []Record
}

type AdjustOp string

const (
	AdjustOpSet      AdjustOp = "set"
	AdjustOpAdd      AdjustOp = "add"
	AdjustOpSubtract AdjustOp = "subtract"
)

type Adjustment struct {
	Target   Target
	Op       AdjustOp
	Quantity int64
}

type AdjustResult struct {
	Target  Target
	Success bool
	Before  int64
	After   int64
	Error   string
}

// StockStatus 只读库存状态。未跟踪库存时 Quantity 为 UnboundedQuantity
type StockStatus struct {
	Exists   bool
	InStock  bool
	Quantity int64
	LowStock bool
}
