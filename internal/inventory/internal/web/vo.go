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

package web

type StockStatusReq struct {
	ProductID int64 `json:"productId"`
	VariantID int64 `json:"variantId"`
}

type StockStatusResp struct {
	Exists   bool  `json:"exists"`
	InStock  bool  `json:"inStock"`
	Quantity int64 `json:"quantity"`
	LowStock bool  `json:"lowStock"`
}

type BulkAdjustReq struct {
	Adjustments []Adjustment `json:"adjustments"`
}

type Adjustment struct {
	ProductID int64  `json:"productId"`
	VariantID int64  `json:"variantId"`
	Op        string `json:"op"`
	Quantity  int64  `json:"quantity"`
}

type AdjustResult struct {
	ProductID int64  `json:"productId"`
	VariantID int64  `json:"variantId"`
	Success   bool   `json:"success"`
	Before    int64  `json:"before"`
	After     int64  `json:"after"`
	Error     string `json:"error,omitempty"`
}

type BulkAdjustResp struct {
	Results []AdjustResult `json:"results"`
}

type SaveRecordReq struct {
	ProductID         int64 `json:"productId"`
	VariantID         int64 `json:"variantId"`
	Stock             int64 `json:"stock"`
	Track             bool  `json:"track"`
	LowStockThreshold int64 `json:"lowStockThreshold"`
}
