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

type AddReq struct {
	SKUSN    string `json:"skuSN"`
	Quantity int64  `json:"quantity"`
}

type UpdateQuantityReq struct {
	SKUSN    string `json:"skuSN"`
	Quantity int64  `json:"quantity"`
}

type DetailReq struct{}

type ClearReq struct{}

type Cart struct {
	Lines          []Line `json:"lines"`
	DiscountAmount int64  `json:"discountAmount"`
	Subtotal       int64  `json:"subtotal"`
}

type Line struct {
	ProductID int64  `json:"productId"`
	VariantID int64  `json:"variantId"`
	SKUSN     string `json:"skuSN"`
	Name      string `json:"name"`
	Image     string `json:"image"`
	Quantity  int64  `json:"quantity"`
	UnitPrice int64  `json:"unitPrice"`
	Subtotal  int64  `json:"subtotal"`
}
