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

// Setting 店铺级动态配置项, Value 为 JSON 或纯文本
type Setting struct {
	Key   string
	Value string
	Ctime int64
	Utime int64
}

const (
	KeyShipping   = "shipping"
	KeyTax        = "tax"
	KeyAdminEmail = "notify.adminEmail"

	// 功能开关
	FeatureInventory          = "feature.inventory"
	FeatureEmailNotifications = "feature.emailNotifications"
	FeatureAdminNotifications = "feature.adminNotifications"
)

type ShippingStrategy string

const (
	ShippingStrategyFree   ShippingStrategy = "free"
	ShippingStrategyFlat   ShippingStrategy = "flat"
	ShippingStrategyTiered ShippingStrategy = "tiered"
)

// ShippingTier 满额运费档位, MinSubtotal 为该档位的最低折后金额
type ShippingTier struct {
	MinSubtotal int64 `json:"minSubtotal"`
	Cost        int64 `json:"cost"`
}

// ShippingConfig 金额一律为分
type ShippingConfig struct {
	Strategy ShippingStrategy `json:"strategy"`
	// FlatRate 固定运费, 同时是 tiered 策略的兜底运费
	FlatRate int64 `json:"flatRate"`
	// FreeThreshold 大于0时, 折后金额达到该值免运费
	FreeThreshold int64          `json:"freeThreshold"`
	Tiers         []ShippingTier `json:"tiers"`
}

// TaxConfig 税率以万分比存储, 1300 表示 13%
type TaxConfig struct {
	Enabled         bool  `json:"enabled"`
	RateBasisPoints int64 `json:"rateBasisPoints"`
}
