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

package inventory

import (
	"github.com/ecodeclub/mall/internal/inventory/internal/domain"
	"github.com/ecodeclub/mall/internal/inventory/internal/service"
	"github.com/ecodeclub/mall/internal/inventory/internal/web"
)

type (
	AdminHandler  = web.AdminHandler
	Service       = service.Service
	Target        = domain.Target
	Record        = domain.Record
	ReserveItem   = domain.ReserveItem
	ReserveResult = domain.ReserveResult
	ItemError     = domain.ItemError
	Adjustment    = domain.Adjustment
	AdjustResult  = domain.AdjustResult
	StockStatus   = domain.StockStatus
)

const (
	ItemErrorNotFound     = domain.ItemErrorNotFound
	ItemErrorInsufficient = domain.ItemErrorInsufficient
	UnboundedQuantity     = domain.UnboundedQuantity
)

type Module struct {
	AdminHdl *AdminHandler
	Svc      Service
}
