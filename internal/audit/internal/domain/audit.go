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

type ActorType string

const (
	ActorTypeCustomer ActorType = "customer"
	ActorTypeAdmin    ActorType = "admin"
	ActorTypeSystem   ActorType = "system"
)

type Actor struct {
	ID   int64
	Type ActorType
	Name string
}

// Entry 操作审计记录, 只追加, 核心流程不会修改或删除
type Entry struct {
	ID           int64
	Action       string
	Actor        Actor
	ResourceType string
	ResourceID   string
	ResourceName string
	// Details 结构化明细, 比如库存调整的前后值
	Details map[string]string
	Ctime   int64
}
