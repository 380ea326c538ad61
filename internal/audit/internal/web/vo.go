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

type ListAuditLogsReq struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type ListAuditLogsResp struct {
	Total int64      `json:"total"`
	Logs  []AuditLog `json:"logs"`
}

type AuditLog struct {
	ID           int64             `json:"id"`
	Action       string            `json:"action"`
	ActorID      int64             `json:"actorId"`
	ActorType    string            `json:"actorType"`
	ActorName    string            `json:"actorName"`
	ResourceType string            `json:"resourceType"`
	ResourceID   string            `json:"resourceId"`
	ResourceName string            `json:"resourceName"`
	Details      map[string]string `json:"details,omitempty"`
	Ctime        int64             `json:"ctime"`
}
