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

package job

import (
	"context"
	"time"

	"github.com/ecodeclub/mall/internal/order/internal/service"
)

// CloseExpiredOrdersJob 定时扫描超过支付时限仍未支付的订单,
// 取消订单并释放预占库存
type CloseExpiredOrdersJob struct {
	svc     service.Service
	minute  int64
	timeout time.Duration
}

func NewCloseExpiredOrdersJob(svc service.Service, minute int64, timeout time.Duration) *CloseExpiredOrdersJob {
	return &CloseExpiredOrdersJob{svc: svc, minute: minute, timeout: timeout}
}

func (c *CloseExpiredOrdersJob) Name() string {
	return "CloseExpiredOrdersJob"
}

func (c *CloseExpiredOrdersJob) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithTimeout(ctx, c.timeout)
	defer cancelFunc()
	// 冗余10秒, 避免刚好卡在时限边缘的订单被误关
	before := time.Now().Add(time.Duration(-c.minute)*time.Minute + 10*time.Second)
	return c.svc.CloseExpiredOrders(ctx, before)
}
