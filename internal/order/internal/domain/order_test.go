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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrder(status Status) *Order {
	return &Order{SN: "ORD-nUfojcH2-M5j2j3", Status: status}
}

func TestOrder_Ship(t *testing.T) {
	t.Parallel()
	tracking := Tracking{Carrier: "顺丰", Number: "SF123456", URL: "https://sf-express.com/SF123456"}

	t.Run("处理中可以发货", func(t *testing.T) {
		t.Parallel()
		o := newOrder(StatusProcessing)
		transitioned, err := o.Ship(tracking, 1, "admin", "发货")
		require.NoError(t, err)
		assert.True(t, transitioned)
		assert.Equal(t, StatusShipped, o.Status)
		assert.Equal(t, tracking, o.Tracking)
		require.Len(t, o.History, 1)
		assert.Equal(t, StatusShipped, o.History[0].Status)
	})

	t.Run("重复发货只更新物流信息", func(t *testing.T) {
		t.Parallel()
		o := newOrder(StatusShipped)
		o.Tracking = Tracking{Carrier: "顺丰", Number: "SF000"}
		updated := Tracking{Carrier: "中通", Number: "ZT999"}
		transitioned, err := o.Ship(updated, 1, "admin", "换单号")
		require.NoError(t, err)
		assert.False(t, transitioned)
		assert.Equal(t, StatusShipped, o.Status)
		assert.Equal(t, updated, o.Tracking)
		assert.Empty(t, o.History, "重复发货不追加历史")
	})

	t.Run("待支付不能发货且报错说明当前状态", func(t *testing.T) {
		t.Parallel()
		o := newOrder(StatusPaymentPending)
		_, err := o.Ship(tracking, 1, "admin", "")
		require.ErrorIs(t, err, ErrInvalidTransition)
		assert.Contains(t, err.Error(), StatusPaymentPending.String())
	})
}

func TestOrder_Deliver(t *testing.T) {
	t.Parallel()
	o := newOrder(StatusShipped)
	require.NoError(t, o.Deliver(0, "system", ""))
	assert.Equal(t, StatusDelivered, o.Status)

	err := newOrder(StatusProcessing).Deliver(0, "system", "")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestOrder_Cancel(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name    string
		status  Status
		isAdmin bool
		wantErr bool
	}{
		{name: "待支付买家可取消", status: StatusPaymentPending},
		{name: "待处理买家可取消", status: StatusPending},
		{name: "处理中买家可取消", status: StatusProcessing},
		{name: "已发货买家不可取消", status: StatusShipped, wantErr: true},
		{name: "已发货管理员可取消", status: StatusShipped, isAdmin: true},
		{name: "已完成管理员也不可取消", status: StatusCompleted, isAdmin: true, wantErr: true},
		{name: "已取消不可再取消", status: StatusCancelled, isAdmin: true, wantErr: true},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			o := newOrder(tc.status)
			err := o.Cancel(7, "customer", "不想要了", tc.isAdmin)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTransition)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, StatusCancelled, o.Status)
		})
	}
}

func TestOrder_ForwardFlow(t *testing.T) {
	t.Parallel()
	o := newOrder(StatusPending)
	require.NoError(t, o.MarkProcessing(0, "system", "货到付款下单"))
	_, err := o.Ship(Tracking{Number: "SF1"}, 1, "admin", "")
	require.NoError(t, err)
	require.NoError(t, o.Deliver(1, "admin", ""))
	require.NoError(t, o.Complete(1, "admin", ""))
	assert.Equal(t, StatusCompleted, o.Status)
	// 每次流转追加一条历史
	require.Len(t, o.History, 4)
	assert.ErrorIs(t, o.MarkProcessing(0, "system", ""), ErrInvalidTransition)
}

func TestOrder_HoldAndResume(t *testing.T) {
	t.Parallel()
	o := newOrder(StatusProcessing)
	require.NoError(t, o.Hold(1, "疑似刷单"))
	assert.Equal(t, StatusOnHold, o.Status)

	// 挂起状态买家不能取消
	err := o.Cancel(7, "customer", "", false)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	require.NoError(t, o.Resume(StatusProcessing, 1, "人工核实通过"))
	assert.Equal(t, StatusProcessing, o.Status)

	assert.ErrorIs(t, o.Resume(StatusProcessing, 1, ""), ErrInvalidTransition)
}

func TestOrder_MarkRefunded(t *testing.T) {
	t.Parallel()
	o := newOrder(StatusProcessing)
	require.NoError(t, o.MarkRefunded(1, "admin", "全额退款"))
	assert.Equal(t, StatusRefunded, o.Status)
	assert.ErrorIs(t, o.MarkRefunded(1, "admin", ""), ErrInvalidTransition)
}
