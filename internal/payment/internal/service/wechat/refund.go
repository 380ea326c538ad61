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

package wechat

import (
	"context"
	"errors"
	"fmt"

	"github.com/ecodeclub/mall/internal/payment/internal/domain"
	"github.com/wechatpay-apiv3/wechatpay-go/core"
	"github.com/wechatpay-apiv3/wechatpay-go/services/refunddomestic"
)

var ErrRefundRejected = errors.New("微信拒绝退款请求")

//go:generate mockgen -source=./refund.go -destination=./mocks/refund.mock.go -package=wechatmocks -typed RefundsAPI
type RefundsAPI interface {
	Create(ctx context.Context, req refunddomestic.CreateRequest) (*refunddomestic.Refund, *core.APIResult, error)
}

// RefundService 微信域内退款。api 为 nil 时表示商户凭证未配置,
// 调用方应降级为仅本地记录退款
type RefundService struct {
	api       RefundsAPI
	notifyURL string
}

func NewRefundService(api RefundsAPI, notifyURL string) *RefundService {
	return &RefundService{api: api, notifyURL: notifyURL}
}

func (s *RefundService) IsConfigured() bool {
	return s.api != nil
}

// Refund 发起退款, 返回微信侧退款单号
func (s *RefundService) Refund(ctx context.Context, pmt domain.Payment, refundSN string, amount int64, reason string) (string, error) {
	resp, _, err := s.api.Create(ctx, refunddomestic.CreateRequest{
		TransactionId: core.String(pmt.TxnID),
		OutTradeNo:    core.String(pmt.OrderSN),
		OutRefundNo:   core.String(refundSN),
		Reason:        core.String(reason),
		NotifyUrl:     core.String(s.notifyURL),
		Amount: &refunddomestic.AmountReq{
			Refund:   core.Int64(amount),
			Total:    core.Int64(pmt.Amount),
			Currency: core.String(pmt.Currency),
		},
	})
	if err != nil {
		return "", fmt.Errorf("调用微信退款失败: %w", err)
	}
	if resp.Status != nil && *resp.Status == refunddomestic.STATUS_ABNORMAL {
		return "", ErrRefundRejected
	}
	if resp.RefundId == nil {
		return "", nil
	}
	return *resp.RefundId, nil
}
