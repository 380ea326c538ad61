package event

const PaymentEventName = "payment_events"

const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// PaymentEvent 最简设计, 订单模块按 OrderSN 回查详情
type PaymentEvent struct {
	OrderSN string `json:"orderSN"`
	Status  string `json:"status"`
	TxnID   string `json:"txnID"`
	Reason  string `json:"reason"`
}
