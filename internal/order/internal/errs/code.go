package errs

var (
	SystemError       = ErrorCode{Code: 506001, Msg: "系统错误"}
	OrderNotFound     = ErrorCode{Code: 506002, Msg: "订单未找到"}
	InvalidTransition = ErrorCode{Code: 506003, Msg: "订单状态不允许该操作"}
	InsufficientStock = ErrorCode{Code: 506004, Msg: "库存不足"}
	InvalidCart       = ErrorCode{Code: 506005, Msg: "购物车内容非法"}
)

type ErrorCode struct {
	Code int
	Msg  string
}
