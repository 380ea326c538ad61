package errs

var (
	SystemError = ErrorCode{Code: 504001, Msg: "系统错误"}
	InvalidCart = ErrorCode{Code: 504002, Msg: "购物车参数非法"}
)

type ErrorCode struct {
	Code int
	Msg  string
}
