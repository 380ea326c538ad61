package errs

var (
	SystemError     = ErrorCode{Code: 520001, Msg: "系统错误"}
	InvalidSettings = ErrorCode{Code: 520002, Msg: "配置内容非法"}
)

type ErrorCode struct {
	Code int
	Msg  string
}
