package ecode

// 业务错误码，0表示成功，非0表示失败
const (
	Success = 0

	Unknown        = 10001 // 未知错误
	ValidateErr    = 10002 // 请求参数校验失败
	NotFoundErr    = 10003 // 用户/账户/记录不存在
	StorageErr     = 10004 // 持久层读写失败
	RequireAuthErr = 10005 // 鉴权失败
	TooManyErr     = 10006 // 请求过于频繁

	UserLoginErr    = 20101 // 账号或密码错误
	UserRegisterErr = 20102 // 注册失败
	CaptchaErr      = 20103 // 验证码错误

	AnalysisErr = 20301 // AI分析服务调用失败
	NotifyErr   = 20302 // 通知发送失败
)

var messages = map[int]string{
	Success:         "OK",
	Unknown:         "未知错误",
	ValidateErr:     "请求参数错误",
	NotFoundErr:     "资源不存在",
	StorageErr:      "存储服务异常",
	RequireAuthErr:  "鉴权失败",
	TooManyErr:      "请求过于频繁",
	UserLoginErr:    "账号或密码错误",
	UserRegisterErr: "注册失败",
	CaptchaErr:      "验证码错误",
	AnalysisErr:     "分析服务暂不可用",
	NotifyErr:       "通知发送失败",
}

// Text 返回错误码的默认文案
func Text(code int) string {
	if msg, ok := messages[code]; ok {
		return msg
	}
	return messages[Unknown]
}
