package errors

import (
	"errors"
	"fmt"
	"tradediary/pkg/errors/ecode"
)

// 携带业务错误码的error，响应层通过DecodeErr取出code和message
type withCode struct {
	code    int
	message string
	cause   error
}

func (e *withCode) Error() string {
	if e.cause != nil {
		return e.message + ": " + e.cause.Error()
	}
	return e.message
}

func (e *withCode) Unwrap() error {
	return e.cause
}

// WithCode 创建一个带业务错误码的error
func WithCode(code int, message string) error {
	if message == "" {
		message = ecode.Text(code)
	}
	return &withCode{code: code, message: message}
}

// Wrap 包装err并附加错误码和说明
func Wrap(err error, code int, message string) error {
	if message == "" {
		message = ecode.Text(code)
	}
	return &withCode{code: code, message: message, cause: err}
}

// Wrapf 包装err并附加错误码和格式化说明
func Wrapf(err error, code int, format string, args ...interface{}) error {
	return &withCode{code: code, message: fmt.Sprintf(format, args...), cause: err}
}

// DecodeErr 解析error中的业务错误码和提示信息，nil返回成功
func DecodeErr(err error) (int, string) {
	if err == nil {
		return ecode.Success, ecode.Text(ecode.Success)
	}
	var wc *withCode
	if errors.As(err, &wc) {
		return wc.code, wc.message
	}
	return ecode.Unknown, err.Error()
}

// Code 返回err携带的业务错误码
func Code(err error) int {
	code, _ := DecodeErr(err)
	return code
}

// IsCode 判断err是否携带指定的业务错误码
func IsCode(err error, code int) bool {
	return Code(err) == code
}
