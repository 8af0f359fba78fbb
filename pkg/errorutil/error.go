package errorutil

import (
	"errors"
	"fmt"
)

// Error 错误结构（包含致命标记）
type Error struct {
	Code       int    `json:"code"`
	Message    string `json:"message"`
	Fatal      bool   `json:"fatal"`
	DevDetails string `json:"dev_details,omitempty"`
}

// Error 实现 error 接口
func (e *Error) Error() string {
	return e.Message
}

// Fatal 创建致命错误（输入不可读、输出目录不可写等，中止整次运行）
func Fatal(message string) *Error {
	return &Error{
		Code:    500,
		Message: message,
		Fatal:   true,
	}
}

// FatalWithDetails 创建致命错误（带详细信息）
func FatalWithDetails(message string, details string) *Error {
	return &Error{
		Code:       500,
		Message:    message,
		Fatal:      true,
		DevDetails: details,
	}
}

// DataFormat 创建数据格式错误（缺列、数值解析失败等，属于致命错误）
func DataFormat(message string) *Error {
	return &Error{
		Code:    422,
		Message: message,
		Fatal:   true,
	}
}

// DataFormatf 创建数据格式错误（格式化消息）
func DataFormatf(format string, args ...interface{}) *Error {
	return DataFormat(fmt.Sprintf(format, args...))
}

// PerItem 创建单条目错误（跳过该条目，不中止批处理）
func PerItem(message string) *Error {
	return &Error{
		Code:    400,
		Message: message,
		Fatal:   false,
	}
}

// PerItemWithDetails 创建单条目错误（带详细信息）
func PerItemWithDetails(message string, details string) *Error {
	return &Error{
		Code:       400,
		Message:    message,
		Fatal:      false,
		DevDetails: details,
	}
}

// Wrap 包装错误（已是 Error 类型则原样返回）
func Wrap(err error) *Error {
	if err == nil {
		return nil
	}

	var e *Error
	if errors.As(err, &e) {
		return e
	}

	// 默认为单条目错误
	return &Error{
		Code:       400,
		Message:    err.Error(),
		Fatal:      false,
		DevDetails: fmt.Sprintf("%+v", err),
	}
}

// IsFatal 判断错误是否致命
func IsFatal(err error) bool {
	if err == nil {
		return false
	}

	var e *Error
	if errors.As(err, &e) {
		return e.Fatal
	}

	return false
}

// IsDataFormat 判断是否数据格式错误
func IsDataFormat(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == 422
	}
	return false
}
