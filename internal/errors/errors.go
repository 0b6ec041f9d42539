package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode 错误码类型
type ErrorCode string

// 预定义错误码
const (
	// 通用错误
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"

	// 参数错误：非法的配置输入，同步拒绝且不重试
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"

	// 内容源错误：整个内容源无法枚举
	ErrCodeSourceUnavailable ErrorCode = "SOURCE_UNAVAILABLE"

	// 单条内容映射失败：在适配器内部吸收，不对外暴露
	ErrCodeItemMapping ErrorCode = "ITEM_MAPPING_FAILED"

	// 缓存错误
	ErrCodeCache ErrorCode = "CACHE_ERROR"
)

// AppError 应用错误结构体
type AppError struct {
	Code     ErrorCode `json:"code"`
	Message  string    `json:"message"`
	Source   string    `json:"source,omitempty"`
	HTTPCode int       `json:"-"`
	Cause    error     `json:"-"`
}

// Error 实现error接口
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap 返回底层错误
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithCause 添加错误原因
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// NewInvalidArgument 创建参数错误
func NewInvalidArgument(message string) *AppError {
	return &AppError{
		Code:     ErrCodeInvalidArgument,
		Message:  message,
		HTTPCode: http.StatusBadRequest,
	}
}

// NewSourceUnavailable 创建内容源不可用错误
func NewSourceUnavailable(source string, cause error) *AppError {
	return &AppError{
		Code:     ErrCodeSourceUnavailable,
		Message:  fmt.Sprintf("content source %q is unavailable", source),
		Source:   source,
		HTTPCode: http.StatusServiceUnavailable,
		Cause:    cause,
	}
}

// NewItemMappingError 创建单条内容映射错误
func NewItemMappingError(source, reason string) *AppError {
	return &AppError{
		Code:     ErrCodeItemMapping,
		Message:  fmt.Sprintf("failed to map %s item: %s", source, reason),
		Source:   source,
		HTTPCode: http.StatusInternalServerError,
	}
}

// NewCacheError 创建缓存错误
func NewCacheError(message string, cause error) *AppError {
	return &AppError{
		Code:     ErrCodeCache,
		Message:  message,
		HTTPCode: http.StatusInternalServerError,
		Cause:    cause,
	}
}

// NewInternalError 创建系统内部错误
func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Code:     ErrCodeInternal,
		Message:  message,
		HTTPCode: http.StatusInternalServerError,
		Cause:    cause,
	}
}

// IsInvalidArgument 检查是否为参数错误
func IsInvalidArgument(err error) bool {
	return hasCode(err, ErrCodeInvalidArgument)
}

// IsSourceUnavailable 检查是否为内容源不可用错误
func IsSourceUnavailable(err error) bool {
	return hasCode(err, ErrCodeSourceUnavailable)
}

// IsItemMappingError 检查是否为单条内容映射错误
func IsItemMappingError(err error) bool {
	return hasCode(err, ErrCodeItemMapping)
}

func hasCode(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// GetAppError 获取AppError，如果不是则包装为系统错误
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewInternalError("internal error", err)
}
