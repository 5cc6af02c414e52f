// Package errors 提供统一的错误定义
package errors

import (
	"fmt"
	"net/http"
)

// ErrorCode 错误码类型
type ErrorCode string

// 预定义错误码
const (
	// 通用错误 (1xxx)
	CodeSuccess            ErrorCode = "0"
	CodeUnknown            ErrorCode = "1000"
	CodeInvalidParam       ErrorCode = "1001"
	CodeNotFound           ErrorCode = "1002"
	CodeConflict           ErrorCode = "1003"
	CodeTooManyRequests    ErrorCode = "1004"
	CodeInternalError      ErrorCode = "1005"
	CodeServiceUnavailable ErrorCode = "1006"

	// 目录解析错误 (2xxx)：format/tone/language 在静态目录中不存在
	CodeFormatNotFound   ErrorCode = "2001"
	CodeToneNotFound     ErrorCode = "2002"
	CodeLanguageNotFound ErrorCode = "2003"

	// 业务错误 (3xxx)
	CodeGenerationFailed    ErrorCode = "3001"
	CodeValidationFailed    ErrorCode = "3002"
	CodeParseFailed         ErrorCode = "3003"
	CodeLineCountMismatch   ErrorCode = "3004"
	CodeScoringFailed       ErrorCode = "3005"
	CodePromptCompileFailed ErrorCode = "3006"
	CodeJobNotFound         ErrorCode = "3007"
	CodeGenerationNotFound  ErrorCode = "3008"

	// 外部服务错误 (4xxx)：按网络/鉴权/配额区分，供调用方差异化提示
	CodeLLMNetworkError    ErrorCode = "4001"
	CodeLLMAuthError       ErrorCode = "4002"
	CodeLLMQuotaExceeded   ErrorCode = "4003"
	CodeLLMProviderError   ErrorCode = "4004"
	CodeEmbeddingFailed    ErrorCode = "4005"
	CodeEmbeddingTooLong   ErrorCode = "4006"
	CodeEmbeddingMalformed ErrorCode = "4007"

	// 基础设施错误 (5xxx)
	CodeDatabaseError ErrorCode = "5001"
	CodeCacheError    ErrorCode = "5002"
	CodeVectorDBError ErrorCode = "5003"
)

// AppError 应用错误
type AppError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	HTTPStatus int       `json:"-"`
	Err        error     `json:"-"`
}

// Error 实现 error 接口。Detail 承载期望值与实际值，一并输出
func (e *AppError) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Code, e.Message)
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap 返回底层错误
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail 添加详细信息
func (e *AppError) WithDetail(detail string) *AppError {
	e.Detail = detail
	return e
}

// WithDetailf 添加格式化详细信息
func (e *AppError) WithDetailf(format string, args ...any) *AppError {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// WithError 添加底层错误
func (e *AppError) WithError(err error) *AppError {
	e.Err = err
	return e
}

// New 创建新的应用错误
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

// Wrap 包装错误
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Err:        err,
	}
}

// codeToHTTPStatus 错误码转 HTTP 状态码
func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case CodeSuccess:
		return http.StatusOK
	case CodeInvalidParam, CodeLineCountMismatch:
		return http.StatusBadRequest
	case CodeNotFound, CodeFormatNotFound, CodeToneNotFound, CodeLanguageNotFound,
		CodeJobNotFound, CodeGenerationNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeValidationFailed:
		return http.StatusUnprocessableEntity
	case CodeTooManyRequests, CodeLLMQuotaExceeded:
		return http.StatusTooManyRequests
	case CodeLLMAuthError:
		return http.StatusBadGateway
	case CodeLLMNetworkError, CodeLLMProviderError, CodeEmbeddingFailed,
		CodeServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// 预定义错误
var (
	ErrInvalidParam       = New(CodeInvalidParam, "invalid parameter")
	ErrNotFound           = New(CodeNotFound, "resource not found")
	ErrConflict           = New(CodeConflict, "resource conflict")
	ErrTooManyRequests    = New(CodeTooManyRequests, "too many requests")
	ErrInternalError      = New(CodeInternalError, "internal server error")
	ErrServiceUnavailable = New(CodeServiceUnavailable, "service unavailable")

	ErrFormatNotFound   = New(CodeFormatNotFound, "format not found")
	ErrToneNotFound     = New(CodeToneNotFound, "tone not found")
	ErrLanguageNotFound = New(CodeLanguageNotFound, "language not found")

	ErrGenerationFailed = New(CodeGenerationFailed, "hookline generation failed")
	ErrValidationFailed = New(CodeValidationFailed, "constraint validation failed")
	ErrParseFailed      = New(CodeParseFailed, "output parse failed")
	ErrScoringFailed    = New(CodeScoringFailed, "candidate scoring failed")
	ErrEmbeddingFailed  = New(CodeEmbeddingFailed, "embedding call failed")
	ErrLLMProviderError = New(CodeLLMProviderError, "LLM provider call failed")
	ErrJobNotFound      = New(CodeJobNotFound, "generation job not found")
)

// IsAppError 检查是否为 AppError
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// AsAppError 将错误转换为 AppError
func AsAppError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return Wrap(err, CodeUnknown, "unknown error")
}

// IsCode 判断错误是否携带指定错误码
func IsCode(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == code
	}
	return false
}
