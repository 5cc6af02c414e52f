package llm

import (
	"context"
	stderrors "errors"
	"strings"

	"hookline-ai-api/pkg/errors"
)

// ClassifyProviderError 将提供商返回的原始错误归入固定分类：
// 网络连通 / 认证授权 / 配额限流 / 其他提供商错误。
// 提供商 SDK 不暴露稳定的错误类型，只能按报文内容启发式匹配。
func ClassifyProviderError(err error) *errors.AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*errors.AppError); ok {
		return appErr
	}

	msg := strings.ToLower(err.Error())
	switch {
	case isQuotaError(msg):
		return errors.Wrap(err, errors.CodeLLMQuotaExceeded, "llm provider quota exceeded")
	case isAuthError(msg):
		return errors.Wrap(err, errors.CodeLLMAuthError, "llm provider rejected credentials")
	case isNetworkError(err, msg):
		return errors.Wrap(err, errors.CodeLLMNetworkError, "llm provider unreachable")
	default:
		return errors.Wrap(err, errors.CodeLLMProviderError, "llm provider call failed")
	}
}

func isQuotaError(msg string) bool {
	switch {
	case strings.Contains(msg, "rate limit"):
		return true
	case strings.Contains(msg, "rate_limit"):
		return true
	case strings.Contains(msg, "quota"):
		return true
	case strings.Contains(msg, "too many requests"):
		return true
	case strings.Contains(msg, "429"):
		return true
	default:
		return false
	}
}

func isAuthError(msg string) bool {
	switch {
	case strings.Contains(msg, "api key"):
		return true
	case strings.Contains(msg, "api_key"):
		return true
	case strings.Contains(msg, "unauthorized"):
		return true
	case strings.Contains(msg, "invalid authentication"):
		return true
	case strings.Contains(msg, "401"):
		return true
	case strings.Contains(msg, "forbidden"):
		return true
	case strings.Contains(msg, "403"):
		return true
	default:
		return false
	}
}

func isNetworkError(err error, msg string) bool {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return true
	}
	switch {
	case strings.Contains(msg, "connection refused"):
		return true
	case strings.Contains(msg, "connection reset"):
		return true
	case strings.Contains(msg, "no such host"):
		return true
	case strings.Contains(msg, "timeout"):
		return true
	case strings.Contains(msg, "timed out"):
		return true
	case strings.Contains(msg, "eof"):
		return true
	default:
		return false
	}
}
