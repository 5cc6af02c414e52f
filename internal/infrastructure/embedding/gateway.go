package embedding

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"time"

	"hookline-ai-api/internal/application/hookline"
	"hookline-ai-api/internal/config"
	"hookline-ai-api/pkg/errors"
	"hookline-ai-api/pkg/metrics"
	"hookline-ai-api/pkg/retry"
)

// Provider 单文本 embedding 提供商
type Provider interface {
	EmbedText(ctx context.Context, text string) ([]float64, error)
}

// Gateway Embedding 网关：入参校验、响应校验、指标与瞬态重试。
// 核心流水线不做重试，重试策略收敛在此边界。
type Gateway struct {
	provider      Provider
	maxTextLength int
	retryCfg      retry.Config
}

var _ hookline.Embedder = (*Gateway)(nil)

// NewGateway 按配置选择 provider 创建网关。
// provider 为 "http" 时走自建服务客户端，否则走 Eino OpenAI 适配器。
func NewGateway(ctx context.Context, cfg *config.Config) (*Gateway, error) {
	var provider Provider
	switch cfg.Embedding.Provider {
	case "http":
		provider = NewClient(&cfg.Embedding)
	default:
		eino, err := NewEinoProvider(ctx, &cfg.Embedding)
		if err != nil {
			return nil, err
		}
		provider = eino
	}

	maxLen := cfg.Embedding.MaxTextLength
	if maxLen <= 0 {
		maxLen = 10000
	}

	return &Gateway{
		provider:      provider,
		maxTextLength: maxLen,
		retryCfg:      retry.DefaultConfig(),
	}, nil
}

// NewGatewayWithProvider 直接注入 provider 与重试配置，测试用
func NewGatewayWithProvider(provider Provider, maxTextLength int, retryCfg retry.Config) *Gateway {
	if maxTextLength <= 0 {
		maxTextLength = 10000
	}
	return &Gateway{
		provider:      provider,
		maxTextLength: maxTextLength,
		retryCfg:      retryCfg,
	}
}

// Embed 请求单条文本的嵌入向量。
// 空文本与超长文本立即失败，不发起远端调用；
// 响应必须携带非空数值向量，否则按畸形响应处理。
func (g *Gateway) Embed(ctx context.Context, text string) ([]float64, error) {
	if text == "" {
		return nil, errors.New(errors.CodeInvalidParam, "empty embedding input").
			WithDetail("expected non-empty text, received empty string")
	}
	if length := len([]rune(text)); length > g.maxTextLength {
		return nil, errors.New(errors.CodeEmbeddingTooLong, "embedding input too long").
			WithDetailf("expected at most %d characters, received %d", g.maxTextLength, length)
	}

	start := time.Now()
	var vector []float64
	err := retry.Do(ctx, g.retryCfg, func() error {
		var callErr error
		vector, callErr = g.provider.EmbedText(ctx, text)
		if callErr != nil && !transientEmbedError(callErr) {
			return retry.Permanent(callErr)
		}
		return callErr
	})
	duration := time.Since(start)

	if err != nil {
		metrics.EmbeddingCallTotal.WithLabelValues("error").Inc()
		metrics.EmbeddingCallDuration.WithLabelValues("error").Observe(duration.Seconds())
		return nil, errors.Wrap(err, errors.CodeEmbeddingFailed, "embedding provider call failed")
	}
	if len(vector) == 0 {
		metrics.EmbeddingCallTotal.WithLabelValues("error").Inc()
		metrics.EmbeddingCallDuration.WithLabelValues("error").Observe(duration.Seconds())
		return nil, errors.New(errors.CodeEmbeddingMalformed, "malformed embedding response").
			WithDetail("expected a non-empty numeric embedding array, received empty payload")
	}

	metrics.EmbeddingCallTotal.WithLabelValues("success").Inc()
	metrics.EmbeddingCallDuration.WithLabelValues("success").Observe(duration.Seconds())
	return vector, nil
}

// transientEmbedError 判定失败是否值得重试：网络层错误、限流与 5xx 为瞬态；
// 鉴权、参数类 4xx 重试只会原样失败，立即放弃
func transientEmbedError(err error) bool {
	var statusErr *StatusError
	if stderrors.As(err, &statusErr) {
		switch {
		case statusErr.StatusCode == http.StatusRequestTimeout,
			statusErr.StatusCode == http.StatusTooManyRequests,
			statusErr.StatusCode >= 500:
			return true
		}
		return false
	}
	if appErr, ok := err.(*errors.AppError); ok {
		switch appErr.Code {
		case errors.CodeLLMNetworkError, errors.CodeServiceUnavailable:
			return true
		}
		return false
	}
	// 不带类型的错误多为传输层失败（连接重置、超时），按瞬态处理
	return true
}

// Dimension 校验向量维度是否与配置一致，供向量库写入前检查
func CheckDimension(vector []float64, expected int) error {
	if expected > 0 && len(vector) != expected {
		return fmt.Errorf("embedding dimension mismatch: expected %d, received %d", expected, len(vector))
	}
	return nil
}
