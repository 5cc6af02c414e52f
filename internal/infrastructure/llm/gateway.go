package llm

import (
	"context"
	"strings"
	"time"

	"github.com/cloudwego/eino/schema"

	"hookline-ai-api/internal/application/hookline"
	"hookline-ai-api/internal/config"
	einoobs "hookline-ai-api/internal/observability/eino"
	"hookline-ai-api/pkg/errors"
	"hookline-ai-api/pkg/logger"
	"hookline-ai-api/pkg/metrics"
)

// EinoGateway 基于 Eino ChatModel 的 LLM 网关实现
type EinoGateway struct {
	factory *EinoFactory
	config  *config.LLMConfig
}

// NewEinoGateway 创建 LLM 网关
func NewEinoGateway(factory *EinoFactory, cfg *config.Config) *EinoGateway {
	return &EinoGateway{
		factory: factory,
		config:  &cfg.LLM,
	}
}

var _ hookline.LLMGateway = (*EinoGateway)(nil)

// Generate 单次非流式生成调用。
// 提供商错误在此分类为网络/鉴权/配额/其他，不做重试。
func (g *EinoGateway) Generate(ctx context.Context, prompt string, opts hookline.GenerateOptions) (*hookline.LLMResult, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, errors.New(errors.CodeInvalidParam, "empty prompt").
			WithDetail("expected a non-empty compiled prompt, received empty text")
	}

	provider := strings.TrimSpace(opts.Provider)
	if provider == "" {
		provider = g.config.DefaultProvider
	}

	chatModel, err := g.factory.Get(ctx, provider)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeLLMProviderError, "resolve llm provider").
			WithDetailf("provider %q", provider)
	}

	ctx = einoobs.WithProvider(ctx, provider)

	start := time.Now()
	outMsg, err := chatModel.Generate(ctx, []*schema.Message{schema.UserMessage(prompt)})
	duration := time.Since(start)

	modelName := ""
	if cfg, ok := g.config.Providers[provider]; ok {
		modelName = cfg.Model
	}
	metrics.LLMCallDuration.WithLabelValues(provider, modelName).Observe(duration.Seconds())

	if err != nil {
		appErr := ClassifyProviderError(err)
		metrics.LLMCallTotal.WithLabelValues(provider, modelName, "error").Inc()
		logger.Error(ctx, "llm generate failed", err,
			"provider", provider,
			"model", modelName,
			"code", string(appErr.Code),
		)
		return nil, appErr
	}
	if outMsg == nil || strings.TrimSpace(outMsg.Content) == "" {
		metrics.LLMCallTotal.WithLabelValues(provider, modelName, "empty").Inc()
		return nil, errors.New(errors.CodeLLMProviderError, "empty llm response")
	}
	metrics.LLMCallTotal.WithLabelValues(provider, modelName, "success").Inc()

	result := &hookline.LLMResult{
		Text:       outMsg.Content,
		Provider:   provider,
		Model:      modelName,
		DurationMs: int(duration.Milliseconds()),
	}
	if outMsg.ResponseMeta != nil && outMsg.ResponseMeta.Usage != nil {
		result.PromptTokens = outMsg.ResponseMeta.Usage.PromptTokens
		result.CompletionTokens = outMsg.ResponseMeta.Usage.CompletionTokens
		metrics.LLMTokensUsed.WithLabelValues(provider, modelName, "prompt").Add(float64(result.PromptTokens))
		metrics.LLMTokensUsed.WithLabelValues(provider, modelName, "completion").Add(float64(result.CompletionTokens))
	}

	return result, nil
}
