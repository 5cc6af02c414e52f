package hookline

import "context"

// GenerateOptions LLM 调用选项，provider 为空时由实现方选默认值
type GenerateOptions struct {
	Provider string
	Format   string
	Tone     string
	Language string
	Concept  string
}

// LLMResult 一次 LLM 调用的结果与用量
type LLMResult struct {
	Text             string
	Provider         string
	Model            string
	PromptTokens     int
	CompletionTokens int
	DurationMs       int
}

// LLMGateway LLM 网关边界。失败时返回已分类的典型错误
// （网络 / 鉴权 / 配额 / 其他提供商错误），内部不做重试。
type LLMGateway interface {
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (*LLMResult, error)
}
