package embedding

import (
	"context"
	"fmt"

	"hookline-ai-api/internal/config"

	"github.com/cloudwego/eino-ext/components/embedding/openai"
	"github.com/cloudwego/eino/components/embedding"
)

// EinoProvider 基于 Eino OpenAI 适配器的单文本 provider
type EinoProvider struct {
	embedder embedding.Embedder
}

// NewEinoProvider 创建基于 Eino 的 embedding provider
func NewEinoProvider(ctx context.Context, cfg *config.EmbeddingConfig) (*EinoProvider, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("embedding endpoint is required")
	}

	// 使用 Eino 的 OpenAI 适配器
	embedder, err := openai.NewEmbedder(ctx, &openai.EmbeddingConfig{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.Endpoint,
		Model:   cfg.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create eino embedder: %w", err)
	}

	return &EinoProvider{embedder: embedder}, nil
}

// EmbedText 请求单条文本的嵌入向量
func (p *EinoProvider) EmbedText(ctx context.Context, text string) ([]float64, error) {
	vectors, err := p.embedder.EmbedStrings(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("embedder returned no vectors")
	}
	return vectors[0], nil
}
