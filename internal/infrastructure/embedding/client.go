// Package embedding 提供 Embedding 网关：提供商客户端、入参校验与响应校验。
package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"hookline-ai-api/internal/config"
)

// Client 自建 embedding 服务的 HTTP 客户端
type Client struct {
	endpoint   string
	model      string
	httpClient *http.Client
}

type embedRequest struct {
	Text  string `json:"text"`
	Model string `json:"model"`
}

type embedResponse struct {
	Embedding  []float64 `json:"embedding"`
	TokensUsed int       `json:"tokens_used"`
}

// StatusError 远端返回非 2xx 时携带状态码，供网关区分瞬态与永久失败
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("embedding request failed: status=%d", e.StatusCode)
}

// NewClient 创建 HTTP embedding 客户端
func NewClient(cfg *config.EmbeddingConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	model := cfg.Model
	if model == "" {
		model = "BAAI/bge-m3"
	}
	return &Client{
		endpoint: cfg.Endpoint,
		model:    model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// EmbedText 请求单条文本的嵌入向量
func (c *Client) EmbedText(ctx context.Context, text string) ([]float64, error) {
	reqBody, err := json.Marshal(&embedRequest{
		Text:  text,
		Model: c.model,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal embed request: %w", err)
	}

	endpoint := strings.TrimRight(c.endpoint, "/")
	if endpoint == "" {
		return nil, fmt.Errorf("embedding endpoint is empty")
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid embedding endpoint: %w", err)
	}
	if u.Path == "" || u.Path == "/" {
		u.Path = "/embed"
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create embed request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return nil, &StatusError{StatusCode: httpResp.StatusCode}
	}

	var resp embedResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("failed to decode embed response: %w", err)
	}
	return resp.Embedding, nil
}
