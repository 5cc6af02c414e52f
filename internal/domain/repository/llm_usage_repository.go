// Package repository 定义数据访问层接口
package repository

import (
	"context"
	"time"

	"hookline-ai-api/internal/domain/entity"
)

// LLMUsageRepository LLM 用量事件仓储接口
type LLMUsageRepository interface {
	// Record 记录一次 LLM 调用的用量
	Record(ctx context.Context, event *entity.LLMUsageEvent) error

	// GetTokenUsage 获取指定时间范围内的 Token 总量（prompt + completion）
	GetTokenUsage(ctx context.Context, startInclusive, endExclusive time.Time) (int64, error)

	// ListByGeneration 列出某次生成关联的全部用量事件
	ListByGeneration(ctx context.Context, generationID string) ([]*entity.LLMUsageEvent, error)
}
