// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"fmt"
	"time"

	"hookline-ai-api/internal/domain/entity"
)

// LLMUsageRepository LLM 用量事件仓储实现
type LLMUsageRepository struct {
	client *Client
}

// NewLLMUsageRepository 创建用量事件仓储
func NewLLMUsageRepository(client *Client) *LLMUsageRepository {
	return &LLMUsageRepository{client: client}
}

// Record 记录一次 LLM 调用的用量
func (r *LLMUsageRepository) Record(ctx context.Context, event *entity.LLMUsageEvent) error {
	ctx, span := tracer.Start(ctx, "postgres.LLMUsageRepository.Record")
	defer span.End()

	db := getDB(ctx, r.client.db)

	if err := db.Create(event).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to record llm usage event: %w", err)
	}
	return nil
}

// GetTokenUsage 获取指定时间范围内的 Token 总量（prompt + completion）
func (r *LLMUsageRepository) GetTokenUsage(ctx context.Context, startInclusive, endExclusive time.Time) (int64, error) {
	ctx, span := tracer.Start(ctx, "postgres.LLMUsageRepository.GetTokenUsage")
	defer span.End()

	db := getDB(ctx, r.client.db)

	var total int64
	err := db.Model(&entity.LLMUsageEvent{}).
		Select("COALESCE(SUM(tokens_prompt + tokens_completion), 0)").
		Where("created_at >= ? AND created_at < ?", startInclusive, endExclusive).
		Scan(&total).Error
	if err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("failed to sum token usage: %w", err)
	}
	return total, nil
}

// ListByGeneration 列出某次生成关联的全部用量事件
func (r *LLMUsageRepository) ListByGeneration(ctx context.Context, generationID string) ([]*entity.LLMUsageEvent, error) {
	ctx, span := tracer.Start(ctx, "postgres.LLMUsageRepository.ListByGeneration")
	defer span.End()

	db := getDB(ctx, r.client.db)

	var events []*entity.LLMUsageEvent
	err := db.Where("generation_id = ?", generationID).
		Order("created_at ASC").
		Find(&events).Error
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list llm usage events: %w", err)
	}
	return events, nil
}
