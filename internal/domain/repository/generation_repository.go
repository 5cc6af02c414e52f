// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"hookline-ai-api/internal/domain/entity"
)

// GenerationFilter 生成记录过滤条件
type GenerationFilter struct {
	Format      string
	Tone        string
	Language    string
	Status      entity.GenerationStatus
	ScoringMode entity.ScoringMode
}

// GenerationRepository 生成记录仓储接口
type GenerationRepository interface {
	// Create 创建生成记录
	Create(ctx context.Context, generation *entity.Generation) error

	// GetByID 根据 ID 获取生成记录
	GetByID(ctx context.Context, id string) (*entity.Generation, error)

	// List 按条件分页列出生成记录，按创建时间倒序
	List(ctx context.Context, filter *GenerationFilter, pagination Pagination) (*PagedResult[*entity.Generation], error)

	// Delete 删除生成记录
	Delete(ctx context.Context, id string) error

	// GetStats 获取生成统计信息
	GetStats(ctx context.Context) (*GenerationStats, error)
}

// GenerationStats 生成统计信息
type GenerationStats struct {
	TotalGenerations  int64            `json:"total_generations"`
	SucceededCount    int64            `json:"succeeded_count"`
	FailedCount       int64            `json:"failed_count"`
	CountByFormat     map[string]int64 `json:"count_by_format"`
	TotalTokensPrompt int64            `json:"total_tokens_prompt"`
	TotalTokensOutput int64            `json:"total_tokens_output"`
}
