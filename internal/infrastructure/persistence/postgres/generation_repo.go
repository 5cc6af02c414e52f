// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"hookline-ai-api/internal/domain/entity"
	"hookline-ai-api/internal/domain/repository"
	apperrors "hookline-ai-api/pkg/errors"
)

// GenerationRepository 生成记录仓储实现
type GenerationRepository struct {
	client *Client
}

// NewGenerationRepository 创建生成记录仓储
func NewGenerationRepository(client *Client) *GenerationRepository {
	return &GenerationRepository{client: client}
}

// Create 创建生成记录
func (r *GenerationRepository) Create(ctx context.Context, generation *entity.Generation) error {
	ctx, span := tracer.Start(ctx, "postgres.GenerationRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)

	if err := db.Create(generation).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create generation: %w", err)
	}
	return nil
}

// GetByID 根据 ID 获取生成记录
func (r *GenerationRepository) GetByID(ctx context.Context, id string) (*entity.Generation, error) {
	ctx, span := tracer.Start(ctx, "postgres.GenerationRepository.GetByID")
	defer span.End()

	db := getDB(ctx, r.client.db)

	var generation entity.Generation
	err := db.Where("id = ?", id).First(&generation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get generation: %w", err)
	}
	return &generation, nil
}

// List 按条件分页列出生成记录，按创建时间倒序
func (r *GenerationRepository) List(ctx context.Context, filter *repository.GenerationFilter, pagination repository.Pagination) (*repository.PagedResult[*entity.Generation], error) {
	ctx, span := tracer.Start(ctx, "postgres.GenerationRepository.List")
	defer span.End()

	db := getDB(ctx, r.client.db)

	query := db.Model(&entity.Generation{})
	if filter != nil {
		if filter.Format != "" {
			query = query.Where("format = ?", filter.Format)
		}
		if filter.Tone != "" {
			query = query.Where("tone = ?", filter.Tone)
		}
		if filter.Language != "" {
			query = query.Where("language = ?", filter.Language)
		}
		if filter.Status != "" {
			query = query.Where("status = ?", filter.Status)
		}
		if filter.ScoringMode != "" {
			query = query.Where("scoring_mode = ?", filter.ScoringMode)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to count generations: %w", err)
	}

	var items []*entity.Generation
	err := query.Order("created_at DESC").
		Offset(pagination.Offset()).
		Limit(pagination.Limit()).
		Find(&items).Error
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list generations: %w", err)
	}

	return repository.NewPagedResult(items, total, pagination), nil
}

// Delete 删除生成记录
func (r *GenerationRepository) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "postgres.GenerationRepository.Delete")
	defer span.End()

	db := getDB(ctx, r.client.db)

	result := db.Where("id = ?", id).Delete(&entity.Generation{})
	if result.Error != nil {
		span.RecordError(result.Error)
		return fmt.Errorf("failed to delete generation: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.New(apperrors.CodeGenerationNotFound, "generation not found").
			WithDetailf("generation %q", id)
	}
	return nil
}

// GetStats 获取生成统计信息
func (r *GenerationRepository) GetStats(ctx context.Context) (*repository.GenerationStats, error) {
	ctx, span := tracer.Start(ctx, "postgres.GenerationRepository.GetStats")
	defer span.End()

	db := getDB(ctx, r.client.db)

	stats := &repository.GenerationStats{
		CountByFormat: make(map[string]int64),
	}

	if err := db.Model(&entity.Generation{}).Count(&stats.TotalGenerations).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to count generations: %w", err)
	}
	if err := db.Model(&entity.Generation{}).
		Where("status = ?", entity.GenerationStatusSucceeded).
		Count(&stats.SucceededCount).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to count succeeded generations: %w", err)
	}
	stats.FailedCount = stats.TotalGenerations - stats.SucceededCount

	type formatCount struct {
		Format string
		Count  int64
	}
	var byFormat []formatCount
	err := db.Model(&entity.Generation{}).
		Select("format, COUNT(*) AS count").
		Group("format").
		Scan(&byFormat).Error
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to group generations by format: %w", err)
	}
	for _, fc := range byFormat {
		stats.CountByFormat[fc.Format] = fc.Count
	}

	type tokenSums struct {
		PromptTokens     int64
		CompletionTokens int64
	}
	var sums tokenSums
	err = db.Model(&entity.Generation{}).
		Select("COALESCE(SUM(tokens_prompt), 0) AS prompt_tokens, COALESCE(SUM(tokens_completion), 0) AS completion_tokens").
		Scan(&sums).Error
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to sum generation tokens: %w", err)
	}
	stats.TotalTokensPrompt = sums.PromptTokens
	stats.TotalTokensOutput = sums.CompletionTokens

	return stats, nil
}
