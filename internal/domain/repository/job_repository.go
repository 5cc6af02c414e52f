// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"hookline-ai-api/internal/domain/entity"
)

// JobRepository 异步生成任务仓储接口
type JobRepository interface {
	// Create 创建任务
	Create(ctx context.Context, job *entity.GenerationJob) error

	// GetByID 根据 ID 获取任务
	GetByID(ctx context.Context, id string) (*entity.GenerationJob, error)

	// Update 更新任务
	Update(ctx context.Context, job *entity.GenerationJob) error

	// GetByIdempotencyKey 根据幂等键获取任务
	GetByIdempotencyKey(ctx context.Context, key string) (*entity.GenerationJob, error)

	// UpdateStatus 更新任务状态
	UpdateStatus(ctx context.Context, id string, status entity.JobStatus) error

	// UpdateProgress 更新任务进度（0-100）
	UpdateProgress(ctx context.Context, id string, progress int) error

	// List 分页列出任务，按创建时间倒序
	List(ctx context.Context, status entity.JobStatus, pagination Pagination) (*PagedResult[*entity.GenerationJob], error)

	// GetStuckJobs 获取超时未完成的运行中任务
	GetStuckJobs(ctx context.Context, olderThanSeconds int, limit int) ([]*entity.GenerationJob, error)
}
