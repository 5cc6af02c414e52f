// Package entity 定义领域实体
package entity

import (
	"encoding/json"
	"time"
)

// JobStatus 异步任务状态
type JobStatus string

const (
	JobStatusQueued    JobStatus = "queued"
	JobStatusRunning   JobStatus = "running"
	JobStatusSucceeded JobStatus = "succeeded"
	JobStatusFailed    JobStatus = "failed"
)

// GenerationJob 异步生成任务
type GenerationJob struct {
	ID             string          `json:"id" gorm:"type:uuid;primaryKey"`
	Status         JobStatus       `json:"status" gorm:"type:varchar(16);index;not null"`
	InputParams    json.RawMessage `json:"input_params" gorm:"type:jsonb;not null"`
	GenerationID   string          `json:"generation_id,omitempty" gorm:"type:uuid;index"`
	ErrorMessage   string          `json:"error_message,omitempty" gorm:"type:text"`
	RetryCount     int             `json:"retry_count" gorm:"not null;default:0"`
	Progress       int             `json:"progress" gorm:"not null;default:0"` // 0-100
	IdempotencyKey string          `json:"idempotency_key,omitempty" gorm:"type:varchar(128);uniqueIndex"`
	DurationMs     int             `json:"duration_ms" gorm:"not null;default:0"`
	CreatedAt      time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
	StartedAt      *time.Time      `json:"started_at,omitempty"`
	CompletedAt    *time.Time      `json:"completed_at,omitempty"`
}

func (GenerationJob) TableName() string {
	return "generation_jobs"
}

// NewGenerationJob 创建新任务
func NewGenerationJob(id string, inputParams json.RawMessage) *GenerationJob {
	return &GenerationJob{
		ID:          id,
		Status:      JobStatusQueued,
		InputParams: inputParams,
		CreatedAt:   time.Now(),
	}
}

// Start 开始执行任务
func (j *GenerationJob) Start() {
	now := time.Now()
	j.Status = JobStatusRunning
	j.StartedAt = &now
}

// Complete 任务成功，记录关联的生成记录
func (j *GenerationJob) Complete(generationID string) {
	now := time.Now()
	j.Status = JobStatusSucceeded
	j.GenerationID = generationID
	j.Progress = 100
	j.CompletedAt = &now
	if j.StartedAt != nil {
		j.DurationMs = int(now.Sub(*j.StartedAt).Milliseconds())
	}
}

// Fail 任务失败
func (j *GenerationJob) Fail(errMsg string) {
	now := time.Now()
	j.Status = JobStatusFailed
	j.ErrorMessage = errMsg
	j.CompletedAt = &now
	if j.StartedAt != nil {
		j.DurationMs = int(now.Sub(*j.StartedAt).Milliseconds())
	}
}

// Retry 重置为待处理以便重投递
func (j *GenerationJob) Retry() {
	j.RetryCount++
	j.Status = JobStatusQueued
	j.StartedAt = nil
	j.CompletedAt = nil
	j.ErrorMessage = ""
}

// CanRetry 检查是否可以重试
func (j *GenerationJob) CanRetry(maxRetries int) bool {
	return j.RetryCount < maxRetries && j.Status == JobStatusFailed
}

// UpdateProgress 更新任务进度
func (j *GenerationJob) UpdateProgress(progress int) {
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	j.Progress = progress
}
