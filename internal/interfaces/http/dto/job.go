// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"encoding/json"
	"time"

	"hookline-ai-api/internal/application/job"
	"hookline-ai-api/internal/domain/entity"
)

// SubmitJobRequest 异步生成任务提交请求
type SubmitJobRequest struct {
	Concept     string `json:"concept" binding:"required"`
	Description string `json:"description,omitempty"`
	Format      string `json:"format" binding:"required"`
	Tone        string `json:"tone" binding:"required"`
	Language    string `json:"language" binding:"required"`
	ScoringMode string `json:"scoring_mode,omitempty"`
	Provider    string `json:"provider,omitempty"`
}

// ToParams 转换为任务载荷
func (r *SubmitJobRequest) ToParams() job.Params {
	return job.Params{
		Concept:     r.Concept,
		Description: r.Description,
		Format:      r.Format,
		Tone:        r.Tone,
		Language:    r.Language,
		ScoringMode: r.ScoringMode,
		Provider:    r.Provider,
	}
}

// JobResponse 任务响应
type JobResponse struct {
	ID           string      `json:"id"`
	Status       string      `json:"status"`
	InputParams  *job.Params `json:"input_params,omitempty"`
	GenerationID string      `json:"generation_id,omitempty"`
	ErrorMessage string      `json:"error_message,omitempty"`
	RetryCount   int         `json:"retry_count"`
	Progress     int         `json:"progress"`
	DurationMs   int         `json:"duration_ms"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
	StartedAt    *time.Time  `json:"started_at,omitempty"`
	CompletedAt  *time.Time  `json:"completed_at,omitempty"`
}

// JobListResponse 任务列表响应
type JobListResponse struct {
	Jobs []*JobResponse `json:"jobs"`
}

// ToJobResponse 将任务实体转换为响应 DTO
func ToJobResponse(j *entity.GenerationJob) *JobResponse {
	if j == nil {
		return nil
	}

	resp := &JobResponse{
		ID:           j.ID,
		Status:       string(j.Status),
		GenerationID: j.GenerationID,
		ErrorMessage: j.ErrorMessage,
		RetryCount:   j.RetryCount,
		Progress:     j.Progress,
		DurationMs:   j.DurationMs,
		CreatedAt:    j.CreatedAt,
		UpdatedAt:    j.UpdatedAt,
		StartedAt:    j.StartedAt,
		CompletedAt:  j.CompletedAt,
	}

	if len(j.InputParams) > 0 {
		var params job.Params
		if err := json.Unmarshal(j.InputParams, &params); err == nil {
			resp.InputParams = &params
		}
	}
	return resp
}

// ToJobListResponse 将任务实体列表转换为响应 DTO
func ToJobListResponse(jobs []*entity.GenerationJob) *JobListResponse {
	resp := &JobListResponse{Jobs: make([]*JobResponse, 0, len(jobs))}
	for _, j := range jobs {
		resp.Jobs = append(resp.Jobs, ToJobResponse(j))
	}
	return resp
}
