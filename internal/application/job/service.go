// Package job 编排异步文案生成任务：提交、查询与 worker 侧执行。
package job

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"hookline-ai-api/internal/application/hookline"
	"hookline-ai-api/internal/domain/catalog"
	"hookline-ai-api/internal/domain/entity"
	"hookline-ai-api/internal/domain/repository"
	"hookline-ai-api/internal/infrastructure/messaging"
	"hookline-ai-api/pkg/errors"
	"hookline-ai-api/pkg/logger"
	"hookline-ai-api/pkg/metrics"
)

// Publisher 任务投递边界
type Publisher interface {
	PublishGenJob(ctx context.Context, job *messaging.GenerationJobMessage) (string, error)
}

// Params 任务载荷，落库并随消息投递
type Params struct {
	Concept     string `json:"concept"`
	Description string `json:"description,omitempty"`
	Format      string `json:"format"`
	Tone        string `json:"tone"`
	Language    string `json:"language"`
	ScoringMode string `json:"scoring_mode,omitempty"`
	Provider    string `json:"provider,omitempty"`
}

// GenerateInput 转换为生成编排入参
func (p Params) GenerateInput() hookline.GenerateInput {
	return hookline.GenerateInput{
		Concept:     p.Concept,
		Description: p.Description,
		Format:      catalog.Format(p.Format),
		Tone:        catalog.Tone(p.Tone),
		Language:    p.Language,
		ScoringMode: entity.ScoringMode(p.ScoringMode),
		Provider:    p.Provider,
	}
}

// Service 异步任务服务
type Service struct {
	jobs       repository.JobRepository
	publisher  Publisher
	generator  *hookline.Generator
	maxRetries int
}

// NewService 创建异步任务服务
func NewService(jobs repository.JobRepository, publisher Publisher, generator *hookline.Generator, maxRetries int) *Service {
	if maxRetries <= 0 {
		maxRetries = 3
	}
	return &Service{
		jobs:       jobs,
		publisher:  publisher,
		generator:  generator,
		maxRetries: maxRetries,
	}
}

// Submit 创建任务并投递到队列。
// 带幂等键的重复提交直接返回已有任务，不重复投递。
func (s *Service) Submit(ctx context.Context, params Params, idempotencyKey string) (*entity.GenerationJob, error) {
	if idempotencyKey != "" {
		existing, err := s.jobs.GetByIdempotencyKey(ctx, idempotencyKey)
		if err == nil && existing != nil {
			return existing, nil
		}
	}

	payload, err := json.Marshal(params)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternalError, "encode job params")
	}

	job := entity.NewGenerationJob(uuid.NewString(), payload)
	job.IdempotencyKey = idempotencyKey
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, err
	}

	msg := &messaging.GenerationJobMessage{
		JobID:          job.ID,
		IdempotencyKey: idempotencyKey,
		Params:         payload,
	}
	if _, err := s.publisher.PublishGenJob(ctx, msg); err != nil {
		job.Fail("enqueue failed: " + err.Error())
		if updateErr := s.jobs.Update(ctx, job); updateErr != nil {
			logger.Error(ctx, "mark job failed after enqueue error", updateErr, "job_id", job.ID)
		}
		return nil, errors.Wrap(err, errors.CodeServiceUnavailable, "enqueue generation job")
	}

	return job, nil
}

// Get 查询任务
func (s *Service) Get(ctx context.Context, id string) (*entity.GenerationJob, error) {
	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, errors.New(errors.CodeJobNotFound, "generation job not found").
			WithDetailf("job %q", id)
	}
	return job, nil
}

// List 分页列出任务
func (s *Service) List(ctx context.Context, status entity.JobStatus, pagination repository.Pagination) (*repository.PagedResult[*entity.GenerationJob], error) {
	return s.jobs.List(ctx, status, pagination)
}

// HandleMessage worker 侧消息处理器。
// 返回非 nil 错误交由消费者按退避重投，超过重试上限进死信队列。
func (s *Service) HandleMessage(ctx context.Context, msg *messaging.Message) error {
	var jobMsg messaging.GenerationJobMessage
	if err := msg.UnmarshalPayload(&jobMsg); err != nil {
		logger.Error(ctx, "malformed job message", err, "message_id", msg.ID)
		return nil // 畸形消息重投无意义
	}
	return s.Process(ctx, jobMsg.JobID)
}

// Process 执行单个任务
func (s *Service) Process(ctx context.Context, jobID string) error {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return err
	}
	if job == nil {
		logger.Warn(ctx, "job message without job record", "job_id", jobID)
		return nil
	}

	switch job.Status {
	case entity.JobStatusSucceeded:
		return nil // 重复投递，已完成
	case entity.JobStatusFailed:
		if !job.CanRetry(s.maxRetries) {
			return nil
		}
		job.Retry()
	}

	var params Params
	if err := json.Unmarshal(job.InputParams, &params); err != nil {
		job.Fail("malformed input params: " + err.Error())
		s.update(ctx, job)
		return nil
	}

	job.Start()
	s.update(ctx, job)

	job.UpdateProgress(25)
	s.progress(ctx, job)

	out, genErr := s.generator.Generate(ctx, params.GenerateInput())
	if genErr != nil {
		job.Fail(genErr.Error())
		s.update(ctx, job)
		metrics.JobsTotal.WithLabelValues("failed").Inc()
		metrics.JobDuration.WithLabelValues("failed").Observe(float64(job.DurationMs) / 1000)
		if retryable(genErr) {
			return genErr
		}
		return nil
	}

	job.Complete(out.GenerationID)
	s.update(ctx, job)
	metrics.JobsTotal.WithLabelValues("succeeded").Inc()
	metrics.JobDuration.WithLabelValues("succeeded").Observe(float64(job.DurationMs) / 1000)

	logger.Info(ctx, "generation job completed",
		"job_id", job.ID,
		"generation_id", out.GenerationID,
		"candidates", len(out.Candidates),
	)
	return nil
}

// retryable 判断失败原因是否值得重投。
// 入参类错误与目录解析错误重试也不会变好，直接终态。
func retryable(err error) bool {
	switch {
	case errors.IsCode(err, errors.CodeLLMNetworkError),
		errors.IsCode(err, errors.CodeLLMQuotaExceeded),
		errors.IsCode(err, errors.CodeLLMProviderError),
		errors.IsCode(err, errors.CodeScoringFailed),
		errors.IsCode(err, errors.CodeLineCountMismatch):
		return true
	default:
		return false
	}
}

func (s *Service) update(ctx context.Context, job *entity.GenerationJob) {
	if err := s.jobs.Update(ctx, job); err != nil {
		logger.Error(ctx, "update job failed", err, "job_id", job.ID)
	}
}

func (s *Service) progress(ctx context.Context, job *entity.GenerationJob) {
	if err := s.jobs.UpdateProgress(ctx, job.ID, job.Progress); err != nil {
		logger.Error(ctx, "update job progress failed", err, "job_id", job.ID)
	}
}
