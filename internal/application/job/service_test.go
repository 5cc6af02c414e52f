package job

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hookline-ai-api/internal/application/hookline"
	"hookline-ai-api/internal/config"
	"hookline-ai-api/internal/domain/entity"
	"hookline-ai-api/internal/domain/repository"
	"hookline-ai-api/internal/infrastructure/messaging"
	"hookline-ai-api/pkg/errors"
)

type memJobRepo struct {
	mu   sync.Mutex
	jobs map[string]*entity.GenerationJob
}

func newMemJobRepo() *memJobRepo {
	return &memJobRepo{jobs: make(map[string]*entity.GenerationJob)}
}

func (r *memJobRepo) Create(_ context.Context, job *entity.GenerationJob) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *job
	r.jobs[job.ID] = &copied
	return nil
}

func (r *memJobRepo) GetByID(_ context.Context, id string) (*entity.GenerationJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[id]
	if !ok {
		return nil, errors.New(errors.CodeJobNotFound, "generation job not found")
	}
	copied := *job
	return &copied, nil
}

func (r *memJobRepo) Update(_ context.Context, job *entity.GenerationJob) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *job
	r.jobs[job.ID] = &copied
	return nil
}

func (r *memJobRepo) GetByIdempotencyKey(_ context.Context, key string) (*entity.GenerationJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, job := range r.jobs {
		if job.IdempotencyKey == key {
			copied := *job
			return &copied, nil
		}
	}
	return nil, errors.New(errors.CodeJobNotFound, "generation job not found")
}

func (r *memJobRepo) UpdateStatus(_ context.Context, id string, status entity.JobStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if job, ok := r.jobs[id]; ok {
		job.Status = status
	}
	return nil
}

func (r *memJobRepo) UpdateProgress(_ context.Context, id string, progress int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if job, ok := r.jobs[id]; ok {
		job.Progress = progress
	}
	return nil
}

func (r *memJobRepo) List(context.Context, entity.JobStatus, repository.Pagination) (*repository.PagedResult[*entity.GenerationJob], error) {
	return nil, nil
}

func (r *memJobRepo) GetStuckJobs(context.Context, int, int) ([]*entity.GenerationJob, error) {
	return nil, nil
}

type memPublisher struct {
	mu        sync.Mutex
	published []*messaging.GenerationJobMessage
	err       error
}

func (p *memPublisher) PublishGenJob(_ context.Context, msg *messaging.GenerationJobMessage) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return "", p.err
	}
	p.published = append(p.published, msg)
	return "1-0", nil
}

type stubLLM struct {
	text string
	err  error
}

func (s *stubLLM) Generate(context.Context, string, hookline.GenerateOptions) (*hookline.LLMResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &hookline.LLMResult{Text: s.text, Provider: "openai", Model: "gpt-4o-mini"}, nil
}

type nopGenerationRepo struct{}

func (nopGenerationRepo) Create(context.Context, *entity.Generation) error { return nil }
func (nopGenerationRepo) GetByID(context.Context, string) (*entity.Generation, error) {
	return nil, errors.New(errors.CodeGenerationNotFound, "generation not found")
}
func (nopGenerationRepo) List(context.Context, *repository.GenerationFilter, repository.Pagination) (*repository.PagedResult[*entity.Generation], error) {
	return nil, nil
}
func (nopGenerationRepo) Delete(context.Context, string) error { return nil }
func (nopGenerationRepo) GetStats(context.Context) (*repository.GenerationStats, error) {
	return nil, nil
}

func tenLines() string {
	lines := make([]string, 10)
	for i := range lines {
		lines[i] = "Essayez la nouveauté dès maintenant"
	}
	return strings.Join(lines, "\n")
}

func validParams() Params {
	return Params{
		Concept:  "eau pétillante aux agrumes",
		Format:   "cta",
		Tone:     "direct",
		Language: "fr",
	}
}

func newService(llm *stubLLM, jobs *memJobRepo, publisher *memPublisher) *Service {
	generator := hookline.NewGenerator(llm, nil, nopGenerationRepo{}, nil, nil, nil, config.GenerationConfig{
		ExpectedLines:      10,
		DefaultScoringMode: "random",
		EmbedConcurrency:   2,
	})
	return NewService(jobs, publisher, generator, 3)
}

func TestSubmitCreatesAndPublishes(t *testing.T) {
	jobs := newMemJobRepo()
	publisher := &memPublisher{}
	svc := newService(&stubLLM{text: tenLines()}, jobs, publisher)

	job, err := svc.Submit(context.Background(), validParams(), "idem-1")
	require.NoError(t, err)
	assert.Equal(t, entity.JobStatusQueued, job.Status)
	assert.NotEmpty(t, job.ID)

	require.Len(t, publisher.published, 1)
	assert.Equal(t, job.ID, publisher.published[0].JobID)

	stored, err := jobs.GetByID(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, "idem-1", stored.IdempotencyKey)
}

func TestSubmitIdempotent(t *testing.T) {
	jobs := newMemJobRepo()
	publisher := &memPublisher{}
	svc := newService(&stubLLM{text: tenLines()}, jobs, publisher)

	first, err := svc.Submit(context.Background(), validParams(), "idem-2")
	require.NoError(t, err)
	second, err := svc.Submit(context.Background(), validParams(), "idem-2")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, publisher.published, 1)
}

func TestSubmitPublishFailureMarksJobFailed(t *testing.T) {
	jobs := newMemJobRepo()
	publisher := &memPublisher{err: assert.AnError}
	svc := newService(&stubLLM{text: tenLines()}, jobs, publisher)

	job, err := svc.Submit(context.Background(), validParams(), "")
	require.Error(t, err)
	assert.Nil(t, job)

	// 仓储里留下失败记录
	var stored *entity.GenerationJob
	jobs.mu.Lock()
	for _, j := range jobs.jobs {
		stored = j
	}
	jobs.mu.Unlock()
	require.NotNil(t, stored)
	assert.Equal(t, entity.JobStatusFailed, stored.Status)
	assert.Contains(t, stored.ErrorMessage, "enqueue failed")
}

func TestProcessHappyPath(t *testing.T) {
	jobs := newMemJobRepo()
	publisher := &memPublisher{}
	svc := newService(&stubLLM{text: tenLines()}, jobs, publisher)

	job, err := svc.Submit(context.Background(), validParams(), "")
	require.NoError(t, err)

	require.NoError(t, svc.Process(context.Background(), job.ID))

	done, err := svc.Get(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.JobStatusSucceeded, done.Status)
	assert.Equal(t, 100, done.Progress)
	assert.NotEmpty(t, done.GenerationID)
	assert.NotNil(t, done.CompletedAt)
}

func TestProcessTransientFailureReturnsError(t *testing.T) {
	jobs := newMemJobRepo()
	publisher := &memPublisher{}
	llm := &stubLLM{err: errors.New(errors.CodeLLMNetworkError, "llm provider unreachable")}
	svc := newService(llm, jobs, publisher)

	job, err := svc.Submit(context.Background(), validParams(), "")
	require.NoError(t, err)

	err = svc.Process(context.Background(), job.ID)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeLLMNetworkError))

	failed, err := svc.Get(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.JobStatusFailed, failed.Status)
	assert.NotEmpty(t, failed.ErrorMessage)
}

func TestProcessPermanentFailureNotRetried(t *testing.T) {
	jobs := newMemJobRepo()
	svc := newService(&stubLLM{text: tenLines()}, jobs, &memPublisher{})

	params := validParams()
	params.Format = "brochure"
	job, err := svc.Submit(context.Background(), params, "")
	require.NoError(t, err)

	// 目录解析错误重投不会变好，返回 nil 避免重试
	require.NoError(t, svc.Process(context.Background(), job.ID))

	failed, err := svc.Get(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.JobStatusFailed, failed.Status)
}

func TestProcessIdempotentOnSucceededJob(t *testing.T) {
	jobs := newMemJobRepo()
	svc := newService(&stubLLM{text: tenLines()}, jobs, &memPublisher{})

	job, err := svc.Submit(context.Background(), validParams(), "")
	require.NoError(t, err)
	require.NoError(t, svc.Process(context.Background(), job.ID))

	first, err := svc.Get(context.Background(), job.ID)
	require.NoError(t, err)

	// 重复投递不重新生成
	require.NoError(t, svc.Process(context.Background(), job.ID))
	second, err := svc.Get(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, first.GenerationID, second.GenerationID)
}

func TestHandleMessageMalformedPayloadAcked(t *testing.T) {
	svc := newService(&stubLLM{text: tenLines()}, newMemJobRepo(), &memPublisher{})

	msg := &messaging.Message{ID: "m1", Type: messaging.MsgTypeHooklineGen, Payload: []byte("{not json")}
	assert.NoError(t, svc.HandleMessage(context.Background(), msg))
}
