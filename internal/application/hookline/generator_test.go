package hookline

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hookline-ai-api/internal/config"
	"hookline-ai-api/internal/domain/catalog"
	"hookline-ai-api/internal/domain/entity"
	"hookline-ai-api/internal/domain/repository"
	"hookline-ai-api/pkg/errors"
)

type fakeLLM struct {
	text  string
	err   error
	calls int
	last  string
}

func (f *fakeLLM) Generate(_ context.Context, prompt string, opts GenerateOptions) (*LLMResult, error) {
	f.calls++
	f.last = prompt
	if f.err != nil {
		return nil, f.err
	}
	return &LLMResult{
		Text:             f.text,
		Provider:         "openai",
		Model:            "gpt-4o-mini",
		PromptTokens:     120,
		CompletionTokens: 80,
		DurationMs:       40,
	}, nil
}

type memGenerationRepo struct {
	mu      sync.Mutex
	created []*entity.Generation
}

func (r *memGenerationRepo) Create(_ context.Context, gen *entity.Generation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created = append(r.created, gen)
	return nil
}

func (r *memGenerationRepo) GetByID(context.Context, string) (*entity.Generation, error) {
	return nil, errors.New(errors.CodeGenerationNotFound, "generation not found")
}

func (r *memGenerationRepo) List(context.Context, *repository.GenerationFilter, repository.Pagination) (*repository.PagedResult[*entity.Generation], error) {
	return nil, nil
}

func (r *memGenerationRepo) Delete(context.Context, string) error { return nil }

func (r *memGenerationRepo) GetStats(context.Context) (*repository.GenerationStats, error) {
	return nil, nil
}

type memUsageRepo struct {
	mu     sync.Mutex
	events []*entity.LLMUsageEvent
}

func (r *memUsageRepo) Record(_ context.Context, ev *entity.LLMUsageEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return nil
}

func (r *memUsageRepo) GetTokenUsage(context.Context, time.Time, time.Time) (int64, error) {
	return 0, nil
}

func (r *memUsageRepo) ListByGeneration(context.Context, string) ([]*entity.LLMUsageEvent, error) {
	return nil, nil
}

type memCache struct {
	mu   sync.Mutex
	data map[string]string
}

func (c *memCache) Get(_ context.Context, key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	return v, ok
}

func (c *memCache) Set(_ context.Context, key, value string, _ time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.data == nil {
		c.data = make(map[string]string)
	}
	c.data[key] = value
}

func testGenConfig() config.GenerationConfig {
	return config.GenerationConfig{
		ExpectedLines:      10,
		DefaultScoringMode: "random",
		EmbedConcurrency:   3,
		PromptCacheTTL:     time.Minute,
	}
}

func tenLines() string {
	lines := make([]string, 10)
	for i := range lines {
		lines[i] = "Essayez la fraîcheur numéro " + string(rune('0'+i))
	}
	return strings.Join(lines, "\n")
}

func validInput() GenerateInput {
	return GenerateInput{
		Concept:  "eau pétillante aux agrumes",
		Format:   catalog.FormatCTA,
		Tone:     catalog.ToneDirect,
		Language: "fr",
	}
}

func TestGeneratorHappyPath(t *testing.T) {
	llm := &fakeLLM{text: tenLines()}
	genRepo := &memGenerationRepo{}
	usageRepo := &memUsageRepo{}
	gen := NewGenerator(llm, nil, genRepo, usageRepo, nil, nil, testGenConfig())

	out, err := gen.Generate(context.Background(), validInput())
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.NotEmpty(t, out.GenerationID)
	assert.Equal(t, entity.ScoringModeRandom, out.ScoringMode)
	assert.Equal(t, "openai", out.Provider)
	require.Len(t, out.Candidates, 10)
	for _, c := range out.Candidates {
		// cta+direct 要求动词开头，"Essayez..." 全部通过
		assert.True(t, c.Valid, "candidate %q invalid: %v", c.Text, c.ValidationErrors)
	}

	require.Len(t, genRepo.created, 1)
	stored := genRepo.created[0]
	assert.Equal(t, entity.GenerationStatusSucceeded, stored.Status)
	assert.Equal(t, out.GenerationID, stored.ID)
	assert.NotEmpty(t, stored.PromptFingerprint)
	decoded, err := stored.DecodeCandidates()
	require.NoError(t, err)
	assert.Len(t, decoded, 10)

	require.Len(t, usageRepo.events, 1)
	assert.Equal(t, 120, usageRepo.events[0].TokensPrompt)
	assert.Equal(t, out.GenerationID, usageRepo.events[0].GenerationID)
}

func TestGeneratorValidationResultsOnCandidates(t *testing.T) {
	// 一条候选违反动词开头规则
	raw := tenLines()
	raw = strings.Replace(raw, "Essayez la fraîcheur numéro 0", "La fraîcheur pour vous", 1)
	llm := &fakeLLM{text: raw}
	gen := NewGenerator(llm, nil, &memGenerationRepo{}, &memUsageRepo{}, nil, nil, testGenConfig())

	out, err := gen.Generate(context.Background(), validInput())
	require.NoError(t, err)

	var invalid int
	for _, c := range out.Candidates {
		if !c.Valid {
			invalid++
			assert.NotEmpty(t, c.ValidationErrors)
		}
	}
	assert.Equal(t, 1, invalid)
}

func TestGeneratorEmptyConcept(t *testing.T) {
	llm := &fakeLLM{text: tenLines()}
	gen := NewGenerator(llm, nil, &memGenerationRepo{}, &memUsageRepo{}, nil, nil, testGenConfig())

	in := validInput()
	in.Concept = "   "
	_, err := gen.Generate(context.Background(), in)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeInvalidParam))
	assert.Zero(t, llm.calls)
}

func TestGeneratorUnknownCatalogEntries(t *testing.T) {
	llm := &fakeLLM{text: tenLines()}
	gen := NewGenerator(llm, nil, &memGenerationRepo{}, &memUsageRepo{}, nil, nil, testGenConfig())

	in := validInput()
	in.Format = "brochure"
	_, err := gen.Generate(context.Background(), in)
	assert.True(t, errors.IsCode(err, errors.CodeFormatNotFound))

	in = validInput()
	in.Tone = "sarcastic"
	_, err = gen.Generate(context.Background(), in)
	assert.True(t, errors.IsCode(err, errors.CodeToneNotFound))

	in = validInput()
	in.Language = "xx"
	_, err = gen.Generate(context.Background(), in)
	assert.True(t, errors.IsCode(err, errors.CodeLanguageNotFound))

	assert.Zero(t, llm.calls)
}

func TestGeneratorUnknownScoringMode(t *testing.T) {
	gen := NewGenerator(&fakeLLM{}, nil, nil, nil, nil, nil, testGenConfig())
	in := validInput()
	in.ScoringMode = "fancy"
	_, err := gen.Generate(context.Background(), in)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeInvalidParam))
}

func TestGeneratorLLMFailureRecorded(t *testing.T) {
	llmErr := errors.New(errors.CodeLLMQuotaExceeded, "llm provider quota exceeded")
	llm := &fakeLLM{err: llmErr}
	genRepo := &memGenerationRepo{}
	gen := NewGenerator(llm, nil, genRepo, &memUsageRepo{}, nil, nil, testGenConfig())

	_, err := gen.Generate(context.Background(), validInput())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeLLMQuotaExceeded))

	require.Len(t, genRepo.created, 1)
	assert.Equal(t, entity.GenerationStatusFailed, genRepo.created[0].Status)
	assert.NotEmpty(t, genRepo.created[0].ErrorMessage)
}

func TestGeneratorSemanticMode(t *testing.T) {
	cfg := testGenConfig()
	cfg.ExpectedLines = 3
	llm := &fakeLLM{text: "une\ndeux\ntrois"}
	embedder := &fakeEmbedder{
		vectors: map[string][]float64{
			"eau pétillante aux agrumes": {1, 0},
			"une":                        {1, 0},
			"deux":                       {1, 1},
			"trois":                      {0, 1},
		},
	}
	in := validInput()
	in.ScoringMode = entity.ScoringModeSemantic
	gen := NewGenerator(llm, embedder, &memGenerationRepo{}, &memUsageRepo{}, nil, nil, cfg)

	out, err := gen.Generate(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, out.Candidates, 3)
	assert.Equal(t, "une", out.Candidates[0].Text)
	assert.Equal(t, 100, out.Candidates[0].Score)
	assert.Equal(t, "trois", out.Candidates[2].Text)
	assert.Equal(t, 0, out.Candidates[2].Score)
}

func TestGeneratorSemanticCountGate(t *testing.T) {
	cfg := testGenConfig()
	cfg.ExpectedLines = 10
	llm := &fakeLLM{text: "une\ndeux\ntrois"}
	in := validInput()
	in.ScoringMode = entity.ScoringModeSemantic
	genRepo := &memGenerationRepo{}
	gen := NewGenerator(llm, &fakeEmbedder{}, genRepo, &memUsageRepo{}, nil, nil, cfg)

	_, err := gen.Generate(context.Background(), in)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeLineCountMismatch))
	// 失败路径也落一条失败记录
	require.Len(t, genRepo.created, 1)
	assert.Equal(t, entity.GenerationStatusFailed, genRepo.created[0].Status)
}

func TestGeneratorValidateText(t *testing.T) {
	gen := NewGenerator(&fakeLLM{}, nil, nil, nil, nil, nil, testGenConfig())

	result, err := gen.ValidateText(validInput(), "Essayez maintenant")
	require.NoError(t, err)
	assert.True(t, result.Valid)

	result, err = gen.ValidateText(validInput(), "une phrase qui ne commence pas par un verbe impératif du tout vraiment")
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.NotEmpty(t, result.Errors)
}

func TestGeneratorSemanticWithoutEmbedder(t *testing.T) {
	llm := &fakeLLM{text: tenLines()}
	genRepo := &memGenerationRepo{}
	gen := NewGenerator(llm, nil, genRepo, &memUsageRepo{}, nil, nil, testGenConfig())

	in := validInput()
	in.ScoringMode = entity.ScoringModeSemantic
	_, err := gen.Generate(context.Background(), in)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeServiceUnavailable))
	assert.Contains(t, err.Error(), "embedding provider")
	// 在调用 LLM 之前拒绝，不产生用量
	assert.Zero(t, llm.calls)
	assert.Empty(t, genRepo.created)
}

func TestGeneratorPreviewPromptCached(t *testing.T) {
	cache := &memCache{}
	gen := NewGenerator(&fakeLLM{}, nil, nil, nil, nil, cache, testGenConfig())

	first, err := gen.PreviewPrompt(context.Background(), validInput())
	require.NoError(t, err)
	assert.Contains(t, first, "generate exactly 10 calls to action")

	second, err := gen.PreviewPrompt(context.Background(), validInput())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Len(t, cache.data, 1)
}

func TestGeneratorPreviewCacheKeyIsFingerprint(t *testing.T) {
	cache := &memCache{}
	gen := NewGenerator(&fakeLLM{}, nil, nil, nil, nil, cache, testGenConfig())

	in := validInput()
	_, err := gen.PreviewPrompt(context.Background(), in)
	require.NoError(t, err)

	require.Len(t, cache.data, 1)
	for key := range cache.data {
		// 定长十六进制指纹，用户原文不进入键空间
		assert.Len(t, key, 64)
		assert.NotContains(t, key, in.Concept)
	}

	other := in
	other.Concept = "café glacé à la vanille"
	_, err = gen.PreviewPrompt(context.Background(), other)
	require.NoError(t, err)
	assert.Len(t, cache.data, 2)
}
