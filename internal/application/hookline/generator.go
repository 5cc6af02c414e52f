package hookline

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"hookline-ai-api/internal/config"
	"hookline-ai-api/internal/domain/catalog"
	"hookline-ai-api/internal/domain/constraint"
	"hookline-ai-api/internal/domain/entity"
	"hookline-ai-api/internal/domain/repository"
	"hookline-ai-api/pkg/errors"
	"hookline-ai-api/pkg/logger"
	"hookline-ai-api/pkg/metrics"
)

// VectorIndexer 候选向量索引边界，实现方缺席时生成流程照常工作
type VectorIndexer interface {
	IndexCandidates(ctx context.Context, gen *entity.Generation, candidates []entity.Candidate) error
}

// PromptCache 提示词预览缓存边界
type PromptCache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration)
}

// GenerateInput 一次生成请求
type GenerateInput struct {
	Concept     string
	Description string
	Format      catalog.Format
	Tone        catalog.Tone
	Language    string
	ScoringMode entity.ScoringMode
	Provider    string
}

// GenerateOutput 生成结果
type GenerateOutput struct {
	GenerationID string
	Candidates   []entity.Candidate
	ScoringMode  entity.ScoringMode
	Provider     string
	Model        string
	DurationMs   int
}

// Generator 文案生成编排：约束解析、提示词编译、LLM 调用、
// 解析打分、逐条校验、落库与指标上报。
type Generator struct {
	llm         LLMGateway
	embedder    Embedder
	generations repository.GenerationRepository
	usage       repository.LLMUsageRepository
	indexer     VectorIndexer
	cache       PromptCache
	cfg         config.GenerationConfig

	randomParser *RandomParser
	sf           singleflight.Group
}

// NewGenerator 创建生成编排器。indexer 与 cache 允许为 nil。
func NewGenerator(
	llm LLMGateway,
	embedder Embedder,
	generations repository.GenerationRepository,
	usage repository.LLMUsageRepository,
	indexer VectorIndexer,
	cache PromptCache,
	cfg config.GenerationConfig,
) *Generator {
	return &Generator{
		llm:          llm,
		embedder:     embedder,
		generations:  generations,
		usage:        usage,
		indexer:      indexer,
		cache:        cache,
		cfg:          cfg,
		randomParser: NewRandomParser(),
	}
}

// Generate 执行完整生成流水线
func (g *Generator) Generate(ctx context.Context, in GenerateInput) (*GenerateOutput, error) {
	start := time.Now()

	in, set, err := g.prepare(in)
	if err != nil {
		return nil, err
	}

	// 语义打分依赖 embedding 网关，缺失时在调用 LLM 之前就拒绝
	if in.ScoringMode == entity.ScoringModeSemantic && g.embedder == nil {
		return nil, errors.New(errors.CodeServiceUnavailable, "semantic scoring unavailable").
			WithDetailf("expected a configured embedding provider for scoring mode %q, received none", entity.ScoringModeSemantic)
	}

	prompt, err := CompilePrompt(g.promptInput(in), set)
	if err != nil {
		return nil, err
	}
	fingerprint := PromptFingerprint(prompt)

	llmRes, err := g.llm.Generate(ctx, prompt, GenerateOptions{
		Provider: in.Provider,
		Format:   string(in.Format),
		Tone:     string(in.Tone),
		Language: in.Language,
		Concept:  in.Concept,
	})
	if err != nil {
		g.recordFailure(ctx, in, fingerprint, err)
		return nil, err
	}

	candidates, err := g.parse(ctx, in, llmRes.Text)
	if err != nil {
		g.recordFailure(ctx, in, fingerprint, err)
		return nil, err
	}

	g.validateCandidates(in, set, candidates)

	gen := &entity.Generation{
		ID:                 uuid.NewString(),
		ProductName:        in.Concept,
		ProductDescription: in.Description,
		Format:             string(in.Format),
		Tone:               string(in.Tone),
		Language:           in.Language,
		ScoringMode:        in.ScoringMode,
		Status:             entity.GenerationStatusSucceeded,
		PromptFingerprint:  fingerprint,
		Provider:           llmRes.Provider,
		Model:              llmRes.Model,
		TokensPrompt:       llmRes.PromptTokens,
		TokensCompletion:   llmRes.CompletionTokens,
		DurationMs:         int(time.Since(start).Milliseconds()),
	}
	if err := gen.SetCandidates(candidates); err != nil {
		return nil, errors.Wrap(err, errors.CodeInternalError, "encode candidates")
	}
	g.persist(ctx, gen, llmRes)

	metrics.GenerationTotal.WithLabelValues(string(in.Format), string(in.Tone), in.Language, "succeeded").Inc()
	metrics.GenerationDuration.WithLabelValues(string(in.Format), string(in.ScoringMode)).Observe(time.Since(start).Seconds())

	return &GenerateOutput{
		GenerationID: gen.ID,
		Candidates:   candidates,
		ScoringMode:  in.ScoringMode,
		Provider:     llmRes.Provider,
		Model:        llmRes.Model,
		DurationMs:   gen.DurationMs,
	}, nil
}

// ValidateText 按 (format, language, tone) 的有效约束集校验一条文本
func (g *Generator) ValidateText(in GenerateInput, text string) (constraint.Result, error) {
	_, set, err := g.prepare(in)
	if err != nil {
		return constraint.Result{}, err
	}
	return constraint.Validate(text, set), nil
}

// PreviewPrompt 编译提示词但不调用 LLM。
// 相同参数的并发请求经 singleflight 合并，结果短暂缓存。
func (g *Generator) PreviewPrompt(ctx context.Context, in GenerateInput) (string, error) {
	in, set, err := g.prepare(in)
	if err != nil {
		return "", err
	}

	key := previewCacheKey(in)
	if g.cache != nil {
		if prompt, ok := g.cache.Get(ctx, key); ok {
			metrics.CacheHitsTotal.WithLabelValues("prompt_preview", "hit").Inc()
			return prompt, nil
		}
		metrics.CacheHitsTotal.WithLabelValues("prompt_preview", "miss").Inc()
	}

	result, err, _ := g.sf.Do(key, func() (any, error) {
		prompt, compileErr := CompilePrompt(g.promptInput(in), set)
		if compileErr != nil {
			return "", compileErr
		}
		if g.cache != nil {
			g.cache.Set(ctx, key, prompt, g.cfg.PromptCacheTTL)
		}
		return prompt, nil
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

// previewCacheKey 预览缓存键：规范化入参的 SHA-256 指纹。
// 键长固定，用户原文不进入 Redis 键空间。
func previewCacheKey(in GenerateInput) string {
	return PromptFingerprint(strings.Join([]string{
		in.Concept, in.Description, string(in.Format), string(in.Tone), in.Language,
	}, "\x1f"))
}

// prepare 归一化入参并解析有效约束集，失败即快速返回
func (g *Generator) prepare(in GenerateInput) (GenerateInput, constraint.Set, error) {
	in.Concept = strings.TrimSpace(in.Concept)
	if in.Concept == "" {
		return in, nil, errors.New(errors.CodeInvalidParam, "empty concept").
			WithDetail("expected a non-empty product concept, received empty string")
	}

	if in.ScoringMode == "" {
		in.ScoringMode = entity.ScoringMode(g.cfg.DefaultScoringMode)
	}
	if in.ScoringMode == "" {
		in.ScoringMode = entity.ScoringModeRandom
	}
	if !entity.ValidScoringMode(in.ScoringMode) {
		return in, nil, errors.New(errors.CodeInvalidParam, "unknown scoring mode").
			WithDetailf("expected one of %s, %s, received %q",
				entity.ScoringModeRandom, entity.ScoringModeSemantic, in.ScoringMode)
	}

	// 目录项快速失败，静默兜底仅限数据层明确定义的三处
	if _, err := catalog.FormatByID(in.Format); err != nil {
		return in, nil, err
	}
	if _, err := catalog.ToneByID(in.Tone); err != nil {
		return in, nil, err
	}
	if _, err := catalog.LanguageByCode(in.Language); err != nil {
		return in, nil, err
	}

	return in, constraint.Resolve(in.Format, in.Language, in.Tone), nil
}

func (g *Generator) promptInput(in GenerateInput) PromptInput {
	return PromptInput{
		Concept:     in.Concept,
		Description: in.Description,
		Format:      in.Format,
		Tone:        in.Tone,
		Language:    in.Language,
		LineCount:   g.cfg.ExpectedLines,
	}
}

func (g *Generator) parse(ctx context.Context, in GenerateInput, rawText string) ([]entity.Candidate, error) {
	if in.ScoringMode == entity.ScoringModeSemantic {
		parser := NewSemanticParser(g.embedder, g.cfg.ExpectedLines, g.cfg.EmbedConcurrency)
		return parser.Parse(ctx, rawText, in.Concept)
	}
	return g.randomParser.Parse(ctx, rawText, "")
}

// validateCandidates 逐条校验并回填校验结果
func (g *Generator) validateCandidates(in GenerateInput, set constraint.Set, candidates []entity.Candidate) {
	for i := range candidates {
		result := constraint.Validate(candidates[i].Text, set)
		candidates[i].Valid = result.Valid
		candidates[i].ValidationErrors = result.Errors

		metrics.CandidateScore.WithLabelValues(string(in.ScoringMode)).Observe(float64(candidates[i].Score))
		if len(result.Errors) > 0 {
			metrics.ConstraintViolationsTotal.WithLabelValues(string(in.Format), in.Language).
				Add(float64(len(result.Errors)))
		}
	}
}

// persist 落库生成记录与用量事件。
// 记账失败不吞掉已成功的生成结果，只记日志。
func (g *Generator) persist(ctx context.Context, gen *entity.Generation, llmRes *LLMResult) {
	if g.generations != nil {
		if err := g.generations.Create(ctx, gen); err != nil {
			logger.Error(ctx, "persist generation failed", err, "generation_id", gen.ID)
		}
	}
	if g.usage != nil {
		event := &entity.LLMUsageEvent{
			GenerationID:     gen.ID,
			Provider:         llmRes.Provider,
			Model:            llmRes.Model,
			TokensPrompt:     llmRes.PromptTokens,
			TokensCompletion: llmRes.CompletionTokens,
			DurationMs:       llmRes.DurationMs,
		}
		if err := g.usage.Record(ctx, event); err != nil {
			logger.Error(ctx, "record llm usage failed", err, "generation_id", gen.ID)
		}
	}
	if g.indexer != nil {
		candidates, err := gen.DecodeCandidates()
		if err == nil {
			if err := g.indexer.IndexCandidates(ctx, gen, candidates); err != nil {
				logger.Warn(ctx, "index candidates failed", "generation_id", gen.ID, "error", err)
			}
		}
	}
}

// recordFailure 失败路径落一条失败记录并上报指标
func (g *Generator) recordFailure(ctx context.Context, in GenerateInput, fingerprint string, cause error) {
	metrics.GenerationTotal.WithLabelValues(string(in.Format), string(in.Tone), in.Language, "failed").Inc()
	if g.generations == nil {
		return
	}
	gen := &entity.Generation{
		ID:                 uuid.NewString(),
		ProductName:        in.Concept,
		ProductDescription: in.Description,
		Format:             string(in.Format),
		Tone:               string(in.Tone),
		Language:           in.Language,
		ScoringMode:        in.ScoringMode,
		Status:             entity.GenerationStatusFailed,
		PromptFingerprint:  fingerprint,
		ErrorMessage:       cause.Error(),
	}
	if err := g.generations.Create(ctx, gen); err != nil {
		logger.Error(ctx, "persist failed generation failed", err, "generation_id", gen.ID)
	}
}
