// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"hookline-ai-api/internal/application/hookline"
	"hookline-ai-api/internal/domain/catalog"
	"hookline-ai-api/internal/domain/entity"
	"hookline-ai-api/internal/infrastructure/persistence/milvus"
	"hookline-ai-api/internal/interfaces/http/dto"
)

// HooklineHandler 文案生成处理器
type HooklineHandler struct {
	generator *hookline.Generator
	indexer   *milvus.CandidateIndexer
}

// NewHooklineHandler 创建文案生成处理器
func NewHooklineHandler(generator *hookline.Generator, indexer *milvus.CandidateIndexer) *HooklineHandler {
	return &HooklineHandler{
		generator: generator,
		indexer:   indexer,
	}
}

func toGenerateInput(concept, description, format, tone, language, scoringMode, provider string) hookline.GenerateInput {
	return hookline.GenerateInput{
		Concept:     concept,
		Description: description,
		Format:      catalog.Format(format),
		Tone:        catalog.Tone(tone),
		Language:    language,
		ScoringMode: entity.ScoringMode(scoringMode),
		Provider:    provider,
	}
}

// Generate 同步生成文案候选
// @Summary 生成文案候选
// @Description 按格式/语气/语言生成打分后的文案候选列表
// @Tags Hookline
// @Accept json
// @Produce json
// @Param request body dto.GenerateRequest true "生成请求"
// @Success 200 {object} dto.Response[dto.GenerateResponse]
// @Router /v1/hooklines/generate [post]
func (h *HooklineHandler) Generate(c *gin.Context) {
	var req dto.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	in := toGenerateInput(req.Concept, req.Description, req.Format, req.Tone, req.Language, req.ScoringMode, req.Provider)

	out, err := h.generator.Generate(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}

	dto.Success(c, &dto.GenerateResponse{
		GenerationID: out.GenerationID,
		Candidates:   dto.ToCandidateResponses(out.Candidates),
		ScoringMode:  string(out.ScoringMode),
		Provider:     out.Provider,
		Model:        out.Model,
		DurationMs:   out.DurationMs,
	})
}

// Validate 校验单条文案
// @Summary 校验文案
// @Description 按 (format, tone, language) 的有效约束集校验一条文案
// @Tags Hookline
// @Accept json
// @Produce json
// @Param request body dto.ValidateRequest true "校验请求"
// @Success 200 {object} dto.Response[dto.ValidateResponse]
// @Router /v1/hooklines/validate [post]
func (h *HooklineHandler) Validate(c *gin.Context) {
	var req dto.ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	in := toGenerateInput("validation", "", req.Format, req.Tone, req.Language, "", "")

	result, err := h.generator.ValidateText(in, req.Text)
	if err != nil {
		respondError(c, err)
		return
	}

	dto.Success(c, &dto.ValidateResponse{
		Valid:  result.Valid,
		Errors: result.Errors,
	})
}

// PreviewPrompt 预览编译后的提示词
// @Summary 预览提示词
// @Description 返回确定性编译的提示词全文，不调用 LLM
// @Tags Hookline
// @Accept json
// @Produce json
// @Param request body dto.PreviewPromptRequest true "预览请求"
// @Success 200 {object} dto.Response[dto.PreviewPromptResponse]
// @Router /v1/hooklines/preview-prompt [post]
func (h *HooklineHandler) PreviewPrompt(c *gin.Context) {
	var req dto.PreviewPromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	in := toGenerateInput(req.Concept, req.Description, req.Format, req.Tone, req.Language, "", "")

	prompt, err := h.generator.PreviewPrompt(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}

	dto.Success(c, &dto.PreviewPromptResponse{Prompt: prompt})
}

// Similar 检索相似历史文案
// @Summary 相似文案检索
// @Description 按文本语义检索历史生成的相似候选
// @Tags Hookline
// @Accept json
// @Produce json
// @Param request body dto.SimilarRequest true "检索请求"
// @Success 200 {object} dto.Response[[]milvus.SimilarHookline]
// @Router /v1/hooklines/similar [post]
func (h *HooklineHandler) Similar(c *gin.Context) {
	var req dto.SimilarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	if h.indexer == nil {
		dto.ServiceUnavailable(c, "vector index not configured")
		return
	}

	results, err := h.indexer.SearchSimilar(c.Request.Context(), req.Text, req.Format, req.Language, req.TopK)
	if err != nil {
		respondError(c, err)
		return
	}

	dto.Success(c, results)
}
