// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"time"

	"hookline-ai-api/internal/domain/entity"
)

// GenerateRequest 同步生成请求
type GenerateRequest struct {
	Concept     string `json:"concept" binding:"required"`
	Description string `json:"description,omitempty"`
	Format      string `json:"format" binding:"required"`
	Tone        string `json:"tone" binding:"required"`
	Language    string `json:"language" binding:"required"`
	ScoringMode string `json:"scoring_mode,omitempty"`
	Provider    string `json:"provider,omitempty"`
}

// ValidateRequest 单条文案校验请求
type ValidateRequest struct {
	Text     string `json:"text" binding:"required"`
	Format   string `json:"format" binding:"required"`
	Tone     string `json:"tone" binding:"required"`
	Language string `json:"language" binding:"required"`
}

// PreviewPromptRequest 提示词预览请求
type PreviewPromptRequest struct {
	Concept     string `json:"concept" binding:"required"`
	Description string `json:"description,omitempty"`
	Format      string `json:"format" binding:"required"`
	Tone        string `json:"tone" binding:"required"`
	Language    string `json:"language" binding:"required"`
}

// SimilarRequest 相似文案检索请求
type SimilarRequest struct {
	Text     string `json:"text" binding:"required"`
	Format   string `json:"format,omitempty"`
	Language string `json:"language,omitempty"`
	TopK     int    `json:"top_k,omitempty"`
}

// CandidateResponse 候选文案响应
type CandidateResponse struct {
	ID               string   `json:"id"`
	Text             string   `json:"text"`
	Score            int      `json:"score"`
	Valid            bool     `json:"valid"`
	ValidationErrors []string `json:"validation_errors,omitempty"`
}

// GenerateResponse 同步生成响应
type GenerateResponse struct {
	GenerationID string               `json:"generation_id"`
	Candidates   []*CandidateResponse `json:"candidates"`
	ScoringMode  string               `json:"scoring_mode"`
	Provider     string               `json:"provider,omitempty"`
	Model        string               `json:"model,omitempty"`
	DurationMs   int                  `json:"duration_ms"`
}

// ValidateResponse 校验响应
type ValidateResponse struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// PreviewPromptResponse 提示词预览响应
type PreviewPromptResponse struct {
	Prompt string `json:"prompt"`
}

// GenerationResponse 生成记录响应
type GenerationResponse struct {
	ID               string               `json:"id"`
	Concept          string               `json:"concept"`
	Description      string               `json:"description,omitempty"`
	Format           string               `json:"format"`
	Tone             string               `json:"tone"`
	Language         string               `json:"language"`
	ScoringMode      string               `json:"scoring_mode"`
	Status           string               `json:"status"`
	Candidates       []*CandidateResponse `json:"candidates,omitempty"`
	ErrorMessage     string               `json:"error_message,omitempty"`
	Provider         string               `json:"provider,omitempty"`
	Model            string               `json:"model,omitempty"`
	TokensPrompt     int                  `json:"tokens_prompt"`
	TokensCompletion int                  `json:"tokens_completion"`
	DurationMs       int                  `json:"duration_ms"`
	CreatedAt        time.Time            `json:"created_at"`
}

// GenerationListResponse 生成记录列表响应
type GenerationListResponse struct {
	Generations []*GenerationResponse `json:"generations"`
}

// ToCandidateResponses 将候选实体列表转换为响应 DTO
func ToCandidateResponses(candidates []entity.Candidate) []*CandidateResponse {
	out := make([]*CandidateResponse, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, &CandidateResponse{
			ID:               c.ID,
			Text:             c.Text,
			Score:            c.Score,
			Valid:            c.Valid,
			ValidationErrors: c.ValidationErrors,
		})
	}
	return out
}

// ToGenerationResponse 将生成记录实体转换为响应 DTO
func ToGenerationResponse(g *entity.Generation, includeCandidates bool) *GenerationResponse {
	if g == nil {
		return nil
	}

	resp := &GenerationResponse{
		ID:               g.ID,
		Concept:          g.ProductName,
		Description:      g.ProductDescription,
		Format:           g.Format,
		Tone:             g.Tone,
		Language:         g.Language,
		ScoringMode:      string(g.ScoringMode),
		Status:           string(g.Status),
		ErrorMessage:     g.ErrorMessage,
		Provider:         g.Provider,
		Model:            g.Model,
		TokensPrompt:     g.TokensPrompt,
		TokensCompletion: g.TokensCompletion,
		DurationMs:       g.DurationMs,
		CreatedAt:        g.CreatedAt,
	}

	if includeCandidates {
		if candidates, err := g.DecodeCandidates(); err == nil {
			resp.Candidates = ToCandidateResponses(candidates)
		}
	}
	return resp
}

// ToGenerationListResponse 将生成记录实体列表转换为响应 DTO
func ToGenerationListResponse(generations []*entity.Generation) *GenerationListResponse {
	resp := &GenerationListResponse{
		Generations: make([]*GenerationResponse, 0, len(generations)),
	}
	for _, g := range generations {
		resp.Generations = append(resp.Generations, ToGenerationResponse(g, false))
	}
	return resp
}
