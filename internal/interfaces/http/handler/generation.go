// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"hookline-ai-api/internal/domain/entity"
	"hookline-ai-api/internal/domain/repository"
	"hookline-ai-api/internal/interfaces/http/dto"
	"hookline-ai-api/pkg/errors"
)

// GenerationHandler 生成记录查询处理器
type GenerationHandler struct {
	generations repository.GenerationRepository
}

// NewGenerationHandler 创建生成记录查询处理器
func NewGenerationHandler(generations repository.GenerationRepository) *GenerationHandler {
	return &GenerationHandler{generations: generations}
}

// Get 查询单条生成记录
// @Summary 查询生成记录
// @Tags Generation
// @Produce json
// @Param gid path string true "生成记录 ID"
// @Success 200 {object} dto.Response[dto.GenerationResponse]
// @Router /v1/generations/{gid} [get]
func (h *GenerationHandler) Get(c *gin.Context) {
	id := dto.BindGenerationID(c)
	if id == "" {
		dto.BadRequest(c, "generation id is required")
		return
	}

	gen, err := h.generations.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if gen == nil {
		respondError(c, errors.New(errors.CodeGenerationNotFound, "generation not found").
			WithDetailf("generation %q", id))
		return
	}

	dto.Success(c, dto.ToGenerationResponse(gen, true))
}

// List 分页列出生成记录
// @Summary 生成记录列表
// @Tags Generation
// @Produce json
// @Param format query string false "格式过滤"
// @Param tone query string false "语气过滤"
// @Param language query string false "语言过滤"
// @Param status query string false "状态过滤"
// @Param scoring_mode query string false "打分模式过滤"
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Success 200 {object} dto.Response[dto.GenerationListResponse]
// @Router /v1/generations [get]
func (h *GenerationHandler) List(c *gin.Context) {
	page := dto.BindPage(c)

	filter := &repository.GenerationFilter{
		Format:      c.Query("format"),
		Tone:        c.Query("tone"),
		Language:    c.Query("language"),
		Status:      entity.GenerationStatus(c.Query("status")),
		ScoringMode: entity.ScoringMode(c.Query("scoring_mode")),
	}

	result, err := h.generations.List(c.Request.Context(), filter, repository.NewPagination(page.Page, page.PageSize))
	if err != nil {
		respondError(c, err)
		return
	}

	dto.SuccessWithPage(c, dto.ToGenerationListResponse(result.Items),
		dto.NewPageMeta(result.Page, result.PageSize, int(result.Total)))
}

// Delete 删除生成记录
// @Summary 删除生成记录
// @Tags Generation
// @Produce json
// @Param gid path string true "生成记录 ID"
// @Success 204
// @Router /v1/generations/{gid} [delete]
func (h *GenerationHandler) Delete(c *gin.Context) {
	id := dto.BindGenerationID(c)
	if id == "" {
		dto.BadRequest(c, "generation id is required")
		return
	}

	if err := h.generations.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	dto.NoContent(c)
}

// Stats 生成统计信息
// @Summary 生成统计
// @Tags Generation
// @Produce json
// @Success 200 {object} dto.Response[repository.GenerationStats]
// @Router /v1/generations/stats [get]
func (h *GenerationHandler) Stats(c *gin.Context) {
	stats, err := h.generations.GetStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	dto.Success(c, stats)
}
