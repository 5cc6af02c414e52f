// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"hookline-ai-api/internal/application/job"
	"hookline-ai-api/internal/domain/entity"
	"hookline-ai-api/internal/domain/repository"
	"hookline-ai-api/internal/interfaces/http/dto"
)

// IdempotencyKeyHeader 幂等键请求头
const IdempotencyKeyHeader = "X-Idempotency-Key"

// JobHandler 异步任务处理器
type JobHandler struct {
	jobs *job.Service
}

// NewJobHandler 创建异步任务处理器
func NewJobHandler(jobs *job.Service) *JobHandler {
	return &JobHandler{jobs: jobs}
}

// Submit 提交异步生成任务
// @Summary 提交异步生成任务
// @Description 创建任务并投递到队列，立即返回任务 ID
// @Tags Job
// @Accept json
// @Produce json
// @Param X-Idempotency-Key header string false "幂等键"
// @Param request body dto.SubmitJobRequest true "任务请求"
// @Success 202 {object} dto.Response[dto.JobResponse]
// @Router /v1/jobs [post]
func (h *JobHandler) Submit(c *gin.Context) {
	var req dto.SubmitJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	idempotencyKey := c.GetHeader(IdempotencyKeyHeader)

	created, err := h.jobs.Submit(c.Request.Context(), req.ToParams(), idempotencyKey)
	if err != nil {
		respondError(c, err)
		return
	}

	dto.Accepted(c, dto.ToJobResponse(created))
}

// Get 查询任务状态
// @Summary 查询任务
// @Tags Job
// @Produce json
// @Param jid path string true "任务 ID"
// @Success 200 {object} dto.Response[dto.JobResponse]
// @Router /v1/jobs/{jid} [get]
func (h *JobHandler) Get(c *gin.Context) {
	jobID := dto.BindJobID(c)
	if jobID == "" {
		dto.BadRequest(c, "job id is required")
		return
	}

	found, err := h.jobs.Get(c.Request.Context(), jobID)
	if err != nil {
		respondError(c, err)
		return
	}

	dto.Success(c, dto.ToJobResponse(found))
}

// List 分页列出任务
// @Summary 任务列表
// @Tags Job
// @Produce json
// @Param status query string false "任务状态过滤"
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Success 200 {object} dto.Response[dto.JobListResponse]
// @Router /v1/jobs [get]
func (h *JobHandler) List(c *gin.Context) {
	page := dto.BindPage(c)
	status := entity.JobStatus(c.Query("status"))

	result, err := h.jobs.List(c.Request.Context(), status, repository.NewPagination(page.Page, page.PageSize))
	if err != nil {
		respondError(c, err)
		return
	}

	dto.SuccessWithPage(c, dto.ToJobListResponse(result.Items),
		dto.NewPageMeta(result.Page, result.PageSize, int(result.Total)))
}
