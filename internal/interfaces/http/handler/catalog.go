// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"hookline-ai-api/internal/domain/catalog"
	"hookline-ai-api/internal/interfaces/http/dto"
)

// CatalogHandler 目录查询处理器
type CatalogHandler struct{}

// NewCatalogHandler 创建目录查询处理器
func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{}
}

// ListFormats 列出全部支持的文案格式
// @Summary 格式目录
// @Tags Catalog
// @Produce json
// @Success 200 {object} dto.Response[dto.FormatListResponse]
// @Router /v1/catalog/formats [get]
func (h *CatalogHandler) ListFormats(c *gin.Context) {
	dto.Success(c, dto.ToFormatListResponse(catalog.Formats()))
}

// ListTones 列出全部支持的语气
// @Summary 语气目录
// @Tags Catalog
// @Produce json
// @Success 200 {object} dto.Response[dto.ToneListResponse]
// @Router /v1/catalog/tones [get]
func (h *CatalogHandler) ListTones(c *gin.Context) {
	dto.Success(c, dto.ToToneListResponse(catalog.Tones()))
}

// ListLanguages 列出全部支持的语言
// @Summary 语言目录
// @Tags Catalog
// @Produce json
// @Success 200 {object} dto.Response[dto.LanguageListResponse]
// @Router /v1/catalog/languages [get]
func (h *CatalogHandler) ListLanguages(c *gin.Context) {
	dto.Success(c, dto.ToLanguageListResponse(catalog.Languages()))
}
