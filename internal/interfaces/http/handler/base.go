// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"hookline-ai-api/internal/interfaces/http/dto"
	"hookline-ai-api/pkg/errors"
	"hookline-ai-api/pkg/logger"
)

// respondError 将应用错误映射为 HTTP 错误响应
func respondError(c *gin.Context, err error) {
	if appErr, ok := err.(*errors.AppError); ok {
		detail := &dto.ErrorDetail{
			ErrorCode: string(appErr.Code),
			Details:   appErr.Detail,
		}
		dto.ErrorWithDetail(c, appErr.HTTPStatus, appErr.Message, detail)
		return
	}

	logger.Error(c.Request.Context(), "unhandled error", err,
		"path", c.Request.URL.Path)
	dto.InternalError(c, "internal server error")
}
