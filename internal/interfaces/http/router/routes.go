// Package router 提供 HTTP 路由配置
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterV1Routes 注册 v1 版本路由
func RegisterV1Routes(v1 *gin.RouterGroup, h Handlers) {
	// 目录查询
	catalog := v1.Group("/catalog")
	{
		catalog.GET("/formats", h.Catalog.ListFormats)
		catalog.GET("/tones", h.Catalog.ListTones)
		catalog.GET("/languages", h.Catalog.ListLanguages)
	}

	// 文案生成
	hooklines := v1.Group("/hooklines")
	{
		hooklines.POST("/generate", h.Hookline.Generate)
		hooklines.POST("/validate", h.Hookline.Validate)
		hooklines.POST("/preview-prompt", h.Hookline.PreviewPrompt)
		hooklines.POST("/similar", h.Hookline.Similar)
	}

	// 异步任务
	jobs := v1.Group("/jobs")
	{
		jobs.POST("", h.Job.Submit)
		jobs.GET("", h.Job.List)
		jobs.GET("/:jid", h.Job.Get)
	}

	// 生成记录
	generations := v1.Group("/generations")
	{
		generations.GET("", h.Generation.List)
		generations.GET("/stats", h.Generation.Stats)
		generations.GET("/:gid", h.Generation.Get)
		generations.DELETE("/:gid", h.Generation.Delete)
	}
}
