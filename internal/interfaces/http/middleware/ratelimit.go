// Package middleware 提供 HTTP 中间件
package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hookline-ai-api/internal/config"
	redisinfra "hookline-ai-api/internal/infrastructure/persistence/redis"
	"hookline-ai-api/pkg/errors"
	"hookline-ai-api/pkg/logger"
)

// RateLimit 基于 Redis 滑动窗口的限流中间件，按客户端 IP + 路由限流。
// Redis 不可用时放行请求，限流只作为保护层。
func RateLimit(limiter *redisinfra.RateLimiter, cfg config.RateLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !cfg.Enabled || limiter == nil {
			c.Next()
			return
		}

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		key := redisinfra.BuildRateLimitKey(c.ClientIP(), path)
		limit := cfg.RequestsPerSecond
		if cfg.Burst > limit {
			limit = cfg.Burst
		}

		allowed, err := limiter.Allow(c.Request.Context(), key, limit, time.Second)
		if err != nil {
			logger.Warn(c.Request.Context(), "rate limiter unavailable, allowing request",
				"key", key, "error", err)
			c.Next()
			return
		}

		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"code":    errors.CodeTooManyRequests,
				"message": "too many requests",
			})
			return
		}

		c.Next()
	}
}
