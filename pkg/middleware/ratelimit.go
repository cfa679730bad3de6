package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/ecommerce/pkg/logger"
	"github.com/wyfcoding/ecommerce/pkg/ratelimit"
)

// RateLimitMiddleware 基于客户端 IP 的限流中间件
func RateLimitMiddleware(limiter ratelimit.RateLimiter, requests int, window time.Duration) gin.HandlerFunc {
	limit := ratelimit.Limit{Rate: requests, Period: window, Burst: requests}

	return func(c *gin.Context) {
		key := "ratelimit:" + c.ClientIP()

		result, err := limiter.Allow(c.Request.Context(), key, limit)
		if err != nil {
			// 限流器故障时放行，不能因为 Redis 不可用拒绝所有流量
			logger.Warn(c.Request.Context(), "Rate limiter unavailable", "error", err)
			c.Next()
			return
		}

		if !result.Allowed {
			c.Header("Retry-After", result.RetryAfter.String())
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded",
			})
			return
		}

		c.Next()
	}
}
