package middleware

import (
	"fmt"
	"net/http"
	"time"

	"creatordna_backend/internal/logger"
	"creatordna_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimitMiddleware applies a fixed-window per-client limit backed by
// Redis. Redis failures fail open: a broken limiter must not take the
// API down with it.
func RateLimitMiddleware(client *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := fmt.Sprintf("ratelimit:%s:%d", c.ClientIP(), time.Now().Unix()/int64(window.Seconds()))

		count, err := client.Incr(ctx, key).Result()
		if err != nil {
			logger.CtxWarn(ctx, "rate limiter unavailable, allowing request", "error", err)
			c.Next()
			return
		}
		if count == 1 {
			if err := client.Expire(ctx, key, window).Err(); err != nil {
				logger.CtxWarn(ctx, "rate limiter expiry failed", "error", err)
			}
		}

		if count > int64(limit) {
			apperrors.HandleError(c, apperrors.New(
				apperrors.CodeRateLimited,
				"ratelimit",
				"Too many requests, slow down",
				http.StatusTooManyRequests,
			))
			c.Abort()
			return
		}
		c.Next()
	}
}
