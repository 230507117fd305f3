package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/doodle-journal/core/internal/pkg/redis"
	"github.com/doodle-journal/core/internal/pkg/response"
)

const (
	rateLimitPerSecond = 50
	rateLimitKeyPrefix = "journal:rate_limit:"
)

// RateLimit throttles anonymous clients per IP per second. Requests
// carrying a valid token pass through untouched; the limiter runs ahead
// of Auth, so it validates the bearer token itself. When redis is not
// configured the middleware is a no-op.
func RateLimit(rdb *redis.Client, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil || carriesValidToken(c) {
			c.Next()
			return
		}

		key := fmt.Sprintf("%s%s:%d", rateLimitKeyPrefix, c.ClientIP(), time.Now().Unix())
		count, err := rdb.Raw().Incr(c.Request.Context(), key).Result()
		if err != nil {
			logger.Warn("rate limit counter unavailable", zap.Error(err))
			c.Next()
			return
		}
		if count == 1 {
			rdb.Raw().Expire(c.Request.Context(), key, 2*time.Second)
		}
		if count > rateLimitPerSecond {
			c.Header("Retry-After", "1")
			response.TooManyRequests(c)
			return
		}
		c.Next()
	}
}

// carriesValidToken reports whether the request is authenticated, either
// via an upstream middleware that already resolved the user or via its
// own bearer token.
func carriesValidToken(c *gin.Context) bool {
	if IsAuthenticated(c) {
		return true
	}
	_, err := ValidateToken(extractToken(c))
	return err == nil
}
