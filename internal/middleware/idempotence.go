package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/doodle-journal/core/internal/pkg/redis"
	"github.com/doodle-journal/core/internal/pkg/response"
)

const (
	idempotenceHeader    = "x-idempotence"
	idempotenceKeyPrefix = "journal:idempotence:"
	idempotenceTTL       = 60 * time.Second
)

var idempotenceSkipPaths = []string{
	"/api/auth/login",
	"/api/auth/register",
}

// Idempotence rejects duplicate mutating requests within a short window.
// The key is the x-idempotence header when the client sends one, otherwise
// a digest of the request itself. No-op without redis.
func Idempotence(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil || c.Request.Method == "GET" || c.Request.Method == "HEAD" || c.Request.Method == "OPTIONS" {
			c.Next()
			return
		}
		for _, p := range idempotenceSkipPaths {
			if strings.HasPrefix(c.Request.URL.Path, p) {
				c.Next()
				return
			}
		}

		key := c.GetHeader(idempotenceHeader)
		if key == "" {
			key = requestDigest(c)
		}
		key = idempotenceKeyPrefix + key

		ctx := c.Request.Context()
		if existing, _ := rdb.Get(ctx, key); existing != "" {
			response.Conflict(c, "相同的請求還在處理中，別急著重送")
			return
		}
		_ = rdb.Set(ctx, key, "1", idempotenceTTL)

		c.Next()

		// Done processing, let an identical request through again.
		rdb.Raw().Del(ctx, key)
	}
}

func requestDigest(c *gin.Context) string {
	var body []byte
	if c.Request.Body != nil {
		body, _ = io.ReadAll(c.Request.Body)
		c.Request.Body = io.NopCloser(bytes.NewReader(body))
	}
	sum := sha256.Sum256(fmt.Appendf(nil, "%s|%s|%s|%s|%s|%s",
		c.Request.Method,
		c.Request.URL.String(),
		body,
		c.Request.UserAgent(),
		c.ClientIP(),
		NormalizeToken(c.GetHeader("Authorization")),
	))
	return hex.EncodeToString(sum[:])
}
