package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doodle-journal/core/internal/pkg/jwt"
)

func TestCarriesValidToken_BearerHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	token, err := jwt.Sign("user-42", time.Minute)
	require.NoError(t, err)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/posts", nil)
	c.Request.Header.Set("Authorization", "Bearer "+token)

	assert.True(t, carriesValidToken(c))
}

func TestCarriesValidToken_ContextAlreadyResolved(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/posts", nil)
	c.Set(ContextKeyUserID, "user-42")

	assert.True(t, carriesValidToken(c))
}

func TestCarriesValidToken_AnonymousAndGarbage(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/posts", nil)
	assert.False(t, carriesValidToken(c))

	c, _ = gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/posts", nil)
	c.Request.Header.Set("Authorization", "Bearer not-a-jwt")
	assert.False(t, carriesValidToken(c))
}

func TestRateLimit_NoRedisIsNoOp(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimit(nil, nil))
	r.GET("/ping", func(c *gin.Context) { c.String(200, "pong") })

	for i := 0; i < 60; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("GET", "/ping", nil))
		require.Equal(t, 200, w.Code)
	}
}
