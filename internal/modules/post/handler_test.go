package post

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doodle-journal/core/internal/middleware"
	"github.com/doodle-journal/core/internal/models"
	"github.com/doodle-journal/core/internal/store/memstore"
)

func authAs(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextKeyUserID, userID)
		c.Next()
	}
}

func newTestRouter(t *testing.T, userID string) (*gin.Engine, *Service, *models.UserModel) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := memstore.New()
	owner, err := st.Users().Create(context.Background(), "owner", "owner@example.com", "hash")
	require.NoError(t, err)

	svc := NewService(st)
	r := gin.New()
	api := r.Group("/api")
	if userID == "" {
		userID = owner.ID
	}
	NewHandler(svc).RegisterRoutes(api, authAs(userID))
	return r, svc, owner
}

func doJSON(t *testing.T, r http.Handler, method, url string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreatePost_HTTP(t *testing.T) {
	r, _, _ := newTestRouter(t, "")

	w := doJSON(t, r, http.MethodPost, "/api/posts", gin.H{
		"title": "hello", "content": "world", "colorTheme": "red",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var got Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "hello", got.Title)
	assert.Equal(t, "red", got.ColorTheme)
	assert.NotEmpty(t, got.ID)
}

func TestCreatePost_MissingTitleRejected(t *testing.T) {
	r, _, _ := newTestRouter(t, "")

	w := doJSON(t, r, http.MethodPost, "/api/posts", gin.H{"content": "only"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreatePost_TooManyImagesRejected(t *testing.T) {
	r, _, _ := newTestRouter(t, "")

	w := doJSON(t, r, http.MethodPost, "/api/posts", gin.H{
		"title":   "t",
		"content": "c",
		"images":  []string{"1", "2", "3", "4", "5"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetPost_ForeignEntryReads404(t *testing.T) {
	// The router authenticates as a stranger; the entry belongs to owner.
	st := memstore.New()
	owner, err := st.Users().Create(context.Background(), "owner", "owner@example.com", "hash")
	require.NoError(t, err)
	p, err := NewService(st).Create(context.Background(), owner.ID, &CreatePostDTO{Title: "t", Content: "c"})
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(NewService(st)).RegisterRoutes(r.Group("/api"), authAs("stranger"))

	w := doJSON(t, r, http.MethodGet, "/api/posts/"+p.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCalendar_BadMonthRejected(t *testing.T) {
	r, _, _ := newTestRouter(t, "")

	w := doJSON(t, r, http.MethodGet, "/api/posts/calendar?month=2026-3", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/posts/calendar?month=2026-03", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDeleteComment_StrangerGets404(t *testing.T) {
	st := memstore.New()
	ctx := context.Background()
	owner, err := st.Users().Create(ctx, "owner", "owner@example.com", "hash")
	require.NoError(t, err)
	svc := NewService(st)
	p, err := svc.Create(ctx, owner.ID, &CreatePostDTO{Title: "t", Content: "c"})
	require.NoError(t, err)
	cm, err := svc.AddComment(ctx, p.ID, owner.ID, "note to self")
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api"), authAs("stranger"))

	// Forbidden deletions are indistinguishable from missing ones.
	w := doJSON(t, r, http.MethodDelete, "/api/posts/"+p.ID+"/comments/"+cm.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRenderedView_HTTP(t *testing.T) {
	r, svc, owner := newTestRouter(t, "")
	p, err := svc.Create(context.Background(), owner.ID, &CreatePostDTO{
		Title: "t", Content: "**bold**",
	})
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodGet, "/api/posts/"+p.ID+"/rendered", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<strong>bold</strong>")
}
