package ai

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/doodle-journal/core/internal/middleware"
	"github.com/doodle-journal/core/internal/modules/post"
	"github.com/doodle-journal/core/internal/pkg/response"
	"github.com/doodle-journal/core/internal/store"
)

// AnalyzeDTO is the request body for POST /ai/analyze.
type AnalyzeDTO struct {
	Text string `json:"text" binding:"required"`
}

// Handler handles AI analysis HTTP requests.
type Handler struct {
	svc   *Service
	posts *post.Service
}

func NewHandler(svc *Service, posts *post.Service) *Handler {
	return &Handler{svc: svc, posts: posts}
}

// RegisterRoutes mounts analysis routes onto the given router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.POST("/ai/analyze", authMW, h.analyze)
	rg.POST("/posts/:id/analyze", authMW, h.analyzeEntry)
}

// analyze POST /ai/analyze
func (h *Handler) analyze(c *gin.Context) {
	var dto AnalyzeDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.OK(c, h.svc.Analyze(c.Request.Context(), dto.Text))
}

// analyzeEntry POST /posts/:id/analyze
// Applies the analysis to the owned entry: sets aiSummary and mood, merges
// the suggested tags into the existing ones without duplicates.
func (h *Handler) analyzeEntry(c *gin.Context) {
	ctx := c.Request.Context()
	ownerID := middleware.CurrentUserID(c)
	id := c.Param("id")

	entry, err := h.posts.Get(ctx, ownerID, id)
	if err != nil {
		h.fail(c, err)
		return
	}

	result := h.svc.Analyze(ctx, entry.Content)

	merged := store.DedupeTags(append(append([]string{}, entry.Tags...), result.Tags...))
	patch := post.UpdatePostDTO{
		AISummary: &result.Summary,
		Mood:      &result.Mood,
		Tags:      &merged,
	}
	updated, err := h.posts.Update(ctx, ownerID, id, &patch)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.OK(c, gin.H{
		"analysis": result,
		"post":     post.ToResponse(updated),
	})
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		response.NotFound(c)
	case errors.Is(err, store.ErrUnavailable):
		response.ServiceUnavailable(c)
	default:
		response.InternalError(c, err)
	}
}
