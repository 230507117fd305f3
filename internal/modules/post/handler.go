package post

import (
	"errors"
	"regexp"

	"github.com/gin-gonic/gin"

	"github.com/doodle-journal/core/internal/middleware"
	"github.com/doodle-journal/core/internal/pkg/response"
	"github.com/doodle-journal/core/internal/store"
)

var monthPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// Handler handles journal entry HTTP requests.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

// RegisterRoutes mounts entry routes onto the given router group. All of
// them require authentication: a journal has no public surface.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	posts := rg.Group("/posts", authMW)

	posts.GET("", h.list)
	posts.GET("/calendar", h.calendar)
	posts.GET("/stats", h.stats)
	posts.GET("/:id", h.get)
	posts.GET("/:id/rendered", h.rendered)
	posts.POST("", h.create)
	posts.PUT("/:id", h.update)
	posts.PATCH("/:id", h.update) // legacy compatibility
	posts.DELETE("/:id", h.delete)

	posts.POST("/:id/comments", h.addComment)
	posts.DELETE("/:id/comments/:commentId", h.deleteComment)
}

// list GET /posts
func (h *Handler) list(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	posts, err := h.svc.List(c.Request.Context(), middleware.CurrentUserID(c), q)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, ToResponses(posts))
}

// get GET /posts/:id
func (h *Handler) get(c *gin.Context) {
	p, err := h.svc.Get(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, ToResponse(p))
}

// create POST /posts
func (h *Handler) create(c *gin.Context) {
	var dto CreatePostDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	p, err := h.svc.Create(c.Request.Context(), middleware.CurrentUserID(c), &dto)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Created(c, ToResponse(p))
}

// update PUT /posts/:id
func (h *Handler) update(c *gin.Context) {
	var dto UpdatePostDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	p, err := h.svc.Update(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"), &dto)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, ToResponse(p))
}

// delete DELETE /posts/:id
func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	response.NoContent(c)
}

// addComment POST /posts/:id/comments
func (h *Handler) addComment(c *gin.Context) {
	var dto CreateCommentDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	comment, err := h.svc.AddComment(
		c.Request.Context(),
		c.Param("id"),
		middleware.CurrentUserID(c),
		dto.Content,
	)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Created(c, ToCommentResponse(comment))
}

// deleteComment DELETE /posts/:id/comments/:commentId
func (h *Handler) deleteComment(c *gin.Context) {
	err := h.svc.DeleteComment(
		c.Request.Context(),
		c.Param("id"),
		c.Param("commentId"),
		middleware.CurrentUserID(c),
	)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.NoContent(c)
}

// calendar GET /posts/calendar?month=yyyy-MM
func (h *Handler) calendar(c *gin.Context) {
	month := c.Query("month")
	if month != "" && !monthPattern.MatchString(month) {
		response.BadRequest(c, "month must be yyyy-MM")
		return
	}

	buckets, err := h.svc.Calendar(c.Request.Context(), middleware.CurrentUserID(c), month)
	if err != nil {
		h.fail(c, err)
		return
	}

	out := make(map[string][]Response, len(buckets))
	for day, entries := range buckets {
		out[day] = ToResponses(entries)
	}
	response.OK(c, out)
}

// stats GET /posts/stats
func (h *Handler) stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, stats)
}

// rendered GET /posts/:id/rendered
func (h *Handler) rendered(c *gin.Context) {
	p, err := h.svc.Get(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, renderEntry(p))
}

// fail maps store errors to HTTP. Not-found and forbidden both surface as
// 404: foreign-owned records must be indistinguishable from absent ones.
func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrValidation):
		response.BadRequest(c, err.Error())
	case errors.Is(err, store.ErrNotFound), errors.Is(err, store.ErrForbidden):
		response.NotFound(c)
	case errors.Is(err, store.ErrUnavailable):
		response.ServiceUnavailable(c)
	default:
		response.InternalError(c, err)
	}
}
