package reminder

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/doodle-journal/core/internal/middleware"
	"github.com/doodle-journal/core/internal/pkg/response"
	"github.com/doodle-journal/core/internal/store"
)

// Handler handles reminder HTTP requests.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

// RegisterRoutes mounts reminder routes onto the given router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/reminders", authMW)

	g.GET("", h.list)
	g.POST("", h.create)
	g.PUT("/:id", h.update)
	g.PATCH("/:id", h.update) // legacy compatibility
	g.DELETE("/:id", h.delete)
}

// list GET /reminders
func (h *Handler) list(c *gin.Context) {
	reminders, err := h.svc.List(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, toResponses(reminders))
}

// create POST /reminders
func (h *Handler) create(c *gin.Context) {
	var dto CreateReminderDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	r, err := h.svc.Create(c.Request.Context(), middleware.CurrentUserID(c), &dto)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Created(c, toResponse(r))
}

// update PUT /reminders/:id
func (h *Handler) update(c *gin.Context) {
	var dto UpdateReminderDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	r, err := h.svc.Update(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"), &dto)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, toResponse(r))
}

// delete DELETE /reminders/:id
func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrValidation):
		response.BadRequest(c, err.Error())
	case errors.Is(err, store.ErrNotFound):
		response.NotFound(c)
	case errors.Is(err, store.ErrUnavailable):
		response.ServiceUnavailable(c)
	default:
		response.InternalError(c, err)
	}
}
