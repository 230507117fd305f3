package auth

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/doodle-journal/core/internal/middleware"
	"github.com/doodle-journal/core/internal/models"
	"github.com/doodle-journal/core/internal/pkg/response"
	"github.com/doodle-journal/core/internal/store"
)

// Handler handles auth HTTP requests.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

// RegisterRoutes mounts auth routes onto the given router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/auth")

	g.POST("/register", h.register)
	g.POST("/login", h.login)
	g.GET("/me", authMW, h.me)
}

// register POST /auth/register
func (h *Handler) register(c *gin.Context) {
	var dto RegisterDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	u, token, err := h.svc.Register(c.Request.Context(), &dto)
	if err != nil {
		switch {
		case errors.Is(err, errEmailTaken), errors.Is(err, store.ErrValidation):
			response.BadRequest(c, err.Error())
		case errors.Is(err, store.ErrUnavailable):
			response.ServiceUnavailable(c)
		default:
			response.InternalError(c, err)
		}
		return
	}

	response.Created(c, sessionResponse{User: toUserResponse(u), Token: token})
}

// login POST /auth/login
func (h *Handler) login(c *gin.Context) {
	var dto LoginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	u, token, err := h.svc.Login(c.Request.Context(), &dto)
	if err != nil {
		switch {
		case errors.Is(err, errBadCredentials):
			response.Unauthorized(c)
		case errors.Is(err, store.ErrUnavailable):
			response.ServiceUnavailable(c)
		default:
			response.InternalError(c, err)
		}
		return
	}

	response.OK(c, sessionResponse{User: toUserResponse(u), Token: token})
}

// me GET /auth/me  [auth]
func (h *Handler) me(c *gin.Context) {
	u, err := h.svc.CurrentUser(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		if errors.Is(err, errUserUnavailable) {
			response.Unauthorized(c)
			return
		}
		if errors.Is(err, store.ErrUnavailable) {
			response.ServiceUnavailable(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"user": toUserResponse(u)})
}

func toUserResponse(u *models.UserModel) userResponse {
	return userResponse{ID: u.ID, Username: u.Username, Email: u.Email}
}
