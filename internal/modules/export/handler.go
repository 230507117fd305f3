package export

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/doodle-journal/core/internal/middleware"
	"github.com/doodle-journal/core/internal/pkg/response"
	"github.com/doodle-journal/core/internal/store"
)

// Handler serves the owner's journal export.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

// RegisterRoutes mounts export routes onto the given router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.GET("/export", authMW, h.download)
}

// download GET /export
func (h *Handler) download(c *gin.Context) {
	buf, err := h.svc.OwnerArchive(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		if errors.Is(err, store.ErrUnavailable) {
			response.ServiceUnavailable(c)
			return
		}
		response.InternalError(c, err)
		return
	}

	filename := ArchiveFilename(time.Now())
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/zip", buf.Bytes())
}
