// Package health serves the liveness endpoint.
package health

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/doodle-journal/core/internal/store"
)

// Handler answers liveness probes. The payload stays `{"status":"ok"}`
// whenever the process is up; backend reachability is reported as an extra
// field rather than a non-200, so orchestrators do not restart the server
// over a database blip.
type Handler struct {
	st store.Store
}

func NewHandler(st store.Store) *Handler { return &Handler{st: st} }

// RegisterRoutes mounts the health route on the engine root.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.check)
}

func (h *Handler) check(c *gin.Context) {
	payload := gin.H{"status": "ok"}
	if err := h.st.Ping(c.Request.Context()); err != nil {
		payload["storage"] = "unreachable"
	}
	c.JSON(http.StatusOK, payload)
}
