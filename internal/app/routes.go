package app

import (
	"github.com/gin-gonic/gin"

	"github.com/doodle-journal/core/internal/middleware"
	"github.com/doodle-journal/core/internal/modules/ai"
	"github.com/doodle-journal/core/internal/modules/auth"
	"github.com/doodle-journal/core/internal/modules/export"
	"github.com/doodle-journal/core/internal/modules/health"
	"github.com/doodle-journal/core/internal/modules/post"
	"github.com/doodle-journal/core/internal/modules/reminder"
	"github.com/doodle-journal/core/internal/pkg/response"
)

func (a *App) registerRoutes() {
	r := a.router
	authMW := middleware.Auth()

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	health.NewHandler(a.st).RegisterRoutes(r)

	api := r.Group("/api")
	if a.rc != nil {
		api.Use(middleware.RateLimit(a.rc, a.logger))
		api.Use(middleware.Idempotence(a.rc))
	}

	postSvc := post.NewService(a.st)

	auth.NewHandler(auth.NewService(a.st)).RegisterRoutes(api, authMW)
	post.NewHandler(postSvc).RegisterRoutes(api, authMW)
	reminder.NewHandler(reminder.NewService(a.st)).RegisterRoutes(api, authMW)

	aiSvc := ai.NewService(a.cfg.AI.Provider, a.logger.Named("ai"))
	ai.NewHandler(aiSvc, postSvc).RegisterRoutes(api, authMW)

	export.NewHandler(export.NewService(a.st, a.db)).RegisterRoutes(api, authMW)
}
