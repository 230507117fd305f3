package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/doodle-journal/core/internal/config"
	"github.com/doodle-journal/core/internal/database"
	"github.com/doodle-journal/core/internal/middleware"
	pkgcron "github.com/doodle-journal/core/internal/pkg/cron"
	pkgjwt "github.com/doodle-journal/core/internal/pkg/jwt"
	"github.com/doodle-journal/core/internal/pkg/push"
	pkgredis "github.com/doodle-journal/core/internal/pkg/redis"
	"github.com/doodle-journal/core/internal/store"
	"github.com/doodle-journal/core/internal/store/gormstore"
	"github.com/doodle-journal/core/internal/store/memstore"
)

// App holds all application dependencies.
type App struct {
	cfg    *config.AppConfig
	router *gin.Engine
	st     store.Store
	db     *gorm.DB // nil when the memory backend is active
	rc     *pkgredis.Client
	logger *zap.Logger
	cancel context.CancelFunc
	sched  *pkgcron.Scheduler
}

// New initializes the application: config → store → Redis → routes → jobs.
func New(logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	pkgjwt.SetSecret(cfg.JWTSecret)

	st, db, err := buildStore(cfg)
	if err != nil {
		return nil, err
	}
	logger.Info("storage ready", zap.String("driver", cfg.Storage.Driver))

	var rc *pkgredis.Client
	if cfg.RedisURL != "" {
		rc, err = pkgredis.Connect(cfg.RedisURL)
		if err != nil {
			// Rate limiting and idempotence degrade to no-ops without Redis.
			logger.Warn("redis unavailable, continuing without it", zap.Error(err))
			rc = nil
		}
	}

	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))
	router.Use(buildCORS(cfg))

	ctx, cancel := context.WithCancel(context.Background())

	app := &App{
		cfg:    cfg,
		router: router,
		st:     st,
		db:     db,
		rc:     rc,
		logger: logger,
		cancel: cancel,
		sched:  pkgcron.New(),
	}
	notifier := push.New(cfg.Push.Key, cfg.Push.ServerURL)
	app.registerRoutes()
	app.registerCronJobs(notifier)
	app.sched.Start(ctx)

	return app, nil
}

func buildStore(cfg *config.AppConfig) (store.Store, *gorm.DB, error) {
	switch cfg.Storage.Driver {
	case config.StorageMySQL:
		db, err := database.Connect(cfg, true)
		if err != nil {
			return nil, nil, fmt.Errorf("database: %w", err)
		}
		return gormstore.New(db), db, nil
	case config.StorageMemory:
		return memstore.New(), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// Addr returns the listen address.
func (a *App) Addr() string { return fmt.Sprintf(":%d", a.cfg.Port) }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// Shutdown stops background goroutines.
func (a *App) Shutdown() { a.cancel() }
