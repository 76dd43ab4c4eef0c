package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/voralis/catalogd/internal/catalog"
	"github.com/voralis/catalogd/internal/config"
	"github.com/voralis/catalogd/internal/events"
	"github.com/voralis/catalogd/internal/logger"
	"github.com/voralis/catalogd/internal/middleware"
	"github.com/voralis/catalogd/internal/server/handlers"
)

// Server owns the router and the HTTP listener.
type Server struct {
	cfg    *config.Config
	engine *gin.Engine
	http   *http.Server
}

// New builds the router with all middleware and routes. The store handle
// and event bus are injected; the server takes no ownership of either.
func New(cfg *config.Config, db *gorm.DB, bus *events.Bus) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	if cfg.Server.EnableCORS {
		engine.Use(middleware.CORS())
	}
	engine.Use(middleware.RequestLogger())
	engine.Use(middleware.Metrics())
	engine.Use(middleware.Deadline(cfg.Server.RequestTimeout))

	service := catalog.NewService(db, bus, cfg.Catalog)
	h := handlers.New(service, db)
	registerRoutes(engine, h, handlers.NewEventsHandler(bus))

	return &Server{
		cfg:    cfg,
		engine: engine,
		http: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			Handler:      engine,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start blocks serving traffic until Shutdown is called.
func (s *Server) Start() error {
	logger.Info("http server listening", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
