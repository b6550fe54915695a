// Package server assembles the gin engine and runs the HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/cristianadrielbraun/qrframe/internal/config"
	"github.com/cristianadrielbraun/qrframe/internal/handlers"
	"github.com/cristianadrielbraun/qrframe/internal/log"
)

const shutdownTimeout = 15 * time.Second

// Server is the HTTP API.
type Server struct {
	cfg    config.Config
	engine *gin.Engine
	log    *logrus.Logger
}

// New wires the handlers for cfg and registers every route.
func New(cfg *config.Config, logger *logrus.Logger) (*Server, error) {
	logger = log.Or(logger)
	comps, err := NewComponents(cfg, logger)
	if err != nil {
		return nil, err
	}
	if err := handlers.RegisterValidators(); err != nil {
		return nil, fmt.Errorf("validators: %w", err)
	}
	h := handlers.New(cfg, comps.Renderer, comps.Exporter, comps.Detector, logger)
	return &Server{cfg: *cfg, engine: Engine(cfg, h, logger), log: logger}, nil
}

// Engine returns the gin engine serving h.
func Engine(cfg *config.Config, h *handlers.Handler, logger *logrus.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(handlers.RequestID())
	r.Use(handlers.Logger(logger))
	r.Use(handlers.CORS(cfg.Server.CORSOrigin))
	if cfg.Metrics.Enabled {
		r.Use(handlers.Instrument())
		r.GET(cfg.Metrics.Path, handlers.Metrics())
	}
	r.MaxMultipartMemory = int64(cfg.Server.MaxUploadMB) << 20

	r.GET("/healthz", h.Health)

	limit := handlers.RateLimit(cfg.Server.DetectRate, cfg.Server.DetectBurst, logger)
	api := r.Group("/api")
	{
		api.GET("/qr", h.QRCode)
		api.GET("/qr/svg", h.QRSVG)
		api.GET("/templates", h.Templates)
		api.GET("/contrast", h.Contrast)

		det := api.Group("/detect", limit)
		det.POST("", h.Detect)
		det.POST("/overlay", h.DetectOverlay)
		det.GET("/ws", h.DetectStream)
	}
	return r
}

// Handler exposes the engine, mainly for tests.
func (s *Server) Handler() http.Handler { return s.engine }

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr(),
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.WithField("addr", srv.Addr).Info("qrframe listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
