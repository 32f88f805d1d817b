// Package server exposes the geometry, wedge and packing calculations as a
// JSON HTTP API.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/piwi3910/SpoolCut/internal/config"
	"github.com/piwi3910/SpoolCut/internal/dimtable"
	"github.com/piwi3910/SpoolCut/internal/geometry"
	"github.com/piwi3910/SpoolCut/internal/model"
)

// Server is the HTTP API. One geometry engine is shared by all requests;
// it only reads the dimension table.
type Server struct {
	router   *gin.Engine
	table    *dimtable.Table
	engine   *geometry.Engine
	settings model.CutSettings
	logger   *zap.Logger
}

// NewServer creates the server and registers its routes.
func NewServer(cfg *config.Configuration, table *dimtable.Table, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		router:   gin.New(),
		table:    table,
		engine:   geometry.New(table),
		settings: cfg.Settings(),
		logger:   logger,
	}
	s.router.Use(gin.Recovery(), requestLogger(logger))
	s.setupRoutes()

	return s
}

func (s *Server) setupRoutes() {
	api := s.router.Group("/api")
	{
		api.GET("/health", s.health)
		api.GET("/dimensions", s.listDimensions)
		api.GET("/dimensions/:dn", s.getDimension)

		api.POST("/deduction", s.deduction)
		api.POST("/bend", s.bend)
		api.POST("/branch", s.branch)
		api.POST("/offset/two-plane", s.twoPlaneOffset)
		api.POST("/offset/rolling", s.rollingOffset)
		api.POST("/offset/multi-point", s.multiPointOffset)
		api.POST("/segmented-bend", s.segmentedBend)
		api.POST("/wedge", s.wedge)
		api.POST("/pack", s.pack)
		api.POST("/spool", s.spool)
	}
}

// ServeHTTP makes the server usable as an http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("op", "server.Run"), zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down", zap.String("op", "server.Run"))
		return srv.Shutdown(shutdownCtx)
	}
}

// requestLogger logs one line per request.
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("op", "server.request"),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("error", c.Errors.String()))
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			logger.Error("request failed", fields...)
			return
		}
		logger.Debug("request", fields...)
	}
}
