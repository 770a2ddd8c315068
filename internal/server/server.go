// Package server exposes the tracker as a JSON API.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/Tiliavir/daily-proof/internal/tracker"
)

const (
	maxBodySize     = 8 << 20 // 8MB
	shutdownTimeout = 5 * time.Second
)

// Server is the Daily Proof web server.
type Server struct {
	tracker *tracker.Service
	logger  *log.Logger
	router  *gin.Engine
}

// New creates the server and registers its routes. The UI routes are only
// registered when staticDir exists.
func New(svc *tracker.Service, logger *log.Logger, staticDir string) *Server {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))

	s := &Server{
		tracker: svc,
		logger:  logger,
		router:  router,
	}

	router.GET("/healthz", s.handleHealth)

	// API routes
	api := router.Group("/api")
	{
		api.GET("/tasks", s.handleGetTasks)
		api.POST("/tasks", s.handleUpdateTasks)
		api.GET("/heatmap", s.handleHeatmap)
		api.GET("/stats", s.handleStats)
	}

	if info, err := os.Stat(staticDir); staticDir != "" && err == nil && info.IsDir() {
		s.registerUI(staticDir)
	} else {
		logger.Debug("static directory not found, serving API only", "dir", staticDir)
	}

	return s
}

func (s *Server) registerUI(dir string) {
	s.router.Static("/static", dir)
	s.router.GET("/manifest.webmanifest", serveFile(filepath.Join(dir, "manifest.webmanifest"), "application/manifest+json"))
	s.router.GET("/sw.js", serveFile(filepath.Join(dir, "sw.js"), "application/javascript"))
	s.router.GET("/", serveFile(filepath.Join(dir, "index.html"), "text/html; charset=utf-8"))
}

// Handler returns the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
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
		errCh <- srv.ListenAndServe()
	}()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func serveFile(path, contentType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := os.Stat(path); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		c.Header("Content-Type", contentType)
		c.File(path)
	}
}

func requestLogger(logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
