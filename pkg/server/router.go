// Package server exposes the vision service over HTTP with gin.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/japaniel/visionary/pkg/service"
)

// NewRouter wires the HTTP routes onto a fresh gin engine.
func NewRouter(svc *service.Service, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := gin.New()
	r.Use(requestLogger(logger), recovery(logger))

	r.POST("/visions", SubmitVisionHandler(svc))
	r.POST("/submit_vision", SubmitVisionHandler(svc))
	r.GET("/visions", ListVisionsHandler(svc))
	r.GET("/visions/:id", GetVisionHandler(svc))
	r.GET("/symbols", ListSymbolsHandler(svc))
	r.GET("/status", StatusHandler(svc))

	admin := r.Group("/admin")
	{
		admin.POST("/symbols/reset", ResetSymbolsHandler(svc))
	}
	return r
}

// Server runs the router until its context is cancelled.
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
}

func New(addr string, handler http.Handler, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Run serves until ctx is done, then shuts down with a grace period.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", s.httpServer.Addr))
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.logger.Info("shutting down")
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
