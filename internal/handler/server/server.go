package server

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/bagdasarian/openreview-store/internal/config"
	"github.com/bagdasarian/openreview-store/internal/handler"
	"github.com/bagdasarian/openreview-store/internal/logger"
)

type Server struct {
	server *http.Server
}

func NewServer(h *handler.Handler, cfg config.ServerConfig) *Server {
	return &Server{
		server: &http.Server{
			Addr:         cfg.Addr,
			Handler:      NewRouter(h),
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
	}
}

func (s *Server) Start() error {
	logger.Info("server starting", zap.String("addr", s.server.Addr))
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	logger.Info("shutting down")
	if err := s.server.Shutdown(ctx); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}
