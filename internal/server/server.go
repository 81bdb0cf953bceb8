package server

import (
	"context"
	"net"
	"net/http"

	"github.com/barangay-connect/backend/internal/config"
)

type Server struct {
	httpServer *http.Server
}

// NewServer builds the HTTP server. Request contexts derive from ctx so that
// long waits such as face matches end on shutdown.
func NewServer(ctx context.Context, cfg *config.Config, handler http.Handler) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         ":" + cfg.HttpServer.Port,
			Handler:      handler,
			ReadTimeout:  cfg.HttpServer.Timeout,
			WriteTimeout: cfg.HttpServer.Timeout,
			IdleTimeout:  cfg.HttpServer.IdleTimeout,
			BaseContext:  func(net.Listener) context.Context { return ctx },
		},
	}
}

func (s *Server) Run() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
