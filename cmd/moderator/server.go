package main

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// ServerConfig holds configuration for the webhook listener.
type ServerConfig struct {
	// Addr is the address to listen on (e.g., ":33123").
	Addr string

	// Endpoint is the route bound to the webhook handler.
	Endpoint string
}

// Server is the HTTP server that accepts webhook deliveries.
type Server struct {
	config  ServerConfig
	handler *WebhookHandler
	logger  *zap.Logger
	server  *http.Server
}

// NewServer creates a new webhook listener.
func NewServer(config ServerConfig, handler *WebhookHandler, logger *zap.Logger) *Server {
	return &Server{
		config:  config,
		handler: handler,
		logger:  logger.Named("server"),
	}
}

// Start starts the HTTP server and blocks until the context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc(s.config.Endpoint, s.handler.Handle)
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())

	s.server = &http.Server{
		Addr:        s.config.Addr,
		Handler:     mux,
		ReadTimeout: 10 * time.Second,
		// WriteTimeout stays zero: mail delivery runs inside the request and
		// the listener must not time-box the handler.
		IdleTimeout: 60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting HTTP server",
			zap.String("addr", s.config.Addr),
			zap.String("endpoint", s.config.Endpoint),
		)
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("Shutting down server")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		return s.server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// handleHealth handles the /healthz endpoint.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
