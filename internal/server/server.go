// Package server runs the HTTP services and provides the response helpers
// and request logging shared by them.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
)

// DefaultShutdownTimeout bounds how long in-flight requests may finish
// after a shutdown signal.
const DefaultShutdownTimeout = 10 * time.Second

// Config holds listener settings
type Config struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// Server wraps an http.Server with graceful shutdown
type Server struct {
	config Config
	http   *http.Server
	logger zerolog.Logger
}

// New creates a Server for handler. Every request passes through the
// request logging middleware.
func New(cfg Config, name string, handler http.Handler, logger zerolog.Logger) *Server {
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = DefaultShutdownTimeout
	}

	logger = logger.With().Str("component", "server").Str("service", name).Logger()

	return &Server{
		config: cfg,
		http: &http.Server{
			Addr:         cfg.Addr,
			Handler:      RequestLogger(logger)(handler),
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		logger: logger,
	}
}

// Run listens on the configured address and blocks until SIGINT/SIGTERM
// or ctx is cancelled, then shuts down gracefully. A second signal forces
// exit.
func (s *Server) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case <-ctx.Done():
			return
		case <-sigChan:
		}
		s.logger.Info().Msg("Shutdown signal received, initiating graceful shutdown")
		cancel()

		select {
		case <-sigChan:
			s.logger.Warn().Msg("Second shutdown signal received, forcing exit")
			os.Exit(1)
		case <-time.After(s.config.ShutdownTimeout):
		}
	}()

	ln, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.Addr, err)
	}

	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errChan := make(chan error, 1)
	go func() {
		s.logger.Info().Str("address", ln.Addr().String()).Msg("HTTP server listening")
		errChan <- s.http.Serve(ln)
	}()

	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown failed: %w", err)
	}

	s.logger.Info().Msg("HTTP server stopped")
	return nil
}
