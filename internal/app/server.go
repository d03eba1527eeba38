package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mandalnilabja/tokencost/internal/transport/http/middleware/ratelimit"
)

const (
	shutdownTimeout = 10 * time.Second
	pruneInterval   = 5 * time.Minute
)

// Server wraps the HTTP server with its lifecycle.
type Server struct {
	httpServer *http.Server
	limiter    *ratelimit.Limiter
	logger     *slog.Logger
}

// NewServer creates a new configured HTTP server instance. addr is a
// listen address such as ":8080".
func NewServer(addr string, handler http.Handler, limiter *ratelimit.Limiter, logger *slog.Logger) *Server {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{
		httpServer: srv,
		limiter:    limiter,
		logger:     logger,
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("tokencost server starting", "addr", s.httpServer.Addr)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.ListenAndServe()
	}()

	ticker := time.NewTicker(pruneInterval)
	defer ticker.Stop()

	for {
		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("listen: %w", err)
		case <-ticker.C:
			if s.limiter != nil {
				if n := s.limiter.Prune(pruneInterval); n > 0 {
					s.logger.Debug("pruned idle rate limit buckets", "count", n)
				}
			}
		case <-ctx.Done():
			s.logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return s.httpServer.Shutdown(shutdownCtx)
		}
	}
}
