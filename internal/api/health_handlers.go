package api

import (
	"context"
	"net/http"
	"time"

	"github.com/vytor/dailydle/internal/logger"
)

const readyTimeout = 2 * time.Second

// handleHealth returns a liveness probe - always returns 200 OK.
// This endpoint indicates the server process is running.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// handleReady returns a readiness probe. It answers 503 while the store
// cannot be reached.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()
	log := logger.FromContext(ctx)

	if err := s.Store.Ping(ctx); err != nil {
		log.Warn("readiness check failed - store: %v", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("Store unavailable"))
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Ready"))
}
