package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

const requestTimeout = 10 * time.Second

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handleError(w, r, errNotFoundRoute(r))
	})

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Use(timeoutMiddleware(requestTimeout))
		r.Use(s.playerMiddleware)

		r.Get("/today", s.handleToday)
		r.Post("/guesses", s.handleGuess)
		r.Post("/hints/{n}", s.handleRevealHint)
		r.Get("/stats", s.handleStats)
		r.Get("/monsters", s.handleSearch)
		r.Get("/yesterday", s.handleYesterday)
	})

	return r
}
