package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vytor/dailydle/internal/errors"
	"github.com/vytor/dailydle/internal/logger"
	"github.com/vytor/dailydle/internal/models"
	"github.com/vytor/dailydle/internal/services"
)

func (s *Server) handleToday(w http.ResponseWriter, r *http.Request) {
	state, err := s.GameService.State(r.Context(), playerFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, state)
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req services.GuessRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if req.ID < 0 {
		handleError(w, r, errors.NewValidationError("id", "must be positive"))
		return
	}
	log.Debug("guess submitted: id=%d, name=%q", req.ID, req.Name)

	outcome, err := s.GameService.Guess(r.Context(), playerFromContext(r.Context()), req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, outcome)
}

func (s *Server) handleRevealHint(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	nStr := chi.URLParam(r, "n")
	n, err := strconv.Atoi(nStr)
	if err != nil {
		log.Warn("invalid hint number: %s", nStr)
		handleError(w, r, errors.NewBadRequestError("invalid hint number"))
		return
	}

	state, err := s.GameService.RevealHint(r.Context(), playerFromContext(r.Context()), models.Hint(n))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, state)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit := 0
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			handleError(w, r, errors.NewValidationError("limit", "must be a non-negative integer"))
			return
		}
		limit = n
	}

	found, err := s.GameService.Search(r.Context(), playerFromContext(r.Context()), q.Get("q"), limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if found == nil {
		found = []models.Monster{}
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"monsters": found})
}

func (s *Server) handleYesterday(w http.ResponseWriter, r *http.Request) {
	m, err := s.GameService.Yesterday(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, m)
}
