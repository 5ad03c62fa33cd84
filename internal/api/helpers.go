package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/vytor/dailydle/internal/errors"
	"github.com/vytor/dailydle/internal/logger"
)

const maxBodyBytes = 1 << 16

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode response: %v", err)
	}
}

// decodeJSON reads a single JSON object from the request body into v.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.NewBadRequestError("invalid JSON body: " + err.Error())
	}
	return nil
}

func errNotFoundRoute(r *http.Request) error {
	return errors.NewNotFoundError("route", r.Method+" "+r.URL.Path)
}
