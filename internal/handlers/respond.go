package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/phuslu/log"

	"github.com/CodeurSahil/ChatDOCX-pdf-rag/internal/domain"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the core error taxonomy onto HTTP statuses: input
// problems are 400, a missing session is 404, dependency failures are
// 502. The original message is preserved in the body.
func writeError(w http.ResponseWriter, logger *log.Logger, err error) {
	status := http.StatusInternalServerError

	var inputErr *domain.InputError
	var depErr *domain.DependencyError
	switch {
	case errors.As(err, &inputErr):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.As(err, &depErr):
		status = http.StatusBadGateway
	}

	if status >= 500 {
		logger.Error().Err(err).Int("status", status).Msg("request failed")
	} else {
		logger.Debug().Err(err).Int("status", status).Msg("request rejected")
	}
	writeJSON(w, status, errorResponse{Success: false, Error: err.Error()})
}
