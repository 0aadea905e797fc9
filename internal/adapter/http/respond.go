package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Dexuser/property-service/internal/property/domain"
)

type errorResponse struct {
	Error    string   `json:"error"`
	Messages []string `json:"messages,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// writeError maps the engine's failure taxonomy to HTTP status codes. The
// engine decides the failure kind; this layer only renders it.
func writeError(w http.ResponseWriter, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "validation failed", Messages: ve.Messages})
	case domain.IsNotFound(err):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrDuplicateCode):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrStorage):
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
}

// errorType labels a failure for the error counter.
func errorType(err error) string {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return "validation"
	case domain.IsNotFound(err):
		return "not_found"
	case errors.Is(err, domain.ErrDuplicateCode):
		return "conflict"
	case errors.Is(err, domain.ErrStorage):
		return "storage"
	default:
		return "unexpected"
	}
}
