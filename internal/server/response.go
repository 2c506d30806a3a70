package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/alansmodic/edit-ledger/internal/common/errorwrapper"
)

// APIError is the body of every error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error APIError `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, errorResponse{Error: APIError{Code: code, Message: message}})
}

// respondErr maps a domain error onto a status code
func (s *Server) respondErr(w http.ResponseWriter, r *http.Request, err error) {
	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytesErr):
		respondError(w, http.StatusRequestEntityTooLarge, "too_large", "request body too large")
	case errors.Is(err, errorwrapper.ErrNotFound):
		respondError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, errorwrapper.ErrInvalidInput):
		respondError(w, http.StatusBadRequest, "invalid_input", err.Error())
	case r.Context().Err() != nil && errors.Is(err, r.Context().Err()):
		respondError(w, http.StatusServiceUnavailable, "cancelled", "request cancelled")
	default:
		s.logger.Error().Err(err).Str("request_id", RequestIDFromContext(r.Context())).Str("path", r.URL.Path).Msg("Request failed")
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
