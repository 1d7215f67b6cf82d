package http

import (
	"encoding/json"
	"net/http"

	"linguabook-backend/internal/domain"
	"linguabook-backend/internal/logger"
)

type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Kind    string `json:"kind"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			logger.Error("Failed to encode response", "error", err)
		}
	}
}

func writeError(w http.ResponseWriter, err error) {
	body := errorBody{Kind: string(domain.KindOf(err)), Message: err.Error()}
	if de, ok := err.(*domain.Error); ok {
		body.Field = de.Field
		body.Message = de.Message
	}
	writeJSON(w, statusFor(domain.KindOf(err)), errorResponse{Error: body})
}

func statusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.ErrKindValidation:
		return http.StatusBadRequest
	case domain.ErrKindNotFound:
		return http.StatusNotFound
	case domain.ErrKindInvalidTransition, domain.ErrKindConflict:
		return http.StatusConflict
	case domain.ErrKindUnavailable:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, domain.NewValidationError("body", "invalid JSON request body"))
		return false
	}
	return true
}
