package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ekaya-inc/ekaya-scaffold/pkg/apperrors"
)

// ErrorCodeGenerationFailed is the single error code reported for any failed run.
const ErrorCodeGenerationFailed = "generation_failed"

// ApiResponse is the envelope of endpoints that report success or failure
// without a dedicated payload.
type ApiResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ErrorResponse writes a JSON error response and returns any encoding error.
func ErrorResponse(w http.ResponseWriter, statusCode int, errorCode, message string) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(map[string]string{
		"error":   errorCode,
		"message": message,
	})
}

// WriteJSON writes a JSON response and returns any encoding error.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	if statusCode != http.StatusOK {
		w.WriteHeader(statusCode)
	}
	return json.NewEncoder(w).Encode(data)
}

// GenerationErrorResponse writes a failed run. Every failure kind shares
// ErrorCodeGenerationFailed; a missing database descriptor is reported as a
// failed precondition, everything else as a server error.
func GenerationErrorResponse(w http.ResponseWriter, err error) error {
	status := http.StatusInternalServerError
	if errors.Is(err, apperrors.ErrMissingDatabaseDefinition) {
		status = http.StatusPreconditionFailed
	}
	return ErrorResponse(w, status, ErrorCodeGenerationFailed, err.Error())
}
