package utils

import (
	"encoding/json"
	"net/http"

	"group_service/internal/apperrors"
)

type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func WriteError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(errorResponse{
		Status:  "error",
		Message: message,
	})
}

// WriteAppError translates a service error into its HTTP status at the
// boundary. Only the machine-stable reason reaches the client; internal
// error text goes to the log.
func WriteAppError(w http.ResponseWriter, err error) {
	status := apperrors.StatusOf(err)
	if status >= http.StatusInternalServerError {
		Logger.Errorf("request failed: %v", err)
	}
	WriteError(w, apperrors.ReasonOf(err), status)
}
