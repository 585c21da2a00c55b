package response

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// MessageResponse is the body of successful write operations.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every failure.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Code    string            `json:"code"`
	Details map[string]string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// Success responses
func Success(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, data)
}

func SuccessWithMessage(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, MessageResponse{Message: message})
}

// Error responses
func BadRequest(w http.ResponseWriter, message string, details map[string]string) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{
		Error:   message,
		Code:    "BAD_REQUEST",
		Details: details,
	})
}

func ValidationError(w http.ResponseWriter, details map[string]string) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{
		Error:   "Validation failed",
		Code:    "VALIDATION_ERROR",
		Details: details,
	})
}

func Unauthorized(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusUnauthorized, ErrorResponse{
		Error: message,
		Code:  "UNAUTHORIZED",
	})
}

func Forbidden(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusForbidden, ErrorResponse{
		Error: message,
		Code:  "FORBIDDEN",
	})
}

func Conflict(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusConflict, ErrorResponse{
		Error: message,
		Code:  "CONFLICT",
	})
}

func ServiceUnavailable(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{
		Error: message,
		Code:  "SERVICE_UNAVAILABLE",
	})
}

func InternalServerError(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error: message,
		Code:  "INTERNAL_SERVER_ERROR",
	})
}
