// Package response writes JSON bodies. Successful responses carry the
// payload as-is; errors are rendered as {"detail": "..."} with an optional
// field map for validation failures.
package response

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the shape of every non-2xx response.
type ErrorBody struct {
	Detail string            `json:"detail"`
	Errors map[string]string `json:"errors,omitempty"`
}

// JSON writes payload with the given status.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload) //nolint:errcheck
}

// Success sends a 200 with payload.
func Success(w http.ResponseWriter, payload any) {
	JSON(w, http.StatusOK, payload)
}

// Created sends a 201 with payload.
func Created(w http.ResponseWriter, payload any) {
	JSON(w, http.StatusCreated, payload)
}

// Error sends status with {"detail": detail}.
func Error(w http.ResponseWriter, status int, detail string) {
	JSON(w, status, ErrorBody{Detail: detail})
}

// ValidationError sends a 422 with the field-level error map.
func ValidationError(w http.ResponseWriter, errs map[string]string) {
	JSON(w, http.StatusUnprocessableEntity, ErrorBody{Detail: "Validation failed", Errors: errs})
}

// NotFound sends a 404 with detail.
func NotFound(w http.ResponseWriter, detail string) {
	Error(w, http.StatusNotFound, detail)
}

// InternalError sends a generic 500. Callers log the cause themselves.
func InternalError(w http.ResponseWriter, detail string) {
	if detail == "" {
		detail = "Internal Server Error"
	}
	Error(w, http.StatusInternalServerError, detail)
}

// TooManyRequests sends a 429.
func TooManyRequests(w http.ResponseWriter) {
	Error(w, http.StatusTooManyRequests, "Too Many Requests")
}
