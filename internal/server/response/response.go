// Package response provides the JSON envelope the controlled list server
// uses for health and error responses. List payloads are written bare
// because list search clients decode them directly.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/agentstation/refselect/pkg/errors"
)

// Response is the envelope for health and error responses.
type Response struct {
	Data  any    `json:"data"`
	Error *Error `json:"error"`
}

// Error represents an API error with code, message, and optional details.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Success creates a successful response with data.
func Success(data any) Response {
	return Response{Data: data}
}

// Fail creates an error response.
func Fail(code, message, details string) Response {
	return Response{
		Error: &Error{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
}

// JSON writes v as JSON with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// headers are already sent, nothing useful to do with an encode error
	_ = json.NewEncoder(w).Encode(v)
}

// Raw writes an already encoded JSON body.
func Raw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// OK writes a successful envelope with 200 status.
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, Success(data))
}

// BadRequest writes a 400 error response.
func BadRequest(w http.ResponseWriter, message, details string) {
	JSON(w, http.StatusBadRequest, Fail("BAD_REQUEST", message, details))
}

// Unauthorized writes a 401 error response.
func Unauthorized(w http.ResponseWriter, message, details string) {
	JSON(w, http.StatusUnauthorized, Fail("UNAUTHORIZED", message, details))
}

// NotFound writes a 404 error response.
func NotFound(w http.ResponseWriter, message, details string) {
	JSON(w, http.StatusNotFound, Fail("NOT_FOUND", message, details))
}

// InternalError writes a 500 error response without exposing err.
func InternalError(w http.ResponseWriter, _ error) {
	JSON(w, http.StatusInternalServerError, Fail(
		"INTERNAL_ERROR",
		"Internal server error",
		"An unexpected error occurred",
	))
}

// ServiceUnavailable writes a 503 error response.
func ServiceUnavailable(w http.ResponseWriter, message string) {
	JSON(w, http.StatusServiceUnavailable, Fail(
		"SERVICE_UNAVAILABLE",
		"Service unavailable",
		message,
	))
}

// ErrorFromType maps typed errors to appropriate HTTP responses.
func ErrorFromType(w http.ResponseWriter, err error) {
	switch {
	case errors.IsNotFound(err):
		NotFound(w, err.Error(), "")
	case errors.IsValidationError(err):
		BadRequest(w, err.Error(), "")
	case errors.IsUnavailable(err):
		ServiceUnavailable(w, err.Error())
	default:
		InternalError(w, err)
	}
}
