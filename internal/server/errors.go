package server

import (
	"net/http"

	"github.com/go-chi/render"
)

// APIError is the structured error payload returned by the service. The
// service distinguishes request-shape failures (4xx) from pipeline
// execution failures (5xx); degraded narratives are not errors and ride in
// a 200 response body.
type APIError struct {
	StatusCode int    `json:"status_code"`
	ErrorCode  string `json:"error_code"`
	Message    string `json:"message"`
	Details    any    `json:"details,omitempty"`
}

func (e *APIError) Error() string { return e.Message }

// Render implements render.Renderer.
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

func newAPIError(statusCode int, errorCode, message string) *APIError {
	return &APIError{StatusCode: statusCode, ErrorCode: errorCode, Message: message}
}
