package web

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/mbtahub/gtfs-ingest/internal/logging"
)

// ErrorResponse is the JSON structure for API error responses.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// respondError logs the error with its request ID and returns it to the
// client as JSON.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	requestID := middleware.GetReqID(r.Context())

	logging.FromContext(r.Context()).Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", err.Error(),
	)

	respondJSON(w, statusCode, ErrorResponse{
		Error:     err.Error(),
		RequestID: requestID,
	})
}
