package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/frontendhub/hub/pkg/hub"
)

// ErrorResponse is the JSON envelope for all error replies
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody carries the machine-readable code and a human message
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// statusForKind maps service error kinds onto HTTP status codes
func statusForKind(kind string) int {
	switch kind {
	case hub.KindUnauthenticated:
		return http.StatusUnauthorized
	case hub.KindUnauthorized:
		return http.StatusForbidden
	case hub.KindNotFound:
		return http.StatusNotFound
	case hub.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders a service error as a JSON error envelope
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	kind := hub.Kind(err)
	status := statusForKind(kind)

	if status == http.StatusInternalServerError {
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}

	render.Status(r, status)
	render.JSON(w, r, ErrorResponse{Error: ErrorBody{
		Code:    kind,
		Message: err.Error(),
	}})
}

// writeBadRequest renders a 400 with the given message
func writeBadRequest(w http.ResponseWriter, r *http.Request, message string) {
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, ErrorResponse{Error: ErrorBody{
		Code:    "bad_request",
		Message: message,
	}})
}
