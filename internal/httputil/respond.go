// Package httputil provides shared request/response helpers for the HTTP
// handlers and middleware.
package httputil

import (
	"encoding/json"
	"net/http"

	"github.com/fullstacklab/appsuite/internal/errors"
)

// WriteJSON writes data as a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteErrorResponse writes a structured JSON error body.
func WriteErrorResponse(w http.ResponseWriter, status int, code, message string, details map[string]interface{}) {
	body := map[string]interface{}{
		"success": false,
		"error":   status,
		"code":    code,
		"message": message,
	}
	if len(details) > 0 {
		body["details"] = details
	}
	WriteJSON(w, status, body)
}

// Unauthorized writes a 401 error response.
func Unauthorized(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Unauthorized"
	}
	WriteErrorResponse(w, http.StatusUnauthorized, "unauthorized", message, nil)
}

// WriteServiceError writes err's ServiceError body, falling back to a
// generic 500 for unclassified errors.
func WriteServiceError(w http.ResponseWriter, err error) {
	se := errors.GetServiceError(err)
	if se == nil {
		se = errors.Internal("internal server error", err)
	}
	WriteErrorResponse(w, se.HTTPStatus, string(se.Code), se.Message, se.Details)
}
