package auth

import "net/http"

// Error is a standardized way to communicate auth failure modes. The code
// strings are part of the API contract and mirror the error bodies clients
// already handle.
type Error struct {
	Code        string `json:"code"`
	Description string `json:"description"`
	Status      int    `json:"-"`
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Description
}

func errHeaderMissing() *Error {
	return &Error{
		Code:        "authorization_header_missing",
		Description: "Authorization header is expected.",
		Status:      http.StatusUnauthorized,
	}
}

func errInvalidHeader(description string, status int) *Error {
	return &Error{Code: "invalid_header", Description: description, Status: status}
}

func errTokenExpired() *Error {
	return &Error{Code: "token_expired", Description: "Token expired.", Status: http.StatusUnauthorized}
}

func errInvalidClaims(description string, status int) *Error {
	return &Error{Code: "invalid_claims", Description: description, Status: status}
}

func errNotAuthorized() *Error {
	return &Error{
		Code:        "unauthorized",
		Description: "Not authorized to perform this action.",
		Status:      http.StatusForbidden,
	}
}
