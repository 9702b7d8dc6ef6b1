package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorStatuses(t *testing.T) {
	cases := []struct {
		err    *ServiceError
		code   Code
		status int
	}{
		{BadRequest("bad"), CodeBadRequest, http.StatusBadRequest},
		{Unauthorized("no creds"), CodeUnauthorized, http.StatusUnauthorized},
		{Forbidden("no perm"), CodeForbidden, http.StatusForbidden},
		{NotFound("gone"), CodeNotFound, http.StatusNotFound},
		{Unprocessable("nope"), CodeUnprocessable, http.StatusUnprocessableEntity},
		{InvalidToken(nil), CodeInvalidToken, http.StatusUnauthorized},
		{RateLimitExceeded(50, "1s"), CodeRateLimitExceeded, http.StatusTooManyRequests},
		{Internal("boom", nil), CodeInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.code, tc.err.Code)
		assert.Equal(t, tc.status, tc.err.HTTPStatus)
	}
}

func TestUnwrapExposesCause(t *testing.T) {
	cause := stderrors.New("connection reset")
	err := Internal("query failed", cause)
	assert.True(t, stderrors.Is(err, cause))
}

func TestGetServiceError(t *testing.T) {
	se := NotFound("missing")
	wrapped := fmt.Errorf("handler: %w", se)

	got := GetServiceError(wrapped)
	require.NotNil(t, got)
	assert.Equal(t, se, got)

	assert.Nil(t, GetServiceError(stderrors.New("plain")))
}

func TestWithDetails(t *testing.T) {
	err := BadRequest("bad field").WithDetails("field", "phone")
	require.NotNil(t, err.Details)
	assert.Equal(t, "phone", err.Details["field"])
}
