package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

type upstreamErr struct{ status int }

func (e upstreamErr) Error() string   { return "upstream said no" }
func (e upstreamErr) HTTPStatus() int { return e.status }

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"unauthenticated", ErrUnauthenticated, http.StatusUnauthorized, "UNAUTHENTICATED"},
		{"forbidden wrapped", fmt.Errorf("gate: %w", ErrForbidden), http.StatusForbidden, "FORBIDDEN"},
		{"user not found", ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND"},
		{"validation", ErrValidation, http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{"no file", ErrNoFile, http.StatusBadRequest, "NO_FILE"},
		{"session loading", ErrSessionLoading, http.StatusServiceUnavailable, "SESSION_LOADING"},
		{"backend", ErrBackend, http.StatusBadGateway, "BACKEND_ERROR"},
		{"upstream", fmt.Errorf("list users: %w", upstreamErr{status: 500}), http.StatusBadGateway, "BACKEND_ERROR"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.status, got.StatusCode)
			assert.Equal(t, tt.code, got.Code)
			assert.Equal(t, ErrorResponse{Error: got.Message, Code: tt.code}, got.ToErrorResponse())
		})
	}
}

func TestMapErrorToHTTP_HidesInternalMessage(t *testing.T) {
	got := MapErrorToHTTP(errors.New("dial tcp 10.0.0.1: refused"))
	assert.Equal(t, "internal server error", got.Message)
}
