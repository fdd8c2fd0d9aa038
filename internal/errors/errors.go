package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUnauthenticated is returned when a request carries no usable session.
	ErrUnauthenticated = errors.New("not logged in")
	// ErrForbidden is returned when the session role may not see a view.
	ErrForbidden = errors.New("admin role required")
	// ErrUserNotFound is returned when a user is not in the backend list.
	ErrUserNotFound = errors.New("user not found")
	// ErrValidation is returned when a form fails client-side validation.
	ErrValidation = errors.New("validation failed")
	// ErrNoFile is returned when an upload request carries no file.
	ErrNoFile = errors.New("no file selected")
	// ErrSessionLoading is returned while the session store has not answered yet.
	ErrSessionLoading = errors.New("session is still loading")
	// ErrBackend is returned when the backend call failed for a reason it did not explain.
	ErrBackend = errors.New("backend request failed")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// statusCoder is implemented by errors that carry an upstream HTTP status,
// such as backend.APIError.
type statusCoder interface {
	HTTPStatus() int
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "UNAUTHENTICATED")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrValidation):
		return NewHTTPError(http.StatusUnprocessableEntity, err.Error(), "VALIDATION_ERROR")
	case errors.Is(err, ErrNoFile):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "NO_FILE")
	case errors.Is(err, ErrSessionLoading):
		return NewHTTPError(http.StatusServiceUnavailable, err.Error(), "SESSION_LOADING")
	case errors.Is(err, ErrBackend):
		return NewHTTPError(http.StatusBadGateway, err.Error(), "BACKEND_ERROR")
	}

	var sc statusCoder
	if errors.As(err, &sc) {
		return NewHTTPError(http.StatusBadGateway, err.Error(), "BACKEND_ERROR")
	}
	return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
}
