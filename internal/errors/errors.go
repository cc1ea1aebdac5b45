package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrBadRequest is returned when required input is missing or malformed.
	ErrBadRequest = errors.New("bad request")
	// ErrInvalidCredentials is returned when username or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserAlreadyExists is returned when the username or email is taken.
	ErrUserAlreadyExists = errors.New("username or email already exists")
	// ErrNotFound is returned when an upstream search produced no result.
	ErrNotFound = errors.New("not found")
	// ErrUpstream is returned when a third-party API call failed or returned an unexpected shape.
	ErrUpstream = errors.New("upstream request failed")
	// ErrSaveFailed is returned when a storage write did not apply as expected.
	ErrSaveFailed = errors.New("failed to save itinerary")
)

// ErrorResponse represents a standardized error response.
// Routes under /api and /hotels fill Message, the trip routes fill Error.
type ErrorResponse struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code"`
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

// ToErrorResponse converts an HTTPError to a {message, code} body.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Message: e.Message,
		Code:    e.Code,
	}
}

// ToUpstreamResponse converts an HTTPError to an {error, code} body.
func (e *HTTPError) ToUpstreamResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrBadRequest):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "BAD_REQUEST")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, "Invalid credentials", "INVALID_CREDENTIALS")
	case errors.Is(err, ErrUserAlreadyExists):
		// Existing clients expect 400 here.
		return NewHTTPError(http.StatusBadRequest, "Username or email already exists", "USER_ALREADY_EXISTS")
	case errors.Is(err, ErrNotFound):
		return NewHTTPError(http.StatusNotFound, ErrNotFound.Error(), "NOT_FOUND")
	case errors.Is(err, ErrUpstream):
		return NewHTTPError(http.StatusInternalServerError, ErrUpstream.Error(), "UPSTREAM_ERROR")
	case errors.Is(err, ErrSaveFailed):
		return NewHTTPError(http.StatusInternalServerError, "Failed to save itinerary", "SAVE_FAILED")
	default:
		return NewHTTPError(http.StatusInternalServerError, "Server error", "INTERNAL_ERROR")
	}
}
