package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrValidation is returned when input is malformed or missing.
	ErrValidation = errors.New("validation error")
	// ErrInvalidID is returned when an id is not a 24 character hex object id.
	ErrInvalidID = fmt.Errorf("%w: invalid id", ErrValidation)
	// ErrInvalidReference is returned when a line item references neither a taller nor a bloque.
	ErrInvalidReference = fmt.Errorf("%w: either id_taller or id_bloque is required", ErrValidation)
	// ErrInvalidState is returned when a state transition targets a value outside the allowed set.
	ErrInvalidState = fmt.Errorf("%w: invalid state", ErrValidation)
	// ErrInsufficientCapacity is returned when a reservation would leave negative seats.
	ErrInsufficientCapacity = errors.New("insufficient capacity")
	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned on uniqueness violations.
	ErrConflict = errors.New("conflict")
	// ErrUnauthorized is returned for missing, invalid or expired credentials.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	// ErrForbidden is returned when the caller's role is not allowed.
	ErrForbidden = errors.New("forbidden")
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

// MapErrorToHTTP maps domain errors to HTTP errors. More specific kinds are
// checked before the kinds they wrap.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrInvalidID):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_ID")
	case errors.Is(err, ErrInvalidReference):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_REFERENCE")
	case errors.Is(err, ErrInvalidState):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_STATE")
	case errors.Is(err, ErrValidation):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
	case errors.Is(err, ErrInsufficientCapacity):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INSUFFICIENT_CAPACITY")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, ErrInvalidCredentials.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrUnauthorized):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "UNAUTHORIZED")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case errors.Is(err, ErrNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "NOT_FOUND")
	case errors.Is(err, ErrConflict):
		return NewHTTPError(http.StatusConflict, err.Error(), "CONFLICT")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}

// Validation wraps a message as a validation error.
func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NotFound builds a not found error for the given entity and id.
func NotFound(entity, id string) error {
	return fmt.Errorf("%s %s: %w", entity, id, ErrNotFound)
}

// Conflict builds a conflict error with a message.
func Conflict(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}
