package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrRecordNotFound is returned when no record has the requested id.
	ErrRecordNotFound = errors.New("record not found")
	// ErrInvalidCredentials is returned when email or password do not match a directory entry.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrSessionInvalid is returned when a session token is missing, expired or logged out.
	ErrSessionInvalid = errors.New("session is invalid or has expired")
	// ErrForbidden is returned when the session role may not perform the action.
	ErrForbidden = errors.New("your role does not allow this action")
	// ErrInvalidRecord is returned when record fields fail validation.
	ErrInvalidRecord = errors.New("record failed validation")
)

// Client-facing messages kept identical to the ones the staff client already displays.
const (
	MsgRecordNotFound     = "Record not found."
	MsgInvalidCredentials = "Invalid email or password."
	MsgRecordDeleted      = "Record deleted."
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Message string            `json:"message"`
	Code    string            `json:"code,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
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
		Message: e.Message,
		Code:    e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrRecordNotFound):
		return NewHTTPError(http.StatusNotFound, MsgRecordNotFound, "RECORD_NOT_FOUND")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, MsgInvalidCredentials, "INVALID_CREDENTIALS")
	case errors.Is(err, ErrSessionInvalid):
		return NewHTTPError(http.StatusUnauthorized, ErrSessionInvalid.Error(), "SESSION_INVALID")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, ErrForbidden.Error(), "FORBIDDEN")
	case errors.Is(err, ErrInvalidRecord):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
