package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrDuplicateUsername is returned when registering an already taken username.
	ErrDuplicateUsername = errors.New("username already exists")
	// ErrUnknownUsername is returned when resetting the password of a missing account.
	ErrUnknownUsername = errors.New("user not found")
	// ErrAccessDenied is returned when username and password do not match an account.
	ErrAccessDenied = errors.New("access denied")
	// ErrNetworkUnavailable is returned when the classification service is unreachable.
	ErrNetworkUnavailable = errors.New("cannot connect to the classification service")
	// ErrListingFailed is returned when the result file listing cannot be loaded.
	ErrListingFailed = errors.New("failed to load result files")
	// ErrBusy is returned when a submission is already in flight.
	ErrBusy = errors.New("a submission is already in progress")
)

// RemoteError is a non-2xx reply from the classification service. Message is
// the verbatim "error" field of the JSON body when one could be parsed, or a
// generic "HTTP <status>" text otherwise.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	return e.Message
}

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

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	var remote *RemoteError
	if errors.As(err, &remote) {
		return NewHTTPError(remote.StatusCode, remote.Message, "REMOTE_ERROR")
	}
	switch {
	case errors.Is(err, ErrDuplicateUsername):
		return NewHTTPError(http.StatusConflict, err.Error(), "DUPLICATE_USERNAME")
	case errors.Is(err, ErrUnknownUsername):
		return NewHTTPError(http.StatusNotFound, err.Error(), "UNKNOWN_USERNAME")
	case errors.Is(err, ErrAccessDenied):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "ACCESS_DENIED")
	case errors.Is(err, ErrNetworkUnavailable):
		return NewHTTPError(http.StatusBadGateway, err.Error(), "NETWORK_UNAVAILABLE")
	case errors.Is(err, ErrListingFailed):
		return NewHTTPError(http.StatusBadGateway, err.Error(), "LISTING_FAILED")
	case errors.Is(err, ErrBusy):
		return NewHTTPError(http.StatusConflict, err.Error(), "SUBMISSION_IN_PROGRESS")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
