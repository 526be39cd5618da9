package client

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNetworkUnavailable is returned when the backend could not be reached and
// no fallback backend is configured.
var ErrNetworkUnavailable = errors.New("network error: backend is unreachable")

// HTTPError represents a non-2xx HTTP response from the API.
type HTTPError struct {
	StatusCode int
	Message    string
	// Details is the parsed error body: decoded JSON, raw text, or nil when empty.
	Details any
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// ValidationError reports an input check that failed before or instead of a
// round trip to the server.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Message
}

// NotFoundError reports a missing resource.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// IsStatus returns true if err (or any wrapped error) is an HTTPError with the given status code.
func IsStatus(err error, code int) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == code
	}
	return false
}

// IsNotFound reports a NotFoundError or an HTTP 404.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf) || IsStatus(err, http.StatusNotFound)
}

// IsValidation reports a ValidationError or an HTTP 400/422.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve) ||
		IsStatus(err, http.StatusBadRequest) ||
		IsStatus(err, http.StatusUnprocessableEntity)
}

// IsNetwork reports whether err means the backend was unreachable.
func IsNetwork(err error) bool {
	return errors.Is(err, ErrNetworkUnavailable)
}
