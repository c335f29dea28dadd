// internal/app/system/apiclient/errors.go
package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnauthorized matches any APIError produced by an HTTP 401 response.
// Callers must tear the session down when they see it.
var ErrUnauthorized = errors.New("apiclient: unauthorized")

// APIError is a well-formed failure reported by the API: either an envelope
// with success=false or a non-2xx status.
type APIError struct {
	Status  int    // HTTP status code
	Code    string // envelope error code, may be empty
	Message string // envelope error message, may be empty
	Method  string
	Path    string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	if e.Code != "" {
		return fmt.Sprintf("api %s %s: %d %s: %s", e.Method, e.Path, e.Status, e.Code, msg)
	}
	return fmt.Sprintf("api %s %s: %d: %s", e.Method, e.Path, e.Status, msg)
}

// Is lets errors.Is(err, ErrUnauthorized) match 401 responses.
func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// NetworkError is a transport-level failure: the request never produced a
// readable response.
type NetworkError struct {
	Method string
	Path   string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("api %s %s: network: %v", e.Method, e.Path, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// IsUnauthorized reports whether err came from a 401 response.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsNetwork reports whether err is a transport failure.
func IsNetwork(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// Message returns the API's error message for err, or fallback when err is
// not an APIError or the API sent no message.
func Message(err error, fallback string) string {
	var ae *APIError
	if errors.As(err, &ae) && ae.Message != "" {
		return ae.Message
	}
	return fallback
}

// IsNotFound reports whether err came from a 404 response.
func IsNotFound(err error) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.Status == http.StatusNotFound
}
