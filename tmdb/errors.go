package tmdb

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed Execute call.
type ErrorKind int

const (
	// KindTransport covers connection failures, transport-reported errors and non-2xx responses.
	KindTransport ErrorKind = iota + 1
	// KindDecoding covers bodies that could not be turned into the expected shape,
	// including TMDB error envelopes returned with a success status.
	KindDecoding
)

// String returns the string representation of an ErrorKind
func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindDecoding:
		return "decoding"
	default:
		return "unknown"
	}
}

// Common errors
var (
	// ErrTransport matches any *Error of kind KindTransport via errors.Is
	ErrTransport = errors.New("tmdb transport error")
	// ErrDecoding matches any *Error of kind KindDecoding via errors.Is
	ErrDecoding = errors.New("tmdb decoding error")
	// ErrEmptyBody indicates a success response without a usable body
	ErrEmptyBody = errors.New("empty response body")
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid tmdb configuration")
)

// Error is the only error type returned by Execute.
type Error struct {
	Kind ErrorKind
	Op   string
	Path string
	Err  error
}

// Error implements the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("tmdb %s %s: %s error: %v", e.Op, e.Path, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports the kind sentinels so callers can use errors.Is(err, tmdb.ErrTransport).
func (e *Error) Is(target error) bool {
	switch target {
	case ErrTransport:
		return e.Kind == KindTransport
	case ErrDecoding:
		return e.Kind == KindDecoding
	}
	return false
}

// KindOf extracts the ErrorKind from err, if it carries one.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// StatusError represents a non-2xx HTTP response
type StatusError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface
func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

// IsNotFound checks if the error indicates a not found response
func (e *StatusError) IsNotFound() bool {
	return e.StatusCode == 404
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *StatusError) IsUnauthorized() bool {
	return e.StatusCode == 401 || e.StatusCode == 403
}

// APIStatus is the TMDB error envelope, e.g.
// {"success": false, "status_code": 34, "status_message": "The resource you requested could not be found."}
type APIStatus struct {
	Success *bool  `json:"success"`
	Code    int    `json:"status_code"`
	Message string `json:"status_message"`
}

// Error implements the error interface
func (s *APIStatus) Error() string {
	return fmt.Sprintf("tmdb status %d: %s", s.Code, s.Message)
}

// failed reports whether the envelope explicitly signals failure.
func (s *APIStatus) failed() bool {
	return s.Success != nil && !*s.Success
}
