// Package errors provides custom error types for the Advice Slip API client.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	ErrNetwork           = errors.New("network failure")
	ErrRequestFailed     = errors.New("request failed")
	ErrMalformedResponse = errors.New("malformed response")
)

// maxBodyExcerpt bounds the response body kept on a RequestFailedError
const maxBodyExcerpt = 2048

// Kind names the failure class of an error, for diagnostics
type Kind string

const (
	KindUnknown           Kind = "unknown"
	KindNetwork           Kind = "network_failure"
	KindRequestFailed     Kind = "request_failed"
	KindMalformedResponse Kind = "malformed_response"
)

// NetworkError represents an outbound call that could not complete
// (DNS, connection, transport).
type NetworkError struct {
	Operation string
	Endpoint  string
	Cause     error
}

func (e *NetworkError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("network error during %s at %s", e.Operation, e.Endpoint)
	}
	return fmt.Sprintf("network error during %s at %s: %v", e.Operation, e.Endpoint, e.Cause)
}

// Unwrap returns the underlying transport error
func (e *NetworkError) Unwrap() error {
	return e.Cause
}

// Is allows comparison with sentinel errors
func (e *NetworkError) Is(target error) bool {
	if target == ErrNetwork {
		return true
	}
	_, ok := target.(*NetworkError)
	return ok
}

// NewNetworkError creates a new NetworkError
func NewNetworkError(operation, endpoint string, cause error) *NetworkError {
	return &NetworkError{
		Operation: operation,
		Endpoint:  endpoint,
		Cause:     cause,
	}
}

// RequestFailedError represents a response with a non-success HTTP status
type RequestFailedError struct {
	StatusCode int
	Endpoint   string
	Body       string
}

func (e *RequestFailedError) Error() string {
	return fmt.Sprintf("request failed [%d] at %s", e.StatusCode, e.Endpoint)
}

// Is allows comparison with sentinel errors
func (e *RequestFailedError) Is(target error) bool {
	if target == ErrRequestFailed {
		return true
	}
	_, ok := target.(*RequestFailedError)
	return ok
}

// WithBody attaches a bounded excerpt of the response body
func (e *RequestFailedError) WithBody(body string) *RequestFailedError {
	if len(body) > maxBodyExcerpt {
		body = body[:maxBodyExcerpt]
	}
	e.Body = body
	return e
}

// NewRequestFailedError creates a new RequestFailedError
func NewRequestFailedError(statusCode int, endpoint string) *RequestFailedError {
	return &RequestFailedError{
		StatusCode: statusCode,
		Endpoint:   endpoint,
	}
}

// ParseError represents a body that is not valid JSON or lacks the
// expected fields.
type ParseError struct {
	Message string
	Path    string
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("parse error: %s", e.Message)
	}
	return fmt.Sprintf("parse error at %s: %s", e.Path, e.Message)
}

// Is allows comparison with sentinel errors
func (e *ParseError) Is(target error) bool {
	if target == ErrMalformedResponse {
		return true
	}
	_, ok := target.(*ParseError)
	return ok
}

// NewParseError creates a new ParseError
func NewParseError(message, path string) *ParseError {
	return &ParseError{Message: message, Path: path}
}

// IsNetworkError reports whether err is a transport failure
func IsNetworkError(err error) bool {
	return errors.Is(err, ErrNetwork)
}

// IsRequestFailed reports whether err is a non-success HTTP status
func IsRequestFailed(err error) bool {
	return errors.Is(err, ErrRequestFailed)
}

// IsMalformedResponse reports whether err is a parse failure
func IsMalformedResponse(err error) bool {
	return errors.Is(err, ErrMalformedResponse)
}

// KindOf classifies err into one of the known failure kinds
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case IsNetworkError(err):
		return KindNetwork
	case IsRequestFailed(err):
		return KindRequestFailed
	case IsMalformedResponse(err):
		return KindMalformedResponse
	default:
		return KindUnknown
	}
}

// GetHTTPStatus extracts the HTTP status code from err, or 0
func GetHTTPStatus(err error) int {
	var rf *RequestFailedError
	if errors.As(err, &rf) {
		return rf.StatusCode
	}
	return 0
}

// GetEndpoint extracts the endpoint from err, or ""
func GetEndpoint(err error) string {
	var rf *RequestFailedError
	if errors.As(err, &rf) {
		return rf.Endpoint
	}
	var ne *NetworkError
	if errors.As(err, &ne) {
		return ne.Endpoint
	}
	return ""
}

// GetResponseBody extracts the response body excerpt from err, or ""
func GetResponseBody(err error) string {
	var rf *RequestFailedError
	if errors.As(err, &rf) {
		return rf.Body
	}
	return ""
}
