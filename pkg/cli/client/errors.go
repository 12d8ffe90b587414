package client

import "fmt"

// ErrorType categorizes failures talking to the job API
type ErrorType string

const (
	ErrorTypeNetwork         ErrorType = "network"
	ErrorTypeTimeout         ErrorType = "timeout"
	ErrorTypeCancelled       ErrorType = "cancelled"
	ErrorTypeInvalidResponse ErrorType = "invalid_response"
	ErrorTypeBackend         ErrorType = "backend"
	ErrorTypeHTTP            ErrorType = "http"
)

// Error is a structured error from the job API client
type Error struct {
	Type       ErrorType
	Message    string
	StatusCode int
	Cause      error
}

// Error implements the error interface
func (e *Error) Error() string {
	prefix := string(e.Type)
	if e.StatusCode != 0 {
		prefix = fmt.Sprintf("%s (%d)", e.Type, e.StatusCode)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (%v)", prefix, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

// Unwrap returns the underlying error for error unwrapping
func (e *Error) Unwrap() error {
	return e.Cause
}

// UserMessage returns a user-friendly error message.
// Backend-reported errors are surfaced verbatim.
func (e *Error) UserMessage() string {
	switch e.Type {
	case ErrorTypeNetwork:
		return "Network error while contacting the scraper. Please check that the server is running."
	case ErrorTypeTimeout:
		return "The scraper did not answer in time. Please try again."
	case ErrorTypeCancelled:
		return "Request was cancelled."
	case ErrorTypeInvalidResponse:
		return "Received an invalid response from the scraper. Please try again."
	case ErrorTypeBackend:
		return e.Message
	case ErrorTypeHTTP:
		return fmt.Sprintf("Scraper returned HTTP %d: %s", e.StatusCode, e.Message)
	default:
		return e.Message
	}
}

func newNetworkError(cause error) *Error {
	return &Error{
		Type:    ErrorTypeNetwork,
		Message: "Network error",
		Cause:   cause,
	}
}

func newTimeoutError(cause error) *Error {
	return &Error{
		Type:    ErrorTypeTimeout,
		Message: "Request timed out",
		Cause:   cause,
	}
}

func newCancelledError(cause error) *Error {
	return &Error{
		Type:    ErrorTypeCancelled,
		Message: "Operation cancelled",
		Cause:   cause,
	}
}

func newInvalidResponseError(message string, cause error) *Error {
	return &Error{
		Type:    ErrorTypeInvalidResponse,
		Message: message,
		Cause:   cause,
	}
}

func newBackendError(status int, message string) *Error {
	return &Error{
		Type:       ErrorTypeBackend,
		Message:    message,
		StatusCode: status,
	}
}

func newHTTPError(status int, message string) *Error {
	return &Error{
		Type:       ErrorTypeHTTP,
		Message:    message,
		StatusCode: status,
	}
}
