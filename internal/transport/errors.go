package transport

import (
	"fmt"
)

// HTTPError is a non-2xx response.
type HTTPError struct {
	Status int
	// Message is taken from the body's msg or message field, or the raw JSON.
	Message string
	Body    []byte
}

func (e *HTTPError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("HTTP error! status: %d", e.Status)
	}
	return fmt.Sprintf("HTTP error! status: %d, %s", e.Status, e.Message)
}

// ParseError is a response body that is not JSON.
type ParseError struct {
	Status      int
	ContentType string
	// Snippet holds the first 100 characters of the body.
	Snippet string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("non-JSON response (status %d, content-type %q): %s", e.Status, e.ContentType, e.Snippet)
}

func (e *ParseError) Unwrap() error { return e.Err }

// TransportError is a failure below HTTP: DNS, TLS, refused connection.
// PossibleCORS tells the caller to suggest network troubleshooting.
type TransportError struct {
	Method       string
	URL          string
	PossibleCORS bool
	Err          error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("network request failed (%s %s), check the connection or cross-origin settings: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
