package cms

import "fmt"

// ConnectionError means the content store could not be reached at all:
// DNS failure, connection refused, timeout. The base URL is carried so
// callers can tell "store down" apart from "store said no".
type ConnectionError struct {
	BaseURL string
	Err     error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("content store unreachable at %s: %v", e.BaseURL, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// RequestError means the store responded, but with an error status or
// a body that could not be used (wrong content type, invalid JSON).
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("content store request failed (status %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("content store request failed: %s", e.Message)
}

// NotFoundError is the 404 case of RequestError, surfaced as its own
// type so the page layer can render "article not found" instead of a
// generic store error.
type NotFoundError struct {
	DocumentID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("article %q not found", e.DocumentID)
}
