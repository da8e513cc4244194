package upstream

import "fmt"

// Error is the terminal failure of an upstream request after the retry
// budget is exhausted. StatusCode carries the upstream's own HTTP status,
// or 503 when the failure happened before any response was received
// (connection refused, DNS failure, timeout). Detail is the raw error text
// or response body; it is passed through to the HTTP caller unmodified.
type Error struct {
	StatusCode int
	Detail     string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("upstream error (status %d): %s", e.StatusCode, e.Detail)
}
