package oracle

import "fmt"

// The fetch failure taxonomy. The three cases stay distinguishable so a
// caller can tell "document not published" from "host unreachable" from
// "document malformed"; collapsing them loses diagnosability.

// NotFoundError indicates the reference document is absent at the expected
// path (HTTP 404/410).
type NotFoundError struct {
	SectorID string
	URL      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("reference document for sector %s not found at %s", e.SectorID, e.URL)
}

// NetworkError indicates a transport failure or an unexpected HTTP status
type NetworkError struct {
	URL        string
	StatusCode int // 0 when the request never produced a response
	Err        error
}

func (e *NetworkError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ParseError indicates a 200 response whose body is not a usable reference
// document. Never converted into an empty success.
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse reference document %s: %v", e.URL, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
