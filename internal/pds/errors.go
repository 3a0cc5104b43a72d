package pds

import "fmt"

// RequestError is returned when the PDS answers with a non-success status.
type RequestError struct {
	StatusCode int
	URL        string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("HTTP error! status: %d", e.StatusCode)
}

// TransportError is returned when the PDS could not be reached at all.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("fetching %s failed", e.URL)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Cause returns the underlying network error.
func (e *TransportError) Cause() error { return e.Err }

// DecodeError is returned when the response body is not a valid listing.
type DecodeError struct {
	// Index is the offending entry in repos, or -1 for the body itself.
	Index int
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("decoding listRepos response: %v", e.Err)
	}
	return fmt.Sprintf("decoding listRepos response: repos[%d]: %v", e.Index, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
