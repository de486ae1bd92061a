package ovapi

import "fmt"

// FetchError is a network-level failure (connection, timeout, open circuit).
// It is the only error kind the client retries.
type FetchError struct {
	Endpoint string
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching %s: %v", e.Endpoint, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// HTTPError is a non-2xx upstream response. Not retried: the public API
// answers 4xx/5xx deterministically for a given path.
type HTTPError struct {
	Endpoint   string
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("fetching %s: upstream returned HTTP %d", e.Endpoint, e.StatusCode)
}

// ParseError means the upstream body was not the JSON shape we depend on.
type ParseError struct {
	Endpoint string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing response from %s: %v", e.Endpoint, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
