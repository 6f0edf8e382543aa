package currency

import (
	"errors"
	"fmt"
)

var (
	// ErrNetwork means the request never produced a response.
	ErrNetwork = errors.New("network error")
	// ErrHTTP means the server answered with a non-2xx status.
	ErrHTTP = errors.New("http error")
	// ErrMalformedResponse means the body was not a JSON array of currency records.
	ErrMalformedResponse = errors.New("malformed response")
)

// HTTPError carries the detail of a non-2xx response.
type HTTPError struct {
	Method     string
	URL        string
	Status     string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("currency api %s %s failed: %s", e.Method, e.URL, e.Status)
	}
	return fmt.Sprintf("currency api %s %s failed: %s: %s", e.Method, e.URL, e.Status, e.Body)
}

func (e *HTTPError) Unwrap() error { return ErrHTTP }
