package httputil

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// DefaultTimeout bounds a single outbound request.
const DefaultTimeout = 10 * time.Second

var (
	// ErrNotFound is returned for 404 responses.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, bad statuses).
	ErrNetwork = errors.New("network error")
)

// NewHTTPClient returns a client with the given timeout, or
// [DefaultTimeout] when timeout is zero.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// CheckStatus maps a response status to an error: nil for 2xx,
// [ErrNotFound] for 404, a retryable [ErrNetwork] for 429 and 5xx and a
// permanent [ErrNetwork] otherwise.
func CheckStatus(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusTooManyRequests || code >= 500:
		return &RetryableError{Err: fmt.Errorf("%w: status %d", ErrNetwork, code)}
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}

// CheckResponse is [CheckStatus] for a full response. A Retry-After header
// given in seconds on a retryable status becomes the error's After.
func CheckResponse(resp *http.Response) error {
	err := CheckStatus(resp.StatusCode)
	var re *RetryableError
	if errors.As(err, &re) {
		if secs, perr := strconv.Atoi(resp.Header.Get("Retry-After")); perr == nil && secs > 0 {
			re.After = time.Duration(secs) * time.Second
		}
	}
	return err
}
