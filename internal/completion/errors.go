package completion

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrNotConfigured means the provider has no API key. This is a
	// deployment problem, not something a fallback should paper over.
	ErrNotConfigured     = errors.New("completion: api key not configured")
	ErrInvalidCredential = errors.New("completion: invalid api key")
	ErrRateLimited       = errors.New("completion: rate limited")
	ErrMalformedResponse = errors.New("completion: malformed response")
	ErrUnavailable       = errors.New("completion: upstream unavailable")
	ErrUnknownProvider   = errors.New("completion: unknown provider")
)

// HTTPError is a non-2xx answer from the completion endpoint.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e == nil {
		return "upstream http error"
	}
	if e.Body == "" {
		return fmt.Sprintf("upstream http error: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("upstream http error: status=%d body=%s", e.StatusCode, e.Body)
}

// Unwrap classifies the response so callers can use errors.Is with the
// package sentinels.
func (e *HTTPError) Unwrap() error {
	switch {
	case e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden:
		return ErrInvalidCredential
	case strings.Contains(strings.ToLower(e.Body), "invalid api key"),
		strings.Contains(e.Body, "invalid_api_key"):
		return ErrInvalidCredential
	case e.StatusCode == http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		return ErrUnavailable
	}
}
