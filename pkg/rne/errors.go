package rne

import "fmt"

// AuthError is returned when the API rejects the supplied credentials, or
// when the login response does not contain a token.
type AuthError struct {
	StatusCode int
	Message    string
}

func (e *AuthError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("authentication failed (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("authentication failed: %s", e.Message)
}

// APIError is returned when a request reaches the API but fails.
// StatusCode is 0 for transport-level failures that never produced a
// response.
type APIError struct {
	StatusCode int
	Body       string
	URL        string
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("request failed: %s: %v", e.URL, e.Err)
	}
	if e.Body != "" {
		return fmt.Sprintf("API error (status %d) on %s: %s", e.StatusCode, e.URL, e.Body)
	}
	return fmt.Sprintf("API error (status %d) on %s", e.StatusCode, e.URL)
}

func (e *APIError) Unwrap() error { return e.Err }

// NotFoundError is returned when an expected field is absent from an
// otherwise successful API response. It is absent-data, not a transport
// problem.
type NotFoundError struct {
	Field string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("data not found in response: %s", e.Field)
}

// DownloadError is returned when writing a downloaded PDF to disk fails.
type DownloadError struct {
	Path string
	Err  error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("failed to download PDF to %s: %v", e.Path, e.Err)
}

func (e *DownloadError) Unwrap() error { return e.Err }
