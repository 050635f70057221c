package nai

import (
	"fmt"
	"io"
	"net/http"

	go_json "github.com/goccy/go-json"
)

// APIError is the single error shape every backend failure is
// normalized to. Status is the HTTP status, or 0 when the request never
// produced a response.
type APIError struct {
	Status int
	Detail string
	cause  error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("nai api: %d %s", e.Status, e.Detail)
}

func (e *APIError) Unwrap() error {
	return e.cause
}

// ErrSessionExpired is returned when a 401 could not be recovered by a
// token refresh. The stored credential pair has been cleared by the
// time callers see it.
var ErrSessionExpired = &APIError{
	Status: http.StatusUnauthorized,
	Detail: "session expired - please log in again",
}

func connectivityError(cause error) *APIError {
	return &APIError{
		Status: 0,
		Detail: "unable to reach the backend",
		cause:  cause,
	}
}

func parseAPIError(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{
			Status: resp.StatusCode,
			Detail: http.StatusText(resp.StatusCode),
		}
	}

	var errResp struct {
		Detail string `json:"detail"`
	}

	// a non-JSON error body falls back to the status text
	if err := go_json.Unmarshal(body, &errResp); err != nil || errResp.Detail == "" {
		return &APIError{
			Status: resp.StatusCode,
			Detail: http.StatusText(resp.StatusCode),
		}
	}

	return &APIError{
		Status: resp.StatusCode,
		Detail: errResp.Detail,
	}
}

// DecodeError reports a backend response that failed structural
// validation or JSON decoding. It surfaces before any malformed field
// can reach derived-metric computations.
type DecodeError struct {
	Resource string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("nai api: invalid %s response: %v", e.Resource, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
