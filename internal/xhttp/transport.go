package xhttp

import (
	"fmt"
	"net/http"

	"github.com/hansajasandeepabadalge/naiterm/internal/version"
)

type naitermTransport struct {
	base http.RoundTripper
}

var _ http.RoundTripper = (*naitermTransport)(nil)

func (t *naitermTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", "naiterm/"+version.Get())
	req.Header.Set(version.Header, version.Get())
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, fmt.Errorf("failed to perform round trip: %w", err)
	}
	return resp, nil
}

// NewTransport returns an http.RoundTripper with standard naiterm headers.
func NewTransport() http.RoundTripper {
	return &naitermTransport{base: http.DefaultTransport}
}
