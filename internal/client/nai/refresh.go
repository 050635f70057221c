package nai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	go_json "github.com/goccy/go-json"

	"github.com/hansajasandeepabadalge/naiterm/internal/token"
)

const refreshRoute = "/auth/refresh"

var ErrNoRefreshToken = errors.New("no refresh token available")

// refreshToken runs the refresh sub-protocol at most once per
// originating request. Concurrent 401 handlers share a single in-flight
// refresh instead of each issuing their own.
func (c *Client) refreshToken(ctx context.Context) error {
	_, err, _ := c.refreshGroup.Do("refresh", func() (any, error) {
		return nil, c.doRefresh(ctx)
	})
	return err
}

func (c *Client) doRefresh(ctx context.Context) error {
	refreshToken, err := c.tokens.RefreshToken(ctx)
	if err != nil {
		return err
	}
	if refreshToken == "" {
		return ErrNoRefreshToken
	}

	// the backend expects the refresh token as a query parameter, not a
	// body field
	u := c.baseURL + refreshRoute + "?refresh_token=" + url.QueryEscape(refreshToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create refresh request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send refresh request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	// stored tokens are left untouched on any failure
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("refresh failed with status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read refresh response: %w", err)
	}
	if err := c.schemas.validate("token_pair", raw); err != nil {
		return &DecodeError{Resource: "token_pair", Err: err}
	}

	var pair TokenPair
	if err := go_json.Unmarshal(raw, &pair); err != nil {
		return &DecodeError{Resource: "token_pair", Err: err}
	}

	if err := c.tokens.SetToken(ctx, pair.Token()); err != nil {
		return fmt.Errorf("failed to save refreshed token: %w", err)
	}
	return nil
}

// ExpiresWithin reports whether the stored access token expires within
// d. Tokens without a known expiry report false; their expiry is
// discovered reactively via a 401.
func (c *Client) ExpiresWithin(ctx context.Context, d time.Duration) (bool, error) {
	tok, err := c.tokens.Token(ctx)
	if err != nil {
		return false, err
	}
	if tok.Expiry.IsZero() {
		return false, nil
	}
	return time.Until(tok.Expiry) <= d, nil
}

// RefreshIfNeeded proactively refreshes the credential pair when it
// expires within threshold. It reports whether a refresh happened.
// Unlike the 401 path, a failure here leaves stored tokens in place.
func (c *Client) RefreshIfNeeded(ctx context.Context, threshold time.Duration) (bool, error) {
	expiring, err := c.ExpiresWithin(ctx, threshold)
	if err != nil {
		if errors.Is(err, token.ErrNoToken) {
			return false, nil
		}
		return false, err
	}
	if !expiring {
		return false, nil
	}

	if err := c.refreshToken(ctx); err != nil {
		return false, err
	}
	return true, nil
}
