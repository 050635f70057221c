package token

import (
	"context"
	"errors"

	"golang.org/x/oauth2"
)

var ErrNoToken = errors.New("no token found - please log in first")

// Store persists the current credential pair across runs. Exactly one
// pair is current at a time: SetToken replaces the previous pair in a
// single write. Stores never touch the network.
type Store interface {
	// Token returns the current credential pair, or ErrNoToken if unset.
	Token(ctx context.Context) (*oauth2.Token, error)

	// AccessToken returns the current access token, or "" if unset.
	AccessToken(ctx context.Context) (string, error)

	// RefreshToken returns the current refresh token, or "" if unset.
	RefreshToken(ctx context.Context) (string, error)

	// SetToken overwrites the current pair.
	SetToken(ctx context.Context, token *oauth2.Token) error

	// Clear removes the current pair. Clearing an empty store is not an
	// error.
	Clear(ctx context.Context) error

	// Authenticated reports whether an access token is present. No
	// expiry check is performed; expiry is discovered reactively via a
	// 401 from the backend.
	Authenticated(ctx context.Context) (bool, error)
}
