package token_test

import (
	"errors"
	"path/filepath"
	"testing"

	"golang.org/x/oauth2"

	"github.com/hansajasandeepabadalge/naiterm/internal/db"
	"github.com/hansajasandeepabadalge/naiterm/internal/token"
)

func TestSQLiteStoreRoundTrip(t *testing.T) {
	t.Parallel()

	sqlDB, err := db.Open(filepath.Join(t.TempDir(), "naiterm.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	store := token.NewSQLiteStore(sqlDB)
	ctx := t.Context()

	if _, err := store.Token(ctx); !errors.Is(err, token.ErrNoToken) {
		t.Fatalf("Token() on empty store = %v, want ErrNoToken", err)
	}

	pair := &oauth2.Token{
		AccessToken:  "access-abc",
		RefreshToken: "refresh-def",
		TokenType:    "bearer",
	}
	if err := store.SetToken(ctx, pair); err != nil {
		t.Fatalf("SetToken() error = %v", err)
	}

	got, err := store.Token(ctx)
	if err != nil {
		t.Fatalf("Token() error = %v", err)
	}
	if got.AccessToken != pair.AccessToken || got.RefreshToken != pair.RefreshToken || got.TokenType != pair.TokenType {
		t.Errorf("Token() = %+v, want %+v", got, pair)
	}

	// replacement is a single upsert
	replacement := &oauth2.Token{AccessToken: "access-2", RefreshToken: "refresh-2", TokenType: "bearer"}
	if err := store.SetToken(ctx, replacement); err != nil {
		t.Fatalf("SetToken() error = %v", err)
	}
	access, err := store.AccessToken(ctx)
	if err != nil {
		t.Fatalf("AccessToken() error = %v", err)
	}
	if access != "access-2" {
		t.Errorf("AccessToken() = %q, want %q", access, "access-2")
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	authed, err := store.Authenticated(ctx)
	if err != nil {
		t.Fatalf("Authenticated() error = %v", err)
	}
	if authed {
		t.Error("Authenticated() = true after Clear, want false")
	}
}
