package token

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"golang.org/x/oauth2"
)

// SQLiteStore keeps the credential pair in a single-row table of the
// local naiterm database, so a login survives restarts.
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Token(ctx context.Context) (*oauth2.Token, error) {
	const query = `SELECT access_token, refresh_token, token_type, expiry FROM tokens WHERE id = 1`

	var (
		accessToken  string
		refreshToken sql.NullString
		tokenType    string
		expiry       sql.NullTime
	)
	err := s.db.QueryRowContext(ctx, query).Scan(&accessToken, &refreshToken, &tokenType, &expiry)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoToken
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load token: %w", err)
	}

	token := &oauth2.Token{
		AccessToken: accessToken,
		TokenType:   tokenType,
	}
	if refreshToken.Valid {
		token.RefreshToken = refreshToken.String
	}
	if expiry.Valid {
		token.Expiry = expiry.Time
	}
	return token, nil
}

func (s *SQLiteStore) AccessToken(ctx context.Context) (string, error) {
	token, err := s.Token(ctx)
	if errors.Is(err, ErrNoToken) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return token.AccessToken, nil
}

func (s *SQLiteStore) RefreshToken(ctx context.Context) (string, error) {
	token, err := s.Token(ctx)
	if errors.Is(err, ErrNoToken) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return token.RefreshToken, nil
}

func (s *SQLiteStore) SetToken(ctx context.Context, token *oauth2.Token) error {
	const query = `
INSERT INTO tokens (id, access_token, refresh_token, token_type, expiry)
VALUES (1, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
    access_token = excluded.access_token,
    refresh_token = excluded.refresh_token,
    token_type = excluded.token_type,
    expiry = excluded.expiry`

	var refreshToken *string
	if token.RefreshToken != "" {
		refreshToken = &token.RefreshToken
	}

	var expiry *time.Time
	if !token.Expiry.IsZero() {
		expiry = &token.Expiry
	}

	if _, err := s.db.ExecContext(ctx, query, token.AccessToken, refreshToken, token.TokenType, expiry); err != nil {
		return fmt.Errorf("failed to upsert token: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM tokens WHERE id = 1`); err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Authenticated(ctx context.Context) (bool, error) {
	accessToken, err := s.AccessToken(ctx)
	if err != nil {
		return false, err
	}
	return accessToken != "", nil
}
