package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	go_json "github.com/goccy/go-json"
)

type snapshotRepo struct {
	db *sql.DB
}

func (r *snapshotRepo) Put(ctx context.Context, kind string, payload any) error {
	data, err := go_json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s snapshot: %w", kind, err)
	}

	const query = `
INSERT INTO snapshots (kind, payload, fetched_at) VALUES (?, ?, ?)
ON CONFLICT (kind) DO UPDATE SET
    payload = excluded.payload,
    fetched_at = excluded.fetched_at`

	if _, err := r.db.ExecContext(ctx, query, kind, data, time.Now()); err != nil {
		return fmt.Errorf("failed to store %s snapshot: %w", kind, err)
	}
	return nil
}

func (r *snapshotRepo) Get(ctx context.Context, kind string, dest any) (time.Time, error) {
	const query = `SELECT payload, fetched_at FROM snapshots WHERE kind = ?`

	var (
		data      []byte
		fetchedAt time.Time
	)
	err := r.db.QueryRowContext(ctx, query, kind).Scan(&data, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, ErrNotCached
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to load %s snapshot: %w", kind, err)
	}

	if err := go_json.Unmarshal(data, dest); err != nil {
		return time.Time{}, fmt.Errorf("failed to decode %s snapshot: %w", kind, err)
	}
	return fetchedAt, nil
}
