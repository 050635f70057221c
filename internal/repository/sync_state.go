package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

type syncStateRepo struct {
	db *sql.DB
}

func (r *syncStateRepo) Get(ctx context.Context) (*SyncState, error) {
	const query = `SELECT last_poll, last_full_sync FROM sync_state WHERE id = 1`

	var state SyncState
	err := r.db.QueryRowContext(ctx, query).Scan(&state.LastPoll, &state.LastFullSync)
	if errors.Is(err, sql.ErrNoRows) {
		return &SyncState{}, nil
	}
	if err != nil {
		return nil, err
	}
	return &state, nil
}

func (r *syncStateRepo) UpdateLastPoll(ctx context.Context, pollTime time.Time) error {
	const query = `
INSERT INTO sync_state (id, last_poll) VALUES (1, ?)
ON CONFLICT (id) DO UPDATE SET last_poll = excluded.last_poll`

	_, err := r.db.ExecContext(ctx, query, pollTime)
	return err
}
