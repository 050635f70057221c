// Package repository caches the most recent backend responses in the
// local naiterm database so the dashboard can show stale-but-present
// data when the backend is unreachable.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/hansajasandeepabadalge/naiterm/internal/client/nai"
)

var ErrNotCached = errors.New("not cached")

type Repository struct {
	Indicators IndicatorRepository
	Snapshots  SnapshotRepository
	SyncState  SyncStateRepository
}

func New(db *sql.DB) *Repository {
	return &Repository{
		Indicators: &indicatorRepo{db: db},
		Snapshots:  &snapshotRepo{db: db},
		SyncState:  &syncStateRepo{db: db},
	}
}

type IndicatorRepository interface {
	UpsertBatch(ctx context.Context, indicators []nai.Indicator) error
	GetAll(ctx context.Context) ([]nai.Indicator, error)
	GetByCategory(ctx context.Context, category nai.PESTELCategory) ([]nai.Indicator, error)
}

// SnapshotRepository stores whole response payloads as JSON blobs
// keyed by kind, with the time they were fetched.
type SnapshotRepository interface {
	Put(ctx context.Context, kind string, payload any) error
	Get(ctx context.Context, kind string, dest any) (time.Time, error)
}

type SyncState struct {
	LastPoll     *time.Time
	LastFullSync *time.Time
}

type SyncStateRepository interface {
	Get(ctx context.Context) (*SyncState, error)
	UpdateLastPoll(ctx context.Context, pollTime time.Time) error
}

const (
	SnapshotDashboard  = "dashboard"
	SnapshotOperations = "operations"
	SnapshotInsights   = "insights"
)
