package repository_test

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/hansajasandeepabadalge/naiterm/internal/client/nai"
	"github.com/hansajasandeepabadalge/naiterm/internal/db"
	"github.com/hansajasandeepabadalge/naiterm/internal/repository"
)

func newRepo(t *testing.T) *repository.Repository {
	t.Helper()

	sqlDB, err := db.Open(filepath.Join(t.TempDir(), "naiterm.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	return repository.New(sqlDB)
}

func TestIndicatorUpsertAndQuery(t *testing.T) {
	t.Parallel()

	repo := newRepo(t)
	ctx := t.Context()

	warning := 3.5
	indicators := []nai.Indicator{
		{
			ID:            "inflation",
			Name:          "Inflation Rate",
			Category:      nai.CategoryEconomic,
			CurrentValue:  4.2,
			BaselineValue: 2.0,
			ImpactScore:   0.6,
			Trend:         nai.TrendUp,
			Thresholds:    &nai.Thresholds{Warning: &warning},
		},
		{
			ID:            "power-outages",
			Name:          "Power Outages",
			Category:      nai.CategoryTechnological,
			CurrentValue:  12,
			BaselineValue: 3,
			ImpactScore:   0.9,
			Trend:         nai.TrendUp,
		},
	}

	if err := repo.Indicators.UpsertBatch(ctx, indicators); err != nil {
		t.Fatalf("UpsertBatch() error = %v", err)
	}

	got, err := repo.Indicators.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("GetAll() len = %d, want 2", len(got))
	}

	economic, err := repo.Indicators.GetByCategory(ctx, nai.CategoryEconomic)
	if err != nil {
		t.Fatalf("GetByCategory() error = %v", err)
	}
	if diff := cmp.Diff(indicators[:1], economic); diff != "" {
		t.Errorf("GetByCategory() mismatch (-want +got):\n%s", diff)
	}

	// upsert replaces on conflict
	indicators[0].CurrentValue = 5.1
	if err := repo.Indicators.UpsertBatch(ctx, indicators[:1]); err != nil {
		t.Fatalf("UpsertBatch() error = %v", err)
	}
	economic, err = repo.Indicators.GetByCategory(ctx, nai.CategoryEconomic)
	if err != nil {
		t.Fatalf("GetByCategory() error = %v", err)
	}
	if economic[0].CurrentValue != 5.1 {
		t.Errorf("CurrentValue after upsert = %v, want 5.1", economic[0].CurrentValue)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	t.Parallel()

	repo := newRepo(t)
	ctx := t.Context()

	var missing nai.OperationsData
	if _, err := repo.Snapshots.Get(ctx, repository.SnapshotOperations, &missing); !errors.Is(err, repository.ErrNotCached) {
		t.Fatalf("Get() on empty cache = %v, want ErrNotCached", err)
	}

	want := nai.OperationsData{
		Indicators:    []nai.Indicator{{ID: "gdp", Name: "GDP", Category: nai.CategoryEconomic, Trend: nai.TrendStable}},
		Total:         1,
		CriticalCount: 0,
		WarningCount:  1,
	}
	if err := repo.Snapshots.Put(ctx, repository.SnapshotOperations, want); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	var got nai.OperationsData
	fetchedAt, err := repo.Snapshots.Get(ctx, repository.SnapshotOperations, &got)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Get() mismatch (-want +got):\n%s", diff)
	}
	if time.Since(fetchedAt) > time.Minute {
		t.Errorf("fetchedAt = %v, want recent", fetchedAt)
	}
}

func TestSyncState(t *testing.T) {
	t.Parallel()

	repo := newRepo(t)
	ctx := t.Context()

	state, err := repo.SyncState.Get(ctx)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if state.LastPoll != nil {
		t.Errorf("LastPoll = %v, want nil before first poll", state.LastPoll)
	}

	now := time.Now().Truncate(time.Second)
	if err := repo.SyncState.UpdateLastPoll(ctx, now); err != nil {
		t.Fatalf("UpdateLastPoll() error = %v", err)
	}

	state, err = repo.SyncState.Get(ctx)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if state.LastPoll == nil || !state.LastPoll.Equal(now) {
		t.Errorf("LastPoll = %v, want %v", state.LastPoll, now)
	}
}
