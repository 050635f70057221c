// Package xsync bridges the API client and the local cache: fresh data
// when the backend answers, the last cached copy when it does not.
package xsync

import (
	"context"
	"log/slog"
	"time"

	"github.com/hansajasandeepabadalge/naiterm/internal/client/nai"
	"github.com/hansajasandeepabadalge/naiterm/internal/repository"
	"github.com/hansajasandeepabadalge/naiterm/internal/xslog"
)

// DataFetcher provides cache-backed access to dashboard data. Every
// method tries the API first; on failure it falls back to the cached
// copy so consumers keep showing stale data instead of nothing.
type DataFetcher interface {
	Dashboard(ctx context.Context) (*nai.DashboardSummary, error)
	Operations(ctx context.Context) (*nai.OperationsData, error)
	Insights(ctx context.Context) (*nai.InsightList, error)
	Indicators(ctx context.Context, category nai.PESTELCategory) ([]nai.Indicator, error)
}

type Fetcher struct {
	client *nai.Client
	repo   *repository.Repository
	logger *slog.Logger
}

var _ DataFetcher = (*Fetcher)(nil)

func NewFetcher(client *nai.Client, repo *repository.Repository, logger *slog.Logger) *Fetcher {
	return &Fetcher{
		client: client,
		repo:   repo,
		logger: logger,
	}
}

func (f *Fetcher) Dashboard(ctx context.Context) (*nai.DashboardSummary, error) {
	summary, err := f.client.Dashboard.Admin(ctx)
	if err != nil {
		var cached nai.DashboardSummary
		if _, cacheErr := f.repo.Snapshots.Get(ctx, repository.SnapshotDashboard, &cached); cacheErr == nil {
			f.logger.WarnContext(ctx, "dashboard fetch failed, serving cached copy", xslog.Error(err))
			return &cached, nil
		}
		return nil, err
	}

	if err := f.repo.Snapshots.Put(ctx, repository.SnapshotDashboard, summary); err != nil {
		f.logger.WarnContext(ctx, "failed to cache dashboard", xslog.Error(err))
	}
	if err := f.repo.Indicators.UpsertBatch(ctx, summary.Indicators); err != nil {
		f.logger.WarnContext(ctx, "failed to cache indicators", xslog.Error(err))
	}
	f.markPolled(ctx)

	return summary, nil
}

func (f *Fetcher) Operations(ctx context.Context) (*nai.OperationsData, error) {
	data, err := f.client.Operations.Data(ctx)
	if err != nil {
		var cached nai.OperationsData
		if _, cacheErr := f.repo.Snapshots.Get(ctx, repository.SnapshotOperations, &cached); cacheErr == nil {
			f.logger.WarnContext(ctx, "operations fetch failed, serving cached copy", xslog.Error(err))
			return &cached, nil
		}
		return nil, err
	}

	if err := f.repo.Snapshots.Put(ctx, repository.SnapshotOperations, data); err != nil {
		f.logger.WarnContext(ctx, "failed to cache operations data", xslog.Error(err))
	}
	if err := f.repo.Indicators.UpsertBatch(ctx, data.Indicators); err != nil {
		f.logger.WarnContext(ctx, "failed to cache indicators", xslog.Error(err))
	}
	f.markPolled(ctx)

	return data, nil
}

func (f *Fetcher) Insights(ctx context.Context) (*nai.InsightList, error) {
	insights, err := f.client.Insights.List(ctx, nil)
	if err != nil {
		var cached nai.InsightList
		if _, cacheErr := f.repo.Snapshots.Get(ctx, repository.SnapshotInsights, &cached); cacheErr == nil {
			f.logger.WarnContext(ctx, "insights fetch failed, serving cached copy", xslog.Error(err))
			return &cached, nil
		}
		return nil, err
	}

	if err := f.repo.Snapshots.Put(ctx, repository.SnapshotInsights, insights); err != nil {
		f.logger.WarnContext(ctx, "failed to cache insights", xslog.Error(err))
	}
	f.markPolled(ctx)

	return insights, nil
}

func (f *Fetcher) Indicators(ctx context.Context, category nai.PESTELCategory) ([]nai.Indicator, error) {
	resp, err := f.client.Indicators.List(ctx, &nai.ListParams{Category: category})
	if err != nil {
		var (
			cached   []nai.Indicator
			cacheErr error
		)
		if category != "" {
			cached, cacheErr = f.repo.Indicators.GetByCategory(ctx, category)
		} else {
			cached, cacheErr = f.repo.Indicators.GetAll(ctx)
		}
		if cacheErr == nil && len(cached) > 0 {
			f.logger.WarnContext(ctx, "indicator fetch failed, serving cached copy",
				xslog.Category(string(category)),
				xslog.Error(err))
			return cached, nil
		}
		return nil, err
	}

	if err := f.repo.Indicators.UpsertBatch(ctx, resp.Indicators); err != nil {
		f.logger.WarnContext(ctx, "failed to cache indicators", xslog.Error(err))
	}
	f.markPolled(ctx)

	f.logger.DebugContext(ctx, "indicators fetched",
		xslog.Category(string(category)),
		xslog.Count(len(resp.Indicators)))

	return resp.Indicators, nil
}

func (f *Fetcher) markPolled(ctx context.Context) {
	if err := f.repo.SyncState.UpdateLastPoll(ctx, time.Now()); err != nil {
		f.logger.WarnContext(ctx, "failed to update last poll time", xslog.Error(err))
	}
}
