package tui

import (
	"context"
	"log/slog"

	"github.com/hansajasandeepabadalge/naiterm/internal/client/nai"
	"github.com/hansajasandeepabadalge/naiterm/internal/poll"
	"github.com/hansajasandeepabadalge/naiterm/internal/repository"
	"github.com/hansajasandeepabadalge/naiterm/internal/token"
	"github.com/hansajasandeepabadalge/naiterm/internal/xsync"
)

type Deps struct {
	Ctx    context.Context
	Cancel context.CancelFunc
	Logger *slog.Logger

	Tokens     token.Store
	Client     *nai.Client
	Repository *repository.Repository
	Fetcher    xsync.DataFetcher

	DashboardPoller  *poll.Poller[*nai.DashboardSummary]
	OperationsPoller *poll.Poller[*nai.OperationsData]
	InsightsPoller   *poll.Poller[*nai.InsightList]
}
