package tui

import (
	"time"

	"github.com/hansajasandeepabadalge/naiterm/internal/client/nai"
	"github.com/hansajasandeepabadalge/naiterm/internal/poll"
)

const splashDuration = 1200 * time.Millisecond

// tokenTickInterval is how often the model checks whether the access
// token is about to expire; tokenRefreshThreshold is how close to
// expiry a token may get before a proactive refresh fires.
const (
	tokenTickInterval     = time.Minute
	tokenRefreshThreshold = 2 * time.Minute
)

type SplashTickMsg struct{}

type TokenTickMsg struct{}

type AuthStatusMsg struct {
	LoggedIn bool
	Err      error
}

// one message per poller; each carries the full snapshot so the views
// can show stale data alongside the error that kept it stale
type DashboardMsg struct {
	Snapshot poll.Snapshot[*nai.DashboardSummary]
}

type OperationsMsg struct {
	Snapshot poll.Snapshot[*nai.OperationsData]
}

type InsightsMsg struct {
	Snapshot poll.Snapshot[*nai.InsightList]
}
