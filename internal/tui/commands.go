package tui

import (
	"context"
	"log/slog"

	tea "charm.land/bubbletea/v2"

	"github.com/hansajasandeepabadalge/naiterm/internal/client/nai"
	"github.com/hansajasandeepabadalge/naiterm/internal/poll"
	"github.com/hansajasandeepabadalge/naiterm/internal/token"
	"github.com/hansajasandeepabadalge/naiterm/internal/xslog"
)

func checkAuthCmd(tokens token.Store) tea.Cmd {
	return func() tea.Msg {
		loggedIn, err := tokens.Authenticated(context.Background())
		return AuthStatusMsg{LoggedIn: loggedIn, Err: err}
	}
}

// watch commands block on a poller's update channel and re-arm
// themselves from Update after every delivery. A nil msg ends the loop
// once the poller shuts the channel.
func watchDashboardCmd(p *poll.Poller[*nai.DashboardSummary]) tea.Cmd {
	if p == nil {
		return nil
	}
	return func() tea.Msg {
		snapshot, ok := <-p.Updates()
		if !ok {
			return nil
		}
		return DashboardMsg{Snapshot: snapshot}
	}
}

func watchOperationsCmd(p *poll.Poller[*nai.OperationsData]) tea.Cmd {
	if p == nil {
		return nil
	}
	return func() tea.Msg {
		snapshot, ok := <-p.Updates()
		if !ok {
			return nil
		}
		return OperationsMsg{Snapshot: snapshot}
	}
}

func watchInsightsCmd(p *poll.Poller[*nai.InsightList]) tea.Cmd {
	if p == nil {
		return nil
	}
	return func() tea.Msg {
		snapshot, ok := <-p.Updates()
		if !ok {
			return nil
		}
		return InsightsMsg{Snapshot: snapshot}
	}
}

// refreshTokenCmd proactively renews the access token when it is close
// to expiry, so polls rarely eat a 401 round trip. Failures are
// tolerated; the client's retry path still covers reactive refresh.
func refreshTokenCmd(client *nai.Client, logger *slog.Logger) tea.Cmd {
	if client == nil {
		return nil
	}
	return func() tea.Msg {
		if _, err := client.RefreshIfNeeded(context.Background(), tokenRefreshThreshold); err != nil {
			logger.Warn("proactive token refresh failed", xslog.Error(err))
		}
		return nil
	}
}
