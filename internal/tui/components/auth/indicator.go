package auth

import (
	"charm.land/lipgloss/v2"

	"github.com/hansajasandeepabadalge/naiterm/internal/tui/theme"
)

const statusDot = "●"

type Indicator struct {
	Checked  bool
	LoggedIn bool
}

func (a Indicator) Render() string {
	if !a.Checked {
		return lipgloss.NewStyle().
			Foreground(theme.ColorBgLight).
			Render(statusDot + " checking...")
	}

	if a.LoggedIn {
		return lipgloss.NewStyle().
			Foreground(theme.ColorHealthy).
			Render(statusDot + " signed in")
	}

	return lipgloss.NewStyle().
		Foreground(theme.ColorAtRisk).
		Render(statusDot + " signed out")
}
