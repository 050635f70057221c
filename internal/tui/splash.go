package tui

import (
	"charm.land/lipgloss/v2"

	"github.com/hansajasandeepabadalge/naiterm/internal/tui/theme"
	"github.com/hansajasandeepabadalge/naiterm/internal/version"
)

type SplashState struct{}

func (m *Model) SplashView() string {
	tagline := lipgloss.NewStyle().
		Foreground(theme.ColorDim).
		Render("national activity indicator · " + version.Get())

	return lipgloss.JoinVertical(
		lipgloss.Center,
		m.LogoView(),
		"",
		tagline,
	)
}
