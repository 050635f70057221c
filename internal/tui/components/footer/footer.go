package footer

import (
	"charm.land/lipgloss/v2"

	"github.com/hansajasandeepabadalge/naiterm/internal/tui/theme"
	"github.com/hansajasandeepabadalge/naiterm/internal/version"
)

var hintStyle = lipgloss.NewStyle().Foreground(theme.ColorDim)

type Footer struct {
	hints        string
	rightContent string
	width        int
	padding      int
}

func New(hints, rightContent string, width int) Footer {
	return Footer{
		hints:        hints,
		rightContent: rightContent,
		width:        width,
		padding:      2,
	}
}

func (f Footer) Render() string {
	left := hintStyle.Render(version.Get())
	if f.hints != "" {
		left += "  " + hintStyle.Render(f.hints)
	}

	leftWidth := lipgloss.Width(left)
	rightWidth := lipgloss.Width(f.rightContent)
	spacerWidth := max(f.width-leftWidth-rightWidth-(f.padding*2), 0)

	spacer := make([]byte, spacerWidth)
	for i := range spacer {
		spacer[i] = ' '
	}

	return lipgloss.NewStyle().
		PaddingLeft(f.padding).
		PaddingRight(f.padding).
		PaddingBottom(1).
		Render(left + string(spacer) + f.rightContent)
}
