package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/hansajasandeepabadalge/naiterm/internal/client/nai"
)

type Theme struct {
	background color.Color
	foreground color.Color
	base       lipgloss.Style
}

func New() Theme {
	var t Theme

	t.background = ColorBgDark
	t.foreground = ColorWhite
	t.base = lipgloss.NewStyle().Foreground(t.foreground)

	return t
}

func (t Theme) Base() lipgloss.Style {
	return t.base
}

func (t Theme) TextAccent() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ColorAccent)
}

func (t Theme) TextDim() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ColorDim)
}

func (t Theme) Background() color.Color {
	return t.background
}

func (t Theme) Foreground() color.Color {
	return t.foreground
}

// HealthColor maps a 0-100 health score to its band color.
func HealthColor(score float64) color.Color {
	switch {
	case score >= 80:
		return ColorHealthy
	case score >= 50:
		return ColorDrift
	default:
		return ColorAtRisk
	}
}

func CategoryColor(c nai.PESTELCategory) color.Color {
	switch c {
	case nai.CategoryPolitical:
		return ColorPolitical
	case nai.CategoryEconomic:
		return ColorEconomic
	case nai.CategorySocial:
		return ColorSocial
	case nai.CategoryTechnological:
		return ColorTechnological
	case nai.CategoryEnvironmental:
		return ColorEnvironmental
	case nai.CategoryLegal:
		return ColorLegal
	default:
		return ColorNeutral
	}
}

func SeverityColor(s nai.Severity) color.Color {
	switch s {
	case nai.SeverityCritical:
		return ColorAtRisk
	case nai.SeverityWarning:
		return ColorWarn
	default:
		return ColorNeutral
	}
}

func TrendGlyph(t nai.Trend) string {
	switch t {
	case nai.TrendUp:
		return "▲"
	case nai.TrendDown:
		return "▼"
	default:
		return "■"
	}
}
