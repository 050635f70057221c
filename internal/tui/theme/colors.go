package theme

import "charm.land/lipgloss/v2"

var (
	ColorBlack = lipgloss.Color("#000000")
	ColorWhite = lipgloss.Color("#FFFFFF")
	ColorDim   = lipgloss.Color("#666666")
)

var (
	ColorAccent  = lipgloss.Color("#00D7AF") // CTA, highlights, selected tab
	ColorHealthy = lipgloss.Color("#2BE06A") // health score 80-100
	ColorDrift   = lipgloss.Color("#FFD23F") // health score 50-79
	ColorAtRisk  = lipgloss.Color("#FF3B5C") // health score 0-49, critical rows
	ColorWarn    = lipgloss.Color("#FFA62B") // warning rows
	ColorNeutral = lipgloss.Color("#6FB7E8") // values without valuation
)

// per-PESTEL-category accents for the indicator table and funnel bars
var (
	ColorPolitical     = lipgloss.Color("#C792EA")
	ColorEconomic      = lipgloss.Color("#82AAFF")
	ColorSocial        = lipgloss.Color("#F78C6C")
	ColorTechnological = lipgloss.Color("#89DDFF")
	ColorEnvironmental = lipgloss.Color("#C3E88D")
	ColorLegal         = lipgloss.Color("#FFCB6B")
)

var (
	ColorBgDark  = lipgloss.Color("#0E1419") // darker end of gradient
	ColorBgLight = lipgloss.Color("#27333B") // lighter end of gradient
)
