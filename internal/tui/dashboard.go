package tui

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/hansajasandeepabadalge/naiterm/internal/client/nai"
	"github.com/hansajasandeepabadalge/naiterm/internal/metrics"
	"github.com/hansajasandeepabadalge/naiterm/internal/poll"
	"github.com/hansajasandeepabadalge/naiterm/internal/tui/components/auth"
	"github.com/hansajasandeepabadalge/naiterm/internal/tui/components/gauge"
	"github.com/hansajasandeepabadalge/naiterm/internal/tui/theme"
)

type DashboardState struct {
	AuthIndicator auth.Indicator

	Dashboard  poll.Snapshot[*nai.DashboardSummary]
	Operations poll.Snapshot[*nai.OperationsData]
	Insights   poll.Snapshot[*nai.InsightList]
}

func (m *Model) AuthIndicatorView() string {
	return m.state.dashboard.AuthIndicator.Render()
}

func (m *Model) OverviewView() string {
	ops := m.state.dashboard.Operations

	var score *float64
	if ops.Ready && ops.Data != nil {
		s := float64(metrics.HealthScore(ops.Data.Indicators))
		score = &s
	}

	dialColor := theme.ColorNeutral
	if score != nil {
		dialColor = theme.HealthColor(*score)
	}

	healthGauge := gauge.New(score, "HEALTH", dialColor)

	panel := m.countsPanel()

	row := lipgloss.JoinHorizontal(
		lipgloss.Center,
		healthGauge.Render(),
		"    ",
		panel,
	)

	return lipgloss.JoinVertical(lipgloss.Center, row, m.staleNotice(ops.Err))
}

func (m *Model) countsPanel() string {
	var (
		ops  = m.state.dashboard.Operations
		dash = m.state.dashboard.Dashboard
		rows []string
	)

	line := func(label string, value string, style lipgloss.Style) string {
		labelStyle := lipgloss.NewStyle().Foreground(theme.ColorDim).Width(16)
		return labelStyle.Render(label) + style.Render(value)
	}

	base := m.theme.Base()
	if ops.Ready && ops.Data != nil {
		rows = append(rows,
			line("indicators", fmt.Sprintf("%d", ops.Data.Total), base),
			line("critical", fmt.Sprintf("%d", ops.Data.CriticalCount), lipgloss.NewStyle().Foreground(theme.ColorAtRisk)),
			line("warning", fmt.Sprintf("%d", ops.Data.WarningCount), lipgloss.NewStyle().Foreground(theme.ColorWarn)),
		)
	} else {
		rows = append(rows, m.theme.TextDim().Render("loading operations data..."))
	}

	if dash.Ready && dash.Data != nil {
		rows = append(rows,
			line("active sources", fmt.Sprintf("%d", dash.Data.ActiveSources), base),
		)
		if dash.Data.LastScrapeAt != nil {
			rows = append(rows,
				line("last scrape", dash.Data.LastScrapeAt.Local().Format("15:04:05"), base),
			)
		}
	}

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(strings.Join(rows, "\n"))
}

// maxIndicatorRows bounds the indicators tab so it stays inside one
// viewport on common terminal sizes
const maxIndicatorRows = 24

func (m *Model) IndicatorsView() string {
	dash := m.state.dashboard.Dashboard
	if !dash.Ready || dash.Data == nil {
		return m.theme.TextDim().Render("loading indicators...")
	}

	byCategory := make(map[nai.PESTELCategory][]nai.Indicator, len(nai.Categories()))
	for _, ind := range dash.Data.Indicators {
		byCategory[ind.Category] = append(byCategory[ind.Category], ind)
	}

	var (
		rows  []string
		total int
	)
	for _, category := range nai.Categories() {
		indicators := byCategory[category]
		if len(indicators) == 0 {
			continue
		}

		header := lipgloss.NewStyle().
			Foreground(theme.CategoryColor(category)).
			Bold(true).
			Render(strings.ToUpper(string(category)))
		rows = append(rows, header)

		for _, ind := range indicators {
			if total >= maxIndicatorRows {
				break
			}
			rows = append(rows, m.indicatorRow(ind))
			total++
		}
		rows = append(rows, "")
	}

	if len(rows) == 0 {
		return m.theme.TextDim().Render("no indicators")
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		strings.Join(rows, "\n"),
		m.staleNotice(dash.Err),
	)
}

func (m *Model) indicatorRow(ind nai.Indicator) string {
	glyph := lipgloss.NewStyle().
		Foreground(trendColor(ind.Trend)).
		Render(theme.TrendGlyph(ind.Trend))

	name := lipgloss.NewStyle().Width(28).Render(ind.Name)

	value := lipgloss.NewStyle().
		Width(12).
		Align(lipgloss.Right).
		Render(fmt.Sprintf("%.2f", ind.CurrentValue))

	change := lipgloss.NewStyle().
		Foreground(theme.ColorDim).
		Render(fmt.Sprintf(" %+.1f%%", ind.ChangePercent))

	return "  " + glyph + " " + name + value + change
}

func trendColor(t nai.Trend) color.Color {
	switch t {
	case nai.TrendUp:
		return theme.ColorHealthy
	case nai.TrendDown:
		return theme.ColorAtRisk
	default:
		return theme.ColorDim
	}
}

const funnelBarWidth = 40

func (m *Model) PipelineView() string {
	dash := m.state.dashboard.Dashboard
	if !dash.Ready || dash.Data == nil {
		return m.theme.TextDim().Render("loading pipeline...")
	}

	stages := dash.Data.PipelineStages
	if len(stages) == 0 {
		return m.theme.TextDim().Render("no pipeline data")
	}

	peak := 0
	for _, s := range stages {
		if s.Count > peak {
			peak = s.Count
		}
	}

	dropoffs := metrics.StageDropoffs(stages)

	var rows []string
	for i, s := range stages {
		rows = append(rows, m.funnelBar(s, peak))
		if i < len(dropoffs) {
			d := dropoffs[i]
			rows = append(rows, lipgloss.NewStyle().
				Foreground(theme.ColorDim).
				Render(fmt.Sprintf("    ↓ -%d (%.1f%%)", d.Dropoff, d.DropoffPercent)))
		}
	}

	rate := metrics.OverallSuccessRate(stages)
	rows = append(rows, "",
		lipgloss.NewStyle().Foreground(theme.ColorDim).Render("overall success  ")+
			lipgloss.NewStyle().Foreground(theme.HealthColor(rate)).Bold(true).Render(fmt.Sprintf("%.1f%%", rate)),
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		strings.Join(rows, "\n"),
		m.staleNotice(dash.Err),
	)
}

func (m *Model) funnelBar(stage nai.PipelineStage, peak int) string {
	width := 0
	if peak > 0 {
		width = stage.Count * funnelBarWidth / peak
	}
	if width == 0 && stage.Count > 0 {
		width = 1
	}

	bar := lipgloss.NewStyle().
		Foreground(theme.ColorAccent).
		Render(strings.Repeat("█", width))

	name := lipgloss.NewStyle().
		Foreground(theme.ColorDim).
		Width(14).
		Render(stage.Name)

	return name + bar + fmt.Sprintf(" %d", stage.Count)
}

const maxInsightRows = 10

func (m *Model) InsightsView() string {
	insights := m.state.dashboard.Insights
	if !insights.Ready || insights.Data == nil {
		return m.theme.TextDim().Render("loading insights...")
	}

	if len(insights.Data.Insights) == 0 {
		return m.theme.TextDim().Render("no insights yet")
	}

	var rows []string
	for i, insight := range insights.Data.Insights {
		if i >= maxInsightRows {
			break
		}

		dot := lipgloss.NewStyle().
			Foreground(theme.SeverityColor(insight.Severity)).
			Render("●")

		title := lipgloss.NewStyle().Bold(true).Render(insight.Title)
		category := lipgloss.NewStyle().
			Foreground(theme.CategoryColor(insight.Category)).
			Render(" [" + string(insight.Category) + "]")

		summary := lipgloss.NewStyle().
			Foreground(theme.ColorDim).
			Width(64).
			Render("  " + insight.Summary)

		rows = append(rows, dot+" "+title+category, summary, "")
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		strings.Join(rows, "\n"),
		m.staleNotice(insights.Err),
	)
}

// staleNotice flags that the last poll failed and the view is showing
// the previous snapshot
func (m *Model) staleNotice(err error) string {
	if err == nil {
		return ""
	}
	return lipgloss.NewStyle().
		Foreground(theme.ColorWarn).
		Render("⚠ last refresh failed · showing cached data")
}
