package tui

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/hansajasandeepabadalge/naiterm/internal/tui/components/footer"
	"github.com/hansajasandeepabadalge/naiterm/internal/tui/theme"
)

var _ tea.Model = (*Model)(nil)

type page uint

const (
	splashPage page = iota
	dashboardPage
)

type tab uint

const (
	tabOverview tab = iota
	tabIndicators
	tabPipeline
	tabInsights
)

var tabTitles = [...]string{"overview", "indicators", "pipeline", "insights"}

type state struct {
	splash    SplashState
	dashboard DashboardState
}

type Model struct {
	ready          bool
	page           page
	tab            tab
	viewportWidth  int
	viewportHeight int
	theme          theme.Theme
	state          state
	deps           Deps
}

func New(deps Deps) Model {
	return Model{
		page:  splashPage,
		tab:   tabOverview,
		theme: theme.New(),
		deps:  deps,
		state: state{
			splash:    SplashState{},
			dashboard: DashboardState{},
		},
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		tea.Tick(splashDuration, func(t time.Time) tea.Msg {
			return SplashTickMsg{}
		}),
		tea.Tick(tokenTickInterval, func(t time.Time) tea.Msg {
			return TokenTickMsg{}
		}),
		checkAuthCmd(m.deps.Tokens),
		watchDashboardCmd(m.deps.DashboardPoller),
		watchOperationsCmd(m.deps.OperationsPoller),
		watchInsightsCmd(m.deps.InsightsPoller),
	)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewportWidth = msg.Width
		m.viewportHeight = msg.Height
		m.ready = true

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "tab":
			m.tab = (m.tab + 1) % tab(len(tabTitles))
		case "shift+tab":
			m.tab = (m.tab + tab(len(tabTitles)) - 1) % tab(len(tabTitles))
		case "1":
			m.tab = tabOverview
		case "2":
			m.tab = tabIndicators
		case "3":
			m.tab = tabPipeline
		case "4":
			m.tab = tabInsights
		case "r":
			m.refetchAll()
		}

	// splash timer expired - transition to dashboard
	case SplashTickMsg:
		m.page = dashboardPage

	// periodic proactive refresh keeps the access token fresh between polls
	case TokenTickMsg:
		return m, tea.Batch(
			refreshTokenCmd(m.deps.Client, m.deps.Logger),
			tea.Tick(tokenTickInterval, func(t time.Time) tea.Msg {
				return TokenTickMsg{}
			}),
		)

	case AuthStatusMsg:
		m.state.dashboard.AuthIndicator.Checked = true
		if msg.Err == nil {
			m.state.dashboard.AuthIndicator.LoggedIn = msg.LoggedIn
		}

	case DashboardMsg:
		m.state.dashboard.Dashboard = msg.Snapshot
		return m, watchDashboardCmd(m.deps.DashboardPoller)

	case OperationsMsg:
		m.state.dashboard.Operations = msg.Snapshot
		return m, watchOperationsCmd(m.deps.OperationsPoller)

	case InsightsMsg:
		m.state.dashboard.Insights = msg.Snapshot
		return m, watchInsightsCmd(m.deps.InsightsPoller)
	}

	return m, nil
}

func (m *Model) refetchAll() {
	if m.deps.DashboardPoller != nil {
		m.deps.DashboardPoller.Refetch(m.deps.Ctx)
	}
	if m.deps.OperationsPoller != nil {
		m.deps.OperationsPoller.Refetch(m.deps.Ctx)
	}
	if m.deps.InsightsPoller != nil {
		m.deps.InsightsPoller.Refetch(m.deps.Ctx)
	}
}

func (m *Model) View() tea.View {
	view := tea.NewView("")
	view.AltScreen = true

	// splash uses pure black BG, everything else uses default dark
	if m.page == splashPage {
		view.BackgroundColor = theme.ColorBlack
	} else {
		view.BackgroundColor = m.theme.Background()
	}

	if !m.ready {
		return view
	}

	var content string
	switch m.page {
	case splashPage:
		content = lipgloss.Place(
			m.viewportWidth,
			m.viewportHeight,
			lipgloss.Center,
			lipgloss.Center,
			m.SplashView(),
		)
	case dashboardPage:
		header := m.headerView()
		foot := footer.New(
			"tab switch · r refresh · q quit",
			m.AuthIndicatorView(),
			m.viewportWidth,
		).Render()

		bodyHeight := max(m.viewportHeight-lipgloss.Height(header)-lipgloss.Height(foot), 0)
		body := lipgloss.Place(
			m.viewportWidth,
			bodyHeight,
			lipgloss.Center,
			lipgloss.Center,
			m.bodyView(),
		)

		content = lipgloss.JoinVertical(lipgloss.Left, header, body, foot)
	}

	view.SetContent(content)
	return view
}

func (m *Model) headerView() string {
	title := lipgloss.NewStyle().
		Foreground(theme.ColorAccent).
		Bold(true).
		Render("NATIONAL ACTIVITY INDICATOR")

	tabs := make([]string, len(tabTitles))
	for i, name := range tabTitles {
		style := lipgloss.NewStyle().Foreground(theme.ColorDim).Padding(0, 1)
		if tab(i) == m.tab {
			style = style.Foreground(theme.ColorAccent).Bold(true).Underline(true)
		}
		tabs[i] = style.Render(name)
	}

	bar := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	return lipgloss.NewStyle().
		Padding(1, 2, 0, 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, title, bar))
}

func (m *Model) bodyView() string {
	switch m.tab {
	case tabIndicators:
		return m.IndicatorsView()
	case tabPipeline:
		return m.PipelineView()
	case tabInsights:
		return m.InsightsView()
	default:
		return m.OverviewView()
	}
}
