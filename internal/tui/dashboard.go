package tui

import (
	"fmt"
	"time"

	"trainguard/internal/analysis"
	"trainguard/internal/service"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

// DashboardModel is the dashboard screen model
type DashboardModel struct {
	queryService *service.QueryService
	units        Units
	data         *service.DashboardData
	loading      bool
	err          error
}

// NewDashboardModel creates a new dashboard model
func NewDashboardModel(qs *service.QueryService, units Units) DashboardModel {
	return DashboardModel{
		queryService: qs,
		units:        units,
		loading:      true,
	}
}

// Init initializes the dashboard
func (m DashboardModel) Init() tea.Cmd {
	return m.loadData
}

func (m DashboardModel) loadData() tea.Msg {
	data, err := m.queryService.GetDashboardData(time.Now().UTC())
	if err != nil {
		return dashboardDataMsg{err: err}
	}
	return dashboardDataMsg{data: data}
}

type dashboardDataMsg struct {
	data *service.DashboardData
	err  error
}

// Update handles messages
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		m.loading = false
		m.err = msg.err
		m.data = msg.data
	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			m.loading = true
			return m, m.loadData
		}
	}
	return m, nil
}

// View renders the dashboard
func (m DashboardModel) View() string {
	if m.loading {
		return "\n  Loading dashboard..."
	}

	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err))
	}

	if m.data == nil {
		return "\n  No data available. Press 'i' to import activities."
	}

	var sections []string

	// Top row: training load, readiness, and fitness side by side
	topRow := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderLoadCard(), "  ",
		m.renderReadinessCard(), "  ",
		m.renderFitnessCard())
	sections = append(sections, topRow)

	if len(m.data.CTLHistory) > 2 {
		sections = append(sections, m.renderLoadChart())
	}
	if len(m.data.WeeklyVolumes) > 0 {
		sections = append(sections, m.renderVolumeChart())
	}

	sections = append(sections, m.renderWeekCard())
	sections = append(sections, m.renderRecentActivities())

	help := statusStyle.Render("Press 'r' to refresh, 'i' to import, '3' to validate a plan")
	sections = append(sections, help)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m DashboardModel) renderLoadCard() string {
	title := cardTitleStyle.Render("Training Load")

	acwr := "-"
	if m.data.Current.ACWR != nil {
		acwr = fmt.Sprintf("%.2f", *m.data.Current.ACWR)
	}

	lines := []string{
		RenderMetric("Fitness (CTL)", fmt.Sprintf("%.0f", m.data.Current.CTL)),
		RenderMetric("Fatigue (ATL)", fmt.Sprintf("%.0f", m.data.Current.ATL)),
		RenderMetric("Form (TSB)", fmt.Sprintf("%.0f", m.data.Current.TSB)),
		RenderMetric("ACWR", acwr),
		"",
		statusStyle.Render(m.data.FormDescription),
	}
	if m.data.ACWRZone != "" {
		lines = append(lines, zoneStyle(m.data.ACWRZone).Render("Zone: "+m.data.ACWRZone))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Width(36).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (m DashboardModel) renderReadinessCard() string {
	title := cardTitleStyle.Render("Readiness")
	r := m.data.Readiness

	sleep := "-"
	if r.Sleep != nil {
		sleep = fmt.Sprintf("%.0f", *r.Sleep)
	}
	wellness := "-"
	if r.Wellness != nil {
		wellness = fmt.Sprintf("%.0f", *r.Wellness)
	}

	lines := []string{
		RenderMetric("Score", fmt.Sprintf("%.0f / 100", r.Score)),
		RenderScoreBar(r.Score, 24),
		"",
		RenderMetric("Band", r.Band),
		RenderMetric("Sleep signal", sleep),
		RenderMetric("Wellness signal", wellness),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Width(34).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (m DashboardModel) renderFitnessCard() string {
	title := cardTitleStyle.Render("Running Fitness")

	var lines []string
	if m.data.VDOT != nil {
		v := m.data.VDOT
		lines = []string{
			RenderMetric("VDOT", fmt.Sprintf("%.1f", v.Value)),
			RenderMetric("Level", analysis.FitnessLabel(v.Value)),
			RenderMetric("Confidence", v.Confidence),
			"",
			statusStyle.Render(v.Source),
		}
	} else {
		reason := "no estimate available"
		if m.data.VDOTErr != nil {
			reason = m.data.VDOTErr.Error()
		}
		lines = []string{statusStyle.Render(reason)}
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Width(34).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (m DashboardModel) renderWeekCard() string {
	title := cardTitleStyle.Render("This Week")

	lines := []string{
		RenderMetric("Sessions", fmt.Sprintf("%d", m.data.WeekActivityCount)),
		RenderMetric("Distance", m.units.FormatDistance(m.data.WeekDistanceKm)),
		RenderMetric("Time", m.units.FormatDuration(m.data.WeekMinutes)),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Width(30).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (m DashboardModel) renderLoadChart() string {
	title := cardTitleStyle.Render("Fitness & Fatigue - Last 90 Days")

	graph := asciigraph.PlotMany(
		[][]float64{m.data.CTLHistory, m.data.ATLHistory},
		asciigraph.Height(8),
		asciigraph.Width(70),
		asciigraph.Precision(0),
		asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Red),
	)

	legend := statusStyle.Render("blue: CTL (fitness)   red: ATL (fatigue)")
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, graph, legend))
}

func (m DashboardModel) renderVolumeChart() string {
	title := cardTitleStyle.Render(fmt.Sprintf("Weekly Run Volume (%s)", m.units.DistanceLabel()))

	graph := asciigraph.Plot(m.data.WeeklyVolumes,
		asciigraph.Height(6),
		asciigraph.Width(70),
		asciigraph.Precision(0),
	)

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, graph))
}

func (m DashboardModel) renderRecentActivities() string {
	title := cardTitleStyle.Render("Recent Activities")

	if len(m.data.RecentActivities) == 0 {
		return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, "No activities yet"))
	}

	header := tableHeaderStyle.Render(fmt.Sprintf("%-10s  %-10s  %9s  %7s  %6s",
		"Date", "Sport", "Distance", "Time", "HR"))

	rows := []string{header}
	for i, a := range m.data.RecentActivities {
		if i >= 5 {
			break
		}

		dist := "-"
		if a.DistanceKm != nil {
			dist = m.units.FormatDistanceValue(*a.DistanceKm)
		}
		hr := "-"
		if a.AvgHR != nil {
			hr = fmt.Sprintf("%.0f", *a.AvgHR)
		}

		row := tableRowStyle.Render(fmt.Sprintf("%-10s  %-10s  %9s  %7s  %6s",
			a.Date.Format("Jan 02"),
			a.Sport,
			dist,
			m.units.FormatDuration(a.DurationMinutes),
			hr,
		))
		rows = append(rows, row)
	}

	table := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, table))
}
