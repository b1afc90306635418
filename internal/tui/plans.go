package tui

import (
	"fmt"
	"strings"
	"time"

	"trainguard/internal/guardrails"
	"trainguard/internal/service"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// PlansModel is the plan validation screen model. It shows the list of
// stored plans and opens a full guardrail report for the selected one.
type PlansModel struct {
	queryService *service.QueryService
	units        Units

	plans  []service.PlanSummary
	cursor int

	report   *service.PlanReport
	viewport viewport.Model
	ready    bool

	loading bool
	err     error
	width   int
	height  int
}

// NewPlansModel creates a new plans model
func NewPlansModel(qs *service.QueryService, units Units, width, height int) PlansModel {
	m := PlansModel{
		queryService: qs,
		units:        units,
		loading:      true,
		width:        width,
		height:       height,
	}

	if width > 0 && height > 0 {
		m.viewport = viewport.New(width, height-6)
		m.ready = true
	}

	return m
}

// Init initializes the plans screen
func (m PlansModel) Init() tea.Cmd {
	return m.loadPlans
}

type plansLoadedMsg struct {
	plans []service.PlanSummary
	err   error
}

type planReportMsg struct {
	report *service.PlanReport
	err    error
}

func (m PlansModel) loadPlans() tea.Msg {
	plans, err := m.queryService.ListPlans()
	return plansLoadedMsg{plans: plans, err: err}
}

func (m PlansModel) loadReport(planID string) tea.Cmd {
	return func() tea.Msg {
		report, err := m.queryService.GetPlanReport(planID, time.Now().UTC())
		return planReportMsg{report: report, err: err}
	}
}

// Update handles messages
func (m PlansModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case plansLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.plans = msg.plans
		m.cursor = 0

	case planReportMsg:
		m.loading = false
		m.err = msg.err
		m.report = msg.report
		if m.ready && m.report != nil {
			m.viewport.SetContent(m.renderReport())
			m.viewport.GotoTop()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-6)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 6
		}
		if m.report != nil {
			m.viewport.SetContent(m.renderReport())
		}

	case tea.KeyMsg:
		if m.report != nil {
			switch msg.String() {
			case "esc", "backspace":
				m.report = nil
				return m, nil
			}
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.plans)-1 {
				m.cursor++
			}
		case "enter":
			if len(m.plans) > 0 && m.cursor < len(m.plans) {
				m.loading = true
				return m, m.loadReport(m.plans[m.cursor].ID)
			}
		case "r":
			m.loading = true
			return m, m.loadPlans
		}
	}
	return m, nil
}

// View renders the plans screen
func (m PlansModel) View() string {
	if m.loading {
		return "\n  Loading plans..."
	}

	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err))
	}

	if m.report != nil {
		if m.ready {
			return m.viewport.View() + "\n" + statusStyle.Render("  j/k: scroll  esc: back to list")
		}
		return m.renderReport()
	}

	return m.renderList()
}

func (m PlansModel) renderList() string {
	var sections []string

	title := cardTitleStyle.Render("Training Plans")
	sections = append(sections, title)

	if len(m.plans) == 0 {
		sections = append(sections, "\n  No plans stored yet.")
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	header := tableHeaderStyle.Render(fmt.Sprintf("   %-24s  %-14s  %6s", "Name", "Goal", "Weeks"))
	sections = append(sections, header)

	for i, p := range m.plans {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		row := fmt.Sprintf("%s%-24s  %-14s  %6d", cursor, p.Name, p.Goal, p.TotalWeeks)
		if i == m.cursor {
			sections = append(sections, tableSelectedStyle.Render(row))
		} else {
			sections = append(sections, tableRowStyle.Render(row))
		}
	}

	help := statusStyle.Render("\n  enter: validate plan  j/k: navigate  r: refresh")
	sections = append(sections, help)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m PlansModel) renderReport() string {
	r := m.report
	var lines []string

	lines = append(lines, cardTitleStyle.Render(fmt.Sprintf("Plan Report: %s", r.PlanName)))
	lines = append(lines, RenderMetric("Goal", r.Goal))
	lines = append(lines, RenderMetric("Weeks", fmt.Sprintf("%d (race in week %d)", r.TotalWeeks, r.RaceWeek)))
	lines = append(lines, RenderMetric("Current CTL", fmt.Sprintf("%.0f", r.CurrentCTL)))
	lines = append(lines, "")

	if r.Result.OK() {
		lines = append(lines, successStyle.Render("  Plan structure OK"))
	} else {
		lines = append(lines, errorStyle.Render(fmt.Sprintf("  %d structural errors", len(r.Result.Errors))))
	}
	for _, issue := range r.Result.Errors {
		lines = append(lines, errorStyle.Render("  ✗ ")+formatIssue(issue))
	}

	if len(r.Result.Warnings) > 0 {
		lines = append(lines, "")
		lines = append(lines, warningStyle.Render(fmt.Sprintf("  %d warnings", len(r.Result.Warnings))))
		for _, issue := range r.Result.Warnings {
			lines = append(lines, warningStyle.Render("  ! ")+formatIssue(issue))
		}
	}

	lines = append(lines, "")
	lines = append(lines, cardTitleStyle.Render("Volume Recommendation"))
	lines = append(lines, statusStyle.Render("  "+r.Recommendation.Summary))

	if r.VDOT != nil && r.PredictedRaceSeconds > 0 {
		lines = append(lines, "")
		lines = append(lines, cardTitleStyle.Render("Goal Race Prediction"))
		lines = append(lines, RenderMetric("VDOT", fmt.Sprintf("%.1f (%s)", r.VDOT.Value, r.VDOT.Confidence)))
		lines = append(lines, RenderMetric("Predicted time", formatRaceTime(r.PredictedRaceSeconds)))
	}

	return strings.Join(lines, "\n")
}

// formatRaceTime formats seconds as "1:32:05" or "41:20"
func formatRaceTime(seconds int) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

func formatIssue(issue guardrails.Issue) string {
	if issue.Week > 0 {
		return fmt.Sprintf("week %d [%s]: %s", issue.Week, issue.Rule, issue.Message)
	}
	return fmt.Sprintf("[%s]: %s", issue.Rule, issue.Message)
}
