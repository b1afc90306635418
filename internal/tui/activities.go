package tui

import (
	"fmt"

	"trainguard/internal/service"
	"trainguard/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ActivitiesModel is the activities list screen model
type ActivitiesModel struct {
	queryService *service.QueryService
	units        Units
	activities   []store.Activity
	cursor       int
	offset       int
	pageSize     int
	loading      bool
	err          error
}

// NewActivitiesModel creates a new activities model
func NewActivitiesModel(qs *service.QueryService, units Units) ActivitiesModel {
	return ActivitiesModel{
		queryService: qs,
		units:        units,
		pageSize:     15,
		loading:      true,
	}
}

// Init initializes the activities screen
func (m ActivitiesModel) Init() tea.Cmd {
	return m.load
}

type activitiesLoadedMsg struct {
	activities []store.Activity
	err        error
}

func (m ActivitiesModel) load() tea.Msg {
	activities, err := m.queryService.GetActivities()
	return activitiesLoadedMsg{activities: activities, err: err}
}

// page returns the slice of activities visible on the current page
func (m ActivitiesModel) page() []store.Activity {
	if m.offset >= len(m.activities) {
		return nil
	}
	end := m.offset + m.pageSize
	if end > len(m.activities) {
		end = len(m.activities)
	}
	return m.activities[m.offset:end]
}

// Update handles messages
func (m ActivitiesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case activitiesLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.activities = msg.activities
		m.cursor = 0
		m.offset = 0

	case tea.KeyMsg:
		page := m.page()
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			} else if m.offset > 0 {
				m.offset -= m.pageSize
				m.cursor = m.pageSize - 1
			}
		case "down", "j":
			if m.cursor < len(page)-1 {
				m.cursor++
			} else if m.offset+len(page) < len(m.activities) {
				m.offset += m.pageSize
				m.cursor = 0
			}
		case "pgup":
			if m.offset > 0 {
				m.offset -= m.pageSize
				if m.offset < 0 {
					m.offset = 0
				}
				m.cursor = 0
			}
		case "pgdown":
			if m.offset+m.pageSize < len(m.activities) {
				m.offset += m.pageSize
				m.cursor = 0
			}
		case "r":
			m.loading = true
			return m, m.load
		}
	}
	return m, nil
}

// View renders the activities list
func (m ActivitiesModel) View() string {
	if m.loading {
		return "\n  Loading activities..."
	}

	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err))
	}

	if len(m.activities) == 0 {
		return "\n  No activities found. Press 'i' to import."
	}

	var sections []string

	page := m.page()
	startNum := m.offset + 1
	endNum := m.offset + len(page)
	title := cardTitleStyle.Render(fmt.Sprintf("Activities (%d-%d of %d)", startNum, endNum, len(m.activities)))
	sections = append(sections, title)

	header := tableHeaderStyle.Render(fmt.Sprintf("   %-10s  %-10s  %9s  %7s  %5s  %4s  %-24s",
		"Date", "Sport", "Distance", "Time", "HR", "RPE", "Notes"))
	sections = append(sections, header)

	for i, a := range page {
		dist := "-"
		if a.DistanceKm != nil {
			dist = m.units.FormatDistanceValue(*a.DistanceKm)
		}
		hr := "-"
		if a.AvgHR != nil {
			hr = fmt.Sprintf("%.0f", *a.AvgHR)
		}
		rpe := "-"
		if a.RPE != nil {
			rpe = fmt.Sprintf("%.0f", *a.RPE)
		}

		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		row := fmt.Sprintf("%s%-10s  %-10s  %9s  %7s  %5s  %4s  %-24s",
			cursor,
			a.Date.Format("Jan 02"),
			a.Sport,
			dist,
			m.units.FormatDuration(a.DurationMinutes),
			hr,
			rpe,
			truncateNotes(a.Notes, 24),
		)

		if i == m.cursor {
			sections = append(sections, tableSelectedStyle.Render(row))
		} else {
			sections = append(sections, tableRowStyle.Render(row))
		}
	}

	help := statusStyle.Render("\n  j/k: navigate  pgup/pgdn: page  r: refresh")
	sections = append(sections, help)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func truncateNotes(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
