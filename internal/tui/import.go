package tui

import (
	"fmt"
	"strings"

	"trainguard/internal/config"
	"trainguard/internal/importer"
	"trainguard/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ImportModel is the import screen model
type ImportModel struct {
	db  *store.DB
	cfg *config.Config

	importing bool
	result    *importer.Result
	err       error
	done      bool
}

// NewImportModel creates a new import model
func NewImportModel(db *store.DB, cfg *config.Config) ImportModel {
	return ImportModel{db: db, cfg: cfg}
}

// Init initializes the import screen
func (m ImportModel) Init() tea.Cmd {
	return nil
}

// ImportDoneMsg is sent when an import finishes
type ImportDoneMsg struct {
	Result *importer.Result
	Err    error
}

// Update handles messages
func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ImportDoneMsg:
		m.importing = false
		m.done = true
		m.result = msg.Result
		m.err = msg.Err
		if m.err == nil {
			return m, func() tea.Msg { return ImportCompleteMsg{} }
		}
		return m, nil

	case tea.KeyMsg:
		if !m.importing {
			switch msg.String() {
			case "enter", "i":
				m.importing = true
				m.done = false
				m.err = nil
				m.result = nil
				return m, m.runImport
			}
		}
	}
	return m, nil
}

func (m ImportModel) runImport() tea.Msg {
	path, err := m.cfg.ImportPath()
	if err != nil {
		return ImportDoneMsg{Err: err}
	}

	result, err := importer.ImportFile(m.db, path)
	return ImportDoneMsg{Result: result, Err: err}
}

// View renders the import screen
func (m ImportModel) View() string {
	var sections []string

	title := cardTitleStyle.Render("Import Activities")
	sections = append(sections, title)

	if m.err != nil {
		sections = append(sections, errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err)))
		sections = append(sections, "\n"+statusStyle.Render("  Press 'i' or Enter to retry"))
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	if m.done && !m.importing {
		sections = append(sections, successStyle.Render("\n  Import complete!"))
		sections = append(sections, m.renderSummary())
		sections = append(sections, "\n"+statusStyle.Render("  Press '1' to go to dashboard"))
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	if m.importing {
		sections = append(sections, "\n  Importing activities...")
	} else {
		sections = append(sections, m.renderStartPrompt())
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m ImportModel) renderStartPrompt() string {
	var lines []string

	lines = append(lines, "")
	lines = append(lines, "  This will import normalized activities:")
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("  Source: %s", m.cfg.Import.Path))
	lines = append(lines, "")
	lines = append(lines, "  Entries with stable IDs are upserted, so")
	lines = append(lines, "  re-importing the same file is safe.")
	lines = append(lines, "")
	lines = append(lines, statusStyle.Render("  Press 'i' or Enter to start the import"))

	return strings.Join(lines, "\n")
}

func (m ImportModel) renderSummary() string {
	if m.result == nil {
		return ""
	}

	var lines []string
	r := m.result
	lines = append(lines, "")

	if r.Imported > 0 {
		lines = append(lines, successStyle.Render(fmt.Sprintf("  %d activities imported", r.Imported)))
	} else {
		lines = append(lines, statusStyle.Render("  No activities imported"))
	}

	if r.Skipped > 0 {
		lines = append(lines, warningStyle.Render(fmt.Sprintf("  %d entries skipped", r.Skipped)))
		for _, e := range r.Errors {
			lines = append(lines, statusStyle.Render("    "+e))
		}
	}

	return strings.Join(lines, "\n")
}
