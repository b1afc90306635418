package tui

import (
	"trainguard/internal/config"
	"trainguard/internal/service"
	"trainguard/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Screen identifiers
type Screen int

const (
	ScreenDashboard Screen = iota
	ScreenActivities
	ScreenPlans
	ScreenImport
	ScreenHelp
)

// App is the root Bubble Tea model
type App struct {
	screen     Screen
	prevScreen Screen

	// Screen models
	dashboard    DashboardModel
	activities   ActivitiesModel
	plans        PlansModel
	importScreen ImportModel
	help         HelpModel

	// Services
	db           *store.DB
	cfg          *config.Config
	queryService *service.QueryService
	units        Units

	// Window dimensions
	width  int
	height int
}

// NewApp creates a new App with all dependencies
func NewApp(db *store.DB, cfg *config.Config, queryService *service.QueryService) *App {
	units := NewUnits(cfg.Display)
	return &App{
		screen:       ScreenDashboard,
		db:           db,
		cfg:          cfg,
		queryService: queryService,
		units:        units,
		dashboard:    NewDashboardModel(queryService, units),
		activities:   NewActivitiesModel(queryService, units),
		plans:        NewPlansModel(queryService, units, 0, 0),
		importScreen: NewImportModel(db, cfg),
		help:         NewHelpModel(),
	}
}

// Init initializes the app
func (a *App) Init() tea.Cmd {
	return a.dashboard.Init()
}

// Update handles messages
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Global keybindings (unless an import is running)
		if a.screen != ScreenImport || !a.importScreen.importing {
			switch msg.String() {
			case "q", "ctrl+c":
				return a, tea.Quit
			case "1":
				a.screen = ScreenDashboard
				a.dashboard = NewDashboardModel(a.queryService, a.units)
				return a, a.dashboard.Init()
			case "2":
				a.screen = ScreenActivities
				return a, a.activities.Init()
			case "3":
				a.screen = ScreenPlans
				a.plans = NewPlansModel(a.queryService, a.units, a.width, a.height)
				return a, a.plans.Init()
			case "4", "i":
				if a.screen != ScreenImport {
					a.screen = ScreenImport
					return a, a.importScreen.Init()
				}
				// Let 'i' fall through to the import screen when already there
			case "?":
				a.prevScreen = a.screen
				a.screen = ScreenHelp
				return a, nil
			case "esc":
				if a.screen == ScreenHelp {
					a.screen = a.prevScreen
					return a, nil
				}
			}
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

	case ImportCompleteMsg:
		// Refresh dashboard after a successful import
		a.screen = ScreenDashboard
		a.dashboard = NewDashboardModel(a.queryService, a.units)
		return a, a.dashboard.Init()
	}

	// Delegate to current screen
	var cmd tea.Cmd
	switch a.screen {
	case ScreenDashboard:
		var m tea.Model
		m, cmd = a.dashboard.Update(msg)
		a.dashboard = m.(DashboardModel)
	case ScreenActivities:
		var m tea.Model
		m, cmd = a.activities.Update(msg)
		a.activities = m.(ActivitiesModel)
	case ScreenPlans:
		var m tea.Model
		m, cmd = a.plans.Update(msg)
		a.plans = m.(PlansModel)
	case ScreenImport:
		var m tea.Model
		m, cmd = a.importScreen.Update(msg)
		a.importScreen = m.(ImportModel)
	case ScreenHelp:
		var m tea.Model
		m, cmd = a.help.Update(msg)
		a.help = m.(HelpModel)
	}

	return a, cmd
}

// View renders the app
func (a *App) View() string {
	header := headerStyle.Render("Trainguard - Training Load & Guardrails")
	nav := a.renderNav()

	var content string
	switch a.screen {
	case ScreenDashboard:
		content = a.dashboard.View()
	case ScreenActivities:
		content = a.activities.View()
	case ScreenPlans:
		content = a.plans.View()
	case ScreenImport:
		content = a.importScreen.View()
	case ScreenHelp:
		content = a.help.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, nav, content)
}

func (a *App) renderNav() string {
	items := []struct {
		key    string
		label  string
		screen Screen
	}{
		{"1", "Dashboard", ScreenDashboard},
		{"2", "Activities", ScreenActivities},
		{"3", "Plans", ScreenPlans},
		{"4", "Import", ScreenImport},
		{"?", "Help", ScreenHelp},
	}

	var nav string
	for i, item := range items {
		if i > 0 {
			nav += "  "
		}

		label := "[" + item.key + "] " + item.label
		if a.screen == item.screen {
			nav += navActiveStyle.Render(label)
		} else {
			nav += navInactiveStyle.Render(label)
		}
	}

	nav += "  " + navInactiveStyle.Render("[q] Quit")

	return navStyle.Render(nav)
}

// ImportCompleteMsg is sent when an import finishes successfully
type ImportCompleteMsg struct{}
