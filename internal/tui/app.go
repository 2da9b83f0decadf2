// Package tui provides the terminal user interface for Swarm runs.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/swarmforge/swarm/internal/engine"
	"github.com/swarmforge/swarm/internal/orchestrator"
	"github.com/swarmforge/swarm/pkg/models"
)

// EventMsg wraps an orchestrator event for the TUI.
type EventMsg struct {
	Event orchestrator.OrchestratorEvent
}

// RunDoneMsg signals that the orchestration run has finished.
type RunDoneMsg struct {
	Success bool
	Message string
}

// LogEntry is a progress line displayed in the activity feed.
type LogEntry struct {
	Timestamp time.Time
	Message   string
}

// unitRow tracks the display state of one work unit.
type unitRow struct {
	unit    *models.WorkUnit
	status  models.UnitStatus
	phase   int
	failed  bool
	started bool
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	phaseStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// App is the main bubbletea model for a Swarm run.
type App struct {
	// task is the task description being orchestrated.
	task string
	// spin animates while units are in flight.
	spin spinner.Model
	// rows holds one entry per planned unit, in plan order.
	rows []*unitRow
	// phaseCount is the total number of planned phases.
	phaseCount int
	// currentPhase is the index of the running phase.
	currentPhase int
	// logs is the activity feed, newest last.
	logs []LogEntry
	// width and height track the terminal size.
	width  int
	height int
	// quitting indicates the app is shutting down.
	quitting bool
	// done indicates the run has completed.
	done bool
	// doneSuccess indicates whether the run completed successfully.
	doneSuccess bool
	// doneMessage holds the final run message.
	doneMessage string
	// report holds the final report once the run completes.
	report *models.Report
}

// New creates a new App for the given task description.
func New(task string) *App {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("81"))

	return &App{
		task: task,
		spin: s,
		logs: make([]LogEntry, 0),
	}
}

// NewProgram creates a bubbletea program around a new App.
func NewProgram(task string) (*tea.Program, *App) {
	app := New(task)
	return tea.NewProgram(app, tea.WithAltScreen()), app
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return a.spin.Tick
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			a.quitting = true
			return a, tea.Quit
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd

	case EventMsg:
		a.handleEvent(msg.Event)

	case RunDoneMsg:
		a.done = true
		a.doneSuccess = msg.Success
		a.doneMessage = msg.Message
	}

	return a, nil
}

// handleEvent folds an orchestrator event into the display state.
func (a *App) handleEvent(ev orchestrator.OrchestratorEvent) {
	switch ev.Type {
	case orchestrator.EventClassified:
		if ev.Decision != nil {
			a.addLog(fmt.Sprintf("classified: complex=%t estimated_units=%d", ev.Decision.Complex, ev.Decision.EstimatedUnits))
		}

	case orchestrator.EventPlanReady:
		if ev.Plan != nil {
			a.phaseCount = ev.Plan.PhaseCount()
			a.rows = make([]*unitRow, 0, len(ev.Plan.Units))
			for _, unit := range ev.Plan.Units {
				a.rows = append(a.rows, &unitRow{unit: unit, status: models.UnitStatusPending})
			}
			a.addLog(fmt.Sprintf("plan ready: %d units across %d phases", len(ev.Plan.Units), a.phaseCount))
		}

	case orchestrator.EventEngine:
		if ev.Engine != nil {
			a.handleEngineEvent(*ev.Engine)
		}

	case orchestrator.EventCompleted:
		a.report = ev.Report
	}
}

// handleEngineEvent folds a phase or unit event into the unit rows.
func (a *App) handleEngineEvent(ev engine.Event) {
	switch ev.Type {
	case engine.EventPhaseStarted:
		a.currentPhase = ev.Phase
		label := fmt.Sprintf("phase %d/%d started (%d units)", ev.Phase+1, a.phaseCount, ev.UnitCount)
		if ev.Forced {
			label += " [forced]"
		}
		a.addLog(label)

	case engine.EventUnitStarted:
		if row := a.findRow(ev.Unit); row != nil {
			row.started = true
			row.status = models.UnitStatusRunning
			row.phase = ev.Phase
		}

	case engine.EventUnitFinished:
		if row := a.findRow(ev.Unit); row != nil {
			row.phase = ev.Phase
			if ev.Success {
				row.status = models.UnitStatusSucceeded
			} else {
				row.status = models.UnitStatusFailed
				row.failed = true
			}
		}

	case engine.EventPhaseCompleted:
		a.addLog(fmt.Sprintf("phase %d/%d completed (%d failed)", ev.Phase+1, a.phaseCount, ev.FailedCount))
	}
}

// findRow locates the row for a unit by ID.
func (a *App) findRow(unit *models.WorkUnit) *unitRow {
	if unit == nil {
		return nil
	}
	for _, row := range a.rows {
		if row.unit.ID == unit.ID {
			return row
		}
	}
	return nil
}

// addLog appends an activity feed entry.
func (a *App) addLog(message string) {
	a.logs = append(a.logs, LogEntry{Timestamp: time.Now(), Message: message})
}

// View implements tea.Model.
func (a *App) View() string {
	if a.quitting {
		return "Goodbye!\n"
	}

	return fmt.Sprintf("%s\n\n%s\n%s\n%s", a.viewHeader(), a.viewUnits(), a.viewLogs(), a.viewFooter())
}

// viewHeader renders the title line with run progress.
func (a *App) viewHeader() string {
	title := titleStyle.Render("Swarm") + " " + a.task
	if a.done {
		return title
	}
	if a.phaseCount > 0 {
		return fmt.Sprintf("%s %s %s", a.spin.View(), title,
			phaseStyle.Render(fmt.Sprintf("phase %d/%d", a.currentPhase+1, a.phaseCount)))
	}
	return fmt.Sprintf("%s %s", a.spin.View(), title)
}

// viewUnits renders one status line per planned unit.
func (a *App) viewUnits() string {
	if len(a.rows) == 0 {
		return "  planning...\n"
	}

	var view string
	for _, row := range a.rows {
		symbol := "·"
		switch row.status {
		case models.UnitStatusRunning:
			symbol = a.spin.View()
		case models.UnitStatusSucceeded:
			symbol = successStyle.Render("✓")
		case models.UnitStatusFailed:
			symbol = failStyle.Render("✗")
		}
		view += fmt.Sprintf("  %s %s\n", symbol, row.unit.Label())
	}
	return view
}

// viewLogs renders the most recent activity feed entries.
func (a *App) viewLogs() string {
	if len(a.logs) == 0 {
		return ""
	}

	// Show the most recent entries (up to 8)
	start := 0
	if len(a.logs) > 8 {
		start = len(a.logs) - 8
	}

	var view string
	for _, entry := range a.logs[start:] {
		view += phaseStyle.Render(fmt.Sprintf("  %s %s", entry.Timestamp.Format("15:04:05"), entry.Message)) + "\n"
	}
	return view
}

// viewFooter renders the footer with help text.
func (a *App) viewFooter() string {
	if a.done {
		if a.doneSuccess {
			return footerStyle.Render(fmt.Sprintf("✓ %s | Press q to exit", a.doneMessage))
		}
		return footerStyle.Render(fmt.Sprintf("✗ %s | Press q to exit", a.doneMessage))
	}
	return footerStyle.Render("Press q to quit")
}

// Report returns the final report received from the orchestrator, if any.
func (a *App) Report() *models.Report {
	return a.report
}
