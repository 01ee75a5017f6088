// Package tui renders live research progress with bubbletea.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dowserhq/dowser/internal/research"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	eventStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	scoreStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// maxVisibleEvents bounds the scrollback shown below the spinner.
const maxVisibleEvents = 12

// eventMsg wraps a research event for the bubbletea update loop.
type eventMsg research.Event

// doneMsg signals that the event channel closed.
type doneMsg struct{}

// Model is the progress view for one research session.
type Model struct {
	query   string
	events  <-chan research.Event
	spinner spinner.Model
	lines   []string
	phase   string
	done    bool
}

// NewModel creates a progress view draining the given event channel. The
// channel must be closed when the session ends.
func NewModel(query string, events <-chan research.Event) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return Model{
		query:   query,
		events:  events,
		spinner: sp,
		phase:   "starting",
	}
}

func (m Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.waitForEvent())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}
		return m, nil

	case doneMsg:
		m.done = true
		return m, tea.Quit

	case eventMsg:
		m.apply(research.Event(msg))
		return m, m.waitForEvent()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) apply(ev research.Event) {
	switch ev.Type {
	case research.EventPlanningStarted:
		m.phase = "planning"
	case research.EventPlanCreated, research.EventPlanFallback:
		m.phase = "researching"
	case research.EventSynthesisStarted:
		m.phase = "synthesizing"
	case research.EventSessionDone:
		m.phase = "done"
	}

	switch ev.Type {
	case research.EventIterationScored:
		m.push(fmt.Sprintf("subtask %d iteration %d %s",
			ev.SubtaskID, ev.Iteration, scoreStyle.Render(fmt.Sprintf("scored %d/10", ev.Score))))
	case research.EventSubtaskStarted:
		m.push(fmt.Sprintf("subtask %d started: %s", ev.SubtaskID, ev.Message))
	case research.EventSubtaskCompleted:
		m.push(fmt.Sprintf("subtask %d completed at %d/10", ev.SubtaskID, ev.Score))
	case research.EventDiagnostic:
		m.push(warnStyle.Render("warning: " + ev.Message))
	default:
		m.push(ev.Message)
	}
}

func (m *Model) push(line string) {
	if line == "" {
		return
	}
	m.lines = append(m.lines, line)
	if len(m.lines) > maxVisibleEvents {
		m.lines = m.lines[len(m.lines)-maxVisibleEvents:]
	}
}

// View implements tea.Model.
func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("dowser") + " " + m.query + "\n")
	if m.done {
		sb.WriteString("research complete\n")
	} else {
		sb.WriteString(fmt.Sprintf("%s %s\n", m.spinner.View(), m.phase))
	}
	for _, line := range m.lines {
		sb.WriteString(eventStyle.Render("  "+line) + "\n")
	}
	return sb.String()
}
