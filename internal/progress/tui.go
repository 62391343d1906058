package progress

import (
	"fmt"
	"time"

	progressbar "github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	tuiRefresh = 100 * time.Millisecond
	padding    = 2
	maxWidth   = 60
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
)

// DoneMsg tells the model the run has ended.
type DoneMsg struct{}

type tickMsg time.Time

// Model is a Bubble Tea model drawing a progress bar for a tracker.
type Model struct {
	tracker     *Tracker
	bar         progressbar.Model
	interrupted bool
	done        bool
}

// NewModel creates a model reading from tracker.
func NewModel(tracker *Tracker) Model {
	return Model{
		tracker: tracker,
		bar:     progressbar.New(progressbar.WithDefaultGradient(), progressbar.WithWidth(maxWidth)),
	}
}

// Interrupted reports whether the user asked to quit before the run ended.
func (m Model) Interrupted() bool {
	return m.interrupted
}

// Init starts the refresh loop
func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tuiRefresh, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.interrupted = true
			return m, tea.Quit
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.bar.Width = min(msg.Width-padding*2, maxWidth)
		return m, nil

	case DoneMsg:
		m.done = true
		return m, tea.Quit

	case tickMsg:
		if m.done {
			return m, nil
		}
		return m, tick()
	}
	return m, nil
}

// View renders the bar
func (m Model) View() string {
	s := m.tracker.Snapshot()
	status := fmt.Sprintf("%d/%d classes", s.Done, s.Total)
	if s.Done > 0 {
		status += fmt.Sprintf("  last %s", s.Last)
	}
	status += fmt.Sprintf("  elapsed %s", s.Elapsed.Round(time.Second))
	if eta := s.ETA(); eta > 0 {
		status += fmt.Sprintf("  eta %s", eta.Round(time.Second))
	}

	view := titleStyle.Render("Simulating starting hands") + "\n" +
		m.bar.ViewAs(s.Fraction()) + "\n" +
		status + "\n"
	if !m.done {
		view += helpStyle.Render("ctrl+c to stop") + "\n"
	}
	return view
}
