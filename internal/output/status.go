package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ReloadMsg reports the outcome of one catalog reload to a WatchStatus
type ReloadMsg struct {
	Items int
	Err   error
}

// WatchStatus is the bubbletea model shown while a catalog file is watched
type WatchStatus struct {
	spinner  spinner.Model
	path     string
	items    int
	reloads  int
	failures int
	lastErr  error
	quitting bool
}

// NewWatchStatus creates the status model for a catalog loaded with items entries
func NewWatchStatus(path string, items int) *WatchStatus {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return &WatchStatus{
		spinner: s,
		path:    path,
		items:   items,
	}
}

func (m *WatchStatus) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m *WatchStatus) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ReloadMsg:
		if msg.Err != nil {
			m.failures++
			m.lastErr = msg.Err
			return m, nil
		}
		m.reloads++
		m.items = msg.Items
		m.lastErr = nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		}
	case spinner.TickMsg:
		if !m.quitting {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m *WatchStatus) View() string {
	var b strings.Builder
	if m.quitting {
		fmt.Fprintf(&b, "✔ %s: %d items, %d reloads\n", m.path, m.items, m.reloads)
		return b.String()
	}

	fmt.Fprintf(&b, "%s watching %s: %d items, %d reloads", m.spinner.View(), m.path, m.items, m.reloads)
	if m.lastErr != nil {
		fmt.Fprintf(&b, "\n✘ last reload failed, keeping previous catalog:\n   %s", m.lastErr)
	}
	b.WriteString("\n(press q to quit)\n")
	return b.String()
}

// Quitting reports whether the user asked to stop
func (m *WatchStatus) Quitting() bool {
	return m.quitting
}
