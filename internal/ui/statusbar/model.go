package statusbar

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	barStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#333333")).
			Foreground(lipgloss.Color("#FFFFFF"))

	titleStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#FF6600")).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true).
			Padding(0, 1)

	stateStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#555555")).
			Foreground(lipgloss.Color("#CCCCCC")).
			Padding(0, 1)

	errorStateStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#8B0000")).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true).
			Padding(0, 1)

	statusTextStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#333333")).
			Foreground(lipgloss.Color("#AAAAAA")).
			Padding(0, 1)

	errorTextStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#333333")).
			Foreground(lipgloss.Color("#FF5555")).
			Padding(0, 1)
)

// Model is the status bar at the bottom of the screen.
type Model struct {
	width      int
	title      string
	stateLabel string
	failed     bool
	count      int
	showCount  bool
	statusText string
	statusErr  bool
	bindings   []key.Binding
	help       help.Model
}

// New creates a new status bar.
func New(title string) Model {
	h := help.New()
	h.ShortSeparator = " · "
	return Model{title: title, help: h}
}

// SetSize sets the width.
func (m *Model) SetSize(w int) {
	m.width = w
	m.help.Width = w / 2
}

// SetState sets the state label. failed highlights it.
func (m *Model) SetState(label string, failed bool) {
	m.stateLabel = label
	m.failed = failed
}

// SetCount shows n comments. A negative n hides the counter.
func (m *Model) SetCount(n int) {
	m.count = n
	m.showCount = n >= 0
}

// SetStatus sets a temporary status message.
func (m *Model) SetStatus(text string, isErr bool) {
	m.statusText = text
	m.statusErr = isErr
}

// SetBindings sets the key help shown on the right.
func (m *Model) SetBindings(b []key.Binding) {
	m.bindings = b
}

// Update is a no-op for the status bar.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

// View renders the status bar.
func (m Model) View() string {
	left := titleStyle.Render(m.title)
	if m.stateLabel != "" {
		if m.failed {
			left += errorStateStyle.Render(m.stateLabel)
		} else {
			left += stateStyle.Render(m.stateLabel)
		}
	}
	if m.showCount {
		left += statusTextStyle.Render(fmt.Sprintf("%d comments", m.count))
	}

	var right string
	if m.statusText != "" {
		if m.statusErr {
			right += errorTextStyle.Render(m.statusText)
		} else {
			right += statusTextStyle.Render(m.statusText)
		}
	}
	if len(m.bindings) > 0 {
		right += barStyle.Padding(0, 1).Render(m.help.ShortHelpView(m.bindings))
	}

	// Fill middle with background.
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	mid := barStyle.Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Top, left, mid, right)
}
