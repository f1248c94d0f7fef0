// Package errordialog renders the modal shown when loading comments fails.
package errordialog

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fragmede/commentdeck/internal/ui/messages"
)

// Button identifies a dialog button.
type Button int

const (
	ButtonRetry Button = iota
	ButtonOK
)

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#FF0000")).
			Padding(1, 3)

	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5555")).Bold(true)
	messageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF"))

	buttonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CCCCCC")).
			Background(lipgloss.Color("#444444")).
			Padding(0, 2)

	focusedButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FFFFFF")).
				Background(lipgloss.Color("#FF6600")).
				Bold(true).
				Padding(0, 2)
)

// Model is the error dialog. It holds only focus; the message is supplied at
// render time from the current state.
type Model struct {
	retryLabel string
	okLabel    string
	focus      Button
	width      int
}

// New creates a dialog with the given button labels. Retry starts focused.
func New(retryLabel, okLabel string) Model {
	return Model{retryLabel: retryLabel, okLabel: okLabel}
}

// SetWidth caps the dialog width.
func (m *Model) SetWidth(w int) {
	m.width = w
}

// Reset moves focus back to Retry.
func (m *Model) Reset() {
	m.focus = ButtonRetry
}

// Focused returns the focused button.
func (m Model) Focused() Button {
	return m.focus
}

// Update handles key presses. Pressing a button emits RetryMsg or DismissMsg.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "left", "h", "shift+tab":
		m.focus = ButtonRetry
	case "right", "l":
		m.focus = ButtonOK
	case "tab":
		if m.focus == ButtonRetry {
			m.focus = ButtonOK
		} else {
			m.focus = ButtonRetry
		}
	case "enter", " ":
		return m, press(m.focus)
	case "r":
		return m, press(ButtonRetry)
	case "esc", "o":
		return m, press(ButtonOK)
	}
	return m, nil
}

func press(b Button) tea.Cmd {
	if b == ButtonRetry {
		return func() tea.Msg { return messages.RetryMsg{} }
	}
	return func() tea.Msg { return messages.DismissMsg{} }
}

// View renders the dialog around message.
func (m Model) View(message string) string {
	textWidth := 48
	if m.width > 0 && m.width-10 < textWidth {
		textWidth = max(m.width-10, 10)
	}

	retry := buttonStyle.Render(m.retryLabel)
	ok := buttonStyle.Render(m.okLabel)
	if m.focus == ButtonRetry {
		retry = focusedButtonStyle.Render(m.retryLabel)
	} else {
		ok = focusedButtonStyle.Render(m.okLabel)
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Top, retry, "  ", ok)

	body := lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render("Error"),
		"",
		messageStyle.Width(textWidth).Align(lipgloss.Center).Render(message),
		"",
		buttons,
	)
	return boxStyle.Render(body)
}
