package commentlist

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fragmede/commentdeck/internal/api"
	"github.com/fragmede/commentdeck/internal/ui/messages"
	"github.com/fragmede/commentdeck/internal/viewstate"
)

// Source is where the list reads comments and image selections from.
// The list keeps no copy of either.
type Source interface {
	State() viewstate.State
	Image(commentID int) (viewstate.ImageRef, bool)
}

type itemOffset struct {
	startLine int
	endLine   int
}

// Model is a viewport-based list of comment cards.
type Model struct {
	viewport  viewport.Model
	src       Source
	offsets   []itemOffset
	cursor    int
	bodyWidth int
	width     int
	height    int
}

// New creates a comment list reading from src. bodyWidth caps the card width.
func New(src Source, bodyWidth int) Model {
	return Model{
		viewport:  viewport.New(0, 0),
		src:       src,
		bodyWidth: bodyWidth,
	}
}

// SetSize updates viewport dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.viewport.Width = w
	m.viewport.Height = h
	if m.viewport.Height < 1 {
		m.viewport.Height = 1
	}
	m.Refresh()
}

// Refresh re-renders the cards from the source. The cursor is clamped to the
// new list and reset to the top when the list is empty.
func (m *Model) Refresh() {
	comments := m.comments()
	if m.cursor >= len(comments) {
		m.cursor = max(len(comments)-1, 0)
	}
	m.rebuildContent(comments)
	m.scrollToCursor()
}

// Cursor returns the index of the selected card.
func (m Model) Cursor() int {
	return m.cursor
}

// Selected returns the selected comment.
func (m Model) Selected() (api.Comment, bool) {
	comments := m.comments()
	if m.cursor < len(comments) {
		return comments[m.cursor], true
	}
	return api.Comment{}, false
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		n := len(m.comments())
		switch msg.String() {
		case "j", "down":
			if m.cursor < n-1 {
				m.cursor++
				m.Refresh()
			}
			return m, nil
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
				m.Refresh()
			}
			return m, nil
		case "g", "home":
			m.cursor = 0
			m.Refresh()
			m.viewport.GotoTop()
			return m, nil
		case "G", "end":
			if n > 0 {
				m.cursor = n - 1
				m.Refresh()
				m.viewport.GotoBottom()
			}
			return m, nil
		case "i", "enter":
			c, ok := m.Selected()
			if !ok {
				return m, nil
			}
			return m, func() tea.Msg {
				return messages.OpenPickerMsg{CommentID: c.ID, Name: c.Name}
			}
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the list.
func (m Model) View() string {
	return m.viewport.View()
}

func (m Model) comments() []api.Comment {
	switch s := m.src.State().(type) {
	case viewstate.Success:
		return s.Comments
	case viewstate.Loading, viewstate.Error, viewstate.Empty:
		return nil
	default:
		panic(fmt.Sprintf("commentlist: unknown state %T", s))
	}
}

func (m *Model) rebuildContent(comments []api.Comment) {
	m.offsets = make([]itemOffset, len(comments))
	if len(comments) == 0 {
		m.viewport.SetContent("")
		return
	}

	cardWidth := m.width - 2
	if m.bodyWidth > 0 && cardWidth > m.bodyWidth {
		cardWidth = m.bodyWidth
	}

	var sb strings.Builder
	lineCount := 0
	for i, c := range comments {
		ref, _ := m.src.Image(c.ID)
		card := renderCard(c, ref, cardWidth, i == m.cursor)
		lines := strings.Count(card, "\n") + 1

		sb.WriteString(card)
		sb.WriteString("\n")
		m.offsets[i] = itemOffset{startLine: lineCount, endLine: lineCount + lines - 1}
		lineCount += lines
	}

	m.viewport.SetContent(sb.String())
}

func (m *Model) scrollToCursor() {
	if m.cursor >= len(m.offsets) {
		return
	}
	ri := m.offsets[m.cursor]

	if ri.startLine < m.viewport.YOffset {
		m.viewport.SetYOffset(ri.startLine)
	}
	if ri.endLine >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(ri.startLine)
	}
}
