package imagepicker

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fragmede/commentdeck/internal/imagepick"
	"github.com/fragmede/commentdeck/internal/render"
	"github.com/fragmede/commentdeck/internal/ui/messages"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6600")).Bold(true)
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#828282"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))
)

// Model wraps a file picker scoped to one comment.
type Model struct {
	fp        filepicker.Model
	commentID int
	title     string
	validator *imagepick.Validator
	err       string
	width     int
}

// New opens a picker in startDir for the given comment. An empty startDir
// falls back to the home directory.
func New(commentID int, title, startDir string, v *imagepick.Validator) Model {
	fp := filepicker.New()
	fp.AllowedTypes = allowedTypes()
	fp.AutoHeight = true
	fp.CurrentDirectory = resolveStartDir(startDir)

	return Model{
		fp:        fp,
		commentID: commentID,
		title:     title,
		validator: v,
	}
}

// allowedTypes lists the image extensions in both cases since the file
// picker matches suffixes exactly.
func allowedTypes() []string {
	types := make([]string, 0, 2*len(imagepick.Extensions))
	for _, ext := range imagepick.Extensions {
		types = append(types, ext, strings.ToUpper(ext))
	}
	return types
}

func resolveStartDir(dir string) string {
	if dir != "" {
		return dir
	}
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

// Init reads the start directory.
func (m Model) Init() tea.Cmd {
	return m.fp.Init()
}

// SetSize forwards the size to the file picker, leaving room for the header.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.fp, _ = m.fp.Update(tea.WindowSizeMsg{Width: w, Height: max(h-3, 1)})
}

// CurrentDirectory returns the directory being browsed.
func (m Model) CurrentDirectory() string {
	return m.fp.CurrentDirectory
}

// Update handles messages. esc closes the picker without a selection.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
		return m, func() tea.Msg { return messages.PickerClosedMsg{} }
	}

	var cmd tea.Cmd
	m.fp, cmd = m.fp.Update(msg)

	if ok, path := m.fp.DidSelectFile(msg); ok {
		ref, err := m.validator.Check(path)
		if err != nil {
			m.err = err.Error()
			return m, cmd
		}
		id := m.commentID
		return m, func() tea.Msg {
			return messages.ImagePickedMsg{CommentID: id, Ref: ref}
		}
	}
	if ok, path := m.fp.DidSelectDisabledFile(msg); ok {
		m.err = filepath.Base(path) + " is not an image"
		return m, cmd
	}
	return m, cmd
}

// View renders the picker.
func (m Model) View() string {
	header := titleStyle.Render(render.Line(m.title, max(m.width, 20))) + "\n" +
		hintStyle.Render(render.Line(m.fp.CurrentDirectory+"  (enter: choose, esc: cancel)", max(m.width, 20)))
	footer := ""
	if m.err != "" {
		footer = "\n" + errStyle.Render(m.err)
	}
	return header + "\n" + m.fp.View() + footer
}
