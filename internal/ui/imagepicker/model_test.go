package imagepicker

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fragmede/commentdeck/internal/imagepick"
	"github.com/fragmede/commentdeck/internal/ui/messages"
	"github.com/fragmede/commentdeck/internal/viewstate"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01")

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

// openPicker creates a picker on dir and feeds it the directory listing.
func openPicker(t *testing.T, dir string) Model {
	t.Helper()
	m := New(7, "Choose an image for John", dir, imagepick.NewValidator([]string{"**/*.png"}))
	m.SetSize(80, 20)

	cmd := m.Init()
	require.NotNil(t, cmd)
	m, _ = m.Update(cmd())
	return m
}

func TestModel_Update_SelectingImageEmitsPick(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.png", pngHeader)
	writeFile(t, dir, "notes.txt", []byte("hello"))

	m := openPicker(t, dir)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	want, err := filepath.Abs(path)
	require.NoError(t, err)
	assert.Equal(t, messages.ImagePickedMsg{CommentID: 7, Ref: viewstate.ImageRef(want)}, cmd())
}

func TestModel_Update_DisabledFileShowsError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.png", pngHeader)
	writeFile(t, dir, "notes.txt", []byte("hello"))

	m := openPicker(t, dir)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Contains(t, ansi.Strip(m.View()), "notes.txt is not an image")
}

func TestModel_Update_RejectsFakeImage(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "fake.png", []byte("definitely text"))

	m := openPicker(t, dir)
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if cmd != nil {
		_, picked := cmd().(messages.ImagePickedMsg)
		assert.False(t, picked)
	}
	assert.Contains(t, ansi.Strip(m.View()), "not an image")
}

func TestModel_Update_EscCloses(t *testing.T) {
	m := openPicker(t, t.TempDir())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, messages.PickerClosedMsg{}, cmd())
}

func TestModel_View_ShowsTitleAndDirectory(t *testing.T) {
	dir := t.TempDir()
	m := openPicker(t, dir)

	out := ansi.Strip(m.View())
	assert.Contains(t, out, "Choose an image for John")
	assert.Equal(t, dir, m.CurrentDirectory())
}

func TestResolveStartDir(t *testing.T) {
	assert.Equal(t, "/srv/pics", resolveStartDir("/srv/pics"))
	assert.NotEmpty(t, resolveStartDir(""))
}

func TestModel_Update_AcceptsUpperCaseExtension(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "PHOTO.PNG", pngHeader)

	m := New(3, "Choose", dir, imagepick.NewValidator([]string{"**/*.{png,PNG}"}))
	m.SetSize(80, 20)
	m, _ = m.Update(m.Init()())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	want, err := filepath.Abs(path)
	require.NoError(t, err)
	assert.Equal(t, messages.ImagePickedMsg{CommentID: 3, Ref: viewstate.ImageRef(want)}, cmd())
}
