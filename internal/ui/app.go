package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/fragmede/commentdeck/internal/config"
	"github.com/fragmede/commentdeck/internal/imagepick"
	"github.com/fragmede/commentdeck/internal/ui/commentlist"
	"github.com/fragmede/commentdeck/internal/ui/errordialog"
	"github.com/fragmede/commentdeck/internal/ui/imagepicker"
	"github.com/fragmede/commentdeck/internal/ui/messages"
	"github.com/fragmede/commentdeck/internal/ui/statusbar"
	"github.com/fragmede/commentdeck/internal/viewstate"
)

// Controller is the state holder the UI renders from and forwards intents to.
// *viewstate.Machine implements it.
type Controller interface {
	State() viewstate.State
	Image(commentID int) (viewstate.ImageRef, bool)
	Fetch()
	Retry()
	DismissError()
	SelectImage(commentID int, ref viewstate.ImageRef)
	SetOnChange(fn func())
	Close()
}

// ViewType identifies the active view.
type ViewType int

const (
	ViewComments ViewType = iota
	ViewImagePicker
)

// App is the root Bubble Tea model.
type App struct {
	activeView ViewType

	// Child models
	list      commentlist.Model
	dialog    errordialog.Model
	picker    imagepicker.Model
	statusBar statusbar.Model
	spinner   spinner.Model

	// Shared state
	cfg       config.Config
	ctrl      Controller
	validator *imagepick.Validator
	log       zerolog.Logger
	ticking   bool
	lastState string

	// Dimensions
	width  int
	height int
}

// NewApp creates the root application model.
func NewApp(cfg config.Config, ctrl Controller, logger zerolog.Logger) *App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = SpinnerStyle

	a := &App{
		activeView: ViewComments,
		list:       commentlist.New(ctrl, cfg.BodyWidth),
		dialog:     errordialog.New(Text(KeyRetryButton), Text(KeyOKButton)),
		statusBar:  statusbar.New("commentdeck"),
		spinner:    sp,
		cfg:        cfg,
		ctrl:       ctrl,
		validator:  imagepick.NewValidator(cfg.Images.Patterns),
		log:        logger.With().Str("component", "ui").Logger(),
	}
	a.syncStatus()
	return a
}

// SetProgram subscribes the program to controller changes. Sends happen on
// their own goroutine because the controller may notify before the event loop
// is running.
func (a *App) SetProgram(p *tea.Program) {
	a.ctrl.SetOnChange(func() {
		go p.Send(messages.StateChangedMsg{})
	})
}

// Init requests the first load and starts the spinner.
func (a *App) Init() tea.Cmd {
	a.ctrl.Fetch()
	a.ticking = true
	return a.spinner.Tick
}

// Update handles all messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		contentHeight := msg.Height - 1 // Reserve 1 line for status bar.
		a.list.SetSize(msg.Width, contentHeight)
		a.dialog.SetWidth(msg.Width)
		a.statusBar.SetSize(msg.Width)
		if a.activeView == ViewImagePicker {
			a.picker.SetSize(msg.Width, contentHeight)
		}
		return a, nil

	case spinner.TickMsg:
		if _, loading := a.ctrl.State().(viewstate.Loading); !loading {
			a.ticking = false
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case messages.StateChangedMsg:
		return a, a.stateChanged()

	case messages.RetryMsg:
		a.ctrl.Retry()
		return a, a.stateChanged()

	case messages.DismissMsg:
		a.ctrl.DismissError()
		return a, a.stateChanged()

	case messages.OpenPickerMsg:
		a.activeView = ViewImagePicker
		a.picker = imagepicker.New(msg.CommentID, Text(KeyPickImage)+" "+msg.Name, a.cfg.Images.StartDir, a.validator)
		a.picker.SetSize(a.width, a.height-1)
		return a, a.picker.Init()

	case messages.PickerClosedMsg:
		a.activeView = ViewComments
		return a, nil

	case messages.ImagePickedMsg:
		a.ctrl.SelectImage(msg.CommentID, msg.Ref)
		a.activeView = ViewComments
		a.log.Debug().Int("comment_id", msg.CommentID).Str("ref", string(msg.Ref)).Msg("image selected")
		a.statusBar.SetStatus(fmt.Sprintf("Image set for #%d", msg.CommentID), false)
		a.list.Refresh()
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, a.quit()
		}
		// The picker owns every other key while it is open.
		if a.activeView == ViewComments {
			switch {
			case key.Matches(msg, Keys.Quit):
				return a, a.quit()
			case key.Matches(msg, Keys.Refresh):
				a.ctrl.Retry()
				return a, a.stateChanged()
			}
		}
	}

	// Route to active view.
	var cmd tea.Cmd
	switch a.activeView {
	case ViewImagePicker:
		a.picker, cmd = a.picker.Update(msg)
		cmds = append(cmds, cmd)
	case ViewComments:
		switch a.ctrl.State().(type) {
		case viewstate.Error:
			a.dialog, cmd = a.dialog.Update(msg)
			cmds = append(cmds, cmd)
		case viewstate.Success:
			a.list, cmd = a.list.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	a.statusBar, cmd = a.statusBar.Update(msg)
	cmds = append(cmds, cmd)

	return a, tea.Batch(cmds...)
}

// stateChanged re-reads the controller after a transition.
func (a *App) stateChanged() tea.Cmd {
	state := a.ctrl.State()
	entered := viewstate.Name(state) != a.lastState

	var cmd tea.Cmd
	switch state.(type) {
	case viewstate.Loading:
		a.statusBar.SetStatus("", false)
		if !a.ticking {
			a.ticking = true
			cmd = a.spinner.Tick
		}
	case viewstate.Error:
		if entered {
			a.dialog.Reset()
		}
	case viewstate.Success, viewstate.Empty:
	default:
		panic(fmt.Sprintf("ui: unknown state %T", state))
	}

	a.list.Refresh()
	a.syncStatus()
	return cmd
}

func (a *App) syncStatus() {
	state := a.ctrl.State()
	a.lastState = viewstate.Name(state)

	_, failed := state.(viewstate.Error)
	a.statusBar.SetState(stateLabel(state), failed)

	count := -1
	if s, ok := state.(viewstate.Success); ok {
		count = len(s.Comments)
	}
	a.statusBar.SetCount(count)
	a.statusBar.SetBindings(helpFor(count > 0, failed))
}

func stateLabel(s viewstate.State) string {
	switch s.(type) {
	case viewstate.Loading:
		return "loading"
	case viewstate.Success:
		return "loaded"
	case viewstate.Error:
		return "failed"
	case viewstate.Empty:
		return "empty"
	default:
		panic(fmt.Sprintf("ui: unknown state %T", s))
	}
}

func (a *App) quit() tea.Cmd {
	a.ctrl.Close()
	return tea.Quit
}

// View renders the application.
func (a *App) View() string {
	var content string
	switch a.activeView {
	case ViewImagePicker:
		content = a.picker.View()
	default:
		content = a.stateView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, content, a.statusBar.View())
}

func (a *App) stateView() string {
	switch s := a.ctrl.State().(type) {
	case viewstate.Loading:
		return a.center(a.spinner.View() + " " + LoadingTextStyle.Render(Text(KeyLoadingTitle)))
	case viewstate.Success:
		if len(s.Comments) == 0 {
			return a.center(EmptyStyle.Render(Text(KeyNoComments)))
		}
		return a.list.View()
	case viewstate.Error:
		return a.center(a.dialog.View(Text(s.MessageKey)))
	case viewstate.Empty:
		return a.center(EmptyStyle.Render(Text(KeyNoComments)))
	default:
		panic(fmt.Sprintf("ui: unknown state %T", s))
	}
}

func (a *App) center(s string) string {
	if a.width == 0 || a.height <= 1 {
		return s
	}
	return lipgloss.Place(a.width, a.height-1, lipgloss.Center, lipgloss.Center, s)
}
