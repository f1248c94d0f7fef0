package messages

import "github.com/fragmede/commentdeck/internal/viewstate"

// View transition messages.
type (
	OpenPickerMsg struct {
		CommentID int
		Name      string
	}
	PickerClosedMsg struct{}
)

// Intent messages forwarded to the view-state machine.
type (
	RetryMsg   struct{}
	DismissMsg struct{}

	ImagePickedMsg struct {
		CommentID int
		Ref       viewstate.ImageRef
	}
)

// StateChangedMsg tells the UI to re-read the controller.
type StateChangedMsg struct{}
