// Package viewstate holds the comment screen's presentation state and the
// per-comment image selections, and is the only place either is mutated.
package viewstate

import (
	"fmt"

	"github.com/fragmede/commentdeck/internal/api"
)

// MessageKey identifies a user-facing message. Resolving it to text is the
// presentation's job.
type MessageKey string

// KeyFetchFailed is the only message the machine itself produces.
const KeyFetchFailed MessageKey = "post_comments_failure_error"

// State is one of Loading, Success, Error or Empty. Consumers switch on the
// concrete type and treat anything else as a programming error.
type State interface {
	state()
}

// Loading means a fetch is pending or about to start.
type Loading struct{}

// Success carries the fetched comments in server order. Comments is never nil.
type Success struct {
	Comments []api.Comment
}

// Error carries the key of the message to show.
type Error struct {
	MessageKey MessageKey
}

// Empty means there is nothing to show.
type Empty struct{}

func (Loading) state() {}
func (Success) state() {}
func (Error) state()   {}
func (Empty) state()   {}

// Name returns a short label for logs and the status bar.
func Name(s State) string {
	switch s := s.(type) {
	case Loading:
		return "loading"
	case Success:
		return fmt.Sprintf("success(%d)", len(s.Comments))
	case Error:
		return "error"
	case Empty:
		return "empty"
	default:
		panic(fmt.Sprintf("viewstate: unknown state %T", s))
	}
}

// ImageRef is an opaque local image reference, a file path here. The zero
// value means the default image.
type ImageRef string
