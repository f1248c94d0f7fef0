package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fragmede/commentdeck/internal/render"
	"github.com/fragmede/commentdeck/internal/viewstate"
)

// ErrFetchFailed is returned by RunPlain when loading ends in the error state.
var ErrFetchFailed = errors.New("comments could not be loaded")

// RunPlain loads comments once through ctrl and writes them to w as text.
// It is used when stdout is not a terminal.
func RunPlain(ctx context.Context, ctrl Controller, w io.Writer, width int) error {
	changed := make(chan struct{}, 1)
	ctrl.SetOnChange(func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	ctrl.Fetch()

	for {
		state := ctrl.State()
		if _, loading := state.(viewstate.Loading); !loading {
			return WritePlain(w, state, ctrl.Image, width)
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("waiting for comments: %w", ctx.Err())
		case <-changed:
		}
	}
}

// WritePlain renders state without styling.
func WritePlain(w io.Writer, state viewstate.State, image func(int) (viewstate.ImageRef, bool), width int) error {
	var sb strings.Builder
	var result error

	switch s := state.(type) {
	case viewstate.Loading:
		sb.WriteString(Text(KeyLoadingTitle) + "\n")
	case viewstate.Success:
		if len(s.Comments) == 0 {
			sb.WriteString(Text(KeyNoComments) + "\n")
			break
		}
		for i, c := range s.Comments {
			if i > 0 {
				sb.WriteString("\n")
			}
			fmt.Fprintf(&sb, "ID:    %d\n", c.ID)
			fmt.Fprintf(&sb, "Name:  %s\n", render.Line(c.Name, width))
			fmt.Fprintf(&sb, "Email: %s\n", render.Line(c.Email, width))
			if ref, ok := image(c.ID); ok && ref != "" {
				fmt.Fprintf(&sb, "Image: %s\n", ref)
			}
			body := render.BodyToText(c.Body, max(width-7, 20))
			for j, line := range strings.Split(body, "\n") {
				if j == 0 {
					sb.WriteString("Body:  " + line + "\n")
				} else {
					sb.WriteString("       " + line + "\n")
				}
			}
		}
	case viewstate.Error:
		sb.WriteString(Text(s.MessageKey) + "\n")
		result = ErrFetchFailed
	case viewstate.Empty:
		sb.WriteString(Text(KeyNoComments) + "\n")
	default:
		panic(fmt.Sprintf("ui: unknown state %T", s))
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("write comments: %w", err)
	}
	return result
}
