package ui

import "github.com/fragmede/commentdeck/internal/viewstate"

// Message keys used only by the presentation.
const (
	KeyRetryButton  viewstate.MessageKey = "retry_button"
	KeyOKButton     viewstate.MessageKey = "ok_button"
	KeyNoComments   viewstate.MessageKey = "no_comments_loaded"
	KeyPickImage    viewstate.MessageKey = "pick_image_title"
	KeyLoadingTitle viewstate.MessageKey = "loading_comments"
)

var catalog = map[viewstate.MessageKey]string{
	viewstate.KeyFetchFailed: "Could not load comments. Check your connection and try again.",
	KeyRetryButton:           "Retry",
	KeyOKButton:              "OK",
	KeyNoComments:            "No comments loaded",
	KeyPickImage:             "Choose an image for",
	KeyLoadingTitle:          "Loading comments...",
}

// Text resolves a message key to user-facing text. Unknown keys render as
// themselves so a missing entry is visible rather than blank.
func Text(key viewstate.MessageKey) string {
	if s, ok := catalog[key]; ok {
		return s
	}
	return string(key)
}
