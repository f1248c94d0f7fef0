// Package render turns remote comment text into safe, wrapped terminal text.
package render

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"
)

// BodyToText converts a comment body to display text wrapped at width.
//
// Bodies are plain text with embedded newlines and are shown verbatim. Control
// characters other than newline and tab are dropped so a body can never drive
// the terminal.
func BodyToText(raw string, width int) string {
	return wrapText(strings.TrimSpace(sanitize(raw)), width)
}

// Line flattens s to a single sanitised line no wider than width cells.
func Line(s string, width int) string {
	s = strings.Join(strings.Fields(sanitize(s)), " ")
	if width <= 0 {
		return s
	}
	return ansi.Truncate(s, width, "…")
}

// sanitize drops control characters except newline and tab.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

// wrapText performs word wrapping to the given width in terminal cells.
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	var result strings.Builder
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			result.WriteString("\n")
			continue
		}
		lineLen := 0
		for i, word := range words {
			wlen := ansi.StringWidth(word)
			if i > 0 && lineLen+1+wlen > width {
				result.WriteString("\n")
				lineLen = 0
			} else if i > 0 {
				result.WriteString(" ")
				lineLen++
			}
			result.WriteString(word)
			lineLen += wlen
		}
		result.WriteString("\n")
	}
	return strings.TrimRight(result.String(), "\n")
}
