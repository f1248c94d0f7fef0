// Package imagepick validates files chosen as comment images.
package imagepick

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/fragmede/commentdeck/internal/viewstate"
)

// Extensions lists the file types offered by the picker.
var Extensions = []string{".png", ".jpg", ".jpeg", ".gif", ".webp", ".bmp"}

// ErrNotImage is returned for files whose content is not a recognised image.
var ErrNotImage = errors.New("not an image")

// Validator accepts a picked path when it is a readable image file matching
// one of the configured patterns.
type Validator struct {
	patterns []string
}

// NewValidator creates a validator. Patterns are doublestar globs matched
// against the absolute slash-separated path without its leading slash.
func NewValidator(patterns []string) *Validator {
	return &Validator{patterns: patterns}
}

// Check returns the image reference to store for path.
func (v *Validator) Check(path string) (viewstate.ImageRef, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}

	if !v.matches(abs) {
		return "", fmt.Errorf("%s does not match any image pattern", filepath.Base(abs))
	}

	f, err := os.Open(abs)
	if err != nil {
		return "", fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("stat image: %w", err)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%s is not a regular file", filepath.Base(abs))
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read image: %w", err)
	}
	if !strings.HasPrefix(http.DetectContentType(head[:n]), "image/") {
		return "", fmt.Errorf("%s: %w", filepath.Base(abs), ErrNotImage)
	}

	return viewstate.ImageRef(abs), nil
}

func (v *Validator) matches(abs string) bool {
	name := strings.TrimPrefix(filepath.ToSlash(abs), "/")
	lower := strings.ToLower(name)
	for _, p := range v.patterns {
		if ok, _ := doublestar.Match(p, name); ok {
			return true
		}
		if ok, _ := doublestar.Match(p, lower); ok {
			return true
		}
	}
	return false
}
