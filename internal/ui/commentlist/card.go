package commentlist

import (
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"

	"github.com/fragmede/commentdeck/internal/api"
	"github.com/fragmede/commentdeck/internal/render"
	"github.com/fragmede/commentdeck/internal/viewstate"
)

const (
	avatarInner = 9
	labelWidth  = 7
	minField    = 10
)

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)

	selectedCardStyle = cardStyle.
				BorderForeground(lipgloss.Color("#FF6600"))

	avatarStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#828282")).
			Width(avatarInner).
			Height(3).
			Align(lipgloss.Center, lipgloss.Center)

	initialsStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6600")).Bold(true)
	imageStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00AFAF"))
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#828282")).Width(labelWidth)
	nameStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Bold(true)
	valueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#CCCCCC"))
)

// renderCard draws one comment. An empty ref shows the default avatar.
func renderCard(c api.Comment, ref viewstate.ImageRef, width int, selected bool) string {
	fieldWidth := width - 4 - (avatarInner + 2) - 1
	if fieldWidth < minField+labelWidth {
		fieldWidth = minField + labelWidth
	}
	valueWidth := fieldWidth - labelWidth

	fields := lipgloss.JoinVertical(lipgloss.Left,
		row("Name:", nameStyle.Render(render.Line(c.Name, valueWidth))),
		row("Email:", valueStyle.Render(render.Line(c.Email, valueWidth))),
		row("ID:", valueStyle.Render(strconv.Itoa(c.ID))),
		row("Body:", valueStyle.Render(render.BodyToText(c.Body, valueWidth))),
	)

	body := lipgloss.JoinHorizontal(lipgloss.Top, avatar(c.Name, ref), " ", fields)

	style := cardStyle
	if selected {
		style = selectedCardStyle
	}
	return style.Width(width - 2).Render(body)
}

func row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), value)
}

func avatar(name string, ref viewstate.ImageRef) string {
	if ref == "" {
		return avatarStyle.Render(initialsStyle.Render(Initials(name)))
	}
	label := render.Line(filepath.Base(string(ref)), avatarInner)
	return avatarStyle.Render(imageStyle.Render("[img]") + "\n" + label)
}

// Initials returns up to two upper-case initials from name, or "?".
func Initials(name string) string {
	var out []rune
	for _, word := range strings.Fields(name) {
		for _, r := range word {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				out = append(out, unicode.ToUpper(r))
				break
			}
		}
		if len(out) == 2 {
			break
		}
	}
	if len(out) == 0 {
		return "?"
	}
	return string(out)
}
