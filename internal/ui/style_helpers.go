package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// surface paints styled segments onto one background color. Lipgloss resets
// the background after every rendered segment, so the gaps between segments
// are painted explicitly.
type surface struct {
	bg  lipgloss.Color
	gap string
}

func newSurface(color string) surface {
	bg := lipgloss.Color(color)
	return surface{bg: bg, gap: lipgloss.NewStyle().Background(bg).Render(" ")}
}

// Text renders text in style. Each word is rendered on its own and rejoined
// with painted spaces; runs of spaces are kept.
func (s surface) Text(text string, style lipgloss.Style) string {
	if text == "" {
		return ""
	}
	st := style.Background(s.bg)
	words := strings.Split(text, " ")
	for i, w := range words {
		if w != "" {
			words[i] = st.Render(w)
		}
	}
	return strings.Join(words, s.gap)
}

// Gap is one painted space.
func (s surface) Gap() string {
	return s.gap
}

// Plain paints text with the background only.
func (s surface) Plain(text string) string {
	return lipgloss.NewStyle().Background(s.bg).Render(text)
}

func (s surface) Join(parts []string, sep string) string {
	return strings.Join(parts, s.Plain(sep))
}

// Fill pads a rendered line to width.
func (s surface) Fill(line string, width int) string {
	return lipgloss.NewStyle().Background(s.bg).Width(width).Render(line)
}
