package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// overlay replaces the main view until a key dismisses it. Keys never reach
// the list or the inputs while an overlay is open.
type overlay interface {
	// HandleKey returns the overlay to keep showing and whether msg dismissed it.
	HandleKey(msg tea.KeyMsg) (overlay, bool)
	Render(theme Theme, width, height int) string
}
