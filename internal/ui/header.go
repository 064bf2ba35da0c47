package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// connection returns the badge key and label for the header.
func (m Model) connection() (status, label string) {
	switch {
	case m.Local():
		return "local", "LOCAL"
	case m.snapshot.IsOffline():
		return "offline", "OFFLINE"
	case !m.snapshot.Loaded:
		return "busy", "LOADING"
	case m.pending > 0 || m.snapshot.InFlight > 0:
		return "busy", "SYNCING"
	default:
		return "online", "ONLINE"
	}
}

// renderHeader renders the status bar.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := newSurface(m.theme.Surface)
	compact := m.width < LayoutCompactWidth

	status, label := m.connection()
	badge := styles.StatusStyle(status).Render(label)
	if status == "busy" {
		badge = bg.Text(m.spinner.View(), styles.WarningText) + bg.Gap() + badge
	}

	total := m.list.Len()
	done := m.list.CompletedCount()
	parts := []string{
		bg.Text("ticklist", styles.Logo),
		badge,
		bg.Text(fmt.Sprintf("%d", total), styles.Text) + bg.Gap() +
			bg.Text(ternary(total == 1, "item", "items"), styles.MutedText),
		bg.Text(fmt.Sprintf("%d", done), styles.SuccessText) + bg.Gap() +
			bg.Text("done", styles.MutedText),
	}

	if m.hideCompleted && done > 0 {
		parts = append(parts, bg.Text("completed hidden", styles.FaintText))
	}
	if !compact && m.endpoint != "" {
		parts = append(parts, bg.Text(truncateMiddle(m.endpoint, 40), styles.FaintText))
	}
	if m.snapshot.LastError != nil && !m.Local() {
		maxErr := 60
		if compact {
			maxErr = 30
		}
		parts = append(parts, bg.Text(truncate(m.snapshot.LastError.Error(), maxErr), styles.DangerText))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// renderFooter shows the last status message, or key hints when there is
// nothing to report.
func (m Model) renderFooter() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := newSurface(m.theme.Surface)

	if m.status != "" {
		style := styles.InfoText
		if m.statusIsError {
			style = styles.DangerText
		}
		return styles.Footer.Width(m.width).Render(
			bg.Text(truncate(m.status, maxInt(m.width-4, 10)), style))
	}

	var bindings []key.Binding
	switch {
	case m.isEditing():
		bindings = []key.Binding{m.keys.Submit, m.keys.Cancel}
	case m.focus == FocusDraft:
		bindings = []key.Binding{m.keys.Submit, m.keys.Cancel}
	default:
		bindings = m.keys.ShortHelp()
		if m.width >= LayoutCompactWidth {
			bindings = append(bindings, m.keys.HideCompleted, m.keys.CycleTheme)
		}
	}

	colon := bg.Plain(":")
	segments := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		segments = append(segments,
			bg.Text(h.Key, styles.AccentText)+colon+bg.Text(h.Desc, styles.MutedText))
	}
	return styles.Footer.Width(m.width).Render(strings.Join(segments, bg.Plain("  ")))
}

func (m Model) isEditing() bool {
	_, ok := m.list.Editing()
	return ok
}
