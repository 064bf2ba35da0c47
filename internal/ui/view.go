package ui

import (
	"strings"

	"github.com/five82/ticklist/internal/todo"
)

// renderDraft renders the new item input line.
func (m Model) renderDraft() string {
	styles := m.theme.Styles().WithBackground(m.theme.Background)
	bg := newSurface(m.theme.Background)
	line := m.draftInput.View()
	if m.focus != FocusDraft || m.isEditing() {
		draft := m.list.Draft()
		if draft == "" {
			line = bg.Text(m.draftInput.Prompt, styles.FaintText) +
				bg.Text(m.draftInput.Placeholder, styles.FaintText)
		} else {
			line = bg.Text(m.draftInput.Prompt, styles.MutedText) + bg.Text(draft, styles.MutedText)
		}
	}
	return bg.Fill(" "+line, m.width)
}

// renderList renders the visible items inside the list viewport, scrolled so
// the cursor row stays on screen.
func (m Model) renderList() string {
	styles := m.theme.Styles().WithBackground(m.theme.Background)
	bg := newSurface(m.theme.Background)

	rows := m.visibleRows()
	vp := m.listView
	vp.Width = m.width
	vp.Height = maxInt(m.height-chromeHeight, 1)

	if len(rows) == 0 {
		empty := "Nothing to do."
		if m.hideCompleted && m.list.Len() > 0 {
			empty = "All done. Press H to show completed items."
		}
		vp.SetContent(bg.Fill("  "+bg.Text(empty, styles.FaintText), m.width))
		return vp.View()
	}

	edit, editing := m.list.Editing()
	lines := make([]string, 0, len(rows))
	for row, idx := range rows {
		it, _ := m.list.Item(idx)
		selected := row == m.cursor && m.focus == FocusList
		lines = append(lines, m.renderItem(it, selected, editing && edit.Index == idx, styles, bg))
	}
	vp.SetContent(strings.Join(lines, "\n"))

	if m.cursor >= vp.Height {
		vp.SetYOffset(m.cursor - vp.Height + 1)
	}
	return vp.View()
}

func (m Model) renderItem(it todo.Item, selected, editing bool, styles Styles, bg surface) string {
	marker := bg.Text(ternary(selected, ">", " "), styles.AccentText)
	checkStyle := styles.MutedText
	if it.Completed {
		checkStyle = styles.SuccessText
	}
	check := bg.Text(ternary(it.Completed, "[x]", "[ ]"), checkStyle)

	if editing {
		return bg.Fill(marker+bg.Gap()+check+bg.Gap()+m.editInput.View(), m.width)
	}

	text := truncate(it.Text, maxInt(m.width-8, 10))
	textStyle := styles.Text
	if it.Completed {
		textStyle = styles.Done
	}
	line := marker + bg.Gap() + check + bg.Gap() + bg.Text(text, textStyle)
	if selected {
		sel := newSurface(m.theme.SelectionBg)
		selStyles := m.theme.Styles().WithBackground(m.theme.SelectionBg)
		textStyle = selStyles.Selected
		if it.Completed {
			textStyle = selStyles.Done
		}
		line = sel.Text(">", selStyles.AccentText) + sel.Gap() +
			sel.Text(ternary(it.Completed, "[x]", "[ ]"), selStyles.Selected) + sel.Gap() +
			sel.Text(text, textStyle)
		return sel.Fill(line, m.width)
	}
	return bg.Fill(line, m.width)
}
