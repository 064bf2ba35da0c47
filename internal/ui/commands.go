package ui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/ticklist/internal/gateway"
	"github.com/five82/ticklist/internal/todo"
)

// Request results delivered back to Update.

type createdMsg struct {
	fields todo.Fields
	item   todo.Item
}

type updatedMsg struct {
	change todo.Change
	item   todo.Item
}

type deletedMsg struct {
	id todo.ID
}

type loadedMsg struct {
	items []todo.Item
}

type requestFailedMsg struct {
	op     string
	change *todo.Change
	err    error
}

func createCmd(ctx context.Context, gw gateway.Gateway, fields todo.Fields) tea.Cmd {
	return func() tea.Msg {
		item, err := gw.Create(ctx, fields)
		if err != nil {
			return requestFailedMsg{op: "add", err: err}
		}
		return createdMsg{fields: fields, item: item}
	}
}

func updateCmd(ctx context.Context, gw gateway.Gateway, ch todo.Change) tea.Cmd {
	return func() tea.Msg {
		item, err := gw.Update(ctx, ch.ID, ch.Fields)
		if err != nil {
			return requestFailedMsg{op: ch.Kind.String(), change: &ch, err: err}
		}
		return updatedMsg{change: ch, item: item}
	}
}

func deleteCmd(ctx context.Context, gw gateway.Gateway, id todo.ID) tea.Cmd {
	return func() tea.Msg {
		if err := gw.Delete(ctx, id); err != nil {
			return requestFailedMsg{op: "delete", err: err}
		}
		return deletedMsg{id: id}
	}
}

func listCmd(ctx context.Context, gw gateway.Gateway) tea.Cmd {
	return func() tea.Msg {
		items, err := gw.List(ctx)
		if err != nil {
			return requestFailedMsg{op: "reload", err: err}
		}
		return loadedMsg{items: items}
	}
}

// Actions. Each returns the request to run, or nil when the change was
// applied in memory or refused.

func (m *Model) addItem() tea.Cmd {
	if m.Local() {
		if m.list.Add() {
			m.syncInputs()
		}
		return nil
	}
	fields, ok := m.list.PlanAdd()
	if !ok {
		return nil
	}
	m.pending++
	return createCmd(m.ctx, m.gateway, fields)
}

func (m *Model) startEdit() tea.Cmd {
	i := m.selectedIndex()
	if !m.list.StartEdit(i) {
		return nil
	}
	m.syncInputs()
	return nil
}

func (m *Model) saveEdit() tea.Cmd {
	m.list.SetEditDraft(m.editInput.Value())
	if m.Local() {
		if m.list.SaveEdit() {
			m.syncInputs()
		}
		return nil
	}
	ch, ok := m.list.PlanSave()
	if !ok {
		return nil
	}
	m.pending++
	return updateCmd(m.ctx, m.gateway, ch)
}

func (m *Model) toggleSelected() tea.Cmd {
	i := m.selectedIndex()
	if m.Local() {
		m.list.Toggle(i)
		m.clampCursor()
		return nil
	}
	ch, ok := m.list.PlanToggle(i)
	if !ok {
		return nil
	}
	m.clampCursor()
	m.pending++
	return updateCmd(m.ctx, m.gateway, ch)
}

func (m *Model) deleteSelected() tea.Cmd {
	i := m.selectedIndex()
	if m.Local() {
		if m.list.Delete(i) {
			m.clampCursor()
			m.syncInputs()
		}
		return nil
	}
	it, ok := m.list.PlanDelete(i)
	if !ok {
		return nil
	}
	m.pending++
	return deleteCmd(m.ctx, m.gateway, it.ID)
}

func (m *Model) reload() tea.Cmd {
	if m.Local() {
		m.setStatus("local mode, nothing to reload", false)
		return nil
	}
	m.pending++
	return listCmd(m.ctx, m.gateway)
}

// handleResult folds a finished request into the list.
func (m *Model) handleResult(msg tea.Msg) {
	if m.pending > 0 {
		m.pending--
	}

	switch msg := msg.(type) {
	case createdMsg:
		m.list.ApplyCreated(msg.fields, msg.item)
		m.setStatus("", false)

	case updatedMsg:
		if !m.list.ApplyUpdated(msg.change, msg.item) {
			m.log.Debug().
				Str("id", msg.change.ID.String()).
				Str("kind", msg.change.Kind.String()).
				Msg("dropped stale update response")
		}
		m.setStatus("", false)

	case deletedMsg:
		m.list.ApplyDeleted(msg.id)
		m.setStatus("", false)

	case loadedMsg:
		m.list.Replace(msg.items)
		m.setStatus(fmt.Sprintf("reloaded %d items", len(msg.items)), false)

	case requestFailedMsg:
		if msg.change != nil {
			m.list.FailUpdate(*msg.change)
		}
		m.log.Warn().Err(msg.err).Str("op", msg.op).Msg("request failed")
		m.setStatus(fmt.Sprintf("%s failed: %v", msg.op, msg.err), true)
	}

	m.clampCursor()
	m.syncInputs()
}
