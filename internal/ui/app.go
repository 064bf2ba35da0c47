package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/five82/ticklist/internal/gateway"
	"github.com/five82/ticklist/internal/prefs"
	"github.com/five82/ticklist/internal/state"
	"github.com/five82/ticklist/internal/todo"
)

// Focus is the widget receiving keystrokes.
type Focus int

const (
	FocusList Focus = iota
	FocusDraft
)

// Options configures the UI.
type Options struct {
	Context       context.Context
	Gateway       gateway.Gateway // nil keeps items in memory only
	Store         *state.Store    // gateway health and initial load; may be nil
	Endpoint      string          // shown in the header
	Items         []todo.Item     // initial items in local mode
	Tick          time.Duration
	ThemeName     string
	HideCompleted bool
	PrefsPath     string
	Logger        zerolog.Logger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	gateway   gateway.Gateway
	store     *state.Store
	endpoint  string
	prefsPath string
	tick      time.Duration
	log       zerolog.Logger
	keys      keyMap

	// UI state
	theme  Theme
	width  int
	height int
	ready  bool
	focus  Focus
	modal  overlay

	// Data state
	list          *todo.List
	cursor        int // position among visible rows
	hideCompleted bool
	snapshot      state.Snapshot
	appliedGen    uint64
	pending       int
	status        string
	statusIsError bool

	// Widgets
	draftInput textinput.Model
	editInput  textinput.Model
	listView   viewport.Model
	spinner    spinner.Model
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	tick := opts.Tick
	if tick <= 0 {
		tick = DefaultUIInterval
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	theme := GetTheme(opts.ThemeName)

	draft := textinput.New()
	draft.Placeholder = "What needs to be done?"
	draft.Prompt = "+ "
	draft.CharLimit = MaxTextLength

	edit := textinput.New()
	edit.Prompt = ""
	edit.CharLimit = MaxTextLength

	spin := spinner.New(spinner.WithSpinner(spinner.MiniDot))

	m := Model{
		ctx:           ctx,
		gateway:       opts.Gateway,
		store:         opts.Store,
		endpoint:      opts.Endpoint,
		prefsPath:     prefsPath,
		tick:          tick,
		log:           opts.Logger,
		keys:          DefaultKeyMap(),
		theme:         theme,
		list:          todo.NewList(opts.Items),
		hideCompleted: opts.HideCompleted,
		draftInput:    draft,
		editInput:     edit,
		listView:      viewport.New(0, 0),
		spinner:       spin,
	}
	m.applyThemeToInputs()
	if m.list.Len() == 0 {
		m.focusDraft()
	}
	return m
}

// Local reports whether items are kept in memory only.
func (m Model) Local() bool {
	return m.gateway == nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		textinput.Blink,
		m.spinner.Tick,
		tickCmd(m.tick),
	}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		m.applySnapshot(state.Snapshot(msg))
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case createdMsg, updatedMsg, deletedMsg, loadedMsg, requestFailedMsg:
		m.handleResult(msg)
		return m, nil
	}

	return m.updateFocusedInput(msg)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.modal != nil {
		return m.modal.Render(m.theme, m.width, m.height)
	}
	return m.renderMain()
}

// handleKey routes keyboard input to the modal, the edit session, the draft
// input or the list, in that order.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if !m.statusIsError {
		m.status = ""
	}

	if m.modal != nil {
		next, dismissed := m.modal.HandleKey(msg)
		m.modal = next
		if dismissed {
			m.modal = nil
		}
		return m, nil
	}

	if _, editing := m.list.Editing(); editing {
		return m.handleEditKey(msg)
	}
	if m.focus == FocusDraft {
		return m.handleDraftKey(msg)
	}
	return m.handleListKey(msg)
}

func (m Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		return m, m.saveEdit()
	case key.Matches(msg, m.keys.Cancel):
		m.list.CancelEdit()
		m.syncInputs()
		return m, nil
	}
	var cmd tea.Cmd
	m.editInput, cmd = m.editInput.Update(msg)
	m.list.SetEditDraft(m.editInput.Value())
	return m, cmd
}

func (m Model) handleDraftKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		return m, m.addItem()
	case key.Matches(msg, m.keys.Cancel), msg.Type == tea.KeyTab:
		m.focusList()
		return m, nil
	case msg.Type == tea.KeyDown && m.visibleCount() > 0:
		m.focusList()
		return m, nil
	}
	var cmd tea.Cmd
	m.draftInput, cmd = m.draftInput.Update(msg)
	m.list.SetDraft(m.draftInput.Value())
	return m, cmd
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.modal = helpOverlay{keys: m.keys}
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.applyThemeToInputs()
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.HideCompleted):
		m.hideCompleted = !m.hideCompleted
		m.clampCursor()
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		return m, m.reload()

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		} else {
			m.focusDraft()
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < m.visibleCount()-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.cursor = maxInt(m.visibleCount()-1, 0)

	case key.Matches(msg, m.keys.NewItem):
		m.focusDraft()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Toggle):
		return m, m.toggleSelected()

	case key.Matches(msg, m.keys.Edit):
		return m, m.startEdit()

	case key.Matches(msg, m.keys.Delete):
		return m, m.deleteSelected()
	}
	return m, nil
}

// updateFocusedInput forwards non-key messages such as cursor blinks.
func (m Model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.editInput.Focused():
		m.editInput, cmd = m.editInput.Update(msg)
	case m.draftInput.Focused():
		m.draftInput, cmd = m.draftInput.Update(msg)
	}
	return m, cmd
}

// handleTick processes the refresh tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	cmds = append(cmds, tickCmd(m.tick))
	return m, tea.Batch(cmds...)
}

// applySnapshot records gateway health and swaps in a newly loaded
// collection. The first load keeps items the server confirmed before the
// load response arrived.
func (m *Model) applySnapshot(snap state.Snapshot) {
	m.snapshot = snap
	if snap.Loaded && snap.Generation > m.appliedGen {
		items := snap.Items
		if m.appliedGen == 0 {
			items = keepUnlisted(snap.Items, m.list.Items())
		}
		m.appliedGen = snap.Generation
		m.list.Replace(items)
		m.clampCursor()
		m.syncInputs()
		m.log.Debug().Int("items", len(snap.Items)).Msg("applied loaded items")
	}
}

// keepUnlisted appends the identified local items missing from loaded.
func keepUnlisted(loaded, local []todo.Item) []todo.Item {
	seen := make(map[todo.ID]bool, len(loaded))
	for _, it := range loaded {
		seen[it.ID] = true
	}
	out := loaded
	for _, it := range local {
		if it.ID.IsZero() || seen[it.ID] {
			continue
		}
		if len(out) == len(loaded) {
			out = append([]todo.Item(nil), loaded...)
		}
		out = append(out, it)
	}
	return out
}

// selectedIndex returns the list index under the cursor, or -1.
func (m Model) selectedIndex() int {
	rows := m.visibleRows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return -1
	}
	return rows[m.cursor]
}

// visibleRows maps display rows to list indices.
func (m Model) visibleRows() []int {
	rows := make([]int, 0, m.list.Len())
	edit, editing := m.list.Editing()
	for i, it := range m.list.Items() {
		if m.hideCompleted && it.Completed && !(editing && edit.Index == i) {
			continue
		}
		rows = append(rows, i)
	}
	return rows
}

func (m Model) visibleCount() int {
	return len(m.visibleRows())
}

func (m *Model) clampCursor() {
	n := m.visibleCount()
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// moveCursorTo places the cursor on list index i if it is visible.
func (m *Model) moveCursorTo(i int) {
	for row, idx := range m.visibleRows() {
		if idx == i {
			m.cursor = row
			return
		}
	}
	m.clampCursor()
}

func (m *Model) focusDraft() {
	m.focus = FocusDraft
	m.draftInput.Focus()
}

func (m *Model) focusList() {
	m.focus = FocusList
	m.draftInput.Blur()
	m.clampCursor()
}

// syncInputs makes the widgets reflect the list: the draft input shows the
// current draft and the edit input is focused only while a session is open.
func (m *Model) syncInputs() {
	if m.draftInput.Value() != m.list.Draft() {
		m.draftInput.SetValue(m.list.Draft())
	}
	if s, ok := m.list.Editing(); ok {
		if !m.editInput.Focused() {
			m.editInput.SetValue(s.Draft)
			m.editInput.CursorEnd()
			m.editInput.Focus()
		}
		m.draftInput.Blur()
		return
	}
	m.editInput.Blur()
	if m.focus == FocusDraft {
		m.draftInput.Focus()
	}
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusIsError = isErr
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name, HideCompleted: m.hideCompleted}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.log.Warn().Err(err).Msg("save prefs failed")
		m.setStatus("could not save preferences", true)
	}
}

func (m *Model) applyThemeToInputs() {
	styles := m.theme.Styles()
	m.draftInput.PromptStyle = styles.AccentText
	m.draftInput.TextStyle = styles.Text
	m.draftInput.PlaceholderStyle = styles.FaintText
	m.editInput.TextStyle = styles.Text
	m.spinner.Style = styles.WarningText
}

func (m *Model) resize() {
	m.draftInput.Width = maxInt(m.width-6, 10)
	m.editInput.Width = maxInt(m.width-10, 10)
	m.listView.Width = m.width
	m.listView.Height = maxInt(m.height-chromeHeight, 1)
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderDraft())
	b.WriteString("\n")
	b.WriteString(m.renderList())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Background)).
		Width(m.width).
		Render(b.String())
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Context != nil {
		programOpts = append(programOpts, tea.WithContext(opts.Context))
	}
	p := tea.NewProgram(m, programOpts...)
	_, err := p.Run()
	return err
}
