package ui

import (
	"context"
	"errors"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/ticklist/internal/prefs"
	"github.com/five82/ticklist/internal/state"
	"github.com/five82/ticklist/internal/todo"
)

type fakeGateway struct {
	nextID    int
	createErr error
	updateErr error
	deleteErr error
	calls     []string
}

func (g *fakeGateway) List(context.Context) ([]todo.Item, error) {
	g.calls = append(g.calls, "list")
	return []todo.Item{{ID: "7", Text: "from server"}}, nil
}

func (g *fakeGateway) Create(_ context.Context, fields todo.Fields) (todo.Item, error) {
	g.calls = append(g.calls, "create")
	if g.createErr != nil {
		return todo.Item{}, g.createErr
	}
	g.nextID++
	return todo.Item{ID: todo.ID(strconv.Itoa(g.nextID)), Text: fields.Text, Completed: fields.Completed}, nil
}

func (g *fakeGateway) Update(_ context.Context, id todo.ID, fields todo.Fields) (todo.Item, error) {
	g.calls = append(g.calls, "update "+id.String())
	if g.updateErr != nil {
		return todo.Item{}, g.updateErr
	}
	return todo.Item{ID: id, Text: fields.Text, Completed: fields.Completed}, nil
}

func (g *fakeGateway) Delete(_ context.Context, id todo.ID) error {
	g.calls = append(g.calls, "delete "+id.String())
	return g.deleteErr
}

func newTestModel(t *testing.T, opts Options) Model {
	t.Helper()
	if opts.PrefsPath == "" {
		opts.PrefsPath = filepath.Join(t.TempDir(), "prefs.toml")
	}
	m := New(opts)
	m, _ = update(m, tea.WindowSizeMsg{Width: 100, Height: 20})
	return m
}

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func keyPress(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func press(m Model, keys ...string) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		m, cmd = update(m, keyPress(k))
	}
	return m, cmd
}

// run executes a request command and feeds its result back into the model.
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a request command, got nil")
	}
	m, _ = update(m, cmd())
	return m
}

func itemTexts(m Model) []string {
	var out []string
	for _, it := range m.list.Items() {
		out = append(out, it.Text)
	}
	return out
}

func TestLocalAddToggleEditDelete(t *testing.T) {
	m := newTestModel(t, Options{})
	if m.focus != FocusDraft {
		t.Fatalf("focus = %v, want draft for an empty list", m.focus)
	}

	m, _ = press(m, "Buy milk", "enter")
	if got := itemTexts(m); len(got) != 1 || got[0] != "Buy milk" {
		t.Fatalf("items = %v, want [Buy milk]", got)
	}
	if m.list.Draft() != "" || m.draftInput.Value() != "" {
		t.Fatalf("draft = %q / input %q, want both cleared", m.list.Draft(), m.draftInput.Value())
	}

	m, _ = press(m, "esc", "space")
	if it, _ := m.list.Item(0); !it.Completed {
		t.Fatal("space did not complete the item")
	}

	m, _ = press(m, "e", " today", "enter")
	if it, _ := m.list.Item(0); it.Text != "Buy milk today" || !it.Completed {
		t.Fatalf("item after edit = %+v", it)
	}
	if m.isEditing() {
		t.Fatal("edit session still open after save")
	}

	m, _ = press(m, "d")
	if m.list.Len() != 0 {
		t.Fatalf("items after delete = %v", itemTexts(m))
	}
}

func TestLocalBlankDraftIgnored(t *testing.T) {
	m := newTestModel(t, Options{})
	m, _ = press(m, "   ", "enter")
	if m.list.Len() != 0 {
		t.Fatalf("blank draft added items: %v", itemTexts(m))
	}
	if m.list.Draft() != "   " {
		t.Fatalf("draft = %q, want it kept", m.list.Draft())
	}
}

func TestLocalEditCancelAndBlankSave(t *testing.T) {
	m := newTestModel(t, Options{Items: []todo.Item{{Text: "walk dog"}}})

	m, _ = press(m, "e")
	if !m.isEditing() {
		t.Fatal("e did not start an edit session")
	}
	m, _ = press(m, "!!", "esc")
	if m.isEditing() {
		t.Fatal("esc did not close the session")
	}
	if got := itemTexts(m); got[0] != "walk dog" {
		t.Fatalf("cancel changed the item: %v", got)
	}

	m, _ = press(m, "e")
	m.editInput.SetValue("  ")
	m, _ = press(m, "enter")
	if !m.isEditing() {
		t.Fatal("blank save closed the session")
	}
	if got := itemTexts(m); got[0] != "walk dog" {
		t.Fatalf("blank save changed the item: %v", got)
	}
}

func TestNavigationMovesCursor(t *testing.T) {
	m := newTestModel(t, Options{Items: []todo.Item{{Text: "a"}, {Text: "b"}, {Text: "c"}}})
	m, _ = press(m, "j", "j", "j")
	if m.cursor != 2 {
		t.Fatalf("cursor = %d, want 2", m.cursor)
	}
	m, _ = press(m, "g")
	if m.cursor != 0 {
		t.Fatalf("cursor after g = %d, want 0", m.cursor)
	}
	m, _ = press(m, "G", "space")
	if it, _ := m.list.Item(2); !it.Completed {
		t.Fatal("toggle did not hit the selected item")
	}
	m, _ = press(m, "g", "k")
	if m.focus != FocusDraft {
		t.Fatal("moving above the first row should focus the draft input")
	}
}

func TestGatewayAddSuccess(t *testing.T) {
	gw := &fakeGateway{}
	m := newTestModel(t, Options{Gateway: gw})

	m, cmd := press(m, "Pay bills", "enter")
	if m.list.Len() != 0 {
		t.Fatal("item added before the server confirmed")
	}
	m = run(t, m, cmd)

	it, ok := m.list.Item(0)
	if !ok || it.ID != "1" || it.Text != "Pay bills" || it.Completed {
		t.Fatalf("item = %+v, want server item 1", it)
	}
	if m.list.Draft() != "" {
		t.Fatalf("draft = %q, want cleared", m.list.Draft())
	}
}

func TestGatewayAddFailureKeepsDraft(t *testing.T) {
	gw := &fakeGateway{createErr: errors.New("boom")}
	m := newTestModel(t, Options{Gateway: gw})

	m, cmd := press(m, "Pay bills", "enter")
	m = run(t, m, cmd)

	if m.list.Len() != 0 {
		t.Fatalf("items = %v, want none", itemTexts(m))
	}
	if m.list.Draft() != "Pay bills" || m.draftInput.Value() != "Pay bills" {
		t.Fatalf("draft = %q, want it kept", m.list.Draft())
	}
	if !m.statusIsError || !strings.Contains(m.status, "add failed") {
		t.Fatalf("status = %q, want add failure", m.status)
	}
}

func TestGatewayToggleRollsBackOnFailure(t *testing.T) {
	gw := &fakeGateway{updateErr: errors.New("unavailable")}
	m := newTestModel(t, Options{Gateway: gw, Items: []todo.Item{{ID: "1", Text: "a"}}})

	m, cmd := press(m, "space")
	if it, _ := m.list.Item(0); !it.Completed {
		t.Fatal("toggle not shown before the response")
	}
	m = run(t, m, cmd)
	if it, _ := m.list.Item(0); it.Completed {
		t.Fatal("failed toggle was not rolled back")
	}
	if !m.statusIsError {
		t.Fatal("failure not reported")
	}
}

func TestGatewayStaleToggleResponseDropped(t *testing.T) {
	gw := &fakeGateway{}
	m := newTestModel(t, Options{Gateway: gw, Items: []todo.Item{{ID: "1", Text: "a"}}})

	m, first := press(m, "space")
	m, second := press(m, "space")

	m = run(t, m, second)
	m = run(t, m, first)

	if it, _ := m.list.Item(0); it.Completed {
		t.Fatal("older response overwrote the newer toggle")
	}
}

func TestGatewaySaveClosesSessionOnSuccess(t *testing.T) {
	gw := &fakeGateway{}
	m := newTestModel(t, Options{Gateway: gw, Items: []todo.Item{{ID: "3", Text: "call mom"}}})

	m, cmd := press(m, "e", " tonight", "enter")
	if !m.isEditing() {
		t.Fatal("session closed before the server answered")
	}
	m = run(t, m, cmd)
	if m.isEditing() {
		t.Fatal("session still open after a successful save")
	}
	if got := itemTexts(m); got[0] != "call mom tonight" {
		t.Fatalf("items = %v", got)
	}
	if gw.calls[len(gw.calls)-1] != "update 3" {
		t.Fatalf("calls = %v", gw.calls)
	}
}

func TestGatewaySaveFailureKeepsSession(t *testing.T) {
	gw := &fakeGateway{updateErr: errors.New("conflict")}
	m := newTestModel(t, Options{Gateway: gw, Items: []todo.Item{{ID: "3", Text: "call mom"}}})

	m, cmd := press(m, "e", " tonight", "enter")
	m = run(t, m, cmd)

	if !m.isEditing() {
		t.Fatal("failed save closed the edit session")
	}
	if got := itemTexts(m); got[0] != "call mom" {
		t.Fatalf("items = %v, want text unchanged", got)
	}
	sess, _ := m.list.Editing()
	if sess.Draft != "call mom tonight" || m.editInput.Value() != "call mom tonight" {
		t.Fatalf("edit draft = %q / input %q, want typed text kept", sess.Draft, m.editInput.Value())
	}
	if !m.statusIsError || !strings.Contains(m.status, "save failed") {
		t.Fatalf("status = %q, want save failure", m.status)
	}
}

func TestGatewayDeleteWaitsForServer(t *testing.T) {
	gw := &fakeGateway{}
	m := newTestModel(t, Options{Gateway: gw, Items: []todo.Item{{ID: "1", Text: "a"}, {ID: "2", Text: "b"}}})

	m, cmd := press(m, "j", "d")
	if m.list.Len() != 2 {
		t.Fatal("item removed before the server confirmed")
	}
	m = run(t, m, cmd)
	if got := itemTexts(m); len(got) != 1 || got[0] != "a" {
		t.Fatalf("items = %v, want [a]", got)
	}
	if m.cursor != 0 {
		t.Fatalf("cursor = %d, want clamped to 0", m.cursor)
	}
}

func TestGatewayDeleteFailureKeepsItem(t *testing.T) {
	gw := &fakeGateway{deleteErr: errors.New("nope")}
	m := newTestModel(t, Options{Gateway: gw, Items: []todo.Item{{ID: "1", Text: "a"}}})

	m, cmd := press(m, "d")
	m = run(t, m, cmd)
	if m.list.Len() != 1 || !strings.Contains(m.status, "delete failed") {
		t.Fatalf("items = %v status = %q", itemTexts(m), m.status)
	}
}

func TestReload(t *testing.T) {
	gw := &fakeGateway{}
	m := newTestModel(t, Options{Gateway: gw, Items: []todo.Item{{ID: "1", Text: "a"}}})

	m, cmd := press(m, "r")
	m = run(t, m, cmd)
	if got := itemTexts(m); len(got) != 1 || got[0] != "from server" {
		t.Fatalf("items = %v, want reloaded list", got)
	}

	local := newTestModel(t, Options{Items: []todo.Item{{Text: "a"}}})
	local, cmd = press(local, "r")
	if cmd != nil {
		t.Fatal("reload in local mode issued a request")
	}
	if !strings.Contains(local.status, "local mode") {
		t.Fatalf("status = %q", local.status)
	}
}

func TestSnapshotReplacesListOncePerGeneration(t *testing.T) {
	store := &state.Store{}
	m := newTestModel(t, Options{Gateway: &fakeGateway{}, Store: store})

	store.SetItems([]todo.Item{{ID: "1", Text: "loaded"}})
	m, _ = update(m, snapshotMsg(store.Snapshot()))
	if got := itemTexts(m); len(got) != 1 || got[0] != "loaded" {
		t.Fatalf("items = %v, want loaded items", got)
	}

	m.list.Toggle(0)
	m, _ = update(m, snapshotMsg(store.Snapshot()))
	if it, _ := m.list.Item(0); !it.Completed {
		t.Fatal("same generation replaced the list again")
	}
}

func TestFirstSnapshotKeepsItemsCreatedBeforeLoad(t *testing.T) {
	store := &state.Store{}
	gw := &fakeGateway{nextID: 8}
	m := newTestModel(t, Options{Gateway: gw, Store: store})

	m, cmd := press(m, "Pay bills", "enter")
	m = run(t, m, cmd)

	store.SetItems([]todo.Item{{ID: "7", Text: "from server"}})
	m, _ = update(m, snapshotMsg(store.Snapshot()))
	if got := itemTexts(m); len(got) != 2 || got[0] != "from server" || got[1] != "Pay bills" {
		t.Fatalf("items = %v, want [from server Pay bills]", got)
	}

	store.SetItems([]todo.Item{{ID: "7", Text: "from server"}, {ID: "9", Text: "Pay bills"}})
	m, _ = update(m, snapshotMsg(store.Snapshot()))
	if got := itemTexts(m); len(got) != 2 {
		t.Fatalf("items = %v, want the created item listed once", got)
	}

	store.SetItems(nil)
	m, _ = update(m, snapshotMsg(store.Snapshot()))
	if m.list.Len() != 0 {
		t.Fatalf("items = %v, want later loads to replace the list", itemTexts(m))
	}
}

func TestHideCompletedFiltersRowsAndSavesPrefs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	m := newTestModel(t, Options{
		PrefsPath: path,
		Items:     []todo.Item{{Text: "a"}, {Text: "b", Completed: true}, {Text: "c"}},
	})

	m, _ = press(m, "H")
	rows := m.visibleRows()
	if len(rows) != 2 || rows[0] != 0 || rows[1] != 2 {
		t.Fatalf("visible rows = %v, want [0 2]", rows)
	}
	if !prefs.Load(path).HideCompleted {
		t.Fatal("hide_completed not saved")
	}

	m, _ = press(m, "j", "space")
	if rows := m.visibleRows(); len(rows) != 1 || rows[0] != 0 {
		t.Fatalf("visible rows after completing c = %v, want [0]", rows)
	}
	if m.cursor != 0 {
		t.Fatalf("cursor = %d, want clamped to 0", m.cursor)
	}
}

func TestCycleThemeSavesPrefs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	m := newTestModel(t, Options{PrefsPath: path, ThemeName: "Nightfox", Items: []todo.Item{{Text: "a"}}})

	m, _ = press(m, "T")
	if m.theme.Name != "Kanagawa" {
		t.Fatalf("theme = %q, want Kanagawa", m.theme.Name)
	}
	if got := prefs.Load(path).Theme; got != "Kanagawa" {
		t.Fatalf("saved theme = %q, want Kanagawa", got)
	}
}

func TestHelpOverlay(t *testing.T) {
	m := newTestModel(t, Options{Items: []todo.Item{{Text: "a"}}})
	m, _ = press(m, "?")
	if m.modal == nil {
		t.Fatal("help not shown")
	}
	if !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Fatal("help view missing title")
	}
	m, _ = press(m, "x")
	if m.modal != nil {
		t.Fatal("key did not close help")
	}
	if it, _ := m.list.Item(0); it.Completed {
		t.Fatal("key closing help was also handled by the list")
	}
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, Options{Items: []todo.Item{{Text: "a"}}})
	_, cmd := press(m, "q")
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("q did not quit")
	}

	m = newTestModel(t, Options{})
	m, _ = press(m, "q")
	if m.list.Draft() != "q" {
		t.Fatalf("q in the draft input should be typed, draft = %q", m.list.Draft())
	}
}

func TestViewShowsItemsAndBadge(t *testing.T) {
	m := newTestModel(t, Options{Items: []todo.Item{{Text: "Buy milk"}, {Text: "Walk dog", Completed: true}}})
	view := m.View()
	for _, want := range []string{"ticklist", "LOCAL", "Buy milk", "Walk dog", "[x]", "[ ]"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}

	gw := newTestModel(t, Options{Gateway: &fakeGateway{}, Endpoint: "http://localhost:8080"})
	if view := gw.View(); !strings.Contains(view, "LOADING") {
		t.Fatalf("gateway view missing loading badge:\n%s", view)
	}
}

func TestViewBeforeResize(t *testing.T) {
	m := New(Options{PrefsPath: filepath.Join(t.TempDir(), "prefs.toml")})
	if got := m.View(); got != "Loading..." {
		t.Fatalf("View() = %q", got)
	}
}
