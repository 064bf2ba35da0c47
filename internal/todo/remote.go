package todo

// The methods in this file back the gateway variant. A mutation is split in
// three steps so the request can run off the UI loop: Plan* validates and
// returns what to send, the caller performs the request, and Apply* or Fail*
// folds the outcome back in. Results are matched by identity because
// positions may shift while a request is in flight.

// ChangeKind identifies the update request a Change was planned for.
type ChangeKind int

const (
	ChangeSave ChangeKind = iota
	ChangeToggle
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeSave:
		return "save"
	case ChangeToggle:
		return "toggle"
	default:
		return "unknown"
	}
}

// Change is a planned update of one item.
type Change struct {
	Kind   ChangeKind
	ID     ID
	Fields Fields
	Prev   Item
	Rev    uint64
}

// PlanAdd returns the create request body for the draft. Nothing changes
// locally until ApplyCreated.
func (l *List) PlanAdd() (Fields, bool) {
	if Blank(l.draft) {
		return Fields{}, false
	}
	return Fields{Text: l.draft}, true
}

// ApplyCreated appends the server's item. The draft is cleared only when it
// still holds the submitted text, so input typed meanwhile survives.
func (l *List) ApplyCreated(submitted Fields, created Item) {
	l.items = append(l.items, created)
	if l.draft == submitted.Text {
		l.draft = ""
	}
}

// PlanSave returns the update request for the open edit session. It refuses
// when there is no session, the draft is blank or the target has no
// identity.
func (l *List) PlanSave() (Change, bool) {
	if l.edit == nil || Blank(l.edit.Draft) {
		return Change{}, false
	}
	it, ok := l.Item(l.edit.Index)
	if !ok || !it.HasIdentity() {
		return Change{}, false
	}
	return Change{
		Kind:   ChangeSave,
		ID:     it.ID,
		Fields: Fields{Text: l.edit.Draft, Completed: it.Completed},
		Prev:   it,
		Rev:    l.nextRev(it.ID),
	}, true
}

// PlanToggle returns the update request flipping item i and applies the
// flip locally right away.
func (l *List) PlanToggle(i int) (Change, bool) {
	it, ok := l.Item(i)
	if !ok || !it.HasIdentity() {
		return Change{}, false
	}
	ch := Change{
		Kind:   ChangeToggle,
		ID:     it.ID,
		Fields: Fields{Text: it.Text, Completed: !it.Completed},
		Prev:   it,
		Rev:    l.nextRev(it.ID),
	}
	l.items[i].Completed = ch.Fields.Completed
	return ch, true
}

// ApplyUpdated folds a successful update response in. A save closes the
// edit session if it still targets the item. The item itself is replaced
// only when ch is the newest request issued for it; older responses are
// dropped and ApplyUpdated reports false.
func (l *List) ApplyUpdated(ch Change, updated Item) bool {
	i := l.IndexOf(ch.ID)
	if ch.Kind == ChangeSave && l.edit != nil && i >= 0 && l.edit.Index == i {
		l.edit = nil
	}
	if i < 0 || !l.current(ch) {
		return false
	}
	if updated.ID.IsZero() {
		updated.ID = ch.ID
	}
	l.items[i] = updated
	return true
}

// FailUpdate handles a failed update request. A failed toggle is rolled back
// when no newer request has been issued for the item; a failed save leaves
// the item and the edit session untouched.
func (l *List) FailUpdate(ch Change) {
	if ch.Kind != ChangeToggle || !l.current(ch) {
		return
	}
	if i := l.IndexOf(ch.ID); i >= 0 {
		l.items[i].Completed = ch.Prev.Completed
	}
}

// PlanDelete returns the item to delete at position i.
func (l *List) PlanDelete(i int) (Item, bool) {
	it, ok := l.Item(i)
	if !ok || !it.HasIdentity() {
		return Item{}, false
	}
	return it, true
}

// ApplyDeleted removes the item with the given identity after the server
// confirmed the delete.
func (l *List) ApplyDeleted(id ID) bool {
	i := l.IndexOf(id)
	if i < 0 {
		return false
	}
	return l.Delete(i)
}

func (l *List) nextRev(id ID) uint64 {
	if l.revs == nil {
		l.revs = make(map[ID]uint64)
	}
	l.seq++
	l.revs[id] = l.seq
	return l.seq
}

func (l *List) current(ch Change) bool {
	rev, ok := l.revs[ch.ID]
	return ok && rev == ch.Rev
}
