package todo

// EditSession is the single in-progress edit of an item.
type EditSession struct {
	Index int
	Draft string
}

// List is the state behind the to-do view: the add draft, the ordered items
// and the optional edit session. The zero value is an empty list.
//
// List is not safe for concurrent use; it belongs to the UI loop.
type List struct {
	items []Item
	draft string
	edit  *EditSession

	seq  uint64
	revs map[ID]uint64
}

// NewList returns a list holding a copy of items.
func NewList(items []Item) *List {
	l := &List{}
	l.Replace(items)
	return l
}

// Items returns a copy of the collection.
func (l *List) Items() []Item {
	if len(l.items) == 0 {
		return nil
	}
	out := make([]Item, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the number of items.
func (l *List) Len() int {
	return len(l.items)
}

// Item returns the item at index i.
func (l *List) Item(i int) (Item, bool) {
	if !l.inBounds(i) {
		return Item{}, false
	}
	return l.items[i], true
}

// CompletedCount returns how many items are completed.
func (l *List) CompletedCount() int {
	n := 0
	for _, it := range l.items {
		if it.Completed {
			n++
		}
	}
	return n
}

// IndexOf returns the position of the item with the given identity, or -1.
func (l *List) IndexOf(id ID) int {
	if id.IsZero() {
		return -1
	}
	for i, it := range l.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// Draft returns the add draft.
func (l *List) Draft() string {
	return l.draft
}

// SetDraft replaces the add draft.
func (l *List) SetDraft(text string) {
	l.draft = text
}

// Editing returns the active edit session, if any.
func (l *List) Editing() (EditSession, bool) {
	if l.edit == nil {
		return EditSession{}, false
	}
	return *l.edit, true
}

// SetEditDraft replaces the edit draft. It does nothing without a session.
func (l *List) SetEditDraft(text string) {
	if l.edit != nil {
		l.edit.Draft = text
	}
}

// Add appends a new incomplete item built from the draft and clears the
// draft. A blank draft is ignored. The stored text is the draft as typed.
func (l *List) Add() bool {
	if Blank(l.draft) {
		return false
	}
	l.items = append(l.items, Item{Text: l.draft})
	l.draft = ""
	return true
}

// StartEdit opens an edit session on item i seeded with its text,
// replacing any session already open.
func (l *List) StartEdit(i int) bool {
	if !l.inBounds(i) {
		return false
	}
	l.edit = &EditSession{Index: i, Draft: l.items[i].Text}
	return true
}

// SaveEdit writes the edit draft into the target item and closes the
// session. A blank draft leaves everything, including the session, as is.
func (l *List) SaveEdit() bool {
	if l.edit == nil || Blank(l.edit.Draft) || !l.inBounds(l.edit.Index) {
		return false
	}
	l.items[l.edit.Index].Text = l.edit.Draft
	l.edit = nil
	return true
}

// CancelEdit closes the edit session without touching any item.
func (l *List) CancelEdit() {
	l.edit = nil
}

// Toggle flips the completion flag of item i.
func (l *List) Toggle(i int) bool {
	if !l.inBounds(i) {
		return false
	}
	l.items[i].Completed = !l.items[i].Completed
	return true
}

// Delete removes item i; later items shift down by one. An edit session on
// i or on any later position is closed, since its target would otherwise
// point at a different item.
func (l *List) Delete(i int) bool {
	if !l.inBounds(i) {
		return false
	}
	if id := l.items[i].ID; !id.IsZero() {
		delete(l.revs, id)
	}
	l.items = append(l.items[:i:i], l.items[i+1:]...)
	if l.edit != nil && l.edit.Index >= i {
		l.edit = nil
	}
	return true
}

// Replace swaps in a new collection, closing any edit session.
func (l *List) Replace(items []Item) {
	l.items = nil
	if len(items) > 0 {
		l.items = make([]Item, len(items))
		copy(l.items, items)
	}
	l.edit = nil
	l.revs = nil
}

func (l *List) inBounds(i int) bool {
	return i >= 0 && i < len(l.items)
}
