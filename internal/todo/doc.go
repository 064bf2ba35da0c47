// Package todo holds the state machine behind the to-do view.
//
// # Overview
//
// A List owns three pieces of state:
//
//   - the add draft (text typed for the next item)
//   - the ordered item collection
//   - at most one EditSession (target position plus its own draft)
//
// Every user action is a method on *List that either applies fully or
// leaves the state untouched, so the rules can be tested without a
// terminal:
//
//	l := todo.NewList(nil)
//	l.SetDraft("Buy milk")
//	l.Add()        // [{Buy milk false}], draft cleared
//	l.Toggle(0)    // completed
//	l.StartEdit(0) // session on 0, draft "Buy milk"
//	l.SetEditDraft("Buy oat milk")
//	l.SaveEdit()   // text replaced, session closed
//	l.Delete(0)    // empty
//
// Blank text (empty after trimming whitespace) is never stored. Add and
// SaveEdit treat it as a silent no-op; the literal, untrimmed text is what
// gets stored otherwise.
//
// # Gateway Variant
//
// When items are persisted remotely the same transitions are split into a
// plan step and an apply step (see remote.go). The plan step validates and
// returns the request body; the caller performs the request and reports
// back with Apply* on success or Fail* on failure:
//
//	fields, ok := l.PlanAdd()
//	created, err := gw.Create(ctx, fields)
//	if err == nil {
//		l.ApplyCreated(fields, created)
//	}
//
// Update requests carry a revision. Only the response to the newest request
// issued for an item replaces it; a response that arrives after a newer
// request was sent is dropped.
package todo
