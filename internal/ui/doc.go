// Package ui provides the terminal interface for ticklist, built on Bubble
// Tea.
//
// The screen has four rows of chrome around the list:
//
//   - Header: item and done counts plus a connection badge (local, online,
//     offline or syncing)
//   - Draft: the input that adds a new item on enter
//   - List: one row per item with a checkbox; the row under edit shows an
//     inline input
//   - Footer: key hints, or the last request error
//
// # Local and Gateway Modes
//
// Without a gateway every action is applied to the todo.List directly. With
// a gateway, actions plan a request and run it as a tea.Cmd; the result
// message is folded back into the list on the UI loop, so the list is never
// touched from another goroutine. Toggles are shown right away and rolled
// back if the request fails. Adds, saves and deletes wait for the server.
//
// The initial GET /todo runs outside the UI (see package app). The model
// polls the shared state.Store every tick and replaces the list when a newer
// load arrives.
//
// # Key Bindings
//
//   - a/tab: focus the new item input; enter adds, esc returns to the list
//   - j/k, g/G: move the cursor
//   - space/x: toggle completed
//   - e/enter: edit; enter saves, esc cancels
//   - d: delete
//   - H: hide or show completed items
//   - r: reload from the server
//   - T: cycle theme
//   - ?: help
//   - q or ctrl+c: quit
//
// Theme and the hide-completed filter are saved to prefs.toml when changed.
package ui
