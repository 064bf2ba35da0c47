// Package gateway provides an HTTP client for a REST /todo collection.
//
// # Endpoints
//
//   - GET /todo: the collection, as a JSON array or {"items": [...]}
//   - POST /todo: create from {"text","completed"}, returns the item with its id
//   - PUT /todo/{id}: replace text and completed, returns the item
//   - DELETE /todo/{id}: status only
//
// The resource is resolved below the configured URL, so
// "http://host:8484/api" talks to http://host:8484/api/todo. A URL without
// a scheme defaults to http://.
//
// Items may carry their identity as "id" (number or string) or "_id".
//
// # Errors
//
// Transport failures, statuses >= 400 and undecodable bodies are reported
// the same way: a *RequestError that matches ErrRequestFailed.
//
//	_, err := client.Create(ctx, todo.Fields{Text: "Pay bills"})
//	if errors.Is(err, gateway.ErrRequestFailed) {
//		// leave local state unchanged
//	}
//
// The client never retries. Retry policy, if any, belongs to the caller.
//
// # Thread Safety
//
// Client is safe for concurrent use. An Observer passed with WithObserver is
// called from whichever goroutine performs the request.
package gateway
