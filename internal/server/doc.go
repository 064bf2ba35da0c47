// Package server implements the reference /todo backend behind
// `ticklist serve`.
//
// Items live in SQLite (in memory unless a database file is given) and are
// served with gorilla/mux. Every request is logged with its status, size and
// duration, captured by httpsnoop.
//
//	GET    /todo        200 [items]
//	POST   /todo        201 item, 400 on bad JSON or blank text
//	GET    /todo/{id}   200 item, 404
//	PUT    /todo/{id}   200 item, 400, 404
//	DELETE /todo/{id}   204, 404
//
// Errors are JSON objects of the form {"error": "..."}.
package server
