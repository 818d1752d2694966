// Package api exposes the task service over HTTP.
//
// Routes:
//
//	GET    /health
//	GET    /api/tasks
//	POST   /api/tasks
//	GET    /api/tasks/completed
//	GET    /api/tasks/pending
//	GET    /api/tasks/{id}
//	PUT    /api/tasks/{id}
//	DELETE /api/tasks/{id}
//	POST   /api/tasks/{id}/toggle
//
// Errors are returned as {"error": "...", "trace_id": "..."}.
package api
