package app

import (
	"net/http"

	"github.com/heartmarshall/notes-app/internal/transport/rest"
)

// apiPrefixes lists the mount points of the notes routes. "/api" keeps
// clients built against the /api base URL working.
var apiPrefixes = []string{"", "/api"}

// RouterDeps holds the handlers mounted by NewRouter. Nil Metrics or MCP
// leaves the corresponding endpoint unmounted.
type RouterDeps struct {
	Notes       *rest.NotesHandler
	Health      *rest.HealthHandler
	Metrics     http.Handler
	MetricsPath string
	MCP         http.Handler
}

// NewRouter builds the API mux.
func NewRouter(d RouterDeps) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", d.Health.Health)
	mux.HandleFunc("GET /live", d.Health.Live)
	mux.HandleFunc("GET /ready", d.Health.Ready)

	for _, prefix := range apiPrefixes {
		mux.HandleFunc("GET "+prefix+"/notes/{username}", d.Notes.List)
		mux.HandleFunc("POST "+prefix+"/notes", d.Notes.Create)
		mux.HandleFunc("PUT "+prefix+"/notes/{id}", d.Notes.Update)
		mux.HandleFunc("DELETE "+prefix+"/notes/{id}", d.Notes.Delete)
	}

	if d.Metrics != nil {
		mux.Handle("GET "+d.MetricsPath, d.Metrics)
	}

	if d.MCP != nil {
		mux.Handle("POST /mcp", d.MCP)
		mux.Handle("GET /mcp", d.MCP)
		mux.Handle("DELETE /mcp", d.MCP)
	}

	return mux
}
