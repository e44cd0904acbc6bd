package handlers

import (
	"net/http"
	"time"

	"github.com/alfagnish/userd/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const indexHTML = `<!doctype html>
<html>
    <head>
        <title>userd</title>
    </head>
    <body>
        <h3>userd &mdash; in-memory user service</h3>
    </body>
</html>
`

// SystemHandler serves the index page and the health endpoint.
type SystemHandler struct {
	store    *store.Store
	instance string
	started  time.Time
}

// NewSystemHandler creates a new SystemHandler. Each handler gets a fresh
// instance id so restarts are distinguishable to monitoring.
func NewSystemHandler(st *store.Store) *SystemHandler {
	return &SystemHandler{
		store:    st,
		instance: uuid.New().String(),
		started:  time.Now(),
	}
}

// Routes registers the index and health routes on the given chi router.
func (h *SystemHandler) Routes(r chi.Router) {
	r.Get("/", h.Index)
	r.Get("/index.html", h.Index)
	r.Get("/index", h.Index)
	r.Get("/healthz", h.Health)
}

// Index serves the static informational page.
func (h *SystemHandler) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(indexHTML))
}

// Health reports process status, the instance id, and the live user count.
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"instance": h.instance,
		"users":    h.store.Len(),
		"uptime":   time.Since(h.started).Round(time.Second).String(),
	})
}
