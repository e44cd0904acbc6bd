package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/alfagnish/userd/internal/store"
	"github.com/go-chi/chi/v5"
)

// UsersHandler provides the user CRUD endpoints backed by the in-memory
// store.
type UsersHandler struct {
	store *store.Store
}

// NewUsersHandler creates a new UsersHandler.
func NewUsersHandler(st *store.Store) *UsersHandler {
	return &UsersHandler{store: st}
}

// Routes registers the user routes on the given chi router.
func (h *UsersHandler) Routes(r chi.Router) {
	r.Get("/users", h.ListUsers)
	r.HandleFunc("/user", h.UserByID)
	r.HandleFunc("/user/*", h.UserByID)
}

// ListUsers returns the ids of all live users as a comma-joined list, in
// slot order. The body is empty when the store is empty.
func (h *UsersHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	ids := h.store.List()
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatUint(id, 10)
	}
	writeText(w, http.StatusOK, strings.Join(parts, ","))
}

// UserByID dispatches requests under /user/ by method and id presence.
// Only POST may omit the id (ids are allocated by the store, never chosen
// by the client); supplying one is a client error. The remaining verbs act
// on an existing id and report 404 when it names no live record.
func (h *UsersHandler) UserByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(chi.URLParam(r, "*"))

	switch {
	case r.Method == http.MethodPost && !ok:
		id := h.store.Insert(store.User{})
		writeText(w, http.StatusOK, strconv.FormatUint(id, 10))

	case r.Method == http.MethodPost:
		w.WriteHeader(http.StatusBadRequest)

	case r.Method == http.MethodGet && ok:
		u, err := h.store.Get(id)
		if errors.Is(err, store.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		body, _ := json.Marshal(u)
		writeText(w, http.StatusOK, string(body))

	case r.Method == http.MethodPut && ok:
		if errors.Is(h.store.Update(id, store.User{}), store.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)

	case r.Method == http.MethodDelete && ok:
		if errors.Is(h.store.Remove(id), store.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// parseID extracts a user id from the path segment after /user/. A segment
// that is empty or does not parse as an unsigned id is treated as absent,
// not as an error; the method dispatch decides what absence means.
func parseID(seg string) (store.ID, bool) {
	seg = strings.TrimSuffix(seg, "/")
	id, err := strconv.ParseUint(seg, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
