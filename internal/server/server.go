package server

import (
	"log"
	"net/http"
	"time"

	"github.com/alfagnish/userd/internal/handlers"
	"github.com/alfagnish/userd/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// New creates a fully-configured chi router with all routes, middleware,
// and handlers wired together. Requests to paths outside the route table
// get a 404; a known path with the wrong method gets a 405.
func New(st *store.Store) http.Handler {
	r := chi.NewRouter()

	// ── Middleware ───────────────────────────────────────────
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	// /users/ and /user/{id}/ are equivalent to their slash-less forms.
	r.Use(middleware.StripSlashes)

	// ── Handlers ────────────────────────────────────────────
	systemH := handlers.NewSystemHandler(st)
	usersH := handlers.NewUsersHandler(st)

	systemH.Routes(r)
	usersH.Routes(r)

	return r
}

// requestLogger is a simple middleware that logs each HTTP request with
// method, path, status code, and duration.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		duration := time.Since(start)
		status := ww.Status()
		if status == 0 {
			status = 200
		}
		log.Printf("%s %s %d %s",
			r.Method,
			r.URL.Path,
			status,
			duration.Round(time.Millisecond),
		)
	})
}
