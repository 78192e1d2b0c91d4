package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/banna-commits/winnow/internal/config"
	"github.com/banna-commits/winnow/internal/store"
)

// Server is the winnow read-only status API. It never mutates memory
// files; decay runs stay in the CLI.
type Server struct {
	cfg     config.Config
	db      *store.DB
	router  chi.Router
	version string
	started time.Time
}

// New creates a new Server with the given config, history database and
// version string.
func New(cfg config.Config, db *store.DB, version string) *Server {
	s := &Server{
		cfg:     cfg,
		db:      db,
		version: version,
		started: time.Now(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/status", s.handleStatus)
		r.Get("/scores", s.handleScores)
		r.Get("/runs", s.handleRuns)
		r.Get("/runs/{runID}", s.handleRunDetail)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	dbOK := false
	dbPath := ""
	if s.db != nil {
		dbPath = s.db.Path
		dbOK = s.db.Ping() == nil
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
		"uptime":  time.Since(s.started).Seconds(),
		"db":      dbOK,
		"db_path": dbPath,
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
