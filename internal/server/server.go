package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/claude/workoutsync/internal/ingest"
)

// Server exposes workout compilation and load estimation over HTTP so that
// workouts can be previewed before they are imported.
type Server struct {
	loader   *ingest.Loader
	training ingest.Training
	log      *slog.Logger
	apiKey   string
	router   chi.Router
}

// New creates a new Server with all routes configured. training supplies
// the settings a request leaves out. An empty apiKey disables the key check.
func New(loader *ingest.Loader, training ingest.Training, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		loader:   loader,
		training: training,
		log:      log,
		apiKey:   apiKey,
		router:   chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestID)
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Get("/api/v1/health", s.handleHealth)

	s.router.Group(func(r chi.Router) {
		if s.apiKey != "" {
			r.Use(APIKeyAuth(s.apiKey))
		}
		r.Post("/api/v1/compile", s.handleCompile)
		r.Post("/api/v1/load", s.handleLoad)
	})
}
