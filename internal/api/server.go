package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dgallion1/readbit/internal/config"
	"github.com/dgallion1/readbit/internal/pipeline"
)

// Server is the HTTP API server for readbit.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(orch *pipeline.Orchestrator, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		log:          log,
		cfg:          cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	r.Group(func(r chi.Router) {
		// Auth is optional: a local reader usually runs open.
		if s.cfg.APIKey != "" {
			r.Use(AuthMiddleware(s.cfg.APIKey, s.log))
		}

		r.Post("/api/documents", s.handleImport)
		r.Get("/api/ingest/{jobID}/status", s.handleImportStatus)

		r.Get("/api/documents", s.handleListDocuments)
		r.Get("/api/documents/{docID}", s.handleGetDocument)
		r.Delete("/api/documents/{docID}", s.handleDeleteDocument)
		r.Get("/api/documents/{docID}/stats", s.handleDocumentStats)

		r.Post("/api/documents/{docID}/bookmarks/toggle", s.handleToggleBookmark)
		r.Get("/api/documents/{docID}/bookmarks", s.handleListBookmarks)
		r.Delete("/api/bookmarks/{bookmarkID}", s.handleDeleteBookmark)

		r.Put("/api/documents/{docID}/progress", s.handleSaveProgress)
		r.Get("/api/documents/{docID}/progress", s.handleGetProgress)

		r.Post("/api/chunk", s.handleChunkPreview)
		r.Get("/api/stats/ingest", s.handleIngestStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
