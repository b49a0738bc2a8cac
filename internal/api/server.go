package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/promptforge/internal/catalog"
	"github.com/dgallion1/promptforge/internal/config"
	"github.com/dgallion1/promptforge/internal/stats"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for promptforge.
type Server struct {
	router  chi.Router
	catalog *catalog.Catalog
	stats   *stats.Compliance
	log     *slog.Logger
	cfg     config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(cat *catalog.Catalog, st *stats.Compliance, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		catalog: cat,
		stats:   st,
		log:     log,
		cfg:     cfg,
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

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.ForgeAPIKey, s.log))

		r.Post("/api/variables", s.handleVariables)
		r.Post("/api/substitute", s.handleSubstitute)
		r.Post("/api/sections", s.handleSections)

		r.Route("/api/validate", func(r chi.Router) {
			r.Post("/template", s.handleValidateTemplate)
			r.Post("/section", s.handleValidateSection)
			r.Post("/document", s.handleValidateDocument)
		})

		r.Post("/api/wizard/steps", s.handleWizardSteps)
		r.Post("/api/wizard/generate", s.handleWizardGenerate)
		r.Post("/api/render", s.handleRender)

		r.Route("/api/templates", func(r chi.Router) {
			r.Get("/", s.handleListTemplates)
			r.Post("/upload", s.handleUploadTemplate)
			r.Get("/{templateID}", s.handleGetTemplate)
			r.Get("/{templateID}/wizard", s.handleTemplateWizard)
			r.Post("/{templateID}/generate", s.handleTemplateGenerate)
		})

		r.Get("/api/stats/compliance", s.handleComplianceStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"templates": s.catalog.Count(),
	})
}
