// Package httpapi exposes the core services over HTTP. It is a thin driving
// adapter: request decoding, domain error translation and JSON encoding live
// here, everything else stays in the core.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/filehub-labs/filehub/internal/core/ports/driven"
	"github.com/filehub-labs/filehub/internal/core/ports/driving"
	"github.com/filehub-labs/filehub/internal/logger"
)

// ownerHeader carries the requesting owner's id. Absent means defaultOwner.
const ownerHeader = "X-Owner-ID"

// defaultOwner is the single-user default when no owner header is sent.
const defaultOwner = "local"

// Config holds server configuration.
type Config struct {
	// Addr is the listen address (e.g., ":8080").
	Addr string

	// AllowedOrigins are CORS origins permitted to call the API.
	AllowedOrigins []string
}

// Server serves the filehub HTTP API.
type Server struct {
	cfg          Config
	files        driving.FileService
	search       driving.SearchService
	sync         driving.SyncOrchestrator
	integrations driven.IntegrationStore
	oauth        *OAuthFlow // nil disables the oauth endpoints
	router       chi.Router
	httpServer   *http.Server
}

// New creates a server wired to the given services.
func New(
	cfg Config,
	files driving.FileService,
	search driving.SearchService,
	sync driving.SyncOrchestrator,
	integrations driven.IntegrationStore,
	oauth *OAuthFlow,
) *Server {
	s := &Server{
		cfg:          cfg,
		files:        files,
		search:       search,
		sync:         sync,
		integrations: integrations,
		oauth:        oauth,
	}
	s.router = s.buildRouter()
	return s
}

// Router returns the configured router. Useful for tests.
func (s *Server) Router() http.Handler { return s.router }

// buildRouter configures middleware and routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	origins := s.cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", ownerHeader},
		MaxAge:         300,
	}))

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Route("/files", func(r chi.Router) {
			r.Get("/", s.handleListFiles)
			r.Get("/{id}", s.handleGetFile)
			r.Delete("/{id}", s.handleDeleteFile)
			r.Post("/{id}/reprocess", s.handleReprocessFile)
			r.Get("/{id}/similar", s.handleFindSimilar)
		})

		r.Post("/search", s.handleSearch)

		r.Route("/integrations", func(r chi.Router) {
			r.Get("/", s.handleListIntegrations)
			r.Post("/", s.handleCreateIntegration)
		})

		r.Route("/sync", func(r chi.Router) {
			r.Post("/", s.handleSyncAll)
			r.Post("/{id}", s.handleSync)
			r.Get("/{id}/status", s.handleSyncStatus)
		})

		if s.oauth != nil {
			r.Get("/oauth/{platform}/start", s.handleOAuthStart)
			r.Get("/oauth/callback", s.handleOAuthCallback)
		}
	})

	return r
}

// Start begins listening on the configured address and blocks until the
// server stops.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	logger.Info("HTTP API listening on %s", s.cfg.Addr)
	err := s.httpServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// ownerID extracts the requesting owner from the request.
func ownerID(r *http.Request) string {
	if owner := r.Header.Get(ownerHeader); owner != "" {
		return owner
	}
	return defaultOwner
}
