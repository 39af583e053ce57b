// Package api serves semantic search over the ingested property and FAQ
// collections.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/premieredata/suitescraper/internal/record"
	"github.com/premieredata/suitescraper/internal/vector"
)

// Searcher is the vector-store surface the handlers need.
type Searcher interface {
	Search(ctx context.Context, collection string, vec []float32, filter vector.Filter, limit int) ([]vector.SearchHit, error)
}

// RecordStore is the relational surface behind the plain listing endpoints.
type RecordStore interface {
	FetchProperties(ctx context.Context) ([]record.Property, error)
	FetchFAQs(ctx context.Context) ([]record.FAQ, error)
}

type Server struct {
	router             *chi.Mux
	searcher           Searcher
	embedder           vector.Embedder
	store              RecordStore // nil disables the listing endpoints
	propertyCollection string
	faqCollection      string
}

func NewServer(searcher Searcher, embedder vector.Embedder, store RecordStore, propertyCollection, faqCollection string) *Server {
	s := &Server{
		router:             chi.NewRouter(),
		searcher:           searcher,
		embedder:           embedder,
		store:              store,
		propertyCollection: propertyCollection,
		faqCollection:      faqCollection,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	s.router.Get("/health", s.handleHealth)
	s.router.Get("/api/search/properties", s.handleSearchProperties)
	s.router.Get("/api/search/faqs", s.handleSearchFAQs)
	s.router.Get("/api/properties", s.handleListProperties)
	s.router.Get("/api/faqs", s.handleListFAQs)
	s.router.Get("/api/stats", s.handleStats)
}

func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
