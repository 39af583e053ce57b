package api

import (
	"net/http"
	"strconv"

	"github.com/premieredata/suitescraper/internal/observability"
	"github.com/premieredata/suitescraper/internal/record"
	"github.com/premieredata/suitescraper/internal/vector"
)

const defaultSearchLimit = 10

func (s *Server) handleSearchProperties(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := q.Get("q")
	if query == "" {
		respondError(w, http.StatusBadRequest, "q is required")
		return
	}

	filter := vector.Filter{City: q.Get("city")}
	if v := q.Get("min_rating"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "min_rating must be a number")
			return
		}
		filter.MinRating = parsed
	}
	if v := q.Get("pet_friendly"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "pet_friendly must be true or false")
			return
		}
		filter.PetFriendly = &parsed
	}
	if v := q.Get("bedrooms"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "bedrooms must be an integer")
			return
		}
		filter.Bedrooms = &parsed
	}

	hits, err := s.search(r, s.propertyCollection, query, filter, parseLimit(r))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Search failed: "+err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"query":   query,
		"results": hits,
		"total":   len(hits),
	})
}

func (s *Server) handleSearchFAQs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := q.Get("q")
	if query == "" {
		respondError(w, http.StatusBadRequest, "q is required")
		return
	}

	filter := vector.Filter{Category: q.Get("category")}
	hits, err := s.search(r, s.faqCollection, query, filter, parseLimit(r))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Search failed: "+err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"query":   query,
		"results": hits,
		"total":   len(hits),
	})
}

func (s *Server) search(r *http.Request, collection, query string, filter vector.Filter, limit int) ([]vector.SearchHit, error) {
	vectors, err := s.embedder.Embed(r.Context(), []string{query})
	if err != nil {
		return nil, err
	}
	hits, err := s.searcher.Search(r.Context(), collection, vectors[0], filter, limit)
	if err != nil {
		return nil, err
	}
	if hits == nil {
		hits = []vector.SearchHit{}
	}
	return hits, nil
}

func (s *Server) handleListProperties(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		respondError(w, http.StatusServiceUnavailable, "no record store configured")
		return
	}
	props, err := s.store.FetchProperties(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch properties: "+err.Error())
		return
	}
	if props == nil {
		props = []record.Property{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"items": props,
		"total": len(props),
	})
}

func (s *Server) handleListFAQs(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		respondError(w, http.StatusServiceUnavailable, "no record store configured")
		return
	}
	faqs, err := s.store.FetchFAQs(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch faqs: "+err.Error())
		return
	}
	if faqs == nil {
		faqs = []record.FAQ{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"items": faqs,
		"total": len(faqs),
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, observability.Snapshot())
}

func parseLimit(r *http.Request) int {
	limit := defaultSearchLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if limit > 100 {
		limit = 100
	}
	return limit
}
