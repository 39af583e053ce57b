package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/premieredata/suitescraper/internal/record"
	"github.com/premieredata/suitescraper/internal/vector"
)

type fakeSearcher struct {
	lastCollection string
	lastFilter     vector.Filter
	lastLimit      int
	hits           []vector.SearchHit
	err            error
}

func (f *fakeSearcher) Search(_ context.Context, collection string, _ []float32, filter vector.Filter, limit int) ([]vector.SearchHit, error) {
	f.lastCollection = collection
	f.lastFilter = filter
	f.lastLimit = limit
	return f.hits, f.err
}

type fakeStore struct {
	props []record.Property
	faqs  []record.FAQ
}

func (f *fakeStore) FetchProperties(context.Context) ([]record.Property, error) {
	return f.props, nil
}

func (f *fakeStore) FetchFAQs(context.Context) ([]record.FAQ, error) {
	return f.faqs, nil
}

func newTestServer(searcher *fakeSearcher) *Server {
	return NewServer(searcher, vector.NewHashEmbedder(8), nil, "props", "faqs")
}

func TestHealth(t *testing.T) {
	srv := newTestServer(&fakeSearcher{})
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestSearchPropertiesRequiresQuery(t *testing.T) {
	srv := newTestServer(&fakeSearcher{})
	req := httptest.NewRequest(http.MethodGet, "/api/search/properties", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestSearchPropertiesPassesFilters(t *testing.T) {
	searcher := &fakeSearcher{hits: []vector.SearchHit{{ID: 1, Score: 0.8}}}
	srv := newTestServer(searcher)

	req := httptest.NewRequest(http.MethodGet,
		"/api/search/properties?q=downtown+suite&city=Halifax&min_rating=4.0&pet_friendly=true&bedrooms=2&limit=3", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if searcher.lastCollection != "props" {
		t.Errorf("collection = %q, want props", searcher.lastCollection)
	}
	f := searcher.lastFilter
	if f.City != "Halifax" || f.MinRating != 4.0 {
		t.Errorf("filter city/rating = %q/%v", f.City, f.MinRating)
	}
	if f.PetFriendly == nil || !*f.PetFriendly {
		t.Error("pet_friendly filter not passed")
	}
	if f.Bedrooms == nil || *f.Bedrooms != 2 {
		t.Error("bedrooms filter not passed")
	}
	if searcher.lastLimit != 3 {
		t.Errorf("limit = %d, want 3", searcher.lastLimit)
	}

	var body struct {
		Total   int                `json:"total"`
		Results []vector.SearchHit `json:"results"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Total != 1 {
		t.Errorf("total = %d, want 1", body.Total)
	}
}

func TestSearchPropertiesRejectsBadRating(t *testing.T) {
	srv := newTestServer(&fakeSearcher{})
	req := httptest.NewRequest(http.MethodGet, "/api/search/properties?q=x&min_rating=high", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestSearchFAQsEmptyResultIsJSONArray(t *testing.T) {
	srv := newTestServer(&fakeSearcher{hits: nil})
	req := httptest.NewRequest(http.MethodGet, "/api/search/faqs?q=pets&category=Pet+Policies", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var body map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if string(body["results"]) != "[]" {
		t.Errorf("results = %s, want []", body["results"])
	}
}

func TestListPropertiesWithoutStore(t *testing.T) {
	srv := newTestServer(&fakeSearcher{})
	req := httptest.NewRequest(http.MethodGet, "/api/properties", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503 without a store", rec.Code)
	}
}

func TestListFAQsFromStore(t *testing.T) {
	st := &fakeStore{faqs: []record.FAQ{{ID: "FQ_1", Question: "Q?", Answer: "A.", Category: "General"}}}
	srv := NewServer(&fakeSearcher{}, vector.NewHashEmbedder(8), st, "props", "faqs")

	req := httptest.NewRequest(http.MethodGet, "/api/faqs", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Total int          `json:"total"`
		Items []record.FAQ `json:"items"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Total != 1 || body.Items[0].ID != "FQ_1" {
		t.Errorf("unexpected listing: %+v", body)
	}
}

func TestStatsEndpoint(t *testing.T) {
	srv := newTestServer(&fakeSearcher{})
	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var snap map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("stats body not JSON: %v", err)
	}
	if _, ok := snap["units_seen"]; !ok {
		t.Error("stats missing units_seen")
	}
}
