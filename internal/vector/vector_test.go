package vector

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/premieredata/suitescraper/internal/export"
	"github.com/premieredata/suitescraper/internal/record"
)

func TestHashEmbedderDeterministic(t *testing.T) {
	e := NewHashEmbedder(64)
	a, err := e.Embed(context.Background(), []string{"hello", "world"})
	if err != nil {
		t.Fatal(err)
	}
	b, err := e.Embed(context.Background(), []string{"hello", "world"})
	if err != nil {
		t.Fatal(err)
	}
	if len(a) != 2 || len(a[0]) != 64 {
		t.Fatalf("unexpected shape: %d vectors of %d dims", len(a), len(a[0]))
	}
	for i := range a {
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				t.Fatalf("vector %d differs at dim %d across runs", i, j)
			}
		}
	}
	if a[0][0] == a[1][0] && a[0][1] == a[1][1] && a[0][2] == a[1][2] {
		t.Error("distinct texts produced identical vector prefixes")
	}
}

func TestPropertyPointsPayload(t *testing.T) {
	rating := 4.2
	bedrooms := 1
	docs := []export.PropertyDoc{
		{
			Type: "property",
			Property: record.Property{
				ID:          "HARBOURVIE",
				Name:        "Harbourview Suites",
				City:        "Halifax",
				Rating:      &rating,
				Bedrooms:    &bedrooms,
				PetFriendly: true,
			},
			TextChunk: "Property 1: Harbourview Suites",
		},
		{
			Type:     "property",
			Property: record.Property{ID: "MAPLECOURT", Name: "Maple Court", City: "Toronto"},
			// empty TextChunk falls back to the derived chunk
		},
	}
	vectors := [][]float32{{0.1, 0.2}, {0.3, 0.4}}

	points := PropertyPoints(docs, vectors)
	if len(points) != 2 {
		t.Fatalf("got %d points, want 2", len(points))
	}
	for i, p := range points {
		if p.ID <= 0 {
			t.Errorf("point %d: non-positive id %d", i, p.ID)
		}
		content, _ := p.Payload["content"].(string)
		if content == "" {
			t.Errorf("point %d: empty content payload", i)
		}
		if len(p.Payload) < 2 {
			t.Errorf("point %d: payload too thin: %v", i, p.Payload)
		}
	}
	if points[0].Payload["rating"] != rating {
		t.Errorf("rating payload = %v, want %v", points[0].Payload["rating"], rating)
	}
	if _, ok := points[1].Payload["rating"]; ok {
		t.Error("unrated property should not carry a rating payload key")
	}
}

func TestFAQPointsUseNumericSuffixIDs(t *testing.T) {
	docs := []export.FAQDoc{
		{Type: "faq", FAQ: record.FAQ{ID: "FQ_23", Question: "Q?", Answer: "A.", Category: "General"}, TextChunk: "FAQ 1: Q?"},
	}
	points := FAQPoints(docs, [][]float32{{0.5}})
	if len(points) != 1 {
		t.Fatalf("got %d points, want 1", len(points))
	}
	if points[0].ID != 23 {
		t.Errorf("point id = %d, want 23 (parsed from FQ_23)", points[0].ID)
	}
}

func TestClientUpsertBatches(t *testing.T) {
	var batches []int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Points []Point `json:"points"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode upsert body: %v", err)
		}
		batches = append(batches, len(req.Points))
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "").WithBatchSize(2)
	points := make([]Point, 5)
	for i := range points {
		points[i] = Point{ID: int64(i + 1), Vector: []float32{1}, Payload: map[string]any{"content": "x"}}
	}
	if err := client.Upsert(context.Background(), "props", points); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	want := []int{2, 2, 1}
	if len(batches) != len(want) {
		t.Fatalf("got %d batches %v, want %v", len(batches), batches, want)
	}
	for i, n := range want {
		if batches[i] != n {
			t.Errorf("batch %d size = %d, want %d", i, batches[i], n)
		}
	}
}

func TestClientSearchFilter(t *testing.T) {
	var gotFilter map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode search body: %v", err)
		}
		gotFilter, _ = req["filter"].(map[string]any)
		w.Write([]byte(`{"result":[{"id":7,"score":0.9,"payload":{"content":"hit"}}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	pet := true
	hits, err := client.Search(context.Background(), "props", []float32{0.1},
		Filter{City: "Halifax", MinRating: 4.0, PetFriendly: &pet}, 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 1 || hits[0].ID != 7 {
		t.Fatalf("unexpected hits: %+v", hits)
	}
	must, _ := gotFilter["must"].([]any)
	if len(must) != 3 {
		t.Fatalf("got %d filter conditions, want 3: %v", len(must), gotFilter)
	}
}

func TestClientEnsureCollectionSkipsExisting(t *testing.T) {
	created := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			created = true
		}
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	if err := client.EnsureCollection(context.Background(), "props", 256); err != nil {
		t.Fatalf("EnsureCollection: %v", err)
	}
	if created {
		t.Error("EnsureCollection recreated an existing collection")
	}
}
