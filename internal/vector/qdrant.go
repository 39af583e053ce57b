// Package vector is the Qdrant boundary: point construction, embedding, and
// a small REST client for collection management, upserts, and search.
package vector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/premieredata/suitescraper/internal/observability"
)

// DefaultBatchSize is how many points one upsert request carries.
const DefaultBatchSize = 100

// Client talks to a Qdrant instance over its REST API.
type Client struct {
	baseURL    string
	apiKey     string
	batchSize  int
	httpClient *http.Client
}

// NewClient creates a Qdrant REST client. apiKey may be empty for
// unauthenticated local instances.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		apiKey:    apiKey,
		batchSize: DefaultBatchSize,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// WithBatchSize overrides the upsert batch size.
func (c *Client) WithBatchSize(n int) *Client {
	if n > 0 {
		c.batchSize = n
	}
	return c
}

type qdrantStatus struct {
	Status json.RawMessage `json:"status"`
	Result json.RawMessage `json:"result"`
}

type createCollectionRequest struct {
	Vectors vectorParams `json:"vectors"`
}

type vectorParams struct {
	Size     int    `json:"size"`
	Distance string `json:"distance"`
}

// EnsureCollection creates the collection if it does not already exist.
// Cosine distance, matching how the search endpoints score.
func (c *Client) EnsureCollection(ctx context.Context, name string, vectorSize int) error {
	status, _, err := c.do(ctx, http.MethodGet, "/collections/"+name, nil)
	if err != nil {
		return fmt.Errorf("check collection %s: %w", name, err)
	}
	if status == http.StatusOK {
		return nil
	}

	body := createCollectionRequest{
		Vectors: vectorParams{Size: vectorSize, Distance: "Cosine"},
	}
	status, respBody, err := c.do(ctx, http.MethodPut, "/collections/"+name, body)
	if err != nil {
		return fmt.Errorf("create collection %s: %w", name, err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("create collection %s: status %d: %s", name, status, respBody)
	}
	return nil
}

type upsertRequest struct {
	Points []Point `json:"points"`
}

// Upsert writes points to the collection in fixed-size sequential batches.
// A failed batch aborts the remainder.
func (c *Client) Upsert(ctx context.Context, collection string, points []Point) error {
	for start := 0; start < len(points); start += c.batchSize {
		end := start + c.batchSize
		if end > len(points) {
			end = len(points)
		}
		batch := points[start:end]

		status, respBody, err := c.do(ctx, http.MethodPut,
			"/collections/"+collection+"/points?wait=true", upsertRequest{Points: batch})
		if err != nil {
			return fmt.Errorf("upsert batch %d-%d: %w", start, end, err)
		}
		if status != http.StatusOK {
			return fmt.Errorf("upsert batch %d-%d: status %d: %s", start, end, status, respBody)
		}
		observability.AddPointsUpserted(len(batch))
	}
	return nil
}

// Filter narrows search results by payload fields. Zero values mean
// "no constraint"; PetFriendly and Bedrooms are pointers so false/0 can be
// expressed.
type Filter struct {
	City        string
	MinRating   float64
	PetFriendly *bool
	Bedrooms    *int
	Category    string
}

type searchRequest struct {
	Vector      []float32     `json:"vector"`
	Limit       int           `json:"limit"`
	WithPayload bool          `json:"with_payload"`
	Filter      *qdrantFilter `json:"filter,omitempty"`
}

type qdrantFilter struct {
	Must []qdrantCondition `json:"must"`
}

type qdrantCondition struct {
	Key   string       `json:"key"`
	Match *qdrantMatch `json:"match,omitempty"`
	Range *qdrantRange `json:"range,omitempty"`
}

type qdrantMatch struct {
	Value any `json:"value"`
}

type qdrantRange struct {
	GTE *float64 `json:"gte,omitempty"`
}

func (f Filter) toQdrant() *qdrantFilter {
	var must []qdrantCondition
	if f.City != "" {
		must = append(must, qdrantCondition{Key: "city", Match: &qdrantMatch{Value: f.City}})
	}
	if f.MinRating > 0 {
		gte := f.MinRating
		must = append(must, qdrantCondition{Key: "rating", Range: &qdrantRange{GTE: &gte}})
	}
	if f.PetFriendly != nil {
		must = append(must, qdrantCondition{Key: "pet_friendly", Match: &qdrantMatch{Value: *f.PetFriendly}})
	}
	if f.Bedrooms != nil {
		must = append(must, qdrantCondition{Key: "bedrooms", Match: &qdrantMatch{Value: *f.Bedrooms}})
	}
	if f.Category != "" {
		must = append(must, qdrantCondition{Key: "category", Match: &qdrantMatch{Value: f.Category}})
	}
	if len(must) == 0 {
		return nil
	}
	return &qdrantFilter{Must: must}
}

// SearchHit is one scored result with its stored payload.
type SearchHit struct {
	ID      int64          `json:"id"`
	Score   float64        `json:"score"`
	Payload map[string]any `json:"payload"`
}

type searchResponse struct {
	Result []SearchHit     `json:"result"`
	Status json.RawMessage `json:"status"`
}

// Search runs a scored vector query against the collection.
func (c *Client) Search(ctx context.Context, collection string, vector []float32, filter Filter, limit int) ([]SearchHit, error) {
	if limit <= 0 {
		limit = 10
	}
	req := searchRequest{
		Vector:      vector,
		Limit:       limit,
		WithPayload: true,
		Filter:      filter.toQdrant(),
	}

	status, respBody, err := c.do(ctx, http.MethodPost,
		"/collections/"+collection+"/points/search", req)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", collection, err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("search %s: status %d: %s", collection, status, respBody)
	}

	var parsed searchResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("search %s: parse response: %w", collection, err)
	}
	return parsed.Result, nil
}

// do issues one request and returns the status code and raw body. A non-2xx
// status is not an error here; callers decide.
func (c *Client) do(ctx context.Context, method, path string, body any) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("qdrant request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read response: %w", err)
	}
	return resp.StatusCode, respBody, nil
}
