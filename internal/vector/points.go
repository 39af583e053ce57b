package vector

import (
	"github.com/premieredata/suitescraper/internal/export"
	"github.com/premieredata/suitescraper/internal/record"
)

// Point is one Qdrant point: a normalized integer ID, an embedding vector,
// and a payload that always carries non-empty content plus record metadata.
type Point struct {
	ID      int64          `json:"id"`
	Vector  []float32      `json:"vector"`
	Payload map[string]any `json:"payload"`
}

// PropertyPoints pairs property docs with their embedding vectors.
// vectors must be positionally aligned with docs.
func PropertyPoints(docs []export.PropertyDoc, vectors [][]float32) []Point {
	points := make([]Point, 0, len(docs))
	for i, doc := range docs {
		if i >= len(vectors) {
			break
		}
		content := doc.TextChunk
		if content == "" {
			content = doc.Property.TextChunk(i + 1)
		}
		payload := map[string]any{
			"type":          "property",
			"content":       content,
			"property_name": doc.Name,
			"city":          doc.City,
			"room_type":     doc.RoomType,
			"pet_friendly":  doc.PetFriendly,
			"building_type": doc.BuildingType,
			"source_url":    doc.URL,
		}
		if doc.Rating != nil {
			payload["rating"] = *doc.Rating
		}
		if doc.Bedrooms != nil {
			payload["bedrooms"] = *doc.Bedrooms
		}
		points = append(points, Point{
			ID:      record.NormalizeID(doc.ID, i),
			Vector:  vectors[i],
			Payload: payload,
		})
	}
	return points
}

// FAQPoints pairs FAQ docs with their embedding vectors.
func FAQPoints(docs []export.FAQDoc, vectors [][]float32) []Point {
	points := make([]Point, 0, len(docs))
	for i, doc := range docs {
		if i >= len(vectors) {
			break
		}
		content := doc.TextChunk
		if content == "" {
			content = doc.FAQ.TextChunk(i + 1)
		}
		payload := map[string]any{
			"type":       "faq",
			"content":    content,
			"question":   doc.Question,
			"answer":     doc.Answer,
			"category":   doc.Category,
			"source_url": doc.SourceURL,
		}
		if len(doc.Tags) > 0 {
			payload["tags"] = doc.Tags
		}
		points = append(points, Point{
			ID:      record.NormalizeID(doc.ID, i),
			Vector:  vectors[i],
			Payload: payload,
		})
	}
	return points
}
