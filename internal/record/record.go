// Package record defines the structured results of extraction: property and
// FAQ records, their embedding text chunks, deduplication, and identifier
// normalization.
package record

import (
	"fmt"
	"regexp"
	"strings"
)

// Property is one furnished-apartment listing. Created once per unique
// (name, city) pair during a scrape pass and immutable afterwards; a new
// scrape replaces the whole set.
type Property struct {
	ID            string   `json:"id"`
	Name          string   `json:"property_name"`
	City          string   `json:"city"`
	Rating        *float64 `json:"rating"`
	RoomType      string   `json:"room_type"`
	Amenities     []string `json:"amenities"`
	SuiteFeatures []string `json:"suite_features"`
	Description   string   `json:"description"`
	URL           string   `json:"source_url"`
	ImageURL      string   `json:"image_url,omitempty"`
	PetFriendly   bool     `json:"pet_friendly"`
	Bedrooms      *int     `json:"bedrooms"`
	BuildingType  string   `json:"building_type"`
}

// FAQ is one question/answer unit. Question and answer are guaranteed
// non-empty by the record builder.
type FAQ struct {
	ID        string   `json:"id"`
	Question  string   `json:"question"`
	Answer    string   `json:"answer"`
	Category  string   `json:"category"`
	Tags      []string `json:"tags"`
	SourceURL string   `json:"source_url"`
}

var nonAlnumRe = regexp.MustCompile(`[^a-zA-Z0-9]`)

// PropertyID derives a stable identifier from the property name: strip
// non-alphanumerics, uppercase, truncate to 10 characters. Collisions are
// possible and not resolved here; downstream dedup keys on (name, city).
func PropertyID(name string) string {
	id := strings.ToUpper(nonAlnumRe.ReplaceAllString(name, ""))
	if len(id) > 10 {
		id = id[:10]
	}
	return id
}

// TextChunk builds the embedding input for a property. index is the record's
// 1-based position in the export. Never returns an empty string.
func (p Property) TextChunk(index int) string {
	var parts []string

	parts = append(parts, fmt.Sprintf("Property %d: %s", index, p.Name))
	parts = append(parts, fmt.Sprintf("Location: %s", p.City))
	if p.Rating != nil {
		parts = append(parts, fmt.Sprintf("Rating: %v/5.0", *p.Rating))
	}
	if p.Bedrooms != nil {
		parts = append(parts, fmt.Sprintf("Bedrooms: %d", *p.Bedrooms))
	}
	parts = append(parts, fmt.Sprintf("Room Type: %s", p.RoomType))
	parts = append(parts, fmt.Sprintf("Pet Friendly: %s", yesNo(p.PetFriendly)))
	if len(p.Amenities) > 0 {
		parts = append(parts, fmt.Sprintf("Amenities: %s", strings.Join(p.Amenities, ", ")))
	}
	if p.Description != "" {
		parts = append(parts, fmt.Sprintf("Description: %s", p.Description))
	}
	parts = append(parts, fmt.Sprintf("Building Type: %s", p.BuildingType))
	if len(p.SuiteFeatures) > 0 {
		parts = append(parts, fmt.Sprintf("Suite Features: %s", strings.Join(p.SuiteFeatures, ", ")))
	}

	chunk := strings.Join(parts, "\n")
	if strings.TrimSpace(chunk) == "" {
		return fmt.Sprintf("Property %s", p.ID)
	}
	return chunk
}

// TextChunk builds the embedding input for a FAQ. Never empty.
func (f FAQ) TextChunk(index int) string {
	var parts []string

	parts = append(parts, fmt.Sprintf("FAQ %d: %s", index, f.Question))
	parts = append(parts, fmt.Sprintf("Category: %s", f.Category))
	parts = append(parts, fmt.Sprintf("Answer: %s", f.Answer))
	if len(f.Tags) > 0 {
		parts = append(parts, fmt.Sprintf("Tags: %s", strings.Join(f.Tags, ", ")))
	}

	chunk := strings.Join(parts, " | ")
	if strings.TrimSpace(chunk) == "" {
		return fmt.Sprintf("FAQ ID: %s", f.ID)
	}
	return chunk
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
