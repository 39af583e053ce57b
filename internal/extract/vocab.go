package extract

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// RoomTypeRule maps a keyword to a room-type label. Rules are evaluated in
// order and the first hit wins.
type RoomTypeRule struct {
	Keyword string `yaml:"keyword"`
	Label   string `yaml:"label"`
}

// CategoryRule assigns a category label when any of its keywords appears in
// the text. Rule order is significant: earlier rules shadow later ones.
type CategoryRule struct {
	Label    string   `yaml:"label"`
	Keywords []string `yaml:"keywords"`
}

// Vocabulary holds every keyword table the extractors consume. It is plain
// data: load it from YAML or use the compiled-in defaults.
type Vocabulary struct {
	Amenities       []string       `yaml:"amenities"`
	SuiteFeatures   []string       `yaml:"suite_features"`
	PetIndicators   []string       `yaml:"pet_indicators"`
	TagKeywords     []string       `yaml:"tag_keywords"`
	RoomTypes       []RoomTypeRule `yaml:"room_types"`
	DefaultRoomType string         `yaml:"default_room_type"`
	Categories      []CategoryRule `yaml:"categories"`
	DefaultCategory string         `yaml:"default_category"`
}

// LoadVocabulary reads a vocabulary YAML file. Fields left empty in the file
// fall back to the defaults so partial overrides are possible.
func LoadVocabulary(path string) (Vocabulary, error) {
	v := DefaultVocabulary()
	data, err := os.ReadFile(path)
	if err != nil {
		return v, fmt.Errorf("vocabulary: read %s: %w", path, err)
	}
	var loaded Vocabulary
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return v, fmt.Errorf("vocabulary: parse %s: %w", path, err)
	}
	mergeVocabulary(&v, loaded)
	return v, nil
}

func mergeVocabulary(dst *Vocabulary, src Vocabulary) {
	if len(src.Amenities) > 0 {
		dst.Amenities = src.Amenities
	}
	if len(src.SuiteFeatures) > 0 {
		dst.SuiteFeatures = src.SuiteFeatures
	}
	if len(src.PetIndicators) > 0 {
		dst.PetIndicators = src.PetIndicators
	}
	if len(src.TagKeywords) > 0 {
		dst.TagKeywords = src.TagKeywords
	}
	if len(src.RoomTypes) > 0 {
		dst.RoomTypes = src.RoomTypes
	}
	if src.DefaultRoomType != "" {
		dst.DefaultRoomType = src.DefaultRoomType
	}
	if len(src.Categories) > 0 {
		dst.Categories = src.Categories
	}
	if src.DefaultCategory != "" {
		dst.DefaultCategory = src.DefaultCategory
	}
}

// DefaultVocabulary returns the keyword tables tuned for the Premiere Suites
// listing and FAQ pages.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Amenities: []string{
			"Gym", "Laundry", "Parking", "Pool", "WiFi", "Furnished",
			"Pet Friendly", "Free WiFi", "Fully Furnished", "In-suite Laundry",
			"Fitness Center", "Exercise Room", "Workout Room", "Business Center",
			"Concierge", "Doorman", "Security", "Elevator", "Balcony", "Terrace",
			"Garden", "BBQ", "Outdoor Space", "Storage", "Bike Storage",
		},
		SuiteFeatures: []string{
			"Fully Furnished", "Furnished", "Unfurnished", "Partially Furnished",
			"Kitchen", "Full Kitchen", "Kitchenette", "Kitchen Appliances",
			"Dishwasher", "Microwave", "Stove", "Oven", "Refrigerator",
			"In-suite Laundry", "Washer", "Dryer", "Laundry Hookups",
			"Balcony", "Terrace", "Patio", "Private Balcony",
			"Walk-in Closet", "Storage", "Built-in Storage",
			"Hardwood Floors", "Carpeted", "Tile Floors",
			"Air Conditioning", "Central Air", "Heating",
			"Walk-in Shower", "Tub", "Ensuite Bathroom",
			"Queen Bed", "King Bed", "Double Bed", "Single Bed",
			"Sofa Bed", "Pull-out Couch", "Dining Table",
			"Work Desk", "Office Space", "Study Area",
			"City View", "Mountain View", "Water View", "Garden View",
			"Corner Unit", "End Unit", "Top Floor", "Penthouse",
			"Newly Renovated", "Updated", "Modern", "Contemporary",
			"Luxury", "Premium", "High-end", "Designer",
		},
		PetIndicators: []string{
			"pet friendly", "pets allowed", "pet-friendly", "pets welcome",
			"pet policy", "dogs allowed", "cats allowed",
		},
		TagKeywords: []string{
			"booking", "reservation", "check-in", "check-out", "payment",
			"cancellation", "pet", "pet-friendly", "amenities", "furnished",
			"utilities", "internet", "parking", "laundry", "cleaning",
			"maintenance", "security", "deposit", "rent", "lease", "contract",
			"corporate", "short-term", "long-term", "furniture", "kitchen",
			"bedroom", "bathroom", "gym", "pool",
		},
		RoomTypes: []RoomTypeRule{
			{Keyword: "kitchen", Label: "Kitchen"},
			{Keyword: "living room", Label: "Living Room"},
			{Keyword: "dining", Label: "Dining Room"},
		},
		DefaultRoomType: "Suite",
		// Order matters: a text mentioning both booking and payment terms
		// is classified by the booking rule.
		Categories: []CategoryRule{
			{Label: "Booking & Reservations", Keywords: []string{"book", "reservation", "check-in", "check-out", "cancel"}},
			{Label: "Payment & Pricing", Keywords: []string{"payment", "deposit", "rent", "cost", "price", "rate", "fee"}},
			{Label: "Pet Policies", Keywords: []string{"pet", "animal", "dog", "cat"}},
			{Label: "Corporate Services", Keywords: []string{"alliance", "corporate", "business", "company", "partner"}},
			{Label: "Amenities & Services", Keywords: []string{"amenity", "furniture", "kitchen", "laundry", "gym", "pool", "housekeeping"}},
			{Label: "Rules & Regulations", Keywords: []string{"smoking", "policy", "rule", "regulation"}},
			{Label: "Technology & Services", Keywords: []string{"wifi", "internet", "phone", "tv", "cable"}},
		},
		DefaultCategory: "General",
	}
}
