// Package extract pulls typed fields out of already-normalized listing and
// FAQ text with keyword and regex heuristics. Extractors are pure functions
// over the injected vocabulary: they never fail, a miss yields the zero value.
package extract

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// decimalRe captures candidate rating values anywhere in the text.
	decimalRe = regexp.MustCompile(`\d+\.\d+`)

	// bedroomRes is ordered from most to least specific.
	bedroomRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+)\s*(?:bedroom|bed)\s*(?:suite|apartment|unit)`),
		regexp.MustCompile(`(?i)(?:suite|apartment|unit)\s*(?:with\s+)?(\d+)\s*(?:bedroom|bed)`),
		regexp.MustCompile(`(?i)(\d+)\s*BRs?\b`),
		regexp.MustCompile(`(?i)(\d+)\s*bed`),
	}
)

const (
	minRating = 1.0
	maxRating = 5.0
)

// Extractor applies the vocabulary's heuristics to text.
type Extractor struct {
	vocab Vocabulary
}

func New(vocab Vocabulary) *Extractor {
	return &Extractor{vocab: vocab}
}

// Rating returns the first decimal value in [1.0, 5.0] found in the text.
// Out-of-range values are skipped, not clamped. Nil means no valid rating.
func (e *Extractor) Rating(text string) *float64 {
	for _, m := range decimalRe.FindAllString(text, -1) {
		v, err := strconv.ParseFloat(m, 64)
		if err != nil {
			continue
		}
		if v >= minRating && v <= maxRating {
			return &v
		}
	}
	return nil
}

// AllRatings returns every valid rating in document order. Callers assign
// these to page units positionally, which assumes ratings appear in the same
// order as the units they belong to. That assumption is not verified and
// breaks if the page layout changes.
func (e *Extractor) AllRatings(text string) []float64 {
	var out []float64
	for _, m := range decimalRe.FindAllString(text, -1) {
		v, err := strconv.ParseFloat(m, 64)
		if err != nil {
			continue
		}
		if v >= minRating && v <= maxRating {
			out = append(out, v)
		}
	}
	return out
}

// Bedrooms returns the bedroom count from the first matching pattern, or nil.
func (e *Extractor) Bedrooms(text string) *int {
	for _, re := range bedroomRes {
		m := re.FindStringSubmatch(text)
		if len(m) < 2 {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		return &n
	}
	return nil
}

// PetFriendly reports whether any pet indicator appears in the text.
// It always returns a definite answer, never "unknown".
func (e *Extractor) PetFriendly(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range e.vocab.PetIndicators {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Amenities returns the amenity keywords present in the text, in vocabulary
// order and canonical casing. Matching is case-insensitive substring only.
func (e *Extractor) Amenities(text string) []string {
	return matchKeywords(text, e.vocab.Amenities)
}

// SuiteFeatures returns the suite-feature keywords present in the text.
func (e *Extractor) SuiteFeatures(text string) []string {
	return matchKeywords(text, e.vocab.SuiteFeatures)
}

// RoomType returns the label of the first room-type rule whose keyword
// appears in the text, falling back to the default.
func (e *Extractor) RoomType(text string) string {
	lower := strings.ToLower(text)
	for _, rule := range e.vocab.RoomTypes {
		if strings.Contains(lower, rule.Keyword) {
			return rule.Label
		}
	}
	return e.vocab.DefaultRoomType
}

// Category classifies question+answer text with the first category rule that
// has at least one keyword hit. Rule order decides ties.
func (e *Extractor) Category(question, answer string) string {
	lower := strings.ToLower(question + " " + answer)
	for _, rule := range e.vocab.Categories {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				return rule.Label
			}
		}
	}
	return e.vocab.DefaultCategory
}

// Tags returns every tag keyword present in the text. Unlike Category there
// is no precedence: all hits are reported.
func (e *Extractor) Tags(text string) []string {
	return matchKeywords(text, e.vocab.TagKeywords)
}

func matchKeywords(text string, keywords []string) []string {
	lower := strings.ToLower(text)
	var out []string
	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			out = append(out, kw)
		}
	}
	return out
}
