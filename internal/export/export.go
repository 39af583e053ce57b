// Package export serializes record sets into the file formats downstream
// consumers expect: JSON, JSONL, CSV, Markdown, plain text, embedding-ready
// text chunks, and PDF.
package export

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/premieredata/suitescraper/internal/record"
)

// Format selects an output serialization.
type Format string

const (
	FormatJSON        Format = "json"
	FormatJSONL       Format = "jsonl"
	FormatCSV         Format = "csv"
	FormatMarkdown    Format = "markdown"
	FormatText        Format = "text"
	FormatChunkedText Format = "chunked_text"
	FormatPDF         Format = "pdf"
)

// AllFormats lists every supported format, in the order the batch pipeline
// writes them.
var AllFormats = []Format{
	FormatJSON, FormatJSONL, FormatCSV, FormatMarkdown,
	FormatText, FormatChunkedText, FormatPDF,
}

// DefaultChunkSize is the character budget for chunked-text output.
const DefaultChunkSize = 1000

// Options carries export-wide parameters.
type Options struct {
	SourceURL   string
	GeneratedAt time.Time // zero value means time.Now()
	RunID       string    // assigned a fresh UUID when empty
	ChunkSize   int       // chunked text budget; DefaultChunkSize when <= 0
}

func (o Options) normalized() Options {
	if o.GeneratedAt.IsZero() {
		o.GeneratedAt = time.Now()
	}
	if o.RunID == "" {
		o.RunID = uuid.NewString()
	}
	if o.ChunkSize <= 0 {
		o.ChunkSize = DefaultChunkSize
	}
	return o
}

// ExportProperties writes the property set to path in the given format.
// An unwritable path is an error; individual records never abort an export.
func ExportProperties(props []record.Property, format Format, path string, opts Options) error {
	opts = opts.normalized()
	switch format {
	case FormatJSON:
		return writePropertyJSON(props, path, opts)
	case FormatJSONL:
		return writePropertyJSONL(props, path, opts)
	case FormatCSV:
		return writePropertyCSV(props, path)
	case FormatMarkdown:
		return writePropertyMarkdown(props, path, opts)
	case FormatText:
		return writePropertyText(props, path, opts)
	case FormatChunkedText:
		return writeChunkedText(propertyChunks(props), path, opts, len(props))
	case FormatPDF:
		return writePropertyPDF(props, path, opts)
	default:
		return fmt.Errorf("export: unknown format %q", format)
	}
}

// ExportFAQs writes the FAQ set to path in the given format.
func ExportFAQs(faqs []record.FAQ, format Format, path string, opts Options) error {
	opts = opts.normalized()
	switch format {
	case FormatJSON:
		return writeFAQJSON(faqs, path, opts)
	case FormatJSONL:
		return writeFAQJSONL(faqs, path, opts)
	case FormatCSV:
		return writeFAQCSV(faqs, path)
	case FormatMarkdown:
		return writeFAQMarkdown(faqs, path, opts)
	case FormatText:
		return writeFAQText(faqs, path, opts)
	case FormatChunkedText:
		return writeChunkedText(faqChunks(faqs), path, opts, len(faqs))
	case FormatPDF:
		return writeFAQPDF(faqs, path, opts)
	default:
		return fmt.Errorf("export: unknown format %q", format)
	}
}

// propertySummary aggregates stats for the summary line/section.
type propertySummary struct {
	Type             string   `json:"type,omitempty"`
	CitiesCovered    int      `json:"cities_covered"`
	AverageRating    float64  `json:"average_rating"`
	PetFriendlyCount int      `json:"pet_friendly_count"`
	Cities           []string `json:"cities"`
}

func summarizeProperties(props []record.Property) propertySummary {
	citySet := map[string]struct{}{}
	var ratingSum float64
	rated := 0
	petFriendly := 0
	for _, p := range props {
		citySet[p.City] = struct{}{}
		if p.Rating != nil {
			ratingSum += *p.Rating
			rated++
		}
		if p.PetFriendly {
			petFriendly++
		}
	}
	avg := 0.0
	if rated > 0 {
		avg = math.Round(ratingSum/float64(rated)*100) / 100
	}
	return propertySummary{
		CitiesCovered:    len(citySet),
		AverageRating:    avg,
		PetFriendlyCount: petFriendly,
		Cities:           sortedKeys(citySet),
	}
}

// faqSummary aggregates stats for the summary line/section.
type faqSummary struct {
	Type              string   `json:"type,omitempty"`
	CategoriesCovered int      `json:"categories_covered"`
	TotalTags         int      `json:"total_tags"`
	Categories        []string `json:"categories"`
	TopTags           []string `json:"top_tags"`
}

func summarizeFAQs(faqs []record.FAQ) faqSummary {
	categorySet := map[string]struct{}{}
	tagSet := map[string]struct{}{}
	for _, f := range faqs {
		categorySet[f.Category] = struct{}{}
		for _, t := range f.Tags {
			tagSet[t] = struct{}{}
		}
	}
	tags := sortedKeys(tagSet)
	top := tags
	if len(top) > 20 {
		top = top[:20]
	}
	return faqSummary{
		CategoriesCovered: len(categorySet),
		TotalTags:         len(tagSet),
		Categories:        sortedKeys(categorySet),
		TopTags:           top,
	}
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func propertyChunks(props []record.Property) []string {
	out := make([]string, len(props))
	for i, p := range props {
		out[i] = p.TextChunk(i + 1)
	}
	return out
}

func faqChunks(faqs []record.FAQ) []string {
	out := make([]string, len(faqs))
	for i, f := range faqs {
		out[i] = f.TextChunk(i + 1)
	}
	return out
}

// groupFAQsByCategory returns categories in sorted order with each
// category's records in input order.
func groupFAQsByCategory(faqs []record.FAQ) ([]string, map[string][]record.FAQ) {
	grouped := map[string][]record.FAQ{}
	for _, f := range faqs {
		grouped[f.Category] = append(grouped[f.Category], f)
	}
	categories := make([]string, 0, len(grouped))
	for c := range grouped {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	return categories, grouped
}
