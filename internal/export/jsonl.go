package export

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/premieredata/suitescraper/internal/observability"
	"github.com/premieredata/suitescraper/internal/record"
)

// The JSONL convention is three ordered line kinds: one metadata line, one
// summary line, then a line per record. Lines carry a "type" discriminator
// so readers can skip what they do not understand.

type metadataLine struct {
	Type            string `json:"type"`
	GeneratedOn     string `json:"generated_on"`
	RunID           string `json:"run_id"`
	TotalProperties *int   `json:"total_properties,omitempty"`
	TotalFAQs       *int   `json:"total_faqs,omitempty"`
	SourceURL       string `json:"source_url"`
	Purpose         string `json:"purpose"`
	Format          string `json:"format"`
	ContentType     string `json:"content_type,omitempty"`
}

const purposeVectorIngestion = "vector_database_ingestion"

// PropertyDoc is one exported property record line: the record plus the
// derived embedding text. TextChunk is never empty.
type PropertyDoc struct {
	Type string `json:"type"`
	record.Property
	TextChunk string `json:"text_chunk"`
}

// FAQDoc is one exported FAQ record line.
type FAQDoc struct {
	Type string `json:"type"`
	record.FAQ
	TextChunk string `json:"text_chunk"`
}

// PropertyDocs derives the exportable line form of each record.
func PropertyDocs(props []record.Property) []PropertyDoc {
	out := make([]PropertyDoc, len(props))
	for i, p := range props {
		out[i] = PropertyDoc{Type: "property", Property: p, TextChunk: p.TextChunk(i + 1)}
	}
	return out
}

// FAQDocs derives the exportable line form of each record.
func FAQDocs(faqs []record.FAQ) []FAQDoc {
	out := make([]FAQDoc, len(faqs))
	for i, f := range faqs {
		out[i] = FAQDoc{Type: "faq", FAQ: f, TextChunk: f.TextChunk(i + 1)}
	}
	return out
}

func writePropertyJSONL(props []record.Property, path string, opts Options) error {
	total := len(props)
	meta := metadataLine{
		Type:            "metadata",
		GeneratedOn:     opts.GeneratedAt.Format(time.RFC3339),
		RunID:           opts.RunID,
		TotalProperties: &total,
		SourceURL:       opts.SourceURL,
		Purpose:         purposeVectorIngestion,
		Format:          "jsonl",
	}
	summary := summarizeProperties(props)
	summary.Type = "summary"

	lines := make([]any, 0, total+2)
	lines = append(lines, meta, summary)
	for _, doc := range PropertyDocs(props) {
		lines = append(lines, doc)
	}
	if err := writeJSONLines(path, lines); err != nil {
		return err
	}
	observability.AddRecordsExported(total)
	return nil
}

func writeFAQJSONL(faqs []record.FAQ, path string, opts Options) error {
	total := len(faqs)
	meta := metadataLine{
		Type:        "metadata",
		GeneratedOn: opts.GeneratedAt.Format(time.RFC3339),
		RunID:       opts.RunID,
		TotalFAQs:   &total,
		SourceURL:   opts.SourceURL,
		Purpose:     purposeVectorIngestion,
		Format:      "jsonl",
		ContentType: "faq",
	}
	summary := summarizeFAQs(faqs)
	summary.Type = "summary"

	lines := make([]any, 0, total+2)
	lines = append(lines, meta, summary)
	for _, doc := range FAQDocs(faqs) {
		lines = append(lines, doc)
	}
	if err := writeJSONLines(path, lines); err != nil {
		return err
	}
	observability.AddRecordsExported(total)
	return nil
}

func writeJSONLines(path string, lines []any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("jsonl: create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w) // Encode appends the newline
	for _, line := range lines {
		if err := enc.Encode(line); err != nil {
			return fmt.Errorf("jsonl: encode line: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("jsonl: flush %s: %w", path, err)
	}
	return nil
}
