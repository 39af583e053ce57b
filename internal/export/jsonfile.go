package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/premieredata/suitescraper/internal/observability"
	"github.com/premieredata/suitescraper/internal/record"
)

// The .json layout is one object with metadata / summary / record sections,
// mirroring the JSONL content in a single document.

type jsonMetadata struct {
	GeneratedOn     string `json:"generated_on"`
	RunID           string `json:"run_id"`
	TotalProperties *int   `json:"total_properties,omitempty"`
	TotalFAQs       *int   `json:"total_faqs,omitempty"`
	SourceURL       string `json:"source_url"`
	Purpose         string `json:"purpose"`
	Format          string `json:"format"`
	ContentType     string `json:"content_type,omitempty"`
}

type propertyJSONFile struct {
	Metadata   jsonMetadata    `json:"metadata"`
	Summary    propertySummary `json:"summary"`
	Properties []PropertyDoc   `json:"properties"`
}

type faqJSONFile struct {
	Metadata jsonMetadata `json:"metadata"`
	Summary  faqSummary   `json:"summary"`
	FAQs     []FAQDoc     `json:"faqs"`
}

func writePropertyJSON(props []record.Property, path string, opts Options) error {
	total := len(props)
	out := propertyJSONFile{
		Metadata: jsonMetadata{
			GeneratedOn:     opts.GeneratedAt.Format(time.RFC3339),
			RunID:           opts.RunID,
			TotalProperties: &total,
			SourceURL:       opts.SourceURL,
			Purpose:         purposeVectorIngestion,
			Format:          "json",
		},
		Summary:    summarizeProperties(props),
		Properties: PropertyDocs(props),
	}
	if err := writeJSONFile(path, out); err != nil {
		return err
	}
	observability.AddRecordsExported(total)
	return nil
}

func writeFAQJSON(faqs []record.FAQ, path string, opts Options) error {
	total := len(faqs)
	out := faqJSONFile{
		Metadata: jsonMetadata{
			GeneratedOn: opts.GeneratedAt.Format(time.RFC3339),
			RunID:       opts.RunID,
			TotalFAQs:   &total,
			SourceURL:   opts.SourceURL,
			Purpose:     purposeVectorIngestion,
			Format:      "json",
			ContentType: "faq",
		},
		Summary: summarizeFAQs(faqs),
		FAQs:    FAQDocs(faqs),
	}
	if err := writeJSONFile(path, out); err != nil {
		return err
	}
	observability.AddRecordsExported(total)
	return nil
}

func writeJSONFile(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("json: create %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("json: encode %s: %w", path, err)
	}
	return nil
}
