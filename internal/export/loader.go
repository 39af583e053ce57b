package export

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/premieredata/suitescraper/internal/record"
)

// Dataset is the result of reading a JSONL export back: typed records plus
// the lines the reader could not use.
type Dataset struct {
	Properties []PropertyDoc
	FAQs       []FAQDoc
	Skipped    int
}

type typedLine struct {
	Type string `json:"type"`
}

// LoadJSONL reads a JSONL export. Metadata and summary lines are ignored,
// malformed or unknown-type lines are logged and skipped; only a missing or
// unreadable file is an error.
func LoadJSONL(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load jsonl %s: %w", path, err)
	}
	defer f.Close()

	ds := &Dataset{}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var head typedLine
		if err := json.Unmarshal(line, &head); err != nil {
			slog.Warn("skipping malformed jsonl line", "path", path, "line", lineNo, "error", err)
			ds.Skipped++
			continue
		}

		switch head.Type {
		case "metadata", "summary":
			// header lines carry no records
		case "property":
			var doc PropertyDoc
			if err := json.Unmarshal(line, &doc); err != nil {
				slog.Warn("skipping malformed property line", "path", path, "line", lineNo, "error", err)
				ds.Skipped++
				continue
			}
			ds.Properties = append(ds.Properties, doc)
		case "faq":
			var doc FAQDoc
			if err := json.Unmarshal(line, &doc); err != nil {
				slog.Warn("skipping malformed faq line", "path", path, "line", lineNo, "error", err)
				ds.Skipped++
				continue
			}
			ds.FAQs = append(ds.FAQs, doc)
		default:
			slog.Warn("skipping unknown line type", "path", path, "line", lineNo, "type", head.Type)
			ds.Skipped++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("load jsonl %s: %w", path, err)
	}
	return ds, nil
}

// PropertyRecords strips the line envelope.
func (d *Dataset) PropertyRecords() []record.Property {
	out := make([]record.Property, len(d.Properties))
	for i, doc := range d.Properties {
		out[i] = doc.Property
	}
	return out
}

// FAQRecords strips the line envelope.
func (d *Dataset) FAQRecords() []record.FAQ {
	out := make([]record.FAQ, len(d.FAQs))
	for i, doc := range d.FAQs {
		out[i] = doc.FAQ
	}
	return out
}
