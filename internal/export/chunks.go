package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/premieredata/suitescraper/internal/observability"
)

// writeChunkedText greedily packs record texts into chunks of at most
// opts.ChunkSize characters. A record is never split across chunks; a single
// record longer than the budget becomes its own oversized chunk.
func writeChunkedText(texts []string, path string, opts Options, total int) error {
	chunks := packChunks(texts, opts.ChunkSize)

	var b strings.Builder
	b.WriteString("# Premiere Suites Data - Chunked for Vector Storage\n")
	fmt.Fprintf(&b, "# Generated on %s\n", opts.GeneratedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "# Total records: %d\n", total)
	fmt.Fprintf(&b, "# Total chunks: %d\n\n", len(chunks))

	for i, chunk := range chunks {
		fmt.Fprintf(&b, "--- CHUNK %d ---\n", i+1)
		b.WriteString(chunk)
		b.WriteString("\n\n")
	}

	if err := writeTextFile(path, b.String()); err != nil {
		return err
	}
	observability.AddRecordsExported(total)
	return nil
}

func packChunks(texts []string, budget int) []string {
	if budget <= 0 {
		budget = DefaultChunkSize
	}
	var chunks []string
	var current strings.Builder
	for _, text := range texts {
		if text == "" {
			continue
		}
		// +2 accounts for the blank line joining records within a chunk.
		if current.Len() > 0 && current.Len()+len(text)+2 > budget {
			chunks = append(chunks, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(text)
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}
