package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/premieredata/suitescraper/internal/observability"
	"github.com/premieredata/suitescraper/internal/record"
)

var propertyCSVHeader = []string{
	"ID", "Property Name", "City", "Rating", "Room Type", "Amenities",
	"Suite Features", "Pet Friendly", "Bedrooms", "Building Type",
	"Description", "Source URL", "Text Chunk",
}

var faqCSVHeader = []string{
	"ID", "Question", "Answer", "Category", "Tags", "Source URL", "Text Chunk",
}

func writePropertyCSV(props []record.Property, path string) error {
	rows := make([][]string, 0, len(props)+1)
	rows = append(rows, propertyCSVHeader)
	for i, p := range props {
		rating := ""
		if p.Rating != nil {
			rating = strconv.FormatFloat(*p.Rating, 'f', 1, 64)
		}
		bedrooms := ""
		if p.Bedrooms != nil {
			bedrooms = strconv.Itoa(*p.Bedrooms)
		}
		rows = append(rows, []string{
			p.ID,
			p.Name,
			p.City,
			rating,
			p.RoomType,
			strings.Join(p.Amenities, ", "),
			strings.Join(p.SuiteFeatures, ", "),
			yesNoCSV(p.PetFriendly),
			bedrooms,
			p.BuildingType,
			p.Description,
			p.URL,
			p.TextChunk(i + 1),
		})
	}
	if err := writeCSVRows(path, rows); err != nil {
		return err
	}
	observability.AddRecordsExported(len(props))
	return nil
}

func writeFAQCSV(faqs []record.FAQ, path string) error {
	rows := make([][]string, 0, len(faqs)+1)
	rows = append(rows, faqCSVHeader)
	for i, f := range faqs {
		rows = append(rows, []string{
			f.ID,
			f.Question,
			f.Answer,
			f.Category,
			strings.Join(f.Tags, ", "),
			f.SourceURL,
			f.TextChunk(i + 1),
		})
	}
	if err := writeCSVRows(path, rows); err != nil {
		return err
	}
	observability.AddRecordsExported(len(faqs))
	return nil
}

func writeCSVRows(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("csv: create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("csv: write %s: %w", path, err)
	}
	return nil
}

func yesNoCSV(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
