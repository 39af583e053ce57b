package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/premieredata/suitescraper/internal/observability"
	"github.com/premieredata/suitescraper/internal/record"
)

func writePropertyPDF(props []record.Property, path string, opts Options) error {
	pdf := newPDF("Premiere Suites Property Directory", opts, fmt.Sprintf("Total properties: %d", len(props)))
	summary := summarizeProperties(props)
	pdfLine(pdf, fmt.Sprintf("Cities covered: %d", summary.CitiesCovered))
	pdfLine(pdf, fmt.Sprintf("Average rating: %.2f", summary.AverageRating))
	pdfLine(pdf, fmt.Sprintf("Pet friendly: %d", summary.PetFriendlyCount))
	pdf.Ln(4)

	for _, p := range props {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.MultiCell(0, 6, fmt.Sprintf("%s (%s)", p.Name, p.City), "", "L", false)
		pdf.SetFont("Helvetica", "", 10)
		if p.Rating != nil {
			pdfLine(pdf, fmt.Sprintf("Rating: %.1f/5.0", *p.Rating))
		}
		if p.Bedrooms != nil {
			pdfLine(pdf, fmt.Sprintf("Bedrooms: %d", *p.Bedrooms))
		}
		pdfLine(pdf, fmt.Sprintf("Room Type: %s", p.RoomType))
		pdfLine(pdf, fmt.Sprintf("Pet Friendly: %s", yesNoCSV(p.PetFriendly)))
		if len(p.Amenities) > 0 {
			pdfLine(pdf, fmt.Sprintf("Amenities: %s", strings.Join(p.Amenities, ", ")))
		}
		if p.URL != "" {
			pdfLine(pdf, fmt.Sprintf("URL: %s", p.URL))
		}
		pdf.Ln(4)
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("pdf: write %s: %w", path, err)
	}
	observability.AddRecordsExported(len(props))
	return nil
}

func writeFAQPDF(faqs []record.FAQ, path string, opts Options) error {
	pdf := newPDF("Premiere Suites FAQ", opts, fmt.Sprintf("Total questions: %d", len(faqs)))
	summary := summarizeFAQs(faqs)
	pdfLine(pdf, fmt.Sprintf("Categories: %d", summary.CategoriesCovered))
	pdf.Ln(4)

	categories, grouped := groupFAQsByCategory(faqs)
	counter := 0
	for _, category := range categories {
		pdf.SetFont("Helvetica", "B", 13)
		pdf.MultiCell(0, 7, category, "", "L", false)
		pdf.Ln(1)
		for _, f := range grouped[category] {
			counter++
			pdf.SetFont("Helvetica", "B", 11)
			pdf.MultiCell(0, 6, fmt.Sprintf("Q%d: %s", counter, f.Question), "", "L", false)
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, f.Answer, "", "L", false)
			if len(f.Tags) > 0 {
				pdf.SetFont("Helvetica", "I", 9)
				pdf.MultiCell(0, 5, "Tags: "+strings.Join(f.Tags, ", "), "", "L", false)
			}
			pdf.Ln(3)
		}
		pdf.Ln(2)
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("pdf: write %s: %w", path, err)
	}
	observability.AddRecordsExported(len(faqs))
	return nil
}

func newPDF(title string, opts Options, totalLine string) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.MultiCell(0, 8, title, "", "C", false)
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 10)
	pdfLine(pdf, "Generated on "+opts.GeneratedAt.Format(time.RFC3339))
	pdfLine(pdf, "Source: "+opts.SourceURL)
	pdfLine(pdf, totalLine)
	return pdf
}

func pdfLine(pdf *fpdf.Fpdf, text string) {
	pdf.MultiCell(0, 5, text, "", "L", false)
}
