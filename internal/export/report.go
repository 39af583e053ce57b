package export

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/premieredata/suitescraper/internal/observability"
	"github.com/premieredata/suitescraper/internal/record"
)

// Markdown and plain-text reports share a layout: a header with run
// metadata, summary stats, then the records. FAQ reports group records by
// category in sorted order.

func writePropertyMarkdown(props []record.Property, path string, opts Options) error {
	var b strings.Builder
	summary := summarizeProperties(props)

	b.WriteString("# Premiere Suites Property Directory\n\n")
	fmt.Fprintf(&b, "Generated on %s\n\n", opts.GeneratedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "Source: %s\n\n", opts.SourceURL)
	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "- Total properties: %d\n", len(props))
	fmt.Fprintf(&b, "- Cities covered: %d\n", summary.CitiesCovered)
	fmt.Fprintf(&b, "- Average rating: %.2f\n", summary.AverageRating)
	fmt.Fprintf(&b, "- Pet friendly: %d\n\n", summary.PetFriendlyCount)

	b.WriteString("## Properties\n\n")
	for _, p := range props {
		fmt.Fprintf(&b, "### %s\n\n", p.Name)
		fmt.Fprintf(&b, "- **ID**: %s\n", p.ID)
		fmt.Fprintf(&b, "- **City**: %s\n", p.City)
		if p.Rating != nil {
			fmt.Fprintf(&b, "- **Rating**: %.1f/5.0\n", *p.Rating)
		}
		if p.Bedrooms != nil {
			fmt.Fprintf(&b, "- **Bedrooms**: %d\n", *p.Bedrooms)
		}
		fmt.Fprintf(&b, "- **Room Type**: %s\n", p.RoomType)
		fmt.Fprintf(&b, "- **Pet Friendly**: %s\n", yesNoCSV(p.PetFriendly))
		if len(p.Amenities) > 0 {
			fmt.Fprintf(&b, "- **Amenities**: %s\n", strings.Join(p.Amenities, ", "))
		}
		if len(p.SuiteFeatures) > 0 {
			fmt.Fprintf(&b, "- **Suite Features**: %s\n", strings.Join(p.SuiteFeatures, ", "))
		}
		if p.URL != "" {
			fmt.Fprintf(&b, "- **URL**: %s\n", p.URL)
		}
		b.WriteString("\n---\n\n")
	}

	if err := writeTextFile(path, b.String()); err != nil {
		return err
	}
	observability.AddRecordsExported(len(props))
	return nil
}

func writeFAQMarkdown(faqs []record.FAQ, path string, opts Options) error {
	var b strings.Builder
	summary := summarizeFAQs(faqs)

	b.WriteString("# Premiere Suites FAQ\n\n")
	fmt.Fprintf(&b, "Generated on %s\n\n", opts.GeneratedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "Source: %s\n\n", opts.SourceURL)
	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "- Total questions: %d\n", len(faqs))
	fmt.Fprintf(&b, "- Categories: %d\n\n", summary.CategoriesCovered)

	categories, grouped := groupFAQsByCategory(faqs)
	counter := 0
	for _, category := range categories {
		fmt.Fprintf(&b, "## %s\n\n", category)
		for _, f := range grouped[category] {
			counter++
			fmt.Fprintf(&b, "### Q%d: %s\n\n", counter, f.Question)
			fmt.Fprintf(&b, "**A**: %s\n\n", f.Answer)
			if len(f.Tags) > 0 {
				fmt.Fprintf(&b, "**Tags**: %s\n\n", strings.Join(f.Tags, ", "))
			}
			b.WriteString("---\n\n")
		}
	}

	if err := writeTextFile(path, b.String()); err != nil {
		return err
	}
	observability.AddRecordsExported(len(faqs))
	return nil
}

func writePropertyText(props []record.Property, path string, opts Options) error {
	var b strings.Builder
	summary := summarizeProperties(props)

	b.WriteString("PREMIERE SUITES PROPERTY DIRECTORY\n")
	b.WriteString(strings.Repeat("=", 40) + "\n\n")
	fmt.Fprintf(&b, "Generated on %s\n", opts.GeneratedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "Source: %s\n\n", opts.SourceURL)
	fmt.Fprintf(&b, "Total properties: %d\n", len(props))
	fmt.Fprintf(&b, "Cities covered: %d\n", summary.CitiesCovered)
	fmt.Fprintf(&b, "Average rating: %.2f\n", summary.AverageRating)
	fmt.Fprintf(&b, "Pet friendly: %d\n\n", summary.PetFriendlyCount)

	for i, p := range props {
		b.WriteString(p.TextChunk(i + 1))
		b.WriteString("\n\n" + strings.Repeat("-", 40) + "\n\n")
	}

	if err := writeTextFile(path, b.String()); err != nil {
		return err
	}
	observability.AddRecordsExported(len(props))
	return nil
}

func writeFAQText(faqs []record.FAQ, path string, opts Options) error {
	var b strings.Builder
	summary := summarizeFAQs(faqs)

	b.WriteString("PREMIERE SUITES FAQ\n")
	b.WriteString(strings.Repeat("=", 40) + "\n\n")
	fmt.Fprintf(&b, "Generated on %s\n", opts.GeneratedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "Source: %s\n\n", opts.SourceURL)
	fmt.Fprintf(&b, "Total questions: %d\n", len(faqs))
	fmt.Fprintf(&b, "Categories: %d\n\n", summary.CategoriesCovered)

	categories, grouped := groupFAQsByCategory(faqs)
	counter := 0
	for _, category := range categories {
		fmt.Fprintf(&b, "%s\n%s\n\n", strings.ToUpper(category), strings.Repeat("-", len(category)))
		for _, f := range grouped[category] {
			counter++
			fmt.Fprintf(&b, "Q%d: %s\n", counter, f.Question)
			fmt.Fprintf(&b, "A: %s\n", f.Answer)
			if len(f.Tags) > 0 {
				fmt.Fprintf(&b, "Tags: %s\n", strings.Join(f.Tags, ", "))
			}
			b.WriteString("\n")
		}
	}

	if err := writeTextFile(path, b.String()); err != nil {
		return err
	}
	observability.AddRecordsExported(len(faqs))
	return nil
}

func writeTextFile(path, content string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if _, err := w.WriteString(content); err != nil {
		return fmt.Errorf("export: write %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("export: flush %s: %w", path, err)
	}
	return nil
}
