package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/premieredata/suitescraper/internal/config"
	"github.com/premieredata/suitescraper/internal/export"
	"github.com/premieredata/suitescraper/internal/extract"
	"github.com/premieredata/suitescraper/internal/httpx"
	"github.com/premieredata/suitescraper/internal/observability"
	"github.com/premieredata/suitescraper/internal/record"
	"github.com/premieredata/suitescraper/internal/scraper"
	"github.com/premieredata/suitescraper/internal/store"
)

var formatExtensions = map[export.Format]string{
	export.FormatJSON:        ".json",
	export.FormatJSONL:       ".jsonl",
	export.FormatCSV:         ".csv",
	export.FormatMarkdown:    ".md",
	export.FormatText:        ".txt",
	export.FormatChunkedText: "_chunks.txt",
	export.FormatPDF:         ".pdf",
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg := config.Load()
	if err := run(context.Background(), cfg); err != nil {
		slog.Error("scrape pipeline failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	vocab := extract.DefaultVocabulary()
	if cfg.VocabularyPath != "" {
		loaded, err := extract.LoadVocabulary(cfg.VocabularyPath)
		if err != nil {
			return err
		}
		vocab = loaded
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return err
	}

	fetcher := newFetcher(cfg)
	// One run id and timestamp shared by every file this run writes.
	opts := export.Options{
		ChunkSize:   cfg.ChunkSize,
		GeneratedAt: time.Now(),
		RunID:       uuid.NewString(),
	}

	props, err := scrapeProperties(ctx, cfg, fetcher, vocab)
	if err != nil {
		return err
	}
	faqs, err := scrapeFAQs(ctx, cfg, fetcher, vocab)
	if err != nil {
		return err
	}

	opts.SourceURL = cfg.PropertyURL
	err = exportAll(filepath.Join(cfg.OutputDir, "premiere_suites_data"), func(format export.Format, path string) error {
		return export.ExportProperties(props, format, path, opts)
	})
	if err != nil {
		return err
	}
	opts.SourceURL = cfg.FAQURL
	err = exportAll(filepath.Join(cfg.OutputDir, "premiere_suites_faq_data"), func(format export.Format, path string) error {
		return export.ExportFAQs(faqs, format, path, opts)
	})
	if err != nil {
		return err
	}

	if cfg.PostgresDSN != "" {
		if err := persist(ctx, cfg.PostgresDSN, props, faqs); err != nil {
			return err
		}
	}

	snap := observability.Snapshot()
	slog.Info("scrape complete",
		"properties", len(props),
		"faqs", len(faqs),
		"units_seen", snap.UnitsSeen,
		"units_skipped", snap.UnitsSkipped,
		"records_exported", snap.RecordsExported,
	)
	return nil
}

// newFetcher picks the page fetcher: colly with per-host limits by default,
// or the plain robots-respecting HTTP client when SCRAPE_FETCH_MODE=direct.
func newFetcher(cfg *config.Config) scraper.Fetcher {
	if cfg.FetchMode == "direct" {
		return httpx.NewPoliteClient(cfg.UserAgent)
	}
	return httpx.NewCollyFetcher(cfg.UserAgent)
}

func scrapeProperties(ctx context.Context, cfg *config.Config, fetcher scraper.Fetcher, vocab extract.Vocabulary) ([]record.Property, error) {
	slog.Info("scraping properties", "url", cfg.PropertyURL)
	s := scraper.NewPropertyScraper(cfg.PropertyURL, fetcher, vocab)
	props, err := s.Scrape(ctx)
	if err != nil {
		observability.IncError(observability.ClassifyFetchError(err), "property_scraper")
		return nil, err
	}
	observability.IncPagesFetched("property")
	slog.Info("properties extracted", "count", len(props))
	return props, nil
}

func scrapeFAQs(ctx context.Context, cfg *config.Config, fetcher scraper.Fetcher, vocab extract.Vocabulary) ([]record.FAQ, error) {
	slog.Info("scraping faqs", "url", cfg.FAQURL)
	s := scraper.NewFAQScraper(cfg.FAQURL, fetcher, vocab)
	faqs, err := s.Scrape(ctx)
	if err != nil {
		observability.IncError(observability.ClassifyFetchError(err), "faq_scraper")
		return nil, err
	}
	observability.IncPagesFetched("faq")

	corrected := record.ApplySectionOverrides(faqs, record.DefaultSectionOverrides())
	slog.Info("faqs extracted", "count", len(faqs), "sections_corrected", corrected)
	return faqs, nil
}

// exportAll writes one record set in every format under basePath.
func exportAll(basePath string, write func(export.Format, string) error) error {
	for _, format := range export.AllFormats {
		path := basePath + formatExtensions[format]
		if err := write(format, path); err != nil {
			observability.IncError(observability.ErrorIO, "export")
			return err
		}
		slog.Info("export written", "format", format, "path", path)
	}
	return nil
}

func persist(ctx context.Context, dsn string, props []record.Property, faqs []record.FAQ) error {
	writer, err := store.NewPostgresWriter(dsn)
	if err != nil {
		observability.IncError(observability.ErrorStore, "postgres")
		return err
	}
	defer writer.Close()

	if err := writer.ReplaceProperties(ctx, props); err != nil {
		observability.IncError(observability.ErrorStore, "postgres")
		return err
	}
	if err := writer.ReplaceFAQs(ctx, faqs); err != nil {
		observability.IncError(observability.ErrorStore, "postgres")
		return err
	}
	slog.Info("records persisted", "properties", len(props), "faqs", len(faqs))
	return nil
}
