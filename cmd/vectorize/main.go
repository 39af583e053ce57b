package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/premieredata/suitescraper/internal/config"
	"github.com/premieredata/suitescraper/internal/export"
	"github.com/premieredata/suitescraper/internal/observability"
	"github.com/premieredata/suitescraper/internal/vector"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg := config.Load()

	propertiesPath := flag.String("properties", filepath.Join(cfg.OutputDir, "premiere_suites_data.jsonl"), "property JSONL export to ingest")
	faqsPath := flag.String("faqs", filepath.Join(cfg.OutputDir, "premiere_suites_faq_data.jsonl"), "FAQ JSONL export to ingest")
	offline := flag.Bool("offline", false, "use the deterministic hash embedder instead of OpenAI")
	flag.Parse()

	if err := run(context.Background(), cfg, *propertiesPath, *faqsPath, *offline); err != nil {
		slog.Error("vectorize failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, propertiesPath, faqsPath string, offline bool) error {
	embedder, err := newEmbedder(cfg, offline)
	if err != nil {
		return err
	}

	client := vector.NewClient(cfg.QdrantURL, cfg.QdrantAPIKey).WithBatchSize(cfg.VectorBatchSize)

	if err := ingestProperties(ctx, client, embedder, cfg.PropertyCollection, propertiesPath); err != nil {
		return err
	}
	if err := ingestFAQs(ctx, client, embedder, cfg.FAQCollection, faqsPath); err != nil {
		return err
	}

	snap := observability.Snapshot()
	slog.Info("vectorize complete", "points_upserted", snap.PointsUpserted)
	return nil
}

func newEmbedder(cfg *config.Config, offline bool) (vector.Embedder, error) {
	if offline {
		slog.Info("using hash embedder", "dims", 256)
		return vector.NewHashEmbedder(256), nil
	}
	return vector.NewOpenAIEmbedder(cfg.OpenAIAPIKey)
}

func ingestProperties(ctx context.Context, client *vector.Client, embedder vector.Embedder, collection, path string) error {
	ds, err := export.LoadJSONL(path)
	if err != nil {
		return err
	}
	if len(ds.Properties) == 0 {
		slog.Warn("no property records to ingest", "path", path)
		return nil
	}

	texts := make([]string, len(ds.Properties))
	for i, doc := range ds.Properties {
		texts[i] = doc.TextChunk
	}
	vectors, err := embedder.Embed(ctx, texts)
	if err != nil {
		return err
	}

	if err := client.EnsureCollection(ctx, collection, embedder.Dimensions()); err != nil {
		return err
	}
	points := vector.PropertyPoints(ds.Properties, vectors)
	if err := client.Upsert(ctx, collection, points); err != nil {
		observability.IncError(observability.ErrorStore, "qdrant")
		return err
	}
	slog.Info("properties ingested", "collection", collection, "points", len(points), "skipped_lines", ds.Skipped)
	return nil
}

func ingestFAQs(ctx context.Context, client *vector.Client, embedder vector.Embedder, collection, path string) error {
	ds, err := export.LoadJSONL(path)
	if err != nil {
		return err
	}
	if len(ds.FAQs) == 0 {
		slog.Warn("no faq records to ingest", "path", path)
		return nil
	}

	texts := make([]string, len(ds.FAQs))
	for i, doc := range ds.FAQs {
		texts[i] = doc.TextChunk
	}
	vectors, err := embedder.Embed(ctx, texts)
	if err != nil {
		return err
	}

	if err := client.EnsureCollection(ctx, collection, embedder.Dimensions()); err != nil {
		return err
	}
	points := vector.FAQPoints(ds.FAQs, vectors)
	if err := client.Upsert(ctx, collection, points); err != nil {
		observability.IncError(observability.ErrorStore, "qdrant")
		return err
	}
	slog.Info("faqs ingested", "collection", collection, "points", len(points), "skipped_lines", ds.Skipped)
	return nil
}
