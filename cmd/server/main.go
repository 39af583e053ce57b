package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/premieredata/suitescraper/internal/api"
	"github.com/premieredata/suitescraper/internal/config"
	"github.com/premieredata/suitescraper/internal/store"
	"github.com/premieredata/suitescraper/internal/vector"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg := config.Load()

	var embedder vector.Embedder
	if cfg.OpenAIAPIKey != "" {
		e, err := vector.NewOpenAIEmbedder(cfg.OpenAIAPIKey)
		if err != nil {
			slog.Error("failed to build embedder", "error", err)
			os.Exit(1)
		}
		embedder = e
	} else {
		slog.Warn("OPENAI_API_KEY not set, falling back to hash embedder; search quality will be poor")
		embedder = vector.NewHashEmbedder(256)
	}

	var recordStore api.RecordStore
	if cfg.PostgresDSN != "" {
		writer, err := store.NewPostgresWriter(cfg.PostgresDSN)
		if err != nil {
			slog.Error("failed to open record store", "error", err)
			os.Exit(1)
		}
		defer writer.Close()
		recordStore = writer
	}

	client := vector.NewClient(cfg.QdrantURL, cfg.QdrantAPIKey)
	srv := api.NewServer(client, embedder, recordStore, cfg.PropertyCollection, cfg.FAQCollection)

	slog.Info("starting search server", "port", cfg.ServerPort, "qdrant", cfg.QdrantURL)
	if err := http.ListenAndServe(":"+cfg.ServerPort, srv.Router()); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
