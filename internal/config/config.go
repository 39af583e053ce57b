// Package config loads runtime settings from the environment, with an
// optional .env file for local development.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config carries the settings shared by the three binaries. Zero values are
// filled with defaults suitable for a local run.
type Config struct {
	// Scrape targets
	PropertyURL string
	FAQURL      string
	UserAgent   string
	FetchMode   string // "colly" (default) or "direct"

	// Export
	OutputDir string
	ChunkSize int

	// Vector store
	QdrantURL          string
	QdrantAPIKey       string
	PropertyCollection string
	FAQCollection      string
	OpenAIAPIKey       string
	VectorBatchSize    int

	// Relational sink; empty disables the Postgres writer
	PostgresDSN string

	// API server
	ServerPort string

	// Vocabulary YAML overriding the compiled-in extraction rules; optional
	VocabularyPath string
}

// Load reads .env if present, then the environment. Missing keys fall back
// to defaults; Load itself never fails.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		PropertyURL:        getEnv("SCRAPE_PROPERTY_URL", "https://premieresuites.com/find-your-match/"),
		FAQURL:             getEnv("SCRAPE_FAQ_URL", "https://premieresuites.com/faq/"),
		UserAgent:          getEnv("SCRAPE_USER_AGENT", "suitescraper-bot/1.0"),
		FetchMode:          getEnv("SCRAPE_FETCH_MODE", "colly"),
		OutputDir:          getEnv("OUTPUT_DIR", "out"),
		ChunkSize:          getEnvInt("EXPORT_CHUNK_SIZE", 1000),
		QdrantURL:          getEnv("QDRANT_URL", "http://localhost:6333"),
		QdrantAPIKey:       getEnv("QDRANT_API_KEY", ""),
		PropertyCollection: getEnv("QDRANT_PROPERTY_COLLECTION", "premiere_properties"),
		FAQCollection:      getEnv("QDRANT_FAQ_COLLECTION", "premiere_faqs"),
		OpenAIAPIKey:       getEnv("OPENAI_API_KEY", ""),
		VectorBatchSize:    getEnvInt("VECTOR_BATCH_SIZE", 100),
		PostgresDSN:        getEnv("POSTGRES_DSN", ""),
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		VocabularyPath:     getEnv("VOCABULARY_PATH", ""),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
