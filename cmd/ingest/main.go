package main

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/spacesedan/tweetpulse/config"
	"github.com/spacesedan/tweetpulse/internal/embedding"
	"github.com/spacesedan/tweetpulse/internal/ingest"
	"github.com/spacesedan/tweetpulse/internal/logging"
	"github.com/spacesedan/tweetpulse/internal/sentiment"
	"github.com/spacesedan/tweetpulse/internal/store"
)

// Seeds a database from the tweet file without serving, for out-of-band
// ingestion.
func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	cfg := config.GetAppConfig()
	ctx := context.Background()

	st, err := store.Connect(cfg.DatabasePath)
	if err != nil {
		slog.Error("[Ingest] Failed to open store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer st.Close()

	if _, err := st.EnsureSchema(ctx); err != nil {
		slog.Error("[Ingest] Failed to ensure schema", slog.String("error", err.Error()))
		os.Exit(1)
	}

	embedder, err := embedding.New(embedding.Config{
		Provider:  cfg.EmbedderProvider,
		ModelDir:  cfg.EmbedderModelDir,
		ModelName: cfg.EmbedderModelName,
		BaseURL:   cfg.EmbedderBaseURL,
		APIKey:    cfg.OpenAIAPIKey,
		Dimension: cfg.EmbedderDimension,
	})
	if err != nil {
		slog.Error("[Ingest] Failed to initialize embedder", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if closer, ok := embedder.(io.Closer); ok {
		defer closer.Close()
	}

	inserted, err := ingest.New(st, sentiment.NewAnalyzer(), embedder).RunOnce(ctx, cfg.TweetFile)
	if err != nil {
		slog.Error("[Ingest] Ingestion failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	slog.Info("[Ingest] Done", slog.Int("inserted", inserted))
}
