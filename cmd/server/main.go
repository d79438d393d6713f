package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spacesedan/tweetpulse/config"
	"github.com/spacesedan/tweetpulse/internal/api"
	"github.com/spacesedan/tweetpulse/internal/embedding"
	"github.com/spacesedan/tweetpulse/internal/ingest"
	"github.com/spacesedan/tweetpulse/internal/logging"
	"github.com/spacesedan/tweetpulse/internal/sentiment"
	"github.com/spacesedan/tweetpulse/internal/similarity"
	"github.com/spacesedan/tweetpulse/internal/store"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	cfg := config.GetAppConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Connect(cfg.DatabasePath)
	if err != nil {
		slog.Error("[Main] Failed to open store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer st.Close()

	if _, err := st.EnsureSchema(ctx); err != nil {
		slog.Error("[Main] Failed to ensure schema", slog.String("error", err.Error()))
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
		slog.Error("[Main] Failed to initialize embedder", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if closer, ok := embedder.(io.Closer); ok {
		defer closer.Close()
	}

	analyzer := sentiment.NewAnalyzer()

	pipeline := ingest.New(st, analyzer, embedder)
	if _, err := pipeline.RunOnce(ctx, cfg.TweetFile); err != nil {
		slog.Error("[Main] Ingestion failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	searcher := similarity.NewSearcher(st, embedder)
	server := api.NewServer(cfg.Addr, st, analyzer, searcher)

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("[Main] Server failed", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("[Main] Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("[Main] Shutdown failed", slog.String("error", err.Error()))
	}
}
