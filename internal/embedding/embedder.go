package embedding

import (
	"context"
	"fmt"

	"github.com/spacesedan/tweetpulse/internal/models"
)

// Embedder turns text into a fixed-length dense vector. Implementations must be
// deterministic for a given model version and must preserve input order in
// EmbedBatch.
type Embedder interface {
	Embed(ctx context.Context, text string) (models.Vector, error)
	EmbedBatch(ctx context.Context, texts []string) ([]models.Vector, error)
	Dimension() int
}

// Config selects and parameterizes an embedding backend.
type Config struct {
	Provider  string // "hugot", "openai" or "remote"
	ModelDir  string // hugot: directory holding the ONNX model
	ModelName string // hugot: hub model to download; openai: embedding model id
	BaseURL   string // remote: embedding service base URL
	APIKey    string // openai
	Dimension int    // expected output dimensionality
}

func New(cfg Config) (Embedder, error) {
	if cfg.Dimension <= 0 {
		cfg.Dimension = DefaultDimension
	}
	switch cfg.Provider {
	case "hugot":
		return newHugotEmbedder(cfg)
	case "openai":
		return newOpenAIEmbedder(cfg)
	case "remote":
		return newRemoteEmbedder(cfg), nil
	default:
		return nil, fmt.Errorf("unknown embedder provider: %q", cfg.Provider)
	}
}

// DefaultDimension matches all-MiniLM-L6-v2 output.
const DefaultDimension = 384

func checkDimension(v models.Vector, want int) error {
	if len(v) != want {
		return fmt.Errorf("embedding has %d dimensions, want %d", len(v), want)
	}
	return nil
}
