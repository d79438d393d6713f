package embedding

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/spacesedan/tweetpulse/internal/models"
)

const openAIRequestTimeout = 60 * time.Second

// openAIEmbedder delegates to the OpenAI embeddings API.
type openAIEmbedder struct {
	client    *openai.Client
	model     openai.EmbeddingModel
	dimension int
}

func newOpenAIEmbedder(cfg Config) (*openAIEmbedder, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai embedder requires an API key")
	}

	model := openai.EmbeddingModel(cfg.ModelName)
	if cfg.ModelName == "" {
		model = openai.SmallEmbedding3
	}

	config := openai.DefaultConfig(cfg.APIKey)
	config.HTTPClient = &http.Client{Timeout: openAIRequestTimeout}

	return &openAIEmbedder{
		client:    openai.NewClientWithConfig(config),
		model:     model,
		dimension: cfg.Dimension,
	}, nil
}

func (e *openAIEmbedder) Embed(ctx context.Context, text string) (models.Vector, error) {
	vectors, err := e.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (e *openAIEmbedder) EmbedBatch(ctx context.Context, texts []string) ([]models.Vector, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input:      texts,
		Model:      e.model,
		Dimensions: e.dimension,
	})
	if err != nil {
		return nil, fmt.Errorf("openai embedding request failed: %w", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("openai returned %d embeddings for %d texts",
			len(resp.Data), len(texts))
	}

	// The API reports an index per embedding; order by it to keep the
	// row-to-vector correspondence.
	data := resp.Data
	sort.Slice(data, func(i, j int) bool { return data[i].Index < data[j].Index })

	vectors := make([]models.Vector, len(texts))
	for i, d := range data {
		v := models.Vector(d.Embedding)
		if err := checkDimension(v, e.dimension); err != nil {
			return nil, err
		}
		vectors[i] = v
	}
	return vectors, nil
}

func (e *openAIEmbedder) Dimension() int { return e.dimension }
