package embedding

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"
	"github.com/spacesedan/tweetpulse/internal/models"
)

const defaultHugotModel = "sentence-transformers/all-MiniLM-L6-v2"

// hugotEmbedder runs a local ONNX feature-extraction pipeline.
type hugotEmbedder struct {
	session   *hugot.Session
	pipeline  *pipelines.FeatureExtractionPipeline
	dimension int
}

func newHugotEmbedder(cfg Config) (*hugotEmbedder, error) {
	modelName := cfg.ModelName
	if modelName == "" {
		modelName = defaultHugotModel
	}
	modelDir := cfg.ModelDir
	if modelDir == "" {
		modelDir = "./models"
	}

	if err := os.MkdirAll(modelDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create model directory: %w", err)
	}

	modelPath := filepath.Join(modelDir, filepath.Base(modelName))
	if _, err := os.Stat(modelPath); os.IsNotExist(err) {
		slog.Info("[HugotEmbedder] Model not found, downloading...",
			slog.String("model", modelName))
		downloaded, err := hugot.DownloadModel(modelName, modelDir, hugot.NewDownloadOptions())
		if err != nil {
			return nil, fmt.Errorf("failed to download embedding model: %w", err)
		}
		modelPath = downloaded
		slog.Info("[HugotEmbedder] Model downloaded successfully",
			slog.String("path", modelPath))
	} else {
		slog.Info("[HugotEmbedder] Using existing model",
			slog.String("path", modelPath))
	}

	session, err := hugot.NewORTSession()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize hugot session: %w", err)
	}

	config := hugot.FeatureExtractionConfig{
		ModelPath: modelPath,
		Name:      "tweetEmbeddingPipeline",
	}
	pipeline, err := hugot.NewPipeline(session, config)
	if err != nil {
		session.Destroy()
		return nil, fmt.Errorf("failed to initialize embedding pipeline: %w", err)
	}

	return &hugotEmbedder{
		session:   session,
		pipeline:  pipeline,
		dimension: cfg.Dimension,
	}, nil
}

func (e *hugotEmbedder) Embed(ctx context.Context, text string) (models.Vector, error) {
	vectors, err := e.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (e *hugotEmbedder) EmbedBatch(_ context.Context, texts []string) ([]models.Vector, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	output, err := e.pipeline.RunPipeline(texts)
	if err != nil {
		return nil, fmt.Errorf("embedding pipeline failed: %w", err)
	}
	if len(output.Embeddings) != len(texts) {
		return nil, fmt.Errorf("embedding pipeline returned %d vectors for %d texts",
			len(output.Embeddings), len(texts))
	}

	vectors := make([]models.Vector, len(texts))
	for i, emb := range output.Embeddings {
		v := models.Vector(emb)
		if err := checkDimension(v, e.dimension); err != nil {
			return nil, err
		}
		vectors[i] = v
	}
	return vectors, nil
}

func (e *hugotEmbedder) Dimension() int { return e.dimension }

// Close destroys the underlying ONNX session.
func (e *hugotEmbedder) Close() error {
	return e.session.Destroy()
}
