package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/spacesedan/tweetpulse/internal/models"
)

const (
	remoteMaxRetries     = 5
	remoteInitialBackoff = 1 * time.Second
	remoteRequestTimeout = 30 * time.Second
)

// remoteEmbedder calls an external embedding service exposing POST /embed with
// {"texts": [...]} -> {"embeddings": [[...], ...]}.
type remoteEmbedder struct {
	client    *http.Client
	baseURL   string
	dimension int
}

type remoteEmbedRequest struct {
	Texts []string `json:"texts"`
}

type remoteEmbedResponse struct {
	Embeddings []models.Vector `json:"embeddings"`
}

func newRemoteEmbedder(cfg Config) *remoteEmbedder {
	return &remoteEmbedder{
		client:    &http.Client{Timeout: remoteRequestTimeout},
		baseURL:   cfg.BaseURL,
		dimension: cfg.Dimension,
	}
}

func (e *remoteEmbedder) Embed(ctx context.Context, text string) (models.Vector, error) {
	vectors, err := e.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (e *remoteEmbedder) EmbedBatch(ctx context.Context, texts []string) ([]models.Vector, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	var result remoteEmbedResponse
	if err := e.postJSON(ctx, e.baseURL+"/embed", remoteEmbedRequest{Texts: texts}, &result); err != nil {
		return nil, err
	}
	if len(result.Embeddings) != len(texts) {
		return nil, fmt.Errorf("embedding service returned %d vectors for %d texts",
			len(result.Embeddings), len(texts))
	}
	for _, v := range result.Embeddings {
		if err := checkDimension(v, e.dimension); err != nil {
			return nil, err
		}
	}
	return result.Embeddings, nil
}

func (e *remoteEmbedder) Dimension() int { return e.dimension }

func (e *remoteEmbedder) postJSON(ctx context.Context, endpoint string, input any, output any) error {
	body, err := json.Marshal(input)
	if err != nil {
		return fmt.Errorf("failed to marshal input: %w", err)
	}

	resp, err := e.doWithRetry(ctx, endpoint, body)
	if err != nil {
		return fmt.Errorf("request failed after retries: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("embedding service returned status %d", resp.StatusCode)
	}

	if err := json.Unmarshal(respBody, output); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}

func (e *remoteEmbedder) doWithRetry(ctx context.Context, endpoint string, body []byte) (*http.Response, error) {
	var resp *http.Response
	var err error
	backoff := remoteInitialBackoff

	for attempt := 0; attempt < remoteMaxRetries; attempt++ {
		// A fresh request per attempt, the previous one's body is drained.
		var req *http.Request
		req, err = http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("failed to build request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err = e.client.Do(req)
		if err == nil && resp.StatusCode < 500 {
			return resp, nil
		}

		if resp != nil {
			resp.Body.Close()
		}

		slog.Warn("[RemoteEmbedder] Request failed, will retry",
			slog.Int("attempt", attempt+1),
			slog.String("error", errMsg(err, resp)))

		time.Sleep(backoff)
		backoff *= 2
	}

	if err == nil {
		err = fmt.Errorf("embedding service kept returning status %d", resp.StatusCode)
	}
	return nil, err
}

func errMsg(err error, resp *http.Response) string {
	if err != nil {
		return err.Error()
	}
	if resp != nil {
		return fmt.Sprintf("status code %d", resp.StatusCode)
	}
	return "unknown error"
}
