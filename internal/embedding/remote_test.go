package embedding

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/tweetpulse/internal/models"
)

func TestRemoteEmbedBatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/embed", r.URL.Path)

		var req remoteEmbedRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []string{"first", "second"}, req.Texts)

		resp := remoteEmbedResponse{Embeddings: []models.Vector{{1, 0}, {0, 1}}}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer srv.Close()

	e := newRemoteEmbedder(Config{BaseURL: srv.URL, Dimension: 2})
	vectors, err := e.EmbedBatch(context.Background(), []string{"first", "second"})
	require.NoError(t, err)
	require.Len(t, vectors, 2)
	assert.Equal(t, models.Vector{1, 0}, vectors[0])
	assert.Equal(t, models.Vector{0, 1}, vectors[1])
}

func TestRemoteEmbedBatchRetriesWithFullBody(t *testing.T) {
	var bodies []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		bodies = append(bodies, string(body))

		if len(bodies) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		resp := remoteEmbedResponse{Embeddings: []models.Vector{{1, 0}}}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer srv.Close()

	e := newRemoteEmbedder(Config{BaseURL: srv.URL, Dimension: 2})
	vectors, err := e.EmbedBatch(context.Background(), []string{"retried"})
	require.NoError(t, err)
	require.Len(t, vectors, 1)

	require.Len(t, bodies, 2)
	assert.Equal(t, bodies[0], bodies[1], "retry must resend the original body")
	assert.Contains(t, bodies[1], "retried")
}

func TestRemoteEmbedBatchRejectsWrongDimension(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		resp := remoteEmbedResponse{Embeddings: []models.Vector{{1, 0, 0}}}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer srv.Close()

	e := newRemoteEmbedder(Config{BaseURL: srv.URL, Dimension: 2})
	_, err := e.EmbedBatch(context.Background(), []string{"text"})
	assert.Error(t, err)
}
