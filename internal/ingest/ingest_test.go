package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/tweetpulse/internal/models"
	"github.com/spacesedan/tweetpulse/internal/preprocess"
	"github.com/spacesedan/tweetpulse/internal/sentiment"
	"github.com/spacesedan/tweetpulse/internal/store"
)

type fakeEmbedder struct {
	dimension int
}

func (f fakeEmbedder) Embed(ctx context.Context, text string) (models.Vector, error) {
	vectors, err := f.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (f fakeEmbedder) EmbedBatch(_ context.Context, texts []string) ([]models.Vector, error) {
	vectors := make([]models.Vector, len(texts))
	for i, text := range texts {
		v := make(models.Vector, f.dimension)
		v[0] = float32(len(text))
		vectors[i] = v
	}
	return vectors, nil
}

func (f fakeEmbedder) Dimension() int { return f.dimension }

const tweetFileFixture = `{"document": {"created_at": "Mon Jan 22 22:01:10 +0000 2018", "text": "RT @fan: this set was #dope", "lang": "en"}}
{"document": {"created_at": "Tue Jan 23 08:30:00 +0000 2018", "text": "que buen dia", "lang": "es"}}

{"document": {"created_at": "Wed Jan 24 12:00:00 +0000 2018", "text": "BRB grabbing lunch", "lang": "en"}}
`

func writeTweetFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tweets.jl")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	db, err := sqlx.Connect("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	s := store.New(db)
	_, err = s.EnsureSchema(context.Background())
	require.NoError(t, err)
	return s
}

func TestReadTweetFile(t *testing.T) {
	path := writeTweetFile(t, tweetFileFixture)

	records, err := ReadTweetFile(path)
	require.NoError(t, err)
	require.Len(t, records, 2, "non-English records are skipped")
	assert.Equal(t, "RT @fan: this set was #dope", records[0].Text)
	assert.Equal(t, "Mon Jan 22 22:01:10 +0000 2018", records[0].Date)
	assert.Equal(t, "BRB grabbing lunch", records[1].Text)
}

func TestRunOnce(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	pipeline := New(s, sentiment.NewAnalyzer(), fakeEmbedder{dimension: 4})
	path := writeTweetFile(t, tweetFileFixture)

	inserted, err := pipeline.RunOnce(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 2, inserted)

	entries, err := s.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	first := entries[0]
	assert.Equal(t, "RT @fan: this set was #dope", first.Text)
	assert.Equal(t, preprocess.CleanText(first.Text), first.CleanedText)
	assert.Equal(t, "20180122", first.CleanedDate)
	assert.Len(t, first.Embedding, 4)
	assert.Contains(t, []string{"positive", "negative", "neutral"}, first.Sentiment)
}

func TestRunOnceIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	pipeline := New(s, sentiment.NewAnalyzer(), fakeEmbedder{dimension: 4})
	path := writeTweetFile(t, tweetFileFixture)

	_, err := pipeline.RunOnce(ctx, path)
	require.NoError(t, err)

	inserted, err := pipeline.RunOnce(ctx, path)
	require.NoError(t, err)
	assert.Zero(t, inserted)

	count, err := s.CountEntries(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestRunOnceAbortsOnInvalidJSON(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	pipeline := New(s, sentiment.NewAnalyzer(), fakeEmbedder{dimension: 4})
	path := writeTweetFile(t, `{"document": {"created_at": "Mon Jan 22 22:01:10 +0000 2018", "text": "fine", "lang": "en"}}
{not json at all
`)

	_, err := pipeline.RunOnce(ctx, path)
	assert.ErrorIs(t, err, ErrMalformedRecord)
	assert.ErrorContains(t, err, "line 2")

	count, err := s.CountEntries(ctx)
	require.NoError(t, err)
	assert.Zero(t, count, "nothing may be committed when a record is malformed")
}

func TestRunOnceAbortsOnMalformedDate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	pipeline := New(s, sentiment.NewAnalyzer(), fakeEmbedder{dimension: 4})
	path := writeTweetFile(t, `{"document": {"created_at": "january 2018", "text": "bad date", "lang": "en"}}
`)

	_, err := pipeline.RunOnce(ctx, path)
	assert.ErrorIs(t, err, preprocess.ErrBadTimestamp)

	count, err := s.CountEntries(ctx)
	require.NoError(t, err)
	assert.Zero(t, count, "nothing may be committed when a record is malformed")
}

func TestRunOnceMissingFile(t *testing.T) {
	s := newTestStore(t)
	pipeline := New(s, sentiment.NewAnalyzer(), fakeEmbedder{dimension: 4})

	_, err := pipeline.RunOnce(context.Background(), filepath.Join(t.TempDir(), "absent.jl"))
	assert.Error(t, err)
}
