package store

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/tweetpulse/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := sqlx.Connect("sqlite3", ":memory:")
	require.NoError(t, err)
	// a second pooled connection would see its own empty in-memory database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	s := New(db)
	existed, err := s.EnsureSchema(context.Background())
	require.NoError(t, err)
	require.False(t, existed)
	return s
}

func testEntry(text, cleaned, date, cleanedDate string) models.Entry {
	return models.Entry{
		Text:        text,
		CleanedText: cleaned,
		Scores:      models.SentimentScores{Negative: 0.1, Neutral: 0.7, Positive: 0.2, Compound: 0.25},
		Sentiment:   "positive",
		Date:        date,
		CleanedDate: cleanedDate,
		Embedding:   models.Vector{1, 0, 0},
	}
}

func TestEnsureSchemaIdempotent(t *testing.T) {
	s := newTestStore(t)

	existed, err := s.EnsureSchema(context.Background())
	require.NoError(t, err)
	assert.True(t, existed)
}

func TestInsertEntriesAssignsSequentialIDs(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	entries := []models.Entry{
		testEntry("first", "first", "Mon Jan 22 22:01:10 +0000 2018", "20180122"),
		testEntry("second", "second", "Tue Jan 23 10:00:00 +0000 2018", "20180123"),
		testEntry("third", "third", "Wed Jan 24 10:00:00 +0000 2018", "20180124"),
	}
	ids, err := s.InsertEntries(ctx, entries)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, ids)

	all, err := s.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "first", all[0].Text)
	assert.Equal(t, models.Vector{1, 0, 0}, all[0].Embedding)
	assert.Equal(t, 0.25, all[0].Scores.Compound)
}

func TestGetRandomEmptyStore(t *testing.T) {
	s := newTestStore(t)

	entry, err := s.GetRandom(context.Background())
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestGetRandomReturnsExistingRow(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.InsertEntries(ctx, []models.Entry{
		testEntry("only one", "only one", "Mon Jan 22 22:01:10 +0000 2018", "20180122"),
	})
	require.NoError(t, err)

	entry, err := s.GetRandom(ctx)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "only one", entry.Text)
}

func TestGetByID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.InsertEntries(ctx, []models.Entry{
		testEntry("hello", "hello", "Mon Jan 22 22:01:10 +0000 2018", "20180122"),
	})
	require.NoError(t, err)

	entry, err := s.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "hello", entry.Text)

	_, err = s.GetByID(ctx, 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetByIDRange(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.InsertEntries(ctx, []models.Entry{
		testEntry("a", "a", "Mon Jan 22 22:01:10 +0000 2018", "20180122"),
		testEntry("b", "b", "Mon Jan 22 22:01:10 +0000 2018", "20180122"),
		testEntry("c", "c", "Mon Jan 22 22:01:10 +0000 2018", "20180122"),
	})
	require.NoError(t, err)

	rows, err := s.GetByIDRange(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, int64(1), rows[0].ID)
	assert.Equal(t, int64(2), rows[1].ID)

	_, err = s.GetByIDRange(ctx, 3, 1)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = s.GetByIDRange(ctx, 0, 2)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestFilterByDate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.InsertEntries(ctx, []models.Entry{
		testEntry("old", "old", "Sun Dec 31 10:00:00 +0000 2017", "20171231"),
		testEntry("inside", "inside", "Mon Jan 15 10:00:00 +0000 2018", "20180115"),
		testEntry("late", "late", "Thu Feb 01 10:00:00 +0000 2018", "20180201"),
	})
	require.NoError(t, err)

	rows, err := s.FilterByDate(ctx, "20180101", "20180131")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "inside", rows[0].Text)
	assert.Equal(t, "20180115", rows[0].CleanedDate)
}

func TestFilterByDateSortsAscending(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.InsertEntries(ctx, []models.Entry{
		testEntry("later", "later", "Mon Jan 22 22:01:10 +0000 2018", "20180122"),
		testEntry("earlier", "earlier", "Wed Jan 03 10:00:00 +0000 2018", "20180103"),
	})
	require.NoError(t, err)

	rows, err := s.FilterByDate(ctx, "20180101", "20181231")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "earlier", rows[0].Text)
	assert.Equal(t, "later", rows[1].Text)
}

func TestFilterByDateRejectsMalformedBounds(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, bounds := range [][2]string{
		{"2018-01-01", "20180131"},
		{"20180101", "20180132"},
		{"notadate", "20180131"},
	} {
		_, err := s.FilterByDate(ctx, bounds[0], bounds[1])
		assert.ErrorIs(t, err, ErrInvalidDate, "bounds %v", bounds)
	}
}

func TestSearchByKeywordCaseInsensitive(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.InsertEntries(ctx, []models.Entry{
		testEntry("raw tweet text", "this is dope content", "Mon Jan 22 22:01:10 +0000 2018", "20180122"),
		testEntry("unrelated", "nothing to see", "Mon Jan 22 22:01:10 +0000 2018", "20180122"),
	})
	require.NoError(t, err)

	rows, err := s.SearchByKeyword(ctx, "DOPE")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(1), rows[0].ID)
	assert.Equal(t, "raw tweet text", rows[0].Text)
}

func TestWordFrequencies(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.InsertEntries(ctx, []models.Entry{
		testEntry("x", "a b b", "Mon Jan 22 22:01:10 +0000 2018", "20180122"),
		testEntry("y", "b c", "Mon Jan 22 22:01:10 +0000 2018", "20180122"),
	})
	require.NoError(t, err)

	frequencies, err := s.WordFrequencies(ctx)
	require.NoError(t, err)
	require.Len(t, frequencies, 3)
	assert.Equal(t, models.WordCount{Word: "b", Count: 3}, frequencies[0])
	assert.Equal(t, models.WordCount{Word: "a", Count: 1}, frequencies[1])
	assert.Equal(t, models.WordCount{Word: "c", Count: 1}, frequencies[2])
}

func TestEmbeddedCorpusExcludesID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.InsertEntries(ctx, []models.Entry{
		testEntry("a", "a", "Mon Jan 22 22:01:10 +0000 2018", "20180122"),
		testEntry("b", "b", "Mon Jan 22 22:01:10 +0000 2018", "20180122"),
	})
	require.NoError(t, err)

	full, err := s.EmbeddedCorpus(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, full, 2)

	partial, err := s.EmbeddedCorpus(ctx, 1)
	require.NoError(t, err)
	require.Len(t, partial, 1)
	assert.Equal(t, int64(2), partial[0].ID)
}

func TestCountEntries(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	count, err := s.CountEntries(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	_, err = s.InsertEntries(ctx, []models.Entry{
		testEntry("a", "a", "Mon Jan 22 22:01:10 +0000 2018", "20180122"),
	})
	require.NoError(t, err)

	count, err = s.CountEntries(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
