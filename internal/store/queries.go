package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/spacesedan/tweetpulse/internal/models"
)

const insertEntry = `
INSERT INTO entries (text, cleaned_text, scores, sentiment, date, cleaned_date, embedding)
VALUES (:text, :cleaned_text, :scores, :sentiment, :date, :cleaned_date, :embedding)`

// InsertEntries appends entries in input order inside a single transaction and
// returns the assigned ids in the same order. The batch is all-or-nothing.
func (s *Store) InsertEntries(ctx context.Context, entries []models.Entry) ([]int64, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	ids := make([]int64, 0, len(entries))
	for _, entry := range entries {
		res, err := tx.NamedExecContext(ctx, insertEntry, entry)
		if err != nil {
			return nil, fmt.Errorf("failed to insert entry: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("failed to read inserted id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit batch: %w", err)
	}
	return ids, nil
}

// GetAll returns every entry ordered by id.
func (s *Store) GetAll(ctx context.Context) ([]models.Entry, error) {
	var entries []models.Entry
	if err := s.db.SelectContext(ctx, &entries, `SELECT * FROM entries ORDER BY id`); err != nil {
		return nil, fmt.Errorf("failed to select entries: %w", err)
	}
	return entries, nil
}

// GetRandom returns one entry chosen uniformly over the rows actually present,
// so gaps in the id sequence cannot skew the distribution. An empty store
// yields (nil, nil).
func (s *Store) GetRandom(ctx context.Context) (*models.Entry, error) {
	var entry models.Entry
	err := s.db.GetContext(ctx, &entry, `SELECT * FROM entries ORDER BY RANDOM() LIMIT 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select random entry: %w", err)
	}
	return &entry, nil
}

// GetByID returns the entry with the given id, or ErrNotFound.
func (s *Store) GetByID(ctx context.Context, id int64) (*models.Entry, error) {
	var entry models.Entry
	err := s.db.GetContext(ctx, &entry, `SELECT * FROM entries WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select entry %d: %w", id, err)
	}
	return &entry, nil
}

// GetByIDRange returns id, text and sentiment for every entry whose id lies in
// [start, end], ascending by id.
func (s *Store) GetByIDRange(ctx context.Context, start, end int64) ([]models.EntrySummary, error) {
	if start < 1 || end < 1 {
		return nil, fmt.Errorf("%w: ids must be >= 1", ErrInvalidArgument)
	}
	if start > end {
		return nil, fmt.Errorf("%w: start id %d is after end id %d", ErrInvalidArgument, start, end)
	}

	var rows []models.EntrySummary
	err := s.db.SelectContext(ctx, &rows,
		`SELECT id, text, sentiment FROM entries WHERE id BETWEEN ? AND ? ORDER BY id`,
		start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to select id range: %w", err)
	}
	return rows, nil
}

// FilterByDate returns entries whose cleaned_date lies in [start, end]
// inclusive, ascending by date. Both bounds must be valid YYYYMMDD dates; the
// comparison itself is lexicographic, which matches chronological order for the
// fixed-width form.
func (s *Store) FilterByDate(ctx context.Context, start, end string) ([]models.DatedEntry, error) {
	for _, bound := range []string{start, end} {
		if _, err := time.Parse("20060102", bound); err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidDate, bound)
		}
	}

	var rows []models.DatedEntry
	err := s.db.SelectContext(ctx, &rows,
		`SELECT id, text, scores, sentiment, cleaned_date
		 FROM entries
		 WHERE cleaned_date BETWEEN ? AND ?
		 ORDER BY cleaned_date ASC`,
		start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to filter by date: %w", err)
	}
	return rows, nil
}

// SearchByKeyword returns id and raw text of every entry whose cleaned_text
// contains keyword, case-insensitively. No ranking is applied.
func (s *Store) SearchByKeyword(ctx context.Context, keyword string) ([]models.KeywordMatch, error) {
	var rows []models.KeywordMatch
	err := s.db.SelectContext(ctx, &rows,
		`SELECT id, text FROM entries WHERE LOWER(cleaned_text) LIKE ?`,
		"%"+strings.ToLower(keyword)+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to search by keyword: %w", err)
	}
	return rows, nil
}

var wordPattern = regexp.MustCompile(`\b\w+\b`)

// WordFrequencies tokenizes every cleaned_text, case-folded, and returns counts
// in descending order. Equal counts are broken by word ascending so the result
// is deterministic.
func (s *Store) WordFrequencies(ctx context.Context) ([]models.WordCount, error) {
	var texts []string
	if err := s.db.SelectContext(ctx, &texts, `SELECT cleaned_text FROM entries`); err != nil {
		return nil, fmt.Errorf("failed to select cleaned texts: %w", err)
	}

	counts := make(map[string]int)
	for _, text := range texts {
		for _, word := range wordPattern.FindAllString(strings.ToLower(text), -1) {
			counts[word]++
		}
	}

	frequencies := make([]models.WordCount, 0, len(counts))
	for word, count := range counts {
		frequencies = append(frequencies, models.WordCount{Word: word, Count: count})
	}
	sort.Slice(frequencies, func(i, j int) bool {
		if frequencies[i].Count != frequencies[j].Count {
			return frequencies[i].Count > frequencies[j].Count
		}
		return frequencies[i].Word < frequencies[j].Word
	})
	return frequencies, nil
}

// CountEntries reports the number of stored rows. The row count is the sole
// source of truth for whether ingestion has already run.
func (s *Store) CountEntries(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM entries`); err != nil {
		return 0, fmt.Errorf("failed to count entries: %w", err)
	}
	return count, nil
}

// EmbeddedCorpus returns raw text and embedding for every entry, optionally
// excluding one id (pass 0 to include everything). Used by similarity search.
func (s *Store) EmbeddedCorpus(ctx context.Context, excludeID int64) ([]models.EmbeddedText, error) {
	var rows []models.EmbeddedText
	err := s.db.SelectContext(ctx, &rows,
		`SELECT id, text, embedding FROM entries WHERE ? = 0 OR id != ? ORDER BY id`,
		excludeID, excludeID)
	if err != nil {
		return nil, fmt.Errorf("failed to select embedded corpus: %w", err)
	}
	return rows, nil
}
