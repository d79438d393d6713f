package ingest

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/tidwall/gjson"

	"github.com/spacesedan/tweetpulse/internal/embedding"
	"github.com/spacesedan/tweetpulse/internal/models"
	"github.com/spacesedan/tweetpulse/internal/preprocess"
	"github.com/spacesedan/tweetpulse/internal/sentiment"
	"github.com/spacesedan/tweetpulse/internal/store"
)

const embedBatchSize = 64

// ErrMalformedRecord is returned when a tweet file line is not valid JSON.
var ErrMalformedRecord = errors.New("malformed tweet record")

// Pipeline performs the one-shot bulk load: normalize, score, embed, insert.
type Pipeline struct {
	store    *store.Store
	analyzer *sentiment.Analyzer
	embedder embedding.Embedder
}

func New(s *store.Store, a *sentiment.Analyzer, e embedding.Embedder) *Pipeline {
	return &Pipeline{store: s, analyzer: a, embedder: e}
}

// RunOnce ingests the tweet file unless the store already holds rows. It
// returns the number of entries inserted (0 when ingestion was skipped). A
// malformed record aborts before anything is committed.
func (p *Pipeline) RunOnce(ctx context.Context, path string) (int, error) {
	count, err := p.store.CountEntries(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		slog.Info("[Ingest] Store already populated, skipping ingestion",
			slog.Int64("entries", count))
		return 0, nil
	}

	records, err := ReadTweetFile(path)
	if err != nil {
		return 0, err
	}
	slog.Info("[Ingest] Loaded tweet file",
		slog.String("path", path),
		slog.Int("records", len(records)))

	entries, err := p.process(ctx, records)
	if err != nil {
		return 0, err
	}

	start := time.Now()
	ids, err := p.store.InsertEntries(ctx, entries)
	if err != nil {
		return 0, err
	}
	slog.Info("[Ingest] Bulk insert complete",
		slog.Int("entries", len(ids)),
		slog.Duration("elapsed", time.Since(start)))
	return len(ids), nil
}

func (p *Pipeline) process(ctx context.Context, records []models.RawRecord) ([]models.Entry, error) {
	raws := make([]string, len(records))
	for i, record := range records {
		raws[i] = record.Text
	}

	cleaned := preprocess.CleanBatch(raws)
	// Both ingestion and ad-hoc scoring run VADER on the cleaned text, so one
	// tweet gets the same scores no matter which path processed it.
	scores, labels := p.analyzer.ScoreBatch(cleaned)

	entries := make([]models.Entry, len(records))
	for i, record := range records {
		cleanedDate, err := preprocess.CleanDate(record.Date)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		entries[i] = models.Entry{
			Text:        record.Text,
			CleanedText: cleaned[i],
			Scores:      scores[i],
			Sentiment:   labels[i],
			Date:        record.Date,
			CleanedDate: cleanedDate,
		}
	}

	for batchStart := 0; batchStart < len(cleaned); batchStart += embedBatchSize {
		batchEnd := batchStart + embedBatchSize
		if batchEnd > len(cleaned) {
			batchEnd = len(cleaned)
		}
		vectors, err := p.embedder.EmbedBatch(ctx, cleaned[batchStart:batchEnd])
		if err != nil {
			return nil, fmt.Errorf("failed to embed batch at %d: %w", batchStart, err)
		}
		for i, vector := range vectors {
			entries[batchStart+i].Embedding = vector
		}
	}

	return entries, nil
}

// ReadTweetFile reads a line-delimited JSON tweet dump, keeping date and text
// of every English-language record. A line that is not valid JSON aborts the
// read with ErrMalformedRecord.
func ReadTweetFile(path string) ([]models.RawRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open tweet file: %w", err)
	}
	defer file.Close()

	var records []models.RawRecord
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		if !gjson.ValidBytes(line) {
			return nil, fmt.Errorf("line %d: %w", lineNo, ErrMalformedRecord)
		}
		doc := gjson.GetBytes(line, "document")
		if doc.Get("lang").String() != "en" {
			continue
		}
		records = append(records, models.RawRecord{
			Date: doc.Get("created_at").String(),
			Text: doc.Get("text").String(),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tweet file: %w", err)
	}
	return records, nil
}
