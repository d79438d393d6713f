package api

import (
	"fmt"
	"net/http"
	"regexp"
	"strconv"

	"github.com/spacesedan/tweetpulse/internal/models"
	"github.com/spacesedan/tweetpulse/internal/preprocess"
	"github.com/spacesedan/tweetpulse/internal/store"
)

type entryResponse struct {
	Text      string                 `json:"text"`
	Scores    models.SentimentScores `json:"scores"`
	Sentiment string                 `json:"sentiment"`
}

func (s *Server) handleRandomEntry(w http.ResponseWriter, r *http.Request) {
	entry, err := s.store.GetRandom(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if entry == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Detail: "no entries found"})
		return
	}
	writeJSON(w, http.StatusOK, entryResponse{
		Text:      entry.Text,
		Scores:    entry.Scores,
		Sentiment: entry.Sentiment,
	})
}

func (s *Server) handleAllEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := s.store.GetAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	body := make([]entryResponse, len(entries))
	for i, entry := range entries {
		body[i] = entryResponse{
			Text:      entry.Text,
			Scores:    entry.Scores,
			Sentiment: entry.Sentiment,
		}
	}
	writeJSON(w, http.StatusOK, body)
}

type processStringResponse struct {
	Text      string                 `json:"text"`
	Score     models.SentimentScores `json:"score"`
	Sentiment string                 `json:"sentiment"`
}

// handleProcessString scores an arbitrary input string on demand, without
// persisting anything. The text is cleaned before scoring, exactly as during
// ingestion.
func (s *Server) handleProcessString(w http.ResponseWriter, r *http.Request) {
	input := r.URL.Query().Get("input_string")
	cleaned := preprocess.CleanText(input)
	scores, label := s.analyzer.Score(cleaned)
	writeJSON(w, http.StatusOK, processStringResponse{
		Text:      input,
		Score:     scores,
		Sentiment: label,
	})
}

var datePattern = regexp.MustCompile(`^\d{8}$`)

func (s *Server) handleFilterDates(w http.ResponseWriter, r *http.Request) {
	start := r.URL.Query().Get("start_date")
	end := r.URL.Query().Get("end_date")
	if !datePattern.MatchString(start) || !datePattern.MatchString(end) {
		writeError(w, fmt.Errorf("%w: dates must be 8 digits", store.ErrInvalidDate))
		return
	}

	rows, err := s.store.FilterByDate(r.Context(), start, end)
	if err != nil {
		writeError(w, err)
		return
	}
	if rows == nil {
		rows = []models.DatedEntry{}
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleSearchTweets(w http.ResponseWriter, r *http.Request) {
	keyword := r.URL.Query().Get("keyword")
	rows, err := s.store.SearchByKeyword(r.Context(), keyword)
	if err != nil {
		writeError(w, err)
		return
	}
	if rows == nil {
		rows = []models.KeywordMatch{}
	}
	writeJSON(w, http.StatusOK, rows)
}

// handleWordCounts returns the corpus word-frequency table as an ordered array,
// descending by count; a JSON object cannot carry the ordering.
func (s *Server) handleWordCounts(w http.ResponseWriter, r *http.Request) {
	frequencies, err := s.store.WordFrequencies(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, frequencies)
}

func (s *Server) handleEntriesByID(w http.ResponseWriter, r *http.Request) {
	start, err := queryInt(r, "start_id")
	if err != nil {
		writeError(w, err)
		return
	}
	end, err := queryInt(r, "end_id")
	if err != nil {
		writeError(w, err)
		return
	}

	rows, err := s.store.GetByIDRange(r.Context(), start, end)
	if err != nil {
		writeError(w, err)
		return
	}
	if rows == nil {
		rows = []models.EntrySummary{}
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleTopNSimilar(w http.ResponseWriter, r *http.Request) {
	id, err := queryInt(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	topN, err := queryInt(r, "top_n")
	if err != nil {
		writeError(w, err)
		return
	}

	texts, err := s.searcher.TopNSimilarToEntry(r.Context(), id, int(topN))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, texts)
}

func queryInt(r *http.Request, name string) (int64, error) {
	raw := r.URL.Query().Get(name)
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", store.ErrInvalidArgument, name)
	}
	if value < 1 {
		return 0, fmt.Errorf("%w: %s must be >= 1", store.ErrInvalidArgument, name)
	}
	return value, nil
}
