package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/spacesedan/tweetpulse/internal/sentiment"
	"github.com/spacesedan/tweetpulse/internal/similarity"
	"github.com/spacesedan/tweetpulse/internal/store"
)

// Server exposes the retrieval operations over HTTP. It owns no state of its
// own; the store, analyzer and searcher are injected by the process entrypoint.
type Server struct {
	store    *store.Store
	analyzer *sentiment.Analyzer
	searcher *similarity.Searcher
	http     *http.Server
}

func NewServer(addr string, st *store.Store, analyzer *sentiment.Analyzer, searcher *similarity.Searcher) *Server {
	s := &Server{
		store:    st,
		analyzer: analyzer,
		searcher: searcher,
	}
	s.http = &http.Server{
		Addr:         addr,
		Handler:      s.routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
	return s
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /entries/random", s.handleRandomEntry)
	mux.HandleFunc("GET /entries/", s.handleAllEntries)
	mux.HandleFunc("GET /process_string", s.handleProcessString)
	mux.HandleFunc("GET /filter_dates", s.handleFilterDates)
	mux.HandleFunc("GET /search_tweets/", s.handleSearchTweets)
	mux.HandleFunc("GET /word_counts/", s.handleWordCounts)
	mux.HandleFunc("GET /entries_by_id/", s.handleEntriesByID)
	mux.HandleFunc("GET /top_n_similar_texts/", s.handleTopNSimilar)
	return mux
}

// Handler returns the route table, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

func (s *Server) ListenAndServe() error {
	slog.Info("[API] Listening", slog.String("addr", s.http.Addr))
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("[API] Failed to encode response", slog.String("error", err.Error()))
	}
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Detail: err.Error()})
	case errors.Is(err, store.ErrInvalidArgument), errors.Is(err, store.ErrInvalidDate):
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: err.Error()})
	default:
		slog.Error("[API] Request failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Detail: "internal server error"})
	}
}
