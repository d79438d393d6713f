package similarity

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/spacesedan/tweetpulse/internal/embedding"
	"github.com/spacesedan/tweetpulse/internal/models"
	"github.com/spacesedan/tweetpulse/internal/store"
)

// Searcher ranks stored embeddings against a query embedding.
type Searcher struct {
	store    *store.Store
	embedder embedding.Embedder
}

func NewSearcher(s *store.Store, e embedding.Embedder) *Searcher {
	return &Searcher{store: s, embedder: e}
}

// TopNSimilarToEntry finds the n stored texts most similar to the entry with
// the given id. The source row itself is excluded from the candidate pool.
func (s *Searcher) TopNSimilarToEntry(ctx context.Context, id int64, n int) ([]string, error) {
	entry, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	corpus, err := s.store.EmbeddedCorpus(ctx, id)
	if err != nil {
		return nil, err
	}

	return s.TopNSimilar(ctx, entry.CleanedText, n, corpus)
}

// TopNSimilar embeds query once and returns the texts of the n most similar
// corpus rows, descending by cosine similarity. Ties keep corpus order. When n
// exceeds the corpus size it is clamped and every text is returned.
func (s *Searcher) TopNSimilar(ctx context.Context, query string, n int, corpus []models.EmbeddedText) ([]string, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: top_n must be >= 1", store.ErrInvalidArgument)
	}
	if len(corpus) == 0 {
		return []string{}, nil
	}
	if n > len(corpus) {
		n = len(corpus)
	}

	queryVec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	return RankTopN(queryVec, corpus, n), nil
}

// RankTopN is the pure ranking pass: cosine similarity of query against every
// corpus embedding, stable-sorted descending.
func RankTopN(query models.Vector, corpus []models.EmbeddedText, n int) []string {
	type scored struct {
		text  string
		score float64
	}

	ranked := make([]scored, len(corpus))
	for i, doc := range corpus {
		ranked[i] = scored{text: doc.Text, score: Cosine(query, doc.Embedding)}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	if n > len(ranked) {
		n = len(ranked)
	}
	texts := make([]string, n)
	for i := 0; i < n; i++ {
		texts[i] = ranked[i].text
	}
	return texts
}

// Cosine returns the cosine similarity of a and b, in [-1, 1]. Either vector
// being all-zero yields 0.
func Cosine(a, b models.Vector) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
