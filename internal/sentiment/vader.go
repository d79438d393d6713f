package sentiment

import (
	"github.com/jonreiter/govader"
	"github.com/spacesedan/tweetpulse/internal/models"
)

const (
	LabelPositive = "positive"
	LabelNegative = "negative"
	LabelNeutral  = "neutral"
)

// Analyzer wraps a VADER intensity analyzer whose lexicon has been extended
// with the slang overrides in slangLexicon.
type Analyzer struct {
	sia *govader.SentimentIntensityAnalyzer
}

func NewAnalyzer() *Analyzer {
	sia := govader.NewSentimentIntensityAnalyzer()
	for term, compound := range slangLexicon {
		sia.Lexicon[term] = compound
	}
	return &Analyzer{sia: sia}
}

// Score computes the four VADER dimensions for text and the label derived from
// the compound score. Identical input always yields identical output.
func (a *Analyzer) Score(text string) (models.SentimentScores, string) {
	s := a.sia.PolarityScores(text)
	scores := models.SentimentScores{
		Negative: s.Negative,
		Neutral:  s.Neutral,
		Positive: s.Positive,
		Compound: s.Compound,
	}
	return scores, ClassifyCompound(scores.Compound)
}

// ScoreBatch scores every text in input order with the same function as Score.
func (a *Analyzer) ScoreBatch(texts []string) ([]models.SentimentScores, []string) {
	scores := make([]models.SentimentScores, len(texts))
	labels := make([]string, len(texts))
	for i, text := range texts {
		scores[i], labels[i] = a.Score(text)
	}
	return scores, labels
}

// ClassifyCompound maps a compound score to a sentiment label. Both 0.05 and
// -0.05 are inclusive on their respective sides.
func ClassifyCompound(compound float64) string {
	switch {
	case compound >= 0.05:
		return LabelPositive
	case compound <= -0.05:
		return LabelNegative
	default:
		return LabelNeutral
	}
}
