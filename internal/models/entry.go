package models

// Entry is one fully processed tweet as persisted in the entries table.
type Entry struct {
	ID          int64           `db:"id" json:"id"`
	Text        string          `db:"text" json:"text"`
	CleanedText string          `db:"cleaned_text" json:"cleaned_text"`
	Scores      SentimentScores `db:"scores" json:"scores"`
	Sentiment   string          `db:"sentiment" json:"sentiment"`
	Date        string          `db:"date" json:"date"`
	CleanedDate string          `db:"cleaned_date" json:"cleaned_date"`
	Embedding   Vector          `db:"embedding" json:"-"`
}

// RawRecord is a single tweet as read from the source file, before any processing.
type RawRecord struct {
	Date string `json:"date"`
	Text string `json:"text"`
}

// EntrySummary carries the id-range lookup projection.
type EntrySummary struct {
	ID        int64  `db:"id" json:"id"`
	Text      string `db:"text" json:"text"`
	Sentiment string `db:"sentiment" json:"sentiment"`
}

// DatedEntry carries the date-filter projection.
type DatedEntry struct {
	ID          int64           `db:"id" json:"id"`
	Text        string          `db:"text" json:"text"`
	Scores      SentimentScores `db:"scores" json:"scores"`
	Sentiment   string          `db:"sentiment" json:"sentiment"`
	CleanedDate string          `db:"cleaned_date" json:"cleaned_date"`
}

// KeywordMatch carries the keyword-search projection.
type KeywordMatch struct {
	ID   int64  `db:"id" json:"id"`
	Text string `db:"text" json:"text"`
}

// EmbeddedText pairs a stored text with its embedding for similarity ranking.
type EmbeddedText struct {
	ID        int64  `db:"id" json:"id"`
	Text      string `db:"text" json:"text"`
	Embedding Vector `db:"embedding" json:"-"`
}

// WordCount is one row of the corpus word-frequency table.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}
