package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// SentimentScores holds the four VADER sentiment dimensions. Negative, Neutral
// and Positive are shares in [0, 1] that approximately sum to 1; Compound is the
// normalized aggregate in [-1, 1].
type SentimentScores struct {
	Negative float64 `json:"neg"`
	Neutral  float64 `json:"neu"`
	Positive float64 `json:"pos"`
	Compound float64 `json:"compound"`
}

// Value serializes the scores as a JSON string for TEXT column storage.
func (s SentimentScores) Value() (driver.Value, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal scores: %w", err)
	}
	return string(b), nil
}

// Scan restores scores from their stored JSON string.
func (s *SentimentScores) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return json.Unmarshal([]byte(v), s)
	case []byte:
		return json.Unmarshal(v, s)
	default:
		return fmt.Errorf("cannot scan scores from %T", src)
	}
}
