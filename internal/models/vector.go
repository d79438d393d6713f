package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Vector is a fixed-length dense embedding. It is stored as a JSON array so the
// stored form decodes back to exactly the same values.
type Vector []float32

// Value serializes the vector as a JSON string for TEXT column storage.
func (v Vector) Value() (driver.Value, error) {
	b, err := json.Marshal([]float32(v))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal embedding: %w", err)
	}
	return string(b), nil
}

// Scan restores a vector from its stored JSON string.
func (v *Vector) Scan(src any) error {
	switch s := src.(type) {
	case string:
		return json.Unmarshal([]byte(s), (*[]float32)(v))
	case []byte:
		return json.Unmarshal(s, (*[]float32)(v))
	default:
		return fmt.Errorf("cannot scan embedding from %T", src)
	}
}
