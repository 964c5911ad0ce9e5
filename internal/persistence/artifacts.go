// Package persistence stores ranked scan results: an atomic JSON artifact
// for the report frontend, and an optional postgres table for history.
package persistence

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/stockaura/stockaura/internal/scan"
)

// Artifact is the persisted top-N snapshot.
type Artifact struct {
	RunID         string        `json:"run_id"`
	Timestamp     time.Time     `json:"timestamp"`
	TotalAnalyzed int           `json:"total_analyzed"`
	Instruments   []scan.Ranked `json:"instruments"`
}

// NewArtifact stamps a ranked slice with run metadata. The run identity
// lives here, outside the deterministic analysis record.
func NewArtifact(ranked []scan.Ranked, totalAnalyzed int) Artifact {
	return Artifact{
		RunID:         uuid.NewString(),
		Timestamp:     time.Now().UTC(),
		TotalAnalyzed: totalAnalyzed,
		Instruments:   ranked,
	}
}

// WriteJSONAtomic writes the artifact via temp file + rename so readers
// never observe a partial file.
func WriteJSONAtomic(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create artifact dir: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal artifact: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("publish artifact: %w", err)
	}
	return nil
}

// ReadArtifact loads a previously written snapshot.
func ReadArtifact(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}
	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("parse artifact: %w", err)
	}
	return &a, nil
}
