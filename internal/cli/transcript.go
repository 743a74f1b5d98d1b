package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/kandasoft/salesdojo/internal/engine"
	"github.com/kandasoft/salesdojo/internal/persona"
	"github.com/kandasoft/salesdojo/internal/prompt"
)

// TranscriptDir is where session transcripts are written.
const TranscriptDir = "salesdojo-output/transcripts"

// Transcript records one training or demo session for later review.
type Transcript struct {
	ID        string           `json:"id"`
	Mode      string           `json:"mode"` // "chat" or "demo"
	CreatedAt time.Time        `json:"createdAt"`
	Settings  persona.Settings `json:"settings"`
	Intensity prompt.Intensity `json:"intensity"`
	Product   prompt.Product   `json:"product,omitempty"`
	Messages  []engine.Message `json:"messages,omitempty"` // chat mode
	Turns     []engine.Turn    `json:"turns,omitempty"`    // demo mode
}

// SaveTranscript writes the transcript as indented JSON under TranscriptDir,
// assigning a ULID when the transcript has no ID yet. Returns the file path.
func SaveTranscript(t *Transcript) (string, error) {
	if t.ID == "" {
		t.ID = ulid.Make().String()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}

	if err := os.MkdirAll(TranscriptDir, 0755); err != nil {
		return "", fmt.Errorf("create transcript dir: %w", err)
	}

	path := filepath.Join(TranscriptDir, t.ID+".json")
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal transcript: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write transcript to %s: %w", path, err)
	}
	return path, nil
}
