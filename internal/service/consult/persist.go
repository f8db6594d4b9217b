package consult

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// artifact is the persisted session shape, JSON-compatible for
// downstream tooling.
type artifact struct {
	SessionID string         `json:"session_id"`
	SavedAt   time.Time      `json:"timestamp"`
	History   []turnArtifact `json:"conversation_history"`
}

type turnArtifact struct {
	Timestamp time.Time `json:"timestamp"`
	Speaker   string    `json:"speaker"`
	Message   string    `json:"message"`
	FollowUp  bool      `json:"follow_up,omitempty"`
}

// SaveTranscript writes the session artifact into dir and returns the
// file path. It snapshots the transcript under the lock, so a save
// triggered by an interruption captures every fully appended turn and
// nothing partial.
func (s *Service) SaveTranscript(dir string) (string, error) {
	turns := s.Transcript()

	history := make([]turnArtifact, 0, len(turns))
	for _, t := range turns {
		history = append(history, turnArtifact{
			Timestamp: t.Timestamp,
			Speaker:   t.Speaker,
			Message:   t.Message,
			FollowUp:  t.FollowUp,
		})
	}

	payload, err := json.MarshalIndent(artifact{
		SessionID: s.session.ID,
		SavedAt:   time.Now().UTC(),
		History:   history,
	}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode session %s: %w", s.session.ID, err)
	}

	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create session dir: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("consultation_session_%s.json", s.session.ID))
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return "", fmt.Errorf("write session %s: %w", s.session.ID, err)
	}

	s.logger.Info("conversation saved", zap.String("path", path))
	return path, nil
}
