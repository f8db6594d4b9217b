package consult

import "time"

// Speaker labels reserved for non-persona turns.
const (
	SpeakerUser   = "User"
	SpeakerSystem = "System"
)

// Turn is one immutable transcript entry. Turns are only ever appended,
// in chronological order, by the orchestrator.
type Turn struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Speaker   string    `json:"speaker"`
	Message   string    `json:"message"`
	FollowUp  bool      `json:"followUp,omitempty"`
}

// Session names one consultation run and owns its ordered transcript.
// The identifier is derived from the start time and never changes; it
// keys the persisted artifact.
type Session struct {
	ID        string    `json:"sessionId"`
	StartedAt time.Time `json:"startedAt"`
	Turns     []Turn    `json:"conversationHistory"`
}

// SessionIDFormat is the start-time layout used as session identifier,
// e.g. 20260823_151004.
const SessionIDFormat = "20060102_150405"

// NewSession starts a session stamped with now.
func NewSession(now time.Time) *Session {
	return &Session{
		ID:        now.Format(SessionIDFormat),
		StartedAt: now,
	}
}
