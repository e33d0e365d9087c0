package roleplay

import (
	"time"

	"github.com/google/uuid"
)

// Lifecycle event subjects, published when an event bus is configured.
const (
	SubjectSessionStarted = "practice.session.started"
	SubjectSessionEnded   = "practice.session.ended"
)

type SessionStarted struct {
	SessionID uuid.UUID `json:"session_id"`
	PersonaID uuid.UUID `json:"persona_id"`
	ScriptID  uuid.UUID `json:"script_id"`
	StartedAt time.Time `json:"started_at"`
}

type SessionEnded struct {
	SessionID   uuid.UUID `json:"session_id"`
	TurnCount   int       `json:"turn_count"`
	HasFeedback bool      `json:"has_feedback"`
	EndedAt     time.Time `json:"ended_at"`
}
