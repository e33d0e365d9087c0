// Package roleplay is the conversation core: it assembles model prompts
// from a persona, a script and a transcript, runs one exchange at a time,
// and produces coaching feedback when a session ends.
package roleplay

import (
	"time"

	"github.com/google/uuid"
	"github.com/nvelop/pitchdrill/internal/catalog"
)

type Role string

const (
	RoleUser      Role = "user"      // the human SDR
	RoleAssistant Role = "assistant" // the simulated persona
)

// State is the session lifecycle. The only legal transition is
// StateActive → StateEnded, and it happens exactly once.
type State string

const (
	StateActive State = "active"
	StateEnded  State = "ended"
)

// Turn is one immutable message in a session transcript. Order is
// semantically significant: turns are replayed verbatim into the prompt.
type Turn struct {
	ID        uuid.UUID
	SessionID uuid.UUID
	Role      Role
	Content   string
	CreatedAt time.Time
}

// Session binds one persona and one script for its entire life.
// EndedAt and FeedbackSummary are set only by the end transition.
type Session struct {
	ID              uuid.UUID
	PersonaID       uuid.UUID
	ScriptID        uuid.UUID
	State           State
	StartedAt       time.Time
	EndedAt         *time.Time
	FeedbackSummary *string

	Persona *catalog.Persona
	Script  *catalog.Script
	Turns   []Turn
}

// Exchange is the result of one successful turn submission.
type Exchange struct {
	User      Turn
	Assistant Turn
}
