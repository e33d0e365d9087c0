// Package catalog holds the read-only persona and script records that
// ground a practice session. Records are seeded once and never mutated
// by the roleplay core.
package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Persona is a simulated buyer: identity plus the behavioral directive
// fed verbatim into the roleplay system prompt.
type Persona struct {
	ID                 uuid.UUID
	Name               string
	RoleTitle          string
	PersonalitySummary string
	SystemPrompt       string
	Difficulty         string // easy | medium | hard
	AvatarEmoji        string
	Traits             []string
}

// Script is the calling scenario. Section content is shown to the
// human in the UI; only the targeting fields reach the model.
type Script struct {
	ID              uuid.UUID
	Title           string
	Description     string
	Industry        string
	CompanySize     string
	TargetLocation  string
	ProductName     string
	TargetRole      string
	DifficultyLevel string
	CreatedAt       time.Time
	Sections        []ScriptSection
}

type ScriptSection struct {
	ID            uuid.UUID
	ScriptID      uuid.UUID
	SectionType   string // intro | discovery | pitch | objection_handling | close
	Title         string
	Content       string
	TalkingPoints []string
	Tips          string
	OrderIndex    int
}

// ScriptFilter narrows a script listing. Zero-value fields are ignored;
// Industry and CompanySize match exactly, Location and Search are
// case-insensitive substring matches (Search covers title and
// description).
type ScriptFilter struct {
	Industry    string
	CompanySize string
	Location    string
	Search      string
}

// FilterOptions lists the distinct values present across stored scripts,
// so a UI can offer only filters that select something.
type FilterOptions struct {
	Industries   []string
	CompanySizes []string
	Locations    []string
}
