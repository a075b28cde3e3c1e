package skill

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeTechnical Type = "technical"
	TypeSoft      Type = "soft"
)

// Skill is canonical reference data. Rows are created by taxonomy import and
// never mutated by the engine.
type Skill struct {
	ID             uuid.UUID
	Name           string
	NormalizedName string
	Type           Type
	Category       string
	CreatedAt      time.Time
}

// Mention is a raw skill reference from an upstream collaborator (document
// extraction or job ingestion) before taxonomy resolution. Weight is
// proficiency on the user side and importance on the job side.
type Mention struct {
	Name       string
	Weight     float64
	Confidence float64
	Source     string
}

// Resolved is a mention mapped onto a canonical skill.
type Resolved struct {
	Skill      Skill
	Weight     float64
	Confidence float64
	Source     string
}
