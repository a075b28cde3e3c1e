package gap

import (
	"sort"

	"github.com/google/uuid"

	"skill-align/internal/domain/skill"
	"skill-align/internal/domain/vector"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Gap is one unmet job requirement for a user. Derived from a comparison, not
// independently mutable.
type Gap struct {
	SkillID        uuid.UUID  `json:"skill_id"`
	SkillName      string     `json:"skill_name"`
	SkillType      skill.Type `json:"skill_type"`
	RequiredWeight float64    `json:"required_weight"`
	UserWeight     float64    `json:"user_weight"`
	Priority       Priority   `json:"priority"`
	EstimatedHours int        `json:"estimated_hours"`
}

// PriorityFor classifies by job-side importance: high >= 0.7,
// medium in [0.4, 0.7), low below.
func PriorityFor(required float64) Priority {
	switch {
	case required >= 0.7:
		return PriorityHigh
	case required >= 0.4:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// Analyze emits exactly one gap per job skill the user does not meet: missing
// entirely, or held below the required weight. Skills the user meets at or
// above the requirement never produce a gap. The result is stable-ordered:
// priority, then required weight descending, then delta descending, then
// skill id ascending.
func Analyze(user, job vector.Vector, tax *skill.Taxonomy, table EffortTable) []Gap {
	gaps := make([]Gap, 0, len(job))
	for id, required := range job {
		actual := user[id]
		if actual >= required {
			continue
		}

		name := ""
		st := skill.TypeTechnical
		if s, ok := tax.ByID(id); ok {
			name = s.Name
			st = s.Type
		}

		gaps = append(gaps, Gap{
			SkillID:        id,
			SkillName:      name,
			SkillType:      st,
			RequiredWeight: required,
			UserWeight:     actual,
			Priority:       PriorityFor(required),
			EstimatedHours: table.Hours(st, required-actual),
		})
	}

	sort.Slice(gaps, func(i, j int) bool {
		a, b := gaps[i], gaps[j]
		if a.Priority != b.Priority {
			return priorityRank(a.Priority) < priorityRank(b.Priority)
		}
		if a.RequiredWeight != b.RequiredWeight {
			return a.RequiredWeight > b.RequiredWeight
		}
		da := a.RequiredWeight - a.UserWeight
		db := b.RequiredWeight - b.UserWeight
		if da != db {
			return da > db
		}
		return a.SkillID.String() < b.SkillID.String()
	})

	return gaps
}

func priorityRank(p Priority) int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}
