package alignment

import (
	"github.com/google/uuid"

	"skill-align/internal/domain/vector"
)

// Requirement is one skill an industry asks for, with the importance averaged
// over that industry's job postings.
type Requirement struct {
	SkillID    uuid.UUID
	Importance float64
	Technical  bool
}

// Proficiency is the user side of an alignment comparison. Confidence dampens
// the contribution of uncertainly-extracted skills.
type Proficiency struct {
	Weight     float64
	Confidence float64
}

// Score computes proficiency-weighted alignment against one industry:
//
//	score = sum(proficiency * importance * confidence) / sum(importance)
//
// The denominator assumes full proficiency and full confidence on every
// requirement. Technical skills contribute technicalMultiplier times to the
// numerator only; the denominator stays unmultiplied, and the result is
// clamped so it remains in [0,1] while technical mastery is still rewarded.
// An empty requirement set scores 0.
func Score(user map[uuid.UUID]Proficiency, reqs []Requirement, technicalMultiplier float64) float64 {
	if technicalMultiplier < 1 {
		technicalMultiplier = 1
	}

	var total, maxPossible float64
	for _, r := range reqs {
		if r.SkillID == uuid.Nil {
			continue
		}
		importance := vector.Clip01(r.Importance)
		maxPossible += importance

		p, ok := user[r.SkillID]
		if !ok {
			continue
		}
		contrib := vector.Clip01(p.Weight) * importance * vector.Clip01(p.Confidence)
		if r.Technical {
			contrib *= technicalMultiplier
		}
		total += contrib
	}

	if maxPossible <= 0 {
		return 0
	}
	return vector.Clip01(total / maxPossible)
}
