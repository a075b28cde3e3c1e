package vector

import (
	"sort"

	"github.com/google/uuid"
)

// Mention is one (skill, weight, confidence) observation already resolved to a
// canonical skill id. Weight carries proficiency for users and importance for
// jobs.
type Mention struct {
	SkillID    uuid.UUID
	Weight     float64
	Confidence float64
}

// Vector maps canonical skill id to effective weight in [0,1]. Vectors are
// derived values, built fresh per computation and cached by the caller when
// worthwhile; they are never persisted.
type Vector map[uuid.UUID]float64

// Build converts mentions into a vector. Effective weight is
// clip01(weight) * clip01(confidence); confidence dampens uncertain
// extractions. Duplicate skill ids collapse via max so repeated extraction
// passes cannot inflate a skill. Empty input yields an empty vector.
func Build(mentions []Mention) Vector {
	v := make(Vector, len(mentions))
	for _, m := range mentions {
		if m.SkillID == uuid.Nil {
			continue
		}
		w := Clip01(m.Weight) * Clip01(m.Confidence)
		if cur, ok := v[m.SkillID]; !ok || w > cur {
			v[m.SkillID] = w
		}
	}
	return v
}

// Keys returns the skill ids in deterministic order.
func (v Vector) Keys() []uuid.UUID {
	keys := make([]uuid.UUID, 0, len(v))
	for id := range v {
		keys = append(keys, id)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	return keys
}

func Clip01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// OutOfRange reports whether an upstream value needed clipping. Callers use it
// to log defensive normalization at warn level without making Build impure.
func OutOfRange(f float64) bool {
	return f < 0 || f > 1
}
