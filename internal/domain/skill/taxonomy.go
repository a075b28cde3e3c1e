package skill

import (
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Taxonomy is the canonical skill catalog. It is immutable once built; a
// refresh builds a new Taxonomy and swaps it in at the provider level, so
// lookups never need locking.
type Taxonomy struct {
	byID   map[uuid.UUID]Skill
	byNorm map[string]Skill
}

func NewTaxonomy(skills []Skill) *Taxonomy {
	t := &Taxonomy{
		byID:   make(map[uuid.UUID]Skill, len(skills)),
		byNorm: make(map[string]Skill, len(skills)),
	}
	for _, s := range skills {
		if s.ID == uuid.Nil {
			continue
		}
		if s.NormalizedName == "" {
			s.NormalizedName = Normalize(s.Name)
		}
		t.byID[s.ID] = s
		t.byNorm[s.NormalizedName] = s
	}
	return t
}

func (t *Taxonomy) Len() int {
	if t == nil {
		return 0
	}
	return len(t.byID)
}

func (t *Taxonomy) ByID(id uuid.UUID) (Skill, bool) {
	if t == nil {
		return Skill{}, false
	}
	s, ok := t.byID[id]
	return s, ok
}

func (t *Taxonomy) ByName(name string) (Skill, bool) {
	if t == nil {
		return Skill{}, false
	}
	s, ok := t.byNorm[Normalize(name)]
	return s, ok
}

func (t *Taxonomy) IsTechnical(id uuid.UUID) bool {
	s, ok := t.ByID(id)
	return ok && s.Type == TypeTechnical
}

// All returns the catalog ordered by display name.
func (t *Taxonomy) All() []Skill {
	if t == nil {
		return nil
	}
	out := make([]Skill, 0, len(t.byID))
	for _, s := range t.byID {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}

// Resolve maps raw mentions onto canonical skills. Unknown names are dropped,
// not errored: extraction noise is expected upstream. Dropped names surface at
// debug level only.
func (t *Taxonomy) Resolve(mentions []Mention, log *zap.Logger) []Resolved {
	out := make([]Resolved, 0, len(mentions))
	for _, m := range mentions {
		if !ValidName(m.Name) {
			if log != nil {
				log.Debug("dropped invalid skill mention", zap.String("name", m.Name))
			}
			continue
		}
		s, ok := t.ByName(m.Name)
		if !ok {
			if log != nil {
				log.Debug("dropped unknown skill mention", zap.String("name", m.Name))
			}
			continue
		}
		out = append(out, Resolved{
			Skill:      s,
			Weight:     m.Weight,
			Confidence: m.Confidence,
			Source:     m.Source,
		})
	}
	return out
}

var aliasSuffixes = []string{
	" (programming language)",
	" (software)",
	" (framework)",
}

// Normalize lowercases, collapses whitespace, and strips catalog qualifier
// suffixes so that "Python (Programming Language)" and "python" resolve to the
// same canonical entry.
func Normalize(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.Join(strings.Fields(n), " ")
	for _, suf := range aliasSuffixes {
		n = strings.TrimSuffix(n, suf)
	}
	return n
}

var noiseNames = map[string]struct{}{
	"job": {}, "description": {}, "position": {}, "role": {},
	"requirements": {}, "responsibilities": {}, "benefits": {},
	"salary": {}, "company": {}, "team": {}, "career": {},
	"com": {}, "inc": {}, "ltd": {}, "llc": {}, "www": {},
}

// ValidName rejects obvious extraction noise: too-short tokens and job-posting
// boilerplate that upstream extractors are known to emit.
func ValidName(name string) bool {
	n := Normalize(name)
	if len(n) <= 2 {
		return false
	}
	if _, ok := noiseNames[n]; ok {
		return false
	}
	return true
}
