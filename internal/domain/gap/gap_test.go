package gap

import (
	"testing"

	"github.com/google/uuid"

	"skill-align/internal/domain/skill"
	"skill-align/internal/domain/vector"
)

func testTaxonomy(skills ...skill.Skill) *skill.Taxonomy {
	return skill.NewTaxonomy(skills)
}

func TestAnalyze_WorkedExample(t *testing.T) {
	python := skill.Skill{ID: uuid.New(), Name: "Python", Type: skill.TypeTechnical}
	sql := skill.Skill{ID: uuid.New(), Name: "SQL", Type: skill.TypeTechnical}
	docker := skill.Skill{ID: uuid.New(), Name: "Docker", Type: skill.TypeTechnical}
	tax := testTaxonomy(python, sql, docker)

	user := vector.Vector{python.ID: 0.8, sql.ID: 0.6}
	job := vector.Vector{python.ID: 1.0, sql.ID: 0.5, docker.ID: 0.7}

	gaps := Analyze(user, job, tax, NewEffortTable(40, 20))

	// SQL is held above its requirement; Python is under 1.0, Docker missing.
	if len(gaps) != 2 {
		t.Fatalf("expected 2 gaps, got %d: %+v", len(gaps), gaps)
	}

	var dockerGap *Gap
	for i := range gaps {
		if gaps[i].SkillID == docker.ID {
			dockerGap = &gaps[i]
		}
	}
	if dockerGap == nil {
		t.Fatalf("expected a Docker gap")
	}
	if dockerGap.Priority != PriorityHigh {
		t.Fatalf("expected Docker priority high, got %s", dockerGap.Priority)
	}
	if dockerGap.RequiredWeight != 0.7 || dockerGap.UserWeight != 0 {
		t.Fatalf("unexpected Docker gap weights: %+v", dockerGap)
	}
}

func TestAnalyze_Completeness(t *testing.T) {
	tax := testTaxonomy()
	job := vector.Vector{}
	user := vector.Vector{}

	met := make(map[uuid.UUID]bool)
	for i := 0; i < 10; i++ {
		id := uuid.New()
		required := float64(i+1) / 10
		job[id] = required
		if i%2 == 0 {
			user[id] = required // exactly met, no gap
			met[id] = true
		} else if i%3 == 0 {
			user[id] = required / 2 // weak, gap
		}
	}

	gaps := Analyze(user, job, tax, NewEffortTable(40, 20))

	seen := make(map[uuid.UUID]int)
	for _, g := range gaps {
		seen[g.SkillID]++
	}
	for id, required := range job {
		actual := user[id]
		if actual >= required {
			if seen[id] != 0 {
				t.Fatalf("skill met but gap emitted: %s", id)
			}
			continue
		}
		if seen[id] != 1 {
			t.Fatalf("expected exactly one gap for unmet skill %s, got %d", id, seen[id])
		}
	}
}

func TestAnalyze_EmptyVectors(t *testing.T) {
	tax := testTaxonomy()
	if gaps := Analyze(vector.Vector{}, vector.Vector{}, tax, NewEffortTable(40, 20)); len(gaps) != 0 {
		t.Fatalf("expected no gaps for empty vectors, got %d", len(gaps))
	}
	if gaps := Analyze(vector.Vector{uuid.New(): 0.9}, vector.Vector{}, tax, NewEffortTable(40, 20)); len(gaps) != 0 {
		t.Fatalf("expected no gaps for empty job vector, got %d", len(gaps))
	}
}

func TestAnalyze_StableOrdering(t *testing.T) {
	tax := testTaxonomy()
	job := vector.Vector{
		uuid.New(): 0.9,  // high
		uuid.New(): 0.7,  // high
		uuid.New(): 0.65, // medium
		uuid.New(): 0.4,  // medium
		uuid.New(): 0.2,  // low
	}
	user := vector.Vector{}

	table := NewEffortTable(40, 20)
	first := Analyze(user, job, tax, table)
	if len(first) != 5 {
		t.Fatalf("expected 5 gaps, got %d", len(first))
	}

	for i := 1; i < len(first); i++ {
		if priorityRank(first[i-1].Priority) > priorityRank(first[i].Priority) {
			t.Fatalf("priority order violated at %d", i)
		}
		if first[i-1].Priority == first[i].Priority && first[i-1].RequiredWeight < first[i].RequiredWeight {
			t.Fatalf("required-weight order violated at %d", i)
		}
	}

	for run := 0; run < 5; run++ {
		again := Analyze(user, job, tax, table)
		for i := range first {
			if again[i].SkillID != first[i].SkillID {
				t.Fatalf("ordering not deterministic at %d", i)
			}
		}
	}
}

func TestAnalyze_TieBreakTowardLargerDelta(t *testing.T) {
	tax := testTaxonomy()
	a, b := uuid.New(), uuid.New()

	job := vector.Vector{a: 0.8, b: 0.8}
	user := vector.Vector{a: 0.5} // b is missing entirely, larger delta

	gaps := Analyze(user, job, tax, NewEffortTable(40, 20))
	if len(gaps) != 2 {
		t.Fatalf("expected 2 gaps, got %d", len(gaps))
	}
	if gaps[0].SkillID != b {
		t.Fatalf("expected larger-delta gap first, got %s", gaps[0].SkillID)
	}
}

func TestPriorityFor_Thresholds(t *testing.T) {
	cases := []struct {
		required float64
		want     Priority
	}{
		{1.0, PriorityHigh},
		{0.7, PriorityHigh},
		{0.69, PriorityMedium},
		{0.4, PriorityMedium},
		{0.39, PriorityLow},
		{0, PriorityLow},
	}
	for _, tc := range cases {
		if got := PriorityFor(tc.required); got != tc.want {
			t.Fatalf("PriorityFor(%v) = %s, want %s", tc.required, got, tc.want)
		}
	}
}
