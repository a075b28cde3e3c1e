package alignment

import (
	"testing"

	"github.com/google/uuid"
)

func TestScore_EmptyRequirementsYieldZero(t *testing.T) {
	user := map[uuid.UUID]Proficiency{uuid.New(): {Weight: 0.9, Confidence: 1}}
	if got := Score(user, nil, 1.2); got != 0 {
		t.Fatalf("expected 0 for empty requirements, got %v", got)
	}
}

func TestScore_NoMatchedSkills(t *testing.T) {
	reqs := []Requirement{
		{SkillID: uuid.New(), Importance: 0.8},
		{SkillID: uuid.New(), Importance: 0.5},
	}
	if got := Score(map[uuid.UUID]Proficiency{}, reqs, 1.2); got != 0 {
		t.Fatalf("expected 0 with no matched skills, got %v", got)
	}
}

func TestScore_FullProficiencyFullConfidence(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	reqs := []Requirement{
		{SkillID: a, Importance: 0.8},
		{SkillID: b, Importance: 0.6},
	}
	user := map[uuid.UUID]Proficiency{
		a: {Weight: 1, Confidence: 1},
		b: {Weight: 1, Confidence: 1},
	}
	if got := Score(user, reqs, 1.0); got != 1 {
		t.Fatalf("expected perfect alignment 1, got %v", got)
	}
}

func TestScore_BoundedWithTechnicalMultiplier(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	reqs := []Requirement{
		{SkillID: a, Importance: 1, Technical: true},
		{SkillID: b, Importance: 1, Technical: true},
	}
	user := map[uuid.UUID]Proficiency{
		a: {Weight: 1, Confidence: 1},
		b: {Weight: 1, Confidence: 1},
	}

	// Numerator alone would be 2.4 over a denominator of 2; the clamp keeps
	// the score inside the unit interval.
	if got := Score(user, reqs, 1.2); got != 1 {
		t.Fatalf("expected clamped score 1, got %v", got)
	}
}

func TestScore_TechnicalMultiplierRewardsTechnicalMastery(t *testing.T) {
	tech, soft := uuid.New(), uuid.New()
	user := map[uuid.UUID]Proficiency{
		tech: {Weight: 0.5, Confidence: 1},
		soft: {Weight: 0.5, Confidence: 1},
	}

	techReqs := []Requirement{
		{SkillID: tech, Importance: 0.8, Technical: true},
		{SkillID: uuid.New(), Importance: 0.8},
	}
	softReqs := []Requirement{
		{SkillID: soft, Importance: 0.8},
		{SkillID: uuid.New(), Importance: 0.8},
	}

	techScore := Score(user, techReqs, 1.2)
	softScore := Score(user, softReqs, 1.2)
	if techScore <= softScore {
		t.Fatalf("expected technical match to score higher: %v <= %v", techScore, softScore)
	}
}

func TestScore_MonotonicInProficiency(t *testing.T) {
	target := uuid.New()
	other := uuid.New()
	reqs := []Requirement{
		{SkillID: target, Importance: 0.9, Technical: true},
		{SkillID: other, Importance: 0.7},
	}

	prev := -1.0
	for p := 0.0; p <= 1.0; p += 0.1 {
		user := map[uuid.UUID]Proficiency{
			target: {Weight: p, Confidence: 0.8},
			other:  {Weight: 0.4, Confidence: 0.8},
		}
		got := Score(user, reqs, 1.2)
		if got < prev {
			t.Fatalf("alignment decreased when proficiency rose to %.1f: %v < %v", p, got, prev)
		}
		if got < 0 || got > 1 {
			t.Fatalf("alignment out of [0,1]: %v", got)
		}
		prev = got
	}
}

func TestScore_ConfidenceDampens(t *testing.T) {
	id := uuid.New()
	reqs := []Requirement{{SkillID: id, Importance: 0.8}}

	confident := Score(map[uuid.UUID]Proficiency{id: {Weight: 0.9, Confidence: 1}}, reqs, 1.2)
	uncertain := Score(map[uuid.UUID]Proficiency{id: {Weight: 0.9, Confidence: 0.3}}, reqs, 1.2)
	if uncertain >= confident {
		t.Fatalf("expected low confidence to dampen score: %v >= %v", uncertain, confident)
	}
}

func TestScore_MalformedInputsClipped(t *testing.T) {
	id := uuid.New()
	reqs := []Requirement{{SkillID: id, Importance: 3.0}}
	user := map[uuid.UUID]Proficiency{id: {Weight: 2.0, Confidence: -1}}

	got := Score(user, reqs, 1.2)
	if got < 0 || got > 1 {
		t.Fatalf("expected clipped inputs to keep score in [0,1], got %v", got)
	}
}
