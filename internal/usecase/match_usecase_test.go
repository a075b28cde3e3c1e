package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"skill-align/internal/config"
	"skill-align/internal/domain/scoring"
	"skill-align/internal/repository"
)

func testScoringConfig() config.ScoringConfig {
	return config.ScoringConfig{
		AlgorithmVersion:      "composite-v1",
		JaccardWeight:         0.4,
		CosineWeight:          0.4,
		CoverageWeight:        0.2,
		MinComposite:          0.05,
		TechnicalMultiplier:   1.2,
		IDFRefreshTTL:         time.Hour,
		TechnicalHoursPerUnit: 40,
		SoftHoursPerUnit:      20,
	}
}

func newTestMatch(users *mockUserSkillRepo, jobs *mockJobRepo, jobSkills *mockJobSkillRepo, results *mockMatchResultRepo) *Match {
	idf := NewIDFProvider(jobSkills, time.Hour)
	return NewMatchUsecase(users, jobs, jobSkills, results, idf, noopCache{}, zap.NewNop(), testScoringConfig())
}

func TestMatchUsecase_RankJobs_NilUser(t *testing.T) {
	u := newTestMatch(&mockUserSkillRepo{}, &mockJobRepo{}, &mockJobSkillRepo{}, &mockMatchResultRepo{})

	_, err := u.RankJobs(context.Background(), uuid.Nil, RankOptions{})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestMatchUsecase_RankJobs_EmptyProfile(t *testing.T) {
	userID := uuid.New()
	u := newTestMatch(&mockUserSkillRepo{}, &mockJobRepo{}, &mockJobSkillRepo{}, &mockMatchResultRepo{})

	_, err := u.RankJobs(context.Background(), userID, RankOptions{})
	if !errors.Is(err, ErrUserSkillProfileEmpty) {
		t.Fatalf("expected ErrUserSkillProfileEmpty, got %v", err)
	}
}

func TestMatchUsecase_RankJobs_PersistsAllButFiltersFloor(t *testing.T) {
	userID := uuid.New()
	skillA := uuid.New()
	skillB := uuid.New()
	overlapJob := uuid.New()
	disjointJob := uuid.New()

	users := &mockUserSkillRepo{skills: map[uuid.UUID][]repository.UserSkill{
		userID: {{SkillID: skillA, SkillName: "go", Proficiency: 0.9, Confidence: 1}},
	}}
	jobs := &mockJobRepo{jobs: map[uuid.UUID]repository.Job{
		overlapJob:  {ID: overlapJob, ExternalID: "j1", Title: "Backend Engineer", Company: "Acme"},
		disjointJob: {ID: disjointJob, ExternalID: "j2", Title: "Designer", Company: "Acme"},
	}}
	jobSkills := &mockJobSkillRepo{reqs: map[uuid.UUID][]repository.JobSkillRequirement{
		overlapJob:  {{SkillID: skillA, SkillName: "go", Importance: 1, Technical: true}},
		disjointJob: {{SkillID: skillB, SkillName: "figma", Importance: 1, Technical: true}},
	}}
	results := &mockMatchResultRepo{}

	u := newTestMatch(users, jobs, jobSkills, results)

	ranked, err := u.RankJobs(context.Background(), userID, RankOptions{})
	if err != nil {
		t.Fatalf("RankJobs: %v", err)
	}

	// The disjoint job scores a zero composite. It stays persisted so stats
	// see the whole corpus, but it falls below the floor in the ranking.
	if len(results.results) != 2 {
		t.Fatalf("expected 2 persisted results, got %d", len(results.results))
	}
	if len(ranked) != 1 {
		t.Fatalf("expected 1 ranked match above floor, got %d", len(ranked))
	}
	if ranked[0].JobID != overlapJob {
		t.Fatalf("expected top match %s, got %s", overlapJob, ranked[0].JobID)
	}
	if ranked[0].Title != "Backend Engineer" {
		t.Fatalf("expected job metadata joined in, got title %q", ranked[0].Title)
	}
	if ranked[0].Breakdown.Composite <= 0 || ranked[0].Breakdown.Composite > 1 {
		t.Fatalf("composite out of range: %f", ranked[0].Breakdown.Composite)
	}
	if len(ranked[0].MatchingSkillIDs) != 1 || ranked[0].MatchingSkillIDs[0] != skillA {
		t.Fatalf("unexpected matching skills: %v", ranked[0].MatchingSkillIDs)
	}
}

func TestMatchUsecase_RankJobs_DeterministicTieBreak(t *testing.T) {
	userID := uuid.New()
	skillA := uuid.New()
	jobX := uuid.New()
	jobY := uuid.New()

	users := &mockUserSkillRepo{skills: map[uuid.UUID][]repository.UserSkill{
		userID: {{SkillID: skillA, Proficiency: 0.8, Confidence: 1}},
	}}
	jobs := &mockJobRepo{jobs: map[uuid.UUID]repository.Job{
		jobX: {ID: jobX, ExternalID: "x", Title: "X"},
		jobY: {ID: jobY, ExternalID: "y", Title: "Y"},
	}}
	jobSkills := &mockJobSkillRepo{reqs: map[uuid.UUID][]repository.JobSkillRequirement{
		jobX: {{SkillID: skillA, Importance: 1}},
		jobY: {{SkillID: skillA, Importance: 1}},
	}}

	u := newTestMatch(users, jobs, jobSkills, &mockMatchResultRepo{})

	first, err := u.RankJobs(context.Background(), userID, RankOptions{})
	if err != nil {
		t.Fatalf("RankJobs: %v", err)
	}
	second, err := u.RankJobs(context.Background(), userID, RankOptions{})
	if err != nil {
		t.Fatalf("RankJobs rerun: %v", err)
	}

	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("expected both jobs ranked, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i].JobID != second[i].JobID {
			t.Fatalf("order changed between runs at %d: %s vs %s", i, first[i].JobID, second[i].JobID)
		}
	}
	// Identical scores break the tie on ascending job id.
	if first[0].JobID.String() > first[1].JobID.String() {
		t.Fatalf("tie not broken by job id: %s before %s", first[0].JobID, first[1].JobID)
	}
}

func TestMatchUsecase_GetMatches_ReadsStoredResults(t *testing.T) {
	userID := uuid.New()
	skillA := uuid.New()
	jobID := uuid.New()

	users := &mockUserSkillRepo{skills: map[uuid.UUID][]repository.UserSkill{
		userID: {{SkillID: skillA, Proficiency: 1, Confidence: 1}},
	}}
	jobs := &mockJobRepo{jobs: map[uuid.UUID]repository.Job{
		jobID: {ID: jobID, ExternalID: "j", Title: "Platform Engineer"},
	}}
	jobSkills := &mockJobSkillRepo{reqs: map[uuid.UUID][]repository.JobSkillRequirement{
		jobID: {{SkillID: skillA, Importance: 1}},
	}}
	results := &mockMatchResultRepo{}

	u := newTestMatch(users, jobs, jobSkills, results)
	if _, err := u.RankJobs(context.Background(), userID, RankOptions{}); err != nil {
		t.Fatalf("RankJobs: %v", err)
	}

	got, err := u.GetMatches(context.Background(), userID, 10)
	if err != nil {
		t.Fatalf("GetMatches: %v", err)
	}
	if len(got) != 1 || got[0].JobID != jobID {
		t.Fatalf("expected stored match for %s, got %+v", jobID, got)
	}
	if got[0].Title != "Platform Engineer" {
		t.Fatalf("expected metadata join on read path, got %q", got[0].Title)
	}
}

func TestMatchUsecase_GetMatchDetail_NotFound(t *testing.T) {
	u := newTestMatch(&mockUserSkillRepo{}, &mockJobRepo{}, &mockJobSkillRepo{}, &mockMatchResultRepo{})

	_, err := u.GetMatchDetail(context.Background(), uuid.New(), uuid.New())
	if !errors.Is(err, ErrMatchNotFound) {
		t.Fatalf("expected ErrMatchNotFound, got %v", err)
	}
}

func TestMatchUsecase_Stats(t *testing.T) {
	userID := uuid.New()
	skillA := uuid.New()
	skillB := uuid.New()
	strongJob := uuid.New()
	weakJob := uuid.New()

	users := &mockUserSkillRepo{skills: map[uuid.UUID][]repository.UserSkill{
		userID: {{SkillID: skillA, Proficiency: 1, Confidence: 1}},
	}}
	jobs := &mockJobRepo{jobs: map[uuid.UUID]repository.Job{
		strongJob: {ID: strongJob, ExternalID: "s", Title: "S"},
		weakJob:   {ID: weakJob, ExternalID: "w", Title: "W"},
	}}
	jobSkills := &mockJobSkillRepo{reqs: map[uuid.UUID][]repository.JobSkillRequirement{
		strongJob: {{SkillID: skillA, Importance: 1}},
		weakJob:   {{SkillID: skillB, Importance: 1}},
	}}

	u := newTestMatch(users, jobs, jobSkills, &mockMatchResultRepo{})
	if _, err := u.RankJobs(context.Background(), userID, RankOptions{}); err != nil {
		t.Fatalf("RankJobs: %v", err)
	}

	st, err := u.Stats(context.Background(), userID)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if st.Total != 2 {
		t.Fatalf("expected 2 scored jobs, got %d", st.Total)
	}
	if st.HighCount != 1 || st.MediumCount != 0 || st.LowCount != 1 {
		t.Fatalf("expected 1 high / 0 medium / 1 low, got %d/%d/%d", st.HighCount, st.MediumCount, st.LowCount)
	}
	if st.MaxComposite < 0.7 {
		t.Fatalf("expected a strong max composite, got %f", st.MaxComposite)
	}
}

func TestMatchUsecase_RankJobs_WeightsOverrideIsPreview(t *testing.T) {
	userID := uuid.New()
	skillA := uuid.New()
	jobID := uuid.New()

	users := &mockUserSkillRepo{skills: map[uuid.UUID][]repository.UserSkill{
		userID: {{SkillID: skillA, Proficiency: 0.6, Confidence: 1}},
	}}
	jobs := &mockJobRepo{jobs: map[uuid.UUID]repository.Job{
		jobID: {ID: jobID, ExternalID: "j", Title: "Backend"},
	}}
	jobSkills := &mockJobSkillRepo{reqs: map[uuid.UUID][]repository.JobSkillRequirement{
		jobID: {{SkillID: skillA, Importance: 1}},
	}}
	results := &mockMatchResultRepo{}

	u := newTestMatch(users, jobs, jobSkills, results)

	ranked, err := u.RankJobs(context.Background(), userID, RankOptions{
		Weights: &scoring.Weights{Jaccard: 1, Cosine: 0, Coverage: 0},
	})
	if err != nil {
		t.Fatalf("RankJobs with override: %v", err)
	}
	if len(ranked) != 1 {
		t.Fatalf("expected 1 preview match, got %d", len(ranked))
	}
	// Pure jaccard on a full overlap scores 1 regardless of proficiency.
	if ranked[0].Breakdown.Composite != 1 {
		t.Fatalf("expected composite 1 under jaccard-only weights, got %f", ranked[0].Breakdown.Composite)
	}
	if len(results.results) != 0 {
		t.Fatalf("preview run must not persist, got %d rows", len(results.results))
	}

	_, err = u.RankJobs(context.Background(), userID, RankOptions{
		Weights: &scoring.Weights{Jaccard: -1, Cosine: 1, Coverage: 1},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative weight, got %v", err)
	}
}

func TestMatchUsecase_RankJobs_JobSubset(t *testing.T) {
	userID := uuid.New()
	skillA := uuid.New()
	jobX := uuid.New()
	jobY := uuid.New()

	users := &mockUserSkillRepo{skills: map[uuid.UUID][]repository.UserSkill{
		userID: {{SkillID: skillA, Proficiency: 0.9, Confidence: 1}},
	}}
	jobs := &mockJobRepo{jobs: map[uuid.UUID]repository.Job{
		jobX: {ID: jobX, ExternalID: "x", Title: "X"},
		jobY: {ID: jobY, ExternalID: "y", Title: "Y"},
	}}
	jobSkills := &mockJobSkillRepo{reqs: map[uuid.UUID][]repository.JobSkillRequirement{
		jobX: {{SkillID: skillA, Importance: 1}},
		jobY: {{SkillID: skillA, Importance: 1}},
	}}
	results := &mockMatchResultRepo{}

	u := newTestMatch(users, jobs, jobSkills, results)

	// Unknown ids are ignored, known ones rank; only the subset is persisted.
	ranked, err := u.RankJobs(context.Background(), userID, RankOptions{
		JobIDs: []uuid.UUID{jobX, uuid.New()},
	})
	if err != nil {
		t.Fatalf("RankJobs subset: %v", err)
	}
	if len(ranked) != 1 || ranked[0].JobID != jobX {
		t.Fatalf("expected only the requested job ranked, got %+v", ranked)
	}
	if len(results.results) != 1 {
		t.Fatalf("expected 1 persisted result, got %d", len(results.results))
	}
}
