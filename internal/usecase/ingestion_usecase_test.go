package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"skill-align/internal/domain/skill"
)

type ingestionFixture struct {
	users     *mockUserSkillRepo
	jobs      *mockJobRepo
	jobSkills *mockJobSkillRepo
	idf       *IDFProvider
	ingestion *Ingestion
}

func newIngestionFixture(t *testing.T, catalog []skill.Skill) ingestionFixture {
	t.Helper()

	users := &mockUserSkillRepo{}
	jobs := &mockJobRepo{}
	jobSkills := &mockJobSkillRepo{}
	results := &mockMatchResultRepo{}
	snapshots := &mockSnapshotRepo{}
	tax := newTestTaxonomy(t, catalog)

	idf := NewIDFProvider(jobSkills, time.Hour)
	matches := NewMatchUsecase(users, jobs, jobSkills, results, idf, noopCache{}, zap.NewNop(), testScoringConfig())
	alignment := NewAlignmentUsecase(users, jobSkills, snapshots, noopCache{}, zap.NewNop(), testScoringConfig())
	rec := NewRecomputeUsecase(users, matches, alignment, noopCache{}, nil, zap.NewNop())

	return ingestionFixture{
		users:     users,
		jobs:      jobs,
		jobSkills: jobSkills,
		idf:       idf,
		ingestion: NewIngestionUsecase(users, jobs, jobSkills, tax, idf, rec, zap.NewNop()),
	}
}

func TestIngestionUsecase_ApplyExtractedSkills_EmptyMentions(t *testing.T) {
	f := newIngestionFixture(t, nil)

	_, err := f.ingestion.ApplyExtractedSkills(context.Background(), uuid.New(), nil)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestIngestionUsecase_ApplyExtractedSkills_DropsUnknownNames(t *testing.T) {
	userID := uuid.New()
	goID := uuid.New()

	f := newIngestionFixture(t, []skill.Skill{
		{ID: goID, Name: "Go", NormalizedName: "go", Type: skill.TypeTechnical},
	})

	report, err := f.ingestion.ApplyExtractedSkills(context.Background(), userID, []skill.Mention{
		{Name: "Go", Weight: 0.8, Confidence: 0.9},
		{Name: "Underwater Basket Weaving", Weight: 0.5, Confidence: 0.5},
		{Name: "x", Weight: 0.5, Confidence: 0.5},
	})
	if err != nil {
		t.Fatalf("ApplyExtractedSkills: %v", err)
	}
	if report.Applied != 1 || report.Dropped != 2 {
		t.Fatalf("expected 1 applied / 2 dropped, got %+v", report)
	}

	stored, _ := f.users.FindByUserID(context.Background(), userID)
	if len(stored) != 1 || stored[0].SkillID != goID {
		t.Fatalf("expected one profile row for go, got %+v", stored)
	}
	if stored[0].Source != "resume" {
		t.Fatalf("expected default source resume, got %q", stored[0].Source)
	}
}

func TestIngestionUsecase_ImportJobs_DropsIncompleteRows(t *testing.T) {
	goID := uuid.New()
	f := newIngestionFixture(t, []skill.Skill{
		{ID: goID, Name: "Go", NormalizedName: "go", Type: skill.TypeTechnical},
	})

	report, err := f.ingestion.ImportJobs(context.Background(), []JobImport{
		{ExternalID: "ext-1", Title: "Backend Engineer", Skills: []skill.Mention{{Name: "Go", Weight: 1, Confidence: 1}}},
		{ExternalID: "", Title: "No External ID"},
		{ExternalID: "ext-2", Title: "   "},
	})
	if err != nil {
		t.Fatalf("ImportJobs: %v", err)
	}
	if report.Applied != 1 || report.Dropped != 2 {
		t.Fatalf("expected 1 applied / 2 dropped, got %+v", report)
	}
	if len(f.jobs.jobs) != 1 {
		t.Fatalf("expected one job upserted, got %d", len(f.jobs.jobs))
	}
	for id := range f.jobs.jobs {
		reqs := f.jobSkills.reqs[id]
		if len(reqs) != 1 || reqs[0].SkillID != goID {
			t.Fatalf("expected requirement set replaced, got %+v", reqs)
		}
	}
}

func TestIngestionUsecase_ImportJobs_InvalidatesIDF(t *testing.T) {
	goID := uuid.New()
	f := newIngestionFixture(t, []skill.Skill{
		{ID: goID, Name: "Go", NormalizedName: "go", Type: skill.TypeTechnical},
	})

	if _, err := f.idf.Get(context.Background()); err != nil {
		t.Fatalf("warming idf: %v", err)
	}
	if f.jobSkills.dfCalls != 1 {
		t.Fatalf("expected one rebuild after warm-up, got %d", f.jobSkills.dfCalls)
	}

	if _, err := f.ingestion.ImportJobs(context.Background(), []JobImport{
		{ExternalID: "ext-1", Title: "Backend", Skills: []skill.Mention{{Name: "Go", Weight: 1, Confidence: 1}}},
	}); err != nil {
		t.Fatalf("ImportJobs: %v", err)
	}

	if _, err := f.idf.Get(context.Background()); err != nil {
		t.Fatalf("idf after import: %v", err)
	}
	if f.jobSkills.dfCalls != 2 {
		t.Fatalf("expected rebuild after job import, got %d calls", f.jobSkills.dfCalls)
	}
}

func TestIngestionUsecase_ImportJobs_UpsertsByExternalID(t *testing.T) {
	f := newIngestionFixture(t, nil)

	batch := []JobImport{{ExternalID: "ext-1", Title: "Backend"}}
	if _, err := f.ingestion.ImportJobs(context.Background(), batch); err != nil {
		t.Fatalf("first import: %v", err)
	}
	batch[0].Title = "Senior Backend"
	if _, err := f.ingestion.ImportJobs(context.Background(), batch); err != nil {
		t.Fatalf("second import: %v", err)
	}

	if len(f.jobs.jobs) != 1 {
		t.Fatalf("expected re-import to update in place, got %d jobs", len(f.jobs.jobs))
	}
	for _, j := range f.jobs.jobs {
		if j.Title != "Senior Backend" {
			t.Fatalf("expected updated title, got %q", j.Title)
		}
	}
}
