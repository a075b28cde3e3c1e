package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"skill-align/internal/domain/gap"
	"skill-align/internal/domain/skill"
	"skill-align/internal/repository"
)

type mockUserSkillRepo struct {
	mu      sync.Mutex
	skills  map[uuid.UUID][]repository.UserSkill
	userIDs []uuid.UUID
	err     error
}

func (m *mockUserSkillRepo) FindByUserID(_ context.Context, userID uuid.UUID) ([]repository.UserSkill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.skills[userID], nil
}

func (m *mockUserSkillRepo) Upsert(_ context.Context, us repository.UserSkill) (repository.UserSkill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return repository.UserSkill{}, m.err
	}
	if us.ID == uuid.Nil {
		us.ID = uuid.New()
	}
	us.UpdatedAt = time.Now().UTC()
	if m.skills == nil {
		m.skills = make(map[uuid.UUID][]repository.UserSkill)
	}
	kept := m.skills[us.UserID][:0]
	for _, existing := range m.skills[us.UserID] {
		if existing.SkillID != us.SkillID {
			kept = append(kept, existing)
		}
	}
	m.skills[us.UserID] = append(kept, us)
	return us, nil
}

func (m *mockUserSkillRepo) Delete(_ context.Context, userID, skillID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.skills[userID] {
		if existing.SkillID == skillID {
			m.skills[userID] = append(m.skills[userID][:i], m.skills[userID][i+1:]...)
			return nil
		}
	}
	return repository.ErrUserSkillNotFound
}

func (m *mockUserSkillRepo) ListUserIDsWithSkills(context.Context) ([]uuid.UUID, error) {
	return m.userIDs, m.err
}

type mockJobRepo struct {
	jobs map[uuid.UUID]repository.Job
}

func (m *mockJobRepo) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := m.jobs[id]
	return ok, nil
}

func (m *mockJobRepo) GetByID(_ context.Context, id uuid.UUID) (repository.Job, error) {
	j, ok := m.jobs[id]
	if !ok {
		return repository.Job{}, repository.ErrJobNotFound
	}
	return j, nil
}

func (m *mockJobRepo) ListActiveJobIDs(context.Context) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(m.jobs))
	for id := range m.jobs {
		ids = append(ids, id)
	}
	return ids, nil
}

func (m *mockJobRepo) ListByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]repository.Job, error) {
	out := make(map[uuid.UUID]repository.Job, len(ids))
	for _, id := range ids {
		if j, ok := m.jobs[id]; ok {
			out[id] = j
		}
	}
	return out, nil
}

func (m *mockJobRepo) ListCategories(context.Context) ([]string, error) { return nil, nil }

func (m *mockJobRepo) Upsert(_ context.Context, j repository.JobUpsert) (uuid.UUID, error) {
	if m.jobs == nil {
		m.jobs = make(map[uuid.UUID]repository.Job)
	}
	for id, existing := range m.jobs {
		if existing.ExternalID == j.ExternalID {
			existing.Title = j.Title
			m.jobs[id] = existing
			return id, nil
		}
	}
	id := uuid.New()
	m.jobs[id] = repository.Job{ID: id, ExternalID: j.ExternalID, Title: j.Title, Company: j.Company, Category: j.Category}
	return id, nil
}

type mockJobSkillRepo struct {
	reqs       map[uuid.UUID][]repository.JobSkillRequirement
	industries map[string][]repository.IndustryRequirement
	dfCalls    int
}

func (m *mockJobSkillRepo) FindByJobID(_ context.Context, jobID uuid.UUID) ([]repository.JobSkillRequirement, error) {
	return m.reqs[jobID], nil
}

func (m *mockJobSkillRepo) FindByJobIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID][]repository.JobSkillRequirement, error) {
	out := make(map[uuid.UUID][]repository.JobSkillRequirement, len(ids))
	for _, id := range ids {
		if reqs, ok := m.reqs[id]; ok {
			out[id] = reqs
		}
	}
	return out, nil
}

func (m *mockJobSkillRepo) ReplaceForJob(_ context.Context, jobID uuid.UUID, reqs []repository.JobSkillRequirement) error {
	if m.reqs == nil {
		m.reqs = make(map[uuid.UUID][]repository.JobSkillRequirement)
	}
	m.reqs[jobID] = reqs
	return nil
}

func (m *mockJobSkillRepo) DocumentFrequencies(context.Context) (int, map[uuid.UUID]int, error) {
	m.dfCalls++
	df := make(map[uuid.UUID]int)
	for _, reqs := range m.reqs {
		for _, r := range reqs {
			df[r.SkillID]++
		}
	}
	return len(m.reqs), df, nil
}

func (m *mockJobSkillRepo) IndustryRequirements(_ context.Context, industries []string) (map[string][]repository.IndustryRequirement, error) {
	if len(industries) == 0 {
		return m.industries, nil
	}
	out := make(map[string][]repository.IndustryRequirement)
	for _, ind := range industries {
		if reqs, ok := m.industries[ind]; ok {
			out[ind] = reqs
		}
	}
	return out, nil
}

type mockMatchResultRepo struct {
	mu      sync.Mutex
	results map[string]repository.MatchResult
}

func matchKey(m repository.MatchResult) string {
	return m.UserID.String() + "|" + m.JobID.String() + "|" + m.AlgorithmVersion
}

func (m *mockMatchResultRepo) Upsert(_ context.Context, r repository.MatchResult) error {
	return m.UpsertBatch(context.Background(), []repository.MatchResult{r})
}

func (m *mockMatchResultRepo) UpsertBatch(_ context.Context, results []repository.MatchResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.results == nil {
		m.results = make(map[string]repository.MatchResult)
	}
	for _, r := range results {
		if r.ComputedAt.IsZero() {
			r.ComputedAt = time.Now().UTC()
		}
		m.results[matchKey(r)] = r
	}
	return nil
}

func (m *mockMatchResultRepo) ListByUser(_ context.Context, userID uuid.UUID, version string, limit int) ([]repository.MatchResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]repository.MatchResult, 0)
	for _, r := range m.results {
		if r.UserID == userID && r.AlgorithmVersion == version {
			out = append(out, r)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockMatchResultRepo) GetByUserAndJob(_ context.Context, userID, jobID uuid.UUID, version string) (repository.MatchResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.results[userID.String()+"|"+jobID.String()+"|"+version]
	if !ok {
		return repository.MatchResult{}, repository.ErrMatchNotFound
	}
	return r, nil
}

func (m *mockMatchResultRepo) Stats(_ context.Context, userID uuid.UUID, version string) (repository.MatchStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var st repository.MatchStats
	var sum float64
	for _, r := range m.results {
		if r.UserID != userID || r.AlgorithmVersion != version {
			continue
		}
		st.Total++
		sum += r.Breakdown.Composite
		if r.Breakdown.Composite > st.MaxComposite {
			st.MaxComposite = r.Breakdown.Composite
		}
		switch {
		case r.Breakdown.Composite >= repository.HighMatchThreshold:
			st.HighCount++
		case r.Breakdown.Composite >= repository.MediumMatchThreshold:
			st.MediumCount++
		default:
			st.LowCount++
		}
	}
	if st.Total > 0 {
		st.AvgComposite = sum / float64(st.Total)
	}
	return st, nil
}

func (m *mockMatchResultRepo) DeleteByUser(_ context.Context, userID uuid.UUID, version string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, r := range m.results {
		if r.UserID == userID && r.AlgorithmVersion == version {
			delete(m.results, k)
		}
	}
	return nil
}

type mockGapRepo struct {
	stored map[string][]gap.Gap
}

func (m *mockGapRepo) ReplaceForUserJob(_ context.Context, userID, jobID uuid.UUID, gaps []gap.Gap) error {
	if m.stored == nil {
		m.stored = make(map[string][]gap.Gap)
	}
	m.stored[userID.String()+"|"+jobID.String()] = gaps
	return nil
}

func (m *mockGapRepo) ListByUserJob(_ context.Context, userID, jobID uuid.UUID) ([]gap.Gap, error) {
	return m.stored[userID.String()+"|"+jobID.String()], nil
}

type mockSnapshotRepo struct {
	mu       sync.Mutex
	inserted []repository.AlignmentSnapshot
}

func (m *mockSnapshotRepo) Insert(_ context.Context, snapshots []repository.AlignmentSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inserted = append(m.inserted, snapshots...)
	return nil
}

func (m *mockSnapshotRepo) ListByUserBetween(_ context.Context, userID uuid.UUID, industries []string, from, to time.Time) ([]repository.AlignmentSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]repository.AlignmentSnapshot, 0)
	for _, s := range m.inserted {
		if s.UserID != userID || s.ComputedAt.Before(from) || s.ComputedAt.After(to) {
			continue
		}
		if len(industries) > 0 && !containsString(industries, s.Industry) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (m *mockSnapshotRepo) LatestByUser(_ context.Context, userID uuid.UUID) ([]repository.AlignmentSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	latest := make(map[string]repository.AlignmentSnapshot)
	for _, s := range m.inserted {
		if s.UserID != userID {
			continue
		}
		if cur, ok := latest[s.Industry]; !ok || s.ComputedAt.After(cur.ComputedAt) {
			latest[s.Industry] = s
		}
	}
	out := make([]repository.AlignmentSnapshot, 0, len(latest))
	for _, s := range latest {
		out = append(out, s)
	}
	return out, nil
}

func containsString(items []string, want string) bool {
	for _, it := range items {
		if it == want {
			return true
		}
	}
	return false
}

type mockSkillRepo struct {
	skills []skill.Skill
	err    error
}

func (m *mockSkillRepo) GetAllSkills(context.Context) ([]skill.Skill, error) {
	return m.skills, m.err
}

func (m *mockSkillRepo) UpsertSkill(_ context.Context, s skill.Skill) (skill.Skill, error) {
	if m.err != nil {
		return skill.Skill{}, m.err
	}
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.NormalizedName == "" {
		s.NormalizedName = skill.Normalize(s.Name)
	}
	for i, existing := range m.skills {
		if existing.NormalizedName == s.NormalizedName {
			s.ID = existing.ID
			m.skills[i] = s
			return s, nil
		}
	}
	m.skills = append(m.skills, s)
	return s, nil
}

// noopCache reports the cache as unavailable so usecases exercise their
// database paths.
type noopCache struct{}

func (noopCache) Ping(context.Context) error                                    { return errors.New("down") }
func (noopCache) GetJSON(context.Context, string, any) (bool, error)            { return false, nil }
func (noopCache) SetJSON(context.Context, string, any, time.Duration) error     { return nil }
func (noopCache) Delete(context.Context, string) error                          { return nil }
func (noopCache) InvalidateUserMatches(context.Context, string) error           { return nil }
func (noopCache) SetIfNotExists(context.Context, string, string, time.Duration) (bool, error) {
	return false, nil
}
