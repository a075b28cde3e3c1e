package usecase

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"skill-align/internal/domain/scoring"
	"skill-align/internal/repository"
)

// IDFProvider caches corpus-wide inverse document frequencies. Rebuilding
// scans the whole job_skills table, so refreshes are coalesced through
// singleflight and reused until the TTL lapses. Staleness within the TTL is
// acceptable: IDF drifts slowly as postings come and go.
type IDFProvider struct {
	jobSkills repository.JobSkillRepository
	ttl       time.Duration

	mu        sync.RWMutex
	cached    scoring.IDF
	expiresAt time.Time

	group singleflight.Group
}

func NewIDFProvider(jobSkills repository.JobSkillRepository, ttl time.Duration) *IDFProvider {
	if ttl <= 0 {
		ttl = 6 * time.Hour
	}
	return &IDFProvider{jobSkills: jobSkills, ttl: ttl}
}

func (p *IDFProvider) Get(ctx context.Context) (scoring.IDF, error) {
	p.mu.RLock()
	if time.Now().Before(p.expiresAt) {
		idf := p.cached
		p.mu.RUnlock()
		return idf, nil
	}
	p.mu.RUnlock()

	v, err, _ := p.group.Do("idf", func() (any, error) {
		return p.rebuild(ctx)
	})
	if err != nil {
		// Serve the stale table if one exists rather than failing the rank.
		p.mu.RLock()
		defer p.mu.RUnlock()
		if p.cached.Docs > 0 {
			return p.cached, nil
		}
		return scoring.IDF{}, err
	}
	return v.(scoring.IDF), nil
}

// Invalidate forces the next Get to rebuild. Called after job ingestion.
func (p *IDFProvider) Invalidate() {
	p.mu.Lock()
	p.expiresAt = time.Time{}
	p.mu.Unlock()
}

func (p *IDFProvider) rebuild(ctx context.Context) (scoring.IDF, error) {
	total, df, err := p.jobSkills.DocumentFrequencies(ctx)
	if err != nil {
		return scoring.IDF{}, err
	}
	idf := scoring.NewIDF(total, df)

	p.mu.Lock()
	p.cached = idf
	p.expiresAt = time.Now().Add(p.ttl)
	p.mu.Unlock()

	return idf, nil
}
