package usecase

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"

	"skill-align/internal/domain/skill"
	"skill-align/internal/repository"
)

// TaxonomyProvider serves the in-memory skill catalog. The taxonomy itself is
// immutable; Reload builds a fresh one from the database and swaps the pointer,
// so readers mid-request keep the snapshot they started with.
type TaxonomyProvider struct {
	skills repository.SkillRepository
	logger *zap.Logger

	current atomic.Pointer[skill.Taxonomy]
}

func NewTaxonomyProvider(skills repository.SkillRepository, logger *zap.Logger) *TaxonomyProvider {
	p := &TaxonomyProvider{skills: skills, logger: logger}
	p.current.Store(skill.NewTaxonomy(nil))
	return p
}

func (p *TaxonomyProvider) Get() *skill.Taxonomy {
	return p.current.Load()
}

func (p *TaxonomyProvider) Reload(ctx context.Context) error {
	all, err := p.skills.GetAllSkills(ctx)
	if err != nil {
		return err
	}
	p.current.Store(skill.NewTaxonomy(all))
	if p.logger != nil {
		p.logger.Info("taxonomy reloaded", zap.Int("skills", len(all)))
	}
	return nil
}
