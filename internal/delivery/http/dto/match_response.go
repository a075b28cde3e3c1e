package dto

import (
	"time"

	"github.com/google/uuid"

	"skill-align/internal/domain/scoring"
)

type RankedMatchResponse struct {
	JobID            uuid.UUID         `json:"job_id"`
	Title            string            `json:"title"`
	Company          string            `json:"company"`
	Category         string            `json:"category,omitempty"`
	Scores           scoring.Breakdown `json:"scores"`
	MatchingSkillIDs []uuid.UUID       `json:"matching_skill_ids"`
	MissingSkillIDs  []uuid.UUID       `json:"missing_skill_ids"`
}

type MatchDetailResponse struct {
	JobID            uuid.UUID         `json:"job_id"`
	AlgorithmVersion string            `json:"algorithm_version"`
	Scores           scoring.Breakdown `json:"scores"`
	MatchingSkillIDs []uuid.UUID       `json:"matching_skill_ids"`
	MissingSkillIDs  []uuid.UUID       `json:"missing_skill_ids"`
	ComputedAt       time.Time         `json:"computed_at"`
}
