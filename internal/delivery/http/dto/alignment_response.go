package dto

import "time"

type IndustryAlignmentResponse struct {
	Industry   string    `json:"industry"`
	Score      float64   `json:"score"`
	SkillCount int       `json:"skill_count"`
	ComputedAt time.Time `json:"computed_at"`
}

type TimelinePointResponse struct {
	Industry   string    `json:"industry"`
	Score      float64   `json:"score"`
	Delta      float64   `json:"delta"`
	ComputedAt time.Time `json:"computed_at"`
}
