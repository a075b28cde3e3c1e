package dto

import "github.com/google/uuid"

type GapResponse struct {
	SkillID        uuid.UUID `json:"skill_id"`
	SkillName      string    `json:"skill_name"`
	SkillType      string    `json:"skill_type"`
	RequiredWeight float64   `json:"required_weight"`
	UserWeight     float64   `json:"user_weight"`
	Priority       string    `json:"priority"`
	EstimatedHours int       `json:"estimated_hours"`
}
