package dto

import (
	"time"

	"github.com/google/uuid"
)

type UserSkillResponse struct {
	SkillID     uuid.UUID `json:"skill_id"`
	SkillName   string    `json:"skill_name"`
	Proficiency float64   `json:"proficiency"`
	Confidence  float64   `json:"confidence"`
	Source      string    `json:"source"`
	UpdatedAt   time.Time `json:"updated_at"`
}
