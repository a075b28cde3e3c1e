package handler

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"skill-align/internal/delivery/http/middleware"
	"skill-align/internal/domain/skill"
	"skill-align/internal/pkg/response"
	"skill-align/internal/usecase"
)

type IngestionHandler struct {
	uc usecase.IngestionUsecase
}

type skillMentionRequest struct {
	Name       string  `json:"name"`
	Weight     float64 `json:"weight"`
	Confidence float64 `json:"confidence"`
	Source     string  `json:"source"`
}

type resumeSkillsRequest struct {
	Skills []skillMentionRequest `json:"skills"`
}

type jobImportRequest struct {
	Jobs []struct {
		ExternalID string                `json:"external_id"`
		Title      string                `json:"title"`
		Company    string                `json:"company"`
		Category   string                `json:"category"`
		Location   string                `json:"location"`
		SalaryMin  *int64                `json:"salary_min"`
		SalaryMax  *int64                `json:"salary_max"`
		PostedAt   *time.Time            `json:"posted_at"`
		Skills     []skillMentionRequest `json:"skills"`
	} `json:"jobs"`
}

func NewIngestionHandler(uc usecase.IngestionUsecase) *IngestionHandler {
	return &IngestionHandler{uc: uc}
}

func (h *IngestionHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/ingest")
	grp.Post("/resume-skills", h.ApplyResumeSkills)
	grp.Post("/jobs", h.ImportJobs)
}

// ApplyResumeSkills takes the output of an external resume extractor and
// merges it into the caller's profile.
func (h *IngestionHandler) ApplyResumeSkills(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req resumeSkillsRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	report, err := h.uc.ApplyExtractedSkills(c.Context(), userID, toMentions(req.Skills))
	if err != nil {
		return mapMatchUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, report)
}

func (h *IngestionHandler) ImportJobs(c fiber.Ctx) error {
	var req jobImportRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	imports := make([]usecase.JobImport, 0, len(req.Jobs))
	for _, j := range req.Jobs {
		imports = append(imports, usecase.JobImport{
			ExternalID: j.ExternalID,
			Title:      j.Title,
			Company:    j.Company,
			Category:   j.Category,
			Location:   j.Location,
			SalaryMin:  j.SalaryMin,
			SalaryMax:  j.SalaryMax,
			PostedAt:   j.PostedAt,
			Skills:     toMentions(j.Skills),
		})
	}

	report, err := h.uc.ImportJobs(c.Context(), imports)
	if err != nil {
		return mapMatchUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, report)
}

func toMentions(in []skillMentionRequest) []skill.Mention {
	out := make([]skill.Mention, 0, len(in))
	for _, m := range in {
		out = append(out, skill.Mention{
			Name:       m.Name,
			Weight:     m.Weight,
			Confidence: m.Confidence,
			Source:     m.Source,
		})
	}
	return out
}
