package handler

import (
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"skill-align/internal/delivery/http/dto"
	"skill-align/internal/delivery/http/middleware"
	"skill-align/internal/domain/gap"
	"skill-align/internal/pkg/response"
	"skill-align/internal/usecase"
)

type GapHandler struct {
	uc usecase.GapUsecase
}

func NewGapHandler(uc usecase.GapUsecase) *GapHandler {
	return &GapHandler{uc: uc}
}

func (h *GapHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/jobs/:job_id/gaps", h.GetGaps)
	r.Post("/jobs/:job_id/gaps/analyze", h.Analyze)
}

func (h *GapHandler) GetGaps(c fiber.Ctx) error {
	userID, jobID, err := gapParams(c)
	if err != nil {
		return err
	}

	gaps, err := h.uc.GetGaps(c.Context(), userID, jobID)
	if err != nil {
		return mapMatchUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, toGapResponses(gaps))
}

func (h *GapHandler) Analyze(c fiber.Ctx) error {
	userID, jobID, err := gapParams(c)
	if err != nil {
		return err
	}

	gaps, err := h.uc.AnalyzeGap(c.Context(), userID, jobID)
	if err != nil {
		return mapMatchUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, toGapResponses(gaps))
}

func gapParams(c fiber.Ctx) (uuid.UUID, uuid.UUID, error) {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, uuid.Nil, middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	jobID, err := uuid.Parse(c.Params("job_id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	return userID, jobID, nil
}

func toGapResponses(gaps []gap.Gap) []dto.GapResponse {
	out := make([]dto.GapResponse, 0, len(gaps))
	for _, g := range gaps {
		out = append(out, dto.GapResponse{
			SkillID:        g.SkillID,
			SkillName:      g.SkillName,
			SkillType:      string(g.SkillType),
			RequiredWeight: g.RequiredWeight,
			UserWeight:     g.UserWeight,
			Priority:       string(g.Priority),
			EstimatedHours: g.EstimatedHours,
		})
	}
	return out
}
