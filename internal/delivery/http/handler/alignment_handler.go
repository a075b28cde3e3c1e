package handler

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"skill-align/internal/delivery/http/dto"
	"skill-align/internal/delivery/http/middleware"
	"skill-align/internal/pkg/response"
	"skill-align/internal/usecase"
)

type AlignmentHandler struct {
	uc usecase.AlignmentUsecase
}

type snapshotRequest struct {
	Industries []string `json:"industries"`
}

func NewAlignmentHandler(uc usecase.AlignmentUsecase) *AlignmentHandler {
	return &AlignmentHandler{uc: uc}
}

func (h *AlignmentHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/alignment")
	grp.Get("/", h.Latest)
	grp.Get("/timeline", h.Timeline)
	grp.Post("/snapshot", h.Snapshot)
}

func (h *AlignmentHandler) Snapshot(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req snapshotRequest
	if len(c.Body()) > 0 {
		if err := c.Bind().Body(&req); err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
		}
	}

	items, err := h.uc.Snapshot(c.Context(), userID, req.Industries)
	if err != nil {
		return mapMatchUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, toAlignmentResponses(items))
}

func (h *AlignmentHandler) Latest(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	items, err := h.uc.Latest(c.Context(), userID)
	if err != nil {
		return mapMatchUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, toAlignmentResponses(items))
}

func (h *AlignmentHandler) Timeline(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var industries []string
	if raw := strings.TrimSpace(c.Query("industries")); raw != "" {
		industries = strings.Split(raw, ",")
	}

	from, err := parseTimeQuery(c.Query("from"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	to, err := parseTimeQuery(c.Query("to"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	points, err := h.uc.Timeline(c.Context(), userID, industries, from, to)
	if err != nil {
		return mapMatchUsecaseError(err)
	}

	out := make([]dto.TimelinePointResponse, 0, len(points))
	for _, p := range points {
		out = append(out, dto.TimelinePointResponse{
			Industry:   p.Industry,
			Score:      p.Score,
			Delta:      p.Delta,
			ComputedAt: p.ComputedAt,
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func parseTimeQuery(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

func toAlignmentResponses(items []usecase.IndustryAlignment) []dto.IndustryAlignmentResponse {
	out := make([]dto.IndustryAlignmentResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.IndustryAlignmentResponse{
			Industry:   it.Industry,
			Score:      it.Score,
			SkillCount: it.SkillCount,
			ComputedAt: it.ComputedAt,
		})
	}
	return out
}
