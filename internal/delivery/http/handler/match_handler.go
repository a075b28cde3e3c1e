package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"skill-align/internal/delivery/http/dto"
	"skill-align/internal/delivery/http/middleware"
	"skill-align/internal/domain/scoring"
	"skill-align/internal/pkg/response"
	"skill-align/internal/usecase"
)

type MatchHandler struct {
	matches   usecase.MatchUsecase
	recompute usecase.RecomputeUsecase
}

func NewMatchHandler(matches usecase.MatchUsecase, recompute usecase.RecomputeUsecase) *MatchHandler {
	return &MatchHandler{matches: matches, recompute: recompute}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/matches")
	grp.Get("/", h.ListMatches)
	grp.Get("/stats", h.GetStats)
	grp.Post("/recompute", h.Recompute)

	r.Get("/jobs/:job_id/match", h.GetMatchDetail)
}

func (h *MatchHandler) ListMatches(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	ranked, err := h.matches.GetMatches(c.Context(), userID, limit)
	if err != nil {
		return mapMatchUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, toRankedResponses(ranked))
}

func toRankedResponses(ranked []usecase.RankedMatch) []dto.RankedMatchResponse {
	out := make([]dto.RankedMatchResponse, 0, len(ranked))
	for _, m := range ranked {
		out = append(out, dto.RankedMatchResponse{
			JobID:            m.JobID,
			Title:            m.Title,
			Company:          m.Company,
			Category:         m.Category,
			Scores:           m.Breakdown,
			MatchingSkillIDs: m.MatchingSkillIDs,
			MissingSkillIDs:  m.MissingSkillIDs,
		})
	}
	return out
}

func (h *MatchHandler) GetStats(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	stats, err := h.matches.Stats(c.Context(), userID)
	if err != nil {
		return mapMatchUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, stats)
}

type recomputeRequest struct {
	JobIDs  []uuid.UUID      `json:"job_ids"`
	Weights *scoring.Weights `json:"weights"`
}

// Recompute runs the ranking synchronously and returns the fresh list. The
// profile-write path triggers the same pipeline in the background; this
// endpoint exists for explicit refreshes. A body with job_ids narrows the run;
// a body with weights previews alternative blending without persisting.
func (h *MatchHandler) Recompute(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req recomputeRequest
	if len(c.Body()) > 0 {
		if err := c.Bind().Body(&req); err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
		}
	}

	if len(req.JobIDs) > 0 || req.Weights != nil {
		ranked, err := h.matches.RankJobs(c.Context(), userID, usecase.RankOptions{
			JobIDs:  req.JobIDs,
			Weights: req.Weights,
		})
		if err != nil {
			return mapMatchUsecaseError(err)
		}
		return response.Success(c, fiber.StatusOK, response.MessageOK, toRankedResponses(ranked))
	}

	if err := h.recompute.RecomputeUser(c.Context(), userID); err != nil {
		return mapMatchUsecaseError(err)
	}

	ranked, err := h.matches.GetMatches(c.Context(), userID, 50)
	if err != nil {
		return mapMatchUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, toRankedResponses(ranked))
}

func (h *MatchHandler) GetMatchDetail(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	jobID, err := uuid.Parse(c.Params("job_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	m, err := h.matches.GetMatchDetail(c.Context(), userID, jobID)
	if err != nil {
		return mapMatchUsecaseError(err)
	}

	out := dto.MatchDetailResponse{
		JobID:            m.JobID,
		AlgorithmVersion: m.AlgorithmVersion,
		Scores:           m.Breakdown,
		MatchingSkillIDs: m.MatchingSkillIDs,
		MissingSkillIDs:  m.MissingSkillIDs,
		ComputedAt:       m.ComputedAt,
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func mapMatchUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, usecase.ErrMatchNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Match not found", nil, err)
	case errors.Is(err, usecase.ErrUserSkillProfileEmpty):
		return middleware.NewAppError(fiber.StatusBadRequest, "User skill profile empty", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
