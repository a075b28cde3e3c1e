package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"skill-align/internal/delivery/http/dto"
	"skill-align/internal/delivery/http/middleware"
	"skill-align/internal/pkg/response"
	"skill-align/internal/usecase"
)

type UserSkillHandler struct {
	uc usecase.UserSkillUsecase
}

type upsertUserSkillRequest struct {
	SkillID     uuid.UUID `json:"skill_id"`
	Proficiency float64   `json:"proficiency"`
	Confidence  float64   `json:"confidence"`
	Source      string    `json:"source"`
}

func NewUserSkillHandler(uc usecase.UserSkillUsecase) *UserSkillHandler {
	return &UserSkillHandler{uc: uc}
}

func (h *UserSkillHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/skills")
	grp.Get("/", h.ListUserSkills)
	grp.Put("/", h.UpsertUserSkill)
	grp.Delete("/:skill_id", h.DeleteUserSkill)
}

func (h *UserSkillHandler) ListUserSkills(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	items, err := h.uc.ListUserSkills(c.Context(), userID)
	if err != nil {
		return mapUserSkillUsecaseError(err)
	}

	out := make([]dto.UserSkillResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.UserSkillResponse{
			SkillID:     it.SkillID,
			SkillName:   it.SkillName,
			Proficiency: it.Proficiency,
			Confidence:  it.Confidence,
			Source:      it.Source,
			UpdatedAt:   it.UpdatedAt,
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *UserSkillHandler) UpsertUserSkill(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req upsertUserSkillRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	saved, err := h.uc.UpsertUserSkill(c.Context(), userID, usecase.UpsertUserSkillInput{
		SkillID:     req.SkillID,
		Proficiency: req.Proficiency,
		Confidence:  req.Confidence,
		Source:      req.Source,
	})
	if err != nil {
		return mapUserSkillUsecaseError(err)
	}

	out := dto.UserSkillResponse{
		SkillID:     saved.SkillID,
		SkillName:   saved.SkillName,
		Proficiency: saved.Proficiency,
		Confidence:  saved.Confidence,
		Source:      saved.Source,
		UpdatedAt:   saved.UpdatedAt,
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *UserSkillHandler) DeleteUserSkill(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	skillID, err := uuid.Parse(c.Params("skill_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.DeleteUserSkill(c.Context(), userID, skillID); err != nil {
		return mapUserSkillUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func mapUserSkillUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrSkillNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Skill not found", nil, err)
	case errors.Is(err, usecase.ErrUserSkillNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User skill not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
