package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"skill-align/internal/delivery/http/dto"
	"skill-align/internal/delivery/http/middleware"
	"skill-align/internal/pkg/response"
	"skill-align/internal/usecase"
)

type SkillHandler struct {
	uc usecase.SkillUsecase
}

type skillImportRequest struct {
	Skills []struct {
		Name     string `json:"name"`
		Type     string `json:"type"`
		Category string `json:"category"`
	} `json:"skills"`
}

func NewSkillHandler(uc usecase.SkillUsecase) *SkillHandler {
	return &SkillHandler{uc: uc}
}

func (h *SkillHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/skills")
	grp.Get("/", h.ListSkills)
	grp.Post("/import", h.ImportSkills)
	grp.Post("/reload", h.ReloadTaxonomy)
}

func (h *SkillHandler) ListSkills(c fiber.Ctx) error {
	skills, err := h.uc.ListSkills(c.Context())
	if err != nil {
		return mapSkillUsecaseError(err)
	}

	out := make([]dto.SkillResponse, 0, len(skills))
	for _, s := range skills {
		out = append(out, dto.SkillResponse{
			ID:       s.ID,
			Name:     s.Name,
			Type:     string(s.Type),
			Category: s.Category,
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *SkillHandler) ImportSkills(c fiber.Ctx) error {
	var req skillImportRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	entries := make([]usecase.SkillImportEntry, 0, len(req.Skills))
	for _, s := range req.Skills {
		entries = append(entries, usecase.SkillImportEntry{Name: s.Name, Type: s.Type, Category: s.Category})
	}

	imported, err := h.uc.ImportSkills(c.Context(), entries)
	if err != nil {
		return mapSkillUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]int{"imported": imported})
}

func (h *SkillHandler) ReloadTaxonomy(c fiber.Ctx) error {
	count, err := h.uc.ReloadTaxonomy(c.Context())
	if err != nil {
		return mapSkillUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]int{"skills": count})
}

func mapSkillUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
