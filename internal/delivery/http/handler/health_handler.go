package handler

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"skill-align/internal/database"
	"skill-align/internal/pkg/response"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db    database.DB
	cache pinger
}

func NewHealthHandler(db database.DB, cache pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	data := map[string]string{"database": "up", "cache": "up"}
	status := fiber.StatusOK

	if h.db == nil || h.db.Ping(c.Context()) != nil {
		data["database"] = "down"
		status = fiber.StatusServiceUnavailable
	}
	// Cache down is degraded, not unhealthy; the engine runs without it.
	if h.cache == nil || h.cache.Ping(c.Context()) != nil {
		data["cache"] = "down"
	}

	if status != fiber.StatusOK {
		return response.Error(c, status, "", data)
	}
	return response.Success(c, status, response.MessageOK, data)
}
