package app

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v3"

	"skill-align/internal/config"
	"skill-align/internal/delivery/http/handler"
	"skill-align/internal/delivery/http/middleware"
	"skill-align/internal/delivery/http/routes"
	v1 "skill-align/internal/delivery/http/routes/v1"
	"skill-align/internal/ws"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func Bootstrap(cfg config.Config, c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName: cfg.App.AppName,
	})

	f.Use(middleware.NewErrorMiddleware(c.Logger).Middleware())
	f.Use(middleware.NewAccessLogMiddleware(c.Logger).Middleware())

	registry := routes.NewRegistry(
		handler.NewHealthHandler(c.DB, c.Cache),
		v1.Deps{
			JWT:        c.JWT,
			Auth:       c.Auth,
			Skills:     c.Skills,
			UserSkills: c.UserSkills,
			Matches:    c.Matches,
			Recompute:  c.Recompute,
			Gaps:       c.Gaps,
			Alignment:  c.Alignment,
			Ingestion:  c.Ingestion,
		},
	)
	registry.Register(f)

	wsHandler := ws.NewHandler(c.Hub, c.JWT, c.Logger)
	f.Get("/ws/matches", wsHandler.HandleMatchesWS)
	go c.Hub.Run()

	return &App{Fiber: f, Container: c}
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
