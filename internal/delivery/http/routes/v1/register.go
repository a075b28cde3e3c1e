package v1

import (
	"github.com/gofiber/fiber/v3"

	"skill-align/internal/delivery/http/handler"
	"skill-align/internal/delivery/http/middleware"
	"skill-align/internal/pkg/jwt"
	"skill-align/internal/usecase"
)

// Deps carries the wired usecases into route registration. The container
// builds them once; this package only decides URL shape and auth scope.
type Deps struct {
	JWT        jwt.Service
	Auth       usecase.AuthUsecase
	Skills     usecase.SkillUsecase
	UserSkills usecase.UserSkillUsecase
	Matches    usecase.MatchUsecase
	Recompute  usecase.RecomputeUsecase
	Gaps       usecase.GapUsecase
	Alignment  usecase.AlignmentUsecase
	Ingestion  usecase.IngestionUsecase
}

func Register(r fiber.Router, d Deps) {
	if r == nil {
		return
	}

	authMw := middleware.NewAuthMiddleware(d.JWT)

	authGroup := r.Group("/auth")
	handler.NewAuthHandler(d.Auth).RegisterRoutes(authGroup)

	protected := r.Group("", authMw.Middleware())
	handler.NewSkillHandler(d.Skills).RegisterRoutes(protected)
	handler.NewIngestionHandler(d.Ingestion).RegisterRoutes(protected)

	me := protected.Group("/me")
	handler.NewUserSkillHandler(d.UserSkills).RegisterRoutes(me)
	handler.NewMatchHandler(d.Matches, d.Recompute).RegisterRoutes(me)
	handler.NewGapHandler(d.Gaps).RegisterRoutes(me)
	handler.NewAlignmentHandler(d.Alignment).RegisterRoutes(me)
}
