package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"skill-align/internal/config"
	"skill-align/internal/database"
	dbpostgres "skill-align/internal/database/postgres"
	"skill-align/internal/infrastructure/cache"
	"skill-align/internal/pkg/jwt"
	"skill-align/internal/repository"
	"skill-align/internal/usecase"
	"skill-align/internal/ws"
)

// Container owns every long-lived dependency: connections, providers, the
// websocket hub, and the fully wired usecases.
type Container struct {
	Config config.Config
	Logger *zap.Logger
	DB     database.DB
	Cache  *cache.Redis
	JWT    jwt.Service
	Hub    *ws.Hub

	Taxonomy *usecase.TaxonomyProvider
	IDF      *usecase.IDFProvider

	Auth       usecase.AuthUsecase
	Skills     usecase.SkillUsecase
	UserSkills usecase.UserSkillUsecase
	Matches    usecase.MatchUsecase
	Recompute  usecase.RecomputeUsecase
	Gaps       usecase.GapUsecase
	Alignment  usecase.AlignmentUsecase
	Ingestion  usecase.IngestionUsecase
}

func NewContainer(cfg config.Config, logger *zap.Logger) (*Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	redisCache := cache.NewRedis(cfg.Redis, logger)
	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)
	hub := ws.NewHub(logger)

	skillRepo := repository.NewPostgresSkillRepository(db)
	userRepo := repository.NewPostgresUserRepository(db)
	userSkillRepo := repository.NewPostgresUserSkillRepository(db)
	jobRepo := repository.NewPostgresJobRepository(db)
	jobSkillRepo := repository.NewPostgresJobSkillRepository(db)
	matchRepo := repository.NewPostgresMatchResultRepository(db)
	gapRepo := repository.NewPostgresSkillGapRepository(db)
	snapshotRepo := repository.NewPostgresAlignmentSnapshotRepository(db)

	taxonomy := usecase.NewTaxonomyProvider(skillRepo, logger)
	idf := usecase.NewIDFProvider(jobSkillRepo, cfg.Scoring.IDFRefreshTTL)

	matchUC := usecase.NewMatchUsecase(userSkillRepo, jobRepo, jobSkillRepo, matchRepo, idf, redisCache, logger, cfg.Scoring)
	alignmentUC := usecase.NewAlignmentUsecase(userSkillRepo, jobSkillRepo, snapshotRepo, redisCache, logger, cfg.Scoring)
	recomputeUC := usecase.NewRecomputeUsecase(userSkillRepo, matchUC, alignmentUC, redisCache, ws.NewNotifier(hub), logger)
	gapUC := usecase.NewGapUsecase(userSkillRepo, jobRepo, jobSkillRepo, gapRepo, taxonomy, redisCache, logger, cfg.Scoring)

	c := &Container{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Cache:  redisCache,
		JWT:    jwtSvc,
		Hub:    hub,

		Taxonomy: taxonomy,
		IDF:      idf,

		Auth:       usecase.NewAuthUsecase(userRepo, jwtSvc),
		Skills:     usecase.NewSkillUsecase(skillRepo, taxonomy),
		UserSkills: usecase.NewUserSkillUsecase(userSkillRepo, taxonomy, recomputeUC, logger),
		Matches:    matchUC,
		Recompute:  recomputeUC,
		Gaps:       gapUC,
		Alignment:  alignmentUC,
		Ingestion:  usecase.NewIngestionUsecase(userSkillRepo, jobRepo, jobSkillRepo, taxonomy, idf, recomputeUC, logger),
	}

	if err := taxonomy.Reload(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return c, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
