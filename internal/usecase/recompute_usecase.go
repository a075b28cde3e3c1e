package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"skill-align/internal/repository"
)

// recomputeUsers bounds bulk-recompute fan-out so one sweep cannot saturate
// the connection pool.
const recomputeUsers = 4

// Notifier pushes recompute completion events to connected clients. The
// websocket hub implements it; a nil notifier is valid and means no pushes.
type Notifier interface {
	NotifyUser(userID uuid.UUID, event string, payload any)
}

type RecomputeUsecase interface {
	RecomputeUser(ctx context.Context, userID uuid.UUID) error
	RecomputeAll(ctx context.Context) (int, error)
}

// Recompute re-derives everything downstream of a profile change: the job
// ranking and a fresh alignment snapshot. Concurrent triggers for the same
// user coalesce into one run; a cross-instance Redis lock keeps two server
// processes from duplicating the work.
type Recompute struct {
	users     repository.UserSkillRepository
	matches   *Match
	alignment *Alignment
	cache     MatchCache
	notifier  Notifier
	logger    *zap.Logger

	group singleflight.Group
}

func NewRecomputeUsecase(
	users repository.UserSkillRepository,
	matches *Match,
	alignment *Alignment,
	cache MatchCache,
	notifier Notifier,
	logger *zap.Logger,
) *Recompute {
	return &Recompute{
		users:     users,
		matches:   matches,
		alignment: alignment,
		cache:     cache,
		notifier:  notifier,
		logger:    logger,
	}
}

func (u *Recompute) RecomputeUser(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return ErrUnauthorized
	}

	_, err, _ := u.group.Do(userID.String(), func() (any, error) {
		return nil, u.recomputeOne(ctx, userID)
	})
	return err
}

// RecomputeAll sweeps every user with at least one skill. Used after job
// ingestion changes the corpus under everyone's feet.
func (u *Recompute) RecomputeAll(ctx context.Context) (int, error) {
	userIDs, err := u.users.ListUserIDsWithSkills(ctx)
	if err != nil {
		return 0, ErrInternal
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(recomputeUsers)
	for _, id := range userIDs {
		g.Go(func() error {
			if err := u.RecomputeUser(gctx, id); err != nil {
				u.logger.Warn("recompute failed for user",
					zap.String("user_id", id.String()), zap.Error(err))
			}
			return nil
		})
	}
	_ = g.Wait()
	return len(userIDs), nil
}

func (u *Recompute) recomputeOne(ctx context.Context, userID uuid.UUID) error {
	acquired, err := u.cache.SetIfNotExists(ctx, recomputeLockKey(userID), "1", 30*time.Second)
	if err == nil && u.lockBackedAndBusy(ctx, acquired) {
		// Another instance is already on it; its run will cover this trigger.
		return nil
	}
	defer func() { _ = u.cache.Delete(ctx, recomputeLockKey(userID)) }()

	if err := u.cache.InvalidateUserMatches(ctx, userID.String()); err != nil {
		u.logger.Warn("cache invalidation failed", zap.String("user_id", userID.String()), zap.Error(err))
	}

	started := time.Now()
	ranked, err := u.matches.RankJobs(ctx, userID, RankOptions{})
	if err != nil {
		return err
	}

	if _, err := u.alignment.Snapshot(ctx, userID, nil); err != nil && !errors.Is(err, ErrUserSkillProfileEmpty) {
		u.logger.Warn("alignment snapshot failed during recompute",
			zap.String("user_id", userID.String()), zap.Error(err))
	}

	u.logger.Info("recompute finished",
		zap.String("user_id", userID.String()),
		zap.Int("matches", len(ranked)),
		zap.Duration("took", time.Since(started)),
	)

	if u.notifier != nil {
		u.notifier.NotifyUser(userID, "matches.recomputed", map[string]any{
			"match_count": len(ranked),
			"computed_at": time.Now().UTC(),
		})
	}
	return nil
}

// lockBackedAndBusy distinguishes "lock held elsewhere" from "cache down".
// When Redis is bypassed SetIfNotExists reports false without error, and the
// recompute must proceed locally.
func (u *Recompute) lockBackedAndBusy(ctx context.Context, acquired bool) bool {
	if acquired {
		return false
	}
	return u.cache.Ping(ctx) == nil
}
