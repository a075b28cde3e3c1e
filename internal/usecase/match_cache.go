package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MatchCache is the slice of the cache the engine needs. The Redis
// implementation degrades to no-op misses when the server is down.
type MatchCache interface {
	Ping(ctx context.Context) error
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	InvalidateUserMatches(ctx context.Context, userID string) error
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
}

func matchListKey(userID uuid.UUID, version string) string {
	return fmt.Sprintf("matches:%s:%s", userID, version)
}

func matchStatsKey(userID uuid.UUID) string {
	return "matchstats:" + userID.String()
}

func gapKey(userID, jobID uuid.UUID) string {
	return fmt.Sprintf("gaps:%s:%s", userID, jobID)
}

func alignmentKey(userID uuid.UUID) string {
	return "alignment:" + userID.String() + ":latest"
}

func recomputeLockKey(userID uuid.UUID) string {
	return "recompute:lock:" + userID.String()
}
