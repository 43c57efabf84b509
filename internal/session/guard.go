package session

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/nagaraj2331P/aura-hr-solutions/internal/config"
	"github.com/nagaraj2331P/aura-hr-solutions/pkg/errors"
)

const defaultSessionTTL = 16 * time.Hour

// Guard enforces the one-active-work-session-per-student rule in front of
// the database check. The key expires on its own so a crashed logout cannot
// lock a student out forever.
type Guard struct {
	client *redis.Client
	ttl    time.Duration
}

func NewGuard(redisClient *RedisClient, cfg *config.Config) *Guard {
	ttl := cfg.Redis.SessionTTL
	if ttl == 0 {
		ttl = defaultSessionTTL
	}
	return &Guard{
		client: redisClient.Client(),
		ttl:    ttl,
	}
}

func sessionKey(studentID string) string {
	return "session:active:" + studentID
}

// Acquire marks the student as having an active session. Returns
// ErrDuplicateSession when one is already held.
func (g *Guard) Acquire(ctx context.Context, studentID, timesheetID string) error {
	ok, err := g.client.SetNX(ctx, sessionKey(studentID), timesheetID, g.ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return errors.ErrDuplicateSession
	}
	return nil
}

// Release frees the student's session slot. Releasing a slot that is not
// held is not an error.
func (g *Guard) Release(ctx context.Context, studentID string) error {
	return g.client.Del(ctx, sessionKey(studentID)).Err()
}

// ActiveTimesheetID returns the timesheet id held by the guard, or empty
// when no session is active.
func (g *Guard) ActiveTimesheetID(ctx context.Context, studentID string) (string, error) {
	id, err := g.client.Get(ctx, sessionKey(studentID)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return id, nil
}
