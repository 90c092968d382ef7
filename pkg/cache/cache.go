package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"liyu1981.xyz/eldercare-telemetry/pkg/common"
	"liyu1981.xyz/eldercare-telemetry/pkg/config"
	"liyu1981.xyz/eldercare-telemetry/pkg/models"
)

const keyPrefix = "home_state:latest:"

// ErrMiss is returned by Latest when nothing is cached for the user, and by
// every read of a disabled cache.
var ErrMiss = errors.New("cache miss")

// SnapshotCache keeps the newest snapshot per user. A nil *SnapshotCache is
// a disabled cache: writes succeed without effect and reads miss.
type SnapshotCache struct {
	client *redis.Client
}

func New(client *redis.Client) *SnapshotCache {
	return &SnapshotCache{client: client}
}

// FromConfig returns nil when Redis is not configured.
func FromConfig(cfg config.RedisConfig) *SnapshotCache {
	if !cfg.Enabled() {
		return nil
	}
	return New(redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}))
}

func Key(userID uuid.UUID) string {
	return keyPrefix + userID.String()
}

func logger() *zap.Logger {
	return common.GetLoggerWith(common.LoggerNameCache)
}

func (c *SnapshotCache) Ping(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.client.Ping(ctx).Err()
}

// Publish stores snap as the latest snapshot of its user. Entries never
// expire, a rebuild or a write replaces them.
func (c *SnapshotCache) Publish(ctx context.Context, snap models.HomeStateSnapshot) error {
	if c == nil {
		return nil
	}
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := c.client.Set(ctx, Key(snap.UserID), raw, 0).Err(); err != nil {
		return fmt.Errorf("set %s: %w", Key(snap.UserID), err)
	}
	logger().Debug("Published latest snapshot",
		zap.String(common.LoggerFieldUserID, snap.UserID.String()),
		zap.Time("time", snap.Time),
	)
	return nil
}

func (c *SnapshotCache) Latest(ctx context.Context, userID uuid.UUID) (models.HomeStateSnapshot, error) {
	var snap models.HomeStateSnapshot
	if c == nil {
		return snap, ErrMiss
	}
	raw, err := c.client.Get(ctx, Key(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return snap, ErrMiss
	}
	if err != nil {
		return snap, fmt.Errorf("get %s: %w", Key(userID), err)
	}
	if err := json.Unmarshal(raw, &snap); err != nil {
		// a corrupt entry is dropped and treated as a miss
		logger().Warn("Dropping undecodable cache entry", zap.String("key", Key(userID)), zap.Error(err))
		_ = c.client.Del(ctx, Key(userID)).Err()
		return models.HomeStateSnapshot{}, ErrMiss
	}
	return snap, nil
}

func (c *SnapshotCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	if c == nil {
		return nil
	}
	if err := c.client.Del(ctx, Key(userID)).Err(); err != nil {
		return fmt.Errorf("del %s: %w", Key(userID), err)
	}
	return nil
}

func (c *SnapshotCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
