package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"liyu1981.xyz/eldercare-telemetry/pkg/common"
	"liyu1981.xyz/eldercare-telemetry/pkg/config"
	"liyu1981.xyz/eldercare-telemetry/pkg/models"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *SnapshotCache) {
	mr := miniredis.RunT(t)
	c := New(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { _ = c.Close() })
	return mr, c
}

func sampleSnapshot(userID uuid.UUID) models.HomeStateSnapshot {
	return models.HomeStateSnapshot{
		Time:               time.Date(2025, 8, 23, 10, 5, 0, 0, time.UTC),
		UserID:             userID,
		KitchenMq5GasPpm:   1500,
		KitchenBuzzerIsOn:  true,
		EntranceRfidStatus: "in",
		AlertLevel:         models.AlertEmergency,
		AlertReason:        common.Ptr("emergency_gas_leak_detected"),
	}
}

func TestPublishAndLatest(t *testing.T) {
	common.SetTestLoggerNop()

	mr, c := setupTestRedis(t)
	userID := uuid.New()

	require.NoError(t, c.Publish(context.Background(), sampleSnapshot(userID)))

	// no expiry
	assert.True(t, mr.Exists("home_state:latest:"+userID.String()))
	assert.Equal(t, time.Duration(0), mr.TTL(Key(userID)))

	got, err := c.Latest(context.Background(), userID)
	require.NoError(t, err)
	assert.True(t, got.Time.Equal(sampleSnapshot(userID).Time))
	assert.Equal(t, 1500.0, got.KitchenMq5GasPpm)
	assert.Equal(t, models.AlertEmergency, got.AlertLevel)
	assert.Equal(t, "emergency_gas_leak_detected", *got.AlertReason)

	// a newer publish replaces the entry
	newer := sampleSnapshot(userID)
	newer.Time = newer.Time.Add(time.Minute)
	newer.AlertLevel = models.AlertNormal
	require.NoError(t, c.Publish(context.Background(), newer))
	got, err = c.Latest(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, models.AlertNormal, got.AlertLevel)
}

func TestLatestMiss(t *testing.T) {
	common.SetTestLoggerNop()

	mr, c := setupTestRedis(t)
	userID := uuid.New()

	_, err := c.Latest(context.Background(), userID)
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, mr.Set(Key(userID), "{not json"))
	_, err = c.Latest(context.Background(), userID)
	assert.ErrorIs(t, err, ErrMiss)
	assert.False(t, mr.Exists(Key(userID)))
}

func TestInvalidate(t *testing.T) {
	common.SetTestLoggerNop()

	mr, c := setupTestRedis(t)
	userID := uuid.New()

	require.NoError(t, c.Publish(context.Background(), sampleSnapshot(userID)))
	require.NoError(t, c.Invalidate(context.Background(), userID))
	assert.False(t, mr.Exists(Key(userID)))

	// deleting a missing key is fine
	require.NoError(t, c.Invalidate(context.Background(), userID))
}

func TestServerDown(t *testing.T) {
	common.SetTestLoggerNop()

	mr, c := setupTestRedis(t)
	mr.Close()

	userID := uuid.New()
	assert.Error(t, c.Publish(context.Background(), sampleSnapshot(userID)))
	_, err := c.Latest(context.Background(), userID)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrMiss)
	assert.Error(t, c.Ping(context.Background()))
}

func TestDisabledCache(t *testing.T) {
	var c *SnapshotCache

	assert.Nil(t, FromConfig(config.RedisConfig{}))
	assert.NoError(t, c.Publish(context.Background(), sampleSnapshot(uuid.New())))
	assert.NoError(t, c.Invalidate(context.Background(), uuid.New()))
	assert.NoError(t, c.Ping(context.Background()))
	assert.NoError(t, c.Close())
	_, err := c.Latest(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrMiss)
}
