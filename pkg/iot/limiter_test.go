package iot

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiterStore_Basic(t *testing.T) {
	store := NewRateLimiterStore(1, 2)

	limiter := store.GetLimiter("PIR_1")
	if limiter == nil {
		t.Fatal("expected limiter, got nil")
	}
	assert.Equal(t, 1.0, float64(limiter.Limit()))
	assert.Equal(t, 2, limiter.Burst())
}

func TestRateLimiterStore_AllowConsumesBurst(t *testing.T) {
	store := NewRateLimiterStore(0.001, 2)

	assert.True(t, store.Allow("MQ5_1"))
	assert.True(t, store.Allow("MQ5_1"))
	assert.False(t, store.Allow("MQ5_1"))

	// other devices have their own bucket
	assert.True(t, store.Allow("MQ5_2"))
}

func TestRateLimiterStore_NilAllowsEverything(t *testing.T) {
	var store *RateLimiterStore
	assert.True(t, store.Allow("anything"))
}

func TestRateLimiterStore_CustomLimit(t *testing.T) {
	store := NewRateLimiterStore(1, 2)

	store.SetLimiter("device2", 5, 10)
	limiter := store.GetLimiter("device2")

	assert.Equal(t, 5.0, float64(limiter.Limit()))
	assert.Equal(t, 10, limiter.Burst())
}

func TestRateLimiterStore_Sweep(t *testing.T) {
	store := NewRateLimiterStore(1, 1)
	now := time.Date(2025, 8, 23, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	store.GetLimiter("old")
	now = now.Add(time.Hour)
	store.GetLimiter("fresh")

	assert.Equal(t, 1, store.Sweep(30*time.Minute))
	assert.Equal(t, 1, store.Len())
}

func TestRateLimiterStore_Concurrency(t *testing.T) {
	store := NewRateLimiterStore(10, 5)
	deviceID := uuid.NewString()

	var wg sync.WaitGroup

	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if store.GetLimiter(deviceID) == nil {
				t.Error("expected limiter, got nil")
			}
		}()
	}

	wg.Wait()

	assert.Equal(t, 1, store.Len())
}
