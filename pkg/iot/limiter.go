package iot

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type deviceLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiterStore keeps one token bucket per device_id for the ingest
// routes. A nil store allows everything.
type RateLimiterStore struct {
	mu           sync.Mutex
	devices      map[string]*deviceLimiter
	defaultRate  rate.Limit
	defaultBurst int
	now          func() time.Time
}

func NewRateLimiterStore(defaultRate rate.Limit, defaultBurst int) *RateLimiterStore {
	return &RateLimiterStore{
		devices:      make(map[string]*deviceLimiter),
		defaultRate:  defaultRate,
		defaultBurst: defaultBurst,
		now:          time.Now,
	}
}

func (s *RateLimiterStore) entry(deviceID string) *deviceLimiter {
	d, ok := s.devices[deviceID]
	if !ok {
		d = &deviceLimiter{limiter: rate.NewLimiter(s.defaultRate, s.defaultBurst)}
		s.devices[deviceID] = d
	}
	d.lastSeen = s.now()
	return d
}

func (s *RateLimiterStore) GetLimiter(deviceID string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entry(deviceID).limiter
}

// SetLimiter overrides the bucket of one device.
func (s *RateLimiterStore) SetLimiter(deviceID string, deviceRate rate.Limit, deviceBurst int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.devices[deviceID] = &deviceLimiter{
		limiter:  rate.NewLimiter(deviceRate, deviceBurst),
		lastSeen: s.now(),
	}
}

// Allow takes one token for deviceID.
func (s *RateLimiterStore) Allow(deviceID string) bool {
	if s == nil {
		return true
	}
	return s.GetLimiter(deviceID).Allow()
}

// Sweep drops buckets not used for idle and returns how many were removed.
func (s *RateLimiterStore) Sweep(idle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-idle)
	removed := 0
	for id, d := range s.devices {
		if d.lastSeen.Before(cutoff) {
			delete(s.devices, id)
			removed++
		}
	}
	return removed
}

func (s *RateLimiterStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.devices)
}
