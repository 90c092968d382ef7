// Package snapshot folds each user's merged sensor timeline into home state
// snapshots, evaluates the alert rules and synthesizes the acknowledge
// interaction that follows an alert.
package snapshot

//go:generate mockgen -source=report.go -destination=mocks/mock_snapshot.go -package=mocks

import (
	"context"
	"math/rand"
	"sync"

	"liyu1981.xyz/eldercare-telemetry/pkg/models"
)

// Report counts what a rebuild did.
type Report struct {
	Users     int `json:"users"`
	Events    int `json:"events"`
	Snapshots int `json:"snapshots"`
	Alerts    int `json:"alerts"`
	Acks      int `json:"acks"`
	Unrouted  int `json:"unrouted"`
	Batches   int `json:"batches"`
}

func (r *Report) add(o Report) {
	r.Users += o.Users
	r.Events += o.Events
	r.Snapshots += o.Snapshots
	r.Alerts += o.Alerts
	r.Acks += o.Acks
	r.Unrouted += o.Unrouted
	r.Batches += o.Batches
}

// Publisher receives the newest snapshot of a user after its rebuild.
type Publisher interface {
	Publish(ctx context.Context, snap models.HomeStateSnapshot) error
}

// RandSource drives the acknowledge delay and the button choice.
type RandSource interface {
	Intn(n int) int
}

type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewRand returns a RandSource seeded with seed, safe for concurrent use.
func NewRand(seed int64) RandSource {
	return &lockedRand{r: rand.New(rand.NewSource(seed))}
}

func (l *lockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Intn(n)
}
