package models

import (
	"time"

	"gorm.io/datatypes"
)

// EventKey is embedded by every sensor and actuator record. Records are
// addressed by (time, device_id) and never by a surrogate id.
type EventKey struct {
	Time       time.Time      `gorm:"primaryKey" json:"time"`
	DeviceID   string         `gorm:"primaryKey;size:64" json:"device_id"`
	RawPayload datatypes.JSON `json:"raw_payload,omitempty"`
}

func (k EventKey) Key() EventKey { return k }

// Event is the constraint used by the generic repository and service.
type Event interface {
	Key() EventKey
	TableName() string
}

// Measured records expose the value used for statistics and threshold alerts.
type Measured interface {
	Measurement() (float64, bool)
}

// SynthesizedSource marks rows written by the snapshot engine in raw_payload.
const SynthesizedSource = "snapshot_engine"

// Patch is a partial update decoded from a JSON body, keyed by json name.
type Patch map[string]any

type ListQuery struct {
	DeviceID string
	Start    *time.Time
	End      *time.Time
	Limit    int
	Offset   int
}

type Statistics struct {
	Count int64    `json:"count"`
	Min   *float64 `json:"min"`
	Max   *float64 `json:"max"`
	Avg   *float64 `json:"avg"`
}

type Severity string

const (
	SeverityHigh   Severity = "HIGH"
	SeverityMedium Severity = "MEDIUM"
)

type Exceedance[T Event] struct {
	Severity  Severity `json:"severity"`
	Value     float64  `json:"value"`
	Threshold float64  `json:"threshold"`
	Record    T        `json:"record"`
}

func measured(p *float64) (float64, bool) {
	if p == nil {
		return 0, false
	}
	return *p, true
}

func measuredInt(p *int) (float64, bool) {
	if p == nil {
		return 0, false
	}
	return float64(*p), true
}

// Normalize moves Time to UTC, every comparison in storage assumes it.
func (k *EventKey) Normalize() {
	k.Time = k.Time.UTC()
}
