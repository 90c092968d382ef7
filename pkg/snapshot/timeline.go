package snapshot

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"liyu1981.xyz/eldercare-telemetry/pkg/models"
	"liyu1981.xyz/eldercare-telemetry/pkg/repository"
)

// Source is the table an event was read from. The declaration order is the
// tie order for events sharing a timestamp.
type Source int

const (
	SourcePIR Source = iota
	SourceReed
	SourceRFID
	SourceSound
	SourceLoadCell
	SourceTemperature
	SourceMQ5
	SourceMQ7
)

var sourceNames = [...]string{"pir", "reed", "rfid", "sound", "loadcell", "temperature", "mq5", "mq7"}

func (s Source) String() string {
	if int(s) < len(sourceNames) {
		return sourceNames[s]
	}
	return fmt.Sprintf("source(%d)", int(s))
}

// Event is one typed reading of the merged timeline.
type Event struct {
	Time     time.Time
	DeviceID string
	Source   Source
	Room     string

	Motion  bool
	Closed  bool
	Celsius float64
	// Value is db_level, weight_kg, gas_ppm or co_ppm depending on Source.
	Value *float64
	// Tag is the rfid status or the sound and loadcell event_type.
	Tag *string
}

func loadSource[T models.Event](ctx context.Context, db *gorm.DB, userID uuid.UUID, src Source, convert func(*T, *Event)) ([]Event, error) {
	rows, err := repository.NewEventRepository[T](db).ForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load %s events: %w", src, err)
	}
	out := make([]Event, len(rows))
	for i := range rows {
		key := rows[i].Key()
		out[i] = Event{Time: key.Time.UTC(), DeviceID: key.DeviceID, Source: src}
		convert(&rows[i], &out[i])
	}
	return out, nil
}

// loadTimeline reads the eight source tables of the user's devices and merges
// them ascending by time, ties in Source order then device_id.
func loadTimeline(ctx context.Context, db *gorm.DB, userID uuid.UUID, devices []models.Device) ([]Event, error) {
	loaders := []func() ([]Event, error){
		func() ([]Event, error) {
			return loadSource(ctx, db, userID, SourcePIR, func(r *models.SensorEdgePIR, e *Event) {
				e.Motion = r.MotionDetected
			})
		},
		func() ([]Event, error) {
			return loadSource(ctx, db, userID, SourceReed, func(r *models.SensorEdgeReed, e *Event) {
				e.Closed = r.SwitchState
			})
		},
		func() ([]Event, error) {
			return loadSource(ctx, db, userID, SourceRFID, func(r *models.SensorRawRFID, e *Event) {
				e.Tag = r.Status
			})
		},
		func() ([]Event, error) {
			return loadSource(ctx, db, userID, SourceSound, func(r *models.SensorRawSound, e *Event) {
				e.Value, e.Tag = r.DbLevel, r.EventType
			})
		},
		func() ([]Event, error) {
			return loadSource(ctx, db, userID, SourceLoadCell, func(r *models.SensorRawLoadCell, e *Event) {
				e.Value, e.Tag = r.WeightKg, r.EventType
			})
		},
		func() ([]Event, error) {
			return loadSource(ctx, db, userID, SourceTemperature, func(r *models.SensorRawTemperature, e *Event) {
				e.Celsius = r.TemperatureCelsius
			})
		},
		func() ([]Event, error) {
			return loadSource(ctx, db, userID, SourceMQ5, func(r *models.SensorRawMQ5, e *Event) {
				e.Value = r.GasPpm
			})
		},
		func() ([]Event, error) {
			return loadSource(ctx, db, userID, SourceMQ7, func(r *models.SensorRawMQ7, e *Event) {
				e.Value = r.CoPpm
			})
		},
	}

	rooms := make(map[string]string, len(devices))
	for _, d := range devices {
		rooms[d.DeviceID] = NormalizeRoom(d.Label())
	}

	var timeline []Event
	for _, load := range loaders {
		events, err := load()
		if err != nil {
			return nil, err
		}
		timeline = append(timeline, events...)
	}
	for i := range timeline {
		timeline[i].Room = rooms[timeline[i].DeviceID]
	}

	// each source is already ordered by time then device_id, a stable sort on
	// time keeps the source order for ties
	slices.SortStableFunc(timeline, func(a, b Event) int { return a.Time.Compare(b.Time) })
	return timeline, nil
}

// groups splits a sorted timeline into runs sharing one timestamp.
func groups(timeline []Event) [][]Event {
	var out [][]Event
	for start := 0; start < len(timeline); {
		end := start + 1
		for end < len(timeline) && timeline[end].Time.Equal(timeline[start].Time) {
			end++
		}
		out = append(out, timeline[start:end])
		start = end
	}
	return out
}
