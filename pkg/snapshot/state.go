package snapshot

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"liyu1981.xyz/eldercare-telemetry/pkg/common"
	"liyu1981.xyz/eldercare-telemetry/pkg/models"
)

const (
	ActivityAway     = "Away"
	ActivitySleeping = "Sleeping"
	ActivityActive   = "Active"
	ActivityIdle     = "Idle"

	rfidIn  = "in"
	rfidOut = "out"

	loadCellSleepStart = "sleep_start"
	loadCellSleepEnd   = "sleep_end"
)

// State is the rolling digital twin of one home plus the bookkeeping the
// rules read.
type State struct {
	slots models.HomeStateSnapshot

	lastMotion          time.Time
	lastKitchenActivity time.Time
	lastRFID            time.Time
	lastSoundType       string
	lastSoundTime       time.Time
	lastCrisisSoundTime time.Time
	lastBuzzer          *time.Time
	lastLocation        string
	sleeping            bool
	doorOpen            bool

	actionLog   []models.ActionLogEntry
	groupMotion bool
}

// newState returns the documented defaults. Time bookkeeping that has never
// been observed is anchored at the first event of the timeline.
func newState(userID uuid.UUID, anchor time.Time) *State {
	return &State{
		slots: models.HomeStateSnapshot{
			UserID:               userID,
			EntranceRfidStatus:   rfidIn,
			EntranceReedIsClosed: true,
			LivingroomMq7CoPpm:   10,
			KitchenMq5GasPpm:     200,
			KitchenLoadcell1Kg:   10,
			KitchenLoadcell2Kg:   12,
			BedroomMq7CoPpm:      10,
			BathroomTempCelsius:  22,
			DetectedActivity:     ActivityIdle,
			AlertLevel:           models.AlertNormal,
		},
		lastMotion:          anchor,
		lastKitchenActivity: anchor,
		lastRFID:            anchor,
	}
}

// beginGroup resets what only lives for one event group.
func (s *State) beginGroup() {
	s.groupMotion = false
	s.actionLog = nil
}

// apply folds e into the state. It reports false when e could not be routed
// to a slot, the state is then unchanged.
func (s *State) apply(e Event) bool {
	switch e.Source {
	case SourcePIR:
		slot, ok := pirSlots[deviceSuffix(e.DeviceID)]
		if !ok {
			return false
		}
		*slot.motion(&s.slots) = e.Motion
		if e.Motion {
			s.groupMotion = true
			s.lastMotion = e.Time
			s.lastLocation = slot.room
			if slot.room == RoomKitchen {
				s.lastKitchenActivity = e.Time
			}
		}
	case SourceReed:
		s.slots.EntranceReedIsClosed = e.Closed
		s.doorOpen = !e.Closed
	case SourceRFID:
		if e.Tag == nil || (*e.Tag != rfidIn && *e.Tag != rfidOut) {
			return false
		}
		s.slots.EntranceRfidStatus = *e.Tag
		s.lastRFID = e.Time
	case SourceSound:
		slot := soundSlot(&s.slots, e.Room)
		if slot == nil {
			return false
		}
		if e.Value != nil {
			*slot = *e.Value
		}
		if e.Tag != nil {
			s.lastSoundType = *e.Tag
			s.lastSoundTime = e.Time
		}
	case SourceLoadCell:
		slot := loadCellSlot(&s.slots, e.Room, e.DeviceID)
		if slot == nil {
			return false
		}
		if e.Value != nil {
			*slot = *e.Value
		}
		if e.Room == RoomBedroom && e.Tag != nil {
			switch *e.Tag {
			case loadCellSleepStart:
				s.sleeping = true
			case loadCellSleepEnd:
				s.sleeping = false
			}
		}
	case SourceTemperature:
		// the home has a single temperature slot, every thermometer feeds it
		s.slots.BathroomTempCelsius = e.Celsius
	case SourceMQ5:
		if e.Room != RoomKitchen {
			return false
		}
		if e.Value != nil {
			s.slots.KitchenMq5GasPpm = *e.Value
		}
	case SourceMQ7:
		slot := coSlot(&s.slots, e.Room)
		if slot == nil {
			return false
		}
		if e.Value != nil {
			*slot = *e.Value
		}
	default:
		return false
	}
	return true
}

// consumeCrisisSound marks the last sound as handled so a scream or fall
// heard while alerts are suppressed does not fire once they resume.
func (s *State) consumeCrisisSound() {
	s.lastCrisisSoundTime = s.lastSoundTime
}

func (s *State) activity() string {
	switch {
	case s.slots.EntranceRfidStatus == rfidOut:
		return ActivityAway
	case s.sleeping:
		return ActivitySleeping
	case s.groupMotion:
		return ActivityActive
	default:
		return ActivityIdle
	}
}

type extraData struct {
	LastLocation *string `json:"last_location"`
	DoorIsOpen   bool    `json:"door_is_open"`
	IsSleeping   bool    `json:"is_sleeping"`
}

// encodeJSON marshals plain structs and slices, which cannot fail.
func encodeJSON(v any) datatypes.JSON {
	raw, _ := json.Marshal(v)
	return datatypes.JSON(raw)
}

// snapshot captures the state at t with the given alert.
func (s *State) snapshot(t time.Time, level models.AlertLevel, reason *string) models.HomeStateSnapshot {
	snap := s.slots
	snap.Time = t
	snap.AlertLevel = level
	snap.AlertReason = reason
	snap.DetectedActivity = s.activity()
	if len(s.actionLog) > 0 {
		snap.ActionLog = encodeJSON(s.actionLog)
	}
	extra := extraData{DoorIsOpen: s.doorOpen, IsSleeping: s.sleeping}
	if s.lastLocation != "" {
		extra.LastLocation = common.Ptr(s.lastLocation)
	}
	snap.ExtraData = encodeJSON(extra)
	return snap
}
