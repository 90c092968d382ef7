package snapshot

import (
	"slices"
	"time"

	"liyu1981.xyz/eldercare-telemetry/pkg/models"
)

const (
	ReasonFireRisk             = "emergency_fire_risk_detected"
	ReasonGasLeak              = "emergency_gas_leak_detected"
	ReasonScreamOrFall         = "emergency_scream_or_fall_detected"
	ReasonNoMovementInBathroom = "warning_no_movement_in_bathroom"
	ReasonLongAbsence          = "warning_long_absence"
	ReasonExtremeTemperature   = "warning_extreme_temperature_and_no_movement"
	ReasonMealSkipped          = "attention_meal_skipped_suspected"
	ReasonNoMovement12h        = "attention_no_movement_12h"

	ReasonResolved = "Resolved by user"
)

const (
	fireCoPpm      = 50
	fireTempC      = 40
	gasLeakPpm     = 1000
	comfortMinC    = 10
	comfortMaxC    = 30
	bathroomStill  = 30 * time.Minute
	longAbsence    = 24 * time.Hour
	extremeStill   = 4 * time.Hour
	mealGap        = 4 * time.Hour
	noMovementLong = 12 * time.Hour
)

var (
	crisisSounds = []string{"shout_for_help", "thud_fall"}
	mealHours    = []int{12, 13, 18, 19}
)

type rule struct {
	level  models.AlertLevel
	reason string
	match  func(s *State, t time.Time) bool
	// fired runs only for the rule that wins
	fired func(s *State)
}

// rules in priority order, the first match wins.
var rules = []rule{
	{
		level:  models.AlertEmergency,
		reason: ReasonFireRisk,
		match: func(s *State, _ time.Time) bool {
			co := s.slots.LivingroomMq7CoPpm > fireCoPpm || s.slots.BedroomMq7CoPpm > fireCoPpm
			return co && s.slots.BathroomTempCelsius > fireTempC
		},
	},
	{
		level:  models.AlertEmergency,
		reason: ReasonGasLeak,
		match: func(s *State, _ time.Time) bool {
			return s.slots.KitchenMq5GasPpm > gasLeakPpm
		},
	},
	{
		level:  models.AlertEmergency,
		reason: ReasonScreamOrFall,
		match: func(s *State, _ time.Time) bool {
			return slices.Contains(crisisSounds, s.lastSoundType) && !s.lastCrisisSoundTime.Equal(s.lastSoundTime)
		},
		fired: func(s *State) {
			s.lastCrisisSoundTime = s.lastSoundTime
		},
	},
	{
		level:  models.AlertWarning,
		reason: ReasonNoMovementInBathroom,
		match: func(s *State, t time.Time) bool {
			return s.lastLocation == RoomBathroom && t.Sub(s.lastMotion) > bathroomStill && !s.sleeping
		},
	},
	{
		level:  models.AlertWarning,
		reason: ReasonLongAbsence,
		match: func(s *State, t time.Time) bool {
			return s.slots.EntranceRfidStatus == rfidOut && t.Sub(s.lastRFID) > longAbsence
		},
	},
	{
		level:  models.AlertWarning,
		reason: ReasonExtremeTemperature,
		match: func(s *State, t time.Time) bool {
			temp := s.slots.BathroomTempCelsius
			return (temp < comfortMinC || temp > comfortMaxC) && t.Sub(s.lastMotion) > extremeStill
		},
	},
	{
		level:  models.AlertAttention,
		reason: ReasonMealSkipped,
		match: func(s *State, t time.Time) bool {
			return slices.Contains(mealHours, t.UTC().Hour()) && t.Sub(s.lastKitchenActivity) > mealGap
		},
	},
	{
		level:  models.AlertAttention,
		reason: ReasonNoMovement12h,
		match: func(s *State, t time.Time) bool {
			return s.slots.EntranceRfidStatus == rfidIn && t.Sub(s.lastMotion) > noMovementLong
		},
	},
}

// evaluate returns the first matching rule at t, ok is false for Normal.
func evaluate(s *State, t time.Time) (level models.AlertLevel, reason string, ok bool) {
	for _, r := range rules {
		if r.match(s, t) {
			if r.fired != nil {
				r.fired(s)
			}
			return r.level, r.reason, true
		}
	}
	return models.AlertNormal, "", false
}
