package main

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"liyu1981.xyz/eldercare-telemetry/pkg/common"
	"liyu1981.xyz/eldercare-telemetry/pkg/models"
)

// sensor is one entry of the standard home installation.
type sensor struct {
	room string
	name string
	part string
	kind models.Kind
	// chance of a reading per simulated step, 0 for devices that never
	// report on their own
	chance float64
}

var homeBlueprint = []sensor{
	{"Entrance", "PIR motion sensor", "PIR_Motion_Sensor_1", models.KindEdgePIR, 0.2},
	{"Entrance", "13.56 RFID module", "RC522_RFID_Module_1", models.KindRFID, 0.02},
	{"Entrance", "Reed switch sensor", "Reed_Switch_Module_1", models.KindEdgeReed, 0.03},
	{"Living Room", "PIR motion sensor", "PIR_Motion_Sensor_2", models.KindEdgePIR, 0.3},
	{"Living Room", "Sound sensor", "Sound_Sensor_Module_1", models.KindSound, 0.2},
	{"Living Room", "12mm push button", "Push_Button_1", models.KindSensorEventButton, 0.005},
	{"Living Room", "PIR motion sensor", "PIR_Motion_Sensor_3", models.KindEdgePIR, 0.3},
	{"Living Room", "MQ-7 carbon monoxide sensor", "MQ7_CO_Sensor_1", models.KindMQ7, 0.5},
	{"Kitchen", "Load cell", "Load_Cell_1", models.KindLoadCell, 0.05},
	{"Kitchen", "Load cell", "Load_Cell_2", models.KindLoadCell, 0.05},
	{"Kitchen", "PIR motion sensor", "PIR_Motion_Sensor_4", models.KindEdgePIR, 0.2},
	{"Kitchen", "Sound sensor", "Sound_Sensor_Module_2", models.KindSound, 0.2},
	{"Kitchen", "5V passive buzzer", "Passive_Buzzer_1", models.KindActuatorBuzzer, 0},
	{"Kitchen", "MQ-5 gas sensor", "MQ5_Gas_Sensor_1", models.KindMQ5, 0.5},
	{"Kitchen", "12mm push button", "Push_Button_2", models.KindSensorEventButton, 0.005},
	{"Bathroom", "PIR motion sensor", "PIR_Motion_Sensor_5", models.KindEdgePIR, 0.1},
	{"Bathroom", "Sound sensor", "Sound_Sensor_Module_3", models.KindSound, 0.1},
	{"Bathroom", "12mm push button", "Push_Button_3", models.KindSensorEventButton, 0.005},
	{"Bedroom", "LM35 temperature sensor", "LM35_Temp_Sensor_1", models.KindSensorTemperature, 0.5},
	{"Bedroom", "Sound sensor", "Sound_Sensor_Module_4", models.KindSound, 0.1},
	{"Bedroom", "Load cell", "Load_Cell_3", models.KindLoadCell, 0.02},
	{"Bedroom", "MQ-7 carbon monoxide sensor", "MQ7_CO_Sensor_2", models.KindMQ7, 0.5},
	{"Bedroom", "12mm push button", "Push_Button_4", models.KindSensorEventButton, 0.005},
	{"Bedroom", "PIR motion sensor", "PIR_Motion_Sensor_6", models.KindEdgePIR, 0.2},
}

func (s sensor) deviceID(userID uuid.UUID) string {
	return fmt.Sprintf("%s_%s", userID, s.part)
}

func (s sensor) device(userID uuid.UUID, installedAt time.Time) models.Device {
	return models.Device{
		DeviceID:      s.deviceID(userID),
		UserID:        &userID,
		LocationLabel: common.Ptr(s.room + " - " + s.name),
		InstalledAt:   &installedAt,
	}
}

type generator struct {
	rnd *rand.Rand
	// CO and gas spike over this window so the run always raises alerts
	incidentStart time.Time
	incidentEnd   time.Time
	sleeping      bool
	away          bool
}

func rndFloat64(rnd *rand.Rand, min, max float64, decimal int) float64 {
	val := min + rnd.Float64()*(max-min)
	multiplier := math.Pow10(decimal)
	return math.Round(val*multiplier) / multiplier
}

func (g *generator) inIncident(t time.Time) bool {
	return !t.Before(g.incidentStart) && t.Before(g.incidentEnd)
}

// record returns the payload a sensor sends at t, or nil when it stays
// silent this step.
func (g *generator) record(s sensor, deviceID string, t time.Time) map[string]any {
	if s.chance == 0 || g.rnd.Float64() >= s.chance {
		return nil
	}
	rec := map[string]any{
		"time":      common.FormatTimestamp(t),
		"device_id": deviceID,
	}
	switch s.kind {
	case models.KindEdgePIR:
		rec["motion_detected"] = !g.away && g.rnd.Intn(3) > 0
		rec["confidence"] = rndFloat64(g.rnd, 0.6, 1, 2)
	case models.KindRFID:
		g.away = !g.away
		status := "in"
		if g.away {
			status = "out"
		}
		rec["status"] = status
		rec["card_id"] = "CARD-0001"
		rec["read_success"] = true
	case models.KindEdgeReed:
		rec["switch_state"] = g.rnd.Intn(4) > 0
		rec["confidence"] = rndFloat64(g.rnd, 0.8, 1, 2)
	case models.KindSound:
		rec["db_level"] = rndFloat64(g.rnd, 30, 75, 1)
		rec["event_type"] = []string{"ambient", "television", "movement_rustle", "cooking_clatter"}[g.rnd.Intn(4)]
	case models.KindSensorEventButton:
		rec["button_state"] = "PRESSED"
		rec["event_type"] = "assistance_request"
		rec["press_duration_ms"] = 100 + g.rnd.Intn(900)
	case models.KindMQ7:
		co := rndFloat64(g.rnd, 2, 12, 1)
		if g.inIncident(t) {
			co = rndFloat64(g.rnd, 60, 120, 1)
		}
		rec["co_ppm"] = co
	case models.KindMQ5:
		gas := rndFloat64(g.rnd, 100, 300, 1)
		if g.inIncident(t) {
			gas = rndFloat64(g.rnd, 1200, 2000, 1)
		}
		rec["gas_ppm"] = gas
	case models.KindLoadCell:
		if s.room == "Bedroom" {
			g.sleeping = !g.sleeping
			event := "sleep_end"
			if g.sleeping {
				event = "sleep_start"
			}
			rec["event_type"] = event
			rec["weight_kg"] = rndFloat64(g.rnd, 55, 75, 1)
		} else {
			rec["weight_kg"] = rndFloat64(g.rnd, 0, 5, 2)
		}
	case models.KindSensorTemperature:
		rec["temperature_celsius"] = rndFloat64(g.rnd, 19, 26, 1)
		rec["humidity_percent"] = rndFloat64(g.rnd, 30, 60, 1)
	default:
		return nil
	}
	return rec
}
