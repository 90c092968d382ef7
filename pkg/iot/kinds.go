package iot

import (
	"liyu1981.xyz/eldercare-telemetry/pkg/common"
	"liyu1981.xyz/eldercare-telemetry/pkg/models"
)

const (
	mq5DangerPpm  = 1000
	mq7WarningPpm = 50
)

// EventServices holds one service per sensor and actuator kind.
type EventServices struct {
	CDS         IEvent[models.SensorRawCDS]
	DHT         IEvent[models.SensorRawDHT]
	Flame       IEvent[models.SensorRawFlame]
	IMU         IEvent[models.SensorRawIMU]
	LoadCell    IEvent[models.SensorRawLoadCell]
	MQ5         IEvent[models.SensorRawMQ5]
	MQ7         IEvent[models.SensorRawMQ7]
	RFID        IEvent[models.SensorRawRFID]
	Sound       IEvent[models.SensorRawSound]
	TCRT5000    IEvent[models.SensorRawTCRT5000]
	Ultrasonic  IEvent[models.SensorRawUltrasonic]
	EdgeFlame   IEvent[models.SensorEdgeFlame]
	EdgePIR     IEvent[models.SensorEdgePIR]
	EdgeReed    IEvent[models.SensorEdgeReed]
	EdgeTilt    IEvent[models.SensorEdgeTilt]
	Buzzer      IEvent[models.ActuatorLogBuzzer]
	IRTX        IEvent[models.ActuatorLogIRTX]
	Relay       IEvent[models.ActuatorLogRelay]
	Servo       IEvent[models.ActuatorLogServo]
	RTC         IEvent[models.DeviceRTCStatus]
	Button      IEvent[models.SensorEventButton]
	Temperature IEvent[models.SensorRawTemperature]
}

func newEventServices(i *IOT) *EventServices {
	return &EventServices{
		CDS:        newEventService(i, models.KindCDS, eventRules[models.SensorRawCDS]{schema: cdsSchema}),
		DHT:        newEventService(i, models.KindDHT, eventRules[models.SensorRawDHT]{schema: dhtSchema}),
		Flame:      newEventService(i, models.KindFlame, eventRules[models.SensorRawFlame]{schema: flameSchema}),
		IMU:        newEventService(i, models.KindIMU, eventRules[models.SensorRawIMU]{}),
		LoadCell:   newEventService(i, models.KindLoadCell, eventRules[models.SensorRawLoadCell]{schema: loadCellSchema}),
		MQ5:        newEventService(i, models.KindMQ5, eventRules[models.SensorRawMQ5]{schema: mq5Schema, normalize: deriveMQ5Status}),
		MQ7:        newEventService(i, models.KindMQ7, eventRules[models.SensorRawMQ7]{schema: mq7Schema, normalize: deriveMQ7Status}),
		RFID:       newEventService(i, models.KindRFID, eventRules[models.SensorRawRFID]{schema: rfidSchema}),
		Sound:      newEventService(i, models.KindSound, eventRules[models.SensorRawSound]{schema: soundSchema}),
		TCRT5000:   newEventService(i, models.KindTCRT5000, eventRules[models.SensorRawTCRT5000]{schema: tcrtSchema}),
		Ultrasonic: newEventService(i, models.KindUltrasonic, eventRules[models.SensorRawUltrasonic]{schema: ultrasonicSchema}),
		EdgeFlame:  newEventService(i, models.KindEdgeFlame, eventRules[models.SensorEdgeFlame]{schema: edgeSchema}),
		EdgePIR:    newEventService(i, models.KindEdgePIR, eventRules[models.SensorEdgePIR]{schema: edgeSchema}),
		EdgeReed:   newEventService(i, models.KindEdgeReed, eventRules[models.SensorEdgeReed]{schema: edgeSchema}),
		EdgeTilt:   newEventService(i, models.KindEdgeTilt, eventRules[models.SensorEdgeTilt]{schema: edgeSchema}),
		Buzzer:     newEventService(i, models.KindActuatorBuzzer, eventRules[models.ActuatorLogBuzzer]{schema: buzzerSchema}),
		IRTX:       newEventService(i, models.KindActuatorIRTX, eventRules[models.ActuatorLogIRTX]{schema: irtxSchema}),
		Relay:      newEventService(i, models.KindActuatorRelay, eventRules[models.ActuatorLogRelay]{schema: relaySchema}),
		Servo:      newEventService(i, models.KindActuatorServo, eventRules[models.ActuatorLogServo]{schema: servoSchema}),
		RTC:        newEventService(i, models.KindDeviceRTC, eventRules[models.DeviceRTCStatus]{schema: rtcSchema, check: checkRTCEpoch}),
		Button:     newEventService(i, models.KindSensorEventButton, eventRules[models.SensorEventButton]{schema: buttonSchema}),
		Temperature: newEventService(i, models.KindSensorTemperature,
			eventRules[models.SensorRawTemperature]{schema: temperatureSchema}),
	}
}

// deriveMQ5Status fills status from gas_ppm when the device did not send one.
func deriveMQ5Status(rec *models.SensorRawMQ5) {
	if rec.Status != nil || rec.GasPpm == nil {
		return
	}
	status := "ok"
	if *rec.GasPpm >= mq5DangerPpm {
		status = "danger"
	}
	rec.Status = &status
}

func deriveMQ7Status(rec *models.SensorRawMQ7) {
	if rec.Status != nil || rec.CoPpm == nil {
		return
	}
	status := "ok"
	if *rec.CoPpm >= mq7WarningPpm {
		status = "warning"
	}
	rec.Status = &status
}

func checkRTCEpoch(rec *models.DeviceRTCStatus) error {
	if rec.RtcEpochS != nil && *rec.RtcEpochS < 0 {
		return common.Invalid("rtc_epoch_s: must be >= 0")
	}
	return nil
}
