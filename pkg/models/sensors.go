package models

type SensorRawCDS struct {
	EventKey
	AnalogValue *int     `json:"analog_value,omitempty"`
	LuxValue    *float64 `json:"lux_value,omitempty"`
}

func (SensorRawCDS) TableName() string { return "sensor_raw_cds" }
func (s SensorRawCDS) Measurement() (float64, bool) { return measured(s.LuxValue) }

type SensorRawDHT struct {
	EventKey
	Temperature *float64 `json:"temperature,omitempty"`
	Humidity    *float64 `json:"humidity,omitempty"`
	HeatIndex   *float64 `json:"heat_index,omitempty"`
}

func (SensorRawDHT) TableName() string { return "sensor_raw_dht" }
func (s SensorRawDHT) Measurement() (float64, bool) { return measured(s.Temperature) }

type SensorRawFlame struct {
	EventKey
	AnalogValue   *int  `json:"analog_value,omitempty"`
	FlameDetected *bool `json:"flame_detected,omitempty"`
}

func (SensorRawFlame) TableName() string { return "sensor_raw_flame" }
func (s SensorRawFlame) Measurement() (float64, bool) { return measuredInt(s.AnalogValue) }

type SensorRawIMU struct {
	EventKey
	AccelX      *float64 `json:"accel_x,omitempty"`
	AccelY      *float64 `json:"accel_y,omitempty"`
	AccelZ      *float64 `json:"accel_z,omitempty"`
	GyroX       *float64 `json:"gyro_x,omitempty"`
	GyroY       *float64 `json:"gyro_y,omitempty"`
	GyroZ       *float64 `json:"gyro_z,omitempty"`
	MagX        *float64 `json:"mag_x,omitempty"`
	MagY        *float64 `json:"mag_y,omitempty"`
	MagZ        *float64 `json:"mag_z,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
}

func (SensorRawIMU) TableName() string { return "sensor_raw_imu" }
func (s SensorRawIMU) Measurement() (float64, bool) { return measured(s.Temperature) }

type SensorRawLoadCell struct {
	EventKey
	RawValue   *int     `json:"raw_value,omitempty"`
	WeightKg   *float64 `json:"weight_kg,omitempty"`
	Calibrated *bool    `json:"calibrated,omitempty"`
	EventType  *string  `json:"event_type,omitempty"`
}

func (SensorRawLoadCell) TableName() string { return "sensor_raw_loadcell" }
func (s SensorRawLoadCell) Measurement() (float64, bool) { return measured(s.WeightKg) }

type SensorRawMQ5 struct {
	EventKey
	AnalogValue *int     `json:"analog_value,omitempty"`
	GasPpm      *float64 `json:"gas_ppm,omitempty"`
	GasType     *string  `json:"gas_type,omitempty"`
	Status      *string  `json:"status,omitempty"`
	EventType   *string  `json:"event_type,omitempty"`
}

func (SensorRawMQ5) TableName() string { return "sensor_raw_mq5" }
func (s SensorRawMQ5) Measurement() (float64, bool) { return measured(s.GasPpm) }

type SensorRawMQ7 struct {
	EventKey
	AnalogValue *int     `json:"analog_value,omitempty"`
	CoPpm       *float64 `json:"co_ppm,omitempty"`
	GasType     *string  `json:"gas_type,omitempty"`
	Status      *string  `json:"status,omitempty"`
	EventType   *string  `json:"event_type,omitempty"`
}

func (SensorRawMQ7) TableName() string { return "sensor_raw_mq7" }
func (s SensorRawMQ7) Measurement() (float64, bool) { return measured(s.CoPpm) }

type SensorRawRFID struct {
	EventKey
	CardID      *string `json:"card_id,omitempty"`
	CardType    *string `json:"card_type,omitempty"`
	ReadSuccess *bool   `json:"read_success,omitempty"`
	Status      *string `json:"status,omitempty"`
}

func (SensorRawRFID) TableName() string { return "sensor_raw_rfid" }

type SensorRawSound struct {
	EventKey
	AnalogValue       *int     `json:"analog_value,omitempty"`
	DbLevel           *float64 `json:"db_level,omitempty"`
	ThresholdExceeded *bool    `json:"threshold_exceeded,omitempty"`
	EventType         *string  `json:"event_type,omitempty"`
}

func (SensorRawSound) TableName() string { return "sensor_raw_sound" }
func (s SensorRawSound) Measurement() (float64, bool) { return measured(s.DbLevel) }

type SensorRawTCRT5000 struct {
	EventKey
	DigitalValue   *bool `json:"digital_value,omitempty"`
	AnalogValue    *int  `json:"analog_value,omitempty"`
	ObjectDetected *bool `json:"object_detected,omitempty"`
}

func (SensorRawTCRT5000) TableName() string { return "sensor_raw_tcrt5000" }
func (s SensorRawTCRT5000) Measurement() (float64, bool) { return measuredInt(s.AnalogValue) }

type SensorRawUltrasonic struct {
	EventKey
	DistanceCm       *float64 `json:"distance_cm,omitempty"`
	RawValue         *int     `json:"raw_value,omitempty"`
	MeasurementValid *bool    `json:"measurement_valid,omitempty"`
}

func (SensorRawUltrasonic) TableName() string { return "sensor_raw_ultrasonic" }
func (s SensorRawUltrasonic) Measurement() (float64, bool) { return measured(s.DistanceCm) }

type SensorRawTemperature struct {
	EventKey
	TemperatureCelsius float64  `json:"temperature_celsius"`
	HumidityPercent    *float64 `json:"humidity_percent,omitempty"`
}

func (SensorRawTemperature) TableName() string { return "sensor_raw_temperature" }
func (s SensorRawTemperature) Measurement() (float64, bool) {
	return s.TemperatureCelsius, true
}

type SensorEventButton struct {
	EventKey
	ButtonState     string  `gorm:"size:16" json:"button_state"`
	EventType       *string `json:"event_type,omitempty"`
	PressDurationMs *int    `json:"press_duration_ms,omitempty"`
}

func (SensorEventButton) TableName() string { return "sensor_event_button" }

// edge-processed variants

type SensorEdgeFlame struct {
	EventKey
	FlameDetected  bool     `json:"flame_detected"`
	Confidence     *float64 `json:"confidence,omitempty"`
	AlertLevel     *string  `json:"alert_level,omitempty"`
	ProcessingTime *float64 `json:"processing_time,omitempty"`
}

func (SensorEdgeFlame) TableName() string { return "sensor_edge_flame" }
func (s SensorEdgeFlame) Measurement() (float64, bool) { return measured(s.Confidence) }

type SensorEdgePIR struct {
	EventKey
	MotionDetected  bool     `json:"motion_detected"`
	Confidence      *float64 `json:"confidence,omitempty"`
	MotionDirection *string  `json:"motion_direction,omitempty"`
	MotionSpeed     *float64 `json:"motion_speed,omitempty"`
	ProcessingTime  *float64 `json:"processing_time,omitempty"`
}

func (SensorEdgePIR) TableName() string { return "sensor_edge_pir" }
func (s SensorEdgePIR) Measurement() (float64, bool) { return measured(s.Confidence) }

// SensorEdgeReed.SwitchState is true while the magnet is present, i.e. the
// door is closed.
type SensorEdgeReed struct {
	EventKey
	SwitchState           bool     `json:"switch_state"`
	Confidence            *float64 `json:"confidence,omitempty"`
	MagneticFieldDetected *bool    `json:"magnetic_field_detected,omitempty"`
	MagneticStrength      *float64 `json:"magnetic_strength,omitempty"`
	ProcessingTime        *float64 `json:"processing_time,omitempty"`
}

func (SensorEdgeReed) TableName() string { return "sensor_edge_reed" }
func (s SensorEdgeReed) Measurement() (float64, bool) { return measured(s.Confidence) }

type SensorEdgeTilt struct {
	EventKey
	TiltDetected   bool     `json:"tilt_detected"`
	Confidence     *float64 `json:"confidence,omitempty"`
	TiltAngle      *float64 `json:"tilt_angle,omitempty"`
	TiltDirection  *string  `json:"tilt_direction,omitempty"`
	ProcessingTime *float64 `json:"processing_time,omitempty"`
}

func (SensorEdgeTilt) TableName() string { return "sensor_edge_tilt" }
func (s SensorEdgeTilt) Measurement() (float64, bool) { return measured(s.Confidence) }

type DeviceRTCStatus struct {
	EventKey
	RtcEpochS  *int64  `json:"rtc_epoch_s,omitempty"`
	DriftMs    *int    `json:"drift_ms,omitempty"`
	SyncSource *string `json:"sync_source,omitempty"`
}

func (DeviceRTCStatus) TableName() string { return "device_rtc_status" }
func (s DeviceRTCStatus) Measurement() (float64, bool) {
	return measuredInt(s.DriftMs)
}
