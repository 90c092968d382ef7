package models

// Kind is the URL segment naming an event resource.
type Kind string

const (
	KindCDS               Kind = "cds"
	KindDHT               Kind = "dht"
	KindFlame             Kind = "flame"
	KindIMU               Kind = "imu"
	KindLoadCell          Kind = "loadcell"
	KindMQ5               Kind = "mq5"
	KindMQ7               Kind = "mq7"
	KindRFID              Kind = "rfid"
	KindSound             Kind = "sound"
	KindTCRT5000          Kind = "tcrt5000"
	KindUltrasonic        Kind = "ultrasonic"
	KindEdgeFlame         Kind = "edge-flame"
	KindEdgePIR           Kind = "edge-pir"
	KindEdgeReed          Kind = "edge-reed"
	KindEdgeTilt          Kind = "edge-tilt"
	KindActuatorBuzzer    Kind = "actuator-buzzer"
	KindActuatorIRTX      Kind = "actuator-irtx"
	KindActuatorRelay     Kind = "actuator-relay"
	KindActuatorServo     Kind = "actuator-servo"
	KindDeviceRTC         Kind = "device-rtc"
	KindSensorEventButton Kind = "sensor-event-buttons"
	KindSensorTemperature Kind = "sensor-raw-temperatures"
)

// Descriptor carries the per-kind analytics settings. MetricColumn is empty
// for kinds without a numeric reading.
type Descriptor struct {
	Kind             Kind
	MetricColumn     string
	DefaultThreshold float64
}

func (d Descriptor) HasMetric() bool { return d.MetricColumn != "" }

var descriptors = map[Kind]Descriptor{
	KindCDS:               {Kind: KindCDS, MetricColumn: "lux_value", DefaultThreshold: 1000},
	KindDHT:               {Kind: KindDHT, MetricColumn: "temperature", DefaultThreshold: 35},
	KindFlame:             {Kind: KindFlame, MetricColumn: "analog_value", DefaultThreshold: 500},
	KindIMU:               {Kind: KindIMU, MetricColumn: "temperature", DefaultThreshold: 60},
	KindLoadCell:          {Kind: KindLoadCell, MetricColumn: "weight_kg", DefaultThreshold: 150},
	KindMQ5:               {Kind: KindMQ5, MetricColumn: "gas_ppm", DefaultThreshold: 1000},
	KindMQ7:               {Kind: KindMQ7, MetricColumn: "co_ppm", DefaultThreshold: 50},
	KindRFID:              {Kind: KindRFID},
	KindSound:             {Kind: KindSound, MetricColumn: "db_level", DefaultThreshold: 80},
	KindTCRT5000:          {Kind: KindTCRT5000, MetricColumn: "analog_value", DefaultThreshold: 800},
	KindUltrasonic:        {Kind: KindUltrasonic, MetricColumn: "distance_cm", DefaultThreshold: 400},
	KindEdgeFlame:         {Kind: KindEdgeFlame, MetricColumn: "confidence", DefaultThreshold: 0.8},
	KindEdgePIR:           {Kind: KindEdgePIR, MetricColumn: "confidence", DefaultThreshold: 0.8},
	KindEdgeReed:          {Kind: KindEdgeReed, MetricColumn: "confidence", DefaultThreshold: 0.8},
	KindEdgeTilt:          {Kind: KindEdgeTilt, MetricColumn: "confidence", DefaultThreshold: 0.8},
	KindActuatorBuzzer:    {Kind: KindActuatorBuzzer},
	KindActuatorIRTX:      {Kind: KindActuatorIRTX},
	KindActuatorRelay:     {Kind: KindActuatorRelay},
	KindActuatorServo:     {Kind: KindActuatorServo, MetricColumn: "angle_deg", DefaultThreshold: 170},
	KindDeviceRTC:         {Kind: KindDeviceRTC, MetricColumn: "drift_ms", DefaultThreshold: 1000},
	KindSensorEventButton: {Kind: KindSensorEventButton},
	KindSensorTemperature: {Kind: KindSensorTemperature, MetricColumn: "temperature_celsius", DefaultThreshold: 40},
}

func DescriptorOf(kind Kind) (Descriptor, bool) {
	d, ok := descriptors[kind]
	return d, ok
}

// AllModels lists every table for migration.
func AllModels() []any {
	return []any{
		&User{}, &Device{}, &UserRelationship{}, &UserProfile{},
		&SensorRawCDS{}, &SensorRawDHT{}, &SensorRawFlame{}, &SensorRawIMU{},
		&SensorRawLoadCell{}, &SensorRawMQ5{}, &SensorRawMQ7{}, &SensorRawRFID{},
		&SensorRawSound{}, &SensorRawTCRT5000{}, &SensorRawUltrasonic{},
		&SensorEdgeFlame{}, &SensorEdgePIR{}, &SensorEdgeReed{}, &SensorEdgeTilt{},
		&ActuatorLogBuzzer{}, &ActuatorLogIRTX{}, &ActuatorLogRelay{}, &ActuatorLogServo{},
		&DeviceRTCStatus{}, &SensorEventButton{}, &SensorRawTemperature{},
		&HomeStateSnapshot{},
	}
}
