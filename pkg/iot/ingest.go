package iot

import (
	"context"
	"encoding/json"
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"
	"gorm.io/datatypes"
	"liyu1981.xyz/eldercare-telemetry/pkg/common"
	"liyu1981.xyz/eldercare-telemetry/pkg/models"
)

// Ingestor decodes a loosely typed record (gRPC struct, MQTT JSON) and
// creates it through the kind's service.
type Ingestor func(ctx context.Context, record map[string]any) (models.EventKey, error)

var jsonType = reflect.TypeOf(datatypes.JSON{})

// rawJSONHook lets raw_payload arrive as a nested map.
func rawJSONHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != jsonType {
		return data, nil
	}
	if s, ok := data.(string); ok {
		return datatypes.JSON(s), nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

// DecodeRecord fills out from record using the json field names. Unknown
// keys are an error.
func DecodeRecord(record map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:     "json",
		Squash:      true,
		ErrorUnused: true,
		Result:      out,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			rawJSONHook,
			mapstructure.StringToTimeHookFunc(time.RFC3339Nano),
		),
	})
	if err != nil {
		return err
	}
	return decoder.Decode(record)
}

func ingest[T models.Event](svc IEvent[T]) Ingestor {
	return func(ctx context.Context, record map[string]any) (models.EventKey, error) {
		var rec T
		if err := DecodeRecord(record, &rec); err != nil {
			return models.EventKey{}, common.Invalid("%s: %v", svc.Kind(), err)
		}
		stored, err := svc.Create(ctx, &rec)
		if err != nil {
			return models.EventKey{}, err
		}
		return stored.Key(), nil
	}
}

func (i *IOT) Ingestors() map[models.Kind]Ingestor {
	e := i.Events
	return map[models.Kind]Ingestor{
		models.KindCDS:               ingest(e.CDS),
		models.KindDHT:               ingest(e.DHT),
		models.KindFlame:             ingest(e.Flame),
		models.KindIMU:               ingest(e.IMU),
		models.KindLoadCell:          ingest(e.LoadCell),
		models.KindMQ5:               ingest(e.MQ5),
		models.KindMQ7:               ingest(e.MQ7),
		models.KindRFID:              ingest(e.RFID),
		models.KindSound:             ingest(e.Sound),
		models.KindTCRT5000:          ingest(e.TCRT5000),
		models.KindUltrasonic:        ingest(e.Ultrasonic),
		models.KindEdgeFlame:         ingest(e.EdgeFlame),
		models.KindEdgePIR:           ingest(e.EdgePIR),
		models.KindEdgeReed:          ingest(e.EdgeReed),
		models.KindEdgeTilt:          ingest(e.EdgeTilt),
		models.KindActuatorBuzzer:    ingest(e.Buzzer),
		models.KindActuatorIRTX:      ingest(e.IRTX),
		models.KindActuatorRelay:     ingest(e.Relay),
		models.KindActuatorServo:     ingest(e.Servo),
		models.KindDeviceRTC:         ingest(e.RTC),
		models.KindSensorEventButton: ingest(e.Button),
		models.KindSensorTemperature: ingest(e.Temperature),
	}
}

// Ingest routes record to the service of kind.
func (i *IOT) Ingest(ctx context.Context, kind models.Kind, record map[string]any) (models.EventKey, error) {
	fn, ok := i.Ingestors()[kind]
	if !ok {
		return models.EventKey{}, common.Invalid("unknown kind %q", kind)
	}
	return fn(ctx, record)
}
