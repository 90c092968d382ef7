package iot

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"gorm.io/datatypes"
	"liyu1981.xyz/eldercare-telemetry/pkg/common"
	"liyu1981.xyz/eldercare-telemetry/pkg/models"
)

var t0 = time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)

func key(deviceID string, offset time.Duration) models.EventKey {
	return models.EventKey{Time: t0.Add(offset), DeviceID: deviceID}
}

func TestEventCreateRoundTrip(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, iotObj, _, _ := GetMockIOTWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()

	seedDevice(t, iotObj, "MQ7_1", nil, "Living Room - MQ7")

	in := models.SensorRawMQ7{
		EventKey: models.EventKey{
			Time:       t0.In(time.FixedZone("KST", 9*3600)),
			DeviceID:   "MQ7_1",
			RawPayload: datatypes.JSON(`{"fw":"1.2","calib":{"r0":9.8,"ok":true}}`),
		},
		AnalogValue: common.Ptr(512),
		CoPpm:       common.Ptr(12.5),
		GasType:     common.Ptr("CO"),
	}
	created, err := iotObj.Events.MQ7.Create(t.Context(), &in)
	require.NoError(t, err)
	assert.Equal(t, "ok", *created.Status)

	got, err := iotObj.Events.MQ7.Get(t.Context(), "MQ7_1", t0)
	require.NoError(t, err)
	assert.True(t, got.Time.Equal(t0))
	assert.Equal(t, 512, *got.AnalogValue)
	assert.Equal(t, 12.5, *got.CoPpm)
	assert.Equal(t, "CO", *got.GasType)
	assert.Equal(t, "ok", *got.Status)
	assert.JSONEq(t, `{"calib":{"ok":true,"r0":9.8},"fw":"1.2"}`, string(got.RawPayload))
}

func TestEventCreateRequiresRegisteredDevice(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, iotObj, _, _ := GetMockIOTWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()

	_, err := iotObj.Events.CDS.Create(t.Context(), &models.SensorRawCDS{EventKey: key("CDS_1", 0)})
	requireKind(t, err, common.KindInvalid)
	assert.Contains(t, common.MessageOf(err), "not registered")

	_, err = iotObj.Events.CDS.Create(t.Context(), &models.SensorRawCDS{EventKey: models.EventKey{DeviceID: "CDS_1"}})
	requireKind(t, err, common.KindInvalid)
}

func TestEventCreateDuplicateKey(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, iotObj, _, _ := GetMockIOTWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()

	seedDevice(t, iotObj, "PIR_1", nil, "Entrance - PIR")
	rec := models.SensorEdgePIR{EventKey: key("PIR_1", 0), MotionDetected: true}
	_, err := iotObj.Events.EdgePIR.Create(t.Context(), &rec)
	require.NoError(t, err)

	again := models.SensorEdgePIR{EventKey: key("PIR_1", 0)}
	_, err = iotObj.Events.EdgePIR.Create(t.Context(), &again)
	requireKind(t, err, common.KindConflict)
}

func TestBuzzerFrequencyBelowRange(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, iotObj, _, _ := GetMockIOTWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()

	seedDevice(t, iotObj, "BZ_1", nil, "Kitchen - Buzzer")

	_, err := iotObj.Events.Buzzer.Create(t.Context(), &models.ActuatorLogBuzzer{
		EventKey: key("BZ_1", 0), BuzzerType: "piezo", State: "on", FreqHz: common.Ptr(10),
	})
	requireKind(t, err, common.KindInvalid)
	assert.Contains(t, common.MessageOf(err), "freq_hz")

	rows, err := iotObj.Events.Buzzer.List(t.Context(), models.ListQuery{})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestEventEnumWhitelists(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, iotObj, _, _ := GetMockIOTWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()

	for _, id := range []string{"SND_1", "RLY_1", "BTN_1", "RFID_1", "IR_1", "SRV_1"} {
		seedDevice(t, iotObj, id, nil, "")
	}
	ctx := t.Context()

	_, err := iotObj.Events.Sound.Create(ctx, &models.SensorRawSound{EventKey: key("SND_1", 0), EventType: common.Ptr("barking")})
	requireKind(t, err, common.KindInvalid)
	_, err = iotObj.Events.Relay.Create(ctx, &models.ActuatorLogRelay{EventKey: key("RLY_1", 0), Channel: 1, State: "dim"})
	requireKind(t, err, common.KindInvalid)
	_, err = iotObj.Events.Relay.Create(ctx, &models.ActuatorLogRelay{EventKey: key("RLY_1", 0), Channel: 17, State: "on"})
	requireKind(t, err, common.KindInvalid)
	_, err = iotObj.Events.Button.Create(ctx, &models.SensorEventButton{EventKey: key("BTN_1", 0), ButtonState: "pressed"})
	requireKind(t, err, common.KindInvalid)
	_, err = iotObj.Events.RFID.Create(ctx, &models.SensorRawRFID{EventKey: key("RFID_1", 0), Status: common.Ptr("lost")})
	requireKind(t, err, common.KindInvalid)
	_, err = iotObj.Events.IRTX.Create(ctx, &models.ActuatorLogIRTX{EventKey: key("IR_1", 0), CommandHex: "zz"})
	requireKind(t, err, common.KindInvalid)
	_, err = iotObj.Events.Servo.Create(ctx, &models.ActuatorLogServo{EventKey: key("SRV_1", 0), Channel: 1, AngleDeg: common.Ptr(181.0)})
	requireKind(t, err, common.KindInvalid)

	// nothing was written by the rejected creates
	sounds, err := iotObj.Events.Sound.List(ctx, models.ListQuery{})
	require.NoError(t, err)
	assert.Empty(t, sounds)

	ok, err := iotObj.Events.Sound.Create(ctx, &models.SensorRawSound{EventKey: key("SND_1", 0), DbLevel: common.Ptr(55.0), EventType: common.Ptr("coughing")})
	require.NoError(t, err)
	assert.Equal(t, "coughing", *ok.EventType)
	_, err = iotObj.Events.IRTX.Create(ctx, &models.ActuatorLogIRTX{EventKey: key("IR_1", 0), CommandHex: "0x20DF10EF"})
	require.NoError(t, err)
}

func TestEventListAndLatest(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, iotObj, _, _ := GetMockIOTWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()

	seedDevice(t, iotObj, "LC_1", nil, "Kitchen - Loadcell")
	seedDevice(t, iotObj, "LC_2", nil, "Kitchen - Loadcell")
	for i, w := range []float64{1, 2, 3, 4} {
		_, err := iotObj.Events.LoadCell.Create(t.Context(), &models.SensorRawLoadCell{
			EventKey: key("LC_1", time.Duration(i)*time.Minute), WeightKg: common.Ptr(w),
		})
		require.NoError(t, err)
	}
	_, err := iotObj.Events.LoadCell.Create(t.Context(), &models.SensorRawLoadCell{EventKey: key("LC_2", time.Hour), WeightKg: common.Ptr(9.0)})
	require.NoError(t, err)

	start, end := t0.Add(time.Minute), t0.Add(2*time.Minute)
	rows, err := iotObj.Events.LoadCell.List(t.Context(), models.ListQuery{DeviceID: "LC_1", Start: &start, End: &end})
	require.NoError(t, err)
	// closed range, newest first
	require.Len(t, rows, 2)
	assert.Equal(t, 3.0, *rows[0].WeightKg)
	assert.Equal(t, 2.0, *rows[1].WeightKg)

	latest, err := iotObj.Events.LoadCell.Latest(t.Context(), "LC_1")
	require.NoError(t, err)
	assert.Equal(t, 4.0, *latest.WeightKg)

	_, err = iotObj.Events.LoadCell.Latest(t.Context(), "LC_9")
	requireKind(t, err, common.KindNotFound)

	_, err = iotObj.Events.LoadCell.List(t.Context(), models.ListQuery{Start: &end, End: &start})
	requireKind(t, err, common.KindInvalid)
	_, err = iotObj.Events.LoadCell.List(t.Context(), models.ListQuery{Limit: MaxListLimit + 1})
	requireKind(t, err, common.KindInvalid)
	_, err = iotObj.Events.LoadCell.List(t.Context(), models.ListQuery{Offset: -1})
	requireKind(t, err, common.KindInvalid)
}

func TestEventUpdateAndDelete(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, iotObj, _, _ := GetMockIOTWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()

	seedDevice(t, iotObj, "MQ5_1", nil, "Kitchen - MQ5")
	_, err := iotObj.Events.MQ5.Create(t.Context(), &models.SensorRawMQ5{EventKey: key("MQ5_1", 0), GasPpm: common.Ptr(300.0)})
	require.NoError(t, err)

	updated, err := iotObj.Events.MQ5.Update(t.Context(), "MQ5_1", t0, models.Patch{"gas_ppm": 1200.0, "status": "danger"})
	require.NoError(t, err)
	assert.Equal(t, 1200.0, *updated.GasPpm)

	got, err := iotObj.Events.MQ5.Get(t.Context(), "MQ5_1", t0)
	require.NoError(t, err)
	assert.Equal(t, "danger", *got.Status)

	_, err = iotObj.Events.MQ5.Update(t.Context(), "MQ5_1", t0, models.Patch{"device_id": "MQ5_2"})
	requireKind(t, err, common.KindInvalid)
	_, err = iotObj.Events.MQ5.Update(t.Context(), "MQ5_1", t0, models.Patch{"status": "meh"})
	requireKind(t, err, common.KindInvalid)
	_, err = iotObj.Events.MQ5.Update(t.Context(), "MQ5_1", t0, models.Patch{})
	requireKind(t, err, common.KindInvalid)
	_, err = iotObj.Events.MQ5.Update(t.Context(), "MQ5_1", t0.Add(time.Second), models.Patch{"gas_ppm": 1.0})
	requireKind(t, err, common.KindNotFound)

	require.NoError(t, iotObj.Events.MQ5.Delete(t.Context(), "MQ5_1", t0))
	requireKind(t, iotObj.Events.MQ5.Delete(t.Context(), "MQ5_1", t0), common.KindNotFound)
}

func TestEventStatisticsAndAlerts(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, iotObj, _, _ := GetMockIOTWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()

	seedDevice(t, iotObj, "MQ5_1", nil, "Kitchen - MQ5")
	for i, ppm := range []float64{200, 1500, 2500} {
		_, err := iotObj.Events.MQ5.Create(t.Context(), &models.SensorRawMQ5{
			EventKey: key("MQ5_1", time.Duration(i)*time.Minute), GasPpm: common.Ptr(ppm),
		})
		require.NoError(t, err)
	}

	stats, err := iotObj.Events.MQ5.Statistics(t.Context(), models.ListQuery{DeviceID: "MQ5_1"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Count)
	assert.Equal(t, 200.0, *stats.Min)
	assert.Equal(t, 2500.0, *stats.Max)
	assert.InDelta(t, 1400.0, *stats.Avg, 0.001)

	// the kind default is 1000 ppm
	alerts, err := iotObj.Events.MQ5.Alerts(t.Context(), models.ListQuery{}, nil)
	require.NoError(t, err)
	require.Len(t, alerts, 2)
	assert.Equal(t, models.SeverityHigh, alerts[0].Severity)
	assert.Equal(t, 2500.0, alerts[0].Value)
	assert.Equal(t, models.SeverityMedium, alerts[1].Severity)

	alerts, err = iotObj.Events.MQ5.Alerts(t.Context(), models.ListQuery{}, common.Ptr(2000.0))
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, 2000.0, alerts[0].Threshold)

	_, err = iotObj.Events.RFID.Statistics(t.Context(), models.ListQuery{})
	requireKind(t, err, common.KindInvalid)
	_, err = iotObj.Events.Relay.Alerts(t.Context(), models.ListQuery{}, nil)
	requireKind(t, err, common.KindInvalid)
}

func TestIngest(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, iotObj, _, _ := GetMockIOTWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()

	seedDevice(t, iotObj, "TEMP_1", nil, "Bathroom - Thermistor")

	stored, err := iotObj.Ingest(t.Context(), models.KindSensorTemperature, map[string]any{
		"time":                "2025-05-01T09:00:00Z",
		"device_id":           "TEMP_1",
		"temperature_celsius": 36.5,
		"raw_payload":         map[string]any{"adc": 733},
	})
	require.NoError(t, err)
	assert.Equal(t, "TEMP_1", stored.DeviceID)
	assert.True(t, stored.Time.Equal(t0))

	rec, err := iotObj.Events.Temperature.Get(t.Context(), "TEMP_1", t0)
	require.NoError(t, err)
	assert.Equal(t, 36.5, rec.TemperatureCelsius)
	assert.JSONEq(t, `{"adc":733}`, string(rec.RawPayload))

	_, err = iotObj.Ingest(t.Context(), models.KindSensorTemperature, map[string]any{
		"time": "2025-05-01T09:00:01Z", "device_id": "TEMP_1", "celsius": 1,
	})
	requireKind(t, err, common.KindInvalid)

	_, err = iotObj.Ingest(t.Context(), "weather", map[string]any{})
	requireKind(t, err, common.KindInvalid)

	assert.Len(t, iotObj.Ingestors(), 22)
}

func TestEventCreate_WithLog(t *testing.T) {
	var buf = &bytes.Buffer{}
	common.SetTestCaptureLogger(buf, zapcore.InfoLevel)

	ctrl, iotObj, _, _ := GetMockIOTWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()

	seedDevice(t, iotObj, "RTC_1", nil, "")
	_, err := iotObj.Events.RTC.Create(t.Context(), &models.DeviceRTCStatus{EventKey: key("RTC_1", 0), RtcEpochS: common.Ptr(int64(-1))})
	requireKind(t, err, common.KindInvalid)

	logs := ParseLogs(buf)
	rejected := findLog(logs, map[string]any{"logger": "iot_core", "category": "device-rtc", "msg": "Rejected record"})
	require.NotNil(t, rejected)
	assert.Contains(t, rejected["error"], "rtc_epoch_s")
}
