package iot

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"liyu1981.xyz/eldercare-telemetry/pkg/common"
	"liyu1981.xyz/eldercare-telemetry/pkg/models"
)

func TestCreateDevice(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, iotObj, _, _ := GetMockIOTWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()

	owner := seedUser(t, iotObj, models.RoleCareTarget)
	installed := time.Date(2025, 1, 2, 12, 0, 0, 0, time.FixedZone("KST", 9*3600))

	device, err := iotObj.Device.Create(t.Context(), &models.Device{
		DeviceID: "PIR_1", UserID: &owner.UserID, LocationLabel: common.Ptr("Entrance - PIR"), InstalledAt: &installed,
	})
	require.NoError(t, err)
	assert.Equal(t, time.UTC, device.InstalledAt.Location())

	got, err := iotObj.Device.Get(t.Context(), "PIR_1")
	require.NoError(t, err)
	assert.Equal(t, owner.UserID, *got.UserID)
	assert.Equal(t, "Entrance - PIR", got.Label())

	_, err = iotObj.Device.Create(t.Context(), &models.Device{DeviceID: "PIR_1"})
	requireKind(t, err, common.KindConflict)
}

func TestCreateDeviceValidation(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, iotObj, _, _ := GetMockIOTWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()

	_, err := iotObj.Device.Create(t.Context(), &models.Device{DeviceID: ""})
	requireKind(t, err, common.KindInvalid)

	_, err = iotObj.Device.Create(t.Context(), &models.Device{DeviceID: string(bytes.Repeat([]byte("d"), 65))})
	requireKind(t, err, common.KindInvalid)

	missing := uuid.New()
	_, err = iotObj.Device.Create(t.Context(), &models.Device{DeviceID: "MQ5_1", UserID: &missing})
	requireKind(t, err, common.KindInvalid)
	assert.Contains(t, common.MessageOf(err), "does not exist")

	_, err = iotObj.Device.Get(t.Context(), "MQ5_1")
	requireKind(t, err, common.KindNotFound)
}

func TestAssignDeviceLastWriteWins(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, iotObj, _, _ := GetMockIOTWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()

	first := seedUser(t, iotObj, models.RoleCareTarget)
	second := seedUser(t, iotObj, models.RoleCareTarget)
	seedDevice(t, iotObj, "LC_1", nil, "Kitchen - Loadcell")

	_, err := iotObj.Device.Assign(t.Context(), "LC_1", first.UserID)
	require.NoError(t, err)
	device, err := iotObj.Device.Assign(t.Context(), "LC_1", second.UserID)
	require.NoError(t, err)
	assert.Equal(t, second.UserID, *device.UserID)

	got, err := iotObj.Device.Get(t.Context(), "LC_1")
	require.NoError(t, err)
	assert.Equal(t, second.UserID, *got.UserID)

	mine, err := iotObj.Device.ForUser(t.Context(), first.UserID)
	require.NoError(t, err)
	assert.Empty(t, mine)

	device, err = iotObj.Device.Unassign(t.Context(), "LC_1")
	require.NoError(t, err)
	assert.Nil(t, device.UserID)

	_, err = iotObj.Device.Assign(t.Context(), "NOPE", second.UserID)
	requireKind(t, err, common.KindNotFound)
	_, err = iotObj.Device.Assign(t.Context(), "LC_1", uuid.New())
	requireKind(t, err, common.KindInvalid)
	_, err = iotObj.Device.ForUser(t.Context(), uuid.New())
	requireKind(t, err, common.KindInvalid)
}

func TestUpdateAndDeleteDevice(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, iotObj, _, _ := GetMockIOTWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()

	seedDevice(t, iotObj, "BZ_1", nil, "Kitchen - Buzzer")

	updated, err := iotObj.Device.Update(t.Context(), "BZ_1", models.Patch{"location_label": "Bedroom - Buzzer"})
	require.NoError(t, err)
	assert.Equal(t, "Bedroom - Buzzer", updated.Label())

	_, err = iotObj.Device.Update(t.Context(), "BZ_1", models.Patch{"device_id": "BZ_2"})
	requireKind(t, err, common.KindInvalid)

	_, err = iotObj.Device.Update(t.Context(), "BZ_1", models.Patch{"user_id": uuid.NewString()})
	requireKind(t, err, common.KindInvalid)

	devices, err := iotObj.Device.List(t.Context(), 1, 10)
	require.NoError(t, err)
	assert.Len(t, devices, 1)

	require.NoError(t, iotObj.Device.Delete(t.Context(), "BZ_1"))
	requireKind(t, iotObj.Device.Delete(t.Context(), "BZ_1"), common.KindNotFound)
}

func TestCreateDevice_WithLog(t *testing.T) {
	var buf = &bytes.Buffer{}
	common.SetTestCaptureLogger(buf, zapcore.InfoLevel)

	ctrl, iotObj, _, _ := GetMockIOTWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()

	seedDevice(t, iotObj, "RFID_1", nil, "Entrance - RFID")

	logs := ParseLogs(buf)
	assert.NotNil(t, findLog(logs, map[string]any{
		"logger":         "iot_core",
		"category":       "device",
		"msg":            "Registered device",
		"device_id":      "RFID_1",
		"location_label": "Entrance - RFID",
	}))
}
