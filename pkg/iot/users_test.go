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

func TestCreateUser(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, iotObj, _, _ := GetMockIOTWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()

	user, err := iotObj.User.Create(t.Context(), &models.User{
		UserName: "Kim", Email: common.Ptr("kim@example.com"), PhoneNumber: common.Ptr("010-1234-5678"),
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, user.UserID)
	assert.Equal(t, models.RoleUser, user.UserRole)
	assert.Equal(t, fixedNow, user.CreatedAt)

	got, err := iotObj.User.Get(t.Context(), user.UserID)
	require.NoError(t, err)
	assert.Equal(t, "kim@example.com", *got.Email)
}

func TestCreateUserValidation(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, iotObj, _, _ := GetMockIOTWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()

	cases := map[string]models.User{
		"empty name":   {UserName: ""},
		"bad role":     {UserName: "a", UserRole: "root"},
		"bad email":    {UserName: "a", Email: common.Ptr("not-an-email")},
		"bad phone":    {UserName: "a", PhoneNumber: common.Ptr("12")},
		"long name":    {UserName: string(bytes.Repeat([]byte("x"), 101))},
		"unknown role": {UserName: "a", UserRole: "Admin"},
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := iotObj.User.Create(t.Context(), &input)
			requireKind(t, err, common.KindInvalid)
		})
	}

	users, err := iotObj.User.List(t.Context(), "", 0, 0)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestCreateUserEmptyContactIsNull(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, iotObj, _, _ := GetMockIOTWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()

	user, err := iotObj.User.Create(t.Context(), &models.User{UserName: "a", Email: common.Ptr("")})
	require.NoError(t, err)
	assert.Nil(t, user.Email)
}

func TestCreateUserDuplicateID(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, iotObj, _, _ := GetMockIOTWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()

	user := seedUser(t, iotObj, models.RoleCareTarget)
	_, err := iotObj.User.Create(t.Context(), &models.User{UserID: user.UserID, UserName: "again"})
	requireKind(t, err, common.KindConflict)
}

func TestListUsers(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, iotObj, _, _ := GetMockIOTWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()

	seedUser(t, iotObj, models.RoleCareTarget)
	seedUser(t, iotObj, models.RoleCaregiver)
	seedUser(t, iotObj, models.RoleCaregiver)

	caregivers, err := iotObj.User.List(t.Context(), string(models.RoleCaregiver), 1, 10)
	require.NoError(t, err)
	assert.Len(t, caregivers, 2)

	page, err := iotObj.User.List(t.Context(), "", 2, 2)
	require.NoError(t, err)
	assert.Len(t, page, 1)

	_, err = iotObj.User.List(t.Context(), "nobody", 1, 10)
	requireKind(t, err, common.KindInvalid)
	_, err = iotObj.User.List(t.Context(), "", -1, 10)
	requireKind(t, err, common.KindInvalid)
	_, err = iotObj.User.List(t.Context(), "", 1, MaxListLimit+1)
	requireKind(t, err, common.KindInvalid)
}

func TestUpdateUser(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, iotObj, _, _ := GetMockIOTWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()

	user := seedUser(t, iotObj, models.RoleCareTarget)

	updated, err := iotObj.User.Update(t.Context(), user.UserID, models.Patch{"user_name": "Lee", "user_role": "family"})
	require.NoError(t, err)
	assert.Equal(t, "Lee", updated.UserName)
	assert.Equal(t, models.RoleFamily, updated.UserRole)
	assert.Equal(t, user.CreatedAt, updated.CreatedAt)

	_, err = iotObj.User.Update(t.Context(), user.UserID, models.Patch{"user_id": uuid.NewString()})
	requireKind(t, err, common.KindInvalid)

	_, err = iotObj.User.Update(t.Context(), user.UserID, models.Patch{})
	requireKind(t, err, common.KindInvalid)

	_, err = iotObj.User.Update(t.Context(), user.UserID, models.Patch{"nickname": "x"})
	requireKind(t, err, common.KindInvalid)

	_, err = iotObj.User.Update(t.Context(), uuid.New(), models.Patch{"user_name": "x"})
	requireKind(t, err, common.KindNotFound)
}

func TestDeleteUserStillReferenced(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, iotObj, _, _ := GetMockIOTWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()

	user := seedUser(t, iotObj, models.RoleCareTarget)
	seedDevice(t, iotObj, "PIR_1", &user, "Entrance - PIR")

	err := iotObj.User.Delete(t.Context(), user.UserID)
	requireKind(t, err, common.KindConflict)

	_, err = iotObj.Device.Unassign(t.Context(), "PIR_1")
	require.NoError(t, err)
	require.NoError(t, iotObj.User.Delete(t.Context(), user.UserID))

	_, err = iotObj.User.Get(t.Context(), user.UserID)
	requireKind(t, err, common.KindNotFound)
	requireKind(t, iotObj.User.Delete(t.Context(), user.UserID), common.KindNotFound)
}

func TestCreateUser_WithLog(t *testing.T) {
	var buf = &bytes.Buffer{}
	common.SetTestCaptureLogger(buf, zapcore.InfoLevel)

	ctrl, iotObj, _, _ := GetMockIOTWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()

	user := seedUser(t, iotObj, models.RoleCaregiver)

	logs := ParseLogs(buf)
	found := findLog(logs, map[string]any{
		"logger":   "iot_core",
		"category": "user",
		"msg":      "Created user",
		"user_id":  user.UserID.String(),
		"role":     "caregiver",
	})
	assert.NotNil(t, found)
}

func TestPageBounds(t *testing.T) {
	limit, offset, err := pageBounds(0, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultPageSize, limit)
	assert.Zero(t, offset)

	limit, offset, err = pageBounds(3, 50)
	require.NoError(t, err)
	assert.Equal(t, 50, limit)
	assert.Equal(t, 100, offset)

	_, _, err = pageBounds(1, -5)
	requireKind(t, err, common.KindInvalid)
}

func TestMergePatch(t *testing.T) {
	current := models.Device{DeviceID: "D1", LocationLabel: common.Ptr("Kitchen - PIR")}

	merged, err := mergePatch(current, models.Patch{"location_label": "Bedroom - PIR", "device_id": "D1"}, "device_id")
	require.NoError(t, err)
	assert.Equal(t, "Bedroom - PIR", merged.Label())
	assert.Equal(t, "D1", merged.DeviceID)

	_, err = mergePatch(current, models.Patch{"device_id": "D2"}, "device_id")
	requireKind(t, err, common.KindInvalid)

	_, err = mergePatch(current, models.Patch{"installed_at": "yesterday"})
	requireKind(t, err, common.KindInvalid)

	merged, err = mergePatch(current, models.Patch{"installed_at": "2025-01-01T00:00:00Z", "location_label": nil})
	require.NoError(t, err)
	assert.Nil(t, merged.LocationLabel)
	assert.True(t, merged.InstalledAt.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
}
