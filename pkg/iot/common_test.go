package iot

import (
	"bufio"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"liyu1981.xyz/eldercare-telemetry/pkg/common"
	"liyu1981.xyz/eldercare-telemetry/pkg/db"
	"liyu1981.xyz/eldercare-telemetry/pkg/iot/mocks"
	"liyu1981.xyz/eldercare-telemetry/pkg/models"
	_ "liyu1981.xyz/eldercare-telemetry/pkg/testing"
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// GetMockIOTWithMemorySqliteDialector builds an IOT over a private sqlite
// database. The cache and rebuilder mocks are only wired when asked for.
func GetMockIOTWithMemorySqliteDialector(t *testing.T, useMockCache, useMockRebuilder bool) (
	*gomock.Controller,
	*IOT,
	*mocks.MockLatestCache,
	*mocks.MockRebuilder,
) {
	ctrl := gomock.NewController(t)

	mockCache := mocks.NewMockLatestCache(ctrl)
	mockRebuilder := mocks.NewMockRebuilder(ctrl)

	dbInstance, err := db.New(db.UseIsolatedMemorySqliteDialector(), db.DefaultPoolOpts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = dbInstance.Close() })

	iotInstance := New(dbInstance)
	iotInstance.clock = func() time.Time { return fixedNow }

	opts := ServiceOpts{}
	if useMockCache {
		opts.Cache = mockCache
	}
	if useMockRebuilder {
		opts.Rebuilder = mockRebuilder
	}
	iotInstance.WithServices(opts)

	return ctrl, iotInstance, mockCache, mockRebuilder
}

func ParseLogs(r io.Reader) []any {
	scanner := bufio.NewScanner(r)
	var logs []any

	for scanner.Scan() {
		line := scanner.Text()
		var j any
		if err := json.Unmarshal([]byte(line), &j); err == nil {
			logs = append(logs, j)
		}
	}
	return logs
}

// findLog returns the first record whose fields contain every key of want.
func findLog(logs []any, want map[string]any) map[string]any {
	for _, log := range logs {
		lobj, ok := log.(map[string]any)
		if !ok {
			continue
		}
		matched := true
		for k, v := range want {
			if lobj[k] != v {
				matched = false
				break
			}
		}
		if matched {
			return lobj
		}
	}
	return nil
}

func seedUser(t *testing.T, i *IOT, role models.UserRole) models.User {
	t.Helper()
	user, err := i.User.Create(t.Context(), &models.User{UserRole: role, UserName: "user-" + uuid.NewString()[:8]})
	require.NoError(t, err)
	return user
}

func seedDevice(t *testing.T, i *IOT, id string, owner *models.User, label string) models.Device {
	t.Helper()
	device := models.Device{DeviceID: id}
	if owner != nil {
		device.UserID = &owner.UserID
	}
	if label != "" {
		device.LocationLabel = common.Ptr(label)
	}
	created, err := i.Device.Create(t.Context(), &device)
	require.NoError(t, err)
	return created
}

func requireKind(t *testing.T, err error, kind common.ErrorKind) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, kind, common.KindOf(err), err.Error())
}
