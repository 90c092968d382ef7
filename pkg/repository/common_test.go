package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"liyu1981.xyz/eldercare-telemetry/pkg/common"
	"liyu1981.xyz/eldercare-telemetry/pkg/db"
	"liyu1981.xyz/eldercare-telemetry/pkg/models"
	_ "liyu1981.xyz/eldercare-telemetry/pkg/testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	common.SetTestLoggerNop()

	instance, err := db.New(db.UseIsolatedMemorySqliteDialector(), db.DefaultPoolOpts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = instance.Close() })
	return NewStore(instance.Conn)
}

func seedUser(t *testing.T, s *Store, role models.UserRole) models.User {
	t.Helper()
	user := models.User{UserID: uuid.New(), UserRole: role, UserName: "user-" + uuid.NewString()[:8]}
	require.NoError(t, s.Users.Create(t.Context(), &user))
	return user
}

func seedDevice(t *testing.T, s *Store, id string, owner *uuid.UUID, label string) models.Device {
	t.Helper()
	device := models.Device{DeviceID: id, UserID: owner}
	if label != "" {
		device.LocationLabel = &label
	}
	require.NoError(t, s.Devices.Create(t.Context(), &device))
	return device
}

func at(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t.UTC()
}

func mq5(device string, t time.Time, ppm float64) models.SensorRawMQ5 {
	return models.SensorRawMQ5{
		EventKey: models.EventKey{Time: t, DeviceID: device},
		GasPpm:   common.Ptr(ppm),
	}
}

func synthesized() datatypes.JSON {
	return datatypes.JSON(`{"source":"` + models.SynthesizedSource + `"}`)
}

func timeMinutes(n int) time.Duration {
	return time.Duration(n) * time.Minute
}
