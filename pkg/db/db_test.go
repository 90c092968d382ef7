package db

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"liyu1981.xyz/eldercare-telemetry/pkg/common"
	"liyu1981.xyz/eldercare-telemetry/pkg/config"
	_ "liyu1981.xyz/eldercare-telemetry/pkg/testing"
)

func TestMemorySqliteMigratesEveryTable(t *testing.T) {
	common.SetTestLoggerNop()

	instance := GetInstance(UseMemorySqliteDialector())
	require.NotNil(t, instance)

	for _, table := range []string{
		"users", "devices", "user_relationships", "user_profiles",
		"sensor_raw_mq5", "sensor_raw_temperature", "sensor_edge_pir", "sensor_event_button",
		"actuator_log_buzzer", "actuator_log_ir_tx", "device_rtc_status",
		"home_state_snapshots",
	} {
		assert.True(t, instance.Conn.Migrator().HasTable(table), "table %s", table)
	}
}

func TestGetInstanceReturnsOneConnection(t *testing.T) {
	common.SetTestLoggerNop()

	var wg sync.WaitGroup
	got := make([]*DB, 16)
	for n := range got {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got[n] = GetInstance(UseMemorySqliteDialector())
		}()
	}
	wg.Wait()

	for _, inst := range got[1:] {
		assert.Same(t, got[0], inst)
	}
}

func TestIsolatedInstancesDoNotShareRows(t *testing.T) {
	common.SetTestLoggerNop()

	a, err := New(UseIsolatedMemorySqliteDialector(), DefaultPoolOpts)
	require.NoError(t, err)
	defer a.Close()
	b, err := New(UseIsolatedMemorySqliteDialector(), DefaultPoolOpts)
	require.NoError(t, err)
	defer b.Close()

	require.NoError(t, a.Conn.Exec(`INSERT INTO devices (device_id) VALUES ('only_in_a')`).Error)

	var count int64
	require.NoError(t, b.Conn.Table("devices").Count(&count).Error)
	assert.Equal(t, int64(0), count)
	require.NoError(t, a.Conn.Table("devices").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestHealth(t *testing.T) {
	common.SetTestLoggerNop()

	instance, err := New(UseIsolatedMemorySqliteDialector(), DefaultPoolOpts)
	require.NoError(t, err)

	assert.NoError(t, instance.Health(context.Background()))
	assert.True(t, instance.IsSqlite())

	require.NoError(t, instance.Close())
	assert.Error(t, instance.Health(context.Background()))
}

func TestFromConfigUnknownType(t *testing.T) {
	common.SetTestLoggerNop()

	_, err := FromConfig(config.DatabaseConfig{Type: "oracle"})
	assert.ErrorContains(t, err, "oracle")
}
