package repository

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"liyu1981.xyz/eldercare-telemetry/pkg/common"
	"liyu1981.xyz/eldercare-telemetry/pkg/models"
)

func snapshotAt(user uuid.UUID, ts string, gas float64) models.HomeStateSnapshot {
	return models.HomeStateSnapshot{
		Time:               at(ts),
		UserID:             user,
		EntranceRfidStatus: "in",
		KitchenMq5GasPpm:   gas,
		DetectedActivity:   "Idle",
		AlertLevel:         models.AlertNormal,
	}
}

func TestSnapshotFlushBatchAndUpsert(t *testing.T) {
	s := newTestStore(t)
	ctx := t.Context()
	user := uuid.New()

	rows := []models.HomeStateSnapshot{
		snapshotAt(user, "2025-08-23T10:00:00Z", 200),
		snapshotAt(user, "2025-08-23T10:05:00Z", 1500),
	}
	require.NoError(t, s.Snapshots.FlushBatch(ctx, rows, false, nil))

	// a plain insert of an existing key fails the whole batch
	err := s.Snapshots.FlushBatch(ctx, []models.HomeStateSnapshot{snapshotAt(user, "2025-08-23T10:00:00Z", 300)}, false, nil)
	assert.ErrorIs(t, err, ErrDuplicate)

	replaced := snapshotAt(user, "2025-08-23T10:05:00Z", 1600)
	replaced.AlertLevel = models.AlertEmergency
	replaced.AlertReason = common.Ptr("emergency_gas_leak_detected")
	require.NoError(t, s.Snapshots.FlushBatch(ctx, []models.HomeStateSnapshot{replaced}, true, nil))

	latest, err := s.Snapshots.Latest(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, 1600.0, latest.KitchenMq5GasPpm)
	assert.Equal(t, models.AlertEmergency, latest.AlertLevel)

	all, err := s.Snapshots.ForUser(ctx, user, 10)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestSnapshotFlushBatchRollsBack(t *testing.T) {
	s := newTestStore(t)
	ctx := t.Context()
	user := uuid.New()

	boom := errors.New("side record failed")
	err := s.Snapshots.FlushBatch(ctx, []models.HomeStateSnapshot{snapshotAt(user, "2025-08-23T10:00:00Z", 200)}, false,
		func(tx *gorm.DB) error {
			buzzer := models.ActuatorLogBuzzer{
				EventKey:   models.EventKey{Time: at("2025-08-23T10:00:01Z"), DeviceID: "BZ", RawPayload: synthesized()},
				BuzzerType: "piezo",
				State:      models.BuzzerStateOn,
			}
			if err := NewEventRepository[models.ActuatorLogBuzzer](tx).InsertIgnoreConflicts(ctx, []models.ActuatorLogBuzzer{buzzer}); err != nil {
				return err
			}
			return boom
		})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	_, err = s.Snapshots.Latest(ctx, user)
	assert.ErrorIs(t, err, ErrNotFound)

	buzzers, err := NewEventRepository[models.ActuatorLogBuzzer](s.DB).List(ctx, models.ListQuery{})
	require.NoError(t, err)
	assert.Empty(t, buzzers)
}

func TestSnapshotQueries(t *testing.T) {
	s := newTestStore(t)
	ctx := t.Context()
	user := uuid.New()
	other := uuid.New()

	emergency := snapshotAt(user, "2025-08-23T10:05:00Z", 1500)
	emergency.AlertLevel = models.AlertEmergency
	rows := []models.HomeStateSnapshot{
		snapshotAt(user, "2025-08-23T10:00:00Z", 200),
		emergency,
		snapshotAt(user, "2025-08-23T10:10:00Z", 200),
		snapshotAt(other, "2025-08-23T10:00:00Z", 200),
	}
	require.NoError(t, s.Snapshots.FlushBatch(ctx, rows, false, nil))

	start, end := at("2025-08-23T10:05:00Z"), at("2025-08-23T10:10:00Z")
	ranged, err := s.Snapshots.Range(ctx, user, &start, &end, 0)
	require.NoError(t, err)
	require.Len(t, ranged, 2)
	assert.Equal(t, end, ranged[0].Time.UTC())

	levels, err := s.Snapshots.ByAlertLevel(ctx, user, models.AlertEmergency, 10)
	require.NoError(t, err)
	require.Len(t, levels, 1)

	env, err := s.Snapshots.Environmental(ctx, user, nil, nil, 50, 100, 40)
	require.NoError(t, err)
	assert.Len(t, env, 3)

	pageRows, total, err := s.Snapshots.Page(ctx, 3, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.Len(t, pageRows, 3)

	require.NoError(t, s.Snapshots.UpdateAlert(ctx, at("2025-08-23T10:00:00Z"), user, models.AlertWarning, common.Ptr("manual")))
	got, err := s.Snapshots.Get(ctx, at("2025-08-23T10:00:00Z"), user)
	require.NoError(t, err)
	assert.Equal(t, models.AlertWarning, got.AlertLevel)
	assert.Equal(t, "manual", *got.AlertReason)

	assert.ErrorIs(t, s.Snapshots.UpdateAlert(ctx, at("2030-01-01T00:00:00Z"), user, models.AlertWarning, nil), ErrNotFound)
}

func TestSnapshotTruncateAndDeleteForUser(t *testing.T) {
	s := newTestStore(t)
	ctx := t.Context()
	user := uuid.New()
	other := uuid.New()

	require.NoError(t, s.Snapshots.FlushBatch(ctx, []models.HomeStateSnapshot{
		snapshotAt(user, "2025-08-23T10:00:00Z", 200),
		snapshotAt(user, "2025-08-23T11:00:00Z", 200),
		snapshotAt(other, "2025-08-23T10:00:00Z", 200),
	}, false, nil))

	since := at("2025-08-23T10:30:00Z")
	n, err := s.Snapshots.DeleteForUser(ctx, user, &since)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	require.NoError(t, s.Snapshots.Truncate(ctx))
	_, total, err := s.Snapshots.Page(ctx, 10, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
}
