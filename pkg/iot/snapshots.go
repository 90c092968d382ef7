package iot

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"liyu1981.xyz/eldercare-telemetry/pkg/common"
	"liyu1981.xyz/eldercare-telemetry/pkg/models"
	"liyu1981.xyz/eldercare-telemetry/pkg/snapshot"
)

// Environmental limits for EnvironmentalAlerts.
const (
	EnvCoPpmLimit        = 50.0
	EnvGasPpmLimit       = 100.0
	EnvBathTempLimitC    = 40.0
	maxSnapshotRangeRows = MaxListLimit
)

func snapshotLogger(userID uuid.UUID) *zap.Logger {
	return common.GetLoggerWith(
		common.LoggerNameIOTCore,
		zap.String(common.LoggerFieldIOTCategory, common.LoggerCategorySnapshot),
		zap.String(common.LoggerFieldUserID, userID.String()),
	)
}

func snapshotName(t time.Time, userID uuid.UUID) string {
	return "snapshot " + common.FormatTimestamp(t) + " of user " + userID.String()
}

func listLimit(limit int) (int, error) {
	if limit == 0 {
		return DefaultListLimit, nil
	}
	if limit < 1 || limit > MaxListLimit {
		return 0, common.Invalid("limit must be between 1 and %d", MaxListLimit)
	}
	return limit, nil
}

func (i *IOT) invalidateLatest(ctx context.Context, userID uuid.UUID) {
	if i.Cache == nil {
		return
	}
	if err := i.Cache.Invalidate(ctx, userID); err != nil {
		snapshotLogger(userID).Warn("Failed to invalidate latest snapshot", zap.Error(err))
	}
}

func validateSnapshot(snap *models.HomeStateSnapshot) error {
	if snap.UserID == uuid.Nil {
		return common.Invalid("user_id: is required")
	}
	if snap.Time.IsZero() {
		return common.Invalid("time: is required")
	}
	snap.Time = snap.Time.UTC()
	if snap.AlertLevel == "" {
		snap.AlertLevel = models.AlertNormal
	}
	return validateEnum("alert_level", string(snap.AlertLevel), models.AlertLevels)
}

func (i *IOT) createSnapshot(ctx context.Context, input *models.HomeStateSnapshot) (models.HomeStateSnapshot, error) {
	logger := snapshotLogger(input.UserID)

	snap := *input
	if err := validateSnapshot(&snap); err != nil {
		return models.HomeStateSnapshot{}, err
	}
	if err := i.requireUser(ctx, snap.UserID); err != nil {
		return models.HomeStateSnapshot{}, err
	}
	if err := i.Store.Snapshots.Create(ctx, &snap); err != nil {
		return models.HomeStateSnapshot{}, fromRepository(logger, err, "snapshot")
	}
	i.invalidateLatest(ctx, snap.UserID)

	logger.Info("Created snapshot", zap.Time("time", snap.Time), zap.String("alert_level", string(snap.AlertLevel)))
	return snap, nil
}

func (i *IOT) getSnapshot(ctx context.Context, t time.Time, userID uuid.UUID) (models.HomeStateSnapshot, error) {
	snap, err := i.Store.Snapshots.Get(ctx, t, userID)
	return snap, fromRepository(snapshotLogger(userID), err, snapshotName(t, userID))
}

// latestSnapshot reads through the cache. Cache failures fall back to the
// database and never fail the request.
func (i *IOT) latestSnapshot(ctx context.Context, userID uuid.UUID) (models.HomeStateSnapshot, error) {
	logger := snapshotLogger(userID)

	if i.Cache != nil {
		snap, err := i.Cache.Latest(ctx, userID)
		if err == nil {
			return snap, nil
		}
		logger.Debug("Latest snapshot cache miss", zap.Error(err))
	}

	snap, err := i.Store.Snapshots.Latest(ctx, userID)
	if err != nil {
		return models.HomeStateSnapshot{}, fromRepository(logger, err, "snapshot of user "+userID.String())
	}
	if i.Cache != nil {
		if err := i.Cache.Publish(ctx, snap); err != nil {
			logger.Warn("Failed to cache latest snapshot", zap.Error(err))
		}
	}
	return snap, nil
}

func (i *IOT) snapshotsForUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.HomeStateSnapshot, error) {
	limit, err := listLimit(limit)
	if err != nil {
		return nil, err
	}
	out, err := i.Store.Snapshots.ForUser(ctx, userID, limit)
	return out, fromRepository(snapshotLogger(userID), err, "snapshots")
}

func (i *IOT) snapshotRange(ctx context.Context, userID uuid.UUID, start, end *time.Time) ([]models.HomeStateSnapshot, error) {
	if err := validateRange(start, end); err != nil {
		return nil, err
	}
	out, err := i.Store.Snapshots.Range(ctx, userID, start, end, maxSnapshotRangeRows)
	return out, fromRepository(snapshotLogger(userID), err, "snapshots")
}

func (i *IOT) snapshotsByAlertLevel(ctx context.Context, userID uuid.UUID, level string, limit int) ([]models.HomeStateSnapshot, error) {
	if err := validateEnum("alert_level", level, models.AlertLevels); err != nil {
		return nil, err
	}
	limit, err := listLimit(limit)
	if err != nil {
		return nil, err
	}
	out, err := i.Store.Snapshots.ByAlertLevel(ctx, userID, models.AlertLevel(level), limit)
	return out, fromRepository(snapshotLogger(userID), err, "snapshots")
}

func (i *IOT) listSnapshots(ctx context.Context, page, size int) (models.SnapshotPage, error) {
	limit, offset, err := pageBounds(page, size)
	if err != nil {
		return models.SnapshotPage{}, err
	}
	items, total, err := i.Store.Snapshots.Page(ctx, limit, offset)
	if err != nil {
		return models.SnapshotPage{}, fromRepository(snapshotLogger(uuid.Nil), err, "snapshots")
	}
	if page == 0 {
		page = 1
	}
	return models.SnapshotPage{Items: items, Total: total, Page: page, Size: limit}, nil
}

func (i *IOT) updateSnapshot(ctx context.Context, t time.Time, userID uuid.UUID, patch models.Patch) (models.HomeStateSnapshot, error) {
	logger := snapshotLogger(userID)

	current, err := i.getSnapshot(ctx, t, userID)
	if err != nil {
		return models.HomeStateSnapshot{}, err
	}
	merged, err := mergePatch(current, patch, "time", "user_id")
	if err != nil {
		return models.HomeStateSnapshot{}, err
	}
	// immutable keys compare by JSON, keep the stored instant exactly
	merged.Time = current.Time
	if err := validateSnapshot(&merged); err != nil {
		return models.HomeStateSnapshot{}, err
	}
	if err := i.Store.Snapshots.Update(ctx, &merged); err != nil {
		return models.HomeStateSnapshot{}, fromRepository(logger, err, snapshotName(t, userID))
	}
	i.invalidateLatest(ctx, userID)

	logger.Info("Updated snapshot", zap.Time("time", merged.Time))
	return merged, nil
}

func (i *IOT) updateSnapshotAlert(ctx context.Context, t time.Time, userID uuid.UUID, level string, reason *string) (models.HomeStateSnapshot, error) {
	logger := snapshotLogger(userID)

	if err := validateEnum("alert_level", level, models.AlertLevels); err != nil {
		return models.HomeStateSnapshot{}, err
	}
	if err := i.Store.Snapshots.UpdateAlert(ctx, t, userID, models.AlertLevel(level), reason); err != nil {
		return models.HomeStateSnapshot{}, fromRepository(logger, err, snapshotName(t, userID))
	}
	i.invalidateLatest(ctx, userID)

	logger.Info("Updated snapshot alert level", zap.Time("time", t.UTC()), zap.String("alert_level", level))
	return i.getSnapshot(ctx, t, userID)
}

// appendActionLog keeps existing entries verbatim and adds entry at the end.
func (i *IOT) appendActionLog(ctx context.Context, t time.Time, userID uuid.UUID, entry models.ActionLogEntry) (models.HomeStateSnapshot, error) {
	logger := snapshotLogger(userID)

	if entry.ActionTaken == "" {
		return models.HomeStateSnapshot{}, common.Invalid("action_taken: is required")
	}
	if entry.ResultTime == "" {
		entry.ResultTime = common.FormatTimestamp(i.now())
	} else if _, err := common.ParseTimestamp(entry.ResultTime); err != nil {
		return models.HomeStateSnapshot{}, common.Invalid("result_time must be an RFC3339 timestamp")
	}

	snap, err := i.getSnapshot(ctx, t, userID)
	if err != nil {
		return models.HomeStateSnapshot{}, err
	}
	var entries []json.RawMessage
	if len(snap.ActionLog) > 0 && string(snap.ActionLog) != "null" {
		if err := json.Unmarshal(snap.ActionLog, &entries); err != nil {
			return models.HomeStateSnapshot{}, common.Invalid("existing action_log is not a list")
		}
	}
	raw, err := json.Marshal(entry)
	if err != nil {
		return models.HomeStateSnapshot{}, common.Internal(err, "encode action log entry")
	}
	entries = append(entries, raw)
	encoded, err := json.Marshal(entries)
	if err != nil {
		return models.HomeStateSnapshot{}, common.Internal(err, "encode action log")
	}
	snap.ActionLog = datatypes.JSON(encoded)

	if err := i.Store.Snapshots.Update(ctx, &snap); err != nil {
		return models.HomeStateSnapshot{}, fromRepository(logger, err, snapshotName(t, userID))
	}
	i.invalidateLatest(ctx, userID)

	logger.Info("Appended action log entry", zap.Time("time", snap.Time), zap.String("action_taken", entry.ActionTaken))
	return snap, nil
}

func (i *IOT) deleteSnapshot(ctx context.Context, t time.Time, userID uuid.UUID) error {
	logger := snapshotLogger(userID)

	deleted, err := i.Store.Snapshots.Delete(ctx, t, userID)
	if err != nil {
		return fromRepository(logger, err, snapshotName(t, userID))
	}
	if !deleted {
		return common.NotFound("%s not found", snapshotName(t, userID))
	}
	i.invalidateLatest(ctx, userID)

	logger.Info("Deleted snapshot", zap.Time("time", t.UTC()))
	return nil
}

// environmentalAlerts expands every row above a limit into one alert per
// offending slot, newest row first.
func (i *IOT) environmentalAlerts(ctx context.Context, userID uuid.UUID, start, end *time.Time) ([]models.EnvironmentalAlert, error) {
	if err := validateRange(start, end); err != nil {
		return nil, err
	}
	rows, err := i.Store.Snapshots.Environmental(ctx, userID, start, end, EnvCoPpmLimit, EnvGasPpmLimit, EnvBathTempLimitC)
	if err != nil {
		return nil, fromRepository(snapshotLogger(userID), err, "snapshots")
	}

	alerts := []models.EnvironmentalAlert{}
	for _, row := range rows {
		checks := []struct {
			kind  string
			value float64
			limit float64
		}{
			{"livingroom_co", row.LivingroomMq7CoPpm, EnvCoPpmLimit},
			{"bedroom_co", row.BedroomMq7CoPpm, EnvCoPpmLimit},
			{"kitchen_gas", row.KitchenMq5GasPpm, EnvGasPpmLimit},
			{"bathroom_temperature", row.BathroomTempCelsius, EnvBathTempLimitC},
		}
		for _, c := range checks {
			if c.value > c.limit {
				alerts = append(alerts, models.EnvironmentalAlert{
					Time:      row.Time,
					UserID:    row.UserID,
					Kind:      c.kind,
					Value:     c.value,
					Threshold: c.limit,
				})
			}
		}
	}
	return alerts, nil
}

func (i *IOT) exportSnapshots(ctx context.Context, userID uuid.UUID, start, end *time.Time, w io.Writer) error {
	logger := snapshotLogger(userID)

	if err := validateRange(start, end); err != nil {
		return err
	}
	if err := i.requireUser(ctx, userID); err != nil {
		return err
	}
	rows, err := i.Store.Snapshots.Ascending(ctx, userID, start, end)
	if err != nil {
		return fromRepository(logger, err, "snapshots")
	}
	if err := writeSnapshotWorkbook(rows, w); err != nil {
		logger.Error("Failed to export snapshots", zap.Error(err))
		return common.Internal(err, "export snapshots")
	}

	logger.Info("Exported snapshots", zap.Int("rows", len(rows)))
	return nil
}

func (i *IOT) rebuilder() (Rebuilder, error) {
	if i.Rebuilder == nil {
		return nil, common.Internal(nil, "snapshot engine not configured")
	}
	return i.Rebuilder, nil
}

func (i *IOT) rebuildAll(ctx context.Context) (snapshot.Report, error) {
	r, err := i.rebuilder()
	if err != nil {
		return snapshot.Report{}, err
	}
	report, err := r.RebuildAll(ctx)
	if err != nil {
		snapshotLogger(uuid.Nil).Error("Snapshot rebuild failed", zap.Error(err))
		return report, common.Internal(err, "snapshot rebuild failed")
	}
	return report, nil
}

func (i *IOT) rebuildUser(ctx context.Context, userID uuid.UUID, since *time.Time) (snapshot.Report, error) {
	r, err := i.rebuilder()
	if err != nil {
		return snapshot.Report{}, err
	}
	if err := i.requireUser(ctx, userID); err != nil {
		if common.IsKind(err, common.KindInvalid) {
			return snapshot.Report{}, common.NotFound("user %s not found", userID)
		}
		return snapshot.Report{}, err
	}
	if since != nil {
		since = common.Ptr(since.UTC())
	}
	report, err := r.RebuildUser(ctx, userID, since)
	if err != nil {
		snapshotLogger(userID).Error("Snapshot rebuild failed", zap.Error(err))
		return report, common.Internal(err, "snapshot rebuild failed")
	}
	return report, nil
}

type ISnapshotImpl struct {
	iot *IOT
}

func (s *ISnapshotImpl) Create(ctx context.Context, snap *models.HomeStateSnapshot) (models.HomeStateSnapshot, error) {
	return s.iot.createSnapshot(ctx, snap)
}

func (s *ISnapshotImpl) Get(ctx context.Context, t time.Time, userID uuid.UUID) (models.HomeStateSnapshot, error) {
	return s.iot.getSnapshot(ctx, t, userID)
}

func (s *ISnapshotImpl) Latest(ctx context.Context, userID uuid.UUID) (models.HomeStateSnapshot, error) {
	return s.iot.latestSnapshot(ctx, userID)
}

func (s *ISnapshotImpl) ForUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.HomeStateSnapshot, error) {
	return s.iot.snapshotsForUser(ctx, userID, limit)
}

func (s *ISnapshotImpl) Range(ctx context.Context, userID uuid.UUID, start, end *time.Time) ([]models.HomeStateSnapshot, error) {
	return s.iot.snapshotRange(ctx, userID, start, end)
}

func (s *ISnapshotImpl) ByAlertLevel(ctx context.Context, userID uuid.UUID, level string, limit int) ([]models.HomeStateSnapshot, error) {
	return s.iot.snapshotsByAlertLevel(ctx, userID, level, limit)
}

func (s *ISnapshotImpl) List(ctx context.Context, page, size int) (models.SnapshotPage, error) {
	return s.iot.listSnapshots(ctx, page, size)
}

func (s *ISnapshotImpl) Update(ctx context.Context, t time.Time, userID uuid.UUID, patch models.Patch) (models.HomeStateSnapshot, error) {
	return s.iot.updateSnapshot(ctx, t, userID, patch)
}

func (s *ISnapshotImpl) UpdateAlertLevel(ctx context.Context, t time.Time, userID uuid.UUID, level string, reason *string) (models.HomeStateSnapshot, error) {
	return s.iot.updateSnapshotAlert(ctx, t, userID, level, reason)
}

func (s *ISnapshotImpl) AppendActionLog(ctx context.Context, t time.Time, userID uuid.UUID, entry models.ActionLogEntry) (models.HomeStateSnapshot, error) {
	return s.iot.appendActionLog(ctx, t, userID, entry)
}

func (s *ISnapshotImpl) Delete(ctx context.Context, t time.Time, userID uuid.UUID) error {
	return s.iot.deleteSnapshot(ctx, t, userID)
}

func (s *ISnapshotImpl) EnvironmentalAlerts(ctx context.Context, userID uuid.UUID, start, end *time.Time) ([]models.EnvironmentalAlert, error) {
	return s.iot.environmentalAlerts(ctx, userID, start, end)
}

func (s *ISnapshotImpl) Export(ctx context.Context, userID uuid.UUID, start, end *time.Time, w io.Writer) error {
	return s.iot.exportSnapshots(ctx, userID, start, end, w)
}

func (s *ISnapshotImpl) RebuildAll(ctx context.Context) (snapshot.Report, error) {
	return s.iot.rebuildAll(ctx)
}

func (s *ISnapshotImpl) RebuildUser(ctx context.Context, userID uuid.UUID, since *time.Time) (snapshot.Report, error) {
	return s.iot.rebuildUser(ctx, userID, since)
}

func (i *IOT) GetISnapshot() ISnapshot {
	return &ISnapshotImpl{iot: i}
}
