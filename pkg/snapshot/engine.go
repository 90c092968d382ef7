package snapshot

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"liyu1981.xyz/eldercare-telemetry/pkg/common"
	"liyu1981.xyz/eldercare-telemetry/pkg/config"
	"liyu1981.xyz/eldercare-telemetry/pkg/models"
	"liyu1981.xyz/eldercare-telemetry/pkg/repository"
)

const (
	DefaultBatchSize = 5000
	// MinAckDelay keeps the button press strictly after buzzer on.
	MinAckDelay = time.Second
)

// Engine rebuilds home_state_snapshots from the sensor tables.
type Engine struct {
	store *repository.Store
	cfg   config.SnapshotConfig
	rnd   RandSource
	pub   Publisher
}

// NewEngine builds an engine over store. rnd drives every random choice, a
// nil rnd seeds from the clock. pub may be nil. Ack delays below
// MinAckDelay are raised to it.
func NewEngine(store *repository.Store, cfg config.SnapshotConfig, rnd RandSource, pub Publisher) *Engine {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.AckDelayMin < MinAckDelay {
		cfg.AckDelayMin = MinAckDelay
	}
	if cfg.AckDelayMax < cfg.AckDelayMin {
		cfg.AckDelayMax = cfg.AckDelayMin
	}
	if rnd == nil {
		rnd = NewRand(time.Now().UnixNano())
	}
	return &Engine{store: store, cfg: cfg, rnd: rnd, pub: pub}
}

func (e *Engine) logger(fields ...zap.Field) *zap.Logger {
	return common.GetLoggerWith(common.LoggerNameSnapshotEngine, fields...)
}

func (e *Engine) buzzers(tx *gorm.DB) *repository.EventRepository[models.ActuatorLogBuzzer] {
	return repository.NewEventRepository[models.ActuatorLogBuzzer](tx)
}

func (e *Engine) buttons(tx *gorm.DB) *repository.EventRepository[models.SensorEventButton] {
	return repository.NewEventRepository[models.SensorEventButton](tx)
}

// RebuildAll truncates the snapshot table, drops every synthesized ack record
// and rebuilds each user with devices in user_id order. It must run without
// other writers.
func (e *Engine) RebuildAll(ctx context.Context) (Report, error) {
	logger := e.logger()
	var report Report

	if err := e.store.Snapshots.Truncate(ctx); err != nil {
		return report, fmt.Errorf("truncate snapshots: %w", err)
	}
	if _, err := e.buzzers(e.store.DB).DeleteSynthesized(ctx, nil, nil); err != nil {
		return report, fmt.Errorf("delete synthesized buzzer logs: %w", err)
	}
	if _, err := e.buttons(e.store.DB).DeleteSynthesized(ctx, nil, nil); err != nil {
		return report, fmt.Errorf("delete synthesized button events: %w", err)
	}

	users, err := e.store.Devices.UsersWithDevices(ctx)
	if err != nil {
		return report, fmt.Errorf("list users: %w", err)
	}
	logger.Info("Rebuilding snapshots", zap.Int("users", len(users)))

	for _, userID := range users {
		devices, err := e.store.Devices.ForUser(ctx, userID)
		if err != nil {
			return report, fmt.Errorf("list devices of user %s: %w", userID, err)
		}
		r, err := e.rebuild(ctx, userID, devices, nil, false)
		report.add(r)
		if err != nil {
			return report, err
		}
	}

	logger.Info("Snapshot rebuild completed", zap.Reflect("report", report))
	return report, nil
}

// RebuildUser replaces the user's snapshots at or after since, all of them
// when since is nil. The whole timeline is folded so the state at since is
// exact, rows are written with an upsert on (time, user_id).
func (e *Engine) RebuildUser(ctx context.Context, userID uuid.UUID, since *time.Time) (Report, error) {
	logger := e.logger(zap.String(common.LoggerFieldUserID, userID.String()))
	if since != nil {
		since = common.Ptr(since.UTC())
	}

	if _, err := e.store.Snapshots.DeleteForUser(ctx, userID, since); err != nil {
		return Report{}, fmt.Errorf("delete snapshots of user %s: %w", userID, err)
	}
	devices, err := e.store.Devices.ForUser(ctx, userID)
	if err != nil {
		return Report{}, fmt.Errorf("list devices of user %s: %w", userID, err)
	}
	ids := common.Mapper(devices, func(d models.Device) string { return d.DeviceID })
	if _, err := e.buzzers(e.store.DB).DeleteSynthesized(ctx, ids, since); err != nil {
		return Report{}, fmt.Errorf("delete synthesized buzzer logs: %w", err)
	}
	if _, err := e.buttons(e.store.DB).DeleteSynthesized(ctx, ids, since); err != nil {
		return Report{}, fmt.Errorf("delete synthesized button events: %w", err)
	}

	report, err := e.rebuild(ctx, userID, devices, since, true)
	if err != nil {
		return report, err
	}
	logger.Info("Snapshot rebuild completed", zap.Reflect("report", report))
	return report, nil
}

func (e *Engine) rebuild(ctx context.Context, userID uuid.UUID, devices []models.Device, since *time.Time, upsert bool) (Report, error) {
	logger := e.logger(zap.String(common.LoggerFieldUserID, userID.String()))
	report := Report{Users: 1}

	timeline, err := loadTimeline(ctx, e.store.DB, userID, devices)
	if err != nil {
		return report, fmt.Errorf("user %s: %w", userID, err)
	}
	report.Events = len(timeline)
	if len(timeline) == 0 {
		logger.Debug("No sensor events, skipping user")
		return report, nil
	}

	f := newFold(e, userID, devices, timeline[0].Time, since, upsert, &report)
	for _, group := range groups(timeline) {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if err := f.group(ctx, group); err != nil {
			return report, err
		}
	}
	if err := f.finish(ctx); err != nil {
		return report, err
	}

	if len(f.unrouted) > 0 {
		logger.Warn("Events without a slot", zap.Int("events", report.Unrouted), zap.Strings("devices", f.unroutedDevices()))
	}
	if e.pub != nil && f.latest != nil {
		if err := e.pub.Publish(ctx, *f.latest); err != nil {
			logger.Warn("Failed to publish latest snapshot", zap.Error(err))
		}
	}
	return report, nil
}
