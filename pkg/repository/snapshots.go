package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"liyu1981.xyz/eldercare-telemetry/pkg/common"
	"liyu1981.xyz/eldercare-telemetry/pkg/models"
)

const insertChunk = 200

type SnapshotRepository struct {
	table[models.HomeStateSnapshot]
}

func NewSnapshotRepository(db *gorm.DB) *SnapshotRepository {
	return &SnapshotRepository{table: table[models.HomeStateSnapshot]{db: db}}
}

func (r *SnapshotRepository) Create(ctx context.Context, snap *models.HomeStateSnapshot) error {
	return r.create(ctx, snap)
}

func (r *SnapshotRepository) Get(ctx context.Context, t time.Time, userID uuid.UUID) (models.HomeStateSnapshot, error) {
	return r.take(ctx, "time = ? AND user_id = ?", t.UTC(), userID)
}

func (r *SnapshotRepository) Latest(ctx context.Context, userID uuid.UUID) (models.HomeStateSnapshot, error) {
	var snap models.HomeStateSnapshot
	err := r.conn(ctx).Where("user_id = ?", userID).Order("time DESC").Take(&snap).Error
	return snap, translate(err)
}

func (r *SnapshotRepository) ForUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.HomeStateSnapshot, error) {
	var out []models.HomeStateSnapshot
	err := page(r.conn(ctx).Where("user_id = ?", userID).Order("time DESC"), limit, 0).Find(&out).Error
	return out, translate(err)
}

// Range returns the rows of userID inside [start, end], newest first. A nil
// bound is open.
func (r *SnapshotRepository) Range(ctx context.Context, userID uuid.UUID, start, end *time.Time, limit int) ([]models.HomeStateSnapshot, error) {
	var out []models.HomeStateSnapshot
	err := page(r.ranged(ctx, userID, start, end).Order("time DESC"), limit, 0).Find(&out).Error
	return out, translate(err)
}

// Ascending is Range in time order, used by exports.
func (r *SnapshotRepository) Ascending(ctx context.Context, userID uuid.UUID, start, end *time.Time) ([]models.HomeStateSnapshot, error) {
	var out []models.HomeStateSnapshot
	err := r.ranged(ctx, userID, start, end).Order("time ASC").Find(&out).Error
	return out, translate(err)
}

func (r *SnapshotRepository) ByAlertLevel(ctx context.Context, userID uuid.UUID, level models.AlertLevel, limit int) ([]models.HomeStateSnapshot, error) {
	var out []models.HomeStateSnapshot
	tx := r.conn(ctx).Where("user_id = ? AND alert_level = ?", userID, level).Order("time DESC")
	err := page(tx, limit, 0).Find(&out).Error
	return out, translate(err)
}

// Environmental returns rows where a gas or temperature reading is above the
// given limits.
func (r *SnapshotRepository) Environmental(ctx context.Context, userID uuid.UUID, start, end *time.Time, coPpm, gasPpm, bathTemp float64) ([]models.HomeStateSnapshot, error) {
	var out []models.HomeStateSnapshot
	err := r.ranged(ctx, userID, start, end).
		Where("livingroom_mq7_co_ppm > ? OR bedroom_mq7_co_ppm > ? OR kitchen_mq5_gas_ppm > ? OR bathroom_temp_celsius > ?",
			coPpm, coPpm, gasPpm, bathTemp).
		Order("time DESC").
		Find(&out).Error
	return out, translate(err)
}

func (r *SnapshotRepository) ranged(ctx context.Context, userID uuid.UUID, start, end *time.Time) *gorm.DB {
	tx := r.conn(ctx).Where("user_id = ?", userID)
	if start != nil {
		tx = tx.Where("time >= ?", start.UTC())
	}
	if end != nil {
		tx = tx.Where("time <= ?", end.UTC())
	}
	return tx
}

// Page lists every user's rows newest first and reports the total row count.
func (r *SnapshotRepository) Page(ctx context.Context, limit, offset int) ([]models.HomeStateSnapshot, int64, error) {
	var total int64
	if err := r.conn(ctx).Model(&models.HomeStateSnapshot{}).Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}
	var out []models.HomeStateSnapshot
	err := page(r.conn(ctx).Order("time DESC").Order("user_id ASC"), limit, offset).Find(&out).Error
	return out, total, translate(err)
}

func (r *SnapshotRepository) Update(ctx context.Context, snap *models.HomeStateSnapshot) error {
	return r.update(ctx, snap, "time = ? AND user_id = ?", snap.Time.UTC(), snap.UserID)
}

func (r *SnapshotRepository) UpdateAlert(ctx context.Context, t time.Time, userID uuid.UUID, level models.AlertLevel, reason *string) error {
	values := map[string]any{"alert_level": level, "alert_reason": reason}
	return r.updateColumns(ctx, values, "time = ? AND user_id = ?", t.UTC(), userID)
}

func (r *SnapshotRepository) Delete(ctx context.Context, t time.Time, userID uuid.UUID) (bool, error) {
	return r.remove(ctx, "time = ? AND user_id = ?", t.UTC(), userID)
}

// FlushBatch writes rows in one transaction. With upsert, rows replace any
// existing (time, user_id). side runs first inside the same transaction,
// an error from either rolls back everything.
func (r *SnapshotRepository) FlushBatch(ctx context.Context, rows []models.HomeStateSnapshot, upsert bool, side func(tx *gorm.DB) error) error {
	if len(rows) == 0 && side == nil {
		return nil
	}
	logger := common.GetLoggerWith(common.LoggerNameRepository)

	err := r.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if side != nil {
			if err := side(tx); err != nil {
				return err
			}
		}
		if len(rows) == 0 {
			return nil
		}
		q := tx
		if upsert {
			q = tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "time"}, {Name: "user_id"}},
				UpdateAll: true,
			})
		}
		return q.CreateInBatches(&rows, insertChunk).Error
	})
	if err != nil {
		logger.Error("Snapshot batch rolled back", zap.Int("rows", len(rows)), zap.Error(err))
		return translate(err)
	}
	return nil
}

// Truncate empties the table. On postgres it is a TRUNCATE and needs no
// concurrent writers.
func (r *SnapshotRepository) Truncate(ctx context.Context) error {
	name := models.HomeStateSnapshot{}.TableName()
	if r.db.Dialector.Name() == "postgres" {
		return translate(r.conn(ctx).Exec("TRUNCATE TABLE " + pq.QuoteIdentifier(name)).Error)
	}
	return translate(r.conn(ctx).Exec("DELETE FROM " + pq.QuoteIdentifier(name)).Error)
}

// DeleteForUser removes the user's rows at or after since, all of them when
// since is nil.
func (r *SnapshotRepository) DeleteForUser(ctx context.Context, userID uuid.UUID, since *time.Time) (int64, error) {
	tx := r.conn(ctx).Where("user_id = ?", userID)
	if since != nil {
		tx = tx.Where("time >= ?", since.UTC())
	}
	res := tx.Delete(&models.HomeStateSnapshot{})
	return res.RowsAffected, translate(res.Error)
}
