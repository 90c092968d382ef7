package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"liyu1981.xyz/eldercare-telemetry/pkg/models"
)

// EventRepository stores one sensor or actuator kind. Rows are addressed by
// (device_id, time).
type EventRepository[T models.Event] struct {
	table[T]
}

func NewEventRepository[T models.Event](db *gorm.DB) *EventRepository[T] {
	return &EventRepository[T]{table: table[T]{db: db}}
}

// WithTx returns a copy bound to tx.
func (r *EventRepository[T]) WithTx(tx *gorm.DB) *EventRepository[T] {
	return NewEventRepository[T](tx)
}

func (r *EventRepository[T]) TableName() string {
	var zero T
	return zero.TableName()
}

func (r *EventRepository[T]) Create(ctx context.Context, rec *T) error {
	return r.create(ctx, rec)
}

func (r *EventRepository[T]) Get(ctx context.Context, deviceID string, t time.Time) (T, error) {
	return r.take(ctx, "device_id = ? AND time = ?", deviceID, t.UTC())
}

func (r *EventRepository[T]) Latest(ctx context.Context, deviceID string) (T, error) {
	var rec T
	err := r.conn(ctx).Where("device_id = ?", deviceID).Order("time DESC").Take(&rec).Error
	return rec, translate(err)
}

func (r *EventRepository[T]) filtered(ctx context.Context, q models.ListQuery) *gorm.DB {
	tx := r.conn(ctx).Model(new(T))
	if q.DeviceID != "" {
		tx = tx.Where("device_id = ?", q.DeviceID)
	}
	if q.Start != nil {
		tx = tx.Where("time >= ?", q.Start.UTC())
	}
	if q.End != nil {
		tx = tx.Where("time <= ?", q.End.UTC())
	}
	return tx
}

// List returns matching rows newest first, both range ends inclusive.
func (r *EventRepository[T]) List(ctx context.Context, q models.ListQuery) ([]T, error) {
	var out []T
	err := page(r.filtered(ctx, q).Order("time DESC").Order("device_id"), q.Limit, q.Offset).Find(&out).Error
	return out, translate(err)
}

func (r *EventRepository[T]) Update(ctx context.Context, rec *T) error {
	key := (*rec).Key()
	return r.update(ctx, rec, "device_id = ? AND time = ?", key.DeviceID, key.Time.UTC())
}

func (r *EventRepository[T]) Delete(ctx context.Context, deviceID string, t time.Time) (bool, error) {
	return r.remove(ctx, "device_id = ? AND time = ?", deviceID, t.UTC())
}

// Statistics aggregates column over the rows matched by q. column comes from
// models.Descriptor and is never user input.
func (r *EventRepository[T]) Statistics(ctx context.Context, column string, q models.ListQuery) (models.Statistics, error) {
	var stats models.Statistics
	sel := fmt.Sprintf("COUNT(%[1]s) AS count, MIN(%[1]s) AS min, MAX(%[1]s) AS max, AVG(%[1]s) AS avg", column)
	err := r.filtered(ctx, q).Select(sel).Scan(&stats).Error
	return stats, translate(err)
}

// Exceeding lists rows whose column is strictly above threshold, newest first.
func (r *EventRepository[T]) Exceeding(ctx context.Context, column string, threshold float64, q models.ListQuery) ([]T, error) {
	var out []T
	tx := r.filtered(ctx, q).Where(column+" > ?", threshold).Order("time DESC")
	err := page(tx, q.Limit, q.Offset).Find(&out).Error
	return out, translate(err)
}

// ForUser returns every row of the devices currently assigned to userID in
// ascending time order.
func (r *EventRepository[T]) ForUser(ctx context.Context, userID uuid.UUID) ([]T, error) {
	var out []T
	name := r.TableName()
	err := r.conn(ctx).
		Table(name).
		Select(name+".*").
		Joins("JOIN devices ON devices.device_id = "+name+".device_id").
		Where("devices.user_id = ?", userID).
		Order(name + ".time ASC").
		Order(name + ".device_id ASC").
		Find(&out).Error
	return out, translate(err)
}

// InsertIgnoreConflicts writes recs, rows whose key already exists are kept.
func (r *EventRepository[T]) InsertIgnoreConflicts(ctx context.Context, recs []T) error {
	if len(recs) == 0 {
		return nil
	}
	err := r.conn(ctx).Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(&recs, 200).Error
	return translate(err)
}

// DeleteSynthesized removes rows written by the snapshot engine. A nil
// deviceIDs matches every device, a nil since every time.
func (r *EventRepository[T]) DeleteSynthesized(ctx context.Context, deviceIDs []string, since *time.Time) (int64, error) {
	tx := r.conn(ctx).Where(datatypes.JSONQuery("raw_payload").Equals(models.SynthesizedSource, "source"))
	if deviceIDs != nil {
		if len(deviceIDs) == 0 {
			return 0, nil
		}
		tx = tx.Where("device_id IN ?", deviceIDs)
	}
	if since != nil {
		tx = tx.Where("time >= ?", since.UTC())
	}
	res := tx.Delete(new(T))
	return res.RowsAffected, translate(res.Error)
}
