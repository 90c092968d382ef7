package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"liyu1981.xyz/eldercare-telemetry/pkg/models"
)

type DeviceRepository struct {
	table[models.Device]
}

func NewDeviceRepository(db *gorm.DB) *DeviceRepository {
	return &DeviceRepository{table: table[models.Device]{db: db}}
}

func (r *DeviceRepository) Create(ctx context.Context, device *models.Device) error {
	return r.create(ctx, device)
}

func (r *DeviceRepository) Get(ctx context.Context, deviceID string) (models.Device, error) {
	return r.take(ctx, "device_id = ?", deviceID)
}

func (r *DeviceRepository) Exists(ctx context.Context, deviceID string) (bool, error) {
	n, err := r.count(ctx, "device_id = ?", deviceID)
	return n > 0, err
}

func (r *DeviceRepository) List(ctx context.Context, limit, offset int) ([]models.Device, error) {
	var out []models.Device
	err := page(r.conn(ctx).Order("device_id ASC"), limit, offset).Find(&out).Error
	return out, translate(err)
}

func (r *DeviceRepository) ForUser(ctx context.Context, userID uuid.UUID) ([]models.Device, error) {
	var out []models.Device
	err := r.conn(ctx).Where("user_id = ?", userID).Order("device_id ASC").Find(&out).Error
	return out, translate(err)
}

// UsersWithDevices returns every user id owning at least one device, sorted.
func (r *DeviceRepository) UsersWithDevices(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.conn(ctx).Model(&models.Device{}).
		Where("user_id IS NOT NULL").
		Distinct("user_id").
		Order("user_id ASC").
		Pluck("user_id", &ids).Error
	return ids, translate(err)
}

func (r *DeviceRepository) Update(ctx context.Context, device *models.Device) error {
	return r.update(ctx, device, "device_id = ?", device.DeviceID)
}

// Assign sets the owner in a single column update, the last writer wins.
func (r *DeviceRepository) Assign(ctx context.Context, deviceID string, userID uuid.UUID) error {
	return r.updateColumns(ctx, map[string]any{"user_id": userID}, "device_id = ?", deviceID)
}

func (r *DeviceRepository) Unassign(ctx context.Context, deviceID string) error {
	return r.updateColumns(ctx, map[string]any{"user_id": nil}, "device_id = ?", deviceID)
}

func (r *DeviceRepository) Delete(ctx context.Context, deviceID string) (bool, error) {
	return r.remove(ctx, "device_id = ?", deviceID)
}
