package iot

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"liyu1981.xyz/eldercare-telemetry/pkg/common"
	"liyu1981.xyz/eldercare-telemetry/pkg/models"
)

func deviceLogger(deviceID string) *zap.Logger {
	return common.GetLoggerWith(
		common.LoggerNameIOTCore,
		zap.String(common.LoggerFieldIOTCategory, common.LoggerCategoryDevice),
		zap.String(common.LoggerFieldDeviceID, deviceID),
	)
}

func (i *IOT) requireUser(ctx context.Context, id uuid.UUID) error {
	if _, err := i.getUser(ctx, id); err != nil {
		if common.IsKind(err, common.KindNotFound) {
			return common.Invalid("user %s does not exist", id)
		}
		return err
	}
	return nil
}

func (i *IOT) createDevice(ctx context.Context, input *models.Device) (models.Device, error) {
	logger := deviceLogger(input.DeviceID)

	device := *input
	id := device.DeviceID
	if issues := deviceIDSchema.Validate(&id); len(issues) > 0 {
		return models.Device{}, common.Invalid("device_id: %s", issues[0].Message)
	}
	if device.UserID != nil {
		if err := i.requireUser(ctx, *device.UserID); err != nil {
			return models.Device{}, err
		}
	}
	if device.InstalledAt != nil {
		device.InstalledAt = common.Ptr(device.InstalledAt.UTC())
	}

	if err := i.Store.Devices.Create(ctx, &device); err != nil {
		return models.Device{}, fromRepository(logger, err, "device")
	}

	logger.Info("Registered device", zap.String("location_label", device.Label()))
	return device, nil
}

func (i *IOT) getDevice(ctx context.Context, deviceID string) (models.Device, error) {
	device, err := i.Store.Devices.Get(ctx, deviceID)
	return device, fromRepository(deviceLogger(deviceID), err, "device "+deviceID)
}

func (i *IOT) listDevices(ctx context.Context, page, size int) ([]models.Device, error) {
	limit, offset, err := pageBounds(page, size)
	if err != nil {
		return nil, err
	}
	devices, err := i.Store.Devices.List(ctx, limit, offset)
	return devices, fromRepository(deviceLogger(""), err, "devices")
}

func (i *IOT) devicesForUser(ctx context.Context, userID uuid.UUID) ([]models.Device, error) {
	if err := i.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	devices, err := i.Store.Devices.ForUser(ctx, userID)
	return devices, fromRepository(deviceLogger(""), err, "devices")
}

func (i *IOT) updateDevice(ctx context.Context, deviceID string, patch models.Patch) (models.Device, error) {
	logger := deviceLogger(deviceID)

	current, err := i.getDevice(ctx, deviceID)
	if err != nil {
		return models.Device{}, err
	}
	merged, err := mergePatch(current, patch, "device_id")
	if err != nil {
		return models.Device{}, err
	}
	if merged.UserID != nil {
		if err := i.requireUser(ctx, *merged.UserID); err != nil {
			return models.Device{}, err
		}
	}
	if err := i.Store.Devices.Update(ctx, &merged); err != nil {
		return models.Device{}, fromRepository(logger, err, "device "+deviceID)
	}

	logger.Info("Updated device", zap.Reflect("device", merged))
	return merged, nil
}

func (i *IOT) deleteDevice(ctx context.Context, deviceID string) error {
	logger := deviceLogger(deviceID)

	deleted, err := i.Store.Devices.Delete(ctx, deviceID)
	if err != nil {
		return fromRepository(logger, err, "device "+deviceID)
	}
	if !deleted {
		return common.NotFound("device %s not found", deviceID)
	}
	logger.Info("Deleted device")
	return nil
}

func (i *IOT) assignDevice(ctx context.Context, deviceID string, userID uuid.UUID) (models.Device, error) {
	logger := deviceLogger(deviceID)

	if err := i.requireUser(ctx, userID); err != nil {
		return models.Device{}, err
	}
	if err := i.Store.Devices.Assign(ctx, deviceID, userID); err != nil {
		return models.Device{}, fromRepository(logger, err, "device "+deviceID)
	}

	logger.Info("Assigned device", zap.String(common.LoggerFieldUserID, userID.String()))
	return i.getDevice(ctx, deviceID)
}

func (i *IOT) unassignDevice(ctx context.Context, deviceID string) (models.Device, error) {
	logger := deviceLogger(deviceID)

	if err := i.Store.Devices.Unassign(ctx, deviceID); err != nil {
		return models.Device{}, fromRepository(logger, err, "device "+deviceID)
	}

	logger.Info("Unassigned device")
	return i.getDevice(ctx, deviceID)
}

type IDeviceImpl struct {
	iot *IOT
}

func (d *IDeviceImpl) Create(ctx context.Context, device *models.Device) (models.Device, error) {
	return d.iot.createDevice(ctx, device)
}

func (d *IDeviceImpl) Get(ctx context.Context, deviceID string) (models.Device, error) {
	return d.iot.getDevice(ctx, deviceID)
}

func (d *IDeviceImpl) List(ctx context.Context, page, size int) ([]models.Device, error) {
	return d.iot.listDevices(ctx, page, size)
}

func (d *IDeviceImpl) ForUser(ctx context.Context, userID uuid.UUID) ([]models.Device, error) {
	return d.iot.devicesForUser(ctx, userID)
}

func (d *IDeviceImpl) Update(ctx context.Context, deviceID string, patch models.Patch) (models.Device, error) {
	return d.iot.updateDevice(ctx, deviceID, patch)
}

func (d *IDeviceImpl) Delete(ctx context.Context, deviceID string) error {
	return d.iot.deleteDevice(ctx, deviceID)
}

func (d *IDeviceImpl) Assign(ctx context.Context, deviceID string, userID uuid.UUID) (models.Device, error) {
	return d.iot.assignDevice(ctx, deviceID, userID)
}

func (d *IDeviceImpl) Unassign(ctx context.Context, deviceID string) (models.Device, error) {
	return d.iot.unassignDevice(ctx, deviceID)
}

func (i *IOT) GetIDevice() IDevice {
	return &IDeviceImpl{iot: i}
}
