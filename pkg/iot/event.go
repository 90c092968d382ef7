package iot

import (
	"context"
	"time"

	z "github.com/Oudwins/zog"
	"go.uber.org/zap"
	"liyu1981.xyz/eldercare-telemetry/pkg/common"
	"liyu1981.xyz/eldercare-telemetry/pkg/models"
	"liyu1981.xyz/eldercare-telemetry/pkg/repository"
)

type eventRules[T models.Event] struct {
	schema *z.StructSchema
	// normalize fills derived fields before validation
	normalize func(*T)
	check     func(*T) error
}

type keyNormalizer interface {
	Normalize()
}

// EventService is the IEvent implementation shared by every kind.
type EventService[T models.Event] struct {
	iot   *IOT
	kind  models.Kind
	repo  *repository.EventRepository[T]
	rules eventRules[T]
}

func newEventService[T models.Event](i *IOT, kind models.Kind, rules eventRules[T]) *EventService[T] {
	return &EventService[T]{
		iot:   i,
		kind:  kind,
		repo:  repository.NewEventRepository[T](i.Store.DB),
		rules: rules,
	}
}

func (s *EventService[T]) logger() *zap.Logger {
	return common.GetLoggerWith(
		common.LoggerNameIOTCore,
		zap.String(common.LoggerFieldIOTCategory, string(s.kind)),
	)
}

func (s *EventService[T]) Kind() models.Kind { return s.kind }

func (s *EventService[T]) prepare(rec *T) error {
	if n, ok := any(rec).(keyNormalizer); ok {
		n.Normalize()
	}
	if err := validateKey((*rec).Key()); err != nil {
		return err
	}
	if s.rules.normalize != nil {
		s.rules.normalize(rec)
	}
	if err := validate(s.rules.schema, rec); err != nil {
		return err
	}
	if s.rules.check != nil {
		return s.rules.check(rec)
	}
	return nil
}

func (s *EventService[T]) Create(ctx context.Context, rec *T) (T, error) {
	logger := s.logger()
	var zero T

	if err := s.prepare(rec); err != nil {
		logger.Info("Rejected record", zap.Error(err))
		return zero, err
	}
	key := (*rec).Key()

	exists, err := s.iot.Store.Devices.Exists(ctx, key.DeviceID)
	if err != nil {
		return zero, fromRepository(logger, err, "device "+key.DeviceID)
	}
	if !exists {
		return zero, common.Invalid("device %s is not registered", key.DeviceID)
	}

	logger.Info("Received record for device",
		zap.String(common.LoggerFieldDeviceID, key.DeviceID), zap.Time("time", key.Time))

	if err := s.repo.Create(ctx, rec); err != nil {
		return zero, fromRepository(logger, err, string(s.kind)+" record")
	}

	logger.Info("Stored record for device", zap.Reflect("record", rec))
	return *rec, nil
}

func (s *EventService[T]) Get(ctx context.Context, deviceID string, t time.Time) (T, error) {
	rec, err := s.repo.Get(ctx, deviceID, t)
	return rec, fromRepository(s.logger(), err, string(s.kind)+" record")
}

func (s *EventService[T]) Latest(ctx context.Context, deviceID string) (T, error) {
	rec, err := s.repo.Latest(ctx, deviceID)
	return rec, fromRepository(s.logger(), err, string(s.kind)+" record for device "+deviceID)
}

func (s *EventService[T]) List(ctx context.Context, q models.ListQuery) ([]T, error) {
	if err := ValidateListQuery(&q); err != nil {
		return nil, err
	}
	out, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, fromRepository(s.logger(), err, string(s.kind)+" records")
	}
	return out, nil
}

func (s *EventService[T]) Update(ctx context.Context, deviceID string, t time.Time, patch models.Patch) (T, error) {
	logger := s.logger()
	var zero T

	if len(patch) == 0 {
		return zero, common.Invalid("no fields to update")
	}
	current, err := s.Get(ctx, deviceID, t)
	if err != nil {
		return zero, err
	}
	merged, err := mergePatch(current, patch, "time", "device_id")
	if err != nil {
		return zero, err
	}
	if err := s.prepare(&merged); err != nil {
		return zero, err
	}
	if err := s.repo.Update(ctx, &merged); err != nil {
		return zero, fromRepository(logger, err, string(s.kind)+" record")
	}

	logger.Info("Updated record for device", zap.Reflect("record", merged))
	return merged, nil
}

func (s *EventService[T]) Delete(ctx context.Context, deviceID string, t time.Time) error {
	deleted, err := s.repo.Delete(ctx, deviceID, t)
	if err != nil {
		return fromRepository(s.logger(), err, string(s.kind)+" record")
	}
	if !deleted {
		return common.NotFound("%s record not found", s.kind)
	}
	s.logger().Info("Deleted record for device",
		zap.String(common.LoggerFieldDeviceID, deviceID), zap.Time("time", t))
	return nil
}

func (s *EventService[T]) metric() (models.Descriptor, error) {
	desc, ok := models.DescriptorOf(s.kind)
	if !ok || !desc.HasMetric() {
		return desc, common.Invalid("%s has no numeric reading", s.kind)
	}
	return desc, nil
}

func (s *EventService[T]) Statistics(ctx context.Context, q models.ListQuery) (models.Statistics, error) {
	desc, err := s.metric()
	if err != nil {
		return models.Statistics{}, err
	}
	if err := ValidateListQuery(&q); err != nil {
		return models.Statistics{}, err
	}
	stats, err := s.repo.Statistics(ctx, desc.MetricColumn, q)
	return stats, fromRepository(s.logger(), err, string(s.kind)+" statistics")
}

// Alerts lists records above threshold, the kind default when nil. Readings
// above twice the threshold are HIGH.
func (s *EventService[T]) Alerts(ctx context.Context, q models.ListQuery, threshold *float64) ([]models.Exceedance[T], error) {
	desc, err := s.metric()
	if err != nil {
		return nil, err
	}
	if err := ValidateListQuery(&q); err != nil {
		return nil, err
	}
	limit := common.Deref(threshold, desc.DefaultThreshold)

	rows, err := s.repo.Exceeding(ctx, desc.MetricColumn, limit, q)
	if err != nil {
		return nil, fromRepository(s.logger(), err, string(s.kind)+" alerts")
	}

	out := make([]models.Exceedance[T], 0, len(rows))
	for _, row := range rows {
		m, ok := any(row).(models.Measured)
		if !ok {
			continue
		}
		value, ok := m.Measurement()
		if !ok {
			continue
		}
		severity := models.SeverityMedium
		if value > 2*limit {
			severity = models.SeverityHigh
		}
		out = append(out, models.Exceedance[T]{Severity: severity, Value: value, Threshold: limit, Record: row})
	}
	return out, nil
}
