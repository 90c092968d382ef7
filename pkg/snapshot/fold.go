package snapshot

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"liyu1981.xyz/eldercare-telemetry/pkg/common"
	"liyu1981.xyz/eldercare-telemetry/pkg/models"
)

type ackKind int

const (
	ackBuzzerOn ackKind = iota
	ackButtonPressed
	ackBuzzerOff
)

// ackStep is one scheduled snapshot of the acknowledge interaction.
type ackStep struct {
	kind   ackKind
	at     time.Time
	level  models.AlertLevel
	reason string
	// pressed is the button step's time, shared by the three steps
	pressed time.Time
	buzzer  models.Device
	button  models.Device
}

// fold is the per-user rebuild: state, pending ack steps and the batch that
// has not been flushed yet.
type fold struct {
	engine  *Engine
	userID  uuid.UUID
	state   *State
	buzzer  *models.Device
	buttons []models.Device
	since   *time.Time
	upsert  bool
	report  *Report

	pending      []ackStep
	rows         []models.HomeStateSnapshot
	buzzerLogs   []models.ActuatorLogBuzzer
	buttonEvents []models.SensorEventButton
	latest       *models.HomeStateSnapshot
	unrouted     map[string]struct{}
}

func newFold(e *Engine, userID uuid.UUID, devices []models.Device, anchor time.Time, since *time.Time, upsert bool, report *Report) *fold {
	buzzer, buttons := ackDevices(devices)
	return &fold{
		engine:   e,
		userID:   userID,
		state:    newState(userID, anchor),
		buzzer:   buzzer,
		buttons:  buttons,
		since:    since,
		upsert:   upsert,
		report:   report,
		unrouted: map[string]struct{}{},
	}
}

func (f *fold) written(t time.Time) bool {
	return f.since == nil || !t.Before(*f.since)
}

func (f *fold) emit(snap models.HomeStateSnapshot) {
	f.latest = &snap
	if !f.written(snap.Time) {
		return
	}
	f.rows = append(f.rows, snap)
	f.report.Snapshots++
}

// group applies one same-timestamp group and emits its snapshot. Ack steps
// due before the group are emitted first, a step due at the group's time is
// merged into it.
func (f *fold) group(ctx context.Context, events []Event) error {
	t := events[0].Time

	for len(f.pending) > 0 && f.pending[0].at.Before(t) {
		f.step(f.pending[0])
		f.pending = f.pending[1:]
	}
	var merged *ackStep
	if len(f.pending) > 0 && f.pending[0].at.Equal(t) {
		merged = &f.pending[0]
		f.pending = f.pending[1:]
	}

	f.state.beginGroup()
	for _, e := range events {
		if !f.state.apply(e) {
			f.report.Unrouted++
			f.unrouted[e.DeviceID] = struct{}{}
		}
	}

	switch {
	case merged != nil:
		f.state.consumeCrisisSound()
		level, reason := f.applyStep(*merged)
		f.emit(f.state.snapshot(t, level, reason))
	case f.suppressed(t):
		f.state.consumeCrisisSound()
		f.emit(f.state.snapshot(t, models.AlertNormal, nil))
	default:
		level, reason, ok := evaluate(f.state, t)
		if !ok {
			f.emit(f.state.snapshot(t, models.AlertNormal, nil))
			break
		}
		f.report.Alerts++
		f.emit(f.state.snapshot(t, level, common.Ptr(reason)))
		f.schedule(t, level, reason)
	}

	if len(f.pending) == 0 && len(f.rows) >= f.engine.cfg.BatchSize {
		return f.flush(ctx)
	}
	return nil
}

// suppressed is true while an ack is pending and inside the debounce window
// after the last buzzer off.
func (f *fold) suppressed(t time.Time) bool {
	if len(f.pending) > 0 {
		return true
	}
	last := f.state.lastBuzzer
	return last != nil && t.Sub(*last) <= f.engine.cfg.AlertDebounce
}

// schedule queues the three ack steps for an alert at t. Without a buzzer or
// a button the alert stands alone and t opens the debounce window.
func (f *fold) schedule(t time.Time, level models.AlertLevel, reason string) {
	if f.buzzer == nil || len(f.buttons) == 0 {
		f.state.lastBuzzer = common.Ptr(t)
		return
	}
	button := f.buttons[f.engine.rnd.Intn(len(f.buttons))]
	minS := int(f.engine.cfg.AckDelayMin / time.Second)
	maxS := int(f.engine.cfg.AckDelayMax / time.Second)
	delay := time.Duration(f.engine.rnd.Intn(maxS-minS+1)+minS) * time.Second

	on := t.Add(time.Second)
	pressed := on.Add(delay)
	off := pressed.Add(time.Second)
	base := ackStep{level: level, reason: reason, pressed: pressed, buzzer: *f.buzzer, button: button}
	for _, s := range []struct {
		kind ackKind
		at   time.Time
	}{{ackBuzzerOn, on}, {ackButtonPressed, pressed}, {ackBuzzerOff, off}} {
		step := base
		step.kind, step.at = s.kind, s.at
		f.pending = append(f.pending, step)
	}
	f.report.Acks++
}

// step emits a pending ack step on its own, the action log of a previous
// step stays.
func (f *fold) step(s ackStep) {
	f.state.groupMotion = false
	level, reason := f.applyStep(s)
	f.emit(f.state.snapshot(s.at, level, reason))
}

func (f *fold) synthesizedPayload(s ackStep) datatypes.JSON {
	return encodeJSON(map[string]string{"source": models.SynthesizedSource, "alert_reason": s.reason})
}

// applyStep moves the state through one ack step, records the matching
// actuator or button row and returns the alert the snapshot carries.
func (f *fold) applyStep(s ackStep) (models.AlertLevel, *string) {
	write := f.written(s.at)
	switch s.kind {
	case ackBuzzerOn:
		f.state.slots.KitchenBuzzerIsOn = true
		if write {
			f.buzzerLogs = append(f.buzzerLogs, f.buzzerLog(s, models.BuzzerStateOn))
		}
		return s.level, common.Ptr(s.reason)
	case ackButtonPressed:
		if slot := buttonSlot(&f.state.slots, NormalizeRoom(s.button.Label())); slot != nil {
			*slot = common.Ptr(models.ButtonStatePressed)
		}
		f.state.actionLog = acknowledged(s)
		if write {
			f.buttonEvents = append(f.buttonEvents, models.SensorEventButton{
				EventKey:    models.EventKey{Time: s.at, DeviceID: s.button.DeviceID, RawPayload: f.synthesizedPayload(s)},
				ButtonState: models.ButtonStatePressed,
				EventType:   common.Ptr(models.ButtonEventCrisisAcknowledged),
			})
		}
		return s.level, common.Ptr(s.reason)
	default:
		f.state.slots.KitchenBuzzerIsOn = false
		f.state.lastBuzzer = common.Ptr(s.at)
		if write {
			f.buzzerLogs = append(f.buzzerLogs, f.buzzerLog(s, models.BuzzerStateOff))
		}
		f.state.actionLog = acknowledged(s)
		return models.AlertNormal, common.Ptr(ReasonResolved)
	}
}

func acknowledged(s ackStep) []models.ActionLogEntry {
	return []models.ActionLogEntry{{
		ActionTaken:    models.ActionUserAcknowledged,
		ResultTime:     common.FormatTimestamp(s.pressed),
		AcknowledgedBy: s.button.DeviceID,
	}}
}

func (f *fold) buzzerLog(s ackStep, state string) models.ActuatorLogBuzzer {
	return models.ActuatorLogBuzzer{
		EventKey:   models.EventKey{Time: s.at, DeviceID: s.buzzer.DeviceID, RawPayload: f.synthesizedPayload(s)},
		BuzzerType: "piezo",
		State:      state,
		Reason:     common.Ptr(s.reason),
	}
}

// finish emits the steps still pending after the last event and flushes.
func (f *fold) finish(ctx context.Context) error {
	for _, s := range f.pending {
		f.step(s)
	}
	f.pending = nil
	return f.flush(ctx)
}

// flush writes the batch and its ack records in one transaction.
func (f *fold) flush(ctx context.Context) error {
	if len(f.rows) == 0 && len(f.buzzerLogs) == 0 && len(f.buttonEvents) == 0 {
		return nil
	}
	buzzerLogs, buttonEvents := f.buzzerLogs, f.buttonEvents
	side := func(tx *gorm.DB) error {
		if err := f.engine.buzzers(tx).InsertIgnoreConflicts(ctx, buzzerLogs); err != nil {
			return fmt.Errorf("insert buzzer logs: %w", err)
		}
		if err := f.engine.buttons(tx).InsertIgnoreConflicts(ctx, buttonEvents); err != nil {
			return fmt.Errorf("insert button events: %w", err)
		}
		return nil
	}
	if err := f.engine.store.Snapshots.FlushBatch(ctx, f.rows, f.upsert, side); err != nil {
		return fmt.Errorf("flush snapshots of user %s: %w", f.userID, err)
	}

	f.engine.logger().Debug("Flushed snapshot batch",
		zap.String(common.LoggerFieldUserID, f.userID.String()),
		zap.Int("rows", len(f.rows)),
		zap.Int("ack_records", len(buzzerLogs)+len(buttonEvents)))
	f.report.Batches++
	f.rows, f.buzzerLogs, f.buttonEvents = nil, nil, nil
	return nil
}

func (f *fold) unroutedDevices() []string {
	out := make([]string, 0, len(f.unrouted))
	for id := range f.unrouted {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
