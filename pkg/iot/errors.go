package iot

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"

	"go.uber.org/zap"
	"liyu1981.xyz/eldercare-telemetry/pkg/common"
	"liyu1981.xyz/eldercare-telemetry/pkg/models"
	"liyu1981.xyz/eldercare-telemetry/pkg/repository"
)

// fromRepository maps a repository failure onto the service taxonomy. what
// names the missing record in NotFound messages.
func fromRepository(logger *zap.Logger, err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return common.NotFound("%s not found", what)
	case errors.Is(err, repository.ErrDuplicate):
		return common.Conflict("duplicate")
	default:
		logger.Error("Storage failure", zap.String("record", what), zap.Error(err))
		return common.Internal(err, "storage failure")
	}
}

// mergePatch overlays patch onto current through their JSON forms. Keys in
// immutable may only repeat the current value.
func mergePatch[T any](current T, patch models.Patch, immutable ...string) (T, error) {
	var merged T
	if len(patch) == 0 {
		return merged, common.Invalid("no fields to update")
	}

	raw, err := json.Marshal(current)
	if err != nil {
		return merged, common.Internal(err, "encode record")
	}
	fields := map[string]any{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return merged, common.Internal(err, "decode record")
	}

	for _, key := range immutable {
		if v, ok := patch[key]; ok && !sameJSON(v, fields[key]) {
			return merged, common.Invalid("%s cannot be updated", key)
		}
	}
	for k, v := range patch {
		fields[k] = v
	}

	raw, err = json.Marshal(fields)
	if err != nil {
		return merged, common.Invalid("invalid patch: %v", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&merged); err != nil {
		return merged, common.Invalid("invalid patch: %v", err)
	}
	return merged, nil
}

func sameJSON(a, b any) bool {
	ra, errA := json.Marshal(a)
	rb, errB := json.Marshal(b)
	if errA != nil || errB != nil {
		return false
	}
	var va, vb any
	_ = json.Unmarshal(ra, &va)
	_ = json.Unmarshal(rb, &vb)
	return reflect.DeepEqual(va, vb)
}
