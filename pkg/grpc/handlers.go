package grpc

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
	"liyu1981.xyz/eldercare-telemetry/pkg/common"
	"liyu1981.xyz/eldercare-telemetry/pkg/models"
)

var codeOfKind = map[common.ErrorKind]codes.Code{
	common.KindInvalid:  codes.InvalidArgument,
	common.KindNotFound: codes.NotFound,
	common.KindConflict: codes.AlreadyExists,
	common.KindInternal: codes.Internal,
}

func toStatus(err error) error {
	kind := common.KindOf(err)
	if kind == common.KindInternal {
		serverLogger().Error("Request failed", zap.Error(err))
	}
	return status.Error(codeOfKind[kind], common.MessageOf(err))
}

func (s *IngestServer) PushEvent(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	fields := req.GetFields()
	kind := models.Kind(fields["kind"].GetStringValue())
	if kind == "" {
		return nil, status.Error(codes.InvalidArgument, "kind is required")
	}
	ingest, ok := s.ingestors[kind]
	if !ok {
		return nil, status.Errorf(codes.InvalidArgument, "unknown kind %q", kind)
	}
	record := fields["record"].GetStructValue()
	if record == nil {
		return nil, status.Error(codes.InvalidArgument, "record is required")
	}

	key, err := ingest(ctx, record.AsMap())
	if err != nil {
		return nil, toStatus(err)
	}

	return structpb.NewStruct(map[string]any{
		"status":    "created",
		"kind":      string(kind),
		"device_id": key.DeviceID,
		"time":      common.FormatTimestamp(key.Time),
	})
}

func (s *IngestServer) LatestSnapshot(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	userID, err := uuid.Parse(req.GetFields()["user_id"].GetStringValue())
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "user_id must be a UUID")
	}

	snap, err := s.Iot.Snapshot.Latest(ctx, userID)
	if err != nil {
		return nil, toStatus(err)
	}

	raw, err := json.Marshal(snap)
	if err != nil {
		return nil, toStatus(common.Internal(err, "encode snapshot"))
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(raw, out); err != nil {
		return nil, toStatus(common.Internal(err, "encode snapshot"))
	}
	return out, nil
}
