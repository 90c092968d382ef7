package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"liyu1981.xyz/eldercare-telemetry/pkg/common"
)

// recordDeviceID reads record.device_id from a PushEvent style request.
func recordDeviceID(req any) (string, bool) {
	in, ok := req.(*structpb.Struct)
	if !ok {
		return "", false
	}
	record := in.GetFields()["record"].GetStructValue()
	id := record.GetFields()["device_id"].GetStringValue()
	return id, id != ""
}

func (s *IngestServer) CreateRateLimitInterceptor(targetMethods []string) grpc.UnaryServerInterceptor {
	targetMethodMap := common.Reducer(targetMethods,
		func(m map[string]bool, method string) map[string]bool {
			m[method] = true
			return m
		},
		map[string]bool{},
	)

	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		if targetMethodMap[info.FullMethod] {
			if deviceID, ok := recordDeviceID(req); ok {
				if !s.CheckDeviceLimiter(deviceID) {
					return nil, status.Errorf(codes.ResourceExhausted, "rate limit exceeded")
				}
			}
		}

		return handler(ctx, req)
	}
}
