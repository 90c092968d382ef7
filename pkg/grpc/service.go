package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// The ingest service is small enough to be described by hand. Requests and
// responses are google.protobuf.Struct so clients need no generated stubs.
const (
	ServiceName          = "eldercare.telemetry.v1.IngestService"
	PushEventMethod      = "/" + ServiceName + "/PushEvent"
	LatestSnapshotMethod = "/" + ServiceName + "/LatestSnapshot"
)

type IngestServiceServer interface {
	PushEvent(context.Context, *structpb.Struct) (*structpb.Struct, error)
	LatestSnapshot(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

func unaryHandler(fullMethod string, call func(IngestServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(IngestServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(IngestServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var IngestServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*IngestServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "PushEvent",
			Handler:    unaryHandler(PushEventMethod, IngestServiceServer.PushEvent),
		},
		{
			MethodName: "LatestSnapshot",
			Handler:    unaryHandler(LatestSnapshotMethod, IngestServiceServer.LatestSnapshot),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "eldercare/telemetry/v1/ingest.proto",
}

func RegisterIngestServiceServer(s grpc.ServiceRegistrar, srv IngestServiceServer) {
	s.RegisterService(&IngestServiceDesc, srv)
}

type IngestServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewIngestServiceClient(cc grpc.ClientConnInterface) *IngestServiceClient {
	return &IngestServiceClient{cc: cc}
}

func (c *IngestServiceClient) PushEvent(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, PushEventMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *IngestServiceClient) LatestSnapshot(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, LatestSnapshotMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
