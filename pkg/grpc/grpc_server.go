package grpc

import (
	"context"
	"net"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"liyu1981.xyz/eldercare-telemetry/pkg/common"
	"liyu1981.xyz/eldercare-telemetry/pkg/iot"
	"liyu1981.xyz/eldercare-telemetry/pkg/models"
)

type IngestServer struct {
	Iot              *iot.IOT
	RateLimiterStore *iot.RateLimiterStore
	ingestors        map[models.Kind]iot.Ingestor
}

func NewIngestServer(i *iot.IOT, limiterStore *iot.RateLimiterStore) *IngestServer {
	return &IngestServer{
		Iot:              i,
		RateLimiterStore: limiterStore,
		ingestors:        i.Ingestors(),
	}
}

func serverLogger() *zap.Logger {
	return common.GetLoggerWith(common.LoggerNameGrpcServer)
}

func (s *IngestServer) GetLimiter(deviceID string) *rate.Limiter {
	if s.RateLimiterStore == nil {
		return nil
	} else {
		return s.RateLimiterStore.GetLimiter(deviceID)
	}
}

func (s *IngestServer) CheckDeviceLimiter(deviceID string) bool {
	limiter := s.GetLimiter(deviceID)
	if limiter == nil {
		return true
	}
	return limiter.Allow()
}

// NewGrpcServer registers the ingest service behind the limiter for
// PushEvent.
func (s *IngestServer) NewGrpcServer(opts ...grpc.ServerOption) *grpc.Server {
	opts = append(opts, grpc.UnaryInterceptor(s.CreateRateLimitInterceptor([]string{PushEventMethod})))
	server := grpc.NewServer(opts...)
	RegisterIngestServiceServer(server, s)
	return server
}

// Serve blocks until ctx is done or the listener fails.
func (s *IngestServer) Serve(ctx context.Context, lis net.Listener) error {
	server := s.NewGrpcServer()
	go func() {
		<-ctx.Done()
		server.GracefulStop()
	}()
	serverLogger().Info("gRPC server listening", zap.String("addr", lis.Addr().String()))
	return server.Serve(lis)
}
