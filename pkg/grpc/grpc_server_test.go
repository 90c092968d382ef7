package grpc

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
	"liyu1981.xyz/eldercare-telemetry/pkg/common"
	"liyu1981.xyz/eldercare-telemetry/pkg/db"
	"liyu1981.xyz/eldercare-telemetry/pkg/iot"
	"liyu1981.xyz/eldercare-telemetry/pkg/iot/mocks"
	"liyu1981.xyz/eldercare-telemetry/pkg/models"
	_ "liyu1981.xyz/eldercare-telemetry/pkg/testing"
)

const bufSize = 1024 * 1024

const t0 = "2025-08-23T10:00:00Z"

func startTestServer(t *testing.T, limiterStore *iot.RateLimiterStore, opts iot.ServiceOpts) (*IngestServiceClient, *iot.IOT) {
	listener := bufconn.Listen(bufSize)

	dbInstance, err := db.New(db.UseIsolatedMemorySqliteDialector(), db.DefaultPoolOpts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = dbInstance.Close() })

	iotCore := iot.New(dbInstance).WithServices(opts)
	server := NewIngestServer(iotCore, limiterStore).NewGrpcServer()

	go func() {
		_ = server.Serve(listener)
	}()
	t.Cleanup(server.Stop)

	conn, err := grpc.DialContext(context.Background(), "bufnet",
		grpc.WithContextDialer(func(ctx context.Context, s string) (net.Conn, error) {
			return listener.Dial()
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return NewIngestServiceClient(conn), iotCore
}

func seedHome(t *testing.T, i *iot.IOT, deviceIDs ...string) models.User {
	user, err := i.User.Create(t.Context(), &models.User{UserName: "Kim", UserRole: models.RoleCareTarget})
	require.NoError(t, err)
	for _, id := range deviceIDs {
		_, err := i.Device.Create(t.Context(), &models.Device{DeviceID: id, UserID: &user.UserID})
		require.NoError(t, err)
	}
	return user
}

func pushRequest(t *testing.T, kind string, record map[string]any) *structpb.Struct {
	req, err := structpb.NewStruct(map[string]any{"kind": kind, "record": record})
	require.NoError(t, err)
	return req
}

func codeOf(err error) codes.Code {
	return status.Code(err)
}

func TestPushEvent(t *testing.T) {
	common.SetTestLoggerNop()

	client, iotCore := startTestServer(t, nil, iot.ServiceOpts{})
	seedHome(t, iotCore, "K_MQ5")

	resp, err := client.PushEvent(t.Context(), pushRequest(t, "mq5", map[string]any{
		"time":         t0,
		"device_id":    "K_MQ5",
		"gas_ppm":      250,
		"analog_value": 612,
		"raw_payload":  map[string]any{"fw": "1.2"},
	}))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"status": "created", "kind": "mq5", "device_id": "K_MQ5", "time": t0,
	}, resp.AsMap())

	rec, err := iotCore.Events.MQ5.Get(t.Context(), "K_MQ5", time.Date(2025, 8, 23, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NotNil(t, rec.GasPpm)
	assert.Equal(t, 250.0, *rec.GasPpm)
	require.NotNil(t, rec.AnalogValue)
	assert.Equal(t, 612, *rec.AnalogValue)
	assert.JSONEq(t, `{"fw":"1.2"}`, string(rec.RawPayload))
}

func TestPushEvent_EdgeCases(t *testing.T) {
	common.SetTestLoggerNop()

	client, iotCore := startTestServer(t, nil, iot.ServiceOpts{})
	seedHome(t, iotCore, "K_MQ5")

	valid := map[string]any{"time": t0, "device_id": "K_MQ5", "gas_ppm": 250}
	_, err := client.PushEvent(t.Context(), pushRequest(t, "mq5", valid))
	require.NoError(t, err)

	noRecord, err := structpb.NewStruct(map[string]any{"kind": "mq5"})
	require.NoError(t, err)

	tests := []struct {
		name string
		req  *structpb.Struct
		code codes.Code
	}{
		{"missing kind", pushRequest(t, "", valid), codes.InvalidArgument},
		{"unknown kind", pushRequest(t, "co2", valid), codes.InvalidArgument},
		{"missing record", noRecord, codes.InvalidArgument},
		{"unknown field", pushRequest(t, "mq5", map[string]any{"time": t0, "device_id": "K_MQ5", "ppm": 1}), codes.InvalidArgument},
		{"bad time", pushRequest(t, "mq5", map[string]any{"time": "yesterday", "device_id": "K_MQ5"}), codes.InvalidArgument},
		{"unregistered device", pushRequest(t, "mq5", map[string]any{"time": t0, "device_id": "NOPE"}), codes.InvalidArgument},
		{"duplicate", pushRequest(t, "mq5", valid), codes.AlreadyExists},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.PushEvent(t.Context(), tt.req)
			require.Error(t, err)
			assert.Equal(t, tt.code, codeOf(err), err.Error())
		})
	}
}

func TestLatestSnapshot(t *testing.T) {
	common.SetTestLoggerNop()

	client, iotCore := startTestServer(t, nil, iot.ServiceOpts{})
	user := seedHome(t, iotCore)

	req := func(userID string) *structpb.Struct {
		s, err := structpb.NewStruct(map[string]any{"user_id": userID})
		require.NoError(t, err)
		return s
	}

	_, err := client.LatestSnapshot(t.Context(), req("not-a-uuid"))
	assert.Equal(t, codes.InvalidArgument, codeOf(err))

	_, err = client.LatestSnapshot(t.Context(), req(user.UserID.String()))
	assert.Equal(t, codes.NotFound, codeOf(err))

	_, err = iotCore.Snapshot.Create(t.Context(), &models.HomeStateSnapshot{
		Time:               time.Date(2025, 8, 23, 10, 0, 0, 0, time.UTC),
		UserID:             user.UserID,
		EntranceRfidStatus: "in",
		KitchenMq5GasPpm:   450,
		DetectedActivity:   "Idle",
		AlertLevel:         models.AlertWarning,
	})
	require.NoError(t, err)

	resp, err := client.LatestSnapshot(t.Context(), req(user.UserID.String()))
	require.NoError(t, err)
	got := resp.AsMap()
	assert.Equal(t, user.UserID.String(), got["user_id"])
	assert.Equal(t, t0, got["time"])
	assert.Equal(t, "Warning", got["alert_level"])
	assert.Equal(t, 450.0, got["kitchen_mq5_gas_ppm"])
}

func TestLatestSnapshot_InternalErrorIsHidden(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSnapshot := mocks.NewMockISnapshot(ctrl)
	client, _ := startTestServer(t, nil, iot.ServiceOpts{Snapshot: mockSnapshot})

	userID := uuid.New()
	mockSnapshot.EXPECT().
		Latest(gomock.Any(), gomock.Eq(userID)).
		Return(models.HomeStateSnapshot{}, errors.New("connection reset")).
		Times(1)

	req, err := structpb.NewStruct(map[string]any{"user_id": userID.String()})
	require.NoError(t, err)

	_, err = client.LatestSnapshot(t.Context(), req)
	st, ok := status.FromError(err)
	require.True(t, ok)
	assert.Equal(t, codes.Internal, st.Code())
	assert.Equal(t, "internal server error", st.Message())
}

func TestRateLimitInterceptor_PushEvent(t *testing.T) {
	common.SetTestLoggerNop()

	limiterStore := iot.NewRateLimiterStore(0.001, 2)
	client, iotCore := startTestServer(t, limiterStore, iot.ServiceOpts{})
	user := seedHome(t, iotCore, "K_MQ5", "LR_MQ7")

	push := func(deviceID, kind string, second int) error {
		_, err := client.PushEvent(t.Context(), pushRequest(t, kind, map[string]any{
			"time":      time.Date(2025, 8, 23, 10, 0, second, 0, time.UTC).Format(time.RFC3339),
			"device_id": deviceID,
		}))
		return err
	}

	// First 2 requests should pass
	for i := range 2 {
		require.NoError(t, push("K_MQ5", "mq5", i), "expected request %d to pass", i+1)
	}

	// 3rd request should fail immediately
	err := push("K_MQ5", "mq5", 2)
	require.Error(t, err, "expected third request to be rate limited")
	st, ok := status.FromError(err)
	require.True(t, ok, "expected gRPC status error")
	require.Equal(t, codes.ResourceExhausted, st.Code(), "expected ResourceExhausted code")

	// buckets are per device
	require.NoError(t, push("LR_MQ7", "mq7", 0))

	// reads are never limited
	req, err := structpb.NewStruct(map[string]any{"user_id": user.UserID.String()})
	require.NoError(t, err)
	for range 3 {
		_, err := client.LatestSnapshot(t.Context(), req)
		assert.Equal(t, codes.NotFound, codeOf(err))
	}

	// raising the bucket lets the device through again
	limiterStore.SetLimiter("K_MQ5", 10, 2)
	require.NoError(t, push("K_MQ5", "mq5", 3))
}
