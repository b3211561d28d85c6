package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/staybook/cancellation-risk/internal/application/dto"
)

func startBufServer(t *testing.T, h *RiskServiceHandler) *grpc.ClientConn {
	t.Helper()
	lis := bufconn.Listen(1 << 20)

	srv := NewServer(h, ServerConfig{}, testLogger())
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestServer_AssessBookingOverJSONCodec(t *testing.T) {
	assessor := &mockAssessor{executeFunc: func(context.Context, dto.AssessBookingRequest) (dto.AssessmentResponse, error) {
		return highRiskResponse(), nil
	}}
	conn := startBufServer(t, NewRiskServiceHandler(assessor, &mockLister{}, testLogger()))
	deadline := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)

	resp := new(AssessBookingResponse)
	err := conn.Invoke(context.Background(), "/"+ServiceName+"/AssessBooking",
		&AssessBookingRequest{
			LeadTime:                 90,
			DepositType:              "No Deposit",
			FreeCancellationDeadline: timestamppb.New(deadline),
		}, resp,
		grpc.CallContentSubtype(JSONCodecName),
	)
	require.NoError(t, err)
	assert.Equal(t, "HIGH", resp.Tier)
	assert.Equal(t, 90, assessor.got.LeadTime)
	require.NotNil(t, assessor.got.FreeCancellationDeadline)
	assert.True(t, deadline.Equal(*assessor.got.FreeCancellationDeadline))
	require.NotNil(t, resp.AssessedAt)
	assert.True(t, assessedAt.Equal(resp.AssessedAt.AsTime()))
}

func TestServer_RecoversFromPanic(t *testing.T) {
	assessor := &mockAssessor{executeFunc: func(context.Context, dto.AssessBookingRequest) (dto.AssessmentResponse, error) {
		panic("boom")
	}}
	conn := startBufServer(t, NewRiskServiceHandler(assessor, &mockLister{}, testLogger()))

	err := conn.Invoke(context.Background(), "/"+ServiceName+"/AssessBooking",
		&AssessBookingRequest{}, new(AssessBookingResponse),
		grpc.CallContentSubtype(JSONCodecName),
	)
	requireGRPCCode(t, err, codes.Internal)
}

func TestServer_Health(t *testing.T) {
	conn := startBufServer(t, NewRiskServiceHandler(&mockAssessor{}, &mockLister{}, testLogger()))

	resp, err := healthpb.NewHealthClient(conn).Check(context.Background(), &healthpb.HealthCheckRequest{Service: ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.Status)
}
