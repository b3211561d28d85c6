package grpc

// proto.go defines the gRPC server interface for staybook/risk/v1/risk.proto.
// Messages are plain structs carried by the JSON codec in codec.go.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"
)

const ServiceName = "staybook.risk.v1.CancellationRiskService"

// CancellationRiskServiceServer is the server API for CancellationRiskService.
type CancellationRiskServiceServer interface {
	AssessBooking(context.Context, *AssessBookingRequest) (*AssessBookingResponse, error)
	ListWatchlist(context.Context, *ListWatchlistRequest) (*ListWatchlistResponse, error)
	mustEmbedUnimplementedCancellationRiskServiceServer()
}

// UnimplementedCancellationRiskServiceServer provides forward-compatible default implementations.
type UnimplementedCancellationRiskServiceServer struct{}

func (UnimplementedCancellationRiskServiceServer) AssessBooking(context.Context, *AssessBookingRequest) (*AssessBookingResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method AssessBooking not implemented")
}
func (UnimplementedCancellationRiskServiceServer) ListWatchlist(context.Context, *ListWatchlistRequest) (*ListWatchlistResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListWatchlist not implemented")
}
func (UnimplementedCancellationRiskServiceServer) mustEmbedUnimplementedCancellationRiskServiceServer() {
}

// RegisterCancellationRiskServiceServer registers srv with the gRPC server.
func RegisterCancellationRiskServiceServer(s grpclib.ServiceRegistrar, srv CancellationRiskServiceServer) {
	s.RegisterService(&cancellationRiskServiceDesc, srv)
}

var cancellationRiskServiceDesc = grpclib.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CancellationRiskServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "AssessBooking", Handler: assessBookingHandler},
		{MethodName: "ListWatchlist", Handler: listWatchlistHandler},
	},
	Streams:  []grpclib.StreamDesc{},
	Metadata: "staybook/risk/v1/risk.proto",
}

func assessBookingHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
	req := new(AssessBookingRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CancellationRiskServiceServer).AssessBooking(ctx, req)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/AssessBooking"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CancellationRiskServiceServer).AssessBooking(ctx, req.(*AssessBookingRequest))
	}
	return interceptor(ctx, req, info, handler)
}

func listWatchlistHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
	req := new(ListWatchlistRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CancellationRiskServiceServer).ListWatchlist(ctx, req)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/ListWatchlist"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CancellationRiskServiceServer).ListWatchlist(ctx, req.(*ListWatchlistRequest))
	}
	return interceptor(ctx, req, info, handler)
}

// AssessBookingRequest represents the proto AssessBookingRequest message.
type AssessBookingRequest struct {
	FreeCancellationDeadline *timestamppb.Timestamp `json:"free_cancellation_deadline,omitempty"`
	DepositType              string                 `json:"deposit_type"`
	BookingReference         string                 `json:"booking_reference,omitempty"`
	Adr                      float64                `json:"adr"`
	LeadTime                 int32                  `json:"lead_time"`
	StayLength               int32                  `json:"stay_length"`
	ArrivalMonth             int32                  `json:"arrival_month"`
	TotalGuests              int32                  `json:"total_guests"`
	RequiredParkingSpaces    int32                  `json:"required_parking_spaces"`
	PreviousCancellations    int32                  `json:"previous_cancellations"`
	TotalSpecialRequests     int32                  `json:"total_special_requests"`
	IsRepeatedGuest          bool                   `json:"is_repeated_guest"`
}

// RecommendationMsg represents the proto Recommendation message.
type RecommendationMsg struct {
	Action string `json:"action"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// AssessBookingResponse represents the proto AssessBookingResponse message.
type AssessBookingResponse struct {
	Recommendation     *RecommendationMsg     `json:"recommendation"`
	AssessedAt         *timestamppb.Timestamp `json:"assessed_at"`
	ID                 string                 `json:"id"`
	ProbabilityDisplay string                 `json:"probability_display"`
	Tier               string                 `json:"tier"`
	TierLabel          string                 `json:"tier_label"`
	Probability        float64                `json:"probability"`
	Watchlisted        bool                   `json:"watchlisted"`
}

// ListWatchlistRequest represents the proto ListWatchlistRequest message.
type ListWatchlistRequest struct {
	Limit  int32 `json:"limit"`
	Offset int32 `json:"offset"`
}

// WatchlistEntryMsg represents the proto WatchlistEntry message.
type WatchlistEntryMsg struct {
	ReminderAt       *timestamppb.Timestamp `json:"reminder_at,omitempty"`
	CreatedAt        *timestamppb.Timestamp `json:"created_at"`
	ID               string                 `json:"id"`
	BookingReference string                 `json:"booking_reference"`
	Tier             string                 `json:"tier"`
	Action           string                 `json:"action"`
	Probability      float64                `json:"probability"`
}

// ListWatchlistResponse represents the proto ListWatchlistResponse message.
type ListWatchlistResponse struct {
	Entries []*WatchlistEntryMsg `json:"entries"`
}
