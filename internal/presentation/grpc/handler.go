package grpc

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/staybook/cancellation-risk/internal/application/dto"
	"github.com/staybook/cancellation-risk/internal/application/usecase"
	"github.com/staybook/cancellation-risk/internal/domain/model"
)

// BookingAssessor runs the AssessBooking use case.
type BookingAssessor interface {
	Execute(ctx context.Context, req dto.AssessBookingRequest) (dto.AssessmentResponse, error)
}

// WatchlistLister runs the ListWatchlist use case.
type WatchlistLister interface {
	Execute(ctx context.Context, limit, offset int) (dto.ListWatchlistResponse, error)
}

// Compile-time assertion that RiskServiceHandler implements CancellationRiskServiceServer.
var _ CancellationRiskServiceServer = (*RiskServiceHandler)(nil)

// RiskServiceHandler implements the gRPC CancellationRiskServiceServer interface.
type RiskServiceHandler struct {
	UnimplementedCancellationRiskServiceServer
	assessBooking BookingAssessor
	listWatchlist WatchlistLister
	logger        *slog.Logger
}

// NewRiskServiceHandler creates a new gRPC handler.
func NewRiskServiceHandler(assessBooking BookingAssessor, listWatchlist WatchlistLister, logger *slog.Logger) *RiskServiceHandler {
	return &RiskServiceHandler{
		assessBooking: assessBooking,
		listWatchlist: listWatchlist,
		logger:        logger,
	}
}

// AssessBooking handles a booking assessment request.
func (h *RiskServiceHandler) AssessBooking(ctx context.Context, req *AssessBookingRequest) (*AssessBookingResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	in := dto.AssessBookingRequest{
		LeadTime:              int(req.LeadTime),
		StayLength:            int(req.StayLength),
		ArrivalMonth:          int(req.ArrivalMonth),
		ADR:                   decimal.NewFromFloat(req.Adr),
		TotalGuests:           int(req.TotalGuests),
		RequiredParkingSpaces: int(req.RequiredParkingSpaces),
		IsRepeatedGuest:       req.IsRepeatedGuest,
		PreviousCancellations: int(req.PreviousCancellations),
		DepositType:           req.DepositType,
		TotalSpecialRequests:  int(req.TotalSpecialRequests),
		BookingReference:      req.BookingReference,
	}
	if req.FreeCancellationDeadline != nil {
		if err := req.FreeCancellationDeadline.CheckValid(); err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "invalid free_cancellation_deadline: %v", err)
		}
		deadline := req.FreeCancellationDeadline.AsTime()
		in.FreeCancellationDeadline = &deadline
	}

	resp, err := h.assessBooking.Execute(ctx, in)
	if err != nil {
		return nil, toStatus(err)
	}

	return &AssessBookingResponse{
		ID:                 resp.ID.String(),
		Probability:        resp.Probability,
		ProbabilityDisplay: resp.ProbabilityDisplay,
		Tier:               resp.Tier,
		TierLabel:          resp.TierLabel,
		Recommendation: &RecommendationMsg{
			Action: resp.Recommendation.Action,
			Title:  resp.Recommendation.Title,
			Detail: resp.Recommendation.Detail,
		},
		AssessedAt:  timestamppb.New(resp.AssessedAt),
		Watchlisted: resp.Watchlisted,
	}, nil
}

// ListWatchlist handles a watchlist page request.
func (h *RiskServiceHandler) ListWatchlist(ctx context.Context, req *ListWatchlistRequest) (*ListWatchlistResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	resp, err := h.listWatchlist.Execute(ctx, int(req.Limit), int(req.Offset))
	if err != nil {
		return nil, toStatus(err)
	}

	out := &ListWatchlistResponse{Entries: make([]*WatchlistEntryMsg, 0, len(resp.Entries))}
	for _, e := range resp.Entries {
		msg := &WatchlistEntryMsg{
			ID:               e.ID.String(),
			BookingReference: e.BookingReference,
			Probability:      e.Probability,
			Tier:             e.Tier,
			Action:           e.Action,
			CreatedAt:        timestamppb.New(e.CreatedAt),
		}
		if e.ReminderAt != nil {
			msg.ReminderAt = timestamppb.New(*e.ReminderAt)
		}
		out.Entries = append(out.Entries, msg)
	}
	return out, nil
}

func toStatus(err error) error {
	var pe *model.PredictionError
	switch {
	case errors.Is(err, model.ErrInvalidBooking):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.As(err, &pe):
		return status.Error(codes.Internal, pe.Error())
	case errors.Is(err, usecase.ErrWatchlistDisabled):
		return status.Error(codes.Unavailable, err.Error())
	default:
		return status.Error(codes.Internal, "internal error")
	}
}
