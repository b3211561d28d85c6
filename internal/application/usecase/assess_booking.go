package usecase

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/staybook/cancellation-risk/internal/application/dto"
	"github.com/staybook/cancellation-risk/internal/domain/model"
	"github.com/staybook/cancellation-risk/internal/domain/port"
	"github.com/staybook/cancellation-risk/internal/domain/service"
)

const tracerName = "github.com/staybook/cancellation-risk/internal/application/usecase"

// AssessBooking is the use case for scoring the cancellation risk of a booking.
type AssessBooking struct {
	table      *service.EncodingTable
	classifier *service.RiskClassifier
	watchlist  port.WatchlistRepository
	publisher  port.EventPublisher
	recorder   port.AssessmentRecorder
	logger     *slog.Logger
	tracer     trace.Tracer
}

// NewAssessBooking creates a new AssessBooking use case. watchlist may be nil,
// in which case no booking is watchlisted.
func NewAssessBooking(
	table *service.EncodingTable,
	classifier *service.RiskClassifier,
	watchlist port.WatchlistRepository,
	publisher port.EventPublisher,
	recorder port.AssessmentRecorder,
	logger *slog.Logger,
) *AssessBooking {
	return &AssessBooking{
		table:      table,
		classifier: classifier,
		watchlist:  watchlist,
		publisher:  publisher,
		recorder:   recorder,
		logger:     logger,
		tracer:     otel.Tracer(tracerName),
	}
}

// Execute validates the booking, assembles its feature vector, classifies it
// and returns the tier with its recommendation.
//
// Validation failures wrap model.ErrInvalidBooking. Classification failures
// are returned as *model.PredictionError. Watchlist and event publishing
// failures are logged and never change the result.
func (uc *AssessBooking) Execute(ctx context.Context, req dto.AssessBookingRequest) (dto.AssessmentResponse, error) {
	ctx, span := uc.tracer.Start(ctx, "AssessBooking.Execute")
	defer span.End()

	// 1. Validate the raw input and apply the fixed defaults.
	features, err := model.NewBookingFeatures(req.Input())
	if err != nil {
		span.SetStatus(codes.Error, "invalid booking")
		return dto.AssessmentResponse{}, err
	}

	// 2. Encode against the classifier schema.
	vector := uc.table.Assemble(features)

	// 3. Classify.
	assessment, err := uc.classifier.Assess(ctx, vector, req.BookingReference)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "prediction failed")
		uc.recorder.RecordFailure(ctx)
		uc.logger.Error("prediction failed", "error", err)
		return dto.AssessmentResponse{}, err
	}

	span.SetAttributes(
		attribute.String("assessment.id", assessment.ID().String()),
		attribute.String("assessment.tier", assessment.Tier().String()),
		attribute.Float64("assessment.probability", assessment.Probability()),
	)
	uc.recorder.RecordAssessment(ctx, assessment.Tier(), assessment.Probability())

	// 4. Track follow-up bookings.
	watchlisted := uc.track(ctx, assessment, req)

	if alert, ok := assessment.HighRiskAlert(); ok {
		span.AddEvent(alert.EventType())
		uc.logger.Warn("high cancellation risk detected",
			"assessment_id", assessment.ID(),
			"booking_reference", alert.BookingReference,
			"probability", alert.Probability,
		)
	}

	// 5. Publish domain events.
	if evts := assessment.ClearEvents(); len(evts) > 0 {
		if err := uc.publisher.Publish(ctx, evts...); err != nil {
			uc.logger.Warn("failed to publish assessment events",
				"assessment_id", assessment.ID(),
				"error", err,
			)
		}
	}

	uc.logger.Info("booking assessed",
		"assessment_id", assessment.ID(),
		"tier", assessment.Tier().String(),
		"probability", assessment.Probability(),
		"watchlisted", watchlisted,
	)

	return dto.FromAssessment(assessment, watchlisted), nil
}

func (uc *AssessBooking) track(ctx context.Context, a *model.RiskAssessment, req dto.AssessBookingRequest) bool {
	if uc.watchlist == nil || req.BookingReference == "" || !a.Tier().RequiresFollowUp() {
		return false
	}

	entry, err := model.NewWatchlistEntry(a, req.FreeCancellationDeadline)
	if err != nil {
		uc.logger.Warn("failed to build watchlist entry", "assessment_id", a.ID(), "error", err)
		return false
	}
	if err := uc.watchlist.Upsert(ctx, entry); err != nil {
		uc.logger.Warn("failed to save watchlist entry",
			"assessment_id", a.ID(),
			"booking_reference", req.BookingReference,
			"error", err,
		)
		return false
	}
	return true
}

// IsInvalidBooking reports whether err is an input validation failure.
func IsInvalidBooking(err error) bool {
	return errors.Is(err, model.ErrInvalidBooking)
}
