package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staybook/cancellation-risk/internal/application/dto"
	"github.com/staybook/cancellation-risk/internal/application/usecase"
	"github.com/staybook/cancellation-risk/internal/domain/event"
	"github.com/staybook/cancellation-risk/internal/domain/model"
	"github.com/staybook/cancellation-risk/internal/domain/port"
	"github.com/staybook/cancellation-risk/internal/domain/service"
	"github.com/staybook/cancellation-risk/internal/domain/valueobject"
	"github.com/staybook/cancellation-risk/internal/pkg/events"
)

var schema = []string{
	"lead_time", "stay_length", "arrival_month", "adr", "total_guests",
	"required_car_parking_spaces", "is_repeated_guest", "previous_cancellations",
	"total_of_special_requests", "booking_changes",
	"deposit_type_Non Refund", "deposit_type_Refundable",
	"country_PRT", "market_segment_Online TA", "customer_type_Transient", "hotel_Resort Hotel",
}

type fixture struct {
	classifier *mockClassifier
	watchlist  *mockWatchlistRepository
	publisher  *mockEventPublisher
	recorder   *mockRecorder
	uc         *usecase.AssessBooking
}

func newFixture(t *testing.T, p1 float64, withWatchlist bool) *fixture {
	t.Helper()
	table, err := service.NewEncodingTable(schema)
	require.NoError(t, err)

	f := &fixture{
		classifier: &mockClassifier{predictFunc: func(context.Context, []float64) ([]float64, error) {
			return []float64{1 - p1, p1}, nil
		}},
		watchlist: &mockWatchlistRepository{},
		publisher: &mockEventPublisher{},
		recorder:  &mockRecorder{},
	}

	var repo port.WatchlistRepository
	if withWatchlist {
		repo = f.watchlist
	}
	f.uc = usecase.NewAssessBooking(table, service.NewRiskClassifier(f.classifier), repo, f.publisher, f.recorder, testLogger())
	return f
}

func validRequest() dto.AssessBookingRequest {
	return dto.AssessBookingRequest{
		LeadTime:              90,
		StayLength:            3,
		ArrivalMonth:          7,
		ADR:                   decimal.NewFromInt(100),
		TotalGuests:           2,
		DepositType:           "No Deposit",
		TotalSpecialRequests:  1,
		RequiredParkingSpaces: 0,
	}
}

func TestAssessBooking_Execute(t *testing.T) {
	t.Run("low risk booking", func(t *testing.T) {
		f := newFixture(t, 0.1234, true)

		resp, err := f.uc.Execute(context.Background(), validRequest())
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, resp.ID)
		assert.Equal(t, "LOW", resp.Tier)
		assert.Equal(t, "Low Risk", resp.TierLabel)
		assert.Equal(t, "12.34%", resp.ProbabilityDisplay)
		assert.Equal(t, "No Special Action Needed", resp.Recommendation.Title)
		assert.False(t, resp.Watchlisted)
		assert.Empty(t, f.watchlist.upserted)

		require.Len(t, f.classifier.vectors, 1)
		assert.Equal(t, []float64{90, 3, 7, 100, 2, 0, 0, 0, 1, 0, 0, 0, 1, 1, 1, 1}, f.classifier.vectors[0])

		require.Len(t, f.publisher.published, 1)
		assert.Equal(t, event.EventTypeAssessmentCompleted, f.publisher.published[0].EventType())
		assert.Equal(t, []valueobject.RiskTier{valueobject.RiskTierLow}, f.recorder.tiers)
	})

	t.Run("high risk booking with reference is watchlisted", func(t *testing.T) {
		f := newFixture(t, 0.93, true)
		deadline := time.Date(2026, 11, 20, 0, 0, 0, 0, time.UTC)

		req := validRequest()
		req.BookingReference = "BK-7788"
		req.FreeCancellationDeadline = &deadline

		resp, err := f.uc.Execute(context.Background(), req)
		require.NoError(t, err)

		assert.Equal(t, "HIGH", resp.Tier)
		assert.Equal(t, "contact_guest", resp.Recommendation.Action)
		assert.True(t, resp.Watchlisted)

		require.Len(t, f.watchlist.upserted, 1)
		entry := f.watchlist.upserted[0]
		assert.Equal(t, "BK-7788", entry.BookingReference())
		require.NotNil(t, entry.ReminderAt())
		assert.Equal(t, time.Date(2026, 11, 6, 0, 0, 0, 0, time.UTC), *entry.ReminderAt())

		require.Len(t, f.publisher.published, 2)
		assert.Equal(t, event.EventTypeHighRiskDetected, f.publisher.published[1].EventType())
	})

	t.Run("medium risk without reference is not watchlisted", func(t *testing.T) {
		f := newFixture(t, 0.5, true)

		resp, err := f.uc.Execute(context.Background(), validRequest())
		require.NoError(t, err)
		assert.Equal(t, "MEDIUM", resp.Tier)
		assert.False(t, resp.Watchlisted)
		assert.Empty(t, f.watchlist.upserted)
	})

	t.Run("watchlist disabled", func(t *testing.T) {
		f := newFixture(t, 0.8, false)

		req := validRequest()
		req.BookingReference = "BK-1"
		resp, err := f.uc.Execute(context.Background(), req)
		require.NoError(t, err)
		assert.False(t, resp.Watchlisted)
	})

	t.Run("watchlist failure does not fail the assessment", func(t *testing.T) {
		f := newFixture(t, 0.8, true)
		f.watchlist.upsertFunc = func(context.Context, *model.WatchlistEntry) error {
			return errors.New("connection refused")
		}

		req := validRequest()
		req.BookingReference = "BK-2"
		resp, err := f.uc.Execute(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "HIGH", resp.Tier)
		assert.False(t, resp.Watchlisted)
	})

	t.Run("publish failure does not fail the assessment", func(t *testing.T) {
		f := newFixture(t, 0.3, true)
		f.publisher.publishFunc = func(context.Context, ...events.DomainEvent) error {
			return errors.New("broker unavailable")
		}

		resp, err := f.uc.Execute(context.Background(), validRequest())
		require.NoError(t, err)
		assert.Equal(t, "LOW", resp.Tier)
	})

	t.Run("invalid booking", func(t *testing.T) {
		f := newFixture(t, 0.3, true)

		req := validRequest()
		req.ArrivalMonth = 0
		_, err := f.uc.Execute(context.Background(), req)
		require.Error(t, err)
		assert.True(t, usecase.IsInvalidBooking(err))
		assert.Empty(t, f.classifier.vectors)
		assert.Empty(t, f.publisher.published)
	})

	t.Run("prediction failure", func(t *testing.T) {
		f := newFixture(t, 0.3, true)
		f.classifier.predictFunc = func(context.Context, []float64) ([]float64, error) {
			return nil, errors.New("model server returned 503")
		}

		_, err := f.uc.Execute(context.Background(), validRequest())
		require.Error(t, err)

		var pe *model.PredictionError
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, "An error occurred during prediction: model server returned 503", err.Error())
		assert.Equal(t, 1, f.recorder.failures)
		assert.Empty(t, f.publisher.published)
	})
}

func TestAssessBooking_LogsHighRiskAlert(t *testing.T) {
	tests := []struct {
		name     string
		p1       float64
		wantWarn bool
	}{
		{name: "high risk is flagged", p1: 0.93, wantWarn: true},
		{name: "medium risk is not", p1: 0.55, wantWarn: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := service.NewEncodingTable(schema)
			require.NoError(t, err)

			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))
			classifier := &mockClassifier{predictFunc: func(context.Context, []float64) ([]float64, error) {
				return []float64{1 - tt.p1, tt.p1}, nil
			}}
			uc := usecase.NewAssessBooking(table, service.NewRiskClassifier(classifier), nil,
				&mockEventPublisher{}, &mockRecorder{}, logger)

			req := validRequest()
			req.BookingReference = "BK-77"
			_, err = uc.Execute(context.Background(), req)
			require.NoError(t, err)

			if tt.wantWarn {
				assert.Contains(t, buf.String(), "high cancellation risk detected")
				assert.Contains(t, buf.String(), "booking_reference=BK-77")
			} else {
				assert.NotContains(t, buf.String(), "high cancellation risk detected")
			}
		})
	}
}
