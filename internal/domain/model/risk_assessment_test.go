package model_test

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staybook/cancellation-risk/internal/domain/event"
	"github.com/staybook/cancellation-risk/internal/domain/model"
	"github.com/staybook/cancellation-risk/internal/domain/valueobject"
)

func TestNewRiskAssessment_Tiers(t *testing.T) {
	tests := []struct {
		probability float64
		want        valueobject.RiskTier
		events      int
	}{
		{0.0, valueobject.RiskTierLow, 1},
		{0.40, valueobject.RiskTierLow, 1},
		{0.41, valueobject.RiskTierMedium, 1},
		{0.70, valueobject.RiskTierMedium, 1},
		{0.7001, valueobject.RiskTierHigh, 2},
		{1.0, valueobject.RiskTierHigh, 2},
	}

	for _, tt := range tests {
		a, err := model.NewRiskAssessment(tt.probability, "")
		require.NoError(t, err)

		assert.Equal(t, tt.want, a.Tier(), "probability %v", tt.probability)
		assert.Len(t, a.Events(), tt.events, "probability %v", tt.probability)
		assert.NotEqual(t, uuid.Nil, a.ID())
		assert.False(t, a.AssessedAt().IsZero())
	}
}

func TestNewRiskAssessment_RejectsInvalidProbability(t *testing.T) {
	for _, p := range []float64{-0.01, 1.01, math.NaN(), math.Inf(1)} {
		_, err := model.NewRiskAssessment(p, "")
		assert.Error(t, err, "probability %v", p)
	}
}

func TestNewRiskAssessment_Events(t *testing.T) {
	a, err := model.NewRiskAssessment(0.91, "BK-1001")
	require.NoError(t, err)

	evts := a.ClearEvents()
	require.Len(t, evts, 2)
	assert.Empty(t, a.Events())

	completed, ok := evts[0].(event.AssessmentCompleted)
	require.True(t, ok)
	assert.Equal(t, event.EventTypeAssessmentCompleted, completed.EventType())
	assert.Equal(t, a.ID(), completed.AggregateID())
	assert.Equal(t, "BK-1001", completed.BookingReference)
	assert.Equal(t, "HIGH", completed.Tier)
	assert.Equal(t, "contact_guest", completed.Action)

	high, ok := evts[1].(event.HighRiskDetected)
	require.True(t, ok)
	assert.Equal(t, event.EventTypeHighRiskDetected, high.EventType())
	assert.InDelta(t, 0.91, high.Probability, 1e-9)
}

func TestRiskAssessment_HighRiskAlert(t *testing.T) {
	high, err := model.NewRiskAssessment(0.91, "BK-1001")
	require.NoError(t, err)

	alert, ok := high.HighRiskAlert()
	require.True(t, ok)
	assert.Equal(t, high.ID(), alert.AggregateID())
	assert.Equal(t, "BK-1001", alert.BookingReference)
	assert.Len(t, high.Events(), 2)

	high.ClearEvents()
	_, ok = high.HighRiskAlert()
	assert.False(t, ok)

	medium, err := model.NewRiskAssessment(0.55, "BK-1002")
	require.NoError(t, err)
	_, ok = medium.HighRiskAlert()
	assert.False(t, ok)
}

func TestRiskAssessment_ProbabilityDisplay(t *testing.T) {
	a, err := model.NewRiskAssessment(0.42173, "")
	require.NoError(t, err)
	assert.Equal(t, "42.17%", a.ProbabilityDisplay())
}

func TestNewWatchlistEntry(t *testing.T) {
	deadline := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	t.Run("medium with deadline", func(t *testing.T) {
		a, err := model.NewRiskAssessment(0.55, "BK-2002")
		require.NoError(t, err)

		e, err := model.NewWatchlistEntry(a, &deadline)
		require.NoError(t, err)
		assert.Equal(t, "BK-2002", e.BookingReference())
		assert.Equal(t, "monitor", e.Action())
		assert.Equal(t, valueobject.RiskTierMedium, e.Tier())
		require.NotNil(t, e.ReminderAt())
		assert.Equal(t, time.Date(2026, 8, 16, 12, 0, 0, 0, time.UTC), *e.ReminderAt())
	})

	t.Run("high without deadline", func(t *testing.T) {
		a, err := model.NewRiskAssessment(0.8, "BK-3003")
		require.NoError(t, err)

		e, err := model.NewWatchlistEntry(a, nil)
		require.NoError(t, err)
		assert.Equal(t, "contact_guest", e.Action())
		assert.Nil(t, e.ReminderAt())
	})

	t.Run("low is rejected", func(t *testing.T) {
		a, err := model.NewRiskAssessment(0.1, "BK-4004")
		require.NoError(t, err)

		_, err = model.NewWatchlistEntry(a, nil)
		assert.Error(t, err)
	})

	t.Run("missing reference", func(t *testing.T) {
		a, err := model.NewRiskAssessment(0.9, "")
		require.NoError(t, err)

		_, err = model.NewWatchlistEntry(a, nil)
		assert.EqualError(t, err, "booking reference is required")
	})
}
