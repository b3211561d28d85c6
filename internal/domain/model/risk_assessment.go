package model

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/staybook/cancellation-risk/internal/domain/event"
	"github.com/staybook/cancellation-risk/internal/domain/valueobject"
	"github.com/staybook/cancellation-risk/internal/pkg/events"
)

// RiskAssessment is the result of classifying one booking. It is never
// persisted; id and assessedAt exist for correlation in logs and events.
type RiskAssessment struct {
	events.EventCollector
	assessedAt       time.Time
	tier             valueobject.RiskTier
	bookingReference string
	probability      float64
	id               uuid.UUID
}

// NewRiskAssessment derives the tier for a positive-class probability and
// records the resulting domain events.
func NewRiskAssessment(probability float64, bookingReference string) (*RiskAssessment, error) {
	if math.IsNaN(probability) || probability < 0 || probability > 1 {
		return nil, fmt.Errorf("probability must be within [0, 1], got %v", probability)
	}

	a := &RiskAssessment{
		id:               uuid.New(),
		probability:      probability,
		tier:             valueobject.RiskTierFromProbability(probability),
		bookingReference: bookingReference,
		assessedAt:       time.Now().UTC(),
	}

	a.Record(event.NewAssessmentCompleted(
		a.id, a.bookingReference, a.probability,
		a.tier.String(), a.tier.Recommendation().Action, a.assessedAt,
	))
	if a.tier.Equal(valueobject.RiskTierHigh) {
		a.Record(event.NewHighRiskDetected(a.id, a.bookingReference, a.probability, a.assessedAt))
	}

	return a, nil
}

func (a *RiskAssessment) ID() uuid.UUID                              { return a.id }
func (a *RiskAssessment) Probability() float64                       { return a.probability }
func (a *RiskAssessment) Tier() valueobject.RiskTier                 { return a.tier }
func (a *RiskAssessment) BookingReference() string                   { return a.bookingReference }
func (a *RiskAssessment) AssessedAt() time.Time                      { return a.assessedAt }
func (a *RiskAssessment) Recommendation() valueobject.Recommendation { return a.tier.Recommendation() }

// HighRiskAlert returns the pending HighRiskDetected event, if one was raised
// and not yet drained.
func (a *RiskAssessment) HighRiskAlert() (event.HighRiskDetected, bool) {
	alerts := events.Raised[event.HighRiskDetected](&a.EventCollector)
	if len(alerts) == 0 {
		return event.HighRiskDetected{}, false
	}
	return alerts[0], true
}

// ProbabilityDisplay renders the probability as a percentage with two decimals.
func (a *RiskAssessment) ProbabilityDisplay() string {
	return fmt.Sprintf("%.2f%%", a.probability*100)
}
