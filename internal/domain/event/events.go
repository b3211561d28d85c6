package event

import (
	"time"

	"github.com/google/uuid"

	"github.com/staybook/cancellation-risk/internal/pkg/events"
)

const (
	// EventTypeAssessmentCompleted is emitted for every finished risk assessment.
	EventTypeAssessmentCompleted = "booking_risk.assessment.completed"

	// EventTypeHighRiskDetected is emitted when a booking is assessed as HIGH risk.
	EventTypeHighRiskDetected = "booking_risk.high_risk.detected"

	// AggregateType names the aggregate both events belong to.
	AggregateType = "risk_assessment"
)

// AssessmentCompleted is published when a booking has been classified.
type AssessmentCompleted struct {
	events.BaseEvent
	BookingReference string    `json:"booking_reference,omitempty"`
	Tier             string    `json:"tier"`
	Action           string    `json:"action"`
	Probability      float64   `json:"probability"`
	AssessedAt       time.Time `json:"assessed_at"`
}

// NewAssessmentCompleted builds the completion event for an assessment.
func NewAssessmentCompleted(assessmentID uuid.UUID, bookingReference string, probability float64, tier, action string, assessedAt time.Time) AssessmentCompleted {
	return AssessmentCompleted{
		BaseEvent:        events.NewBaseEvent(EventTypeAssessmentCompleted, assessmentID, AggregateType),
		BookingReference: bookingReference,
		Probability:      probability,
		Tier:             tier,
		Action:           action,
		AssessedAt:       assessedAt,
	}
}

// HighRiskDetected is published for HIGH tier bookings so staff can reach out
// to the guest.
type HighRiskDetected struct {
	events.BaseEvent
	BookingReference string    `json:"booking_reference,omitempty"`
	Probability      float64   `json:"probability"`
	DetectedAt       time.Time `json:"detected_at"`
}

// NewHighRiskDetected builds the high risk event for an assessment.
func NewHighRiskDetected(assessmentID uuid.UUID, bookingReference string, probability float64, detectedAt time.Time) HighRiskDetected {
	return HighRiskDetected{
		BaseEvent:        events.NewBaseEvent(EventTypeHighRiskDetected, assessmentID, AggregateType),
		BookingReference: bookingReference,
		Probability:      probability,
		DetectedAt:       detectedAt,
	}
}
