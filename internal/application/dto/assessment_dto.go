package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/staybook/cancellation-risk/internal/domain/model"
)

// AssessBookingRequest is the input DTO for the AssessBooking use case.
type AssessBookingRequest struct {
	FreeCancellationDeadline *time.Time      `json:"free_cancellation_deadline,omitempty"`
	ADR                      decimal.Decimal `json:"adr"`
	DepositType              string          `json:"deposit_type"`
	BookingReference         string          `json:"booking_reference,omitempty"`
	LeadTime                 int             `json:"lead_time"`
	StayLength               int             `json:"stay_length"`
	ArrivalMonth             int             `json:"arrival_month"`
	TotalGuests              int             `json:"total_guests"`
	RequiredParkingSpaces    int             `json:"required_parking_spaces"`
	PreviousCancellations    int             `json:"previous_cancellations"`
	TotalSpecialRequests     int             `json:"total_special_requests"`
	IsRepeatedGuest          bool            `json:"is_repeated_guest"`
}

// Input returns the raw booking input carried by the request.
func (r AssessBookingRequest) Input() model.BookingInput {
	return model.BookingInput{
		LeadTime:              r.LeadTime,
		StayLength:            r.StayLength,
		ArrivalMonth:          r.ArrivalMonth,
		ADR:                   r.ADR,
		TotalGuests:           r.TotalGuests,
		RequiredParkingSpaces: r.RequiredParkingSpaces,
		IsRepeatedGuest:       r.IsRepeatedGuest,
		PreviousCancellations: r.PreviousCancellations,
		DepositType:           r.DepositType,
		TotalSpecialRequests:  r.TotalSpecialRequests,
	}
}

// RecommendationDTO is the canned advice for a tier.
type RecommendationDTO struct {
	Action string `json:"action"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// AssessmentResponse is the output DTO returned after an assessment.
type AssessmentResponse struct {
	AssessedAt         time.Time         `json:"assessed_at"`
	Recommendation     RecommendationDTO `json:"recommendation"`
	ProbabilityDisplay string            `json:"probability_display"`
	Tier               string            `json:"tier"`
	TierLabel          string            `json:"tier_label"`
	Probability        float64           `json:"probability"`
	ID                 uuid.UUID         `json:"id"`
	Watchlisted        bool              `json:"watchlisted"`
}

// FromAssessment maps a domain assessment to the response DTO.
func FromAssessment(a *model.RiskAssessment, watchlisted bool) AssessmentResponse {
	rec := a.Recommendation()
	return AssessmentResponse{
		ID:                 a.ID(),
		Probability:        a.Probability(),
		ProbabilityDisplay: a.ProbabilityDisplay(),
		Tier:               a.Tier().String(),
		TierLabel:          a.Tier().Label(),
		Recommendation: RecommendationDTO{
			Action: rec.Action,
			Title:  rec.Title,
			Detail: rec.Detail,
		},
		AssessedAt:  a.AssessedAt(),
		Watchlisted: watchlisted,
	}
}
