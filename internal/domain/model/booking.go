package model

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/staybook/cancellation-risk/internal/domain/valueobject"
)

// Column names of the numeric booking features, as the classifier was trained on them.
const (
	ColumnLeadTime              = "lead_time"
	ColumnStayLength            = "stay_length"
	ColumnArrivalMonth          = "arrival_month"
	ColumnADR                   = "adr"
	ColumnTotalGuests           = "total_guests"
	ColumnRequiredParkingSpaces = "required_car_parking_spaces"
	ColumnIsRepeatedGuest       = "is_repeated_guest"
	ColumnPreviousCancellations = "previous_cancellations"
	ColumnTotalSpecialRequests  = "total_of_special_requests"
	ColumnBookingChanges        = "booking_changes"
)

// Categorical feature names. Their indicator columns are named "<field>_<level>".
const (
	FieldDepositType   = "deposit_type"
	FieldCountry       = "country"
	FieldMarketSegment = "market_segment"
	FieldCustomerType  = "customer_type"
	FieldHotel         = "hotel"
)

// Values used for the features that are not collected from the user.
const (
	DefaultBookingChanges = 0
	DefaultCountry        = "PRT"
	DefaultMarketSegment  = "Online TA"
	DefaultCustomerType   = "Transient"
	DefaultHotel          = "Resort Hotel"
)

var maxADR = decimal.NewFromInt(5000)

// BookingInput holds the ten values collected from the user.
type BookingInput struct {
	ADR                   decimal.Decimal
	DepositType           string
	LeadTime              int
	StayLength            int
	ArrivalMonth          int
	TotalGuests           int
	RequiredParkingSpaces int
	PreviousCancellations int
	TotalSpecialRequests  int
	IsRepeatedGuest       bool
}

// BookingFeatures is the flat record handed to the feature assembler: the
// user inputs plus the fixed defaults.
type BookingFeatures struct {
	ADR                   decimal.Decimal
	DepositType           valueobject.DepositType
	Country               string
	MarketSegment         string
	CustomerType          string
	Hotel                 string
	LeadTime              int
	StayLength            int
	ArrivalMonth          int
	TotalGuests           int
	RequiredParkingSpaces int
	PreviousCancellations int
	TotalSpecialRequests  int
	BookingChanges        int
	IsRepeatedGuest       bool
}

// NewBookingFeatures validates the user input against its documented ranges
// and fills in the fixed defaults.
func NewBookingFeatures(in BookingInput) (BookingFeatures, error) {
	checks := []struct {
		name     string
		value    int
		min, max int
	}{
		{"lead_time", in.LeadTime, 0, 400},
		{"stay_length", in.StayLength, 1, 30},
		{"arrival_month", in.ArrivalMonth, 1, 12},
		{"total_guests", in.TotalGuests, 1, 20},
		{"required_parking_spaces", in.RequiredParkingSpaces, 0, 2},
		{"previous_cancellations", in.PreviousCancellations, 0, 26},
		{"total_special_requests", in.TotalSpecialRequests, 0, 5},
	}
	for _, c := range checks {
		if c.value < c.min || c.value > c.max {
			return BookingFeatures{}, fmt.Errorf("%w: %s must be between %d and %d, got %d",
				ErrInvalidBooking, c.name, c.min, c.max, c.value)
		}
	}

	if in.ADR.IsNegative() || in.ADR.GreaterThan(maxADR) {
		return BookingFeatures{}, fmt.Errorf("%w: adr must be between 0 and %s, got %s",
			ErrInvalidBooking, maxADR, in.ADR)
	}

	deposit, err := valueobject.DepositTypeFromString(in.DepositType)
	if err != nil {
		return BookingFeatures{}, fmt.Errorf("%w: %v", ErrInvalidBooking, err)
	}

	return BookingFeatures{
		LeadTime:              in.LeadTime,
		StayLength:            in.StayLength,
		ArrivalMonth:          in.ArrivalMonth,
		ADR:                   in.ADR,
		TotalGuests:           in.TotalGuests,
		RequiredParkingSpaces: in.RequiredParkingSpaces,
		IsRepeatedGuest:       in.IsRepeatedGuest,
		PreviousCancellations: in.PreviousCancellations,
		DepositType:           deposit,
		TotalSpecialRequests:  in.TotalSpecialRequests,
		BookingChanges:        DefaultBookingChanges,
		Country:               DefaultCountry,
		MarketSegment:         DefaultMarketSegment,
		CustomerType:          DefaultCustomerType,
		Hotel:                 DefaultHotel,
	}, nil
}
