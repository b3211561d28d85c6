package model

import "errors"

// ErrStartupUnavailable means the classifier or its column schema could not be
// loaded. It is fatal: no input is accepted once it is returned.
var ErrStartupUnavailable = errors.New("classifier unavailable")

// ErrInvalidBooking wraps every booking input validation failure.
var ErrInvalidBooking = errors.New("invalid booking")

// PredictionError is returned when encoding or classification of a booking
// fails. No partial result accompanies it.
type PredictionError struct {
	Err error
}

func (e *PredictionError) Error() string {
	return "An error occurred during prediction: " + e.Err.Error()
}

func (e *PredictionError) Unwrap() error {
	return e.Err
}
