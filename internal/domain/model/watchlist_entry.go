package model

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/staybook/cancellation-risk/internal/domain/valueobject"
)

// ReminderLeadTime is how long before the free-cancellation deadline the
// reminder for a watched booking is due.
const ReminderLeadTime = 14 * 24 * time.Hour

// WatchlistEntry is a follow-up record for a MEDIUM or HIGH risk booking.
type WatchlistEntry struct {
	createdAt        time.Time
	reminderAt       *time.Time
	tier             valueobject.RiskTier
	bookingReference string
	action           string
	probability      float64
	id               uuid.UUID
}

// NewWatchlistEntry creates an entry from an assessment. The deadline is the
// booking's free-cancellation deadline and may be nil.
func NewWatchlistEntry(a *RiskAssessment, deadline *time.Time) (*WatchlistEntry, error) {
	if a == nil {
		return nil, errors.New("assessment is required")
	}
	if a.BookingReference() == "" {
		return nil, errors.New("booking reference is required")
	}
	if !a.Tier().RequiresFollowUp() {
		return nil, errors.New("only medium and high risk bookings are watchlisted")
	}

	var reminderAt *time.Time
	if deadline != nil {
		r := deadline.UTC().Add(-ReminderLeadTime)
		reminderAt = &r
	}

	return &WatchlistEntry{
		id:               uuid.New(),
		bookingReference: a.BookingReference(),
		probability:      a.Probability(),
		tier:             a.Tier(),
		action:           a.Recommendation().Action,
		reminderAt:       reminderAt,
		createdAt:        a.AssessedAt(),
	}, nil
}

// ReconstructWatchlistEntry rebuilds an entry from persisted data (no validation).
func ReconstructWatchlistEntry(
	id uuid.UUID,
	bookingReference string,
	probability float64,
	tier valueobject.RiskTier,
	action string,
	reminderAt *time.Time,
	createdAt time.Time,
) *WatchlistEntry {
	return &WatchlistEntry{
		id:               id,
		bookingReference: bookingReference,
		probability:      probability,
		tier:             tier,
		action:           action,
		reminderAt:       reminderAt,
		createdAt:        createdAt,
	}
}

func (e *WatchlistEntry) ID() uuid.UUID              { return e.id }
func (e *WatchlistEntry) BookingReference() string   { return e.bookingReference }
func (e *WatchlistEntry) Probability() float64       { return e.probability }
func (e *WatchlistEntry) Tier() valueobject.RiskTier { return e.tier }
func (e *WatchlistEntry) Action() string             { return e.action }
func (e *WatchlistEntry) ReminderAt() *time.Time     { return e.reminderAt }
func (e *WatchlistEntry) CreatedAt() time.Time       { return e.createdAt }
