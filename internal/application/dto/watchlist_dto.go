package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/staybook/cancellation-risk/internal/domain/model"
)

// WatchlistEntryResponse is one watchlist entry.
type WatchlistEntryResponse struct {
	CreatedAt        time.Time  `json:"created_at"`
	ReminderAt       *time.Time `json:"reminder_at,omitempty"`
	BookingReference string     `json:"booking_reference"`
	Tier             string     `json:"tier"`
	Action           string     `json:"action"`
	Probability      float64    `json:"probability"`
	ID               uuid.UUID  `json:"id"`
}

// ListWatchlistResponse is a page of watchlist entries.
type ListWatchlistResponse struct {
	Entries []WatchlistEntryResponse `json:"entries"`
	Limit   int                      `json:"limit"`
	Offset  int                      `json:"offset"`
}

// FromWatchlistEntry maps a domain entry to its DTO.
func FromWatchlistEntry(e *model.WatchlistEntry) WatchlistEntryResponse {
	return WatchlistEntryResponse{
		ID:               e.ID(),
		BookingReference: e.BookingReference(),
		Probability:      e.Probability(),
		Tier:             e.Tier().String(),
		Action:           e.Action(),
		ReminderAt:       e.ReminderAt(),
		CreatedAt:        e.CreatedAt(),
	}
}
