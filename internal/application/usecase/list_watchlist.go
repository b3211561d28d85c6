package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/staybook/cancellation-risk/internal/application/dto"
	"github.com/staybook/cancellation-risk/internal/domain/port"
)

const (
	DefaultWatchlistLimit = 50
	MaxWatchlistLimit     = 200
)

// ErrWatchlistDisabled is returned when no watchlist repository is configured.
var ErrWatchlistDisabled = errors.New("watchlist is not configured")

// ListWatchlist pages through watchlisted bookings, newest first.
type ListWatchlist struct {
	repo port.WatchlistRepository
}

// NewListWatchlist creates a new ListWatchlist use case. repo may be nil.
func NewListWatchlist(repo port.WatchlistRepository) *ListWatchlist {
	return &ListWatchlist{repo: repo}
}

// Execute returns one page of entries. A non-positive limit selects the
// default; larger limits are capped.
func (uc *ListWatchlist) Execute(ctx context.Context, limit, offset int) (dto.ListWatchlistResponse, error) {
	if uc.repo == nil {
		return dto.ListWatchlistResponse{}, ErrWatchlistDisabled
	}
	if limit <= 0 {
		limit = DefaultWatchlistLimit
	}
	if limit > MaxWatchlistLimit {
		limit = MaxWatchlistLimit
	}
	if offset < 0 {
		offset = 0
	}

	entries, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return dto.ListWatchlistResponse{}, fmt.Errorf("failed to list watchlist: %w", err)
	}

	resp := dto.ListWatchlistResponse{
		Entries: make([]dto.WatchlistEntryResponse, 0, len(entries)),
		Limit:   limit,
		Offset:  offset,
	}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, dto.FromWatchlistEntry(e))
	}
	return resp, nil
}
