package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/staybook/cancellation-risk/internal/domain/model"
	"github.com/staybook/cancellation-risk/internal/domain/valueobject"
)

// WatchlistRepository implements port.WatchlistRepository using PostgreSQL.
type WatchlistRepository struct {
	pool *pgxpool.Pool
}

// NewWatchlistRepository creates a new PostgreSQL-backed watchlist repository.
func NewWatchlistRepository(pool *pgxpool.Pool) *WatchlistRepository {
	return &WatchlistRepository{pool: pool}
}

// Upsert stores the entry. A booking reassessed later keeps its original id
// and takes the latest probability, tier and reminder.
func (r *WatchlistRepository) Upsert(ctx context.Context, entry *model.WatchlistEntry) error {
	query := `
		INSERT INTO watchlist_entries (
			id, booking_reference, probability, tier, action, reminder_at, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (booking_reference) DO UPDATE SET
			probability = EXCLUDED.probability,
			tier = EXCLUDED.tier,
			action = EXCLUDED.action,
			reminder_at = EXCLUDED.reminder_at,
			created_at = EXCLUDED.created_at
	`

	_, err := r.pool.Exec(ctx, query,
		entry.ID(),
		entry.BookingReference(),
		entry.Probability(),
		entry.Tier().String(),
		entry.Action(),
		entry.ReminderAt(),
		entry.CreatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert watchlist entry: %w", err)
	}
	return nil
}

// List returns entries newest first.
func (r *WatchlistRepository) List(ctx context.Context, limit, offset int) ([]*model.WatchlistEntry, error) {
	query := `
		SELECT id, booking_reference, probability, tier, action, reminder_at, created_at
		FROM watchlist_entries
		ORDER BY created_at DESC, booking_reference
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query watchlist: %w", err)
	}
	defer rows.Close()

	var entries []*model.WatchlistEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate watchlist: %w", err)
	}

	return entries, nil
}

// FindByReference returns the entry for a booking, or nil when none exists.
func (r *WatchlistRepository) FindByReference(ctx context.Context, bookingReference string) (*model.WatchlistEntry, error) {
	query := `
		SELECT id, booking_reference, probability, tier, action, reminder_at, created_at
		FROM watchlist_entries
		WHERE booking_reference = $1
	`

	entry, err := scanEntry(r.pool.QueryRow(ctx, query, bookingReference))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return entry, err
}

func scanEntry(row pgx.Row) (*model.WatchlistEntry, error) {
	var (
		id               uuid.UUID
		bookingReference string
		probability      float64
		tierStr          string
		action           string
		reminderAt       *time.Time
		createdAt        time.Time
	)

	if err := row.Scan(&id, &bookingReference, &probability, &tierStr, &action, &reminderAt, &createdAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan watchlist entry: %w", err)
	}

	tier, err := valueobject.RiskTierFromString(tierStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse tier: %w", err)
	}

	return model.ReconstructWatchlistEntry(id, bookingReference, probability, tier, action, reminderAt, createdAt.UTC()), nil
}
