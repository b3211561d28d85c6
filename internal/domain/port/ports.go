package port

import (
	"context"

	"github.com/staybook/cancellation-risk/internal/domain/model"
	"github.com/staybook/cancellation-risk/internal/domain/valueobject"
	"github.com/staybook/cancellation-risk/internal/pkg/events"
)

// Classifier is the read-only handle to a trained binary classifier.
type Classifier interface {
	// PredictProba returns the class probabilities for one feature vector,
	// ordered [negative, positive].
	PredictProba(ctx context.Context, vector []float64) ([]float64, error)
}

// WatchlistRepository defines the persistence port for watchlist entries.
type WatchlistRepository interface {
	// Upsert inserts the entry or replaces the one with the same booking reference.
	Upsert(ctx context.Context, entry *model.WatchlistEntry) error

	// List returns entries newest first.
	List(ctx context.Context, limit, offset int) ([]*model.WatchlistEntry, error)
}

// EventPublisher defines the port for publishing domain events.
type EventPublisher interface {
	Publish(ctx context.Context, evts ...events.DomainEvent) error
}

// AssessmentRecorder records assessment outcomes as metrics.
type AssessmentRecorder interface {
	RecordAssessment(ctx context.Context, tier valueobject.RiskTier, probability float64)
	RecordFailure(ctx context.Context)
}
