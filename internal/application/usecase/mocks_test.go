package usecase_test

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/staybook/cancellation-risk/internal/domain/model"
	"github.com/staybook/cancellation-risk/internal/domain/valueobject"
	"github.com/staybook/cancellation-risk/internal/pkg/events"
)

// --- Mock implementations ---

type mockClassifier struct {
	predictFunc func(ctx context.Context, vector []float64) ([]float64, error)
	vectors     [][]float64
}

func (m *mockClassifier) PredictProba(ctx context.Context, vector []float64) ([]float64, error) {
	m.vectors = append(m.vectors, vector)
	return m.predictFunc(ctx, vector)
}

type mockWatchlistRepository struct {
	upserted   []*model.WatchlistEntry
	upsertFunc func(ctx context.Context, entry *model.WatchlistEntry) error
	listFunc   func(ctx context.Context, limit, offset int) ([]*model.WatchlistEntry, error)
}

func (m *mockWatchlistRepository) Upsert(ctx context.Context, entry *model.WatchlistEntry) error {
	if m.upsertFunc != nil {
		return m.upsertFunc(ctx, entry)
	}
	m.upserted = append(m.upserted, entry)
	return nil
}

func (m *mockWatchlistRepository) List(ctx context.Context, limit, offset int) ([]*model.WatchlistEntry, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, limit, offset)
	}
	return nil, nil
}

type mockEventPublisher struct {
	published   []events.DomainEvent
	publishFunc func(ctx context.Context, evts ...events.DomainEvent) error
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...events.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.published = append(m.published, evts...)
	return nil
}

type mockRecorder struct {
	mu       sync.Mutex
	tiers    []valueobject.RiskTier
	failures int
}

func (m *mockRecorder) RecordAssessment(_ context.Context, tier valueobject.RiskTier, _ float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tiers = append(m.tiers, tier)
}

func (m *mockRecorder) RecordFailure(context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures++
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
