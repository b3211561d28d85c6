package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/staybook/cancellation-risk/internal/domain/valueobject"
)

// MeterName is the instrumentation scope of the assessment metrics.
const MeterName = "github.com/staybook/cancellation-risk"

// AssessmentMetrics implements port.AssessmentRecorder with OpenTelemetry instruments.
type AssessmentMetrics struct {
	assessments metric.Int64Counter
	failures    metric.Int64Counter
	probability metric.Float64Histogram
}

// NewAssessmentMetrics registers the instruments on meter.
func NewAssessmentMetrics(meter metric.Meter) (*AssessmentMetrics, error) {
	assessments, err := meter.Int64Counter("booking_risk_assessments",
		metric.WithDescription("Number of completed booking risk assessments by tier."),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create assessments counter: %w", err)
	}

	failures, err := meter.Int64Counter("booking_risk_prediction_failures",
		metric.WithDescription("Number of assessments that failed during prediction."),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create failures counter: %w", err)
	}

	probability, err := meter.Float64Histogram("booking_risk_probability",
		metric.WithDescription("Distribution of predicted cancellation probabilities."),
		metric.WithExplicitBucketBoundaries(0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create probability histogram: %w", err)
	}

	return &AssessmentMetrics{
		assessments: assessments,
		failures:    failures,
		probability: probability,
	}, nil
}

func (m *AssessmentMetrics) RecordAssessment(ctx context.Context, tier valueobject.RiskTier, probability float64) {
	m.assessments.Add(ctx, 1, metric.WithAttributes(attribute.String("tier", tier.String())))
	m.probability.Record(ctx, probability)
}

func (m *AssessmentMetrics) RecordFailure(ctx context.Context) {
	m.failures.Add(ctx, 1)
}
