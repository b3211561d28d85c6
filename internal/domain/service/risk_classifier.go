package service

import (
	"context"
	"fmt"
	"math"

	"github.com/staybook/cancellation-risk/internal/domain/model"
	"github.com/staybook/cancellation-risk/internal/domain/port"
)

// RiskClassifier runs the classifier on an assembled vector and maps the
// positive-class probability onto a risk tier.
type RiskClassifier struct {
	classifier port.Classifier
}

// NewRiskClassifier wraps a loaded classifier handle.
func NewRiskClassifier(classifier port.Classifier) *RiskClassifier {
	return &RiskClassifier{classifier: classifier}
}

// Assess classifies one vector. Every failure, including a panic inside the
// classifier, is returned as a *model.PredictionError.
func (r *RiskClassifier) Assess(ctx context.Context, vector []float64, bookingReference string) (assessment *model.RiskAssessment, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			assessment = nil
			err = &model.PredictionError{Err: fmt.Errorf("%v", rec)}
		}
	}()

	probabilities, err := r.classifier.PredictProba(ctx, vector)
	if err != nil {
		return nil, &model.PredictionError{Err: err}
	}
	if len(probabilities) != 2 {
		return nil, &model.PredictionError{
			Err: fmt.Errorf("expected 2 class probabilities, got %d", len(probabilities)),
		}
	}

	p := probabilities[1]
	if math.IsNaN(p) || p < 0 || p > 1 {
		return nil, &model.PredictionError{
			Err: fmt.Errorf("positive class probability %v is outside [0, 1]", p),
		}
	}

	assessment, err = model.NewRiskAssessment(p, bookingReference)
	if err != nil {
		return nil, &model.PredictionError{Err: err}
	}
	return assessment, nil
}
