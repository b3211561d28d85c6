package ml

import (
	"context"
	"fmt"
	"math"
)

// LogisticRegression is a fitted binary logistic model.
type LogisticRegression struct {
	coefficients []float64
	intercept    float64
}

// NewLogisticRegression validates the coefficient count against n.
func NewLogisticRegression(intercept float64, coefficients []float64, n int) (*LogisticRegression, error) {
	if n <= 0 {
		return nil, fmt.Errorf("n_features must be positive, got %d", n)
	}
	if len(coefficients) != n {
		return nil, fmt.Errorf("model has %d coefficients for %d features", len(coefficients), n)
	}
	coef := make([]float64, n)
	copy(coef, coefficients)
	return &LogisticRegression{coefficients: coef, intercept: intercept}, nil
}

func (m *LogisticRegression) PredictProba(ctx context.Context, vector []float64) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := checkFeatures(vector, len(m.coefficients)); err != nil {
		return nil, err
	}

	z := m.intercept
	for i, w := range m.coefficients {
		z += w * vector[i]
	}
	p := 1 / (1 + math.Exp(-z))
	return []float64{1 - p, p}, nil
}

func (m *LogisticRegression) NumFeatures() int { return len(m.coefficients) }
func (m *LogisticRegression) Type() string     { return ModelTypeLogisticRegression }
