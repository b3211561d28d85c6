package ml

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/staybook/cancellation-risk/internal/domain/model"
)

const (
	ModelTypeLogisticRegression = "logistic_regression"
	ModelTypeRandomForest       = "random_forest"
)

// Model is a classifier evaluated in process from an exported artifact.
type Model interface {
	PredictProba(ctx context.Context, vector []float64) ([]float64, error)
	NumFeatures() int
	Type() string
}

type artifact struct {
	ModelType    string     `json:"model_type"`
	Coefficients []float64  `json:"coefficients"`
	Trees        []treeJSON `json:"trees"`
	Intercept    float64    `json:"intercept"`
	NumFeatures  int        `json:"n_features"`
}

// LoadSchema reads the column schema artifact: a JSON array of column names.
// A missing file wraps model.ErrStartupUnavailable.
func LoadSchema(path string) ([]string, error) {
	data, err := readArtifact(path)
	if err != nil {
		return nil, err
	}

	var columns []string
	if err := json.Unmarshal(data, &columns); err != nil {
		return nil, fmt.Errorf("failed to decode column schema %s: %w", path, err)
	}
	return columns, nil
}

// LoadModel reads the classifier artifact. A missing file wraps
// model.ErrStartupUnavailable.
func LoadModel(path string) (Model, error) {
	data, err := readArtifact(path)
	if err != nil {
		return nil, err
	}

	var a artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("failed to decode model %s: %w", path, err)
	}

	switch a.ModelType {
	case ModelTypeLogisticRegression:
		return NewLogisticRegression(a.Intercept, a.Coefficients, a.NumFeatures)
	case ModelTypeRandomForest:
		return newRandomForest(a.Trees, a.NumFeatures)
	default:
		return nil, fmt.Errorf("unsupported model type %q", a.ModelType)
	}
}

func readArtifact(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s not found", model.ErrStartupUnavailable, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

func checkFeatures(vector []float64, n int) error {
	if len(vector) != n {
		return fmt.Errorf("X has %d features, but model is expecting %d features", len(vector), n)
	}
	return nil
}
