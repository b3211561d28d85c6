package ml

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/staybook/cancellation-risk/internal/domain/port"
	"github.com/staybook/cancellation-risk/internal/domain/service"
	"github.com/staybook/cancellation-risk/internal/infrastructure/config"
)

// Loaded is the classifier handle and the encoding table built from its
// column schema. Both are read-only and shared by every request.
type Loaded struct {
	Table      *service.EncodingTable
	Classifier port.Classifier
	Backend    string
	// Ready reports whether the classifier can still serve predictions.
	Ready func(ctx context.Context) error
}

// Load reads the column schema and opens the configured classifier backend.
// Missing artifacts and an unreachable model server wrap
// model.ErrStartupUnavailable.
func Load(ctx context.Context, cfg config.ClassifierConfig, logger *slog.Logger) (*Loaded, error) {
	columns, err := LoadSchema(cfg.ColumnsPath)
	if err != nil {
		return nil, err
	}

	table, err := service.NewEncodingTable(columns)
	if err != nil {
		return nil, fmt.Errorf("invalid column schema %s: %w", cfg.ColumnsPath, err)
	}

	switch cfg.Backend {
	case config.BackendHTTP:
		c := NewHTTPClassifier(cfg.URL, table.Columns())
		if err := c.Ping(ctx); err != nil {
			return nil, err
		}
		logger.Info("remote classifier ready", "url", cfg.URL, "columns", table.Len())
		return &Loaded{Table: table, Classifier: c, Backend: cfg.Backend, Ready: c.Ping}, nil

	case config.BackendArtifact, "":
		m, err := LoadModel(cfg.ModelPath)
		if err != nil {
			return nil, err
		}
		if m.NumFeatures() != table.Len() {
			logger.Warn("model and column schema disagree on feature count; predictions will fail",
				"model_features", m.NumFeatures(),
				"schema_columns", table.Len(),
			)
		}
		logger.Info("classifier loaded",
			"path", cfg.ModelPath,
			"model_type", m.Type(),
			"columns", table.Len(),
		)
		return &Loaded{
			Table:      table,
			Classifier: m,
			Backend:    config.BackendArtifact,
			Ready:      func(context.Context) error { return nil },
		}, nil

	default:
		return nil, fmt.Errorf("unknown classifier backend %q", cfg.Backend)
	}
}
