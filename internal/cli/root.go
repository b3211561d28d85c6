// Package cli implements the riskctl operator commands.
package cli

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/staybook/cancellation-risk/internal/domain/service"
	"github.com/staybook/cancellation-risk/internal/infrastructure/config"
	"github.com/staybook/cancellation-risk/internal/infrastructure/ml"
	"github.com/staybook/cancellation-risk/internal/pkg/observability"
)

// NewRootCommand builds the riskctl command tree. Flags default to the same
// environment variables the service reads.
func NewRootCommand() *cobra.Command {
	cfg := config.Load()

	root := &cobra.Command{
		Use:           "riskctl",
		Short:         "Booking cancellation risk tools",
		Long:          "riskctl scores hotel bookings against the cancellation classifier and inspects its feature encoding.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.String("model", cfg.Classifier.ModelPath, "Path to the classifier artifact (MODEL_PATH)")
	flags.String("columns", cfg.Classifier.ColumnsPath, "Path to the column schema artifact (COLUMNS_PATH)")
	flags.String("backend", cfg.Classifier.Backend, "Classifier backend: artifact or http (CLASSIFIER_BACKEND)")
	flags.String("classifier-url", cfg.Classifier.URL, "Model server URL for the http backend (CLASSIFIER_URL)")
	flags.String("log-level", "warn", "Log level written to stderr")

	root.AddCommand(newAssessCommand())
	root.AddCommand(newColumnsCommand())

	return root
}

// Execute runs riskctl with the process arguments.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

func classifierConfig(cmd *cobra.Command) config.ClassifierConfig {
	flags := cmd.Flags()
	model, _ := flags.GetString("model")
	columns, _ := flags.GetString("columns")
	backend, _ := flags.GetString("backend")
	url, _ := flags.GetString("classifier-url")
	return config.ClassifierConfig{
		ModelPath:   model,
		ColumnsPath: columns,
		Backend:     backend,
		URL:         url,
	}
}

func commandLogger(cmd *cobra.Command) *slog.Logger {
	level, _ := cmd.Flags().GetString("log-level")
	return observability.NewLogger(observability.LogConfig{
		Level:  level,
		Format: "text",
		Output: cmd.ErrOrStderr(),
	})
}

func loadClassifier(cmd *cobra.Command, logger *slog.Logger) (*ml.Loaded, error) {
	return ml.Load(cmd.Context(), classifierConfig(cmd), logger)
}

func loadTable(columnsPath string) (*service.EncodingTable, error) {
	columns, err := ml.LoadSchema(columnsPath)
	if err != nil {
		return nil, err
	}
	return service.NewEncodingTable(columns)
}
