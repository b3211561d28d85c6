package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/staybook/cancellation-risk/internal/domain/model"
	"github.com/staybook/cancellation-risk/internal/domain/service"
	"github.com/staybook/cancellation-risk/internal/domain/valueobject"
)

// knownLevels are the categorical values the service can produce. Any of
// them without an indicator column silently encodes as the baseline.
func knownLevels() map[string][]string {
	deposits := make([]string, 0, 3)
	for _, d := range valueobject.DepositTypes() {
		deposits = append(deposits, d.String())
	}
	return map[string][]string{
		model.FieldDepositType:   deposits,
		model.FieldCountry:       {model.DefaultCountry},
		model.FieldMarketSegment: {model.DefaultMarketSegment},
		model.FieldCustomerType:  {model.DefaultCustomerType},
		model.FieldHotel:         {model.DefaultHotel},
	}
}

func newColumnsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "columns",
		Short: "Show how booking fields map onto the column schema",
		Long: "Columns prints every schema column with its source, then lists the categorical " +
			"levels that have no indicator column and therefore fall back to the baseline encoding.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			columns, _ := cmd.Flags().GetString("columns")
			return runColumns(cmd, columns)
		},
	}
}

func runColumns(cmd *cobra.Command, path string) error {
	table, err := loadTable(path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tCOLUMN\tKIND\tSOURCE")
	for i, b := range table.Bindings() {
		source := b.Field
		switch b.Kind {
		case service.BindingIndicator:
			source = fmt.Sprintf("%s == %q", b.Field, b.Level)
		case service.BindingAbsent:
			source = "always 0"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i, b.Column, b.Kind, source)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fallbacks := baselineFallbacks(table)
	fmt.Fprintln(out)
	if len(fallbacks) == 0 {
		fmt.Fprintln(out, "Every known categorical level has its own indicator column.")
		return nil
	}
	fmt.Fprintln(out, "Levels encoded as the baseline (no indicator column):")
	for _, f := range fallbacks {
		fmt.Fprintf(out, "  %s\n", f)
	}
	return nil
}

// baselineFallbacks lists "field=level" for every known level that has no
// indicator column, in field order.
func baselineFallbacks(table *service.EncodingTable) []string {
	levels := knownLevels()
	var out []string
	for _, field := range service.CategoricalFields() {
		var missing []string
		for _, level := range levels[field] {
			if !table.HasIndicator(field, level) {
				missing = append(missing, level)
			}
		}
		if len(missing) > 0 {
			out = append(out, field+": "+strings.Join(missing, ", "))
		}
	}
	return out
}
