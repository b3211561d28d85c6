package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/staybook/cancellation-risk/internal/application/dto"
	"github.com/staybook/cancellation-risk/internal/application/usecase"
	"github.com/staybook/cancellation-risk/internal/domain/model"
	"github.com/staybook/cancellation-risk/internal/domain/service"
	"github.com/staybook/cancellation-risk/internal/infrastructure/messaging"
	"github.com/staybook/cancellation-risk/internal/infrastructure/telemetry"
)

func newAssessCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Score one booking",
		Long:  "Assess prints the cancellation risk tier, the probability and the recommended action for a booking.",
		Args:  cobra.NoArgs,
		RunE:  runAssess,
	}

	flags := cmd.Flags()
	flags.Int("lead-time", 90, "Days between booking and arrival (0-400)")
	flags.Int("stay-length", 3, "Nights of stay (1-30)")
	flags.Int("arrival-month", 7, "Arrival month (1-12)")
	flags.String("adr", "100.0", "Average price per night (0-5000)")
	flags.Int("guests", 2, "Total number of guests (1-20)")
	flags.Int("parking-spaces", 0, "Required car parking spaces (0-2)")
	flags.Bool("repeated-guest", false, "Guest has stayed before")
	flags.Int("previous-cancellations", 0, "Bookings the guest cancelled before (0-26)")
	flags.String("deposit-type", "No Deposit", `Deposit type: "No Deposit", "Non Refund" or "Refundable"`)
	flags.Int("special-requests", 1, "Number of special requests (0-5)")
	flags.BoolP("verbose", "v", false, "Print the encoded feature vector")
	flags.String("output", "text", "Output format: text or json")

	return cmd
}

func runAssess(cmd *cobra.Command, _ []string) error {
	req, err := assessRequest(cmd)
	if err != nil {
		return err
	}
	verbose, _ := cmd.Flags().GetBool("verbose")
	output, _ := cmd.Flags().GetString("output")
	if output != "text" && output != "json" {
		return fmt.Errorf("unknown output format %q", output)
	}

	logger := commandLogger(cmd)
	loaded, err := loadClassifier(cmd, logger)
	if err != nil {
		return err
	}

	recorder, err := telemetry.NewAssessmentMetrics(noop.NewMeterProvider().Meter(telemetry.MeterName))
	if err != nil {
		return err
	}
	uc := usecase.NewAssessBooking(
		loaded.Table,
		service.NewRiskClassifier(loaded.Classifier),
		nil,
		messaging.NewLogPublisher(logger),
		recorder,
		logger,
	)

	resp, err := uc.Execute(cmd.Context(), req)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if output == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	fmt.Fprintf(out, "Risk:           %s (%s)\n", resp.TierLabel, resp.Tier)
	fmt.Fprintf(out, "Probability:    %s\n", resp.ProbabilityDisplay)
	fmt.Fprintf(out, "Recommendation: %s\n", resp.Recommendation.Title)
	fmt.Fprintf(out, "                %s\n", resp.Recommendation.Detail)

	if verbose {
		features, err := model.NewBookingFeatures(req.Input())
		if err != nil {
			return err
		}
		fmt.Fprintln(out)
		printVector(out, loaded.Table, loaded.Table.Assemble(features))
	}
	return nil
}

func assessRequest(cmd *cobra.Command) (dto.AssessBookingRequest, error) {
	flags := cmd.Flags()
	adrStr, _ := flags.GetString("adr")
	adr, err := decimal.NewFromString(adrStr)
	if err != nil {
		return dto.AssessBookingRequest{}, fmt.Errorf("invalid --adr %q: %w", adrStr, err)
	}

	req := dto.AssessBookingRequest{ADR: adr}
	req.LeadTime, _ = flags.GetInt("lead-time")
	req.StayLength, _ = flags.GetInt("stay-length")
	req.ArrivalMonth, _ = flags.GetInt("arrival-month")
	req.TotalGuests, _ = flags.GetInt("guests")
	req.RequiredParkingSpaces, _ = flags.GetInt("parking-spaces")
	req.IsRepeatedGuest, _ = flags.GetBool("repeated-guest")
	req.PreviousCancellations, _ = flags.GetInt("previous-cancellations")
	req.DepositType, _ = flags.GetString("deposit-type")
	req.TotalSpecialRequests, _ = flags.GetInt("special-requests")
	return req, nil
}

func printVector(out io.Writer, table *service.EncodingTable, vector []float64) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "COLUMN\tVALUE")
	for i, col := range table.Columns() {
		fmt.Fprintf(tw, "%s\t%g\n", col, vector[i])
	}
	_ = tw.Flush()
}
