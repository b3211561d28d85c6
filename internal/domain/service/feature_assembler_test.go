package service_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staybook/cancellation-risk/internal/domain/model"
	"github.com/staybook/cancellation-risk/internal/domain/service"
	"github.com/staybook/cancellation-risk/internal/domain/valueobject"
)

// trainingColumns mirrors the schema shipped with the model: numeric columns,
// then drop-first indicators for every categorical field.
var trainingColumns = []string{
	"lead_time",
	"stay_length",
	"arrival_month",
	"adr",
	"total_guests",
	"required_car_parking_spaces",
	"is_repeated_guest",
	"previous_cancellations",
	"total_of_special_requests",
	"booking_changes",
	"deposit_type_Non Refund",
	"deposit_type_Refundable",
	"country_ESP",
	"country_FRA",
	"country_PRT",
	"market_segment_Direct",
	"market_segment_Online TA",
	"customer_type_Transient",
	"customer_type_Transient-Party",
	"hotel_Resort Hotel",
	"days_in_waiting_list",
}

func scenarioOneFeatures(t *testing.T) model.BookingFeatures {
	t.Helper()
	f, err := model.NewBookingFeatures(model.BookingInput{
		LeadTime:              90,
		StayLength:            3,
		ArrivalMonth:          7,
		ADR:                   decimal.NewFromFloat(100.0),
		TotalGuests:           2,
		RequiredParkingSpaces: 0,
		IsRepeatedGuest:       false,
		PreviousCancellations: 0,
		DepositType:           "No Deposit",
		TotalSpecialRequests:  1,
	})
	require.NoError(t, err)
	return f
}

func newTable(t *testing.T) *service.EncodingTable {
	t.Helper()
	table, err := service.NewEncodingTable(trainingColumns)
	require.NoError(t, err)
	return table
}

func TestEncodingTable_ScenarioOne(t *testing.T) {
	table := newTable(t)

	got := table.Assemble(scenarioOneFeatures(t))

	want := []float64{
		90, 3, 7, 100, 2, 0, 0, 0, 1, 0, // numeric
		0, 0, // deposit: No Deposit is the baseline
		0, 0, 1, // country PRT
		0, 1, // Online TA
		1, 0, // Transient
		1, // Resort Hotel
		0, // not produced by the encoding
	}
	assert.Equal(t, want, got)
	assert.Len(t, got, len(trainingColumns))
}

func TestEncodingTable_ScenarioTwoDiffersByOneIndicator(t *testing.T) {
	table := newTable(t)

	base := scenarioOneFeatures(t)
	nonRefund := base
	nonRefund.DepositType = mustDeposit(t, "Non Refund")

	a := table.Assemble(base)
	b := table.Assemble(nonRefund)
	require.Len(t, b, len(a))

	var diff []string
	for i := range a {
		if a[i] != b[i] {
			diff = append(diff, trainingColumns[i])
		}
	}
	assert.Equal(t, []string{"deposit_type_Non Refund"}, diff)
}

func TestEncodingTable_Deterministic(t *testing.T) {
	table := newTable(t)
	f := scenarioOneFeatures(t)

	assert.Equal(t, table.Assemble(f), table.Assemble(f))
}

func TestEncodingTable_UnseenLevelFallsBackToBaseline(t *testing.T) {
	table := newTable(t)

	f := scenarioOneFeatures(t)
	f.Country = "JPN"

	got := table.Assemble(f)
	for i, b := range table.Bindings() {
		if b.Field == model.FieldCountry {
			assert.Zero(t, got[i], "column %s", b.Column)
		}
	}
	assert.False(t, table.HasIndicator(model.FieldCountry, "JPN"))
	assert.True(t, table.HasIndicator(model.FieldCountry, "PRT"))
}

func TestEncodingTable_Indicators(t *testing.T) {
	table := newTable(t)

	assert.Equal(t, []string{"Non Refund", "Refundable"}, table.Indicators(model.FieldDepositType))
	assert.Equal(t, []string{"Resort Hotel"}, table.Indicators(model.FieldHotel))
	assert.Empty(t, table.Indicators("meal"))
}

func TestEncodingTable_Bindings(t *testing.T) {
	table := newTable(t)
	bindings := table.Bindings()

	assert.Equal(t, service.BindingNumeric, bindings[0].Kind)
	assert.Equal(t, service.Binding{
		Column: "market_segment_Online TA",
		Field:  model.FieldMarketSegment,
		Level:  "Online TA",
		Kind:   service.BindingIndicator,
	}, bindings[16])
	assert.Equal(t, service.BindingAbsent, bindings[20].Kind)
	assert.Equal(t, "absent", bindings[20].Kind.String())
	assert.Equal(t, len(trainingColumns), table.Len())
	assert.Equal(t, trainingColumns, table.Columns())
}

func TestEncodingTable_SchemaErrors(t *testing.T) {
	tests := []struct {
		name    string
		columns []string
		wantErr string
	}{
		{"empty", nil, "column schema is empty"},
		{"duplicate", []string{"adr", "lead_time", "adr"}, `duplicate column "adr" in schema`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.NewEncodingTable(tt.columns)
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestEncodingTable_OrderFollowsSchema(t *testing.T) {
	table, err := service.NewEncodingTable([]string{"hotel_Resort Hotel", "adr", "lead_time"})
	require.NoError(t, err)

	assert.Equal(t, []float64{1, 100, 90}, table.Assemble(scenarioOneFeatures(t)))
}

func TestEncodingTable_BaselineColumnStaysZero(t *testing.T) {
	table, err := service.NewEncodingTable([]string{
		"lead_time",
		"deposit_type_No Deposit",
		"deposit_type_Non Refund",
	})
	require.NoError(t, err)

	assert.Equal(t, []float64{90, 0, 0}, table.Assemble(scenarioOneFeatures(t)))

	b := table.Bindings()[1]
	assert.Equal(t, service.BindingAbsent, b.Kind)
	assert.Equal(t, model.FieldDepositType, b.Field)
	assert.Equal(t, "No Deposit", b.Level)
	assert.False(t, table.HasIndicator(model.FieldDepositType, "No Deposit"))
	assert.Equal(t, []string{"Non Refund"}, table.Indicators(model.FieldDepositType))

	f := scenarioOneFeatures(t)
	f.DepositType = valueobject.DepositNonRefund
	assert.Equal(t, []float64{90, 0, 1}, table.Assemble(f))
}
