package service

import (
	"fmt"
	"strings"

	"github.com/staybook/cancellation-risk/internal/domain/model"
	"github.com/staybook/cancellation-risk/internal/domain/valueobject"
)

// BindingKind says where the value of a schema column comes from.
type BindingKind int

const (
	// BindingAbsent columns are not produced by the encoding and are always 0.
	BindingAbsent BindingKind = iota
	// BindingNumeric columns carry a numeric booking field.
	BindingNumeric
	// BindingIndicator columns are 1 when a categorical field equals Level.
	BindingIndicator
)

func (k BindingKind) String() string {
	switch k {
	case BindingNumeric:
		return "numeric"
	case BindingIndicator:
		return "indicator"
	default:
		return "absent"
	}
}

// Binding ties one schema column to its source.
type Binding struct {
	Column string
	Field  string
	Level  string
	Kind   BindingKind
}

var numericFields = map[string]func(model.BookingFeatures) float64{
	model.ColumnLeadTime:              func(f model.BookingFeatures) float64 { return float64(f.LeadTime) },
	model.ColumnStayLength:            func(f model.BookingFeatures) float64 { return float64(f.StayLength) },
	model.ColumnArrivalMonth:          func(f model.BookingFeatures) float64 { return float64(f.ArrivalMonth) },
	model.ColumnADR:                   func(f model.BookingFeatures) float64 { return f.ADR.InexactFloat64() },
	model.ColumnTotalGuests:           func(f model.BookingFeatures) float64 { return float64(f.TotalGuests) },
	model.ColumnRequiredParkingSpaces: func(f model.BookingFeatures) float64 { return float64(f.RequiredParkingSpaces) },
	model.ColumnIsRepeatedGuest: func(f model.BookingFeatures) float64 {
		if f.IsRepeatedGuest {
			return 1
		}
		return 0
	},
	model.ColumnPreviousCancellations: func(f model.BookingFeatures) float64 { return float64(f.PreviousCancellations) },
	model.ColumnTotalSpecialRequests:  func(f model.BookingFeatures) float64 { return float64(f.TotalSpecialRequests) },
	model.ColumnBookingChanges:        func(f model.BookingFeatures) float64 { return float64(f.BookingChanges) },
}

var categoricalFields = map[string]func(model.BookingFeatures) string{
	model.FieldDepositType:   func(f model.BookingFeatures) string { return f.DepositType.String() },
	model.FieldCountry:       func(f model.BookingFeatures) string { return f.Country },
	model.FieldMarketSegment: func(f model.BookingFeatures) string { return f.MarketSegment },
	model.FieldCustomerType:  func(f model.BookingFeatures) string { return f.CustomerType },
	model.FieldHotel:         func(f model.BookingFeatures) string { return f.Hotel },
}

// baselineLevels are the dropped first levels of the categorical fields whose
// level set is closed. Their columns never carry a 1, even if a schema lists
// them.
var baselineLevels = map[string]string{
	model.FieldDepositType: valueobject.DepositTypes()[0].String(),
}

// CategoricalFields lists the categorical booking fields in a stable order.
func CategoricalFields() []string {
	return []string{
		model.FieldDepositType,
		model.FieldCountry,
		model.FieldMarketSegment,
		model.FieldCustomerType,
		model.FieldHotel,
	}
}

// EncodingTable is the one-hot encoding of BookingFeatures aligned to a
// classifier's column schema. It is built once and is safe for concurrent use.
//
// A categorical level without an indicator column in the schema encodes as
// all zeros and is therefore indistinguishable from the dropped baseline
// level. A schema column for the baseline level itself binds as absent.
type EncodingTable struct {
	columns    []string
	bindings   []Binding
	indicators map[string][]string
}

// NewEncodingTable binds every column of the schema, in order.
func NewEncodingTable(columns []string) (*EncodingTable, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("column schema is empty")
	}

	t := &EncodingTable{
		columns:    make([]string, len(columns)),
		bindings:   make([]Binding, len(columns)),
		indicators: make(map[string][]string),
	}
	copy(t.columns, columns)

	seen := make(map[string]struct{}, len(columns))
	for i, col := range columns {
		if _, dup := seen[col]; dup {
			return nil, fmt.Errorf("duplicate column %q in schema", col)
		}
		seen[col] = struct{}{}

		b := bind(col)
		if b.Kind == BindingIndicator {
			t.indicators[b.Field] = append(t.indicators[b.Field], b.Level)
		}
		t.bindings[i] = b
	}

	return t, nil
}

func bind(col string) Binding {
	if _, ok := numericFields[col]; ok {
		return Binding{Column: col, Field: col, Kind: BindingNumeric}
	}
	for _, field := range CategoricalFields() {
		level, ok := strings.CutPrefix(col, field+"_")
		if !ok || level == "" {
			continue
		}
		if baselineLevels[field] == level {
			return Binding{Column: col, Field: field, Level: level, Kind: BindingAbsent}
		}
		return Binding{Column: col, Field: field, Level: level, Kind: BindingIndicator}
	}
	return Binding{Column: col, Kind: BindingAbsent}
}

// Assemble encodes the features as one vector in schema order.
func (t *EncodingTable) Assemble(f model.BookingFeatures) []float64 {
	vector := make([]float64, len(t.bindings))
	for i, b := range t.bindings {
		switch b.Kind {
		case BindingNumeric:
			vector[i] = numericFields[b.Field](f)
		case BindingIndicator:
			if categoricalFields[b.Field](f) == b.Level {
				vector[i] = 1
			}
		}
	}
	return vector
}

// Columns returns a copy of the schema column names.
func (t *EncodingTable) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// Bindings returns a copy of the per-column bindings.
func (t *EncodingTable) Bindings() []Binding {
	out := make([]Binding, len(t.bindings))
	copy(out, t.bindings)
	return out
}

// Len returns the vector length.
func (t *EncodingTable) Len() int {
	return len(t.bindings)
}

// Indicators returns the levels of a categorical field that have their own
// column, in schema order.
func (t *EncodingTable) Indicators(field string) []string {
	levels := t.indicators[field]
	out := make([]string, len(levels))
	copy(out, levels)
	return out
}

// HasIndicator reports whether level of field has its own column. A level
// without one falls back to the baseline encoding.
func (t *EncodingTable) HasIndicator(field, level string) bool {
	for _, l := range t.indicators[field] {
		if l == level {
			return true
		}
	}
	return false
}
