package valueobject

import "fmt"

// DepositType is the categorical deposit policy of a booking.
type DepositType struct {
	value string
}

var (
	DepositNoDeposit  = DepositType{value: "No Deposit"}
	DepositNonRefund  = DepositType{value: "Non Refund"}
	DepositRefundable = DepositType{value: "Refundable"}
)

// DepositTypes lists the accepted levels in presentation order.
func DepositTypes() []DepositType {
	return []DepositType{DepositNoDeposit, DepositNonRefund, DepositRefundable}
}

// DepositTypeFromString parses one of the accepted deposit levels.
func DepositTypeFromString(s string) (DepositType, error) {
	for _, d := range DepositTypes() {
		if d.value == s {
			return d, nil
		}
	}
	return DepositType{}, fmt.Errorf("invalid deposit type: %q", s)
}

// String returns the level exactly as the classifier was trained on it.
func (d DepositType) String() string {
	return d.value
}

// IsZero returns true if the DepositType has not been set.
func (d DepositType) IsZero() bool {
	return d.value == ""
}
