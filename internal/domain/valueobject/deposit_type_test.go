package valueobject_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staybook/cancellation-risk/internal/domain/valueobject"
)

func TestDepositTypeFromString(t *testing.T) {
	for _, level := range []string{"No Deposit", "Non Refund", "Refundable"} {
		t.Run(level, func(t *testing.T) {
			d, err := valueobject.DepositTypeFromString(level)
			require.NoError(t, err)
			assert.Equal(t, level, d.String())
		})
	}

	t.Run("unknown level is rejected", func(t *testing.T) {
		_, err := valueobject.DepositTypeFromString("non refund")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid deposit type")
	})
}

func TestDepositTypes_Order(t *testing.T) {
	levels := valueobject.DepositTypes()
	require.Len(t, levels, 3)
	assert.Equal(t, valueobject.DepositNoDeposit, levels[0])
}
