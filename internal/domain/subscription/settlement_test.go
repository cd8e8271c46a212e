package subscription

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettle_FullWalletCoverage(t *testing.T) {
	s, err := Settle(decimal.NewFromInt(100), decimal.NewFromInt(250))
	require.NoError(t, err)

	assert.True(t, s.WalletAmount.Equal(decimal.NewFromInt(100)))
	assert.True(t, s.PayableAmount.IsZero())
	assert.True(t, s.NewBalance.Equal(decimal.NewFromInt(150)))
	assert.Equal(t, PaymentStatusPaid, s.PaymentStatus)
}

func TestSettle_ExactBalance(t *testing.T) {
	s, err := Settle(decimal.NewFromInt(100), decimal.NewFromInt(100))
	require.NoError(t, err)

	assert.True(t, s.WalletAmount.Equal(decimal.NewFromInt(100)))
	assert.True(t, s.PayableAmount.IsZero())
	assert.True(t, s.NewBalance.IsZero())
	assert.Equal(t, PaymentStatusPaid, s.PaymentStatus)
}

func TestSettle_PartialCoverage(t *testing.T) {
	s, err := Settle(decimal.NewFromInt(100), decimal.NewFromInt(40))
	require.NoError(t, err)

	assert.True(t, s.WalletAmount.Equal(decimal.NewFromInt(40)))
	assert.True(t, s.PayableAmount.Equal(decimal.NewFromInt(60)))
	assert.True(t, s.NewBalance.IsZero())
	assert.Equal(t, PaymentStatusPending, s.PaymentStatus)
}

func TestSettle_EmptyWallet(t *testing.T) {
	s, err := Settle(decimal.NewFromInt(100), decimal.Zero)
	require.NoError(t, err)

	assert.True(t, s.WalletAmount.IsZero())
	assert.True(t, s.PayableAmount.Equal(decimal.NewFromInt(100)))
	assert.True(t, s.NewBalance.IsZero())
	assert.Equal(t, PaymentStatusPending, s.PaymentStatus)
}

func TestSettle_ZeroTotal(t *testing.T) {
	s, err := Settle(decimal.Zero, decimal.NewFromInt(75))
	require.NoError(t, err)

	assert.True(t, s.WalletAmount.IsZero())
	assert.True(t, s.PayableAmount.IsZero())
	assert.True(t, s.NewBalance.Equal(decimal.NewFromInt(75)))
	assert.Equal(t, PaymentStatusPaid, s.PaymentStatus)
}

func TestSettle_RejectsNegativeInputs(t *testing.T) {
	_, err := Settle(decimal.NewFromInt(-1), decimal.Zero)
	assert.Error(t, err)

	_, err = Settle(decimal.Zero, decimal.NewFromInt(-1))
	assert.Error(t, err)
}

// Conservation invariant: walletAmount + payableAmount == orderTotal and
// newBalance >= 0 for a grid of totals and balances, including fractions.
func TestSettle_Conservation(t *testing.T) {
	values := []string{"0", "0.01", "1", "33.33", "99.99", "100", "250.75", "10000"}

	for _, totalStr := range values {
		for _, balanceStr := range values {
			total := decimal.RequireFromString(totalStr)
			balance := decimal.RequireFromString(balanceStr)

			s, err := Settle(total, balance)
			require.NoError(t, err)

			assert.True(t, s.WalletAmount.Add(s.PayableAmount).Equal(total),
				"conservation for total=%s balance=%s", totalStr, balanceStr)
			assert.False(t, s.NewBalance.IsNegative(),
				"balance for total=%s balance=%s", totalStr, balanceStr)
			assert.False(t, s.WalletAmount.IsNegative())
			assert.False(t, s.PayableAmount.IsNegative())
			assert.True(t, s.NewBalance.Equal(balance.Sub(s.WalletAmount)))
		}
	}
}
