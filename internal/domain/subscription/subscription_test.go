package subscription

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSubscription(t *testing.T) *Subscription {
	t.Helper()
	params := dailyParams(5, 3)
	sub, err := NewSubscription(uuid.New(), uuid.New(), uuid.New(), params, decimal.NewFromInt(15))
	require.NoError(t, err)
	return sub
}

func TestNewSubscription(t *testing.T) {
	sub := newTestSubscription(t)

	assert.Equal(t, SubscriptionStatusActive, sub.Status)
	assert.Equal(t, PaymentStatusPending, sub.PaymentStatus)
	assert.Equal(t, 5, sub.PeriodDays)
	assert.True(t, sub.StartDate.Equal(monday))
	assert.True(t, sub.ExpiryDate.Equal(monday.AddDate(0, 0, 4)))
	assert.True(t, sub.TotalQuantity.Equal(decimal.NewFromInt(15)))
	assert.Nil(t, sub.AddressID)
	assert.Nil(t, sub.DepotVariantID)
}

func TestNewSubscription_Validation(t *testing.T) {
	params := dailyParams(5, 3)

	_, err := NewSubscription(uuid.Nil, uuid.New(), uuid.New(), params, decimal.NewFromInt(15))
	assert.Error(t, err)

	_, err = NewSubscription(uuid.New(), uuid.Nil, uuid.New(), params, decimal.NewFromInt(15))
	assert.Error(t, err)

	_, err = NewSubscription(uuid.New(), uuid.New(), uuid.Nil, params, decimal.NewFromInt(15))
	assert.Error(t, err)

	_, err = NewSubscription(uuid.New(), uuid.New(), uuid.New(), params, decimal.Zero)
	assert.Error(t, err)
}

func TestSubscription_ApplyPricing(t *testing.T) {
	sub := newTestSubscription(t)
	variantID := uuid.New()

	err := sub.ApplyPricing(decimal.NewFromInt(25), &variantID)
	require.NoError(t, err)

	assert.True(t, sub.UnitRate.Equal(decimal.NewFromInt(25)))
	assert.True(t, sub.TotalAmount.Equal(decimal.NewFromInt(375))) // 25 * 15
	require.NotNil(t, sub.DepotVariantID)
	assert.Equal(t, variantID, *sub.DepotVariantID)

	assert.Error(t, sub.ApplyPricing(decimal.NewFromInt(-1), nil))
}

func TestSubscription_ApplyPricing_Provisional(t *testing.T) {
	sub := newTestSubscription(t)

	// No variant resolved: zero rate, provisional amount.
	require.NoError(t, sub.ApplyPricing(decimal.Zero, nil))
	assert.True(t, sub.TotalAmount.IsZero())
	assert.Nil(t, sub.DepotVariantID)
}

func TestSubscription_ApplySettlement(t *testing.T) {
	sub := newTestSubscription(t)
	require.NoError(t, sub.ApplyPricing(decimal.NewFromInt(10), nil))

	settlement, err := Settle(sub.TotalAmount, decimal.NewFromInt(50))
	require.NoError(t, err)
	sub.ApplySettlement(settlement)

	assert.True(t, sub.WalletAmount.Equal(decimal.NewFromInt(50)))
	assert.True(t, sub.PayableAmount.Equal(decimal.NewFromInt(100)))
	assert.True(t, sub.ReceivedAmount.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, PaymentStatusPending, sub.PaymentStatus)
}

func TestSubscription_Cancel(t *testing.T) {
	t.Run("pending payment can be cancelled", func(t *testing.T) {
		sub := newTestSubscription(t)
		require.NoError(t, sub.Cancel())
		assert.True(t, sub.IsCancelled())
	})

	t.Run("failed payment can be cancelled", func(t *testing.T) {
		sub := newTestSubscription(t)
		sub.PaymentStatus = PaymentStatusFailed
		assert.NoError(t, sub.Cancel())
	})

	t.Run("paid subscription cannot be cancelled", func(t *testing.T) {
		sub := newTestSubscription(t)
		sub.PaymentStatus = PaymentStatusPaid
		assert.Error(t, sub.Cancel())
		assert.False(t, sub.IsCancelled())
	})

	t.Run("double cancel rejected", func(t *testing.T) {
		sub := newTestSubscription(t)
		require.NoError(t, sub.Cancel())
		assert.Error(t, sub.Cancel())
	})
}

func TestSubscription_SetAgency(t *testing.T) {
	sub := newTestSubscription(t)
	v := sub.Version
	agencyID := uuid.New()

	sub.SetAgency(agencyID)
	require.NotNil(t, sub.AgencyID)
	assert.Equal(t, agencyID, *sub.AgencyID)
	assert.Equal(t, v+1, sub.Version)
}
