package member

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMember(t *testing.T) *Member {
	t.Helper()
	m, err := NewMember("Asha Patel", "9876500001")
	require.NoError(t, err)
	return m
}

func TestNewMember(t *testing.T) {
	m := newTestMember(t)
	assert.Equal(t, MemberStatusActive, m.Status)
	assert.True(t, m.WalletBalance.IsZero())
	assert.True(t, m.IsActive())

	_, err := NewMember("", "123")
	assert.Error(t, err)
	_, err = NewMember("Name", "  ")
	assert.Error(t, err)
}

func TestMember_CreditWallet(t *testing.T) {
	m := newTestMember(t)
	v := m.Version

	require.NoError(t, m.CreditWallet(decimal.NewFromInt(500)))
	assert.True(t, m.WalletBalance.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, v+1, m.Version)

	assert.Error(t, m.CreditWallet(decimal.Zero))
	assert.Error(t, m.CreditWallet(decimal.NewFromInt(-10)))
}

func TestMember_DebitWallet(t *testing.T) {
	m := newTestMember(t)
	require.NoError(t, m.CreditWallet(decimal.NewFromInt(100)))

	require.NoError(t, m.DebitWallet(decimal.NewFromInt(60)))
	assert.True(t, m.WalletBalance.Equal(decimal.NewFromInt(40)))

	// Balance can never go negative.
	err := m.DebitWallet(decimal.NewFromInt(41))
	assert.Error(t, err)
	assert.True(t, m.WalletBalance.Equal(decimal.NewFromInt(40)))

	assert.Error(t, m.DebitWallet(decimal.Zero))
}
