package subscription

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecurrenceType_IsValid(t *testing.T) {
	tests := []struct {
		rt      RecurrenceType
		isValid bool
	}{
		{RecurrenceDaily, true},
		{RecurrenceSelectDays, true},
		{RecurrenceAlternateDays, true},
		{RecurrenceVarying, true},
		{RecurrenceType("WEEKLY"), false},
		{RecurrenceType(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.rt), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.rt.IsValid())
		})
	}
}

func TestParseRecurrenceType(t *testing.T) {
	tests := []struct {
		input   string
		want    RecurrenceType
		wantErr bool
	}{
		{"daily", RecurrenceDaily, false},
		{"DAILY", RecurrenceDaily, false},
		{"select_days", RecurrenceSelectDays, false},
		{"Select Days", RecurrenceSelectDays, false},
		{"select-days", RecurrenceSelectDays, false},
		{"alternate_days", RecurrenceAlternateDays, false},
		{"varying", RecurrenceVarying, false},
		{"  varying  ", RecurrenceVarying, false},
		{"weekly", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRecurrenceType(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPaymentStatus_AllowsCancellation(t *testing.T) {
	tests := []struct {
		status PaymentStatus
		want   bool
	}{
		{PaymentStatusPending, true},
		{PaymentStatusFailed, true},
		{PaymentStatusCancelled, true},
		{PaymentStatus(""), true},
		{PaymentStatusPaid, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.AllowsCancellation())
		})
	}
}

func TestDeliveryStatus_CanTransitionTo(t *testing.T) {
	targets := []DeliveryStatus{
		DeliveryStatusDelivered,
		DeliveryStatusNotDelivered,
		DeliveryStatusCancelled,
		DeliveryStatusSkipped,
		DeliveryStatusSkipByCustomer,
		DeliveryStatusTransferToAgent,
		DeliveryStatusIndraaiDelivery,
	}

	// PENDING may move to any resolved status.
	for _, target := range targets {
		assert.True(t, DeliveryStatusPending.CanTransitionTo(target), "PENDING -> %s", target)
	}

	// Nothing moves back to PENDING and resolved statuses are frozen.
	assert.False(t, DeliveryStatusPending.CanTransitionTo(DeliveryStatusPending))
	for _, from := range targets {
		assert.False(t, from.CanTransitionTo(DeliveryStatusPending), "%s -> PENDING", from)
		assert.False(t, from.CanTransitionTo(DeliveryStatusDelivered), "%s -> DELIVERED", from)
	}

	assert.False(t, DeliveryStatusPending.CanTransitionTo(DeliveryStatus("BOGUS")))
}

func TestDeliveryStatus_Reassignable(t *testing.T) {
	assert.True(t, DeliveryStatusPending.Reassignable())
	assert.True(t, DeliveryStatusNotDelivered.Reassignable())

	for _, s := range []DeliveryStatus{
		DeliveryStatusDelivered,
		DeliveryStatusCancelled,
		DeliveryStatusSkipped,
		DeliveryStatusSkipByCustomer,
		DeliveryStatusTransferToAgent,
		DeliveryStatusIndraaiDelivery,
	} {
		assert.False(t, s.Reassignable(), "%s", s)
	}
}

func TestDeliveryStatus_IsTerminal(t *testing.T) {
	assert.False(t, DeliveryStatusPending.IsTerminal())
	assert.True(t, DeliveryStatusDelivered.IsTerminal())
	assert.True(t, DeliveryStatusSkipByCustomer.IsTerminal())
}
