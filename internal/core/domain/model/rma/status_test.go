package rma_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fulfillment/internal/core/domain/model/rma"
	"fulfillment/internal/pkg/errs"
)

func Test_Status_String(t *testing.T) {
	assert.Equal(t, "Requested", rma.Requested.String())
	assert.Equal(t, "LabelSent", rma.LabelSent.String())
	assert.Equal(t, "Refunded", rma.Refunded.String())
	assert.Equal(t, "Unknown", rma.UnknownStatus.String())
	assert.Equal(t, "Unknown", rma.Status(99).String())
}

func Test_StatusFromString(t *testing.T) {
	for _, s := range rma.AllStatuses() {
		parsed, err := rma.StatusFromString(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	_, err := rma.StatusFromString("Pending")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func Test_Status_TransitionTo_HappyPath(t *testing.T) {
	path := []rma.Status{
		rma.Requested, rma.Approved, rma.LabelSent,
		rma.InTransit, rma.Received, rma.Inspected, rma.Refunded,
	}

	current := path[0]
	for _, next := range path[1:] {
		moved, err := current.TransitionTo(next)
		require.NoError(t, err, "%s -> %s", current, next)
		current = moved
	}
	assert.Equal(t, rma.Refunded, current)
}

func Test_Status_TransitionTo_RejectionAndShortcuts(t *testing.T) {
	tests := []struct {
		from, to rma.Status
		ok       bool
	}{
		{rma.Requested, rma.Rejected, true},
		{rma.Inspected, rma.Rejected, true},
		{rma.Received, rma.Refunded, true},
		{rma.Approved, rma.Rejected, false},
		{rma.LabelSent, rma.Rejected, false},
		{rma.InTransit, rma.Refunded, false},
		{rma.Requested, rma.Refunded, false},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"_to_"+tt.to.String(), func(t *testing.T) {
			_, err := tt.from.TransitionTo(tt.to)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, errs.ErrInvalidTransition)
			}
		})
	}
}

// Every pair outside the allowed table is rejected, checked exhaustively.
func Test_Status_TransitionTo_RejectsEverythingOutsideTheTable(t *testing.T) {
	all := rma.AllStatuses()

	for _, from := range all {
		for _, to := range all {
			if from.CanTransitionTo(to) {
				continue
			}
			_, err := from.TransitionTo(to)
			require.Error(t, err, "%s -> %s must be rejected", from, to)
			assert.ErrorIs(t, err, errs.ErrInvalidTransition)
		}
	}
}

func Test_Status_IsTerminal(t *testing.T) {
	assert.True(t, rma.Refunded.IsTerminal())
	assert.True(t, rma.Rejected.IsTerminal())
	assert.False(t, rma.Requested.IsTerminal())
	assert.False(t, rma.Inspected.IsTerminal())
}

func Test_RefundMethod(t *testing.T) {
	assert.NoError(t, rma.OriginalPayment.Validate())
	assert.NoError(t, rma.StoreCredit.Validate())
	assert.ErrorIs(t, rma.UnknownRefundMethod.Validate(), errs.ErrValueIsRequired)
	assert.ErrorIs(t, rma.RefundMethod(99).Validate(), errs.ErrValueIsInvalid)

	m, err := rma.RefundMethodFromString("BankTransfer")
	require.NoError(t, err)
	assert.Equal(t, rma.BankTransfer, m)

	_, err = rma.RefundMethodFromString("Cash")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
