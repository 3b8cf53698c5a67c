package rma_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/rma"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/pkg/errs"
)

func eur(t *testing.T, amount string) kernel.Money {
	t.Helper()
	cur, err := kernel.NewCurrency("EUR")
	require.NoError(t, err)
	m, err := kernel.NewMoney(decimal.RequireFromString(amount), cur)
	require.NoError(t, err)
	return m
}

func testItem(t *testing.T) rma.Item {
	t.Helper()
	item, err := rma.NewItem("SKU-1001", "wool sweater", 1, "wrong size")
	require.NoError(t, err)
	return item
}

func testShipment(t *testing.T, tenantID kernel.TenantID, delivered bool) *shipment.Shipment {
	t.Helper()

	origin, err := shipment.NewAddress("", "1 Warehouse Way", "Lille", "59000", "FR", false)
	require.NoError(t, err)
	destination, err := shipment.NewAddress("Jean Martin", "12 Rue de Rivoli", "Paris", "75001", "FR", true)
	require.NoError(t, err)

	dims, err := kernel.NewDimensions(20, 15, 10)
	require.NoError(t, err)
	w, err := kernel.NewWeight(1.5)
	require.NoError(t, err)
	p, err := shipment.NewPackage(kernel.NewUUID(), dims, w, eur(t, "80"), "clothes", kernel.DefaultVolumetricDivisor)
	require.NoError(t, err)

	zero := eur(t, "0")
	s, err := shipment.NewShipment(
		kernel.NewUUID(), tenantID, kernel.NewUUID(), kernel.NewUUID(), nil,
		origin, destination, "", []*shipment.Package{p},
		shipment.CostBreakdown{Base: eur(t, "6.95"), Insurance: zero, Surcharge: zero, Total: eur(t, "6.95")},
		nil,
	)
	require.NoError(t, err)

	if delivered {
		require.NoError(t, s.GenerateLabel("COL-0011223344", []string{"COL-0011223344-P1"}, ""))
		require.NoError(t, s.PostTrackingEvent(shipment.PickedUp, "Collected", "", time.Time{}))
		require.NoError(t, s.PostTrackingEvent(shipment.Delivered, "Handed to recipient", "", time.Time{}))
	}
	return s
}

func newTestReturn(t *testing.T) *rma.Return {
	t.Helper()
	tenantID := kernel.NewTenantID()
	r, err := rma.NewReturn(kernel.NewUUID(), tenantID, testShipment(t, tenantID, true), []rma.Item{testItem(t)})
	require.NoError(t, err)
	return r
}

func advanceToReceived(t *testing.T, r *rma.Return) {
	t.Helper()
	require.NoError(t, r.Approve("ok"))
	require.NoError(t, r.SendLabel("RTN-0055667788", "https://labels.example/r1.pdf"))
	require.NoError(t, r.MarkInTransit())
	require.NoError(t, r.Receive("good", "box intact", time.Time{}))
}

func Test_NewReturn_StartsRequested(t *testing.T) {
	r := newTestReturn(t)

	assert.Equal(t, rma.Requested, r.Status())
	assert.True(t, r.Number() != "" && r.Number()[:4] == "RET-")
	assert.Len(t, r.Items(), 1)
	assert.Nil(t, r.Refund())
}

func Test_NewReturn_RequiresDeliveredShipment(t *testing.T) {
	tenantID := kernel.NewTenantID()
	_, err := rma.NewReturn(kernel.NewUUID(), tenantID, testShipment(t, tenantID, false), []rma.Item{testItem(t)})
	assert.ErrorIs(t, err, rma.ErrShipmentNotDelivered)
}

func Test_NewReturn_RejectsForeignTenantShipment(t *testing.T) {
	_, err := rma.NewReturn(kernel.NewUUID(), kernel.NewTenantID(),
		testShipment(t, kernel.NewTenantID(), true), []rma.Item{testItem(t)})
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func Test_NewReturn_RequiresItems(t *testing.T) {
	tenantID := kernel.NewTenantID()
	_, err := rma.NewReturn(kernel.NewUUID(), tenantID, testShipment(t, tenantID, true), nil)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func Test_Return_ApproveAndReject(t *testing.T) {
	t.Run("approve from requested", func(t *testing.T) {
		r := newTestReturn(t)
		require.NoError(t, r.Approve("within return window"))
		assert.Equal(t, rma.Approved, r.Status())
		assert.Equal(t, "within return window", r.ReviewNotes())
	})

	t.Run("reject from requested", func(t *testing.T) {
		r := newTestReturn(t)
		require.NoError(t, r.Reject("outside return window"))
		assert.Equal(t, rma.Rejected, r.Status())
		assert.Equal(t, "outside return window", r.ReviewNotes())
	})

	t.Run("reject requires a reason", func(t *testing.T) {
		r := newTestReturn(t)
		err := r.Reject("  ")
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Equal(t, rma.Requested, r.Status())
	})

	t.Run("reject after approval is illegal", func(t *testing.T) {
		r := newTestReturn(t)
		require.NoError(t, r.Approve(""))
		err := r.Reject("changed my mind")
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, rma.Approved, r.Status())
	})
}

func Test_Return_SendLabel(t *testing.T) {
	r := newTestReturn(t)
	require.NoError(t, r.Approve(""))

	require.NoError(t, r.SendLabel("RTN-0055667788", "https://labels.example/r1.pdf"))
	assert.Equal(t, rma.LabelSent, r.Status())
	assert.Equal(t, "RTN-0055667788", r.TrackingNumber())
	assert.Equal(t, "https://labels.example/r1.pdf", r.LabelURL())

	t.Run("requires tracking number", func(t *testing.T) {
		r := newTestReturn(t)
		require.NoError(t, r.Approve(""))
		assert.ErrorIs(t, r.SendLabel("", ""), errs.ErrValueIsRequired)
		assert.Equal(t, rma.Approved, r.Status())
	})

	t.Run("illegal before approval", func(t *testing.T) {
		r := newTestReturn(t)
		assert.ErrorIs(t, r.SendLabel("RTN-1", ""), errs.ErrInvalidTransition)
	})
}

func Test_Return_ReceiveAndInspect(t *testing.T) {
	r := newTestReturn(t)
	advanceToReceived(t, r)

	assert.Equal(t, rma.Received, r.Status())
	assert.Equal(t, "good", r.ReceivedCondition())
	require.NotNil(t, r.ReceivedAt())

	inspectedAt := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, r.Inspect("resellable", "no damage", inspectedAt))
	assert.Equal(t, rma.Inspected, r.Status())
	assert.Equal(t, "resellable", r.InspectionOutcome())
	require.NotNil(t, r.InspectedAt())
	assert.Equal(t, inspectedAt, *r.InspectedAt())
}

func Test_Return_Receive_RequiresCondition(t *testing.T) {
	r := newTestReturn(t)
	require.NoError(t, r.Approve(""))
	require.NoError(t, r.SendLabel("RTN-1", ""))
	require.NoError(t, r.MarkInTransit())

	assert.ErrorIs(t, r.Receive("", "", time.Time{}), errs.ErrValueIsRequired)
	assert.Equal(t, rma.InTransit, r.Status())
}

func Test_Return_ProcessRefund(t *testing.T) {
	t.Run("after inspection", func(t *testing.T) {
		r := newTestReturn(t)
		advanceToReceived(t, r)
		require.NoError(t, r.Inspect("resellable", "", time.Time{}))

		require.NoError(t, r.ProcessRefund(eur(t, "80"), rma.OriginalPayment, eur(t, "5")))

		assert.Equal(t, rma.Refunded, r.Status())
		refund := r.Refund()
		require.NotNil(t, refund)
		// Gross amount stays as stated; the restocking fee rides alongside.
		assert.True(t, refund.Amount.IsEqual(eur(t, "80")))
		assert.True(t, refund.RestockingFee.IsEqual(eur(t, "5")))
		assert.Equal(t, rma.OriginalPayment, refund.Method)
		assert.False(t, refund.ProcessedAt.IsZero())
	})

	t.Run("directly from received", func(t *testing.T) {
		r := newTestReturn(t)
		advanceToReceived(t, r)
		require.NoError(t, r.ProcessRefund(eur(t, "80"), rma.StoreCredit, eur(t, "0")))
		assert.Equal(t, rma.Refunded, r.Status())
	})

	t.Run("repeat refund is guarded", func(t *testing.T) {
		r := newTestReturn(t)
		advanceToReceived(t, r)
		require.NoError(t, r.ProcessRefund(eur(t, "80"), rma.StoreCredit, eur(t, "0")))

		err := r.ProcessRefund(eur(t, "80"), rma.StoreCredit, eur(t, "0"))
		assert.ErrorIs(t, err, rma.ErrReturnAlreadyRefunded)
		assert.True(t, r.Refund().Amount.IsEqual(eur(t, "80")))
	})

	t.Run("illegal before receipt", func(t *testing.T) {
		r := newTestReturn(t)
		require.NoError(t, r.Approve(""))
		err := r.ProcessRefund(eur(t, "80"), rma.StoreCredit, eur(t, "0"))
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("rejects negative amount", func(t *testing.T) {
		r := newTestReturn(t)
		advanceToReceived(t, r)
		err := r.ProcessRefund(eur(t, "-1"), rma.StoreCredit, eur(t, "0"))
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, rma.Received, r.Status())
	})

	t.Run("requires a method", func(t *testing.T) {
		r := newTestReturn(t)
		advanceToReceived(t, r)
		err := r.ProcessRefund(eur(t, "80"), rma.UnknownRefundMethod, eur(t, "0"))
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("fee cannot exceed the amount", func(t *testing.T) {
		r := newTestReturn(t)
		advanceToReceived(t, r)
		err := r.ProcessRefund(eur(t, "10"), rma.StoreCredit, eur(t, "11"))
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func Test_RestoreReturn_PreservesState(t *testing.T) {
	id := kernel.NewUUID()
	receivedAt := time.Date(2026, 3, 20, 10, 0, 0, 0, time.UTC)
	refund := &rma.Refund{
		Amount:        eur(t, "42.50"),
		Method:        rma.BankTransfer,
		RestockingFee: eur(t, "2.50"),
		ProcessedAt:   time.Date(2026, 3, 25, 8, 0, 0, 0, time.UTC),
	}

	r, err := rma.RestoreReturn(
		id, kernel.NewTenantID(), rma.NumberFor(id), kernel.NewUUID(), nil,
		[]rma.Item{testItem(t)}, rma.Refunded,
		"ok", "RTN-0055667788", "", "good", "", &receivedAt,
		"resellable", "", &receivedAt, refund, 5,
	)
	require.NoError(t, err)

	assert.Equal(t, rma.Refunded, r.Status())
	assert.Equal(t, int64(5), r.Version())
	require.NotNil(t, r.Refund())
	assert.True(t, r.Refund().Amount.IsEqual(eur(t, "42.50")))

	err = r.ProcessRefund(eur(t, "42.50"), rma.BankTransfer, eur(t, "0"))
	assert.ErrorIs(t, err, rma.ErrReturnAlreadyRefunded)
}

func Test_RestoreReturn_RejectsUnknownStatus(t *testing.T) {
	id := kernel.NewUUID()
	_, err := rma.RestoreReturn(
		id, kernel.NewTenantID(), rma.NumberFor(id), kernel.NewUUID(), nil,
		[]rma.Item{testItem(t)}, rma.UnknownStatus,
		"", "", "", "", "", nil, "", "", nil, nil, 0,
	)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func Test_Return_Validate_RejectsZeroValue(t *testing.T) {
	var r rma.Return
	assert.ErrorIs(t, r.Validate(), rma.ErrReturnIsNotConstructed)
}
