// Package rma contains the Return aggregate: the reverse-logistics workflow
// from a customer's return request through approval, label issuance, receipt,
// inspection and refund.
package rma

import (
	"errors"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrReturnIsNotConstructed is returned when a Return instance was not
	// created through NewReturn or RestoreReturn.
	ErrReturnIsNotConstructed = errors.New("Return must be created via NewReturn constructor")

	// ErrShipmentNotDelivered is returned when a return is requested for a
	// shipment that has not reached Delivered. This is a validation failure of
	// the request, not an illegal transition of the return itself.
	ErrShipmentNotDelivered = errors.New("return requires a delivered shipment")

	// ErrReturnAlreadyRefunded guards refund idempotency.
	ErrReturnAlreadyRefunded = errors.New("return has already been refunded")
)

// NumberFor derives the human-facing return number from the aggregate
// identifier.
func NumberFor(id kernel.UUID) string {
	return "RET-" + strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:12])
}

// Refund is the recorded refund breakdown. Amount is the gross figure; the
// restocking fee is stated alongside it and subtracted downstream at the
// ledger, never netted here.
type Refund struct {
	Amount        kernel.Money
	Method        RefundMethod
	RestockingFee kernel.Money
	ProcessedAt   time.Time
}

// Return is the aggregate root for one return-merchandise authorization. It
// references exactly one delivered shipment and drives the guarded reverse
// lifecycle.
type Return struct {
	id       kernel.UUID
	tenantID kernel.TenantID
	number   string

	shipmentID kernel.UUID
	orderID    *kernel.UUID

	items []Item

	status Status

	reviewNotes    string
	trackingNumber string
	labelURL       string

	receivedCondition string
	receivedNotes     string
	receivedAt        *time.Time

	inspectionOutcome string
	inspectionNotes   string
	inspectedAt       *time.Time

	refund *Refund

	version int64

	isConstructed bool
}

// NewReturn creates a Requested return for a delivered shipment. The shipment
// is consulted for its state and identity only; the return does not hold a
// reference to it afterwards.
func NewReturn(
	id kernel.UUID,
	tenantID kernel.TenantID,
	deliveredShipment *shipment.Shipment,
	items []Item,
) (*Return, error) {
	if err := deliveredShipment.Validate(); err != nil {
		return nil, err
	}
	if !deliveredShipment.IsDelivered() {
		return nil, ErrShipmentNotDelivered
	}
	if !deliveredShipment.TenantID().IsEqual(tenantID) {
		return nil, errs.NewValueIsInvalidErrorWithCause("shipmentId",
			errors.New("shipment belongs to a different tenant"))
	}

	r := &Return{
		status:        Requested,
		isConstructed: true,
	}

	if err := errors.Join(
		r.setID(id),
		r.setTenantID(tenantID),
		r.setShipmentID(deliveredShipment.ID()),
		r.setItems(items),
	); err != nil {
		return nil, err
	}

	r.number = NumberFor(id)
	r.orderID = deliveredShipment.OrderID()

	return r, nil
}

// RestoreReturn reconstructs a Return from persistence.
func RestoreReturn(
	id kernel.UUID,
	tenantID kernel.TenantID,
	number string,
	shipmentID kernel.UUID,
	orderID *kernel.UUID,
	items []Item,
	status Status,
	reviewNotes string,
	trackingNumber string,
	labelURL string,
	receivedCondition string,
	receivedNotes string,
	receivedAt *time.Time,
	inspectionOutcome string,
	inspectionNotes string,
	inspectedAt *time.Time,
	refund *Refund,
	version int64,
) (*Return, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	r := &Return{
		status:        Requested,
		isConstructed: true,
	}

	if err := errors.Join(
		r.setID(id),
		r.setTenantID(tenantID),
		r.setShipmentID(shipmentID),
		r.setItems(items),
	); err != nil {
		return nil, err
	}

	if orderID != nil {
		v := *orderID
		r.orderID = &v
	}

	r.number = number
	r.status = status
	r.reviewNotes = reviewNotes
	r.trackingNumber = trackingNumber
	r.labelURL = labelURL
	r.receivedCondition = receivedCondition
	r.receivedNotes = receivedNotes
	r.receivedAt = receivedAt
	r.inspectionOutcome = inspectionOutcome
	r.inspectionNotes = inspectionNotes
	r.inspectedAt = inspectedAt
	if refund != nil {
		v := *refund
		r.refund = &v
	}
	r.version = version

	return r, nil
}

// Validate ensures the Return was created through a constructor.
func (r *Return) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrReturnIsNotConstructed
	}
	return nil
}

// ID returns the return's unique identifier.
func (r *Return) ID() kernel.UUID { return r.id }

// TenantID returns the owning tenant.
func (r *Return) TenantID() kernel.TenantID { return r.tenantID }

// Number returns the human-facing return number.
func (r *Return) Number() string { return r.number }

// ShipmentID returns the delivered shipment this return refers to.
func (r *Return) ShipmentID() kernel.UUID { return r.shipmentID }

// OrderID returns the originating order's identifier, or nil.
func (r *Return) OrderID() *kernel.UUID {
	if r.orderID == nil {
		return nil
	}
	id := *r.orderID
	return &id
}

// Items returns the item manifest fixed at request time.
func (r *Return) Items() []Item {
	out := make([]Item, len(r.items))
	copy(out, r.items)
	return out
}

// Status returns the current lifecycle state.
func (r *Return) Status() Status { return r.status }

// ReviewNotes returns the approval or rejection notes.
func (r *Return) ReviewNotes() string { return r.reviewNotes }

// TrackingNumber returns the return label's tracking number, empty before
// label issuance.
func (r *Return) TrackingNumber() string { return r.trackingNumber }

// LabelURL returns the return label document URL, empty before label
// issuance.
func (r *Return) LabelURL() string { return r.labelURL }

// ReceivedCondition returns the condition recorded at receipt.
func (r *Return) ReceivedCondition() string { return r.receivedCondition }

// ReceivedNotes returns the notes recorded at receipt.
func (r *Return) ReceivedNotes() string { return r.receivedNotes }

// ReceivedAt returns when the parcel arrived back, nil before receipt.
func (r *Return) ReceivedAt() *time.Time { return r.receivedAt }

// InspectionOutcome returns the outcome recorded at inspection.
func (r *Return) InspectionOutcome() string { return r.inspectionOutcome }

// InspectionNotes returns the notes recorded at inspection.
func (r *Return) InspectionNotes() string { return r.inspectionNotes }

// InspectedAt returns when the contents were inspected, nil before
// inspection.
func (r *Return) InspectedAt() *time.Time { return r.inspectedAt }

// Refund returns the recorded refund breakdown, nil until ProcessRefund.
func (r *Return) Refund() *Refund {
	if r.refund == nil {
		return nil
	}
	v := *r.refund
	return &v
}

// Version returns the optimistic-concurrency version counter.
func (r *Return) Version() int64 { return r.version }

// Approve accepts the request. Legal only from Requested.
func (r *Return) Approve(notes string) error {
	if err := r.Validate(); err != nil {
		return err
	}
	newStatus, err := r.status.TransitionTo(Approved)
	if err != nil {
		return err
	}
	r.status = newStatus
	r.reviewNotes = strings.TrimSpace(notes)
	return nil
}

// Reject declines the return. Legal from Requested (before approval) or from
// Inspected (after the goods were examined). A reason is required.
func (r *Return) Reject(reason string) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(reason) == "" {
		return errs.NewValueIsRequiredError("reason")
	}
	newStatus, err := r.status.TransitionTo(Rejected)
	if err != nil {
		return err
	}
	r.status = newStatus
	r.reviewNotes = strings.TrimSpace(reason)
	return nil
}

// SendLabel records the issued return label and moves Approved → LabelSent.
func (r *Return) SendLabel(trackingNumber, labelURL string) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(trackingNumber) == "" {
		return errs.NewValueIsRequiredError("trackingNumber")
	}
	newStatus, err := r.status.TransitionTo(LabelSent)
	if err != nil {
		return err
	}
	r.status = newStatus
	r.trackingNumber = strings.TrimSpace(trackingNumber)
	r.labelURL = strings.TrimSpace(labelURL)
	return nil
}

// MarkInTransit records the first carrier scan of the return parcel.
func (r *Return) MarkInTransit() error {
	if err := r.Validate(); err != nil {
		return err
	}
	newStatus, err := r.status.TransitionTo(InTransit)
	if err != nil {
		return err
	}
	r.status = newStatus
	return nil
}

// Receive records arrival of the parcel at the warehouse with its observed
// condition.
func (r *Return) Receive(condition, notes string, at time.Time) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(condition) == "" {
		return errs.NewValueIsRequiredError("condition")
	}
	newStatus, err := r.status.TransitionTo(Received)
	if err != nil {
		return err
	}
	if at.IsZero() {
		at = time.Now()
	}
	at = at.UTC()

	r.status = newStatus
	r.receivedCondition = strings.TrimSpace(condition)
	r.receivedNotes = strings.TrimSpace(notes)
	r.receivedAt = &at
	return nil
}

// Inspect records the outcome of the physical inspection.
func (r *Return) Inspect(outcome, notes string, at time.Time) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(outcome) == "" {
		return errs.NewValueIsRequiredError("outcome")
	}
	newStatus, err := r.status.TransitionTo(Inspected)
	if err != nil {
		return err
	}
	if at.IsZero() {
		at = time.Now()
	}
	at = at.UTC()

	r.status = newStatus
	r.inspectionOutcome = strings.TrimSpace(outcome)
	r.inspectionNotes = strings.TrimSpace(notes)
	r.inspectedAt = &at
	return nil
}

// ProcessRefund records the refund and moves to the terminal Refunded state.
// Legal from Received (refund without inspection) or Inspected. The amount is
// gross; the restocking fee is stated but never subtracted here.
//
// A repeat call on an already refunded return fails with
// ErrReturnAlreadyRefunded and mutates nothing.
func (r *Return) ProcessRefund(amount kernel.Money, method RefundMethod, restockingFee kernel.Money) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if r.status == Refunded {
		return ErrReturnAlreadyRefunded
	}

	newStatus, err := r.status.TransitionTo(Refunded)
	if err != nil {
		return err
	}

	if err := amount.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("refundAmount", err)
	}
	if amount.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("refundAmount",
			errors.New("refund amount is negative"))
	}
	if err := method.Validate(); err != nil {
		return err
	}
	if err := restockingFee.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("restockingFee", err)
	}
	if restockingFee.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("restockingFee",
			errors.New("restocking fee is negative"))
	}
	if !restockingFee.Currency().IsEqual(amount.Currency()) {
		return errs.NewValueIsInvalidErrorWithCause("restockingFee",
			errors.New("restocking fee currency differs from refund amount"))
	}
	if restockingFee.Cmp(amount) > 0 {
		return errs.NewValueIsOutOfRangeError("restockingFee",
			restockingFee.String(), "0", amount.String())
	}

	r.status = newStatus
	r.refund = &Refund{
		Amount:        amount,
		Method:        method,
		RestockingFee: restockingFee,
		ProcessedAt:   time.Now().UTC(),
	}
	return nil
}

func (r *Return) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Return) setTenantID(tenantID kernel.TenantID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}
	r.tenantID = tenantID
	return nil
}

func (r *Return) setShipmentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("shipmentId", err)
	}
	r.shipmentID = id
	return nil
}

func (r *Return) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	r.items = make([]Item, len(items))
	copy(r.items, items)
	return nil
}
