package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrCancelShipmentCommandIsNotConstructed = errors.New(
	"CancelShipmentCommand must be created via NewCancelShipmentCommand constructor",
)

// CancelShipmentCommand represents a request to cancel a shipment that has
// not yet been picked up.
type CancelShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID
	tenantID   kernel.TenantID
	reason     string

	guard guard.ConstructorGuard
}

// NewCancelShipmentCommand creates a command to cancel a shipment.
func NewCancelShipmentCommand(shipmentID kernel.UUID, tenantID kernel.TenantID, reason string) (CancelShipmentCommand, error) {
	cmd := CancelShipmentCommand{
		reason: reason,

		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setShipmentID(shipmentID),
		cmd.setTenantID(tenantID),
	); err != nil {
		return CancelShipmentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCancelShipmentCommandIsNotConstructed)
}

// ShipmentID returns the shipment to cancel.
func (c CancelShipmentCommand) ShipmentID() kernel.UUID { return c.shipmentID }

// TenantID returns the owning tenant.
func (c CancelShipmentCommand) TenantID() kernel.TenantID { return c.tenantID }

// Reason returns the cancellation reason.
func (c CancelShipmentCommand) Reason() string { return c.reason }

func (c *CancelShipmentCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}
	c.shipmentID = shipmentID
	return nil
}

func (c *CancelShipmentCommand) setTenantID(tenantID kernel.TenantID) error {
	if err := tenantID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("tenantId", err)
	}
	c.tenantID = tenantID
	return nil
}
