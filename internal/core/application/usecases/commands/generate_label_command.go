package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrGenerateLabelCommandIsNotConstructed = errors.New(
	"GenerateLabelCommand must be created via NewGenerateLabelCommand constructor",
)

// GenerateLabelCommand represents a request to issue the shipping label for a
// pending shipment through its carrier.
type GenerateLabelCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID
	tenantID   kernel.TenantID

	guard guard.ConstructorGuard
}

// NewGenerateLabelCommand creates a command to issue a shipping label.
func NewGenerateLabelCommand(shipmentID kernel.UUID, tenantID kernel.TenantID) (GenerateLabelCommand, error) {
	cmd := GenerateLabelCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setShipmentID(shipmentID),
		cmd.setTenantID(tenantID),
	); err != nil {
		return GenerateLabelCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c GenerateLabelCommand) Validate() error {
	return c.guard.Validate(ErrGenerateLabelCommandIsNotConstructed)
}

// ShipmentID returns the shipment to label.
func (c GenerateLabelCommand) ShipmentID() kernel.UUID { return c.shipmentID }

// TenantID returns the owning tenant.
func (c GenerateLabelCommand) TenantID() kernel.TenantID { return c.tenantID }

func (c *GenerateLabelCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}
	c.shipmentID = shipmentID
	return nil
}

func (c *GenerateLabelCommand) setTenantID(tenantID kernel.TenantID) error {
	if err := tenantID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("tenantId", err)
	}
	c.tenantID = tenantID
	return nil
}
