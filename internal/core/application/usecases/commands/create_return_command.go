package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrCreateReturnCommandIsNotConstructed = errors.New(
	"CreateReturnCommand must be created via NewCreateReturnCommand constructor",
)

// ReturnItemData carries one manifest line across the command boundary.
type ReturnItemData struct {
	SKU         string
	Description string
	Quantity    int
	Reason      string
}

// CreateReturnCommand represents a customer's request to return items from a
// delivered shipment.
type CreateReturnCommand struct { //nolint:recvcheck //using for validation
	returnID   kernel.UUID
	tenantID   kernel.TenantID
	shipmentID kernel.UUID
	items      []ReturnItemData

	guard guard.ConstructorGuard
}

// NewCreateReturnCommand creates a command to open a return.
func NewCreateReturnCommand(
	returnID kernel.UUID,
	tenantID kernel.TenantID,
	shipmentID kernel.UUID,
	items []ReturnItemData,
) (CreateReturnCommand, error) {
	cmd := CreateReturnCommand{
		items: items,

		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setReturnID(returnID),
		cmd.setTenantID(tenantID),
		cmd.setShipmentID(shipmentID),
		cmd.setItems(items),
	); err != nil {
		return CreateReturnCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateReturnCommand) Validate() error {
	return c.guard.Validate(ErrCreateReturnCommandIsNotConstructed)
}

// ReturnID returns the identifier for the new return.
func (c CreateReturnCommand) ReturnID() kernel.UUID { return c.returnID }

// TenantID returns the owning tenant.
func (c CreateReturnCommand) TenantID() kernel.TenantID { return c.tenantID }

// ShipmentID returns the delivered shipment the return refers to.
func (c CreateReturnCommand) ShipmentID() kernel.UUID { return c.shipmentID }

// Items returns the manifest lines.
func (c CreateReturnCommand) Items() []ReturnItemData { return c.items }

func (c *CreateReturnCommand) setReturnID(returnID kernel.UUID) error {
	if err := returnID.Validate(); err != nil {
		return err
	}
	c.returnID = returnID
	return nil
}

func (c *CreateReturnCommand) setTenantID(tenantID kernel.TenantID) error {
	if err := tenantID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("tenantId", err)
	}
	c.tenantID = tenantID
	return nil
}

func (c *CreateReturnCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("shipmentId", err)
	}
	c.shipmentID = shipmentID
	return nil
}

func (c *CreateReturnCommand) setItems(items []ReturnItemData) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	return nil
}
