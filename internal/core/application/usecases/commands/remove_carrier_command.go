package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrRemoveCarrierCommandIsNotConstructed = errors.New(
	"RemoveCarrierCommand must be created via NewRemoveCarrierCommand constructor",
)

// RemoveCarrierCommand represents a request to soft-delete a carrier.
type RemoveCarrierCommand struct { //nolint:recvcheck //using for validation
	carrierID kernel.UUID
	tenantID  kernel.TenantID

	guard guard.ConstructorGuard
}

// NewRemoveCarrierCommand creates a command to soft-delete a carrier.
func NewRemoveCarrierCommand(carrierID kernel.UUID, tenantID kernel.TenantID) (RemoveCarrierCommand, error) {
	cmd := RemoveCarrierCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCarrierID(carrierID),
		cmd.setTenantID(tenantID),
	); err != nil {
		return RemoveCarrierCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RemoveCarrierCommand) Validate() error {
	return c.guard.Validate(ErrRemoveCarrierCommandIsNotConstructed)
}

// CarrierID returns the carrier to remove.
func (c RemoveCarrierCommand) CarrierID() kernel.UUID { return c.carrierID }

// TenantID returns the owning tenant.
func (c RemoveCarrierCommand) TenantID() kernel.TenantID { return c.tenantID }

func (c *RemoveCarrierCommand) setCarrierID(carrierID kernel.UUID) error {
	if err := carrierID.Validate(); err != nil {
		return err
	}
	c.carrierID = carrierID
	return nil
}

func (c *RemoveCarrierCommand) setTenantID(tenantID kernel.TenantID) error {
	if err := tenantID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("tenantId", err)
	}
	c.tenantID = tenantID
	return nil
}
