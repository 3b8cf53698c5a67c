package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrRemoveTariffCommandIsNotConstructed = errors.New(
	"RemoveTariffCommand must be created via NewRemoveTariffCommand constructor",
)

// RemoveTariffCommand represents a request to soft-delete a tariff. Existing
// shipments keep their frozen costs; only future quoting is affected.
type RemoveTariffCommand struct { //nolint:recvcheck //using for validation
	tariffID kernel.UUID
	tenantID kernel.TenantID

	guard guard.ConstructorGuard
}

// NewRemoveTariffCommand creates a command to soft-delete a tariff.
func NewRemoveTariffCommand(tariffID kernel.UUID, tenantID kernel.TenantID) (RemoveTariffCommand, error) {
	cmd := RemoveTariffCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTariffID(tariffID),
		cmd.setTenantID(tenantID),
	); err != nil {
		return RemoveTariffCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RemoveTariffCommand) Validate() error {
	return c.guard.Validate(ErrRemoveTariffCommandIsNotConstructed)
}

// TariffID returns the tariff to remove.
func (c RemoveTariffCommand) TariffID() kernel.UUID { return c.tariffID }

// TenantID returns the owning tenant.
func (c RemoveTariffCommand) TenantID() kernel.TenantID { return c.tenantID }

func (c *RemoveTariffCommand) setTariffID(tariffID kernel.UUID) error {
	if err := tariffID.Validate(); err != nil {
		return err
	}
	c.tariffID = tariffID
	return nil
}

func (c *RemoveTariffCommand) setTenantID(tenantID kernel.TenantID) error {
	if err := tenantID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("tenantId", err)
	}
	c.tenantID = tenantID
	return nil
}
