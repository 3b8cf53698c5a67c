package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrRemoveZoneCommandIsNotConstructed = errors.New(
	"RemoveZoneCommand must be created via NewRemoveZoneCommand constructor",
)

// RemoveZoneCommand represents a request to soft-delete a zone. Removal is a
// deactivation; the row stays for historical shipments and a later restore.
type RemoveZoneCommand struct { //nolint:recvcheck //using for validation
	zoneID   kernel.UUID
	tenantID kernel.TenantID

	guard guard.ConstructorGuard
}

// NewRemoveZoneCommand creates a command to soft-delete a zone.
func NewRemoveZoneCommand(zoneID kernel.UUID, tenantID kernel.TenantID) (RemoveZoneCommand, error) {
	cmd := RemoveZoneCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setZoneID(zoneID),
		cmd.setTenantID(tenantID),
	); err != nil {
		return RemoveZoneCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RemoveZoneCommand) Validate() error {
	return c.guard.Validate(ErrRemoveZoneCommandIsNotConstructed)
}

// ZoneID returns the zone to remove.
func (c RemoveZoneCommand) ZoneID() kernel.UUID { return c.zoneID }

// TenantID returns the owning tenant.
func (c RemoveZoneCommand) TenantID() kernel.TenantID { return c.tenantID }

func (c *RemoveZoneCommand) setZoneID(zoneID kernel.UUID) error {
	if err := zoneID.Validate(); err != nil {
		return err
	}
	c.zoneID = zoneID
	return nil
}

func (c *RemoveZoneCommand) setTenantID(tenantID kernel.TenantID) error {
	if err := tenantID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("tenantId", err)
	}
	c.tenantID = tenantID
	return nil
}
