package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrUpdateZoneCommandIsNotConstructed = errors.New(
	"UpdateZoneCommand must be created via NewUpdateZoneCommand constructor",
)

// UpdateZoneCommand represents a request to replace a zone's editable
// attributes. Setting active true restores a soft-deleted zone.
type UpdateZoneCommand struct { //nolint:recvcheck //using for validation
	zoneID    kernel.UUID
	tenantID  kernel.TenantID
	version   int64
	name      string
	countries []string
	allow     []string
	deny      []string
	priority  int
	active    bool

	guard guard.ConstructorGuard
}

// NewUpdateZoneCommand creates a command to update an existing zone. The
// version must match the caller's last-read version for the write to succeed.
func NewUpdateZoneCommand(
	zoneID kernel.UUID,
	tenantID kernel.TenantID,
	version int64,
	name string,
	countries []string,
	allow []string,
	deny []string,
	priority int,
	active bool,
) (UpdateZoneCommand, error) {
	cmd := UpdateZoneCommand{
		version:   version,
		name:      name,
		countries: countries,
		allow:     allow,
		deny:      deny,
		priority:  priority,
		active:    active,

		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setZoneID(zoneID),
		cmd.setTenantID(tenantID),
	); err != nil {
		return UpdateZoneCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateZoneCommand) Validate() error {
	return c.guard.Validate(ErrUpdateZoneCommandIsNotConstructed)
}

// ZoneID returns the zone to update.
func (c UpdateZoneCommand) ZoneID() kernel.UUID { return c.zoneID }

// TenantID returns the owning tenant.
func (c UpdateZoneCommand) TenantID() kernel.TenantID { return c.tenantID }

// Version returns the expected aggregate version.
func (c UpdateZoneCommand) Version() int64 { return c.version }

// Name returns the new display name.
func (c UpdateZoneCommand) Name() string { return c.name }

// Countries returns the new country list.
func (c UpdateZoneCommand) Countries() []string { return c.countries }

// Allow returns the new allow-list pattern literals.
func (c UpdateZoneCommand) Allow() []string { return c.allow }

// Deny returns the new exclusion pattern literals.
func (c UpdateZoneCommand) Deny() []string { return c.deny }

// Priority returns the new matching priority.
func (c UpdateZoneCommand) Priority() int { return c.priority }

// Active returns the target active flag.
func (c UpdateZoneCommand) Active() bool { return c.active }

func (c *UpdateZoneCommand) setZoneID(zoneID kernel.UUID) error {
	if err := zoneID.Validate(); err != nil {
		return err
	}
	c.zoneID = zoneID
	return nil
}

func (c *UpdateZoneCommand) setTenantID(tenantID kernel.TenantID) error {
	if err := tenantID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("tenantId", err)
	}
	c.tenantID = tenantID
	return nil
}
