package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrCreateZoneCommandIsNotConstructed = errors.New(
	"CreateZoneCommand must be created via NewCreateZoneCommand constructor",
)

// CreateZoneCommand represents a request to create a new delivery zone with
// its country list, postal patterns and matching priority.
//
// Example:
//
//	cmd, err := NewCreateZoneCommand(kernel.NewUUID(), tenantID,
//	    "fr-metro", "France métropolitaine",
//	    []string{"FR"}, nil, []string{"97*", "98*"}, 10)
//	if err != nil {
//	    return fmt.Errorf("invalid zone data: %w", err)
//	}
//
//	handler := NewCreateZoneCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create zone: %w", err)
//	}
type CreateZoneCommand struct { //nolint:recvcheck //using for validation
	zoneID    kernel.UUID
	tenantID  kernel.TenantID
	code      string
	name      string
	countries []string
	allow     []string
	deny      []string
	priority  int

	guard guard.ConstructorGuard
}

// NewCreateZoneCommand creates a command to register a new zone.
// Pattern literals are validated later by the aggregate; the command checks
// only the identifiers and required fields.
func NewCreateZoneCommand(
	zoneID kernel.UUID,
	tenantID kernel.TenantID,
	code string,
	name string,
	countries []string,
	allow []string,
	deny []string,
	priority int,
) (CreateZoneCommand, error) {
	cmd := CreateZoneCommand{
		code:      code,
		name:      name,
		countries: countries,
		allow:     allow,
		deny:      deny,
		priority:  priority,

		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setZoneID(zoneID),
		cmd.setTenantID(tenantID),
	); err != nil {
		return CreateZoneCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateZoneCommand) Validate() error {
	return c.guard.Validate(ErrCreateZoneCommandIsNotConstructed)
}

// ZoneID returns the identifier for the new zone.
func (c CreateZoneCommand) ZoneID() kernel.UUID { return c.zoneID }

// TenantID returns the owning tenant.
func (c CreateZoneCommand) TenantID() kernel.TenantID { return c.tenantID }

// Code returns the tenant-unique zone code.
func (c CreateZoneCommand) Code() string { return c.code }

// Name returns the display name.
func (c CreateZoneCommand) Name() string { return c.name }

// Countries returns the ISO alpha-2 country codes the zone serves.
func (c CreateZoneCommand) Countries() []string { return c.countries }

// Allow returns the allow-list pattern literals.
func (c CreateZoneCommand) Allow() []string { return c.allow }

// Deny returns the exclusion pattern literals.
func (c CreateZoneCommand) Deny() []string { return c.deny }

// Priority returns the ascending matching priority.
func (c CreateZoneCommand) Priority() int { return c.priority }

func (c *CreateZoneCommand) setZoneID(zoneID kernel.UUID) error {
	if err := zoneID.Validate(); err != nil {
		return err
	}
	c.zoneID = zoneID
	return nil
}

func (c *CreateZoneCommand) setTenantID(tenantID kernel.TenantID) error {
	if err := tenantID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("tenantId", err)
	}
	c.tenantID = tenantID
	return nil
}
