package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrMarkReturnInTransitCommandIsNotConstructed = errors.New(
	"MarkReturnInTransitCommand must be created via NewMarkReturnInTransitCommand constructor",
)

// MarkReturnInTransitCommand records the first carrier scan of a return
// parcel after the customer drops it off.
type MarkReturnInTransitCommand struct { //nolint:recvcheck //using for validation
	returnID kernel.UUID
	tenantID kernel.TenantID

	guard guard.ConstructorGuard
}

// NewMarkReturnInTransitCommand creates a command marking the return as moving.
func NewMarkReturnInTransitCommand(returnID kernel.UUID, tenantID kernel.TenantID) (MarkReturnInTransitCommand, error) {
	cmd := MarkReturnInTransitCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setReturnID(returnID),
		cmd.setTenantID(tenantID),
	); err != nil {
		return MarkReturnInTransitCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkReturnInTransitCommand) Validate() error {
	return c.guard.Validate(ErrMarkReturnInTransitCommandIsNotConstructed)
}

// ReturnID returns the target return.
func (c MarkReturnInTransitCommand) ReturnID() kernel.UUID { return c.returnID }

// TenantID returns the owning tenant.
func (c MarkReturnInTransitCommand) TenantID() kernel.TenantID { return c.tenantID }

func (c *MarkReturnInTransitCommand) setReturnID(returnID kernel.UUID) error {
	if err := returnID.Validate(); err != nil {
		return err
	}
	c.returnID = returnID
	return nil
}

func (c *MarkReturnInTransitCommand) setTenantID(tenantID kernel.TenantID) error {
	if err := tenantID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("tenantId", err)
	}
	c.tenantID = tenantID
	return nil
}
