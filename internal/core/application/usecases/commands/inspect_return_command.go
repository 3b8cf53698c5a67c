package commands

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrInspectReturnCommandIsNotConstructed = errors.New(
	"InspectReturnCommand must be created via NewInspectReturnCommand constructor",
)

// InspectReturnCommand records the quality inspection verdict on a
// received return.
type InspectReturnCommand struct { //nolint:recvcheck //using for validation
	returnID    kernel.UUID
	tenantID    kernel.TenantID
	outcome     string
	notes       string
	inspectedAt time.Time

	guard guard.ConstructorGuard
}

// NewInspectReturnCommand creates a command recording the inspection verdict.
func NewInspectReturnCommand(returnID kernel.UUID, tenantID kernel.TenantID, outcome, notes string, inspectedAt time.Time) (InspectReturnCommand, error) {
	cmd := InspectReturnCommand{
		notes:       notes,
		inspectedAt: inspectedAt,

		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setReturnID(returnID),
		cmd.setTenantID(tenantID),
		cmd.setOutcome(outcome),
	); err != nil {
		return InspectReturnCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c InspectReturnCommand) Validate() error {
	return c.guard.Validate(ErrInspectReturnCommandIsNotConstructed)
}

// ReturnID returns the target return.
func (c InspectReturnCommand) ReturnID() kernel.UUID { return c.returnID }

// TenantID returns the owning tenant.
func (c InspectReturnCommand) TenantID() kernel.TenantID { return c.tenantID }

// Outcome returns the inspection outcome.
func (c InspectReturnCommand) Outcome() string { return c.outcome }

// Notes returns optional inspection notes.
func (c InspectReturnCommand) Notes() string { return c.notes }

// InspectedAt returns when the inspection happened.
func (c InspectReturnCommand) InspectedAt() time.Time { return c.inspectedAt }

func (c *InspectReturnCommand) setReturnID(returnID kernel.UUID) error {
	if err := returnID.Validate(); err != nil {
		return err
	}
	c.returnID = returnID
	return nil
}

func (c *InspectReturnCommand) setTenantID(tenantID kernel.TenantID) error {
	if err := tenantID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("tenantId", err)
	}
	c.tenantID = tenantID
	return nil
}

func (c *InspectReturnCommand) setOutcome(outcome string) error {
	if outcome == "" {
		return errs.NewValueIsRequiredError("outcome")
	}
	c.outcome = outcome
	return nil
}
