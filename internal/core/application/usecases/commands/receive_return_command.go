package commands

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrReceiveReturnCommandIsNotConstructed = errors.New(
	"ReceiveReturnCommand must be created via NewReceiveReturnCommand constructor",
)

// ReceiveReturnCommand records the physical arrival of a return parcel
// at the warehouse.
type ReceiveReturnCommand struct { //nolint:recvcheck //using for validation
	returnID   kernel.UUID
	tenantID   kernel.TenantID
	condition  string
	notes      string
	receivedAt time.Time

	guard guard.ConstructorGuard
}

// NewReceiveReturnCommand creates a command recording parcel receipt.
func NewReceiveReturnCommand(returnID kernel.UUID, tenantID kernel.TenantID, condition, notes string, receivedAt time.Time) (ReceiveReturnCommand, error) {
	cmd := ReceiveReturnCommand{
		notes:      notes,
		receivedAt: receivedAt,

		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setReturnID(returnID),
		cmd.setTenantID(tenantID),
		cmd.setCondition(condition),
	); err != nil {
		return ReceiveReturnCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReceiveReturnCommand) Validate() error {
	return c.guard.Validate(ErrReceiveReturnCommandIsNotConstructed)
}

// ReturnID returns the target return.
func (c ReceiveReturnCommand) ReturnID() kernel.UUID { return c.returnID }

// TenantID returns the owning tenant.
func (c ReceiveReturnCommand) TenantID() kernel.TenantID { return c.tenantID }

// Condition returns the assessed condition of the received parcel.
func (c ReceiveReturnCommand) Condition() string { return c.condition }

// Notes returns optional receiving notes.
func (c ReceiveReturnCommand) Notes() string { return c.notes }

// ReceivedAt returns when the parcel arrived.
func (c ReceiveReturnCommand) ReceivedAt() time.Time { return c.receivedAt }

func (c *ReceiveReturnCommand) setReturnID(returnID kernel.UUID) error {
	if err := returnID.Validate(); err != nil {
		return err
	}
	c.returnID = returnID
	return nil
}

func (c *ReceiveReturnCommand) setTenantID(tenantID kernel.TenantID) error {
	if err := tenantID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("tenantId", err)
	}
	c.tenantID = tenantID
	return nil
}

func (c *ReceiveReturnCommand) setCondition(condition string) error {
	if condition == "" {
		return errs.NewValueIsRequiredError("condition")
	}
	c.condition = condition
	return nil
}
