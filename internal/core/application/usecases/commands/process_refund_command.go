package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/rma"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrProcessRefundCommandIsNotConstructed = errors.New(
	"ProcessRefundCommand must be created via NewProcessRefundCommand constructor",
)

// ProcessRefundCommand settles a return by paying the customer back,
// possibly keeping a restocking fee.
type ProcessRefundCommand struct { //nolint:recvcheck //using for validation
	returnID      kernel.UUID
	tenantID      kernel.TenantID
	amount        kernel.Money
	method        rma.RefundMethod
	restockingFee kernel.Money

	guard guard.ConstructorGuard
}

// NewProcessRefundCommand creates a command carrying the refund terms.
func NewProcessRefundCommand(returnID kernel.UUID, tenantID kernel.TenantID, amount kernel.Money, method rma.RefundMethod, restockingFee kernel.Money) (ProcessRefundCommand, error) {
	cmd := ProcessRefundCommand{
		restockingFee: restockingFee,

		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setReturnID(returnID),
		cmd.setTenantID(tenantID),
		cmd.setAmount(amount),
		cmd.setMethod(method),
	); err != nil {
		return ProcessRefundCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ProcessRefundCommand) Validate() error {
	return c.guard.Validate(ErrProcessRefundCommandIsNotConstructed)
}

// ReturnID returns the return being refunded.
func (c ProcessRefundCommand) ReturnID() kernel.UUID { return c.returnID }

// TenantID returns the owning tenant.
func (c ProcessRefundCommand) TenantID() kernel.TenantID { return c.tenantID }

// Amount returns the gross refund amount.
func (c ProcessRefundCommand) Amount() kernel.Money { return c.amount }

// Method returns how the refund is paid out.
func (c ProcessRefundCommand) Method() rma.RefundMethod { return c.method }

// RestockingFee returns the fee withheld from the refund.
func (c ProcessRefundCommand) RestockingFee() kernel.Money { return c.restockingFee }

func (c *ProcessRefundCommand) setReturnID(returnID kernel.UUID) error {
	if err := returnID.Validate(); err != nil {
		return err
	}
	c.returnID = returnID
	return nil
}

func (c *ProcessRefundCommand) setTenantID(tenantID kernel.TenantID) error {
	if err := tenantID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("tenantId", err)
	}
	c.tenantID = tenantID
	return nil
}

func (c *ProcessRefundCommand) setAmount(amount kernel.Money) error {
	if err := amount.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("amount", err)
	}
	c.amount = amount
	return nil
}

func (c *ProcessRefundCommand) setMethod(method rma.RefundMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}
	c.method = method
	return nil
}
