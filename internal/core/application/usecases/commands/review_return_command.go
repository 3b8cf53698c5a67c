package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrReviewReturnCommandIsNotConstructed = errors.New(
	"ReviewReturnCommand must be created via NewReviewReturnCommand constructor",
)

// ReviewReturnCommand represents the merchant's decision on a return request:
// approve it or reject it with a reason. Rejection is also legal after
// inspection; the aggregate decides which transitions apply.
type ReviewReturnCommand struct { //nolint:recvcheck //using for validation
	returnID kernel.UUID
	tenantID kernel.TenantID
	approve  bool
	notes    string

	guard guard.ConstructorGuard
}

// NewReviewReturnCommand creates a command recording an approval or rejection.
func NewReviewReturnCommand(returnID kernel.UUID, tenantID kernel.TenantID, approve bool, notes string) (ReviewReturnCommand, error) {
	cmd := ReviewReturnCommand{
		approve: approve,
		notes:   notes,

		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setReturnID(returnID),
		cmd.setTenantID(tenantID),
	); err != nil {
		return ReviewReturnCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReviewReturnCommand) Validate() error {
	return c.guard.Validate(ErrReviewReturnCommandIsNotConstructed)
}

// ReturnID returns the return under review.
func (c ReviewReturnCommand) ReturnID() kernel.UUID { return c.returnID }

// TenantID returns the owning tenant.
func (c ReviewReturnCommand) TenantID() kernel.TenantID { return c.tenantID }

// Approve reports whether the decision is an approval.
func (c ReviewReturnCommand) Approve() bool { return c.approve }

// Notes returns the review notes, required for rejections.
func (c ReviewReturnCommand) Notes() string { return c.notes }

func (c *ReviewReturnCommand) setReturnID(returnID kernel.UUID) error {
	if err := returnID.Validate(); err != nil {
		return err
	}
	c.returnID = returnID
	return nil
}

func (c *ReviewReturnCommand) setTenantID(tenantID kernel.TenantID) error {
	if err := tenantID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("tenantId", err)
	}
	c.tenantID = tenantID
	return nil
}
