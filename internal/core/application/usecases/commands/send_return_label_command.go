package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrSendReturnLabelCommandIsNotConstructed = errors.New(
	"SendReturnLabelCommand must be created via NewSendReturnLabelCommand constructor",
)

// SendReturnLabelCommand attaches a prepaid return label to an approved
// return and hands it to the customer.
type SendReturnLabelCommand struct { //nolint:recvcheck //using for validation
	returnID       kernel.UUID
	tenantID       kernel.TenantID
	trackingNumber string
	labelURL       string

	guard guard.ConstructorGuard
}

// NewSendReturnLabelCommand creates a command carrying the issued label.
func NewSendReturnLabelCommand(returnID kernel.UUID, tenantID kernel.TenantID, trackingNumber, labelURL string) (SendReturnLabelCommand, error) {
	cmd := SendReturnLabelCommand{
		labelURL: labelURL,

		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setReturnID(returnID),
		cmd.setTenantID(tenantID),
		cmd.setTrackingNumber(trackingNumber),
	); err != nil {
		return SendReturnLabelCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SendReturnLabelCommand) Validate() error {
	return c.guard.Validate(ErrSendReturnLabelCommandIsNotConstructed)
}

// ReturnID returns the target return.
func (c SendReturnLabelCommand) ReturnID() kernel.UUID { return c.returnID }

// TenantID returns the owning tenant.
func (c SendReturnLabelCommand) TenantID() kernel.TenantID { return c.tenantID }

// TrackingNumber returns the label's tracking number.
func (c SendReturnLabelCommand) TrackingNumber() string { return c.trackingNumber }

// LabelURL returns where the label document can be fetched.
func (c SendReturnLabelCommand) LabelURL() string { return c.labelURL }

func (c *SendReturnLabelCommand) setReturnID(returnID kernel.UUID) error {
	if err := returnID.Validate(); err != nil {
		return err
	}
	c.returnID = returnID
	return nil
}

func (c *SendReturnLabelCommand) setTenantID(tenantID kernel.TenantID) error {
	if err := tenantID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("tenantId", err)
	}
	c.tenantID = tenantID
	return nil
}

func (c *SendReturnLabelCommand) setTrackingNumber(trackingNumber string) error {
	if trackingNumber == "" {
		return errs.NewValueIsRequiredError("trackingNumber")
	}
	c.trackingNumber = trackingNumber
	return nil
}
