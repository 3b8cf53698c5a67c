package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/carrier"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrCreateCarrierCommandIsNotConstructed = errors.New(
	"CreateCarrierCommand must be created via NewCreateCarrierCommand constructor",
)

// CreateCarrierCommand represents a request to register a new carrier with
// its capabilities, service limits and delivery-day range.
type CreateCarrierCommand struct { //nolint:recvcheck //using for validation
	carrierID    kernel.UUID
	tenantID     kernel.TenantID
	code         string
	name         string
	capabilities carrier.Capabilities
	limits       carrier.ServiceLimits
	deliveryDays carrier.DeliveryDays

	guard guard.ConstructorGuard
}

// NewCreateCarrierCommand creates a command to register a new carrier.
func NewCreateCarrierCommand(
	carrierID kernel.UUID,
	tenantID kernel.TenantID,
	code string,
	name string,
	capabilities carrier.Capabilities,
	limits carrier.ServiceLimits,
	deliveryDays carrier.DeliveryDays,
) (CreateCarrierCommand, error) {
	cmd := CreateCarrierCommand{
		code:         code,
		name:         name,
		capabilities: capabilities,
		limits:       limits,
		deliveryDays: deliveryDays,

		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCarrierID(carrierID),
		cmd.setTenantID(tenantID),
	); err != nil {
		return CreateCarrierCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateCarrierCommand) Validate() error {
	return c.guard.Validate(ErrCreateCarrierCommandIsNotConstructed)
}

// CarrierID returns the identifier for the new carrier.
func (c CreateCarrierCommand) CarrierID() kernel.UUID { return c.carrierID }

// TenantID returns the owning tenant.
func (c CreateCarrierCommand) TenantID() kernel.TenantID { return c.tenantID }

// Code returns the tenant-unique carrier code.
func (c CreateCarrierCommand) Code() string { return c.code }

// Name returns the display name.
func (c CreateCarrierCommand) Name() string { return c.name }

// Capabilities returns the carrier's feature flags.
func (c CreateCarrierCommand) Capabilities() carrier.Capabilities { return c.capabilities }

// Limits returns the carrier's physical service limits.
func (c CreateCarrierCommand) Limits() carrier.ServiceLimits { return c.limits }

// DeliveryDays returns the standard delivery estimate range.
func (c CreateCarrierCommand) DeliveryDays() carrier.DeliveryDays { return c.deliveryDays }

func (c *CreateCarrierCommand) setCarrierID(carrierID kernel.UUID) error {
	if err := carrierID.Validate(); err != nil {
		return err
	}
	c.carrierID = carrierID
	return nil
}

func (c *CreateCarrierCommand) setTenantID(tenantID kernel.TenantID) error {
	if err := tenantID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("tenantId", err)
	}
	c.tenantID = tenantID
	return nil
}
