package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/carrier"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrUpdateCarrierCommandIsNotConstructed = errors.New(
	"UpdateCarrierCommand must be created via NewUpdateCarrierCommand constructor",
)

// UpdateCarrierCommand represents a request to replace a carrier's editable
// attributes. Setting active true restores a soft-deleted carrier.
type UpdateCarrierCommand struct { //nolint:recvcheck //using for validation
	carrierID    kernel.UUID
	tenantID     kernel.TenantID
	version      int64
	name         string
	capabilities carrier.Capabilities
	limits       carrier.ServiceLimits
	deliveryDays carrier.DeliveryDays
	active       bool

	guard guard.ConstructorGuard
}

// NewUpdateCarrierCommand creates a command to update an existing carrier.
func NewUpdateCarrierCommand(
	carrierID kernel.UUID,
	tenantID kernel.TenantID,
	version int64,
	name string,
	capabilities carrier.Capabilities,
	limits carrier.ServiceLimits,
	deliveryDays carrier.DeliveryDays,
	active bool,
) (UpdateCarrierCommand, error) {
	cmd := UpdateCarrierCommand{
		version:      version,
		name:         name,
		capabilities: capabilities,
		limits:       limits,
		deliveryDays: deliveryDays,
		active:       active,

		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCarrierID(carrierID),
		cmd.setTenantID(tenantID),
	); err != nil {
		return UpdateCarrierCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateCarrierCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCarrierCommandIsNotConstructed)
}

// CarrierID returns the carrier to update.
func (c UpdateCarrierCommand) CarrierID() kernel.UUID { return c.carrierID }

// TenantID returns the owning tenant.
func (c UpdateCarrierCommand) TenantID() kernel.TenantID { return c.tenantID }

// Version returns the expected aggregate version.
func (c UpdateCarrierCommand) Version() int64 { return c.version }

// Name returns the new display name.
func (c UpdateCarrierCommand) Name() string { return c.name }

// Capabilities returns the new feature flags.
func (c UpdateCarrierCommand) Capabilities() carrier.Capabilities { return c.capabilities }

// Limits returns the new service limits.
func (c UpdateCarrierCommand) Limits() carrier.ServiceLimits { return c.limits }

// DeliveryDays returns the new delivery estimate range.
func (c UpdateCarrierCommand) DeliveryDays() carrier.DeliveryDays { return c.deliveryDays }

// Active returns the target active flag.
func (c UpdateCarrierCommand) Active() bool { return c.active }

func (c *UpdateCarrierCommand) setCarrierID(carrierID kernel.UUID) error {
	if err := carrierID.Validate(); err != nil {
		return err
	}
	c.carrierID = carrierID
	return nil
}

func (c *UpdateCarrierCommand) setTenantID(tenantID kernel.TenantID) error {
	if err := tenantID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("tenantId", err)
	}
	c.tenantID = tenantID
	return nil
}
