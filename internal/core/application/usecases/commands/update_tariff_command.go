package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/tariff"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrUpdateTariffCommandIsNotConstructed = errors.New(
	"UpdateTariffCommand must be created via NewUpdateTariffCommand constructor",
)

// UpdateTariffCommand represents a request to replace a tariff's rates and
// rules. Carrier, zone scope, method and currency are fixed at creation;
// changing those is a new tariff.
type UpdateTariffCommand struct { //nolint:recvcheck //using for validation
	tariffID kernel.UUID
	tenantID kernel.TenantID
	version  int64
	name     string

	baseRate    kernel.Money
	perKgRate   kernel.Money
	perItemRate kernel.Money
	tiers       []tariff.WeightTier
	brackets    []tariff.PriceBracket
	surcharges  tariff.Surcharges
	threshold   *kernel.Money
	validity    tariff.ValidityWindow
	active      bool

	guard guard.ConstructorGuard
}

// NewUpdateTariffCommand creates a command to update an existing tariff.
func NewUpdateTariffCommand(
	tariffID kernel.UUID,
	tenantID kernel.TenantID,
	version int64,
	name string,
	baseRate kernel.Money,
	perKgRate kernel.Money,
	perItemRate kernel.Money,
	tiers []tariff.WeightTier,
	brackets []tariff.PriceBracket,
	surcharges tariff.Surcharges,
	threshold *kernel.Money,
	validity tariff.ValidityWindow,
	active bool,
) (UpdateTariffCommand, error) {
	cmd := UpdateTariffCommand{
		version:     version,
		name:        name,
		baseRate:    baseRate,
		perKgRate:   perKgRate,
		perItemRate: perItemRate,
		tiers:       tiers,
		brackets:    brackets,
		surcharges:  surcharges,
		threshold:   threshold,
		validity:    validity,
		active:      active,

		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTariffID(tariffID),
		cmd.setTenantID(tenantID),
	); err != nil {
		return UpdateTariffCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateTariffCommand) Validate() error {
	return c.guard.Validate(ErrUpdateTariffCommandIsNotConstructed)
}

// TariffID returns the tariff to update.
func (c UpdateTariffCommand) TariffID() kernel.UUID { return c.tariffID }

// TenantID returns the owning tenant.
func (c UpdateTariffCommand) TenantID() kernel.TenantID { return c.tenantID }

// Version returns the expected aggregate version.
func (c UpdateTariffCommand) Version() int64 { return c.version }

// Name returns the new display name.
func (c UpdateTariffCommand) Name() string { return c.name }

// BaseRate returns the new base rate.
func (c UpdateTariffCommand) BaseRate() kernel.Money { return c.baseRate }

// PerKgRate returns the new per-kilogram rate.
func (c UpdateTariffCommand) PerKgRate() kernel.Money { return c.perKgRate }

// PerItemRate returns the new per-item rate.
func (c UpdateTariffCommand) PerItemRate() kernel.Money { return c.perItemRate }

// Tiers returns the new weight tier table.
func (c UpdateTariffCommand) Tiers() []tariff.WeightTier { return c.tiers }

// Brackets returns the new price bracket table.
func (c UpdateTariffCommand) Brackets() []tariff.PriceBracket { return c.brackets }

// Surcharges returns the new surcharge rules.
func (c UpdateTariffCommand) Surcharges() tariff.Surcharges { return c.surcharges }

// Threshold returns the new free-shipping threshold.
func (c UpdateTariffCommand) Threshold() *kernel.Money { return c.threshold }

// Validity returns the new validity window.
func (c UpdateTariffCommand) Validity() tariff.ValidityWindow { return c.validity }

// Active returns the target active flag.
func (c UpdateTariffCommand) Active() bool { return c.active }

func (c *UpdateTariffCommand) setTariffID(tariffID kernel.UUID) error {
	if err := tariffID.Validate(); err != nil {
		return err
	}
	c.tariffID = tariffID
	return nil
}

func (c *UpdateTariffCommand) setTenantID(tenantID kernel.TenantID) error {
	if err := tenantID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("tenantId", err)
	}
	c.tenantID = tenantID
	return nil
}
