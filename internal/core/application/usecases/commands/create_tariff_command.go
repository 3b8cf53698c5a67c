package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/tariff"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrCreateTariffCommandIsNotConstructed = errors.New(
	"CreateTariffCommand must be created via NewCreateTariffCommand constructor",
)

// CreateTariffCommand represents a request to create a priced shipping option
// for a carrier, optionally scoped to one zone.
type CreateTariffCommand struct { //nolint:recvcheck //using for validation
	tariffID  kernel.UUID
	tenantID  kernel.TenantID
	code      string
	name      string
	carrierID kernel.UUID
	zoneID    *kernel.UUID
	method    tariff.Method
	currency  kernel.Currency

	baseRate    kernel.Money
	perKgRate   kernel.Money
	perItemRate kernel.Money
	tiers       []tariff.WeightTier
	brackets    []tariff.PriceBracket
	surcharges  tariff.Surcharges
	threshold   *kernel.Money
	validity    tariff.ValidityWindow

	guard guard.ConstructorGuard
}

// NewCreateTariffCommand creates a command to register a new tariff. Rate
// table consistency is enforced by the aggregate.
func NewCreateTariffCommand(
	tariffID kernel.UUID,
	tenantID kernel.TenantID,
	code string,
	name string,
	carrierID kernel.UUID,
	zoneID *kernel.UUID,
	method tariff.Method,
	currency kernel.Currency,
	baseRate kernel.Money,
	perKgRate kernel.Money,
	perItemRate kernel.Money,
	tiers []tariff.WeightTier,
	brackets []tariff.PriceBracket,
	surcharges tariff.Surcharges,
	threshold *kernel.Money,
	validity tariff.ValidityWindow,
) (CreateTariffCommand, error) {
	cmd := CreateTariffCommand{
		code:        code,
		name:        name,
		zoneID:      zoneID,
		method:      method,
		currency:    currency,
		baseRate:    baseRate,
		perKgRate:   perKgRate,
		perItemRate: perItemRate,
		tiers:       tiers,
		brackets:    brackets,
		surcharges:  surcharges,
		threshold:   threshold,
		validity:    validity,

		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTariffID(tariffID),
		cmd.setTenantID(tenantID),
		cmd.setCarrierID(carrierID),
	); err != nil {
		return CreateTariffCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateTariffCommand) Validate() error {
	return c.guard.Validate(ErrCreateTariffCommandIsNotConstructed)
}

// TariffID returns the identifier for the new tariff.
func (c CreateTariffCommand) TariffID() kernel.UUID { return c.tariffID }

// TenantID returns the owning tenant.
func (c CreateTariffCommand) TenantID() kernel.TenantID { return c.tenantID }

// Code returns the tenant-unique tariff code.
func (c CreateTariffCommand) Code() string { return c.code }

// Name returns the display name.
func (c CreateTariffCommand) Name() string { return c.name }

// CarrierID returns the owning carrier.
func (c CreateTariffCommand) CarrierID() kernel.UUID { return c.carrierID }

// ZoneID returns the zone scope, nil for an unscoped tariff.
func (c CreateTariffCommand) ZoneID() *kernel.UUID { return c.zoneID }

// Method returns the pricing method.
func (c CreateTariffCommand) Method() tariff.Method { return c.method }

// Currency returns the tariff currency.
func (c CreateTariffCommand) Currency() kernel.Currency { return c.currency }

// BaseRate returns the base rate.
func (c CreateTariffCommand) BaseRate() kernel.Money { return c.baseRate }

// PerKgRate returns the per-kilogram rate.
func (c CreateTariffCommand) PerKgRate() kernel.Money { return c.perKgRate }

// PerItemRate returns the per-item rate.
func (c CreateTariffCommand) PerItemRate() kernel.Money { return c.perItemRate }

// Tiers returns the weight tier table.
func (c CreateTariffCommand) Tiers() []tariff.WeightTier { return c.tiers }

// Brackets returns the price bracket table.
func (c CreateTariffCommand) Brackets() []tariff.PriceBracket { return c.brackets }

// Surcharges returns the surcharge rules.
func (c CreateTariffCommand) Surcharges() tariff.Surcharges { return c.surcharges }

// Threshold returns the free-shipping threshold, nil when not configured.
func (c CreateTariffCommand) Threshold() *kernel.Money { return c.threshold }

// Validity returns the validity window.
func (c CreateTariffCommand) Validity() tariff.ValidityWindow { return c.validity }

func (c *CreateTariffCommand) setTariffID(tariffID kernel.UUID) error {
	if err := tariffID.Validate(); err != nil {
		return err
	}
	c.tariffID = tariffID
	return nil
}

func (c *CreateTariffCommand) setTenantID(tenantID kernel.TenantID) error {
	if err := tenantID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("tenantId", err)
	}
	c.tenantID = tenantID
	return nil
}

func (c *CreateTariffCommand) setCarrierID(carrierID kernel.UUID) error {
	if err := carrierID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("carrierId", err)
	}
	c.carrierID = carrierID
	return nil
}
