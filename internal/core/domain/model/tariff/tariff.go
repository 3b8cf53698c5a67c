// Package tariff contains the Tariff aggregate: a priced shipping option
// belonging to one carrier, optionally scoped to one zone, with a pricing
// method, surcharge rules and a validity window.
package tariff

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrTariffIsNotConstructed is returned when a Tariff instance was not created
// through NewTariff or RestoreTariff.
var ErrTariffIsNotConstructed = errors.New("Tariff must be created via NewTariff constructor")

// WeightTier is one row of a per-weight tier table: a fixed rate for billable
// weights up to and including the ceiling.
type WeightTier struct {
	MaxWeightKg float64
	Rate        kernel.Money
}

// PriceBracket is one row of a per-price-bracket table: a fixed rate for order
// totals in [Min, Max). A nil Max leaves the bracket unbounded above.
type PriceBracket struct {
	Min  kernel.Money
	Max  *kernel.Money
	Rate kernel.Money
}

// Surcharges are the optional cost adjustments a tariff applies after the base
// formula. Amounts are in the tariff currency; FuelPercent is a percentage of
// the running cost.
type Surcharges struct {
	FuelPercent       decimal.Decimal
	ResidentialAmount kernel.Money
	OversizeAmount    kernel.Money
	// OversizeOverLongestCm triggers the oversize amount when any package's
	// longest side exceeds it. Zero disables the rule.
	OversizeOverLongestCm float64
}

// ValidityWindow bounds when a tariff is usable, inclusive on both ends at
// date granularity. A nil bound is open-ended.
type ValidityWindow struct {
	From  *time.Time
	Until *time.Time
}

// Contains reports whether the given day falls inside the window.
// Comparison is at date granularity in UTC.
func (w ValidityWindow) Contains(day time.Time) bool {
	d := truncateToDate(day)
	if w.From != nil && d.Before(truncateToDate(*w.From)) {
		return false
	}
	if w.Until != nil && d.After(truncateToDate(*w.Until)) {
		return false
	}
	return true
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Tariff is the aggregate for one priced shipping option.
//
// A tariff is usable only while it is flagged active and today falls inside
// its validity window; the rate pricer additionally checks the owning
// carrier's state and limits.
type Tariff struct {
	id       kernel.UUID
	tenantID kernel.TenantID

	code      string
	name      string
	carrierID kernel.UUID
	zoneID    *kernel.UUID

	method   Method
	currency kernel.Currency

	baseRate    kernel.Money
	perKgRate   kernel.Money
	perItemRate kernel.Money
	tiers       []WeightTier
	brackets    []PriceBracket
	surcharges  Surcharges

	freeShippingThreshold *kernel.Money
	validity              ValidityWindow

	active  bool
	version int64

	isConstructed bool
}

// NewTariff creates an active Tariff. Rate tables are validated eagerly:
// tier ceilings must rise strictly and tier rates must not decrease with the
// ceiling (so a heavier shipment never prices below a lighter one), and
// brackets must not overlap.
func NewTariff(
	id kernel.UUID,
	tenantID kernel.TenantID,
	code string,
	name string,
	carrierID kernel.UUID,
	zoneID *kernel.UUID,
	method Method,
	currency kernel.Currency,
	baseRate kernel.Money,
	perKgRate kernel.Money,
	perItemRate kernel.Money,
	tiers []WeightTier,
	brackets []PriceBracket,
	surcharges Surcharges,
	freeShippingThreshold *kernel.Money,
	validity ValidityWindow,
) (*Tariff, error) {
	t := &Tariff{
		active:        true,
		isConstructed: true,
	}

	if err := errors.Join(
		t.setID(id),
		t.setTenantID(tenantID),
		t.setCode(code),
		t.setName(name),
		t.setCarrierID(carrierID),
		t.setZoneID(zoneID),
		t.setMethod(method),
		t.setCurrency(currency),
		t.setRates(baseRate, perKgRate, perItemRate),
		t.setTiers(tiers),
		t.setBrackets(brackets),
		t.setSurcharges(surcharges),
		t.setFreeShippingThreshold(freeShippingThreshold),
		t.setValidity(validity),
	); err != nil {
		return nil, err
	}

	return t, nil
}

// RestoreTariff reconstructs a Tariff from persistence.
func RestoreTariff(
	id kernel.UUID,
	tenantID kernel.TenantID,
	code string,
	name string,
	carrierID kernel.UUID,
	zoneID *kernel.UUID,
	method Method,
	currency kernel.Currency,
	baseRate kernel.Money,
	perKgRate kernel.Money,
	perItemRate kernel.Money,
	tiers []WeightTier,
	brackets []PriceBracket,
	surcharges Surcharges,
	freeShippingThreshold *kernel.Money,
	validity ValidityWindow,
	active bool,
	version int64,
) (*Tariff, error) {
	t, err := NewTariff(id, tenantID, code, name, carrierID, zoneID, method, currency,
		baseRate, perKgRate, perItemRate, tiers, brackets, surcharges, freeShippingThreshold, validity)
	if err != nil {
		return nil, err
	}

	t.active = active
	t.version = version
	return t, nil
}

// Validate ensures the Tariff was created through a constructor.
func (t *Tariff) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTariffIsNotConstructed
	}
	return nil
}

// ID returns the tariff's unique identifier.
func (t *Tariff) ID() kernel.UUID { return t.id }

// TenantID returns the owning tenant.
func (t *Tariff) TenantID() kernel.TenantID { return t.tenantID }

// Code returns the operator-facing unique tariff code.
func (t *Tariff) Code() string { return t.code }

// Name returns the display name.
func (t *Tariff) Name() string { return t.name }

// CarrierID returns the owning carrier's identifier.
func (t *Tariff) CarrierID() kernel.UUID { return t.carrierID }

// ZoneID returns the scoped zone's identifier, or nil for an unscoped tariff.
func (t *Tariff) ZoneID() *kernel.UUID {
	if t.zoneID == nil {
		return nil
	}
	id := *t.zoneID
	return &id
}

// Method returns the pricing method.
func (t *Tariff) Method() Method { return t.method }

// Currency returns the tariff currency; all its rates are in this currency.
func (t *Tariff) Currency() kernel.Currency { return t.currency }

// BaseRate returns the base rate.
func (t *Tariff) BaseRate() kernel.Money { return t.baseRate }

// PerKgRate returns the per-kilogram rate.
func (t *Tariff) PerKgRate() kernel.Money { return t.perKgRate }

// PerItemRate returns the per-item rate.
func (t *Tariff) PerItemRate() kernel.Money { return t.perItemRate }

// Tiers returns the weight tier table in ascending ceiling order.
func (t *Tariff) Tiers() []WeightTier {
	out := make([]WeightTier, len(t.tiers))
	copy(out, t.tiers)
	return out
}

// Brackets returns the price bracket table in ascending lower-bound order.
func (t *Tariff) Brackets() []PriceBracket {
	out := make([]PriceBracket, len(t.brackets))
	copy(out, t.brackets)
	return out
}

// Surcharges returns the surcharge rules.
func (t *Tariff) Surcharges() Surcharges { return t.surcharges }

// FreeShippingThreshold returns the order total at which shipping becomes
// free, or nil when the rule is not configured.
func (t *Tariff) FreeShippingThreshold() *kernel.Money {
	if t.freeShippingThreshold == nil {
		return nil
	}
	v := *t.freeShippingThreshold
	return &v
}

// Validity returns the validity window.
func (t *Tariff) Validity() ValidityWindow { return t.validity }

// IsActive reports whether the tariff is flagged active.
func (t *Tariff) IsActive() bool { return t.active }

// Version returns the optimistic-concurrency version counter.
func (t *Tariff) Version() int64 { return t.version }

// IsUsableOn reports whether the tariff may price shipments on the given day:
// flagged active and inside the validity window.
func (t *Tariff) IsUsableOn(day time.Time) bool {
	return t.active && t.validity.Contains(day)
}

// AppliesToZone reports whether the tariff covers the given zone. An unscoped
// tariff covers every zone.
func (t *Tariff) AppliesToZone(zoneID kernel.UUID) bool {
	return t.zoneID == nil || t.zoneID.IsEqual(zoneID)
}

// Update replaces the operator-editable attributes; setting active true
// restores a deactivated tariff. Carrier, zone scope, method and currency are
// fixed at creation: changing the formula is a new tariff, not an edit.
func (t *Tariff) Update(
	name string,
	baseRate kernel.Money,
	perKgRate kernel.Money,
	perItemRate kernel.Money,
	tiers []WeightTier,
	brackets []PriceBracket,
	surcharges Surcharges,
	freeShippingThreshold *kernel.Money,
	validity ValidityWindow,
	active bool,
) error {
	if err := t.Validate(); err != nil {
		return err
	}

	if err := errors.Join(
		t.setName(name),
		t.setRates(baseRate, perKgRate, perItemRate),
		t.setTiers(tiers),
		t.setBrackets(brackets),
		t.setSurcharges(surcharges),
		t.setFreeShippingThreshold(freeShippingThreshold),
		t.setValidity(validity),
	); err != nil {
		return err
	}

	t.active = active
	return nil
}

// Deactivate soft-deletes the tariff.
func (t *Tariff) Deactivate() {
	t.active = false
}

func (t *Tariff) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.id = id
	return nil
}

func (t *Tariff) setTenantID(tenantID kernel.TenantID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}
	t.tenantID = tenantID
	return nil
}

func (t *Tariff) setCode(code string) error {
	if strings.TrimSpace(code) == "" {
		return errs.NewValueIsRequiredError("tariff code")
	}
	t.code = strings.TrimSpace(code)
	return nil
}

func (t *Tariff) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("tariff name")
	}
	t.name = strings.TrimSpace(name)
	return nil
}

func (t *Tariff) setCarrierID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("carrierId", err)
	}
	t.carrierID = id
	return nil
}

func (t *Tariff) setZoneID(id *kernel.UUID) error {
	if id == nil {
		t.zoneID = nil
		return nil
	}
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("zoneId", err)
	}
	v := *id
	t.zoneID = &v
	return nil
}

func (t *Tariff) setMethod(method Method) error {
	if err := method.Validate(); err != nil {
		return err
	}
	t.method = method
	return nil
}

func (t *Tariff) setCurrency(currency kernel.Currency) error {
	if err := currency.Validate(); err != nil {
		return err
	}
	t.currency = currency
	return nil
}

func (t *Tariff) setRates(baseRate, perKgRate, perItemRate kernel.Money) error {
	for name, rate := range map[string]kernel.Money{
		"baseRate":    baseRate,
		"perKgRate":   perKgRate,
		"perItemRate": perItemRate,
	} {
		if err := t.checkRate(name, rate); err != nil {
			return err
		}
	}
	t.baseRate = baseRate
	t.perKgRate = perKgRate
	t.perItemRate = perItemRate
	return nil
}

func (t *Tariff) checkRate(name string, rate kernel.Money) error {
	if err := rate.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(name, err)
	}
	if !rate.Currency().IsEqual(t.currency) {
		return errs.NewValueIsInvalidErrorWithCause(name,
			fmt.Errorf("currency %s differs from tariff currency %s",
				rate.Currency().Code(), t.currency.Code()))
	}
	if rate.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%s is negative", rate))
	}
	return nil
}

func (t *Tariff) setTiers(tiers []WeightTier) error {
	if len(tiers) == 0 {
		t.tiers = nil
		return nil
	}

	sorted := make([]WeightTier, len(tiers))
	copy(sorted, tiers)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].MaxWeightKg < sorted[j].MaxWeightKg })

	for i, tier := range sorted {
		if tier.MaxWeightKg <= 0 {
			return errs.NewValueIsInvalidErrorWithCause("weightTiers",
				fmt.Errorf("tier ceiling %v is not greater than 0", tier.MaxWeightKg))
		}
		if err := t.checkRate("weightTiers", tier.Rate); err != nil {
			return err
		}
		if i > 0 {
			if sorted[i-1].MaxWeightKg == tier.MaxWeightKg {
				return errs.NewValueIsInvalidErrorWithCause("weightTiers",
					fmt.Errorf("duplicate tier ceiling %v", tier.MaxWeightKg))
			}
			if tier.Rate.Cmp(sorted[i-1].Rate) < 0 {
				return errs.NewValueIsInvalidErrorWithCause("weightTiers",
					fmt.Errorf("rate %s at ceiling %v is below the rate of a lighter tier",
						tier.Rate, tier.MaxWeightKg))
			}
		}
	}

	t.tiers = sorted
	return nil
}

func (t *Tariff) setBrackets(brackets []PriceBracket) error {
	if len(brackets) == 0 {
		t.brackets = nil
		return nil
	}

	sorted := make([]PriceBracket, len(brackets))
	copy(sorted, brackets)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Min.Cmp(sorted[j].Min) < 0 })

	for i, b := range sorted {
		if err := t.checkRate("priceBrackets", b.Min); err != nil {
			return err
		}
		if err := t.checkRate("priceBrackets", b.Rate); err != nil {
			return err
		}
		if b.Max != nil {
			if err := t.checkRate("priceBrackets", *b.Max); err != nil {
				return err
			}
			if b.Max.Cmp(b.Min) <= 0 {
				return errs.NewValueIsInvalidErrorWithCause("priceBrackets",
					fmt.Errorf("bracket max %s is not above min %s", *b.Max, b.Min))
			}
		}
		if i > 0 {
			prev := sorted[i-1]
			if prev.Max == nil || prev.Max.Cmp(b.Min) > 0 {
				return errs.NewValueIsInvalidErrorWithCause("priceBrackets",
					fmt.Errorf("bracket starting at %s overlaps the previous one", b.Min))
			}
		}
	}

	t.brackets = sorted
	return nil
}

func (t *Tariff) setSurcharges(s Surcharges) error {
	if s.FuelPercent.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("fuelSurchargePercent",
			fmt.Errorf("%s is negative", s.FuelPercent))
	}
	for name, amount := range map[string]kernel.Money{
		"residentialSurcharge": s.ResidentialAmount,
		"oversizeSurcharge":    s.OversizeAmount,
	} {
		// Unset surcharge amounts are allowed; the pricer treats them as zero.
		if amount.Validate() != nil {
			continue
		}
		if err := t.checkRate(name, amount); err != nil {
			return err
		}
	}
	if s.OversizeOverLongestCm < 0 {
		return errs.NewValueIsInvalidErrorWithCause("oversizeOverLongestCm",
			fmt.Errorf("%v is negative", s.OversizeOverLongestCm))
	}
	t.surcharges = s
	return nil
}

func (t *Tariff) setFreeShippingThreshold(threshold *kernel.Money) error {
	if threshold == nil {
		t.freeShippingThreshold = nil
		return nil
	}
	if err := t.checkRate("freeShippingThreshold", *threshold); err != nil {
		return err
	}
	v := *threshold
	t.freeShippingThreshold = &v
	return nil
}

func (t *Tariff) setValidity(w ValidityWindow) error {
	if w.From != nil && w.Until != nil && truncateToDate(*w.Until).Before(truncateToDate(*w.From)) {
		return errs.NewValueIsInvalidErrorWithCause("validityWindow",
			fmt.Errorf("until %s precedes from %s",
				w.Until.Format(time.DateOnly), w.From.Format(time.DateOnly)))
	}
	t.validity = w
	return nil
}
