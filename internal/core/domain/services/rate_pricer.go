package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"fulfillment/internal/core/domain/model/carrier"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/tariff"
)

// ErrTariffIneligible marks a tariff that must not be priced for the request:
// inactive or out of its validity window, owned by an inactive carrier, or the
// shipment exceeds the carrier's physical limits. The wrapped message names
// the reason.
var ErrTariffIneligible = errors.New("tariff is not eligible")

// PricingRequest carries the shipment-side inputs of one pricing run. The
// same request is shared by every tariff the quoter fans out over.
type PricingRequest struct {
	BillableWeight kernel.Weight
	OrderTotal     kernel.Money
	ItemCount      int
	IsResidential  bool
	// LongestSideCm and GirthCm are the worst-case package measures, used for
	// carrier limit checks and the oversize surcharge.
	LongestSideCm float64
	GirthCm       float64
	// Day is the pricing date for validity-window checks. Zero means today.
	Day time.Time
}

func (r PricingRequest) day() time.Time {
	if r.Day.IsZero() {
		return time.Now().UTC()
	}
	return r.Day
}

// PricedOption is one ranked quote: a tariff of a carrier with its final cost.
// BaseCost is the method formula's result; SurchargeCost is everything added
// on top, fuel included. Both are zero when Free.
type PricedOption struct {
	TariffID      kernel.UUID
	TariffCode    string
	TariffName    string
	CarrierID     kernel.UUID
	CarrierCode   string
	CarrierName   string
	Method        tariff.Method
	Cost          kernel.Money
	BaseCost      kernel.Money
	SurchargeCost kernel.Money
	Free          bool
	DeliveryDays  carrier.DeliveryDays
}

// RatePricer is a domain service that prices a single tariff for a shipment
// request. It is pure: same inputs, same quote.
type RatePricer struct{}

// NewRatePricer creates a new RatePricer instance.
func NewRatePricer() RatePricer {
	return RatePricer{}
}

// Price computes the final cost of shipping the request on the given tariff.
//
// The base formula is dispatched on the tariff's pricing method, then
// surcharges apply in fixed order: residential amount, oversize amount, fuel
// percentage on the running cost. Last, a configured free-shipping threshold
// met by the order total forces the cost to zero, overriding every surcharge.
//
// Ineligible tariffs fail with ErrTariffIneligible and are never priced.
func (p RatePricer) Price(t *tariff.Tariff, c *carrier.Carrier, req PricingRequest) (PricedOption, error) {
	if err := t.Validate(); err != nil {
		return PricedOption{}, err
	}
	if err := c.Validate(); err != nil {
		return PricedOption{}, err
	}
	if err := p.checkEligibility(t, c, req); err != nil {
		return PricedOption{}, err
	}

	base, err := p.baseCost(t, req)
	if err != nil {
		return PricedOption{}, err
	}

	cost, err := p.applySurcharges(t, req, base)
	if err != nil {
		return PricedOption{}, err
	}

	cost = cost.Rounded()
	base = base.Rounded()

	free := false
	if threshold := t.FreeShippingThreshold(); threshold != nil &&
		t.Currency().IsEqual(req.OrderTotal.Currency()) &&
		req.OrderTotal.Cmp(*threshold) >= 0 {
		zero, zeroErr := kernel.ZeroMoney(t.Currency())
		if zeroErr != nil {
			return PricedOption{}, zeroErr
		}
		cost, base = zero, zero
		free = true
	}

	surcharge, err := cost.Sub(base)
	if err != nil {
		return PricedOption{}, err
	}

	return PricedOption{
		TariffID:      t.ID(),
		TariffCode:    t.Code(),
		TariffName:    t.Name(),
		CarrierID:     c.ID(),
		CarrierCode:   c.Code(),
		CarrierName:   c.Name(),
		Method:        t.Method(),
		Cost:          cost,
		BaseCost:      base,
		SurchargeCost: surcharge,
		Free:          free,
		DeliveryDays:  c.DeliveryDays(),
	}, nil
}

func (p RatePricer) checkEligibility(t *tariff.Tariff, c *carrier.Carrier, req PricingRequest) error {
	switch {
	case !t.IsUsableOn(req.day()):
		return fmt.Errorf("%w: tariff %s is inactive or outside its validity window", ErrTariffIneligible, t.Code())
	case !c.IsActive():
		return fmt.Errorf("%w: carrier %s is inactive", ErrTariffIneligible, c.Code())
	case !c.AcceptsWeight(req.BillableWeight):
		return fmt.Errorf("%w: billable weight %.3f kg exceeds carrier %s limit", ErrTariffIneligible, req.BillableWeight.Kg(), c.Code())
	}

	limits := c.Limits()
	if limits.MaxLengthCm > 0 && req.LongestSideCm > limits.MaxLengthCm {
		return fmt.Errorf("%w: longest side %.1f cm exceeds carrier %s limit", ErrTariffIneligible, req.LongestSideCm, c.Code())
	}
	if limits.MaxGirthCm > 0 && req.GirthCm > limits.MaxGirthCm {
		return fmt.Errorf("%w: girth %.1f cm exceeds carrier %s limit", ErrTariffIneligible, req.GirthCm, c.Code())
	}
	return nil
}

func (p RatePricer) baseCost(t *tariff.Tariff, req PricingRequest) (kernel.Money, error) {
	switch t.Method() {
	case tariff.Flat:
		return t.BaseRate(), nil

	case tariff.PerWeight:
		if tiers := t.Tiers(); len(tiers) > 0 {
			return p.tierRate(tiers, req.BillableWeight), nil
		}
		perWeight := t.PerKgRate().Mul(decimal.NewFromFloat(req.BillableWeight.Kg()))
		return t.BaseRate().Add(perWeight)

	case tariff.PerPriceBracket:
		return p.bracketRate(t, req.OrderTotal), nil

	case tariff.PerItem:
		perItems := t.PerItemRate().Mul(decimal.NewFromInt(int64(req.ItemCount)))
		return t.BaseRate().Add(perItems)

	case tariff.Volumetric:
		// Billable weight already folds in the dimensional weight.
		perWeight := t.PerKgRate().Mul(decimal.NewFromFloat(req.BillableWeight.Kg()))
		return t.BaseRate().Add(perWeight)

	default:
		return kernel.Money{}, fmt.Errorf("%w: unpriceable method %s", ErrTariffIneligible, t.Method())
	}
}

// tierRate selects the first tier (ascending ceilings) whose ceiling covers
// the weight. A weight above every ceiling takes the highest tier's rate with
// no extrapolation.
func (p RatePricer) tierRate(tiers []tariff.WeightTier, weight kernel.Weight) kernel.Money {
	for _, tier := range tiers {
		if weight.Kg() <= tier.MaxWeightKg {
			return tier.Rate
		}
	}
	return tiers[len(tiers)-1].Rate
}

// bracketRate selects the bracket whose [min, max) range contains the order
// total, falling back to the base rate when none matches.
func (p RatePricer) bracketRate(t *tariff.Tariff, orderTotal kernel.Money) kernel.Money {
	for _, b := range t.Brackets() {
		if orderTotal.Cmp(b.Min) < 0 {
			continue
		}
		if b.Max != nil && orderTotal.Cmp(*b.Max) >= 0 {
			continue
		}
		return b.Rate
	}
	return t.BaseRate()
}

func (p RatePricer) applySurcharges(t *tariff.Tariff, req PricingRequest, cost kernel.Money) (kernel.Money, error) {
	s := t.Surcharges()
	var err error

	if req.IsResidential && !s.ResidentialAmount.IsZero() {
		if cost, err = cost.Add(s.ResidentialAmount); err != nil {
			return kernel.Money{}, err
		}
	}

	if s.OversizeOverLongestCm > 0 && req.LongestSideCm > s.OversizeOverLongestCm && !s.OversizeAmount.IsZero() {
		if cost, err = cost.Add(s.OversizeAmount); err != nil {
			return kernel.Money{}, err
		}
	}

	if !s.FuelPercent.IsZero() {
		factor := decimal.NewFromInt(1).Add(s.FuelPercent.Div(decimal.NewFromInt(100)))
		cost = cost.Mul(factor)
	}

	return cost, nil
}
