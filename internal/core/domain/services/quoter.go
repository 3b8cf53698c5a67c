package services

import (
	"errors"
	"sort"
	"sync"

	"fulfillment/internal/core/domain/model/carrier"
	"fulfillment/internal/core/domain/model/tariff"
	"fulfillment/internal/core/domain/model/zone"
)

// ErrNoRateAvailable is returned when the destination resolves to a zone but
// no tariff survives the eligibility checks.
var ErrNoRateAvailable = errors.New("no rate available")

// QuoteRequest is the input of one quoting run: the destination plus the
// shipment-side pricing inputs shared by every tariff.
type QuoteRequest struct {
	CountryCode string
	PostalCode  string
	Pricing     PricingRequest
}

// Quoter is a domain service that produces the ranked list of shipping
// options for a destination. It resolves the zone once, then fans the pricer
// out concurrently over every tariff scoped to that zone or unscoped.
//
// Each pricing call is self-contained and side-effect-free, so the fan-out
// shares no mutable state beyond the result slice.
type Quoter struct {
	resolver ZoneResolver
	pricer   RatePricer
}

// NewQuoter creates a new Quoter instance.
func NewQuoter() Quoter {
	return Quoter{
		resolver: NewZoneResolver(),
		pricer:   NewRatePricer(),
	}
}

// Quote resolves the destination zone and prices every eligible tariff,
// returning options sorted ascending by final cost, ties broken by carrier
// name for determinism.
//
// ErrAddressNotServiceable propagates from zone resolution; an empty result
// after eligibility filtering fails with ErrNoRateAvailable.
func (q Quoter) Quote(
	req QuoteRequest,
	zones []*zone.Zone,
	tariffs []*tariff.Tariff,
	carriers []*carrier.Carrier,
) (*zone.Zone, []PricedOption, error) {
	matched, err := q.resolver.Resolve(req.CountryCode, req.PostalCode, zones)
	if err != nil {
		return nil, nil, err
	}

	carriersByID := make(map[string]*carrier.Carrier, len(carriers))
	for _, c := range carriers {
		if err := c.Validate(); err != nil {
			return nil, nil, err
		}
		carriersByID[c.ID().String()] = c
	}

	// Options are ranked by cost, so every candidate must quote in the
	// request's currency; tariffs denominated in another one are out.
	requestCurrency := req.Pricing.OrderTotal.Currency()

	candidates := make([]*tariff.Tariff, 0, len(tariffs))
	for _, t := range tariffs {
		if err := t.Validate(); err != nil {
			return nil, nil, err
		}
		if t.AppliesToZone(matched.ID()) && t.Currency().IsEqual(requestCurrency) {
			candidates = append(candidates, t)
		}
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		options []PricedOption
		failure error
	)

	for _, t := range candidates {
		c, ok := carriersByID[t.CarrierID().String()]
		if !ok {
			continue
		}

		wg.Add(1)
		go func(t *tariff.Tariff, c *carrier.Carrier) {
			defer wg.Done()

			option, err := q.pricer.Price(t, c, req.Pricing)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case errors.Is(err, ErrTariffIneligible):
				// Filtered out, not a failure.
			case err != nil:
				failure = errors.Join(failure, err)
			default:
				options = append(options, option)
			}
		}(t, c)
	}
	wg.Wait()

	if failure != nil {
		return nil, nil, failure
	}
	if len(options) == 0 {
		return nil, nil, ErrNoRateAvailable
	}

	sort.Slice(options, func(i, j int) bool {
		if cmp := options[i].Cost.Cmp(options[j].Cost); cmp != 0 {
			return cmp < 0
		}
		return options[i].CarrierName < options[j].CarrierName
	})

	return matched, options, nil
}
