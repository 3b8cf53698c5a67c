package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// QuoteShippingQueryResponse is the ranked quote for one destination.
type QuoteShippingQueryResponse struct {
	ZoneID   kernel.UUID
	ZoneCode string
	ZoneName string
	Options  []services.PricedOption
}

// QuoteShippingQueryHandler computes shipping quotes. It is the one query
// that goes through the domain instead of raw SQL: pricing rules live in the
// pricer and nowhere else, so the handler only loads the active catalog and
// hands it over.
type QuoteShippingQueryHandler struct {
	zones             ports.ZoneRepository
	tariffs           ports.TariffRepository
	carriers          ports.CarrierRepository
	quoter            services.Quoter
	volumetricDivisor float64
}

// NewQuoteShippingQueryHandler creates a handler over the catalog repositories.
// A non-positive divisor falls back to the default volumetric divisor.
func NewQuoteShippingQueryHandler(
	zones ports.ZoneRepository,
	tariffs ports.TariffRepository,
	carriers ports.CarrierRepository,
	volumetricDivisor float64,
) QuoteShippingQueryHandler {
	if volumetricDivisor <= 0 {
		volumetricDivisor = kernel.DefaultVolumetricDivisor
	}
	return QuoteShippingQueryHandler{
		zones:             zones,
		tariffs:           tariffs,
		carriers:          carriers,
		quoter:            services.NewQuoter(),
		volumetricDivisor: volumetricDivisor,
	}
}

// Handle resolves the destination zone and prices every eligible tariff.
func (h QuoteShippingQueryHandler) Handle(
	ctx context.Context,
	query QuoteShippingQuery,
) (QuoteShippingQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return QuoteShippingQueryResponse{}, err
	}

	pricing, err := h.pricingRequest(query)
	if err != nil {
		return QuoteShippingQueryResponse{}, err
	}

	zones, err := h.zones.GetAllActive(ctx, query.TenantID())
	if err != nil {
		return QuoteShippingQueryResponse{}, err
	}
	tariffs, err := h.tariffs.GetAllActive(ctx, query.TenantID())
	if err != nil {
		return QuoteShippingQueryResponse{}, err
	}
	carriers, err := h.carriers.GetAll(ctx, query.TenantID())
	if err != nil {
		return QuoteShippingQueryResponse{}, err
	}

	matched, options, err := h.quoter.Quote(services.QuoteRequest{
		CountryCode: query.CountryCode(),
		PostalCode:  query.PostalCode(),
		Pricing:     pricing,
	}, zones, tariffs, carriers)
	if err != nil {
		return QuoteShippingQueryResponse{}, err
	}

	return QuoteShippingQueryResponse{
		ZoneID:   matched.ID(),
		ZoneCode: matched.Code(),
		ZoneName: matched.Name(),
		Options:  options,
	}, nil
}

func (h QuoteShippingQueryHandler) pricingRequest(query QuoteShippingQuery) (services.PricingRequest, error) {
	var billable kernel.Weight
	var longest, girth float64

	for _, p := range query.Packages() {
		dims, err := kernel.NewDimensions(p.LengthCm, p.WidthCm, p.HeightCm)
		if err != nil {
			return services.PricingRequest{}, err
		}
		actual, err := kernel.NewWeight(p.WeightKg)
		if err != nil {
			return services.PricingRequest{}, err
		}
		_, w, err := kernel.BillableWeight(dims, actual, h.volumetricDivisor)
		if err != nil {
			return services.PricingRequest{}, err
		}

		billable = billable.Add(w)
		if l := dims.Longest(); l > longest {
			longest = l
		}
		if g := dims.Girth(); g > girth {
			girth = g
		}
	}

	return services.PricingRequest{
		BillableWeight: billable,
		OrderTotal:     query.OrderTotal(),
		ItemCount:      query.ItemCount(),
		IsResidential:  query.Residential(),
		LongestSideCm:  longest,
		GirthCm:        girth,
	}, nil
}
