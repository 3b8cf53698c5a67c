package services_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fulfillment/internal/core/domain/model/carrier"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/tariff"
	"fulfillment/internal/core/domain/model/zone"
	"fulfillment/internal/core/domain/services"
)

func TestQuoter_Quote(t *testing.T) {
	tenantID := kernel.NewTenantID()
	quoter := services.NewQuoter()

	t.Run("should rank options ascending by cost with carrier name tiebreak", func(t *testing.T) {
		z := newZone(t, tenantID, "fr", []string{"FR"}, nil, nil, 1)
		fast := newTestCarrier(t, tenantID, "Chrono", carrier.ServiceLimits{})
		slow := newTestCarrier(t, tenantID, "Colissimo", carrier.ServiceLimits{})
		cheap := newTestCarrier(t, tenantID, "Mondial", carrier.ServiceLimits{})

		tariffs := []*tariff.Tariff{
			newTestTariff(t, tenantID, fast.ID(), "express", tariffSpec{method: tariff.Flat, baseRate: eur(t, "12.90")}),
			newTestTariff(t, tenantID, slow.ID(), "home", tariffSpec{method: tariff.Flat, baseRate: eur(t, "6.95")}),
			newTestTariff(t, tenantID, cheap.ID(), "relay", tariffSpec{method: tariff.Flat, baseRate: eur(t, "6.95")}),
		}

		matched, options, err := quoter.Quote(
			services.QuoteRequest{CountryCode: "FR", PostalCode: "75001", Pricing: plainRequest(t, 1, "20")},
			[]*zone.Zone{z}, tariffs,
			[]*carrier.Carrier{fast, slow, cheap},
		)
		require.NoError(t, err)
		assert.Equal(t, "fr", matched.Code())
		require.Len(t, options, 3)

		assert.Equal(t, "Chrono", options[2].CarrierName)
		// Same cost: carrier name decides, lexicographically.
		assert.Equal(t, "Colissimo", options[0].CarrierName)
		assert.Equal(t, "Mondial", options[1].CarrierName)
	})

	t.Run("should keep zone-scoped tariffs out of other zones", func(t *testing.T) {
		metro := newZone(t, tenantID, "fr-metro", []string{"FR"}, nil, []string{"20*"}, 1)
		corsica := newZone(t, tenantID, "fr-corsica", []string{"FR"}, []string{"20*"}, nil, 2)
		c := newTestCarrier(t, tenantID, "Colissimo", carrier.ServiceLimits{})

		corsicaID := corsica.ID()
		scoped, err := tariff.NewTariff(
			kernel.NewUUID(), tenantID, "corsica-only", "Corsica only", c.ID(), &corsicaID,
			tariff.Flat, eurCurrency(t), eur(t, "14.50"), eur(t, "0"), eur(t, "0"),
			nil, nil, tariff.Surcharges{}, nil, tariff.ValidityWindow{},
		)
		require.NoError(t, err)
		unscoped := newTestTariff(t, tenantID, c.ID(), "any", tariffSpec{method: tariff.Flat, baseRate: eur(t, "6.95")})

		zones := []*zone.Zone{metro, corsica}
		tariffs := []*tariff.Tariff{scoped, unscoped}
		carriers := []*carrier.Carrier{c}

		_, options, err := quoter.Quote(
			services.QuoteRequest{CountryCode: "FR", PostalCode: "75001", Pricing: plainRequest(t, 1, "20")},
			zones, tariffs, carriers)
		require.NoError(t, err)
		require.Len(t, options, 1)
		assert.Equal(t, "any", options[0].TariffCode)

		_, options, err = quoter.Quote(
			services.QuoteRequest{CountryCode: "FR", PostalCode: "20000", Pricing: plainRequest(t, 1, "20")},
			zones, tariffs, carriers)
		require.NoError(t, err)
		require.Len(t, options, 2)
	})

	t.Run("should propagate AddressNotServiceable", func(t *testing.T) {
		z := newZone(t, tenantID, "fr", []string{"FR"}, nil, nil, 1)

		_, _, err := quoter.Quote(
			services.QuoteRequest{CountryCode: "DE", PostalCode: "10115", Pricing: plainRequest(t, 1, "20")},
			[]*zone.Zone{z}, nil, nil)
		assert.ErrorIs(t, err, services.ErrAddressNotServiceable)
	})

	t.Run("should fail with NoRateAvailable when everything filters out", func(t *testing.T) {
		z := newZone(t, tenantID, "fr", []string{"FR"}, nil, nil, 1)
		c := newTestCarrier(t, tenantID, "Colissimo", carrier.ServiceLimits{MaxWeightKg: 5})
		tf := newTestTariff(t, tenantID, c.ID(), "light", tariffSpec{method: tariff.Flat, baseRate: eur(t, "6.95")})

		_, _, err := quoter.Quote(
			services.QuoteRequest{CountryCode: "FR", PostalCode: "75001", Pricing: plainRequest(t, 12, "20")},
			[]*zone.Zone{z}, []*tariff.Tariff{tf}, []*carrier.Carrier{c})
		assert.ErrorIs(t, err, services.ErrNoRateAvailable)
	})

	t.Run("should keep tariffs of another currency out of the ranking", func(t *testing.T) {
		z := newZone(t, tenantID, "fr", []string{"FR"}, nil, nil, 1)
		c := newTestCarrier(t, tenantID, "Colissimo", carrier.ServiceLimits{})

		usd, err := kernel.NewCurrency("USD")
		require.NoError(t, err)
		usdRate, err := kernel.NewMoney(decimal.RequireFromString("1.50"), usd)
		require.NoError(t, err)
		usdZero, err := kernel.NewMoney(decimal.Zero, usd)
		require.NoError(t, err)
		dollar, err := tariff.NewTariff(
			kernel.NewUUID(), tenantID, "usd-flat", "USD flat", c.ID(), nil,
			tariff.Flat, usd, usdRate, usdZero, usdZero,
			nil, nil, tariff.Surcharges{}, nil, tariff.ValidityWindow{},
		)
		require.NoError(t, err)
		euro := newTestTariff(t, tenantID, c.ID(), "eur-flat", tariffSpec{method: tariff.Flat, baseRate: eur(t, "6.95")})

		_, options, err := quoter.Quote(
			services.QuoteRequest{CountryCode: "FR", PostalCode: "75001", Pricing: plainRequest(t, 1, "20")},
			[]*zone.Zone{z}, []*tariff.Tariff{dollar, euro}, []*carrier.Carrier{c})
		require.NoError(t, err)
		require.Len(t, options, 1)
		assert.Equal(t, "eur-flat", options[0].TariffCode)
	})

	t.Run("should skip tariffs whose carrier is missing", func(t *testing.T) {
		z := newZone(t, tenantID, "fr", []string{"FR"}, nil, nil, 1)
		orphan := newTestTariff(t, tenantID, kernel.NewUUID(), "orphan", tariffSpec{method: tariff.Flat, baseRate: eur(t, "5")})

		_, _, err := quoter.Quote(
			services.QuoteRequest{CountryCode: "FR", PostalCode: "75001", Pricing: plainRequest(t, 1, "20")},
			[]*zone.Zone{z}, []*tariff.Tariff{orphan}, nil)
		assert.ErrorIs(t, err, services.ErrNoRateAvailable)
	})
}

// End to end: a metropolitan France order quoted across tiers, fuel surcharge
// and a free-shipping threshold.
func TestQuoter_Quote_MetropolitanFranceScenario(t *testing.T) {
	tenantID := kernel.NewTenantID()
	quoter := services.NewQuoter()

	metro := newZone(t, tenantID, "fr-metro", []string{"FR"}, nil, []string{"97*", "98*"}, 10)
	colissimo := newTestCarrier(t, tenantID, "Colissimo", carrier.ServiceLimits{MaxWeightKg: 30})

	threshold := eur(t, "50")
	home := newTestTariff(t, tenantID, colissimo.ID(), "home", tariffSpec{
		method: tariff.PerWeight,
		tiers: []tariff.WeightTier{
			{MaxWeightKg: 1, Rate: eur(t, "4.95")},
			{MaxWeightKg: 3, Rate: eur(t, "6.95")},
		},
		surcharges: tariff.Surcharges{FuelPercent: decimal.NewFromInt(5)},
		threshold:  &threshold,
	})

	// A 20x15x10 cm, 1.5 kg package: dimensional 0.6 kg, billable 1.5 kg.
	dims, err := kernel.NewDimensions(20, 15, 10)
	require.NoError(t, err)
	actual := weight(t, 1.5)
	_, billable, err := kernel.BillableWeight(dims, actual, kernel.DefaultVolumetricDivisor)
	require.NoError(t, err)
	require.InDelta(t, 1.5, billable.Kg(), 1e-9)

	request := services.QuoteRequest{
		CountryCode: "FR",
		PostalCode:  "75001",
		Pricing: services.PricingRequest{
			BillableWeight: billable,
			OrderTotal:     eur(t, "42"),
			ItemCount:      2,
			LongestSideCm:  dims.Longest(),
			GirthCm:        dims.Girth(),
		},
	}

	zones := []*zone.Zone{metro}
	tariffs := []*tariff.Tariff{home}
	carriers := []*carrier.Carrier{colissimo}

	matched, options, err := quoter.Quote(request, zones, tariffs, carriers)
	require.NoError(t, err)
	assert.Equal(t, "fr-metro", matched.Code())
	require.Len(t, options, 1)

	// Tier <=3 kg at 6.95, plus 5% fuel: 7.2975 rounds to 7.30.
	assert.True(t, options[0].Cost.IsEqual(eur(t, "7.30")), "got %s", options[0].Cost)
	assert.False(t, options[0].Free)

	// Above the threshold the same request ships free.
	request.Pricing.OrderTotal = eur(t, "55")
	_, options, err = quoter.Quote(request, zones, tariffs, carriers)
	require.NoError(t, err)
	require.Len(t, options, 1)
	assert.True(t, options[0].Free)
	assert.True(t, options[0].Cost.IsZero())

	// Overseas postal codes are excluded from the metro zone.
	request.PostalCode = "97400"
	_, _, err = quoter.Quote(request, zones, tariffs, carriers)
	assert.ErrorIs(t, err, services.ErrAddressNotServiceable)
}
