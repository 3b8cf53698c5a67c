package carrierapi

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/carrier"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCarrier(t *testing.T) *carrier.Carrier {
	t.Helper()

	c, err := carrier.NewCarrier(kernel.NewUUID(), kernel.NewTenantID(), "UPX", "Universal Parcel Express",
		carrier.Capabilities{Tracking: true, Labels: true},
		carrier.ServiceLimits{MaxWeightKg: 30},
		carrier.DeliveryDays{Min: 1, Max: 3},
	)
	require.NoError(t, err)
	return c
}

func testShipment(t *testing.T, tenantID kernel.TenantID) *shipment.Shipment {
	t.Helper()

	currency, err := kernel.NewCurrency("EUR")
	require.NoError(t, err)
	money := func(amount string) kernel.Money {
		m, mErr := kernel.NewMoney(decimal.RequireFromString(amount), currency)
		require.NoError(t, mErr)
		return m
	}

	origin, err := shipment.NewAddress("Warehouse Nord", "12 Rue de la Gare", "Lille", "59000", "FR", false)
	require.NoError(t, err)
	destination, err := shipment.NewAddress("Claire Fontaine", "8 Avenue Victor Hugo", "Paris", "75016", "FR", true)
	require.NoError(t, err)

	dims, err := kernel.NewDimensions(20, 15, 10)
	require.NoError(t, err)
	weight, err := kernel.NewWeight(1.5)
	require.NoError(t, err)
	pkg, err := shipment.NewPackage(kernel.NewUUID(), dims, weight, money("25.00"), "books", kernel.DefaultVolumetricDivisor)
	require.NoError(t, err)

	s, err := shipment.NewShipment(kernel.NewUUID(), tenantID, kernel.NewUUID(), kernel.NewUUID(),
		nil, origin, destination, "", []*shipment.Package{pkg},
		shipment.CostBreakdown{Base: money("6.95"), Insurance: money("0.80"), Surcharge: money("0.35"), Total: money("8.10")},
		nil)
	require.NoError(t, err)
	return s
}

func Test_StubCarrierGateway_IssueLabel(t *testing.T) {
	// Arrange
	gateway := NewStubCarrierGateway("https://labels.example.com")
	c := testCarrier(t)
	s := testShipment(t, c.TenantID())

	// Act
	result, err := gateway.IssueLabel(t.Context(), c, s)

	// Assert
	require.NoError(t, err)
	assert.Regexp(t, `^UPX-[0-9a-f]{10}$`, result.MasterTracking)
	require.Len(t, result.PackageTracking, 1)
	assert.Equal(t, result.MasterTracking+"-P1", result.PackageTracking[0])
	assert.Equal(t, "https://labels.example.com/"+result.MasterTracking+".pdf", result.LabelURL)
}

func Test_StubCarrierGateway_IssueLabel_UniquePerCall(t *testing.T) {
	// Arrange
	gateway := NewStubCarrierGateway("https://labels.example.com")
	c := testCarrier(t)
	s := testShipment(t, c.TenantID())

	// Act
	first, err := gateway.IssueLabel(t.Context(), c, s)
	require.NoError(t, err)
	second, err := gateway.IssueLabel(t.Context(), c, s)
	require.NoError(t, err)

	// Assert
	assert.NotEqual(t, first.MasterTracking, second.MasterTracking)
}

func Test_StubCarrierGateway_FetchTrackingUpdates_ReplaysRun(t *testing.T) {
	// Arrange
	gateway := NewStubCarrierGateway("https://labels.example.com")
	issuedAt := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	current := issuedAt
	gateway.now = func() time.Time { return current }

	c := testCarrier(t)
	s := testShipment(t, c.TenantID())
	result, err := gateway.IssueLabel(t.Context(), c, s)
	require.NoError(t, err)

	// Act: right after issuance nothing has been scanned yet
	updates, err := gateway.FetchTrackingUpdates(t.Context(), c, result.MasterTracking)
	require.NoError(t, err)
	assert.Empty(t, updates)

	// Act: mid-run only the elapsed scans appear
	current = issuedAt.Add(20 * time.Minute)
	updates, err = gateway.FetchTrackingUpdates(t.Context(), c, result.MasterTracking)
	require.NoError(t, err)
	require.Len(t, updates, 3)
	assert.Equal(t, shipment.PickedUp, updates[0].Status)
	assert.Equal(t, shipment.InTransit, updates[1].Status)
	assert.Equal(t, shipment.InTransit, updates[2].Status)
	assert.True(t, updates[0].OccurredAt.Before(updates[1].OccurredAt))

	// Act: after the full run the shipment is delivered
	current = issuedAt.Add(2 * time.Hour)
	updates, err = gateway.FetchTrackingUpdates(t.Context(), c, result.MasterTracking)
	require.NoError(t, err)
	require.Len(t, updates, 5)
	assert.Equal(t, shipment.Delivered, updates[len(updates)-1].Status)
}

func Test_StubCarrierGateway_FetchTrackingUpdates_UnknownNumber(t *testing.T) {
	// Arrange
	gateway := NewStubCarrierGateway("https://labels.example.com")
	c := testCarrier(t)

	// Act
	updates, err := gateway.FetchTrackingUpdates(t.Context(), c, "UPX-ffffffffff")

	// Assert
	assert.Nil(t, updates)
	require.Error(t, err)

	var integrationErr *ports.CarrierIntegrationError
	require.ErrorAs(t, err, &integrationErr)
	assert.Equal(t, "UPX", integrationErr.CarrierCode)
}
