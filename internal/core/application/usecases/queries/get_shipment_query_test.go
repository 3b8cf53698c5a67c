package queries_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetShipmentQuery_ByID(t *testing.T) {
	// Arrange
	tenantID := kernel.NewTenantID()
	shipmentID := kernel.NewUUID()

	// Act
	query, err := queries.NewGetShipmentQuery(tenantID, shipmentID)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, query.ShipmentID())
	assert.True(t, query.ShipmentID().IsEqual(shipmentID))
	assert.Empty(t, query.Number())
	assert.Empty(t, query.TrackingNumber())
	assert.NoError(t, query.Validate())
}

func TestNewGetShipmentByNumberQuery(t *testing.T) {
	// Act
	query, err := queries.NewGetShipmentByNumberQuery(kernel.NewTenantID(), "SHP-0F47AC10B58C")

	// Assert
	require.NoError(t, err)
	assert.Nil(t, query.ShipmentID())
	assert.Equal(t, "SHP-0F47AC10B58C", query.Number())
	assert.NoError(t, query.Validate())
}

func TestNewGetShipmentByTrackingNumberQuery(t *testing.T) {
	// Act
	query, err := queries.NewGetShipmentByTrackingNumberQuery(kernel.NewTenantID(), "COL-1234567890")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "COL-1234567890", query.TrackingNumber())
	assert.NoError(t, query.Validate())
}

func TestNewGetShipmentByNumberQuery_RequiresNumber(t *testing.T) {
	// Act
	_, err := queries.NewGetShipmentByNumberQuery(kernel.NewTenantID(), "")

	// Assert
	require.Error(t, err)
}

func TestNewGetShipmentQuery_RequiresConstructedID(t *testing.T) {
	// Arrange
	var zeroID kernel.UUID

	// Act
	_, err := queries.NewGetShipmentQuery(kernel.NewTenantID(), zeroID)

	// Assert
	require.Error(t, err)
}

func TestGetShipmentQuery_ZeroValueFailsValidation(t *testing.T) {
	// Arrange
	var query queries.GetShipmentQuery

	// Act
	err := query.Validate()

	// Assert
	require.Error(t, err)
	require.ErrorIs(t, err, queries.ErrGetShipmentQueryIsNotConstructed)
}
