package queries_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetZoneQuery_ValidInput(t *testing.T) {
	// Arrange
	tenantID := kernel.NewTenantID()
	zoneID := kernel.NewUUID()

	// Act
	query, err := queries.NewGetZoneQuery(tenantID, zoneID)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, tenantID, query.TenantID())
	assert.Equal(t, zoneID, query.ZoneID())
	assert.NoError(t, query.Validate())
}

func TestNewGetZoneQuery_RequiresZoneID(t *testing.T) {
	// Act
	_, err := queries.NewGetZoneQuery(kernel.NewTenantID(), kernel.UUID{})

	// Assert
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestGetZoneQuery_ZeroValueFailsValidation(t *testing.T) {
	// Arrange
	var query queries.GetZoneQuery

	// Act
	err := query.Validate()

	// Assert
	require.ErrorIs(t, err, queries.ErrGetZoneQueryIsNotConstructed)
}

func TestNewGetAllZonesQuery_ValidInput(t *testing.T) {
	// Arrange
	tenantID := kernel.NewTenantID()

	// Act
	query, err := queries.NewGetAllZonesQuery(tenantID, true)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, tenantID, query.TenantID())
	assert.True(t, query.ActiveOnly())
	assert.NoError(t, query.Validate())
}

func TestNewGetCarrierQuery_ValidInput(t *testing.T) {
	// Arrange
	tenantID := kernel.NewTenantID()
	carrierID := kernel.NewUUID()

	// Act
	query, err := queries.NewGetCarrierQuery(tenantID, carrierID)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, tenantID, query.TenantID())
	assert.Equal(t, carrierID, query.CarrierID())
	assert.NoError(t, query.Validate())
}

func TestNewGetCarrierQuery_RequiresCarrierID(t *testing.T) {
	// Act
	_, err := queries.NewGetCarrierQuery(kernel.NewTenantID(), kernel.UUID{})

	// Assert
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewGetAllCarriersQuery_ValidInput(t *testing.T) {
	// Arrange
	tenantID := kernel.NewTenantID()

	// Act
	query, err := queries.NewGetAllCarriersQuery(tenantID, false)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, tenantID, query.TenantID())
	assert.False(t, query.ActiveOnly())
	assert.NoError(t, query.Validate())
}

func TestNewGetTariffQuery_ValidInput(t *testing.T) {
	// Arrange
	tenantID := kernel.NewTenantID()
	tariffID := kernel.NewUUID()

	// Act
	query, err := queries.NewGetTariffQuery(tenantID, tariffID)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, tenantID, query.TenantID())
	assert.Equal(t, tariffID, query.TariffID())
	assert.NoError(t, query.Validate())
}

func TestNewGetTariffQuery_RequiresTariffID(t *testing.T) {
	// Act
	_, err := queries.NewGetTariffQuery(kernel.NewTenantID(), kernel.UUID{})

	// Assert
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
