package queries_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eur(t *testing.T, amount string) kernel.Money {
	t.Helper()
	cur, err := kernel.NewCurrency("EUR")
	require.NoError(t, err)
	m, err := kernel.NewMoney(decimal.RequireFromString(amount), cur)
	require.NoError(t, err)
	return m
}

func TestNewQuoteShippingQuery_ValidInput(t *testing.T) {
	// Arrange
	tenantID := kernel.NewTenantID()
	packages := []queries.QuotePackage{
		{LengthCm: 30, WidthCm: 20, HeightCm: 10, WeightKg: 1.2},
		{LengthCm: 15, WidthCm: 15, HeightCm: 15, WeightKg: 0.4},
	}

	// Act
	query, err := queries.NewQuoteShippingQuery(tenantID, "FR", "75002",
		packages, eur(t, "59.90"), 3, true)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, tenantID, query.TenantID())
	assert.Equal(t, "FR", query.CountryCode())
	assert.Equal(t, "75002", query.PostalCode())
	assert.Equal(t, packages, query.Packages())
	assert.Equal(t, 3, query.ItemCount())
	assert.True(t, query.Residential())
	assert.NoError(t, query.Validate())
}

func TestNewQuoteShippingQuery_ItemCountDefaultsToPackageCount(t *testing.T) {
	// Act
	query, err := queries.NewQuoteShippingQuery(kernel.NewTenantID(), "FR", "69001",
		[]queries.QuotePackage{{LengthCm: 10, WidthCm: 10, HeightCm: 10, WeightKg: 1}},
		eur(t, "10"), 0, false)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, query.ItemCount())
}

func TestNewQuoteShippingQuery_RequiresPackages(t *testing.T) {
	// Act
	_, err := queries.NewQuoteShippingQuery(kernel.NewTenantID(), "FR", "69001",
		nil, eur(t, "10"), 1, false)

	// Assert
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewQuoteShippingQuery_RequiresCountry(t *testing.T) {
	// Act
	_, err := queries.NewQuoteShippingQuery(kernel.NewTenantID(), "", "69001",
		[]queries.QuotePackage{{LengthCm: 10, WidthCm: 10, HeightCm: 10, WeightKg: 1}},
		eur(t, "10"), 1, false)

	// Assert
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestQuoteShippingQuery_ZeroValueFailsValidation(t *testing.T) {
	// Arrange
	var query queries.QuoteShippingQuery

	// Act
	err := query.Validate()

	// Assert
	require.Error(t, err)
	require.ErrorIs(t, err, queries.ErrQuoteShippingQueryIsNotConstructed)
}
