// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrQuoteShippingQueryIsNotConstructed = errors.New(
	"QuoteShippingQuery must be created via NewQuoteShippingQuery constructor",
)

// QuotePackage describes one parcel of the prospective shipment.
type QuotePackage struct {
	LengthCm float64
	WidthCm  float64
	HeightCm float64
	WeightKg float64
}

// QuoteShippingQuery asks for the ranked shipping options to a destination.
// It carries everything pricing needs and nothing it does not: no customer
// identity, no order lines, just measures and totals.
//
// Example:
//
//	query, err := NewQuoteShippingQuery(tenantID, "FR", "75002",
//	    []QuotePackage{{LengthCm: 30, WidthCm: 20, HeightCm: 10, WeightKg: 1.2}},
//	    orderTotal, 3, true)
//	if err != nil {
//	    return fmt.Errorf("invalid quote request: %w", err)
//	}
//
//	response, err := handler.Handle(ctx, query)
type QuoteShippingQuery struct { //nolint:recvcheck //using for validation
	tenantID    kernel.TenantID
	countryCode string
	postalCode  string
	packages    []QuotePackage
	orderTotal  kernel.Money
	itemCount   int
	residential bool

	guard guard.ConstructorGuard
}

// NewQuoteShippingQuery creates a quote request. itemCount may be zero, in
// which case the package count stands in for it.
func NewQuoteShippingQuery(
	tenantID kernel.TenantID,
	countryCode string,
	postalCode string,
	packages []QuotePackage,
	orderTotal kernel.Money,
	itemCount int,
	residential bool,
) (QuoteShippingQuery, error) {
	q := QuoteShippingQuery{
		postalCode:  postalCode,
		residential: residential,

		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		q.setTenantID(tenantID),
		q.setCountryCode(countryCode),
		q.setPackages(packages),
		q.setOrderTotal(orderTotal),
	); err != nil {
		return QuoteShippingQuery{}, err
	}

	q.itemCount = itemCount
	if q.itemCount <= 0 {
		q.itemCount = len(packages)
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q QuoteShippingQuery) Validate() error {
	return q.guard.Validate(ErrQuoteShippingQueryIsNotConstructed)
}

// TenantID returns the requesting tenant.
func (q QuoteShippingQuery) TenantID() kernel.TenantID { return q.tenantID }

// CountryCode returns the destination country.
func (q QuoteShippingQuery) CountryCode() string { return q.countryCode }

// PostalCode returns the destination postal code.
func (q QuoteShippingQuery) PostalCode() string { return q.postalCode }

// Packages returns the parcels to price.
func (q QuoteShippingQuery) Packages() []QuotePackage {
	out := make([]QuotePackage, len(q.packages))
	copy(out, q.packages)
	return out
}

// OrderTotal returns the merchandise total for free-shipping thresholds.
func (q QuoteShippingQuery) OrderTotal() kernel.Money { return q.orderTotal }

// ItemCount returns the number of order items for per-item tariffs.
func (q QuoteShippingQuery) ItemCount() int { return q.itemCount }

// Residential reports whether the destination is a home address.
func (q QuoteShippingQuery) Residential() bool { return q.residential }

func (q *QuoteShippingQuery) setTenantID(tenantID kernel.TenantID) error {
	if err := tenantID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("tenantId", err)
	}
	q.tenantID = tenantID
	return nil
}

func (q *QuoteShippingQuery) setCountryCode(countryCode string) error {
	if countryCode == "" {
		return errs.NewValueIsRequiredError("countryCode")
	}
	q.countryCode = countryCode
	return nil
}

func (q *QuoteShippingQuery) setPackages(packages []QuotePackage) error {
	if len(packages) == 0 {
		return errs.NewValueIsRequiredError("packages")
	}
	q.packages = make([]QuotePackage, len(packages))
	copy(q.packages, packages)
	return nil
}

func (q *QuoteShippingQuery) setOrderTotal(orderTotal kernel.Money) error {
	if err := orderTotal.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderTotal", err)
	}
	q.orderTotal = orderTotal
	return nil
}
