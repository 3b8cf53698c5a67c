package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/carrier"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrGetCarrierQueryIsNotConstructed = errors.New(
	"GetCarrierQuery must be created via NewGetCarrierQuery constructor",
)

// GetCarrierQuery retrieves one carrier with its full definition and version.
type GetCarrierQuery struct {
	tenantID  kernel.TenantID
	carrierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetCarrierQuery creates a carrier lookup by identifier.
func NewGetCarrierQuery(tenantID kernel.TenantID, carrierID kernel.UUID) (GetCarrierQuery, error) {
	if err := tenantID.Validate(); err != nil {
		return GetCarrierQuery{}, errs.NewValueIsRequiredErrorWithCause("tenantId", err)
	}
	if err := carrierID.Validate(); err != nil {
		return GetCarrierQuery{}, errs.NewValueIsRequiredErrorWithCause("carrierId", err)
	}

	return GetCarrierQuery{
		tenantID:  tenantID,
		carrierID: carrierID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCarrierQuery) Validate() error {
	return q.guard.Validate(ErrGetCarrierQueryIsNotConstructed)
}

// TenantID returns the requesting tenant.
func (q GetCarrierQuery) TenantID() kernel.TenantID { return q.tenantID }

// CarrierID returns the carrier to fetch.
func (q GetCarrierQuery) CarrierID() kernel.UUID { return q.carrierID }

// GetCarrierQueryResponse is the full carrier read model, version included.
type GetCarrierQueryResponse struct {
	ID           kernel.UUID
	Code         string
	Name         string
	Capabilities carrier.Capabilities
	Limits       carrier.ServiceLimits
	DeliveryDays carrier.DeliveryDays
	Active       bool
	Version      int64
}
