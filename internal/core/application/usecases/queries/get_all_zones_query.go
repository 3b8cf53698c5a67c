package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrGetAllZonesQueryIsNotConstructed = errors.New(
	"GetAllZonesQuery must be created via NewGetAllZonesQuery constructor",
)

// GetAllZonesQuery lists a tenant's zones. A zone is small enough that the
// listing carries the same full read model as the single lookup.
type GetAllZonesQuery struct {
	tenantID   kernel.TenantID
	activeOnly bool

	guard guard.ConstructorGuard
}

// NewGetAllZonesQuery creates a listing query.
func NewGetAllZonesQuery(tenantID kernel.TenantID, activeOnly bool) (GetAllZonesQuery, error) {
	if err := tenantID.Validate(); err != nil {
		return GetAllZonesQuery{}, errs.NewValueIsRequiredErrorWithCause("tenantId", err)
	}

	return GetAllZonesQuery{
		tenantID:   tenantID,
		activeOnly: activeOnly,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAllZonesQuery) Validate() error {
	return q.guard.Validate(ErrGetAllZonesQueryIsNotConstructed)
}

// TenantID returns the requesting tenant.
func (q GetAllZonesQuery) TenantID() kernel.TenantID { return q.tenantID }

// ActiveOnly reports whether inactive zones are filtered out.
func (q GetAllZonesQuery) ActiveOnly() bool { return q.activeOnly }
