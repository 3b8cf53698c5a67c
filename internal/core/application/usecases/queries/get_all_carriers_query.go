package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrGetAllCarriersQueryIsNotConstructed = errors.New(
	"GetAllCarriersQuery must be created via NewGetAllCarriersQuery constructor",
)

// GetAllCarriersQuery lists a tenant's carriers with their full read model.
type GetAllCarriersQuery struct {
	tenantID   kernel.TenantID
	activeOnly bool

	guard guard.ConstructorGuard
}

// NewGetAllCarriersQuery creates a listing query.
func NewGetAllCarriersQuery(tenantID kernel.TenantID, activeOnly bool) (GetAllCarriersQuery, error) {
	if err := tenantID.Validate(); err != nil {
		return GetAllCarriersQuery{}, errs.NewValueIsRequiredErrorWithCause("tenantId", err)
	}

	return GetAllCarriersQuery{
		tenantID:   tenantID,
		activeOnly: activeOnly,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAllCarriersQuery) Validate() error {
	return q.guard.Validate(ErrGetAllCarriersQueryIsNotConstructed)
}

// TenantID returns the requesting tenant.
func (q GetAllCarriersQuery) TenantID() kernel.TenantID { return q.tenantID }

// ActiveOnly reports whether inactive carriers are filtered out.
func (q GetAllCarriersQuery) ActiveOnly() bool { return q.activeOnly }
