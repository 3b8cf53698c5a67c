package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/rma"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrGetAllReturnsQueryIsNotConstructed = errors.New(
	"GetAllReturnsQuery must be created via NewGetAllReturnsQuery constructor",
)

// GetAllReturnsQuery lists a tenant's returns, optionally narrowed to one
// status.
type GetAllReturnsQuery struct { //nolint:recvcheck //using for validation
	tenantID kernel.TenantID
	status   *rma.Status

	guard guard.ConstructorGuard
}

// NewGetAllReturnsQuery creates a listing query. A nil status means all.
func NewGetAllReturnsQuery(tenantID kernel.TenantID, status *rma.Status) (GetAllReturnsQuery, error) {
	if err := tenantID.Validate(); err != nil {
		return GetAllReturnsQuery{}, errs.NewValueIsRequiredErrorWithCause("tenantId", err)
	}
	if status != nil {
		if err := status.Validate(); err != nil {
			return GetAllReturnsQuery{}, err
		}
	}

	return GetAllReturnsQuery{
		tenantID: tenantID,
		status:   status,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAllReturnsQuery) Validate() error {
	return q.guard.Validate(ErrGetAllReturnsQueryIsNotConstructed)
}

// TenantID returns the requesting tenant.
func (q GetAllReturnsQuery) TenantID() kernel.TenantID { return q.tenantID }

// Status returns the status filter, nil meaning all statuses.
func (q GetAllReturnsQuery) Status() *rma.Status { return q.status }

// GetAllReturnsQueryResponse is one return summary line.
type GetAllReturnsQueryResponse struct {
	ID             kernel.UUID
	Number         string
	ShipmentID     kernel.UUID
	Status         rma.Status
	TrackingNumber string
	ItemCount      int
}
