package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetAllShipmentsQueryIsNotConstructed = errors.New(
	"GetAllShipmentsQuery must be created via NewGetAllShipmentsQuery constructor",
)

// GetAllShipmentsQuery lists a tenant's shipments, optionally narrowed to one
// status. The listing is a summary; the full aggregate comes from GetShipment.
type GetAllShipmentsQuery struct { //nolint:recvcheck //using for validation
	tenantID kernel.TenantID
	status   *shipment.Status

	guard guard.ConstructorGuard
}

// NewGetAllShipmentsQuery creates a listing query. A nil status means all.
func NewGetAllShipmentsQuery(tenantID kernel.TenantID, status *shipment.Status) (GetAllShipmentsQuery, error) {
	if err := tenantID.Validate(); err != nil {
		return GetAllShipmentsQuery{}, errs.NewValueIsRequiredErrorWithCause("tenantId", err)
	}
	if status != nil {
		if err := status.Validate(); err != nil {
			return GetAllShipmentsQuery{}, err
		}
	}

	return GetAllShipmentsQuery{
		tenantID: tenantID,
		status:   status,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAllShipmentsQuery) Validate() error {
	return q.guard.Validate(ErrGetAllShipmentsQueryIsNotConstructed)
}

// TenantID returns the requesting tenant.
func (q GetAllShipmentsQuery) TenantID() kernel.TenantID { return q.tenantID }

// Status returns the status filter, nil meaning all statuses.
func (q GetAllShipmentsQuery) Status() *shipment.Status { return q.status }

// GetAllShipmentsQueryResponse is one shipment summary line.
type GetAllShipmentsQueryResponse struct {
	ID                kernel.UUID
	Number            string
	Status            shipment.Status
	DestinationCity   string
	CountryCode       string
	Currency          string
	TotalCost         decimal.Decimal
	MasterTracking    string
	EstimatedDelivery *time.Time
}
