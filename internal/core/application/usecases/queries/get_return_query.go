package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/rma"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetReturnQueryIsNotConstructed = errors.New(
	"GetReturnQuery must be created via a GetReturnQuery constructor",
)

// GetReturnQuery retrieves one return with its items and refund state,
// looked up by identifier or by return number.
type GetReturnQuery struct { //nolint:recvcheck //using for validation
	tenantID kernel.TenantID
	returnID *kernel.UUID
	number   string

	guard guard.ConstructorGuard
}

// NewGetReturnQuery creates a lookup by return identifier.
func NewGetReturnQuery(tenantID kernel.TenantID, returnID kernel.UUID) (GetReturnQuery, error) {
	if err := returnID.Validate(); err != nil {
		return GetReturnQuery{}, err
	}
	q, err := newGetReturnQuery(tenantID)
	if err != nil {
		return GetReturnQuery{}, err
	}
	q.returnID = &returnID
	return q, nil
}

// NewGetReturnByNumberQuery creates a lookup by return number.
func NewGetReturnByNumberQuery(tenantID kernel.TenantID, number string) (GetReturnQuery, error) {
	if number == "" {
		return GetReturnQuery{}, errs.NewValueIsRequiredError("number")
	}
	q, err := newGetReturnQuery(tenantID)
	if err != nil {
		return GetReturnQuery{}, err
	}
	q.number = number
	return q, nil
}

func newGetReturnQuery(tenantID kernel.TenantID) (GetReturnQuery, error) {
	if err := tenantID.Validate(); err != nil {
		return GetReturnQuery{}, errs.NewValueIsRequiredErrorWithCause("tenantId", err)
	}
	return GetReturnQuery{
		tenantID: tenantID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through a constructor.
func (q GetReturnQuery) Validate() error {
	return q.guard.Validate(ErrGetReturnQueryIsNotConstructed)
}

// TenantID returns the requesting tenant.
func (q GetReturnQuery) TenantID() kernel.TenantID { return q.tenantID }

// ReturnID returns the identifier selector, if set.
func (q GetReturnQuery) ReturnID() *kernel.UUID { return q.returnID }

// Number returns the return number selector, if set.
func (q GetReturnQuery) Number() string { return q.number }

// ReturnItemResponse is one returned line in the read model.
type ReturnItemResponse struct {
	SKU         string
	Description string
	Quantity    int
	Reason      string
}

// ReturnRefundResponse is the settled refund in the read model.
type ReturnRefundResponse struct {
	Amount        decimal.Decimal
	Currency      string
	Method        rma.RefundMethod
	RestockingFee decimal.Decimal
	ProcessedAt   time.Time
}

// GetReturnQueryResponse is the full return read model.
type GetReturnQueryResponse struct {
	ID                kernel.UUID
	Number            string
	ShipmentID        kernel.UUID
	OrderID           *kernel.UUID
	Status            rma.Status
	ReviewNotes       string
	TrackingNumber    string
	LabelURL          string
	ReceivedCondition string
	ReceivedNotes     string
	ReceivedAt        *time.Time
	InspectionOutcome string
	InspectionNotes   string
	InspectedAt       *time.Time
	Items             []ReturnItemResponse
	Refund            *ReturnRefundResponse
	Version           int64
}
