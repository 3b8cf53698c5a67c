package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/tariff"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetAllTariffsQueryIsNotConstructed = errors.New(
	"GetAllTariffsQuery must be created via NewGetAllTariffsQuery constructor",
)

// GetAllTariffsQuery lists a tenant's tariffs with their carrier and zone
// context, for catalog administration screens.
type GetAllTariffsQuery struct { //nolint:recvcheck //using for validation
	tenantID   kernel.TenantID
	activeOnly bool

	guard guard.ConstructorGuard
}

// NewGetAllTariffsQuery creates a listing query.
func NewGetAllTariffsQuery(tenantID kernel.TenantID, activeOnly bool) (GetAllTariffsQuery, error) {
	if err := tenantID.Validate(); err != nil {
		return GetAllTariffsQuery{}, errs.NewValueIsRequiredErrorWithCause("tenantId", err)
	}

	return GetAllTariffsQuery{
		tenantID:   tenantID,
		activeOnly: activeOnly,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAllTariffsQuery) Validate() error {
	return q.guard.Validate(ErrGetAllTariffsQueryIsNotConstructed)
}

// TenantID returns the requesting tenant.
func (q GetAllTariffsQuery) TenantID() kernel.TenantID { return q.tenantID }

// ActiveOnly reports whether inactive tariffs are filtered out.
func (q GetAllTariffsQuery) ActiveOnly() bool { return q.activeOnly }

// GetAllTariffsQueryResponse is one tariff summary line.
type GetAllTariffsQueryResponse struct {
	ID          kernel.UUID
	Code        string
	Name        string
	CarrierCode string
	CarrierName string
	ZoneCode    string
	Method      tariff.Method
	Currency    string
	BaseRate    decimal.Decimal
	FreeOver    *decimal.Decimal
	ValidFrom   *time.Time
	ValidUntil  *time.Time
	Active      bool
}
