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

var ErrGetTariffQueryIsNotConstructed = errors.New(
	"GetTariffQuery must be created via NewGetTariffQuery constructor",
)

// GetTariffQuery retrieves one tariff with its complete rate structure and
// version, everything an edit screen needs to resubmit an update.
type GetTariffQuery struct {
	tenantID kernel.TenantID
	tariffID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetTariffQuery creates a tariff lookup by identifier.
func NewGetTariffQuery(tenantID kernel.TenantID, tariffID kernel.UUID) (GetTariffQuery, error) {
	if err := tenantID.Validate(); err != nil {
		return GetTariffQuery{}, errs.NewValueIsRequiredErrorWithCause("tenantId", err)
	}
	if err := tariffID.Validate(); err != nil {
		return GetTariffQuery{}, errs.NewValueIsRequiredErrorWithCause("tariffId", err)
	}

	return GetTariffQuery{
		tenantID: tenantID,
		tariffID: tariffID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetTariffQuery) Validate() error {
	return q.guard.Validate(ErrGetTariffQueryIsNotConstructed)
}

// TenantID returns the requesting tenant.
func (q GetTariffQuery) TenantID() kernel.TenantID { return q.tenantID }

// TariffID returns the tariff to fetch.
func (q GetTariffQuery) TariffID() kernel.UUID { return q.tariffID }

// TariffTierResponse is one weight tier line of the rate table.
type TariffTierResponse struct {
	MaxWeightKg float64
	Rate        decimal.Decimal
}

// TariffBracketResponse is one order-value bracket line. A nil Max leaves the
// bracket unbounded above.
type TariffBracketResponse struct {
	Min  decimal.Decimal
	Max  *decimal.Decimal
	Rate decimal.Decimal
}

// GetTariffQueryResponse is the full tariff read model, version included. All
// monetary amounts are denominated in Currency.
type GetTariffQueryResponse struct {
	ID                    kernel.UUID
	Code                  string
	Name                  string
	CarrierID             kernel.UUID
	ZoneID                *kernel.UUID
	Method                tariff.Method
	Currency              string
	BaseRate              decimal.Decimal
	PerKgRate             decimal.Decimal
	PerItemRate           decimal.Decimal
	Tiers                 []TariffTierResponse
	Brackets              []TariffBracketResponse
	FuelPercent           decimal.Decimal
	ResidentialAmount     decimal.Decimal
	OversizeAmount        decimal.Decimal
	OversizeOverLongestCm float64
	FreeOver              *decimal.Decimal
	ValidFrom             *time.Time
	ValidUntil            *time.Time
	Active                bool
	Version               int64
}
