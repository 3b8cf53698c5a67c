package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrGetZoneQueryIsNotConstructed = errors.New(
	"GetZoneQuery must be created via NewGetZoneQuery constructor",
)

// GetZoneQuery retrieves one zone with its full definition and version, so a
// client can edit and resubmit under optimistic concurrency.
type GetZoneQuery struct {
	tenantID kernel.TenantID
	zoneID   kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetZoneQuery creates a zone lookup by identifier.
func NewGetZoneQuery(tenantID kernel.TenantID, zoneID kernel.UUID) (GetZoneQuery, error) {
	if err := tenantID.Validate(); err != nil {
		return GetZoneQuery{}, errs.NewValueIsRequiredErrorWithCause("tenantId", err)
	}
	if err := zoneID.Validate(); err != nil {
		return GetZoneQuery{}, errs.NewValueIsRequiredErrorWithCause("zoneId", err)
	}

	return GetZoneQuery{
		tenantID: tenantID,
		zoneID:   zoneID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetZoneQuery) Validate() error {
	return q.guard.Validate(ErrGetZoneQueryIsNotConstructed)
}

// TenantID returns the requesting tenant.
func (q GetZoneQuery) TenantID() kernel.TenantID { return q.tenantID }

// ZoneID returns the zone to fetch.
func (q GetZoneQuery) ZoneID() kernel.UUID { return q.zoneID }

// GetZoneQueryResponse is the full zone read model. Version is the optimistic
// concurrency counter an update must echo back.
type GetZoneQueryResponse struct {
	ID            kernel.UUID
	Code          string
	Name          string
	Countries     []string
	AllowPatterns []string
	DenyPatterns  []string
	Priority      int
	Active        bool
	Version       int64
}
