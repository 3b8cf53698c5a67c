package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/zone"
)

// ZoneRepository defines the persistence contract for zone aggregates.
// Every read and write is tenant-scoped; a zone is never visible outside its
// owning tenant.
type ZoneRepository interface {
	// Add persists a new zone aggregate to storage.
	Add(ctx context.Context, aggregate *zone.Zone) error

	// Update persists changes to an existing zone, enforcing optimistic
	// concurrency on the version counter.
	Update(ctx context.Context, aggregate *zone.Zone) error

	// Get retrieves a zone by its unique identifier.
	Get(ctx context.Context, tenantID kernel.TenantID, id kernel.UUID) (*zone.Zone, error)

	// GetByCode retrieves a zone by its tenant-unique code.
	GetByCode(ctx context.Context, tenantID kernel.TenantID, code string) (*zone.Zone, error)

	// GetAll retrieves every zone of the tenant, active and inactive.
	GetAll(ctx context.Context, tenantID kernel.TenantID) ([]*zone.Zone, error)

	// GetAllActive retrieves the tenant's active zones for resolution.
	GetAllActive(ctx context.Context, tenantID kernel.TenantID) ([]*zone.Zone, error)
}
