package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/carrier"
	"fulfillment/internal/core/domain/model/kernel"
)

// CarrierRepository defines the persistence contract for carrier aggregates.
type CarrierRepository interface {
	// Add persists a new carrier aggregate to storage.
	Add(ctx context.Context, aggregate *carrier.Carrier) error

	// Update persists changes to an existing carrier, enforcing optimistic
	// concurrency on the version counter.
	Update(ctx context.Context, aggregate *carrier.Carrier) error

	// Get retrieves a carrier by its unique identifier.
	Get(ctx context.Context, tenantID kernel.TenantID, id kernel.UUID) (*carrier.Carrier, error)

	// GetByCode retrieves a carrier by its tenant-unique code.
	GetByCode(ctx context.Context, tenantID kernel.TenantID, code string) (*carrier.Carrier, error)

	// GetAll retrieves every carrier of the tenant.
	GetAll(ctx context.Context, tenantID kernel.TenantID) ([]*carrier.Carrier, error)
}
