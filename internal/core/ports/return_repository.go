package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/rma"
)

// ReturnRepository defines the persistence contract for return aggregates.
type ReturnRepository interface {
	// Add persists a new return aggregate to storage.
	Add(ctx context.Context, aggregate *rma.Return) error

	// Update persists changes to an existing return, enforcing optimistic
	// concurrency on the version counter.
	Update(ctx context.Context, aggregate *rma.Return) error

	// Get retrieves a return by its unique identifier.
	Get(ctx context.Context, tenantID kernel.TenantID, id kernel.UUID) (*rma.Return, error)

	// GetByNumber retrieves a return by its tenant-unique number.
	GetByNumber(ctx context.Context, tenantID kernel.TenantID, number string) (*rma.Return, error)

	// GetAllInStatus retrieves returns in any of the given statuses across
	// all tenants. Used by the tracking sweep to spot return parcels that
	// started moving.
	GetAllInStatus(ctx context.Context, statuses ...rma.Status) ([]*rma.Return, error)
}
