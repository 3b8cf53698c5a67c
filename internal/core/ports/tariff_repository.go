package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/tariff"
)

// TariffRepository defines the persistence contract for tariff aggregates.
type TariffRepository interface {
	// Add persists a new tariff aggregate to storage.
	Add(ctx context.Context, aggregate *tariff.Tariff) error

	// Update persists changes to an existing tariff, enforcing optimistic
	// concurrency on the version counter.
	Update(ctx context.Context, aggregate *tariff.Tariff) error

	// Get retrieves a tariff by its unique identifier.
	Get(ctx context.Context, tenantID kernel.TenantID, id kernel.UUID) (*tariff.Tariff, error)

	// GetByCode retrieves a tariff by its tenant-unique code.
	GetByCode(ctx context.Context, tenantID kernel.TenantID, code string) (*tariff.Tariff, error)

	// GetAll retrieves every tariff of the tenant.
	GetAll(ctx context.Context, tenantID kernel.TenantID) ([]*tariff.Tariff, error)

	// GetAllActive retrieves the tenant's active tariffs for quoting,
	// including tariffs scoped to any zone. Validity filtering stays in the
	// pricer so date logic lives in one place.
	GetAllActive(ctx context.Context, tenantID kernel.TenantID) ([]*tariff.Tariff, error)

	// GetAllExpired retrieves active tariffs across all tenants whose
	// validity window closed before the given instant. Used by the expiry
	// sweep.
	GetAllExpired(ctx context.Context, asOf time.Time) ([]*tariff.Tariff, error)

	// CountByZone counts tariffs referencing the given zone. Used as the
	// referential guard before zone removal.
	CountByZone(ctx context.Context, tenantID kernel.TenantID, zoneID kernel.UUID) (int64, error)

	// CountByCarrier counts tariffs referencing the given carrier. Used as
	// the referential guard before carrier removal.
	CountByCarrier(ctx context.Context, tenantID kernel.TenantID, carrierID kernel.UUID) (int64, error)
}
