package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
)

// ShipmentRepository defines the persistence contract for shipment aggregates,
// including their owned packages and tracking event log.
type ShipmentRepository interface {
	// Add persists a new shipment aggregate with its packages and initial
	// tracking event.
	Add(ctx context.Context, aggregate *shipment.Shipment) error

	// Update persists changes to an existing shipment, enforcing optimistic
	// concurrency on the version counter. New tracking events are appended,
	// never rewritten.
	Update(ctx context.Context, aggregate *shipment.Shipment) error

	// Get retrieves a shipment by its unique identifier.
	Get(ctx context.Context, tenantID kernel.TenantID, id kernel.UUID) (*shipment.Shipment, error)

	// GetByNumber retrieves a shipment by its tenant-unique number.
	GetByNumber(ctx context.Context, tenantID kernel.TenantID, number string) (*shipment.Shipment, error)

	// GetByTrackingNumber retrieves a shipment by its master tracking number.
	GetByTrackingNumber(ctx context.Context, tenantID kernel.TenantID, trackingNumber string) (*shipment.Shipment, error)

	// GetAllInStatus retrieves shipments in any of the given statuses across
	// all tenants. Used by the tracking sweep to find shipments still moving;
	// each aggregate carries its own tenant.
	GetAllInStatus(ctx context.Context, statuses ...shipment.Status) ([]*shipment.Shipment, error)

	// CountByCarrier counts shipments referencing the given carrier. Used as
	// the referential guard before carrier removal.
	CountByCarrier(ctx context.Context, tenantID kernel.TenantID, carrierID kernel.UUID) (int64, error)
}
