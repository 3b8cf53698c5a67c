package shipmentrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormShipmentRepository implements ShipmentRepository using GORM.
type GormShipmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormShipmentRepository creates a new GORM shipment repository.
func NewGormShipmentRepository(db *gorm.DB, tracker aggregateTracker) *GormShipmentRepository {
	return &GormShipmentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new shipment with its packages and initial tracking event.
func (r *GormShipmentRepository) Add(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = 1
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewObjectAlreadyExistsError("shipment number", aggregate.Number())
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing shipment with an optimistic concurrency check on
// the header row. Addresses and costs are frozen at creation, so only the
// lifecycle columns are written. Package tracking numbers are rewritten and
// tracking events beyond the persisted count are appended.
func (r *GormShipmentRepository) Update(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = aggregate.Version() + 1

	// Select forces zero values (cleared estimates) to be written too.
	result := r.db.WithContext(ctx).
		Model(&ShipmentDTO{}).
		Where("id = ? AND tenant_id = ? AND version = ?",
			dto.ID, dto.TenantID, aggregate.Version()).
		Select("status", "master_tracking", "label_url", "estimated_delivery",
			"delivered_at", "cancel_reason", "version").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewVersionConflictError("shipment", aggregate.Version())
	}

	for _, p := range dto.Packages {
		err := r.db.WithContext(ctx).
			Model(&PackageDTO{}).
			Where("id = ? AND shipment_id = ?", p.ID, dto.ID).
			Update("tracking_number", p.TrackingNumber).Error
		if err != nil {
			return err
		}
	}

	if err := r.appendNewEvents(ctx, dto); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// appendNewEvents inserts events the aggregate gained since it was loaded.
// The log is append-only, so everything beyond the persisted count is new.
func (r *GormShipmentRepository) appendNewEvents(ctx context.Context, dto ShipmentDTO) error {
	var persisted int64
	err := r.db.WithContext(ctx).
		Model(&TrackingEventDTO{}).
		Where("shipment_id = ?", dto.ID).
		Count(&persisted).Error
	if err != nil {
		return err
	}

	if int(persisted) >= len(dto.Events) {
		return nil
	}

	fresh := dto.Events[persisted:]
	return r.db.WithContext(ctx).Create(&fresh).Error
}

// Get retrieves a shipment by ID within the tenant.
func (r *GormShipmentRepository) Get(ctx context.Context, tenantID kernel.TenantID, id kernel.UUID) (*shipment.Shipment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ShipmentDTO
	err := r.preloaded(ctx).
		First(&dto, "id = ? AND tenant_id = ?", id.Bytes(), tenantID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shipment", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByNumber retrieves a shipment by its tenant-unique number.
func (r *GormShipmentRepository) GetByNumber(ctx context.Context, tenantID kernel.TenantID, number string) (*shipment.Shipment, error) {
	var dto ShipmentDTO
	err := r.preloaded(ctx).
		First(&dto, "number = ? AND tenant_id = ?", number, tenantID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shipment", number)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByTrackingNumber retrieves a shipment by its master tracking number.
func (r *GormShipmentRepository) GetByTrackingNumber(ctx context.Context, tenantID kernel.TenantID, trackingNumber string) (*shipment.Shipment, error) {
	var dto ShipmentDTO
	err := r.preloaded(ctx).
		First(&dto, "master_tracking = ? AND tenant_id = ?", trackingNumber, tenantID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shipment", trackingNumber)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllInStatus retrieves shipments in any of the given statuses across all
// tenants, oldest first so the tracking sweep drains fairly.
func (r *GormShipmentRepository) GetAllInStatus(ctx context.Context, statuses ...shipment.Status) ([]*shipment.Shipment, error) {
	raw := make([]int, 0, len(statuses))
	for _, s := range statuses {
		raw = append(raw, int(s))
	}

	var dtos []ShipmentDTO
	err := r.preloaded(ctx).
		Where("status IN ?", raw).
		Order("number").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	shipments := make([]*shipment.Shipment, 0, len(dtos))
	for _, dto := range dtos {
		s, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		shipments = append(shipments, s)
	}
	return shipments, nil
}

// CountByCarrier counts the tenant's shipments referencing the carrier.
func (r *GormShipmentRepository) CountByCarrier(ctx context.Context, tenantID kernel.TenantID, carrierID kernel.UUID) (int64, error) {
	if err := carrierID.Validate(); err != nil {
		return 0, err
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&ShipmentDTO{}).
		Where("tenant_id = ? AND carrier_id = ?", tenantID.Bytes(), carrierID.Bytes()).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormShipmentRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Packages", func(db *gorm.DB) *gorm.DB {
			return db.Order("id")
		}).
		Preload("Events", func(db *gorm.DB) *gorm.DB {
			return db.Order("occurred_at, id")
		})
}
