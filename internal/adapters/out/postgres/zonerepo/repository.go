package zonerepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/zone"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormZoneRepository implements ZoneRepository using GORM.
type GormZoneRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormZoneRepository creates a new GORM zone repository.
func NewGormZoneRepository(db *gorm.DB, tracker aggregateTracker) *GormZoneRepository {
	return &GormZoneRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new zone. A duplicate code within the tenant surfaces as
// ErrObjectAlreadyExists via the unique index.
func (r *GormZoneRepository) Add(ctx context.Context, aggregate *zone.Zone) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = 1
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewObjectAlreadyExistsError("zone code", aggregate.Code())
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing zone with an optimistic concurrency check: the row
// is only written if its persisted version still matches the aggregate's.
func (r *GormZoneRepository) Update(ctx context.Context, aggregate *zone.Zone) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = aggregate.Version() + 1

	// Select forces zero values (active=false) to be written too.
	result := r.db.WithContext(ctx).
		Model(&ZoneDTO{}).
		Where("id = ? AND tenant_id = ? AND version = ?",
			dto.ID, dto.TenantID, aggregate.Version()).
		Select("code", "name", "countries", "allow_patterns", "deny_patterns",
			"priority", "active", "version").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewVersionConflictError("zone", aggregate.Version())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a zone by ID within the tenant.
func (r *GormZoneRepository) Get(ctx context.Context, tenantID kernel.TenantID, id kernel.UUID) (*zone.Zone, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ZoneDTO
	err := r.db.WithContext(ctx).
		First(&dto, "id = ? AND tenant_id = ?", id.Bytes(), tenantID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("zone", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByCode retrieves a zone by its tenant-unique code.
func (r *GormZoneRepository) GetByCode(ctx context.Context, tenantID kernel.TenantID, code string) (*zone.Zone, error) {
	var dto ZoneDTO
	err := r.db.WithContext(ctx).
		First(&dto, "code = ? AND tenant_id = ?", code, tenantID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("zone", code)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAll retrieves every zone of the tenant.
func (r *GormZoneRepository) GetAll(ctx context.Context, tenantID kernel.TenantID) ([]*zone.Zone, error) {
	var dtos []ZoneDTO
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID.Bytes()).
		Order("priority, code").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

// GetAllActive retrieves the tenant's active zones for resolution.
func (r *GormZoneRepository) GetAllActive(ctx context.Context, tenantID kernel.TenantID) ([]*zone.Zone, error) {
	var dtos []ZoneDTO
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND active", tenantID.Bytes()).
		Order("priority, code").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

func toDomainAll(dtos []ZoneDTO) ([]*zone.Zone, error) {
	zones := make([]*zone.Zone, 0, len(dtos))
	for _, dto := range dtos {
		z, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		zones = append(zones, z)
	}
	return zones, nil
}
