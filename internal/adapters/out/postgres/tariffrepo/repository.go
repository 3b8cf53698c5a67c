package tariffrepo

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/tariff"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormTariffRepository implements TariffRepository using GORM.
type GormTariffRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormTariffRepository creates a new GORM tariff repository.
func NewGormTariffRepository(db *gorm.DB, tracker aggregateTracker) *GormTariffRepository {
	return &GormTariffRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new tariff with its rate tables.
func (r *GormTariffRepository) Add(ctx context.Context, aggregate *tariff.Tariff) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = 1
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewObjectAlreadyExistsError("tariff code", aggregate.Code())
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing tariff with an optimistic concurrency check.
// Rate tables are replaced wholesale: tiers and brackets are value rows with
// no identity of their own.
func (r *GormTariffRepository) Update(ctx context.Context, aggregate *tariff.Tariff) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = aggregate.Version() + 1

	result := r.db.WithContext(ctx).
		Model(&TariffDTO{}).
		Where("id = ? AND tenant_id = ? AND version = ?",
			dto.ID, dto.TenantID, aggregate.Version()).
		Select("name", "base_rate", "per_kg_rate", "per_item_rate",
			"fuel_percent", "residential_amount", "oversize_amount",
			"oversize_over_longest_cm", "free_over_amount",
			"valid_from", "valid_until", "active", "version").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewVersionConflictError("tariff", aggregate.Version())
	}

	if err := r.db.WithContext(ctx).
		Where("tariff_id = ?", dto.ID).Delete(&WeightTierDTO{}).Error; err != nil {
		return err
	}
	if len(dto.WeightTiers) > 0 {
		if err := r.db.WithContext(ctx).Create(&dto.WeightTiers).Error; err != nil {
			return err
		}
	}

	if err := r.db.WithContext(ctx).
		Where("tariff_id = ?", dto.ID).Delete(&PriceBracketDTO{}).Error; err != nil {
		return err
	}
	if len(dto.PriceBrackets) > 0 {
		if err := r.db.WithContext(ctx).Create(&dto.PriceBrackets).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a tariff by ID within the tenant, with its rate tables.
func (r *GormTariffRepository) Get(ctx context.Context, tenantID kernel.TenantID, id kernel.UUID) (*tariff.Tariff, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto TariffDTO
	err := r.preloaded(ctx).
		First(&dto, "id = ? AND tenant_id = ?", id.Bytes(), tenantID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("tariff", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByCode retrieves a tariff by its tenant-unique code.
func (r *GormTariffRepository) GetByCode(ctx context.Context, tenantID kernel.TenantID, code string) (*tariff.Tariff, error) {
	var dto TariffDTO
	err := r.preloaded(ctx).
		First(&dto, "code = ? AND tenant_id = ?", code, tenantID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("tariff", code)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAll retrieves every tariff of the tenant.
func (r *GormTariffRepository) GetAll(ctx context.Context, tenantID kernel.TenantID) ([]*tariff.Tariff, error) {
	var dtos []TariffDTO
	err := r.preloaded(ctx).
		Where("tenant_id = ?", tenantID.Bytes()).
		Order("code").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

// GetAllActive retrieves the tenant's active tariffs for quoting.
func (r *GormTariffRepository) GetAllActive(ctx context.Context, tenantID kernel.TenantID) ([]*tariff.Tariff, error) {
	var dtos []TariffDTO
	err := r.preloaded(ctx).
		Where("tenant_id = ? AND active", tenantID.Bytes()).
		Order("code").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

// GetAllExpired retrieves active tariffs across all tenants whose validity
// window closed before asOf. Unbounded windows never expire.
func (r *GormTariffRepository) GetAllExpired(ctx context.Context, asOf time.Time) ([]*tariff.Tariff, error) {
	var dtos []TariffDTO
	err := r.preloaded(ctx).
		Where("active AND valid_until IS NOT NULL AND valid_until < ?", asOf).
		Order("code").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

// CountByZone counts tariffs referencing the given zone.
func (r *GormTariffRepository) CountByZone(ctx context.Context, tenantID kernel.TenantID, zoneID kernel.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&TariffDTO{}).
		Where("tenant_id = ? AND zone_id = ?", tenantID.Bytes(), zoneID.Bytes()).
		Count(&count).Error
	return count, err
}

// CountByCarrier counts tariffs referencing the given carrier.
func (r *GormTariffRepository) CountByCarrier(ctx context.Context, tenantID kernel.TenantID, carrierID kernel.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&TariffDTO{}).
		Where("tenant_id = ? AND carrier_id = ?", tenantID.Bytes(), carrierID.Bytes()).
		Count(&count).Error
	return count, err
}

func (r *GormTariffRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("WeightTiers", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		Preload("PriceBrackets", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		})
}

func toDomainAll(dtos []TariffDTO) ([]*tariff.Tariff, error) {
	tariffs := make([]*tariff.Tariff, 0, len(dtos))
	for _, dto := range dtos {
		t, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		tariffs = append(tariffs, t)
	}
	return tariffs, nil
}
