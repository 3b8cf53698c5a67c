package returnrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/rma"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormReturnRepository implements ReturnRepository using GORM.
type GormReturnRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormReturnRepository creates a new GORM return repository.
func NewGormReturnRepository(db *gorm.DB, tracker aggregateTracker) *GormReturnRepository {
	return &GormReturnRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new return with its item lines.
func (r *GormReturnRepository) Add(ctx context.Context, aggregate *rma.Return) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = 1
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewObjectAlreadyExistsError("return number", aggregate.Number())
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing return with an optimistic concurrency check. Item
// lines are frozen at creation, so only the lifecycle columns are written.
func (r *GormReturnRepository) Update(ctx context.Context, aggregate *rma.Return) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = aggregate.Version() + 1

	// Select forces zero and NULL values to be written too.
	result := r.db.WithContext(ctx).
		Model(&ReturnDTO{}).
		Where("id = ? AND tenant_id = ? AND version = ?",
			dto.ID, dto.TenantID, aggregate.Version()).
		Select("status", "review_notes", "tracking_number", "label_url",
			"received_condition", "received_notes", "received_at",
			"inspection_outcome", "inspection_notes", "inspected_at",
			"refund_amount", "refund_currency", "refund_method",
			"restocking_fee", "refund_processed_at", "version").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewVersionConflictError("return", aggregate.Version())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a return by ID within the tenant.
func (r *GormReturnRepository) Get(ctx context.Context, tenantID kernel.TenantID, id kernel.UUID) (*rma.Return, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ReturnDTO
	err := r.preloaded(ctx).
		First(&dto, "id = ? AND tenant_id = ?", id.Bytes(), tenantID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("return", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByNumber retrieves a return by its tenant-unique number.
func (r *GormReturnRepository) GetByNumber(ctx context.Context, tenantID kernel.TenantID, number string) (*rma.Return, error) {
	var dto ReturnDTO
	err := r.preloaded(ctx).
		First(&dto, "number = ? AND tenant_id = ?", number, tenantID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("return", number)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllInStatus retrieves returns in any of the given statuses across all
// tenants, oldest first so the tracking sweep drains fairly.
func (r *GormReturnRepository) GetAllInStatus(ctx context.Context, statuses ...rma.Status) ([]*rma.Return, error) {
	raw := make([]int, 0, len(statuses))
	for _, s := range statuses {
		raw = append(raw, int(s))
	}

	var dtos []ReturnDTO
	err := r.preloaded(ctx).
		Where("status IN ?", raw).
		Order("number").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	returns := make([]*rma.Return, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		returns = append(returns, aggregate)
	}
	return returns, nil
}

func (r *GormReturnRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("id")
		})
}
