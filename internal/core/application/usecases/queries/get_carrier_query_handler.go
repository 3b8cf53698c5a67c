package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/carrier"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetCarrierQueryHandler reads one carrier directly from the database.
type GetCarrierQueryHandler struct {
	db *gorm.DB
}

// NewGetCarrierQueryHandler creates a handler for carrier retrieval queries.
func NewGetCarrierQueryHandler(db *gorm.DB) GetCarrierQueryHandler {
	return GetCarrierQueryHandler{db: db}
}

type carrierRow struct {
	ID                   uuid.UUID
	Code                 string
	Name                 string
	SupportsTracking     bool
	SupportsLabels       bool
	SupportsReturns      bool
	SupportsPickupPoints bool
	SupportsInsurance    bool
	MaxWeightKg          float64
	MaxLengthCm          float64
	MaxGirthCm           float64
	DeliveryDaysMin      int
	DeliveryDaysMax      int
	Active               bool
	Version              int64
}

// Handle executes the lookup.
func (h GetCarrierQueryHandler) Handle(
	ctx context.Context,
	query GetCarrierQuery,
) (GetCarrierQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCarrierQueryResponse{}, err
	}

	var row carrierRow
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			id, code, name,
			supports_tracking, supports_labels, supports_returns,
			supports_pickup_points, supports_insurance,
			max_weight_kg, max_length_cm, max_girth_cm,
			delivery_days_min, delivery_days_max, active, version
		FROM carriers
		WHERE tenant_id = ? AND id = ?`,
		query.TenantID().Bytes(), query.CarrierID().Bytes()).Scan(&row).Error
	if err != nil {
		return GetCarrierQueryResponse{}, err
	}
	if row.ID == uuid.Nil {
		return GetCarrierQueryResponse{}, errs.NewObjectNotFoundError("carrier", query.CarrierID().String())
	}

	return carrierRowToResponse(row)
}

func carrierRowToResponse(row carrierRow) (GetCarrierQueryResponse, error) {
	id, err := kernel.UUIDFromBytes(row.ID[:])
	if err != nil {
		return GetCarrierQueryResponse{}, err
	}

	return GetCarrierQueryResponse{
		ID:   id,
		Code: row.Code,
		Name: row.Name,
		Capabilities: carrier.Capabilities{
			Tracking:     row.SupportsTracking,
			Labels:       row.SupportsLabels,
			Returns:      row.SupportsReturns,
			PickupPoints: row.SupportsPickupPoints,
			Insurance:    row.SupportsInsurance,
		},
		Limits: carrier.ServiceLimits{
			MaxWeightKg: row.MaxWeightKg,
			MaxLengthCm: row.MaxLengthCm,
			MaxGirthCm:  row.MaxGirthCm,
		},
		DeliveryDays: carrier.DeliveryDays{
			Min: row.DeliveryDaysMin,
			Max: row.DeliveryDaysMax,
		},
		Active:  row.Active,
		Version: row.Version,
	}, nil
}
