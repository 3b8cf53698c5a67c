package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetAllCarriersQueryHandler lists carriers ordered by code.
type GetAllCarriersQueryHandler struct {
	db *gorm.DB
}

// NewGetAllCarriersQueryHandler creates a handler for carrier listing queries.
func NewGetAllCarriersQueryHandler(db *gorm.DB) GetAllCarriersQueryHandler {
	return GetAllCarriersQueryHandler{db: db}
}

// Handle executes the listing.
func (h GetAllCarriersQueryHandler) Handle(
	ctx context.Context,
	query GetAllCarriersQuery,
) ([]GetCarrierQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			id, code, name,
			supports_tracking, supports_labels, supports_returns,
			supports_pickup_points, supports_insurance,
			max_weight_kg, max_length_cm, max_girth_cm,
			delivery_days_min, delivery_days_max, active, version
		FROM carriers
		WHERE tenant_id = ?`
	if query.ActiveOnly() {
		sql += ` AND active`
	}
	sql += ` ORDER BY code`

	var rows []carrierRow
	if err := h.db.WithContext(ctx).Raw(sql, query.TenantID().Bytes()).Scan(&rows).Error; err != nil {
		return nil, err
	}

	carriers := make([]GetCarrierQueryResponse, 0, len(rows))
	for _, row := range rows {
		line, err := carrierRowToResponse(row)
		if err != nil {
			return nil, err
		}
		carriers = append(carriers, line)
	}

	return carriers, nil
}
