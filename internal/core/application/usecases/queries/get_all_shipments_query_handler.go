package queries

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAllShipmentsQueryHandler lists shipment summaries from the database.
type GetAllShipmentsQueryHandler struct {
	db *gorm.DB
}

// NewGetAllShipmentsQueryHandler creates a handler for shipment listing queries.
func NewGetAllShipmentsQueryHandler(db *gorm.DB) GetAllShipmentsQueryHandler {
	return GetAllShipmentsQueryHandler{db: db}
}

// Handle executes the listing, newest shipment numbers first.
func (h GetAllShipmentsQueryHandler) Handle(
	ctx context.Context,
	query GetAllShipmentsQuery,
) ([]GetAllShipmentsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			id, number, status, destination_city, destination_country_code,
			currency, total_cost, master_tracking, estimated_delivery
		FROM shipments
		WHERE tenant_id = ?`
	args := []any{query.TenantID().Bytes()}

	if query.Status() != nil {
		sql += ` AND status = ?`
		args = append(args, int(*query.Status()))
	}
	sql += ` ORDER BY number DESC`

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shipments := make([]GetAllShipmentsQueryResponse, 0)
	for rows.Next() {
		var line GetAllShipmentsQueryResponse
		var id uuid.UUID
		var status int
		var estimated *time.Time

		if err = rows.Scan(&id, &line.Number, &status, &line.DestinationCity,
			&line.CountryCode, &line.Currency, &line.TotalCost,
			&line.MasterTracking, &estimated); err != nil {
			return nil, err
		}

		line.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		line.Status = shipment.Status(status)
		line.EstimatedDelivery = estimated
		shipments = append(shipments, line)
	}

	return shipments, rows.Err()
}
