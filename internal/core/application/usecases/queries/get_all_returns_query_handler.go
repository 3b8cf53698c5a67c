package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/rma"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAllReturnsQueryHandler lists return summaries from the database.
type GetAllReturnsQueryHandler struct {
	db *gorm.DB
}

// NewGetAllReturnsQueryHandler creates a handler for return listing queries.
func NewGetAllReturnsQueryHandler(db *gorm.DB) GetAllReturnsQueryHandler {
	return GetAllReturnsQueryHandler{db: db}
}

// Handle executes the listing, newest return numbers first.
func (h GetAllReturnsQueryHandler) Handle(
	ctx context.Context,
	query GetAllReturnsQuery,
) ([]GetAllReturnsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			r.id, r.number, r.shipment_id, r.status, r.tracking_number,
			COUNT(i.id) AS item_count
		FROM returns r
		LEFT JOIN return_items i ON i.return_id = r.id
		WHERE r.tenant_id = ?`
	args := []any{query.TenantID().Bytes()}

	if query.Status() != nil {
		sql += ` AND r.status = ?`
		args = append(args, int(*query.Status()))
	}
	sql += `
		GROUP BY r.id, r.number, r.shipment_id, r.status, r.tracking_number
		ORDER BY r.number DESC`

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	returns := make([]GetAllReturnsQueryResponse, 0)
	for rows.Next() {
		var line GetAllReturnsQueryResponse
		var id, shipmentID uuid.UUID
		var status int

		if err = rows.Scan(&id, &line.Number, &shipmentID, &status,
			&line.TrackingNumber, &line.ItemCount); err != nil {
			return nil, err
		}

		line.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		line.ShipmentID, err = kernel.UUIDFromBytes(shipmentID[:])
		if err != nil {
			return nil, err
		}
		line.Status = rma.Status(status)
		returns = append(returns, line)
	}

	return returns, rows.Err()
}
