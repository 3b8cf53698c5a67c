package queries

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/rma"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetReturnQueryHandler reads one return directly from the database.
type GetReturnQueryHandler struct {
	db *gorm.DB
}

// NewGetReturnQueryHandler creates a handler for return retrieval queries.
func NewGetReturnQueryHandler(db *gorm.DB) GetReturnQueryHandler {
	return GetReturnQueryHandler{db: db}
}

type returnRow struct {
	ID                 uuid.UUID
	Number             string
	ShipmentID         uuid.UUID
	OrderID            *uuid.UUID
	Status             int
	ReviewNotes        string
	TrackingNumber     string
	LabelURL           string
	ReceivedCondition  string
	ReceivedNotes      string
	ReceivedAt         *time.Time
	InspectionOutcome  string
	InspectionNotes    string
	InspectedAt        *time.Time
	RefundAmount       *decimal.Decimal
	RefundCurrency     *string
	RefundMethod       *int
	RestockingFee      *decimal.Decimal
	RefundProcessedAt  *time.Time
	Version            int64
}

// Handle executes the lookup with its items in a second query.
func (h GetReturnQueryHandler) Handle(
	ctx context.Context,
	query GetReturnQuery,
) (GetReturnQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetReturnQueryResponse{}, err
	}

	where := "number = ?"
	arg := any(query.Number())
	selector := query.Number()
	if query.ReturnID() != nil {
		where = "id = ?"
		arg = query.ReturnID().Bytes()
		selector = query.ReturnID().String()
	}

	var row returnRow
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			id, number, shipment_id, order_id, status, review_notes,
			tracking_number, label_url,
			received_condition, received_notes, received_at,
			inspection_outcome, inspection_notes, inspected_at,
			refund_amount, refund_currency, refund_method, restocking_fee,
			refund_processed_at, version
		FROM returns
		WHERE tenant_id = ? AND `+where,
		query.TenantID().Bytes(), arg).Scan(&row).Error
	if err != nil {
		return GetReturnQueryResponse{}, err
	}
	if row.ID == uuid.Nil {
		return GetReturnQueryResponse{}, errs.NewObjectNotFoundError("return", selector)
	}

	response, err := returnRowToResponse(row)
	if err != nil {
		return GetReturnQueryResponse{}, err
	}

	response.Items, err = h.fetchItems(ctx, row.ID)
	if err != nil {
		return GetReturnQueryResponse{}, err
	}

	return response, nil
}

func (h GetReturnQueryHandler) fetchItems(ctx context.Context, returnID uuid.UUID) ([]ReturnItemResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT sku, description, quantity, reason
		FROM return_items
		WHERE return_id = ?
		ORDER BY id
	`, returnID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]ReturnItemResponse, 0)
	for rows.Next() {
		var item ReturnItemResponse
		if err = rows.Scan(&item.SKU, &item.Description, &item.Quantity, &item.Reason); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func returnRowToResponse(row returnRow) (GetReturnQueryResponse, error) {
	id, err := kernel.UUIDFromBytes(row.ID[:])
	if err != nil {
		return GetReturnQueryResponse{}, err
	}
	shipmentID, err := kernel.UUIDFromBytes(row.ShipmentID[:])
	if err != nil {
		return GetReturnQueryResponse{}, err
	}

	var orderID *kernel.UUID
	if row.OrderID != nil {
		oID, oErr := kernel.UUIDFromBytes((*row.OrderID)[:])
		if oErr != nil {
			return GetReturnQueryResponse{}, oErr
		}
		orderID = &oID
	}

	var refund *ReturnRefundResponse
	if row.RefundAmount != nil && row.RefundMethod != nil && row.RefundProcessedAt != nil {
		refund = &ReturnRefundResponse{
			Amount:      *row.RefundAmount,
			Method:      rma.RefundMethod(*row.RefundMethod),
			ProcessedAt: *row.RefundProcessedAt,
		}
		if row.RefundCurrency != nil {
			refund.Currency = *row.RefundCurrency
		}
		if row.RestockingFee != nil {
			refund.RestockingFee = *row.RestockingFee
		}
	}

	return GetReturnQueryResponse{
		ID:                id,
		Number:            row.Number,
		ShipmentID:        shipmentID,
		OrderID:           orderID,
		Status:            rma.Status(row.Status),
		ReviewNotes:       row.ReviewNotes,
		TrackingNumber:    row.TrackingNumber,
		LabelURL:          row.LabelURL,
		ReceivedCondition: row.ReceivedCondition,
		ReceivedNotes:     row.ReceivedNotes,
		ReceivedAt:        row.ReceivedAt,
		InspectionOutcome: row.InspectionOutcome,
		InspectionNotes:   row.InspectionNotes,
		InspectedAt:       row.InspectedAt,
		Refund:            refund,
		Version:           row.Version,
	}, nil
}
