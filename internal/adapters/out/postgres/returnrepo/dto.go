// Package returnrepo persists return aggregates with their item lines and the
// optional refund record.
package returnrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/rma"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReturnDTO is the database row for a return aggregate. The refund columns
// are nullable and stay NULL until the refund is processed.
type ReturnDTO struct {
	ID                uuid.UUID        `gorm:"type:uuid;primaryKey"`
	TenantID          uuid.UUID        `gorm:"type:uuid;not null;index:idx_returns_tenant;uniqueIndex:idx_returns_tenant_number"`
	Number            string           `gorm:"type:varchar(32);not null;uniqueIndex:idx_returns_tenant_number"`
	ShipmentID        uuid.UUID        `gorm:"type:uuid;not null;index"`
	OrderID           *uuid.UUID       `gorm:"type:uuid;index"`
	Status            int              `gorm:"type:int;not null;index"`
	ReviewNotes       string           `gorm:"type:varchar(512)"`
	TrackingNumber    string           `gorm:"type:varchar(64);index"`
	LabelURL          string           `gorm:"type:varchar(512)"`
	ReceivedCondition string           `gorm:"type:varchar(64)"`
	ReceivedNotes     string           `gorm:"type:varchar(512)"`
	ReceivedAt        *time.Time       `gorm:"type:timestamptz"`
	InspectionOutcome string           `gorm:"type:varchar(64)"`
	InspectionNotes   string           `gorm:"type:varchar(512)"`
	InspectedAt       *time.Time       `gorm:"type:timestamptz"`
	RefundAmount      *decimal.Decimal `gorm:"type:numeric(12,2)"`
	RefundCurrency    *string          `gorm:"type:char(3)"`
	RefundMethod      *int             `gorm:"type:int"`
	RestockingFee     *decimal.Decimal `gorm:"type:numeric(12,2)"`
	RefundProcessedAt *time.Time       `gorm:"type:timestamptz"`
	Version           int64            `gorm:"type:bigint;not null"`
	Items             []ReturnItemDTO  `gorm:"foreignKey:ReturnID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default naming to use "returns".
func (ReturnDTO) TableName() string {
	return "returns"
}

// ReturnItemDTO is one returned item line.
type ReturnItemDTO struct {
	ID          int64     `gorm:"type:bigint;primaryKey;autoIncrement"`
	ReturnID    uuid.UUID `gorm:"type:uuid;not null;index"`
	SKU         string    `gorm:"type:varchar(64);not null;column:sku"`
	Description string    `gorm:"type:varchar(255);not null"`
	Quantity    int       `gorm:"type:int;not null"`
	Reason      string    `gorm:"type:varchar(255);not null"`
}

// TableName overrides GORM's default naming to use "return_items".
func (ReturnItemDTO) TableName() string {
	return "return_items"
}

func fromDomain(aggregate *rma.Return) ReturnDTO {
	id := aggregate.ID().Bytes()

	var orderID *uuid.UUID
	if aggregate.OrderID() != nil {
		raw := aggregate.OrderID().Bytes()
		orderID = &raw
	}

	items := make([]ReturnItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, ReturnItemDTO{
			ReturnID:    id,
			SKU:         item.SKU(),
			Description: item.Description(),
			Quantity:    item.Quantity(),
			Reason:      item.Reason(),
		})
	}

	dto := ReturnDTO{
		ID:                id,
		TenantID:          aggregate.TenantID().Bytes(),
		Number:            aggregate.Number(),
		ShipmentID:        aggregate.ShipmentID().Bytes(),
		OrderID:           orderID,
		Status:            int(aggregate.Status()),
		ReviewNotes:       aggregate.ReviewNotes(),
		TrackingNumber:    aggregate.TrackingNumber(),
		LabelURL:          aggregate.LabelURL(),
		ReceivedCondition: aggregate.ReceivedCondition(),
		ReceivedNotes:     aggregate.ReceivedNotes(),
		ReceivedAt:        aggregate.ReceivedAt(),
		InspectionOutcome: aggregate.InspectionOutcome(),
		InspectionNotes:   aggregate.InspectionNotes(),
		InspectedAt:       aggregate.InspectedAt(),
		Version:           aggregate.Version(),
		Items:             items,
	}

	if refund := aggregate.Refund(); refund != nil {
		amount := refund.Amount.Amount()
		currency := refund.Amount.Currency().Code()
		method := int(refund.Method)
		fee := refund.RestockingFee.Amount()
		processedAt := refund.ProcessedAt
		dto.RefundAmount = &amount
		dto.RefundCurrency = &currency
		dto.RefundMethod = &method
		dto.RestockingFee = &fee
		dto.RefundProcessedAt = &processedAt
	}

	return dto
}

func toDomain(dto ReturnDTO) (*rma.Return, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	tenantID, err := kernel.TenantIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}
	shipmentID, err := kernel.UUIDFromBytes(dto.ShipmentID[:])
	if err != nil {
		return nil, err
	}

	var orderID *kernel.UUID
	if dto.OrderID != nil {
		oID, oErr := kernel.UUIDFromBytes((*dto.OrderID)[:])
		if oErr != nil {
			return nil, oErr
		}
		orderID = &oID
	}

	items := make([]rma.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, iErr := rma.NewItem(itemDTO.SKU, itemDTO.Description,
			itemDTO.Quantity, itemDTO.Reason)
		if iErr != nil {
			return nil, iErr
		}
		items = append(items, item)
	}

	refund, err := refundToDomain(dto)
	if err != nil {
		return nil, err
	}

	return rma.RestoreReturn(id, tenantID, dto.Number, shipmentID, orderID,
		items, rma.Status(dto.Status), dto.ReviewNotes, dto.TrackingNumber,
		dto.LabelURL, dto.ReceivedCondition, dto.ReceivedNotes, dto.ReceivedAt,
		dto.InspectionOutcome, dto.InspectionNotes, dto.InspectedAt,
		refund, dto.Version)
}

func refundToDomain(dto ReturnDTO) (*rma.Refund, error) {
	if dto.RefundAmount == nil || dto.RefundCurrency == nil ||
		dto.RefundMethod == nil || dto.RefundProcessedAt == nil {
		return nil, nil
	}

	currency, err := kernel.NewCurrency(*dto.RefundCurrency)
	if err != nil {
		return nil, err
	}
	amount, err := kernel.NewMoney(*dto.RefundAmount, currency)
	if err != nil {
		return nil, err
	}

	fee := decimal.Zero
	if dto.RestockingFee != nil {
		fee = *dto.RestockingFee
	}
	restockingFee, err := kernel.NewMoney(fee, currency)
	if err != nil {
		return nil, err
	}

	return &rma.Refund{
		Amount:        amount,
		Method:        rma.RefundMethod(*dto.RefundMethod),
		RestockingFee: restockingFee,
		ProcessedAt:   *dto.RefundProcessedAt,
	}, nil
}
