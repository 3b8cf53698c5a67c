// Package shipmentrepo persists shipment aggregates with their packages and
// append-only tracking event log.
package shipmentrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShipmentDTO is the database row for a shipment aggregate. Addresses and the
// cost breakdown are embedded; packages and events live in child tables.
type ShipmentDTO struct {
	ID                uuid.UUID          `gorm:"type:uuid;primaryKey"`
	TenantID          uuid.UUID          `gorm:"type:uuid;not null;index:idx_shipments_tenant;uniqueIndex:idx_shipments_tenant_number"`
	Number            string             `gorm:"type:varchar(32);not null;uniqueIndex:idx_shipments_tenant_number"`
	CarrierID         uuid.UUID          `gorm:"type:uuid;not null;index"`
	TariffID          uuid.UUID          `gorm:"type:uuid;not null"`
	OrderID           *uuid.UUID         `gorm:"type:uuid;index"`
	Origin            AddressDTO         `gorm:"embedded;embeddedPrefix:origin_"`
	Destination       AddressDTO         `gorm:"embedded;embeddedPrefix:destination_"`
	PickupPoint       string             `gorm:"type:varchar(255)"`
	Currency          string             `gorm:"type:char(3);not null"`
	BaseCost          decimal.Decimal    `gorm:"type:numeric(12,2);not null"`
	InsuranceCost     decimal.Decimal    `gorm:"type:numeric(12,2);not null"`
	SurchargeCost     decimal.Decimal    `gorm:"type:numeric(12,2);not null"`
	TotalCost         decimal.Decimal    `gorm:"type:numeric(12,2);not null"`
	Status            int                `gorm:"type:int;not null;index"`
	MasterTracking    string             `gorm:"type:varchar(64);index"`
	LabelURL          string             `gorm:"type:varchar(512)"`
	EstimatedDelivery *time.Time         `gorm:"type:timestamptz"`
	DeliveredAt       *time.Time         `gorm:"type:timestamptz"`
	CancelReason      string             `gorm:"type:varchar(512)"`
	Version           int64              `gorm:"type:bigint;not null"`
	Packages          []PackageDTO       `gorm:"foreignKey:ShipmentID;constraint:OnDelete:CASCADE"`
	Events            []TrackingEventDTO `gorm:"foreignKey:ShipmentID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default naming to use "shipments".
func (ShipmentDTO) TableName() string {
	return "shipments"
}

// AddressDTO flattens an address snapshot into prefixed columns.
type AddressDTO struct {
	Name        string `gorm:"type:varchar(255);not null"`
	Street      string `gorm:"type:varchar(255);not null"`
	City        string `gorm:"type:varchar(255);not null"`
	PostalCode  string `gorm:"type:varchar(32);not null"`
	CountryCode string `gorm:"type:char(2);not null"`
	Residential bool   `gorm:"type:boolean;not null"`
}

// PackageDTO is one parcel row. Derived weights are recomputed on load, so
// only the physical measures are stored.
type PackageDTO struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ShipmentID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	LengthCm       float64         `gorm:"type:numeric(10,2);not null"`
	WidthCm        float64         `gorm:"type:numeric(10,2);not null"`
	HeightCm       float64         `gorm:"type:numeric(10,2);not null"`
	WeightKg       float64         `gorm:"type:numeric(10,3);not null"`
	DeclaredValue  decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Contents       string          `gorm:"type:varchar(512)"`
	TrackingNumber string          `gorm:"type:varchar(64)"`
}

// TableName overrides GORM's default naming to use "packages".
func (PackageDTO) TableName() string {
	return "packages"
}

// TrackingEventDTO is one append-only tracking log row.
type TrackingEventDTO struct {
	ID          int64     `gorm:"type:bigint;primaryKey;autoIncrement"`
	ShipmentID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Status      int       `gorm:"type:int;not null"`
	Description string    `gorm:"type:varchar(512);not null"`
	Location    string    `gorm:"type:varchar(255)"`
	OccurredAt  time.Time `gorm:"type:timestamptz;not null"`
}

// TableName overrides GORM's default naming to use "tracking_events".
func (TrackingEventDTO) TableName() string {
	return "tracking_events"
}

func fromDomain(aggregate *shipment.Shipment) ShipmentDTO {
	id := aggregate.ID().Bytes()
	costs := aggregate.Costs()

	var orderID *uuid.UUID
	if aggregate.OrderID() != nil {
		raw := aggregate.OrderID().Bytes()
		orderID = &raw
	}

	packages := make([]PackageDTO, 0, len(aggregate.Packages()))
	for _, p := range aggregate.Packages() {
		packages = append(packages, PackageDTO{
			ID:             p.ID().Bytes(),
			ShipmentID:     id,
			LengthCm:       p.Dimensions().Length(),
			WidthCm:        p.Dimensions().Width(),
			HeightCm:       p.Dimensions().Height(),
			WeightKg:       p.ActualWeight().Kg(),
			DeclaredValue:  p.DeclaredValue().Amount(),
			Contents:       p.Contents(),
			TrackingNumber: p.TrackingNumber(),
		})
	}

	events := make([]TrackingEventDTO, 0, len(aggregate.Events()))
	for _, e := range aggregate.Events() {
		events = append(events, TrackingEventDTO{
			ShipmentID:  id,
			Status:      int(e.Status()),
			Description: e.Description(),
			Location:    e.Location(),
			OccurredAt:  e.OccurredAt(),
		})
	}

	return ShipmentDTO{
		ID:                id,
		TenantID:          aggregate.TenantID().Bytes(),
		Number:            aggregate.Number(),
		CarrierID:         aggregate.CarrierID().Bytes(),
		TariffID:          aggregate.TariffID().Bytes(),
		OrderID:           orderID,
		Origin:            addressFromDomain(aggregate.Origin()),
		Destination:       addressFromDomain(aggregate.Destination()),
		PickupPoint:       aggregate.PickupPoint(),
		Currency:          costs.Total.Currency().Code(),
		BaseCost:          costs.Base.Amount(),
		InsuranceCost:     costs.Insurance.Amount(),
		SurchargeCost:     costs.Surcharge.Amount(),
		TotalCost:         costs.Total.Amount(),
		Status:            int(aggregate.Status()),
		MasterTracking:    aggregate.MasterTracking(),
		LabelURL:          aggregate.LabelURL(),
		EstimatedDelivery: aggregate.EstimatedDelivery(),
		DeliveredAt:       aggregate.DeliveredAt(),
		CancelReason:      aggregate.CancelReason(),
		Version:           aggregate.Version(),
		Packages:          packages,
		Events:            events,
	}
}

func addressFromDomain(a shipment.Address) AddressDTO {
	return AddressDTO{
		Name:        a.Name(),
		Street:      a.Street(),
		City:        a.City(),
		PostalCode:  a.PostalCode(),
		CountryCode: a.CountryCode(),
		Residential: a.IsResidential(),
	}
}

func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	tenantID, err := kernel.TenantIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}
	carrierID, err := kernel.UUIDFromBytes(dto.CarrierID[:])
	if err != nil {
		return nil, err
	}
	tariffID, err := kernel.UUIDFromBytes(dto.TariffID[:])
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

	origin, err := addressToDomain(dto.Origin)
	if err != nil {
		return nil, err
	}
	destination, err := addressToDomain(dto.Destination)
	if err != nil {
		return nil, err
	}

	currency, err := kernel.NewCurrency(dto.Currency)
	if err != nil {
		return nil, err
	}
	costs, err := costsToDomain(dto, currency)
	if err != nil {
		return nil, err
	}

	packages := make([]*shipment.Package, 0, len(dto.Packages))
	for _, pDTO := range dto.Packages {
		p, pErr := packageToDomain(pDTO, currency)
		if pErr != nil {
			return nil, pErr
		}
		packages = append(packages, p)
	}

	events := make([]shipment.TrackingEvent, 0, len(dto.Events))
	for _, eDTO := range dto.Events {
		e, eErr := shipment.NewTrackingEvent(shipment.Status(eDTO.Status),
			eDTO.Description, eDTO.Location, eDTO.OccurredAt)
		if eErr != nil {
			return nil, eErr
		}
		events = append(events, e)
	}

	return shipment.RestoreShipment(id, tenantID, dto.Number, carrierID, tariffID,
		orderID, origin, destination, dto.PickupPoint, packages, costs,
		shipment.Status(dto.Status), events, dto.MasterTracking, dto.LabelURL,
		dto.EstimatedDelivery, dto.DeliveredAt, dto.CancelReason, dto.Version)
}

func addressToDomain(dto AddressDTO) (shipment.Address, error) {
	return shipment.NewAddress(dto.Name, dto.Street, dto.City,
		dto.PostalCode, dto.CountryCode, dto.Residential)
}

func costsToDomain(dto ShipmentDTO, currency kernel.Currency) (shipment.CostBreakdown, error) {
	base, err := kernel.NewMoney(dto.BaseCost, currency)
	if err != nil {
		return shipment.CostBreakdown{}, err
	}
	insurance, err := kernel.NewMoney(dto.InsuranceCost, currency)
	if err != nil {
		return shipment.CostBreakdown{}, err
	}
	surcharge, err := kernel.NewMoney(dto.SurchargeCost, currency)
	if err != nil {
		return shipment.CostBreakdown{}, err
	}
	total, err := kernel.NewMoney(dto.TotalCost, currency)
	if err != nil {
		return shipment.CostBreakdown{}, err
	}

	return shipment.CostBreakdown{
		Base:      base,
		Insurance: insurance,
		Surcharge: surcharge,
		Total:     total,
	}, nil
}

func packageToDomain(dto PackageDTO, currency kernel.Currency) (*shipment.Package, error) {
	dims, err := kernel.NewDimensions(dto.LengthCm, dto.WidthCm, dto.HeightCm)
	if err != nil {
		return nil, err
	}
	weight, err := kernel.NewWeight(dto.WeightKg)
	if err != nil {
		return nil, err
	}
	declared, err := kernel.NewMoney(dto.DeclaredValue, currency)
	if err != nil {
		return nil, err
	}

	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return shipment.RestorePackage(id, dims, weight, declared, dto.Contents,
		dto.TrackingNumber, kernel.DefaultVolumetricDivisor)
}
