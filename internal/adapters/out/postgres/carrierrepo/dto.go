// Package carrierrepo persists carrier aggregates, mapping between the domain
// model and the carriers table.
package carrierrepo

import (
	"fulfillment/internal/core/domain/model/carrier"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CarrierDTO is the database row for a carrier aggregate. Capabilities and
// limits are flattened into columns via embedded structs.
type CarrierDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TenantID     uuid.UUID       `gorm:"type:uuid;not null;index:idx_carriers_tenant;uniqueIndex:idx_carriers_tenant_code"`
	Code         string          `gorm:"type:varchar(64);not null;uniqueIndex:idx_carriers_tenant_code"`
	Name         string          `gorm:"type:varchar(255);not null"`
	Capabilities CapabilitiesDTO `gorm:"embedded;embeddedPrefix:supports_"`
	Limits       LimitsDTO       `gorm:"embedded;embeddedPrefix:max_"`
	DeliveryDays DeliveryDaysDTO `gorm:"embedded;embeddedPrefix:delivery_days_"`
	Active       bool            `gorm:"type:boolean;not null"`
	Version      int64           `gorm:"type:bigint;not null"`
}

// TableName overrides GORM's default naming to use "carriers".
func (CarrierDTO) TableName() string {
	return "carriers"
}

// CapabilitiesDTO flattens carrier capabilities into boolean columns.
type CapabilitiesDTO struct {
	Tracking     bool `gorm:"type:boolean;not null"`
	Labels       bool `gorm:"type:boolean;not null"`
	Returns      bool `gorm:"type:boolean;not null"`
	PickupPoints bool `gorm:"type:boolean;not null"`
	Insurance    bool `gorm:"type:boolean;not null"`
}

// LimitsDTO flattens service limits into numeric columns. Zero means the
// carrier does not constrain that measure.
type LimitsDTO struct {
	WeightKg float64 `gorm:"type:numeric(10,3);not null"`
	LengthCm float64 `gorm:"type:numeric(10,2);not null"`
	GirthCm  float64 `gorm:"type:numeric(10,2);not null"`
}

// DeliveryDaysDTO flattens the delivery estimate range.
type DeliveryDaysDTO struct {
	Min int `gorm:"type:int;not null"`
	Max int `gorm:"type:int;not null"`
}

func fromDomain(aggregate *carrier.Carrier) CarrierDTO {
	caps := aggregate.Capabilities()
	limits := aggregate.Limits()
	days := aggregate.DeliveryDays()

	return CarrierDTO{
		ID:       aggregate.ID().Bytes(),
		TenantID: aggregate.TenantID().Bytes(),
		Code:     aggregate.Code(),
		Name:     aggregate.Name(),
		Capabilities: CapabilitiesDTO{
			Tracking:     caps.Tracking,
			Labels:       caps.Labels,
			Returns:      caps.Returns,
			PickupPoints: caps.PickupPoints,
			Insurance:    caps.Insurance,
		},
		Limits: LimitsDTO{
			WeightKg: limits.MaxWeightKg,
			LengthCm: limits.MaxLengthCm,
			GirthCm:  limits.MaxGirthCm,
		},
		DeliveryDays: DeliveryDaysDTO{
			Min: days.Min,
			Max: days.Max,
		},
		Active:  aggregate.IsActive(),
		Version: aggregate.Version(),
	}
}

func toDomain(dto CarrierDTO) (*carrier.Carrier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	tenantID, err := kernel.TenantIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}

	return carrier.RestoreCarrier(id, tenantID, dto.Code, dto.Name,
		carrier.Capabilities{
			Tracking:     dto.Capabilities.Tracking,
			Labels:       dto.Capabilities.Labels,
			Returns:      dto.Capabilities.Returns,
			PickupPoints: dto.Capabilities.PickupPoints,
			Insurance:    dto.Capabilities.Insurance,
		},
		carrier.ServiceLimits{
			MaxWeightKg: dto.Limits.WeightKg,
			MaxLengthCm: dto.Limits.LengthCm,
			MaxGirthCm:  dto.Limits.GirthCm,
		},
		carrier.DeliveryDays{
			Min: dto.DeliveryDays.Min,
			Max: dto.DeliveryDays.Max,
		},
		dto.Active, dto.Version)
}
