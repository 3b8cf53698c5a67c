// Package zonerepo persists zone aggregates, mapping between the domain model
// and the zones table.
package zonerepo

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/zone"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ZoneDTO is the database row for a zone aggregate. Country and pattern lists
// are text arrays; the patterns are stored as their literals and re-parsed on
// load so the matching rules live only in the domain.
type ZoneDTO struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey"`
	TenantID      uuid.UUID      `gorm:"type:uuid;not null;index:idx_zones_tenant;uniqueIndex:idx_zones_tenant_code"`
	Code          string         `gorm:"type:varchar(64);not null;uniqueIndex:idx_zones_tenant_code"`
	Name          string         `gorm:"type:varchar(255);not null"`
	Countries     pq.StringArray `gorm:"type:text[];not null"`
	AllowPatterns pq.StringArray `gorm:"type:text[]"`
	DenyPatterns  pq.StringArray `gorm:"type:text[]"`
	Priority      int            `gorm:"type:int;not null"`
	Active        bool           `gorm:"type:boolean;not null"`
	Version       int64          `gorm:"type:bigint;not null"`
}

// TableName overrides GORM's default naming to use "zones".
func (ZoneDTO) TableName() string {
	return "zones"
}

func fromDomain(aggregate *zone.Zone) ZoneDTO {
	return ZoneDTO{
		ID:            aggregate.ID().Bytes(),
		TenantID:      aggregate.TenantID().Bytes(),
		Code:          aggregate.Code(),
		Name:          aggregate.Name(),
		Countries:     aggregate.Countries(),
		AllowPatterns: aggregate.AllowPatterns(),
		DenyPatterns:  aggregate.DenyPatterns(),
		Priority:      aggregate.Priority(),
		Active:        aggregate.IsActive(),
		Version:       aggregate.Version(),
	}
}

func toDomain(dto ZoneDTO) (*zone.Zone, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	tenantID, err := kernel.TenantIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}

	return zone.RestoreZone(id, tenantID, dto.Code, dto.Name,
		dto.Countries, dto.AllowPatterns, dto.DenyPatterns,
		dto.Priority, dto.Active, dto.Version)
}
