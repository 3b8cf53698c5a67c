package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GetZoneQueryHandler reads one zone directly from the database.
type GetZoneQueryHandler struct {
	db *gorm.DB
}

// NewGetZoneQueryHandler creates a handler for zone retrieval queries.
func NewGetZoneQueryHandler(db *gorm.DB) GetZoneQueryHandler {
	return GetZoneQueryHandler{db: db}
}

type zoneRow struct {
	ID            uuid.UUID
	Code          string
	Name          string
	Countries     pq.StringArray `gorm:"type:text[]"`
	AllowPatterns pq.StringArray `gorm:"type:text[]"`
	DenyPatterns  pq.StringArray `gorm:"type:text[]"`
	Priority      int
	Active        bool
	Version       int64
}

// Handle executes the lookup.
func (h GetZoneQueryHandler) Handle(
	ctx context.Context,
	query GetZoneQuery,
) (GetZoneQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetZoneQueryResponse{}, err
	}

	var row zoneRow
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			id, code, name, countries, allow_patterns, deny_patterns,
			priority, active, version
		FROM zones
		WHERE tenant_id = ? AND id = ?`,
		query.TenantID().Bytes(), query.ZoneID().Bytes()).Scan(&row).Error
	if err != nil {
		return GetZoneQueryResponse{}, err
	}
	if row.ID == uuid.Nil {
		return GetZoneQueryResponse{}, errs.NewObjectNotFoundError("zone", query.ZoneID().String())
	}

	return zoneRowToResponse(row)
}

func zoneRowToResponse(row zoneRow) (GetZoneQueryResponse, error) {
	id, err := kernel.UUIDFromBytes(row.ID[:])
	if err != nil {
		return GetZoneQueryResponse{}, err
	}

	return GetZoneQueryResponse{
		ID:            id,
		Code:          row.Code,
		Name:          row.Name,
		Countries:     row.Countries,
		AllowPatterns: row.AllowPatterns,
		DenyPatterns:  row.DenyPatterns,
		Priority:      row.Priority,
		Active:        row.Active,
		Version:       row.Version,
	}, nil
}
