package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetAllZonesQueryHandler lists zones in matching priority order.
type GetAllZonesQueryHandler struct {
	db *gorm.DB
}

// NewGetAllZonesQueryHandler creates a handler for zone listing queries.
func NewGetAllZonesQueryHandler(db *gorm.DB) GetAllZonesQueryHandler {
	return GetAllZonesQueryHandler{db: db}
}

// Handle executes the listing in matching order: priority ascending, then code.
func (h GetAllZonesQueryHandler) Handle(
	ctx context.Context,
	query GetAllZonesQuery,
) ([]GetZoneQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			id, code, name, countries, allow_patterns, deny_patterns,
			priority, active, version
		FROM zones
		WHERE tenant_id = ?`
	if query.ActiveOnly() {
		sql += ` AND active`
	}
	sql += ` ORDER BY priority, code`

	var rows []zoneRow
	if err := h.db.WithContext(ctx).Raw(sql, query.TenantID().Bytes()).Scan(&rows).Error; err != nil {
		return nil, err
	}

	zones := make([]GetZoneQueryResponse, 0, len(rows))
	for _, row := range rows {
		line, err := zoneRowToResponse(row)
		if err != nil {
			return nil, err
		}
		zones = append(zones, line)
	}

	return zones, nil
}
