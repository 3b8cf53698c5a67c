package queries

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/tariff"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetAllTariffsQueryHandler lists tariff summaries with their carrier and
// zone context resolved in SQL.
type GetAllTariffsQueryHandler struct {
	db *gorm.DB
}

// NewGetAllTariffsQueryHandler creates a handler for tariff listing queries.
func NewGetAllTariffsQueryHandler(db *gorm.DB) GetAllTariffsQueryHandler {
	return GetAllTariffsQueryHandler{db: db}
}

// Handle executes the listing ordered by carrier then tariff code.
func (h GetAllTariffsQueryHandler) Handle(
	ctx context.Context,
	query GetAllTariffsQuery,
) ([]GetAllTariffsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			t.id, t.code, t.name, c.code, c.name,
			COALESCE(z.code, ''), t.method, t.currency, t.base_rate,
			t.free_over_amount, t.valid_from, t.valid_until, t.active
		FROM tariffs t
		JOIN carriers c ON c.id = t.carrier_id
		LEFT JOIN zones z ON z.id = t.zone_id
		WHERE t.tenant_id = ?`
	args := []any{query.TenantID().Bytes()}

	if query.ActiveOnly() {
		sql += ` AND t.active`
	}
	sql += ` ORDER BY c.code, t.code`

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tariffs := make([]GetAllTariffsQueryResponse, 0)
	for rows.Next() {
		var line GetAllTariffsQueryResponse
		var id uuid.UUID
		var method int
		var freeOver *decimal.Decimal
		var validFrom, validUntil *time.Time

		if err = rows.Scan(&id, &line.Code, &line.Name, &line.CarrierCode,
			&line.CarrierName, &line.ZoneCode, &method, &line.Currency,
			&line.BaseRate, &freeOver, &validFrom, &validUntil, &line.Active); err != nil {
			return nil, err
		}

		line.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		line.Method = tariff.Method(method)
		line.FreeOver = freeOver
		line.ValidFrom = validFrom
		line.ValidUntil = validUntil
		tariffs = append(tariffs, line)
	}

	return tariffs, rows.Err()
}
