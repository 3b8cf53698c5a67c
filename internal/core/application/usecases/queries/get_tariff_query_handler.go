package queries

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/tariff"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetTariffQueryHandler reads one tariff directly from the database. Tiers
// and brackets are fetched in their own queries, like the shipment children.
type GetTariffQueryHandler struct {
	db *gorm.DB
}

// NewGetTariffQueryHandler creates a handler for tariff retrieval queries.
func NewGetTariffQueryHandler(db *gorm.DB) GetTariffQueryHandler {
	return GetTariffQueryHandler{db: db}
}

type tariffRow struct {
	ID                    uuid.UUID
	Code                  string
	Name                  string
	CarrierID             uuid.UUID
	ZoneID                *uuid.UUID
	Method                int
	Currency              string
	BaseRate              decimal.Decimal
	PerKgRate             decimal.Decimal
	PerItemRate           decimal.Decimal
	FuelPercent           decimal.Decimal
	ResidentialAmount     decimal.Decimal
	OversizeAmount        decimal.Decimal
	OversizeOverLongestCm float64
	FreeOverAmount        *decimal.Decimal
	ValidFrom             *time.Time
	ValidUntil            *time.Time
	Active                bool
	Version               int64
}

// Handle executes the lookup.
func (h GetTariffQueryHandler) Handle(
	ctx context.Context,
	query GetTariffQuery,
) (GetTariffQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetTariffQueryResponse{}, err
	}

	var row tariffRow
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			id, code, name, carrier_id, zone_id, method, currency,
			base_rate, per_kg_rate, per_item_rate,
			fuel_percent, residential_amount, oversize_amount,
			oversize_over_longest_cm, free_over_amount,
			valid_from, valid_until, active, version
		FROM tariffs
		WHERE tenant_id = ? AND id = ?`,
		query.TenantID().Bytes(), query.TariffID().Bytes()).Scan(&row).Error
	if err != nil {
		return GetTariffQueryResponse{}, err
	}
	if row.ID == uuid.Nil {
		return GetTariffQueryResponse{}, errs.NewObjectNotFoundError("tariff", query.TariffID().String())
	}

	response, err := tariffRowToResponse(row)
	if err != nil {
		return GetTariffQueryResponse{}, err
	}

	response.Tiers, err = h.fetchTiers(ctx, row.ID)
	if err != nil {
		return GetTariffQueryResponse{}, err
	}

	response.Brackets, err = h.fetchBrackets(ctx, row.ID)
	if err != nil {
		return GetTariffQueryResponse{}, err
	}

	return response, nil
}

func (h GetTariffQueryHandler) fetchTiers(ctx context.Context, tariffID uuid.UUID) ([]TariffTierResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT max_weight_kg, rate
		FROM tariff_weight_tiers
		WHERE tariff_id = ?
		ORDER BY position
	`, tariffID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tiers := make([]TariffTierResponse, 0)
	for rows.Next() {
		var tier TariffTierResponse
		if err = rows.Scan(&tier.MaxWeightKg, &tier.Rate); err != nil {
			return nil, err
		}
		tiers = append(tiers, tier)
	}

	return tiers, rows.Err()
}

func (h GetTariffQueryHandler) fetchBrackets(ctx context.Context, tariffID uuid.UUID) ([]TariffBracketResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT min_amount, max_amount, rate
		FROM tariff_price_brackets
		WHERE tariff_id = ?
		ORDER BY position
	`, tariffID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	brackets := make([]TariffBracketResponse, 0)
	for rows.Next() {
		var bracket TariffBracketResponse
		if err = rows.Scan(&bracket.Min, &bracket.Max, &bracket.Rate); err != nil {
			return nil, err
		}
		brackets = append(brackets, bracket)
	}

	return brackets, rows.Err()
}

func tariffRowToResponse(row tariffRow) (GetTariffQueryResponse, error) {
	id, err := kernel.UUIDFromBytes(row.ID[:])
	if err != nil {
		return GetTariffQueryResponse{}, err
	}
	carrierID, err := kernel.UUIDFromBytes(row.CarrierID[:])
	if err != nil {
		return GetTariffQueryResponse{}, err
	}

	var zoneID *kernel.UUID
	if row.ZoneID != nil {
		zID, zErr := kernel.UUIDFromBytes((*row.ZoneID)[:])
		if zErr != nil {
			return GetTariffQueryResponse{}, zErr
		}
		zoneID = &zID
	}

	return GetTariffQueryResponse{
		ID:                    id,
		Code:                  row.Code,
		Name:                  row.Name,
		CarrierID:             carrierID,
		ZoneID:                zoneID,
		Method:                tariff.Method(row.Method),
		Currency:              row.Currency,
		BaseRate:              row.BaseRate,
		PerKgRate:             row.PerKgRate,
		PerItemRate:           row.PerItemRate,
		FuelPercent:           row.FuelPercent,
		ResidentialAmount:     row.ResidentialAmount,
		OversizeAmount:        row.OversizeAmount,
		OversizeOverLongestCm: row.OversizeOverLongestCm,
		FreeOver:              row.FreeOverAmount,
		ValidFrom:             row.ValidFrom,
		ValidUntil:            row.ValidUntil,
		Active:                row.Active,
		Version:               row.Version,
	}, nil
}
