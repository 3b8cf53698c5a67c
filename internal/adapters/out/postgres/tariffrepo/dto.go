// Package tariffrepo persists tariff aggregates, mapping between the domain
// model and the tariffs, tariff_weight_tiers and tariff_price_brackets tables.
package tariffrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/tariff"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TariffDTO is the database row for a tariff aggregate. All monetary columns
// share the tariff currency, so only amounts are stored per column.
type TariffDTO struct {
	ID                    uuid.UUID         `gorm:"type:uuid;primaryKey"`
	TenantID              uuid.UUID         `gorm:"type:uuid;not null;index:idx_tariffs_tenant;uniqueIndex:idx_tariffs_tenant_code"`
	Code                  string            `gorm:"type:varchar(64);not null;uniqueIndex:idx_tariffs_tenant_code"`
	Name                  string            `gorm:"type:varchar(255);not null"`
	CarrierID             uuid.UUID         `gorm:"type:uuid;not null;index"`
	ZoneID                *uuid.UUID        `gorm:"type:uuid;index"`
	Method                int               `gorm:"type:int;not null"`
	Currency              string            `gorm:"type:char(3);not null"`
	BaseRate              decimal.Decimal   `gorm:"type:numeric(12,4);not null"`
	PerKgRate             decimal.Decimal   `gorm:"type:numeric(12,4);not null"`
	PerItemRate           decimal.Decimal   `gorm:"type:numeric(12,4);not null"`
	FuelPercent           decimal.Decimal   `gorm:"type:numeric(6,3);not null"`
	ResidentialAmount     decimal.Decimal   `gorm:"type:numeric(12,4);not null"`
	OversizeAmount        decimal.Decimal   `gorm:"type:numeric(12,4);not null"`
	OversizeOverLongestCm float64           `gorm:"type:numeric(10,2);not null"`
	FreeOverAmount        *decimal.Decimal  `gorm:"type:numeric(12,4)"`
	ValidFrom             *time.Time        `gorm:"type:timestamptz"`
	ValidUntil            *time.Time        `gorm:"type:timestamptz"`
	Active                bool              `gorm:"type:boolean;not null"`
	Version               int64             `gorm:"type:bigint;not null"`
	WeightTiers           []WeightTierDTO   `gorm:"foreignKey:TariffID;constraint:OnDelete:CASCADE"`
	PriceBrackets         []PriceBracketDTO `gorm:"foreignKey:TariffID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default naming to use "tariffs".
func (TariffDTO) TableName() string {
	return "tariffs"
}

// WeightTierDTO is one row of a per-weight rate table, kept in position order.
type WeightTierDTO struct {
	TariffID    uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Position    int             `gorm:"type:int;primaryKey"`
	MaxWeightKg float64         `gorm:"type:numeric(10,3);not null"`
	Rate        decimal.Decimal `gorm:"type:numeric(12,4);not null"`
}

// TableName overrides GORM's default naming to use "tariff_weight_tiers".
func (WeightTierDTO) TableName() string {
	return "tariff_weight_tiers"
}

// PriceBracketDTO is one row of a per-price-bracket table. A null MaxAmount
// leaves the bracket unbounded above.
type PriceBracketDTO struct {
	TariffID  uuid.UUID        `gorm:"type:uuid;primaryKey"`
	Position  int              `gorm:"type:int;primaryKey"`
	MinAmount decimal.Decimal  `gorm:"type:numeric(12,4);not null"`
	MaxAmount *decimal.Decimal `gorm:"type:numeric(12,4)"`
	Rate      decimal.Decimal  `gorm:"type:numeric(12,4);not null"`
}

// TableName overrides GORM's default naming to use "tariff_price_brackets".
func (PriceBracketDTO) TableName() string {
	return "tariff_price_brackets"
}

func fromDomain(aggregate *tariff.Tariff) TariffDTO {
	id := aggregate.ID().Bytes()
	surcharges := aggregate.Surcharges()

	var zoneID *uuid.UUID
	if aggregate.ZoneID() != nil {
		raw := aggregate.ZoneID().Bytes()
		zoneID = &raw
	}

	var freeOver *decimal.Decimal
	if aggregate.FreeShippingThreshold() != nil {
		amount := aggregate.FreeShippingThreshold().Amount()
		freeOver = &amount
	}

	tiers := make([]WeightTierDTO, 0, len(aggregate.Tiers()))
	for i, tier := range aggregate.Tiers() {
		tiers = append(tiers, WeightTierDTO{
			TariffID:    id,
			Position:    i,
			MaxWeightKg: tier.MaxWeightKg,
			Rate:        tier.Rate.Amount(),
		})
	}

	brackets := make([]PriceBracketDTO, 0, len(aggregate.Brackets()))
	for i, bracket := range aggregate.Brackets() {
		var maxAmount *decimal.Decimal
		if bracket.Max != nil {
			amount := bracket.Max.Amount()
			maxAmount = &amount
		}
		brackets = append(brackets, PriceBracketDTO{
			TariffID:  id,
			Position:  i,
			MinAmount: bracket.Min.Amount(),
			MaxAmount: maxAmount,
			Rate:      bracket.Rate.Amount(),
		})
	}

	validity := aggregate.Validity()

	return TariffDTO{
		ID:                    id,
		TenantID:              aggregate.TenantID().Bytes(),
		Code:                  aggregate.Code(),
		Name:                  aggregate.Name(),
		CarrierID:             aggregate.CarrierID().Bytes(),
		ZoneID:                zoneID,
		Method:                int(aggregate.Method()),
		Currency:              aggregate.Currency().Code(),
		BaseRate:              aggregate.BaseRate().Amount(),
		PerKgRate:             aggregate.PerKgRate().Amount(),
		PerItemRate:           aggregate.PerItemRate().Amount(),
		FuelPercent:           surcharges.FuelPercent,
		ResidentialAmount:     surcharges.ResidentialAmount.Amount(),
		OversizeAmount:        surcharges.OversizeAmount.Amount(),
		OversizeOverLongestCm: surcharges.OversizeOverLongestCm,
		FreeOverAmount:        freeOver,
		ValidFrom:             validity.From,
		ValidUntil:            validity.Until,
		Active:                aggregate.IsActive(),
		Version:               aggregate.Version(),
		WeightTiers:           tiers,
		PriceBrackets:         brackets,
	}
}

func toDomain(dto TariffDTO) (*tariff.Tariff, error) {
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

	var zoneID *kernel.UUID
	if dto.ZoneID != nil {
		zID, zErr := kernel.UUIDFromBytes((*dto.ZoneID)[:])
		if zErr != nil {
			return nil, zErr
		}
		zoneID = &zID
	}

	currency, err := kernel.NewCurrency(dto.Currency)
	if err != nil {
		return nil, err
	}

	money := func(amount decimal.Decimal) (kernel.Money, error) {
		return kernel.NewMoney(amount, currency)
	}

	baseRate, err := money(dto.BaseRate)
	if err != nil {
		return nil, err
	}
	perKgRate, err := money(dto.PerKgRate)
	if err != nil {
		return nil, err
	}
	perItemRate, err := money(dto.PerItemRate)
	if err != nil {
		return nil, err
	}
	residential, err := money(dto.ResidentialAmount)
	if err != nil {
		return nil, err
	}
	oversize, err := money(dto.OversizeAmount)
	if err != nil {
		return nil, err
	}

	var freeOver *kernel.Money
	if dto.FreeOverAmount != nil {
		m, mErr := money(*dto.FreeOverAmount)
		if mErr != nil {
			return nil, mErr
		}
		freeOver = &m
	}

	tiers := make([]tariff.WeightTier, 0, len(dto.WeightTiers))
	for _, tierDTO := range dto.WeightTiers {
		rate, tErr := money(tierDTO.Rate)
		if tErr != nil {
			return nil, tErr
		}
		tiers = append(tiers, tariff.WeightTier{
			MaxWeightKg: tierDTO.MaxWeightKg,
			Rate:        rate,
		})
	}

	brackets := make([]tariff.PriceBracket, 0, len(dto.PriceBrackets))
	for _, bracketDTO := range dto.PriceBrackets {
		minAmount, bErr := money(bracketDTO.MinAmount)
		if bErr != nil {
			return nil, bErr
		}
		rate, bErr := money(bracketDTO.Rate)
		if bErr != nil {
			return nil, bErr
		}
		var maxAmount *kernel.Money
		if bracketDTO.MaxAmount != nil {
			m, mErr := money(*bracketDTO.MaxAmount)
			if mErr != nil {
				return nil, mErr
			}
			maxAmount = &m
		}
		brackets = append(brackets, tariff.PriceBracket{
			Min:  minAmount,
			Max:  maxAmount,
			Rate: rate,
		})
	}

	return tariff.RestoreTariff(id, tenantID, dto.Code, dto.Name, carrierID, zoneID,
		tariff.Method(dto.Method), currency, baseRate, perKgRate, perItemRate,
		tiers, brackets,
		tariff.Surcharges{
			FuelPercent:           dto.FuelPercent,
			ResidentialAmount:     residential,
			OversizeAmount:        oversize,
			OversizeOverLongestCm: dto.OversizeOverLongestCm,
		},
		freeOver,
		tariff.ValidityWindow{From: dto.ValidFrom, Until: dto.ValidUntil},
		dto.Active, dto.Version)
}
