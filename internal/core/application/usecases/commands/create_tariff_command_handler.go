package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/tariff"
	"fulfillment/internal/pkg/errs"
)

// CreateTariffCommandHandler handles tariff creation. The referenced carrier
// must exist; a zone scope, when given, must reference an existing zone.
type CreateTariffCommandHandler struct {
	uowFactory TariffUoWFactory
}

// NewCreateTariffCommandHandler creates a handler for tariff creation operations.
func NewCreateTariffCommandHandler(uowFactory TariffUoWFactory) CreateTariffCommandHandler {
	return CreateTariffCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the tariff creation command.
func (h CreateTariffCommandHandler) Handle(ctx context.Context, cmd CreateTariffCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	aggregate, err := tariff.NewTariff(
		cmd.TariffID(), cmd.TenantID(), cmd.Code(), cmd.Name(),
		cmd.CarrierID(), cmd.ZoneID(), cmd.Method(), cmd.Currency(),
		cmd.BaseRate(), cmd.PerKgRate(), cmd.PerItemRate(),
		cmd.Tiers(), cmd.Brackets(), cmd.Surcharges(), cmd.Threshold(), cmd.Validity(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err = uow.CarrierRepository().Get(ctx, cmd.TenantID(), cmd.CarrierID()); err != nil {
		return err
	}
	if zoneID := cmd.ZoneID(); zoneID != nil {
		if _, err = uow.ZoneRepository().Get(ctx, cmd.TenantID(), *zoneID); err != nil {
			return err
		}
	}

	tariffRepo := uow.TariffRepository()

	_, err = tariffRepo.GetByCode(ctx, cmd.TenantID(), cmd.Code())
	if err == nil {
		return errs.NewObjectAlreadyExistsError("tariff code", cmd.Code())
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	if err = tariffRepo.Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
