package commands

import (
	"context"

	"fulfillment/internal/pkg/errs"
)

// UpdateTariffCommandHandler handles tariff updates and restores.
type UpdateTariffCommandHandler struct {
	uowFactory TariffUoWFactory
}

// NewUpdateTariffCommandHandler creates a handler for tariff update operations.
func NewUpdateTariffCommandHandler(uowFactory TariffUoWFactory) UpdateTariffCommandHandler {
	return UpdateTariffCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the tariff update command.
func (h UpdateTariffCommandHandler) Handle(ctx context.Context, cmd UpdateTariffCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	tariffRepo := uow.TariffRepository()

	aggregate, err := tariffRepo.Get(ctx, cmd.TenantID(), cmd.TariffID())
	if err != nil {
		return err
	}
	if aggregate.Version() != cmd.Version() {
		return errs.NewVersionConflictError("tariff", cmd.Version())
	}

	if err = aggregate.Update(
		cmd.Name(), cmd.BaseRate(), cmd.PerKgRate(), cmd.PerItemRate(),
		cmd.Tiers(), cmd.Brackets(), cmd.Surcharges(), cmd.Threshold(),
		cmd.Validity(), cmd.Active(),
	); err != nil {
		return err
	}

	if err = tariffRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
