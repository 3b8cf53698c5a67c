package commands

import (
	"context"
)

// RemoveTariffCommandHandler handles tariff soft-deletion.
type RemoveTariffCommandHandler struct {
	uowFactory TariffUoWFactory
}

// NewRemoveTariffCommandHandler creates a handler for tariff removal operations.
func NewRemoveTariffCommandHandler(uowFactory TariffUoWFactory) RemoveTariffCommandHandler {
	return RemoveTariffCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the tariff removal command.
func (h RemoveTariffCommandHandler) Handle(ctx context.Context, cmd RemoveTariffCommand) error {
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

	aggregate.Deactivate()

	if err = tariffRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
