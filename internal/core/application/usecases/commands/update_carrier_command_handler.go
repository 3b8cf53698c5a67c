package commands

import (
	"context"

	"fulfillment/internal/pkg/errs"
)

// UpdateCarrierCommandHandler handles carrier updates and restores.
type UpdateCarrierCommandHandler struct {
	uowFactory CarrierUoWFactory
}

// NewUpdateCarrierCommandHandler creates a handler for carrier update operations.
func NewUpdateCarrierCommandHandler(uowFactory CarrierUoWFactory) UpdateCarrierCommandHandler {
	return UpdateCarrierCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the carrier update command.
func (h UpdateCarrierCommandHandler) Handle(ctx context.Context, cmd UpdateCarrierCommand) error {
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

	carrierRepo := uow.CarrierRepository()

	aggregate, err := carrierRepo.Get(ctx, cmd.TenantID(), cmd.CarrierID())
	if err != nil {
		return err
	}
	if aggregate.Version() != cmd.Version() {
		return errs.NewVersionConflictError("carrier", cmd.Version())
	}

	if err = aggregate.Update(
		cmd.Name(), cmd.Capabilities(), cmd.Limits(), cmd.DeliveryDays(), cmd.Active(),
	); err != nil {
		return err
	}

	if err = carrierRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
