package commands

import (
	"context"

	"fulfillment/internal/pkg/errs"
)

// RemoveCarrierCommandHandler handles carrier soft-deletion. A carrier with
// active tariffs or any shipments on record stays; deactivation would strand
// them.
type RemoveCarrierCommandHandler struct {
	uowFactory CarrierGuardUoWFactory
}

// NewRemoveCarrierCommandHandler creates a handler for carrier removal operations.
func NewRemoveCarrierCommandHandler(uowFactory CarrierGuardUoWFactory) RemoveCarrierCommandHandler {
	return RemoveCarrierCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the carrier removal command.
func (h RemoveCarrierCommandHandler) Handle(ctx context.Context, cmd RemoveCarrierCommand) error {
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

	tariffs, err := uow.TariffRepository().CountByCarrier(ctx, cmd.TenantID(), cmd.CarrierID())
	if err != nil {
		return err
	}
	if tariffs > 0 {
		return errs.NewObjectInUseError("carrier", cmd.CarrierID(), "tariffs")
	}

	shipments, err := uow.ShipmentRepository().CountByCarrier(ctx, cmd.TenantID(), cmd.CarrierID())
	if err != nil {
		return err
	}
	if shipments > 0 {
		return errs.NewObjectInUseError("carrier", cmd.CarrierID(), "shipments")
	}

	aggregate.Deactivate()

	if err = carrierRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
