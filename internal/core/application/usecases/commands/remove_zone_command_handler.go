package commands

import (
	"context"

	"fulfillment/internal/pkg/errs"
)

// RemoveZoneCommandHandler handles zone soft-deletion. A zone still referenced
// by active tariffs cannot be removed; the tariffs must go first.
type RemoveZoneCommandHandler struct {
	uowFactory ZoneTariffUoWFactory
}

// NewRemoveZoneCommandHandler creates a handler for zone removal operations.
func NewRemoveZoneCommandHandler(uowFactory ZoneTariffUoWFactory) RemoveZoneCommandHandler {
	return RemoveZoneCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the zone removal command.
func (h RemoveZoneCommandHandler) Handle(ctx context.Context, cmd RemoveZoneCommand) error {
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

	zoneRepo := uow.ZoneRepository()
	tariffRepo := uow.TariffRepository()

	aggregate, err := zoneRepo.Get(ctx, cmd.TenantID(), cmd.ZoneID())
	if err != nil {
		return err
	}

	used, err := tariffRepo.CountByZone(ctx, cmd.TenantID(), cmd.ZoneID())
	if err != nil {
		return err
	}
	if used > 0 {
		return errs.NewObjectInUseError("zone", cmd.ZoneID(), "tariffs")
	}

	aggregate.Deactivate()

	if err = zoneRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
