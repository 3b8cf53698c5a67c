package commands

import (
	"context"

	"fulfillment/internal/pkg/errs"
)

// UpdateZoneCommandHandler handles zone updates and restores. The caller's
// last-read version must match the stored one, otherwise the write fails with
// a version conflict and nothing is persisted.
type UpdateZoneCommandHandler struct {
	uowFactory ZoneUoWFactory
}

// NewUpdateZoneCommandHandler creates a handler for zone update operations.
func NewUpdateZoneCommandHandler(uowFactory ZoneUoWFactory) UpdateZoneCommandHandler {
	return UpdateZoneCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the zone update command.
func (h UpdateZoneCommandHandler) Handle(ctx context.Context, cmd UpdateZoneCommand) error {
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

	aggregate, err := zoneRepo.Get(ctx, cmd.TenantID(), cmd.ZoneID())
	if err != nil {
		return err
	}
	if aggregate.Version() != cmd.Version() {
		return errs.NewVersionConflictError("zone", cmd.Version())
	}

	if err = aggregate.Update(
		cmd.Name(), cmd.Countries(), cmd.Allow(), cmd.Deny(), cmd.Priority(), cmd.Active(),
	); err != nil {
		return err
	}

	if err = zoneRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
