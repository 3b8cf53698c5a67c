package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/zone"
	"fulfillment/internal/pkg/errs"
)

// CreateZoneCommandHandler handles the business logic for zone creation.
// Rejects a second zone with the same code inside one tenant.
type CreateZoneCommandHandler struct {
	uowFactory ZoneUoWFactory
}

// NewCreateZoneCommandHandler creates a handler for zone creation operations.
func NewCreateZoneCommandHandler(uowFactory ZoneUoWFactory) CreateZoneCommandHandler {
	return CreateZoneCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the zone creation command.
func (h CreateZoneCommandHandler) Handle(ctx context.Context, cmd CreateZoneCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	aggregate, err := zone.NewZone(
		cmd.ZoneID(), cmd.TenantID(), cmd.Code(), cmd.Name(),
		cmd.Countries(), cmd.Allow(), cmd.Deny(), cmd.Priority(),
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

	zoneRepo := uow.ZoneRepository()

	_, err = zoneRepo.GetByCode(ctx, cmd.TenantID(), cmd.Code())
	if err == nil {
		return errs.NewObjectAlreadyExistsError("zone code", cmd.Code())
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	if err = zoneRepo.Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
