package commands

import (
	"context"
	"log/slog"
	"time"
)

// ExpireTariffsCommandHandler deactivates tariffs whose validity window has
// closed. The whole sweep runs in one transaction; a version conflict on any
// tariff aborts the sweep, and the next run picks it up again.
type ExpireTariffsCommandHandler struct {
	uowFactory TariffSweepUoWFactory
}

// NewExpireTariffsCommandHandler creates a handler for the tariff expiry sweep.
func NewExpireTariffsCommandHandler(uowFactory TariffSweepUoWFactory) ExpireTariffsCommandHandler {
	return ExpireTariffsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the expire tariffs command.
func (h ExpireTariffsCommandHandler) Handle(ctx context.Context, cmd ExpireTariffsCommand) error {
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

	expired, err := tariffRepo.GetAllExpired(ctx, time.Now().UTC())
	if err != nil {
		return err
	}
	if len(expired) == 0 {
		return nil
	}

	for _, aggregate := range expired {
		aggregate.Deactivate()
		if err = tariffRepo.Update(ctx, aggregate); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	slog.Info("expired tariffs deactivated", "count", len(expired))
	return nil
}
