package commands

import (
	"context"
)

// InspectReturnCommandHandler records the inspection verdict on a received
// return.
type InspectReturnCommandHandler struct {
	uowFactory ReturnUoWFactory
}

// NewInspectReturnCommandHandler creates a handler for return inspection.
func NewInspectReturnCommandHandler(uowFactory ReturnUoWFactory) InspectReturnCommandHandler {
	return InspectReturnCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the inspection command.
func (h InspectReturnCommandHandler) Handle(ctx context.Context, cmd InspectReturnCommand) error {
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

	returnRepo := uow.ReturnRepository()

	aggregate, err := returnRepo.Get(ctx, cmd.TenantID(), cmd.ReturnID())
	if err != nil {
		return err
	}

	if err = aggregate.Inspect(cmd.Outcome(), cmd.Notes(), cmd.InspectedAt()); err != nil {
		return err
	}

	if err = returnRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
