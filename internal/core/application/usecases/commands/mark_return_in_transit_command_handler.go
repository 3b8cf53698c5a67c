package commands

import (
	"context"
)

// MarkReturnInTransitCommandHandler advances a return to InTransit once the
// carrier scans the parcel.
type MarkReturnInTransitCommandHandler struct {
	uowFactory ReturnUoWFactory
}

// NewMarkReturnInTransitCommandHandler creates a handler for the transit mark.
func NewMarkReturnInTransitCommandHandler(uowFactory ReturnUoWFactory) MarkReturnInTransitCommandHandler {
	return MarkReturnInTransitCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the transit command.
func (h MarkReturnInTransitCommandHandler) Handle(ctx context.Context, cmd MarkReturnInTransitCommand) error {
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

	if err = aggregate.MarkInTransit(); err != nil {
		return err
	}

	if err = returnRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
