package commands

import (
	"context"
)

// ReceiveReturnCommandHandler marks a return parcel as arrived at the
// warehouse, recording its condition.
type ReceiveReturnCommandHandler struct {
	uowFactory ReturnUoWFactory
}

// NewReceiveReturnCommandHandler creates a handler for return receipt.
func NewReceiveReturnCommandHandler(uowFactory ReturnUoWFactory) ReceiveReturnCommandHandler {
	return ReceiveReturnCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the receipt command.
func (h ReceiveReturnCommandHandler) Handle(ctx context.Context, cmd ReceiveReturnCommand) error {
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

	if err = aggregate.Receive(cmd.Condition(), cmd.Notes(), cmd.ReceivedAt()); err != nil {
		return err
	}

	if err = returnRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
