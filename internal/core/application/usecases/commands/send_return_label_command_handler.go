package commands

import (
	"context"
)

// SendReturnLabelCommandHandler records the return label on an approved
// return. Label issuance against the carrier happens upstream; this handler
// only persists the outcome.
type SendReturnLabelCommandHandler struct {
	uowFactory ReturnUoWFactory
}

// NewSendReturnLabelCommandHandler creates a handler for return label delivery.
func NewSendReturnLabelCommandHandler(uowFactory ReturnUoWFactory) SendReturnLabelCommandHandler {
	return SendReturnLabelCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the label delivery command.
func (h SendReturnLabelCommandHandler) Handle(ctx context.Context, cmd SendReturnLabelCommand) error {
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

	if err = aggregate.SendLabel(cmd.TrackingNumber(), cmd.LabelURL()); err != nil {
		return err
	}

	if err = returnRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
