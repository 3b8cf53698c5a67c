package commands

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/ports"
)

// ProcessRefundCommandHandler pays the customer back for an accepted
// return. Double refunds are rejected by the aggregate.
type ProcessRefundCommandHandler struct {
	uowFactory ReturnUoWFactory
	publisher  ports.EventPublisher
}

// NewProcessRefundCommandHandler creates a handler for refund processing.
func NewProcessRefundCommandHandler(uowFactory ReturnUoWFactory, publisher ports.EventPublisher) ProcessRefundCommandHandler {
	return ProcessRefundCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the refund command.
func (h ProcessRefundCommandHandler) Handle(ctx context.Context, cmd ProcessRefundCommand) error {
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

	if err = aggregate.ProcessRefund(cmd.Amount(), cmd.Method(), cmd.RestockingFee()); err != nil {
		return err
	}

	if err = returnRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if h.publisher != nil {
		if err = h.publisher.PublishReturnStatusChanged(ctx, aggregate); err != nil {
			slog.Warn("publish return status change failed",
				"return", aggregate.Number(), "status", aggregate.Status().String(), "error", err)
		}
	}

	return nil
}
