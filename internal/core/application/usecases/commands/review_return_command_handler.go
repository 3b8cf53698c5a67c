package commands

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/ports"
)

// ReviewReturnCommandHandler records the merchant's approve-or-reject
// decision on a requested return.
type ReviewReturnCommandHandler struct {
	uowFactory ReturnUoWFactory
	publisher  ports.EventPublisher
}

// NewReviewReturnCommandHandler creates a handler for return review.
func NewReviewReturnCommandHandler(uowFactory ReturnUoWFactory, publisher ports.EventPublisher) ReviewReturnCommandHandler {
	return ReviewReturnCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the review command.
func (h ReviewReturnCommandHandler) Handle(ctx context.Context, cmd ReviewReturnCommand) error {
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

	if cmd.Approve() {
		err = aggregate.Approve(cmd.Notes())
	} else {
		err = aggregate.Reject(cmd.Notes())
	}
	if err != nil {
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
