package commands

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/ports"
)

// PostTrackingEventCommandHandler applies a carrier scan event to a shipment
// through the guarded transition table and publishes the status change after
// the transaction commits. Publish failures are logged, never propagated: the
// persisted state is the truth, notification is best effort.
type PostTrackingEventCommandHandler struct {
	uowFactory ShipmentUoWFactory
	publisher  ports.EventPublisher
}

// NewPostTrackingEventCommandHandler creates a handler for tracking events.
// The publisher may be nil when no broker is configured.
func NewPostTrackingEventCommandHandler(uowFactory ShipmentUoWFactory, publisher ports.EventPublisher) PostTrackingEventCommandHandler {
	return PostTrackingEventCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the tracking event command.
func (h PostTrackingEventCommandHandler) Handle(ctx context.Context, cmd PostTrackingEventCommand) error {
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

	shipmentRepo := uow.ShipmentRepository()

	aggregate, err := shipmentRepo.Get(ctx, cmd.TenantID(), cmd.ShipmentID())
	if err != nil {
		return err
	}

	if err = aggregate.PostTrackingEvent(cmd.Status(), cmd.Description(), cmd.Location(), cmd.OccurredAt()); err != nil {
		return err
	}

	if err = shipmentRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if h.publisher != nil {
		if err = h.publisher.PublishShipmentStatusChanged(ctx, aggregate); err != nil {
			slog.Warn("publish shipment status change failed",
				"shipment", aggregate.Number(), "status", aggregate.Status().String(), "error", err)
		}
	}

	return nil
}
