package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/rma"
	"fulfillment/internal/core/domain/model/shipment"
)

// EventPublisher defines the contract for notifying downstream systems of
// lifecycle changes. Publishing happens after the owning transaction commits;
// a publish failure is logged, never rolled back into the command.
type EventPublisher interface {
	// PublishShipmentStatusChanged announces the shipment's latest status and
	// tracking event.
	PublishShipmentStatusChanged(ctx context.Context, aggregate *shipment.Shipment) error

	// PublishReturnStatusChanged announces the return's latest status.
	PublishReturnStatusChanged(ctx context.Context, aggregate *rma.Return) error
}
