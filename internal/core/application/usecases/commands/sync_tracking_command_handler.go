package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/carrier"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/rma"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/ports"
)

// SyncTrackingCommandHandler pulls carrier tracking feeds and applies what
// changed: scans land on moving shipments as tracking events, and a label-sent
// return whose parcel got its first scan advances to InTransit.
//
// One misbehaving feed must not stall the sweep, so per-aggregate failures are
// logged and skipped. Everything that did apply commits in one transaction and
// is published afterwards, best effort.
type SyncTrackingCommandHandler struct {
	uowFactory TrackingSweepUoWFactory
	gateway    ports.CarrierGateway
	publisher  ports.EventPublisher
}

// NewSyncTrackingCommandHandler creates a handler for the tracking sweep.
// The publisher may be nil when no broker is configured.
func NewSyncTrackingCommandHandler(
	uowFactory TrackingSweepUoWFactory,
	gateway ports.CarrierGateway,
	publisher ports.EventPublisher,
) SyncTrackingCommandHandler {
	return SyncTrackingCommandHandler{
		uowFactory: uowFactory,
		gateway:    gateway,
		publisher:  publisher,
	}
}

// Handle processes the sync tracking command.
func (h SyncTrackingCommandHandler) Handle(ctx context.Context, cmd SyncTrackingCommand) error {
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

	carriers := newCarrierCache(uow.CarrierRepository())

	changedShipments, err := h.sweepShipments(ctx, uow, carriers)
	if err != nil {
		return err
	}

	changedReturns, err := h.sweepReturns(ctx, uow, carriers)
	if err != nil {
		return err
	}

	if len(changedShipments) == 0 && len(changedReturns) == 0 {
		return nil
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if h.publisher != nil {
		for _, aggregate := range changedShipments {
			if err = h.publisher.PublishShipmentStatusChanged(ctx, aggregate); err != nil {
				slog.Warn("publish shipment status change failed",
					"shipment", aggregate.Number(), "status", aggregate.Status().String(), "error", err)
			}
		}
		for _, aggregate := range changedReturns {
			if err = h.publisher.PublishReturnStatusChanged(ctx, aggregate); err != nil {
				slog.Warn("publish return status change failed",
					"return", aggregate.Number(), "status", aggregate.Status().String(), "error", err)
			}
		}
	}

	return nil
}

func (h SyncTrackingCommandHandler) sweepShipments(
	ctx context.Context,
	uow TrackingSweepUoW,
	carriers *carrierCache,
) ([]*shipment.Shipment, error) {
	shipmentRepo := uow.ShipmentRepository()

	moving, err := shipmentRepo.GetAllInStatus(ctx,
		shipment.LabelCreated, shipment.PickedUp, shipment.InTransit,
		shipment.OutForDelivery, shipment.FailedAttempt, shipment.Exception)
	if err != nil {
		return nil, err
	}

	var changed []*shipment.Shipment
	for _, aggregate := range moving {
		shipmentCarrier, err := carriers.get(ctx, aggregate.TenantID(), aggregate.CarrierID())
		if err != nil {
			slog.Warn("tracking sweep: carrier lookup failed",
				"shipment", aggregate.Number(), "error", err)
			continue
		}

		updates, err := h.gateway.FetchTrackingUpdates(ctx, shipmentCarrier, aggregate.MasterTracking())
		if err != nil {
			slog.Warn("tracking sweep: feed fetch failed",
				"shipment", aggregate.Number(), "carrier", shipmentCarrier.Code(), "error", err)
			continue
		}

		if !applyUpdates(aggregate, updates) {
			continue
		}
		if err = shipmentRepo.Update(ctx, aggregate); err != nil {
			return nil, err
		}
		changed = append(changed, aggregate)
	}

	return changed, nil
}

// applyUpdates lands the scans the shipment has not seen yet. Feeds replay
// from the beginning, so only scans after the newest known event count.
func applyUpdates(aggregate *shipment.Shipment, updates []ports.TrackingUpdate) bool {
	var lastSeen time.Time
	if events := aggregate.Events(); len(events) > 0 {
		lastSeen = events[len(events)-1].OccurredAt()
	}

	applied := false
	for _, u := range updates {
		if !u.OccurredAt.After(lastSeen) {
			continue
		}
		if err := aggregate.PostTrackingEvent(u.Status, u.Description, u.Location, u.OccurredAt); err != nil {
			slog.Warn("tracking sweep: scan rejected",
				"shipment", aggregate.Number(), "scanStatus", u.Status.String(), "error", err)
			break
		}
		applied = true
	}
	return applied
}

func (h SyncTrackingCommandHandler) sweepReturns(
	ctx context.Context,
	uow TrackingSweepUoW,
	carriers *carrierCache,
) ([]*rma.Return, error) {
	returnRepo := uow.ReturnRepository()
	shipmentRepo := uow.ShipmentRepository()

	waiting, err := returnRepo.GetAllInStatus(ctx, rma.LabelSent)
	if err != nil {
		return nil, err
	}

	var changed []*rma.Return
	for _, aggregate := range waiting {
		// The return parcel travels on the original shipment's carrier.
		originShipment, err := shipmentRepo.Get(ctx, aggregate.TenantID(), aggregate.ShipmentID())
		if err != nil {
			slog.Warn("tracking sweep: shipment lookup failed",
				"return", aggregate.Number(), "error", err)
			continue
		}
		returnCarrier, err := carriers.get(ctx, aggregate.TenantID(), originShipment.CarrierID())
		if err != nil {
			slog.Warn("tracking sweep: carrier lookup failed",
				"return", aggregate.Number(), "error", err)
			continue
		}

		updates, err := h.gateway.FetchTrackingUpdates(ctx, returnCarrier, aggregate.TrackingNumber())
		if err != nil || len(updates) == 0 {
			continue
		}

		if err = aggregate.MarkInTransit(); err != nil {
			slog.Warn("tracking sweep: transit mark rejected",
				"return", aggregate.Number(), "error", err)
			continue
		}
		if err = returnRepo.Update(ctx, aggregate); err != nil {
			return nil, err
		}
		changed = append(changed, aggregate)
	}

	return changed, nil
}

// carrierCache memoizes carrier lookups within one sweep; a fleet of moving
// shipments usually shares a handful of carriers.
type carrierCache struct {
	repo     ports.CarrierRepository
	loaded   map[carrierCacheKey]*carrier.Carrier
	failures map[carrierCacheKey]error
}

type carrierCacheKey struct {
	tenantID  kernel.TenantID
	carrierID kernel.UUID
}

func newCarrierCache(repo ports.CarrierRepository) *carrierCache {
	return &carrierCache{
		repo:     repo,
		loaded:   make(map[carrierCacheKey]*carrier.Carrier),
		failures: make(map[carrierCacheKey]error),
	}
}

func (c *carrierCache) get(ctx context.Context, tenantID kernel.TenantID, carrierID kernel.UUID) (*carrier.Carrier, error) {
	key := carrierCacheKey{tenantID: tenantID, carrierID: carrierID}
	if cached, ok := c.loaded[key]; ok {
		return cached, nil
	}
	if failure, ok := c.failures[key]; ok {
		return nil, failure
	}

	loaded, err := c.repo.Get(ctx, tenantID, carrierID)
	if err != nil {
		c.failures[key] = err
		return nil, err
	}
	c.loaded[key] = loaded
	return loaded, nil
}
