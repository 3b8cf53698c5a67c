package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// GenerateLabelCommandHandler issues a shipping label through the carrier
// gateway and moves the shipment to LabelCreated.
//
// The gateway call happens inside the transaction scope but is not part of
// it: if persisting the result fails the transaction rolls back, and the
// label machinery tolerates a retry because the aggregate's idempotency guard
// rejects double issuance once a label is stored. The guard runs before the
// gateway call as well, so a repeat command or one against a cancelled
// shipment never reaches the carrier.
type GenerateLabelCommandHandler struct {
	uowFactory ShipmentCarrierUoWFactory
	gateway    ports.CarrierGateway
}

// NewGenerateLabelCommandHandler creates a handler for label issuance.
func NewGenerateLabelCommandHandler(uowFactory ShipmentCarrierUoWFactory, gateway ports.CarrierGateway) GenerateLabelCommandHandler {
	return GenerateLabelCommandHandler{
		uowFactory: uowFactory,
		gateway:    gateway,
	}
}

// Handle processes the label issuance command.
func (h GenerateLabelCommandHandler) Handle(ctx context.Context, cmd GenerateLabelCommand) error {
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
	if err = aggregate.CanGenerateLabel(); err != nil {
		return err
	}

	c, err := uow.CarrierRepository().Get(ctx, cmd.TenantID(), aggregate.CarrierID())
	if err != nil {
		return err
	}

	result, err := h.gateway.IssueLabel(ctx, c, aggregate)
	if err != nil {
		return err
	}

	if err = aggregate.GenerateLabel(result.MasterTracking, result.PackageTracking, result.LabelURL); err != nil {
		return err
	}

	if err = shipmentRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
