package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/rma"
)

// CreateReturnCommandHandler opens a return for a delivered shipment. The
// delivery requirement is enforced by the aggregate against the live
// shipment, not against what the caller claims.
type CreateReturnCommandHandler struct {
	uowFactory ReturnShipmentUoWFactory
}

// NewCreateReturnCommandHandler creates a handler for return creation.
func NewCreateReturnCommandHandler(uowFactory ReturnShipmentUoWFactory) CreateReturnCommandHandler {
	return CreateReturnCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the return creation command.
func (h CreateReturnCommandHandler) Handle(ctx context.Context, cmd CreateReturnCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	items := make([]rma.Item, 0, len(cmd.Items()))
	for _, line := range cmd.Items() {
		item, err := rma.NewItem(line.SKU, line.Description, line.Quantity, line.Reason)
		if err != nil {
			return err
		}
		items = append(items, item)
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	delivered, err := uow.ShipmentRepository().Get(ctx, cmd.TenantID(), cmd.ShipmentID())
	if err != nil {
		return err
	}

	aggregate, err := rma.NewReturn(cmd.ReturnID(), cmd.TenantID(), delivered, items)
	if err != nil {
		return err
	}

	if err = uow.ReturnRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
