package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/carrier"
	"fulfillment/internal/pkg/errs"
)

// CreateCarrierCommandHandler handles the business logic for carrier creation.
type CreateCarrierCommandHandler struct {
	uowFactory CarrierUoWFactory
}

// NewCreateCarrierCommandHandler creates a handler for carrier creation operations.
func NewCreateCarrierCommandHandler(uowFactory CarrierUoWFactory) CreateCarrierCommandHandler {
	return CreateCarrierCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the carrier creation command.
func (h CreateCarrierCommandHandler) Handle(ctx context.Context, cmd CreateCarrierCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	aggregate, err := carrier.NewCarrier(
		cmd.CarrierID(), cmd.TenantID(), cmd.Code(), cmd.Name(),
		cmd.Capabilities(), cmd.Limits(), cmd.DeliveryDays(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	carrierRepo := uow.CarrierRepository()

	_, err = carrierRepo.GetByCode(ctx, cmd.TenantID(), cmd.Code())
	if err == nil {
		return errs.NewObjectAlreadyExistsError("carrier code", cmd.Code())
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	if err = carrierRepo.Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
