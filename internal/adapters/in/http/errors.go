package http

import (
	"errors"
	"net/http"

	"fulfillment/internal/core/domain/model/rma"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// respondError maps application errors onto HTTP statuses: 400 for rejected
// input and unserviceable quotes, 404 for missing objects, 409 for conflicts
// of any flavor (duplicates, referential guards, stale writes, lifecycle
// violations), 502 for carrier API failures.
func respondError(c echo.Context, err error) error {
	return c.JSON(statusFor(err), ErrorResponse{
		Code:    statusFor(err),
		Message: err.Error(),
	})
}

func statusFor(err error) int {
	var integrationErr *ports.CarrierIntegrationError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound

	case errors.Is(err, errs.ErrObjectAlreadyExists),
		errors.Is(err, errs.ErrObjectInUse),
		errors.Is(err, errs.ErrVersionConflict),
		errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, shipment.ErrShipmentCannotBeCancelled),
		errors.Is(err, shipment.ErrLabelAlreadyGenerated),
		errors.Is(err, rma.ErrShipmentNotDelivered),
		errors.Is(err, rma.ErrReturnAlreadyRefunded):
		return http.StatusConflict

	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, services.ErrAddressNotServiceable),
		errors.Is(err, services.ErrNoRateAvailable):
		return http.StatusBadRequest

	case errors.As(err, &integrationErr):
		return http.StatusBadGateway

	default:
		return http.StatusInternalServerError
	}
}
