package commands

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/domain/services"
)

var (
	// ErrInsuranceNotSupported is returned when insurance is requested from a
	// carrier without the capability.
	ErrInsuranceNotSupported = errors.New("carrier does not support insurance")

	// ErrPickupPointNotSupported is returned when a pickup point is requested
	// from a carrier without the capability.
	ErrPickupPointNotSupported = errors.New("carrier does not support pickup points")
)

// insuranceRate is the premium charged on the declared value when insurance
// is requested: 1%.
var insuranceRate = decimal.NewFromFloat(0.01)

// CreateShipmentCommandHandler materializes a chosen quote into a Pending
// shipment. The price is recomputed server-side against the stored tariff, so
// a stale client quote can never fix the price.
type CreateShipmentCommandHandler struct {
	uowFactory        ShipmentCarrierUoWFactory
	volumetricDivisor float64
}

// NewCreateShipmentCommandHandler creates a handler for shipment creation.
// A non-positive divisor falls back to the default.
func NewCreateShipmentCommandHandler(uowFactory ShipmentCarrierUoWFactory, volumetricDivisor float64) CreateShipmentCommandHandler {
	if volumetricDivisor <= 0 {
		volumetricDivisor = kernel.DefaultVolumetricDivisor
	}
	return CreateShipmentCommandHandler{
		uowFactory:        uowFactory,
		volumetricDivisor: volumetricDivisor,
	}
}

// Handle processes the shipment creation command.
func (h CreateShipmentCommandHandler) Handle(ctx context.Context, cmd CreateShipmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	origin, err := shipment.NewAddress(
		cmd.Origin().Name, cmd.Origin().Street, cmd.Origin().City,
		cmd.Origin().PostalCode, cmd.Origin().CountryCode, cmd.Origin().Residential,
	)
	if err != nil {
		return err
	}
	destination, err := shipment.NewAddress(
		cmd.Destination().Name, cmd.Destination().Street, cmd.Destination().City,
		cmd.Destination().PostalCode, cmd.Destination().CountryCode, cmd.Destination().Residential,
	)
	if err != nil {
		return err
	}

	packages, err := h.buildPackages(cmd)
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

	t, err := uow.TariffRepository().Get(ctx, cmd.TenantID(), cmd.TariffID())
	if err != nil {
		return err
	}
	c, err := uow.CarrierRepository().Get(ctx, cmd.TenantID(), t.CarrierID())
	if err != nil {
		return err
	}

	if cmd.Insured() && !c.Capabilities().Insurance {
		return ErrInsuranceNotSupported
	}
	if cmd.PickupPoint() != "" && !c.Capabilities().PickupPoints {
		return ErrPickupPointNotSupported
	}

	option, err := services.NewRatePricer().Price(t, c, h.pricingRequest(cmd, destination, packages))
	if err != nil {
		return err
	}

	costs, err := h.costBreakdown(cmd, t.Currency(), option)
	if err != nil {
		return err
	}

	estimated := time.Now().UTC().AddDate(0, 0, c.DeliveryDays().Max)

	aggregate, err := shipment.NewShipment(
		cmd.ShipmentID(), cmd.TenantID(), c.ID(), t.ID(), cmd.OrderID(),
		origin, destination, cmd.PickupPoint(), packages, costs, &estimated,
	)
	if err != nil {
		return err
	}

	if err = uow.ShipmentRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h CreateShipmentCommandHandler) buildPackages(cmd CreateShipmentCommand) ([]*shipment.Package, error) {
	packages := make([]*shipment.Package, 0, len(cmd.Packages()))
	for _, spec := range cmd.Packages() {
		dims, err := kernel.NewDimensions(spec.LengthCm, spec.WidthCm, spec.HeightCm)
		if err != nil {
			return nil, err
		}
		w, err := kernel.NewWeight(spec.WeightKg)
		if err != nil {
			return nil, err
		}
		p, err := shipment.NewPackage(kernel.NewUUID(), dims, w, spec.DeclaredValue, spec.Contents, h.volumetricDivisor)
		if err != nil {
			return nil, err
		}
		packages = append(packages, p)
	}
	return packages, nil
}

func (h CreateShipmentCommandHandler) pricingRequest(
	cmd CreateShipmentCommand,
	destination shipment.Address,
	packages []*shipment.Package,
) services.PricingRequest {
	var billable kernel.Weight
	var longest, girth float64
	for _, p := range packages {
		billable = billable.Add(p.BillableWeight())
		if l := p.Dimensions().Longest(); l > longest {
			longest = l
		}
		if g := p.Dimensions().Girth(); g > girth {
			girth = g
		}
	}

	return services.PricingRequest{
		BillableWeight: billable,
		OrderTotal:     cmd.OrderTotal(),
		ItemCount:      len(packages),
		IsResidential:  destination.IsResidential(),
		LongestSideCm:  longest,
		GirthCm:        girth,
	}
}

func (h CreateShipmentCommandHandler) costBreakdown(
	cmd CreateShipmentCommand,
	currency kernel.Currency,
	option services.PricedOption,
) (shipment.CostBreakdown, error) {
	insurance, err := kernel.ZeroMoney(currency)
	if err != nil {
		return shipment.CostBreakdown{}, err
	}

	if cmd.Insured() {
		declared, sumErr := h.declaredTotal(cmd, currency)
		if sumErr != nil {
			return shipment.CostBreakdown{}, sumErr
		}
		insurance = declared.Mul(insuranceRate).Rounded()
	}

	total, err := option.Cost.Add(insurance)
	if err != nil {
		return shipment.CostBreakdown{}, err
	}

	return shipment.CostBreakdown{
		Base:      option.BaseCost,
		Insurance: insurance,
		Surcharge: option.SurchargeCost,
		Total:     total,
	}, nil
}

func (h CreateShipmentCommandHandler) declaredTotal(cmd CreateShipmentCommand, currency kernel.Currency) (kernel.Money, error) {
	total, err := kernel.ZeroMoney(currency)
	if err != nil {
		return kernel.Money{}, err
	}
	for _, spec := range cmd.Packages() {
		if total, err = total.Add(spec.DeclaredValue); err != nil {
			return kernel.Money{}, err
		}
	}
	return total, nil
}
