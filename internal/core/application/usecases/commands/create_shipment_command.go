package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrCreateShipmentCommandIsNotConstructed = errors.New(
	"CreateShipmentCommand must be created via NewCreateShipmentCommand constructor",
)

// AddressData carries one postal address across the command boundary. The
// aggregate validates and freezes it as a snapshot.
type AddressData struct {
	Name        string
	Street      string
	City        string
	PostalCode  string
	CountryCode string
	Residential bool
}

// PackageData carries one parcel's physical attributes across the command
// boundary.
type PackageData struct {
	LengthCm      float64
	WidthCm       float64
	HeightCm      float64
	WeightKg      float64
	DeclaredValue kernel.Money
	Contents      string
}

// CreateShipmentCommand materializes an accepted quote into a shipment: the
// chosen tariff, the addresses, the parcels, and whether to insure.
type CreateShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID  kernel.UUID
	tenantID    kernel.TenantID
	tariffID    kernel.UUID
	orderID     *kernel.UUID
	origin      AddressData
	destination AddressData
	pickupPoint string
	packages    []PackageData
	orderTotal  kernel.Money
	insured     bool

	guard guard.ConstructorGuard
}

// NewCreateShipmentCommand creates a command to materialize a shipment from a
// chosen quote. At least one package is required.
func NewCreateShipmentCommand(
	shipmentID kernel.UUID,
	tenantID kernel.TenantID,
	tariffID kernel.UUID,
	orderID *kernel.UUID,
	origin AddressData,
	destination AddressData,
	pickupPoint string,
	packages []PackageData,
	orderTotal kernel.Money,
	insured bool,
) (CreateShipmentCommand, error) {
	cmd := CreateShipmentCommand{
		orderID:     orderID,
		origin:      origin,
		destination: destination,
		pickupPoint: pickupPoint,
		packages:    packages,
		orderTotal:  orderTotal,
		insured:     insured,

		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setShipmentID(shipmentID),
		cmd.setTenantID(tenantID),
		cmd.setTariffID(tariffID),
		cmd.setPackages(packages),
	); err != nil {
		return CreateShipmentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateShipmentCommandIsNotConstructed)
}

// ShipmentID returns the identifier for the new shipment.
func (c CreateShipmentCommand) ShipmentID() kernel.UUID { return c.shipmentID }

// TenantID returns the owning tenant.
func (c CreateShipmentCommand) TenantID() kernel.TenantID { return c.tenantID }

// TariffID returns the chosen tariff.
func (c CreateShipmentCommand) TariffID() kernel.UUID { return c.tariffID }

// OrderID returns the originating order, or nil.
func (c CreateShipmentCommand) OrderID() *kernel.UUID { return c.orderID }

// Origin returns the pickup address.
func (c CreateShipmentCommand) Origin() AddressData { return c.origin }

// Destination returns the delivery address.
func (c CreateShipmentCommand) Destination() AddressData { return c.destination }

// PickupPoint returns the pickup-point identifier, empty for home delivery.
func (c CreateShipmentCommand) PickupPoint() string { return c.pickupPoint }

// Packages returns the parcel specifications.
func (c CreateShipmentCommand) Packages() []PackageData { return c.packages }

// OrderTotal returns the order total used for pricing.
func (c CreateShipmentCommand) OrderTotal() kernel.Money { return c.orderTotal }

// Insured reports whether insurance was requested.
func (c CreateShipmentCommand) Insured() bool { return c.insured }

func (c *CreateShipmentCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}
	c.shipmentID = shipmentID
	return nil
}

func (c *CreateShipmentCommand) setTenantID(tenantID kernel.TenantID) error {
	if err := tenantID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("tenantId", err)
	}
	c.tenantID = tenantID
	return nil
}

func (c *CreateShipmentCommand) setTariffID(tariffID kernel.UUID) error {
	if err := tariffID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("tariffId", err)
	}
	c.tariffID = tariffID
	return nil
}

func (c *CreateShipmentCommand) setPackages(packages []PackageData) error {
	if len(packages) == 0 {
		return errs.NewValueIsRequiredError("packages")
	}
	return nil
}
