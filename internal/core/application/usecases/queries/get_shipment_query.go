package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetShipmentQueryIsNotConstructed = errors.New(
	"GetShipmentQuery must be created via a GetShipmentQuery constructor",
)

// GetShipmentQuery retrieves one shipment with its packages and tracking log.
// Three lookups exist because three kinds of callers exist: internal systems
// hold the ID, merchants hold the shipment number, customers hold the tracking
// number.
type GetShipmentQuery struct { //nolint:recvcheck //using for validation
	tenantID       kernel.TenantID
	shipmentID     *kernel.UUID
	number         string
	trackingNumber string

	guard guard.ConstructorGuard
}

// NewGetShipmentQuery creates a lookup by shipment identifier.
func NewGetShipmentQuery(tenantID kernel.TenantID, shipmentID kernel.UUID) (GetShipmentQuery, error) {
	if err := shipmentID.Validate(); err != nil {
		return GetShipmentQuery{}, err
	}
	q, err := newGetShipmentQuery(tenantID)
	if err != nil {
		return GetShipmentQuery{}, err
	}
	q.shipmentID = &shipmentID
	return q, nil
}

// NewGetShipmentByNumberQuery creates a lookup by shipment number.
func NewGetShipmentByNumberQuery(tenantID kernel.TenantID, number string) (GetShipmentQuery, error) {
	if number == "" {
		return GetShipmentQuery{}, errs.NewValueIsRequiredError("number")
	}
	q, err := newGetShipmentQuery(tenantID)
	if err != nil {
		return GetShipmentQuery{}, err
	}
	q.number = number
	return q, nil
}

// NewGetShipmentByTrackingNumberQuery creates a lookup by master tracking number.
func NewGetShipmentByTrackingNumberQuery(tenantID kernel.TenantID, trackingNumber string) (GetShipmentQuery, error) {
	if trackingNumber == "" {
		return GetShipmentQuery{}, errs.NewValueIsRequiredError("trackingNumber")
	}
	q, err := newGetShipmentQuery(tenantID)
	if err != nil {
		return GetShipmentQuery{}, err
	}
	q.trackingNumber = trackingNumber
	return q, nil
}

func newGetShipmentQuery(tenantID kernel.TenantID) (GetShipmentQuery, error) {
	if err := tenantID.Validate(); err != nil {
		return GetShipmentQuery{}, errs.NewValueIsRequiredErrorWithCause("tenantId", err)
	}
	return GetShipmentQuery{
		tenantID: tenantID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through a constructor.
func (q GetShipmentQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentQueryIsNotConstructed)
}

// TenantID returns the requesting tenant.
func (q GetShipmentQuery) TenantID() kernel.TenantID { return q.tenantID }

// ShipmentID returns the identifier selector, if set.
func (q GetShipmentQuery) ShipmentID() *kernel.UUID { return q.shipmentID }

// Number returns the shipment number selector, if set.
func (q GetShipmentQuery) Number() string { return q.number }

// TrackingNumber returns the tracking number selector, if set.
func (q GetShipmentQuery) TrackingNumber() string { return q.trackingNumber }

// ShipmentAddressResponse is an address snapshot in the read model.
type ShipmentAddressResponse struct {
	Name        string
	Street      string
	City        string
	PostalCode  string
	CountryCode string
	Residential bool
}

// ShipmentPackageResponse is one parcel in the read model.
type ShipmentPackageResponse struct {
	ID             kernel.UUID
	LengthCm       float64
	WidthCm        float64
	HeightCm       float64
	WeightKg       float64
	DeclaredValue  decimal.Decimal
	Contents       string
	TrackingNumber string
}

// ShipmentEventResponse is one tracking log entry in the read model.
type ShipmentEventResponse struct {
	Status      shipment.Status
	Description string
	Location    string
	OccurredAt  time.Time
}

// GetShipmentQueryResponse is the full shipment read model.
type GetShipmentQueryResponse struct {
	ID                kernel.UUID
	Number            string
	Status            shipment.Status
	CarrierID         kernel.UUID
	TariffID          kernel.UUID
	OrderID           *kernel.UUID
	Origin            ShipmentAddressResponse
	Destination       ShipmentAddressResponse
	PickupPoint       string
	Currency          string
	BaseCost          decimal.Decimal
	InsuranceCost     decimal.Decimal
	SurchargeCost     decimal.Decimal
	TotalCost         decimal.Decimal
	MasterTracking    string
	LabelURL          string
	EstimatedDelivery *time.Time
	DeliveredAt       *time.Time
	CancelReason      string
	Packages          []ShipmentPackageResponse
	Events            []ShipmentEventResponse
	Version           int64
}
