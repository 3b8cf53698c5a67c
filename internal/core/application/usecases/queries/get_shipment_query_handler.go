package queries

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetShipmentQueryHandler reads one shipment directly from the database.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
type GetShipmentQueryHandler struct {
	db *gorm.DB
}

// NewGetShipmentQueryHandler creates a handler for shipment retrieval queries.
func NewGetShipmentQueryHandler(db *gorm.DB) GetShipmentQueryHandler {
	return GetShipmentQueryHandler{db: db}
}

type shipmentRow struct {
	ID                     uuid.UUID
	Number                 string
	Status                 int
	CarrierID              uuid.UUID
	TariffID               uuid.UUID
	OrderID                *uuid.UUID
	OriginName             string
	OriginStreet           string
	OriginCity             string
	OriginPostalCode       string
	OriginCountryCode      string
	OriginResidential      bool
	DestinationName        string
	DestinationStreet      string
	DestinationCity        string
	DestinationPostalCode  string
	DestinationCountryCode string
	DestinationResidential bool
	PickupPoint            string
	Currency               string
	BaseCost               decimal.Decimal
	InsuranceCost          decimal.Decimal
	SurchargeCost          decimal.Decimal
	TotalCost              decimal.Decimal
	MasterTracking         string
	LabelURL               string
	EstimatedDelivery      *time.Time
	DeliveredAt            *time.Time
	CancelReason           string
	Version                int64
}

// Handle executes the lookup. Packages and tracking events are fetched in
// their own queries; a shipment carries few of either, so three round trips
// beat one join explosion.
func (h GetShipmentQueryHandler) Handle(
	ctx context.Context,
	query GetShipmentQuery,
) (GetShipmentQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetShipmentQueryResponse{}, err
	}

	row, err := h.fetchShipment(ctx, query)
	if err != nil {
		return GetShipmentQueryResponse{}, err
	}

	response, err := rowToResponse(row)
	if err != nil {
		return GetShipmentQueryResponse{}, err
	}

	response.Packages, err = h.fetchPackages(ctx, row.ID)
	if err != nil {
		return GetShipmentQueryResponse{}, err
	}

	response.Events, err = h.fetchEvents(ctx, row.ID)
	if err != nil {
		return GetShipmentQueryResponse{}, err
	}

	return response, nil
}

func (h GetShipmentQueryHandler) fetchShipment(ctx context.Context, query GetShipmentQuery) (shipmentRow, error) {
	where := "number = ?"
	arg := any(query.Number())
	selector := query.Number()

	switch {
	case query.ShipmentID() != nil:
		where = "id = ?"
		arg = query.ShipmentID().Bytes()
		selector = query.ShipmentID().String()
	case query.TrackingNumber() != "":
		where = "master_tracking = ?"
		arg = query.TrackingNumber()
		selector = query.TrackingNumber()
	}

	var row shipmentRow
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			id, number, status, carrier_id, tariff_id, order_id,
			origin_name, origin_street, origin_city, origin_postal_code,
			origin_country_code, origin_residential,
			destination_name, destination_street, destination_city,
			destination_postal_code, destination_country_code, destination_residential,
			pickup_point, currency, base_cost, insurance_cost, surcharge_cost, total_cost,
			master_tracking, label_url, estimated_delivery, delivered_at, cancel_reason, version
		FROM shipments
		WHERE tenant_id = ? AND `+where,
		query.TenantID().Bytes(), arg).Scan(&row).Error
	if err != nil {
		return shipmentRow{}, err
	}
	if row.ID == uuid.Nil {
		return shipmentRow{}, errs.NewObjectNotFoundError("shipment", selector)
	}

	return row, nil
}

func (h GetShipmentQueryHandler) fetchPackages(ctx context.Context, shipmentID uuid.UUID) ([]ShipmentPackageResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id, length_cm, width_cm, height_cm, weight_kg,
			declared_value, contents, tracking_number
		FROM packages
		WHERE shipment_id = ?
		ORDER BY id
	`, shipmentID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	packages := make([]ShipmentPackageResponse, 0)
	for rows.Next() {
		var p ShipmentPackageResponse
		var id uuid.UUID

		if err = rows.Scan(&id, &p.LengthCm, &p.WidthCm, &p.HeightCm, &p.WeightKg,
			&p.DeclaredValue, &p.Contents, &p.TrackingNumber); err != nil {
			return nil, err
		}

		p.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		packages = append(packages, p)
	}

	return packages, rows.Err()
}

func (h GetShipmentQueryHandler) fetchEvents(ctx context.Context, shipmentID uuid.UUID) ([]ShipmentEventResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT status, description, location, occurred_at
		FROM tracking_events
		WHERE shipment_id = ?
		ORDER BY occurred_at, id
	`, shipmentID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]ShipmentEventResponse, 0)
	for rows.Next() {
		var e ShipmentEventResponse
		var status int

		if err = rows.Scan(&status, &e.Description, &e.Location, &e.OccurredAt); err != nil {
			return nil, err
		}
		e.Status = shipment.Status(status)
		events = append(events, e)
	}

	return events, rows.Err()
}

func rowToResponse(row shipmentRow) (GetShipmentQueryResponse, error) {
	id, err := kernel.UUIDFromBytes(row.ID[:])
	if err != nil {
		return GetShipmentQueryResponse{}, err
	}
	carrierID, err := kernel.UUIDFromBytes(row.CarrierID[:])
	if err != nil {
		return GetShipmentQueryResponse{}, err
	}
	tariffID, err := kernel.UUIDFromBytes(row.TariffID[:])
	if err != nil {
		return GetShipmentQueryResponse{}, err
	}

	var orderID *kernel.UUID
	if row.OrderID != nil {
		oID, oErr := kernel.UUIDFromBytes((*row.OrderID)[:])
		if oErr != nil {
			return GetShipmentQueryResponse{}, oErr
		}
		orderID = &oID
	}

	status := shipment.Status(row.Status)
	if err = status.Validate(); err != nil {
		return GetShipmentQueryResponse{}, errors.Join(err,
			errs.NewValueIsInvalidError("status"))
	}

	return GetShipmentQueryResponse{
		ID:        id,
		Number:    row.Number,
		Status:    status,
		CarrierID: carrierID,
		TariffID:  tariffID,
		OrderID:   orderID,
		Origin: ShipmentAddressResponse{
			Name: row.OriginName, Street: row.OriginStreet, City: row.OriginCity,
			PostalCode: row.OriginPostalCode, CountryCode: row.OriginCountryCode,
			Residential: row.OriginResidential,
		},
		Destination: ShipmentAddressResponse{
			Name: row.DestinationName, Street: row.DestinationStreet, City: row.DestinationCity,
			PostalCode: row.DestinationPostalCode, CountryCode: row.DestinationCountryCode,
			Residential: row.DestinationResidential,
		},
		PickupPoint:       row.PickupPoint,
		Currency:          row.Currency,
		BaseCost:          row.BaseCost,
		InsuranceCost:     row.InsuranceCost,
		SurchargeCost:     row.SurchargeCost,
		TotalCost:         row.TotalCost,
		MasterTracking:    row.MasterTracking,
		LabelURL:          row.LabelURL,
		EstimatedDelivery: row.EstimatedDelivery,
		DeliveredAt:       row.DeliveredAt,
		CancelReason:      row.CancelReason,
		Version:           row.Version,
	}, nil
}
