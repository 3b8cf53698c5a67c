package commands

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrPostTrackingEventCommandIsNotConstructed = errors.New(
	"PostTrackingEventCommand must be created via NewPostTrackingEventCommand constructor",
)

// PostTrackingEventCommand represents one carrier scan event to apply to a
// shipment: pickup, transit scans, delivery attempts, and delivery itself all
// enter through this command.
type PostTrackingEventCommand struct { //nolint:recvcheck //using for validation
	shipmentID  kernel.UUID
	tenantID    kernel.TenantID
	status      shipment.Status
	description string
	location    string
	occurredAt  time.Time

	guard guard.ConstructorGuard
}

// NewPostTrackingEventCommand creates a command to apply a tracking event.
// A zero occurredAt lets the aggregate stamp the current time.
func NewPostTrackingEventCommand(
	shipmentID kernel.UUID,
	tenantID kernel.TenantID,
	status shipment.Status,
	description string,
	location string,
	occurredAt time.Time,
) (PostTrackingEventCommand, error) {
	cmd := PostTrackingEventCommand{
		description: description,
		location:    location,
		occurredAt:  occurredAt,

		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setShipmentID(shipmentID),
		cmd.setTenantID(tenantID),
		cmd.setStatus(status),
	); err != nil {
		return PostTrackingEventCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PostTrackingEventCommand) Validate() error {
	return c.guard.Validate(ErrPostTrackingEventCommandIsNotConstructed)
}

// ShipmentID returns the shipment to update.
func (c PostTrackingEventCommand) ShipmentID() kernel.UUID { return c.shipmentID }

// TenantID returns the owning tenant.
func (c PostTrackingEventCommand) TenantID() kernel.TenantID { return c.tenantID }

// Status returns the lifecycle status the event records.
func (c PostTrackingEventCommand) Status() shipment.Status { return c.status }

// Description returns the event description.
func (c PostTrackingEventCommand) Description() string { return c.description }

// Location returns the scan location.
func (c PostTrackingEventCommand) Location() string { return c.location }

// OccurredAt returns the scan timestamp.
func (c PostTrackingEventCommand) OccurredAt() time.Time { return c.occurredAt }

func (c *PostTrackingEventCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}
	c.shipmentID = shipmentID
	return nil
}

func (c *PostTrackingEventCommand) setTenantID(tenantID kernel.TenantID) error {
	if err := tenantID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("tenantId", err)
	}
	c.tenantID = tenantID
	return nil
}

func (c *PostTrackingEventCommand) setStatus(status shipment.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	c.status = status
	return nil
}
