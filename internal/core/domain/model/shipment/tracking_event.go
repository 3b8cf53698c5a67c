package shipment

import (
	"errors"
	"strings"
	"time"

	"fulfillment/internal/pkg/errs"
)

// ErrTrackingEventIsNotConstructed indicates a zero-value TrackingEvent.
var ErrTrackingEventIsNotConstructed = errors.New("TrackingEvent must be created via NewTrackingEvent constructor")

// TrackingEvent is one immutable entry in a shipment's append-only event log.
// The log is the canonical customer-facing audit trail; events are never
// edited or removed once appended.
type TrackingEvent struct {
	status      Status
	description string
	location    string
	occurredAt  time.Time

	isConstructed bool
}

// NewTrackingEvent creates an event. Description is required; location is
// optional. A zero occurredAt is stamped with the current time, since carrier
// feeds do not always carry a scan timestamp.
func NewTrackingEvent(status Status, description, location string, occurredAt time.Time) (TrackingEvent, error) {
	if err := status.Validate(); err != nil {
		return TrackingEvent{}, err
	}
	if strings.TrimSpace(description) == "" {
		return TrackingEvent{}, errs.NewValueIsRequiredError("description")
	}
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}

	return TrackingEvent{
		status:      status,
		description: strings.TrimSpace(description),
		location:    strings.TrimSpace(location),
		occurredAt:  occurredAt.UTC(),

		isConstructed: true,
	}, nil
}

// Validate returns ErrTrackingEventIsNotConstructed for the zero value.
func (e TrackingEvent) Validate() error {
	if !e.isConstructed {
		return ErrTrackingEventIsNotConstructed
	}
	return nil
}

// Status returns the lifecycle status the event records.
func (e TrackingEvent) Status() Status { return e.status }

// Description returns the free-text event description.
func (e TrackingEvent) Description() string { return e.description }

// Location returns the scan location, possibly empty.
func (e TrackingEvent) Location() string { return e.location }

// OccurredAt returns the event timestamp in UTC.
func (e TrackingEvent) OccurredAt() time.Time { return e.occurredAt }
