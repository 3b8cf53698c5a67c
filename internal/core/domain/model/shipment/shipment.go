// Package shipment contains the Shipment aggregate: the packages it owns,
// frozen address snapshots, the cost breakdown, and the guarded lifecycle
// state machine with its append-only tracking event log.
package shipment

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrShipmentIsNotConstructed is returned when a Shipment instance was not
	// created through NewShipment or RestoreShipment.
	ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment constructor")

	// ErrShipmentCannotBeCancelled is returned when cancellation is requested
	// after the shipment moved past label creation.
	ErrShipmentCannotBeCancelled = errors.New("shipment can no longer be cancelled")

	// ErrLabelAlreadyGenerated guards label issuance idempotency.
	ErrLabelAlreadyGenerated = errors.New("label has already been generated for this shipment")
)

// NumberFor derives the human-facing shipment number from the aggregate
// identifier. Stable per shipment, unique per tenant.
func NumberFor(id kernel.UUID) string {
	return "SHP-" + strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:12])
}

// CostBreakdown is the frozen pricing of a shipment at creation:
// base + insurance + surcharges = total. All components share one currency.
type CostBreakdown struct {
	Base      kernel.Money
	Insurance kernel.Money
	Surcharge kernel.Money
	Total     kernel.Money
}

func (c CostBreakdown) validate() error {
	for name, m := range map[string]kernel.Money{
		"baseCost": c.Base, "insuranceCost": c.Insurance,
		"surchargeCost": c.Surcharge, "totalCost": c.Total,
	} {
		if err := m.Validate(); err != nil {
			return errs.NewValueIsRequiredErrorWithCause(name, err)
		}
		if m.IsNegative() {
			return errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%s is negative", m))
		}
	}

	sum, err := c.Base.Add(c.Insurance)
	if err != nil {
		return err
	}
	sum, err = sum.Add(c.Surcharge)
	if err != nil {
		return err
	}
	if !sum.IsEqual(c.Total) {
		return errs.NewValueIsInvalidErrorWithCause("totalCost",
			fmt.Errorf("%s does not equal base %s + insurance %s + surcharges %s",
				c.Total, c.Base, c.Insurance, c.Surcharge))
	}
	return nil
}

// Shipment is the aggregate root for one physical shipment. It owns its
// packages (cascade lifecycle) and its tracking event log, and is the only
// writer of either.
type Shipment struct {
	id       kernel.UUID
	tenantID kernel.TenantID
	number   string

	carrierID kernel.UUID
	tariffID  kernel.UUID
	orderID   *kernel.UUID

	origin      Address
	destination Address
	pickupPoint string

	packages []*Package
	costs    CostBreakdown

	status         Status
	events         []TrackingEvent
	masterTracking string
	labelURL       string

	estimatedDelivery *time.Time
	deliveredAt       *time.Time
	cancelReason      string

	version int64

	isConstructed bool
}

// NewShipment creates a Pending shipment from an accepted quote. Addresses
// are snapshots, the cost breakdown is frozen, and an initial tracking event
// is appended so the audit trail starts at creation.
func NewShipment(
	id kernel.UUID,
	tenantID kernel.TenantID,
	carrierID kernel.UUID,
	tariffID kernel.UUID,
	orderID *kernel.UUID,
	origin Address,
	destination Address,
	pickupPoint string,
	packages []*Package,
	costs CostBreakdown,
	estimatedDelivery *time.Time,
) (*Shipment, error) {
	s := &Shipment{
		status:        Pending,
		isConstructed: true,
	}

	if err := errors.Join(
		s.setID(id),
		s.setTenantID(tenantID),
		s.setCarrierID(carrierID),
		s.setTariffID(tariffID),
		s.setOrderID(orderID),
		s.setAddresses(origin, destination),
		s.setPackages(packages),
		s.setCosts(costs),
	); err != nil {
		return nil, err
	}

	s.number = NumberFor(id)
	s.pickupPoint = strings.TrimSpace(pickupPoint)
	if estimatedDelivery != nil {
		v := estimatedDelivery.UTC()
		s.estimatedDelivery = &v
	}

	created, err := NewTrackingEvent(Pending, "Shipment created", "", time.Time{})
	if err != nil {
		return nil, err
	}
	s.events = append(s.events, created)

	return s, nil
}

// RestoreShipment reconstructs a Shipment from persistence, including status,
// event log, tracking identifiers and version.
func RestoreShipment(
	id kernel.UUID,
	tenantID kernel.TenantID,
	number string,
	carrierID kernel.UUID,
	tariffID kernel.UUID,
	orderID *kernel.UUID,
	origin Address,
	destination Address,
	pickupPoint string,
	packages []*Package,
	costs CostBreakdown,
	status Status,
	events []TrackingEvent,
	masterTracking string,
	labelURL string,
	estimatedDelivery *time.Time,
	deliveredAt *time.Time,
	cancelReason string,
	version int64,
) (*Shipment, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	s := &Shipment{
		status:        Pending,
		isConstructed: true,
	}

	if err := errors.Join(
		s.setID(id),
		s.setTenantID(tenantID),
		s.setCarrierID(carrierID),
		s.setTariffID(tariffID),
		s.setOrderID(orderID),
		s.setAddresses(origin, destination),
		s.setPackages(packages),
		s.setCosts(costs),
	); err != nil {
		return nil, err
	}

	s.number = number
	s.pickupPoint = pickupPoint
	s.status = status
	s.events = append(s.events, events...)
	s.masterTracking = masterTracking
	s.labelURL = labelURL
	s.estimatedDelivery = estimatedDelivery
	s.deliveredAt = deliveredAt
	s.cancelReason = cancelReason
	s.version = version

	return s, nil
}

// Validate ensures the Shipment was created through a constructor.
func (s *Shipment) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrShipmentIsNotConstructed
	}
	return nil
}

// ID returns the shipment's unique identifier.
func (s *Shipment) ID() kernel.UUID { return s.id }

// TenantID returns the owning tenant.
func (s *Shipment) TenantID() kernel.TenantID { return s.tenantID }

// Number returns the human-facing shipment number.
func (s *Shipment) Number() string { return s.number }

// CarrierID returns the selected carrier's identifier.
func (s *Shipment) CarrierID() kernel.UUID { return s.carrierID }

// TariffID returns the selected tariff's identifier.
func (s *Shipment) TariffID() kernel.UUID { return s.tariffID }

// OrderID returns the originating order's identifier, or nil.
func (s *Shipment) OrderID() *kernel.UUID {
	if s.orderID == nil {
		return nil
	}
	id := *s.orderID
	return &id
}

// Origin returns the frozen origin address snapshot.
func (s *Shipment) Origin() Address { return s.origin }

// Destination returns the frozen destination address snapshot.
func (s *Shipment) Destination() Address { return s.destination }

// PickupPoint returns the pickup-point identifier, empty for home delivery.
func (s *Shipment) PickupPoint() string { return s.pickupPoint }

// Packages returns the owned packages.
func (s *Shipment) Packages() []*Package {
	out := make([]*Package, len(s.packages))
	copy(out, s.packages)
	return out
}

// Costs returns the frozen cost breakdown.
func (s *Shipment) Costs() CostBreakdown { return s.costs }

// Status returns the current lifecycle state.
func (s *Shipment) Status() Status { return s.status }

// Events returns the tracking event log in append order.
func (s *Shipment) Events() []TrackingEvent {
	out := make([]TrackingEvent, len(s.events))
	copy(out, s.events)
	return out
}

// MasterTracking returns the master tracking number, empty before label
// generation.
func (s *Shipment) MasterTracking() string { return s.masterTracking }

// LabelURL returns the carrier label document URL, empty before label
// generation.
func (s *Shipment) LabelURL() string { return s.labelURL }

// EstimatedDelivery returns the delivery estimate derived from the carrier's
// delivery-day range, or nil.
func (s *Shipment) EstimatedDelivery() *time.Time { return s.estimatedDelivery }

// DeliveredAt returns the actual delivery timestamp, nil until Delivered.
func (s *Shipment) DeliveredAt() *time.Time { return s.deliveredAt }

// CancelReason returns the recorded cancellation reason, empty unless
// Cancelled.
func (s *Shipment) CancelReason() string { return s.cancelReason }

// Version returns the optimistic-concurrency version counter.
func (s *Shipment) Version() int64 { return s.version }

// TotalBillableWeight sums the billable weight across all packages.
func (s *Shipment) TotalBillableWeight() kernel.Weight {
	var total kernel.Weight
	for _, p := range s.packages {
		total = total.Add(p.BillableWeight())
	}
	return total
}

// CanGenerateLabel reports whether the shipment would accept a label right
// now. Issuing a label is an external, billable call; callers check this
// before reaching out to the carrier so a repeat request or a dead shipment
// never triggers one.
func (s *Shipment) CanGenerateLabel() error {
	if err := s.Validate(); err != nil {
		return err
	}
	if s.status == LabelCreated || s.masterTracking != "" {
		return ErrLabelAlreadyGenerated
	}
	if _, err := s.status.TransitionTo(LabelCreated); err != nil {
		return err
	}
	return nil
}

// GenerateLabel transitions Pending → LabelCreated, assigning the master
// tracking number, one tracking number per package, and the label URL.
//
// The operation is idempotent-guarded: a second call fails with
// ErrLabelAlreadyGenerated instead of reassigning numbers. Any other
// out-of-state call fails with an InvalidTransitionError.
func (s *Shipment) GenerateLabel(masterTracking string, packageTracking []string, labelURL string) error {
	if err := s.CanGenerateLabel(); err != nil {
		return err
	}

	newStatus, err := s.status.TransitionTo(LabelCreated)
	if err != nil {
		return err
	}

	if strings.TrimSpace(masterTracking) == "" {
		return errs.NewValueIsRequiredError("masterTracking")
	}
	if len(packageTracking) != len(s.packages) {
		return errs.NewValueIsInvalidErrorWithCause("packageTracking",
			fmt.Errorf("%d numbers for %d packages", len(packageTracking), len(s.packages)))
	}

	event, err := NewTrackingEvent(LabelCreated, "Shipping label created", "", time.Time{})
	if err != nil {
		return err
	}

	s.status = newStatus
	s.masterTracking = strings.TrimSpace(masterTracking)
	s.labelURL = strings.TrimSpace(labelURL)
	for i, p := range s.packages {
		p.trackingNumber = strings.TrimSpace(packageTracking[i])
	}
	s.events = append(s.events, event)
	return nil
}

// PostTrackingEvent applies a carrier scan event. A status equal to the
// current one appends a progress event without a transition; any other status
// must be legal per the transition table, or the call fails leaving both state
// and event log unchanged.
//
// Reaching Delivered stamps the actual delivery timestamp from the event.
func (s *Shipment) PostTrackingEvent(status Status, description, location string, occurredAt time.Time) error {
	if err := s.Validate(); err != nil {
		return err
	}

	event, err := NewTrackingEvent(status, description, location, occurredAt)
	if err != nil {
		return err
	}

	if status != s.status {
		newStatus, transitionErr := s.status.TransitionTo(status)
		if transitionErr != nil {
			return transitionErr
		}
		s.status = newStatus
	}

	if status == Delivered && s.deliveredAt == nil {
		at := event.OccurredAt()
		s.deliveredAt = &at
	}

	s.events = append(s.events, event)
	return nil
}

// Cancel moves the shipment to Cancelled. Legal only from Pending or
// LabelCreated; once past pickup the physical flow cannot be recalled and the
// call fails with ErrShipmentCannotBeCancelled.
func (s *Shipment) Cancel(reason string) error {
	if err := s.Validate(); err != nil {
		return err
	}

	if !s.status.CanTransitionTo(Cancelled) {
		return fmt.Errorf("%w: status is %s", ErrShipmentCannotBeCancelled, s.status)
	}

	description := "Shipment cancelled"
	if strings.TrimSpace(reason) != "" {
		description = "Shipment cancelled: " + strings.TrimSpace(reason)
	}
	event, err := NewTrackingEvent(Cancelled, description, "", time.Time{})
	if err != nil {
		return err
	}

	s.status = Cancelled
	s.cancelReason = strings.TrimSpace(reason)
	s.events = append(s.events, event)
	return nil
}

// IsDelivered reports whether the shipment reached Delivered.
func (s *Shipment) IsDelivered() bool {
	return s.status == Delivered
}

func (s *Shipment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Shipment) setTenantID(tenantID kernel.TenantID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}
	s.tenantID = tenantID
	return nil
}

func (s *Shipment) setCarrierID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("carrierId", err)
	}
	s.carrierID = id
	return nil
}

func (s *Shipment) setTariffID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("tariffId", err)
	}
	s.tariffID = id
	return nil
}

func (s *Shipment) setOrderID(id *kernel.UUID) error {
	if id == nil {
		s.orderID = nil
		return nil
	}
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("orderId", err)
	}
	v := *id
	s.orderID = &v
	return nil
}

func (s *Shipment) setAddresses(origin, destination Address) error {
	if err := origin.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("origin", err)
	}
	if err := destination.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("destination", err)
	}
	s.origin = origin
	s.destination = destination
	return nil
}

func (s *Shipment) setPackages(packages []*Package) error {
	if len(packages) == 0 {
		return errs.NewValueIsRequiredError("packages")
	}
	for _, p := range packages {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	s.packages = make([]*Package, len(packages))
	copy(s.packages, packages)
	return nil
}

func (s *Shipment) setCosts(costs CostBreakdown) error {
	if err := costs.validate(); err != nil {
		return err
	}
	s.costs = costs
	return nil
}
