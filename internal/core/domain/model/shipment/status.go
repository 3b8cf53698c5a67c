package shipment

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of a shipment.
//
// State transitions:
//
//	Pending ──> LabelCreated ──> PickedUp ──> InTransit ──┬──> OutForDelivery ──> Delivered
//	   │              │             │            │        ├──> FailedAttempt
//	   │              │             └────────────┼────────┴──> Exception
//	   └── Cancelled ─┘                          └──> Delivered
//
// Returned and Cancelled are terminal side-branches. The full allowed set is
// the transition table below; anything outside it is rejected and leaves the
// state unchanged.
type Status int

const (
	// UnknownStatus represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	UnknownStatus Status = iota

	// Pending is the initial status: the shipment exists, no label yet.
	Pending

	// LabelCreated means tracking numbers are assigned and a label exists.
	LabelCreated

	// PickedUp means the carrier has collected the shipment.
	PickedUp

	// InTransit means the shipment is moving through the carrier network.
	InTransit

	// OutForDelivery means the shipment is on the final delivery vehicle.
	OutForDelivery

	// FailedAttempt records an unsuccessful delivery attempt.
	FailedAttempt

	// Exception records a carrier-side problem (customs hold, damage, address issue).
	Exception

	// Delivered is the successful terminal state, reachable from PickedUp,
	// InTransit or OutForDelivery. Only a return moves the shipment further.
	Delivered

	// Returned is a terminal side-branch: the shipment went back to origin.
	Returned

	// Cancelled is a terminal side-branch, reachable only before pickup.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		UnknownStatus:  "Unknown",
		Pending:        "Pending",
		LabelCreated:   "LabelCreated",
		PickedUp:       "PickedUp",
		InTransit:      "InTransit",
		OutForDelivery: "OutForDelivery",
		FailedAttempt:  "FailedAttempt",
		Exception:      "Exception",
		Delivered:      "Delivered",
		Returned:       "Returned",
		Cancelled:      "Cancelled",
	}
}

// allowedTransitions is the fixed, exhaustive transition table. A status maps
// to the full set of states it may legally move to; terminal states map to an
// empty set.
func allowedTransitions() map[Status][]Status {
	return map[Status][]Status{
		Pending:        {LabelCreated, Cancelled},
		LabelCreated:   {PickedUp, Cancelled},
		PickedUp:       {InTransit, Delivered},
		InTransit:      {OutForDelivery, FailedAttempt, Exception, Delivered},
		OutForDelivery: {Delivered, FailedAttempt, Exception},
		FailedAttempt:  {OutForDelivery, InTransit, Exception, Returned},
		Exception:      {InTransit, Returned},
		Delivered:      {Returned},
		Returned:       {},
		Cancelled:      {},
	}
}

// AllStatuses returns every valid status, in lifecycle order. Used for
// exhaustive transition-closure checks.
func AllStatuses() []Status {
	return []Status{
		Pending, LabelCreated, PickedUp, InTransit, OutForDelivery,
		FailedAttempt, Exception, Delivered, Returned, Cancelled,
	}
}

// Validate checks if the Status value is one of the defined lifecycle states.
func (s Status) Validate() error {
	if _, ok := allowedTransitions()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("shipment status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer and is safe on invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// StatusFromString parses a status name as stored or received over the API.
func StatusFromString(v string) (Status, error) {
	for s, str := range getStatusStrings() {
		if str == v && s != UnknownStatus {
			return s, nil
		}
	}
	return UnknownStatus, errs.NewValueIsInvalidErrorWithCause("shipment status",
		fmt.Errorf("%q is not a valid status", v))
}

// CanTransitionTo reports whether moving to target is in the allowed table.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range allowedTransitions()[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// TransitionTo returns the target status if the move is legal, or an
// InvalidTransitionError leaving the caller's state unchanged.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return UnknownStatus, err
	}
	if !s.CanTransitionTo(target) {
		return UnknownStatus, errs.NewInvalidTransitionError("shipment", s.String(), target.String())
	}
	return target, nil
}

// IsTerminal reports whether no further transitions are allowed.
func (s Status) IsTerminal() bool {
	return len(allowedTransitions()[s]) == 0
}
