package rma

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of a return.
//
// State transitions:
//
//	Requested ──> Approved ──> LabelSent ──> InTransit ──> Received ──> Inspected ──> Refunded
//	    │                                                     │             │
//	    └──────────────> Rejected <───────────────────────────│─────────────┘
//	                                                          └──> Refunded
//
// Rejected is reachable only before approval or after inspection; Refunded is
// reachable only once the goods are physically back. Both are terminal.
type Status int

const (
	// UnknownStatus represents an invalid or undefined status.
	UnknownStatus Status = iota

	// Requested is the initial status: the customer asked for a return.
	Requested

	// Approved means the merchant accepted the request.
	Approved

	// LabelSent means a return label was issued to the customer.
	LabelSent

	// InTransit means the return parcel is moving back to the warehouse.
	InTransit

	// Received means the warehouse has the parcel.
	Received

	// Inspected means the contents were physically inspected.
	Inspected

	// Refunded is the successful terminal state.
	Refunded

	// Rejected is the unsuccessful terminal state.
	Rejected
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		UnknownStatus: "Unknown",
		Requested:     "Requested",
		Approved:      "Approved",
		LabelSent:     "LabelSent",
		InTransit:     "InTransit",
		Received:      "Received",
		Inspected:     "Inspected",
		Refunded:      "Refunded",
		Rejected:      "Rejected",
	}
}

func allowedTransitions() map[Status][]Status {
	return map[Status][]Status{
		Requested: {Approved, Rejected},
		Approved:  {LabelSent},
		LabelSent: {InTransit},
		InTransit: {Received},
		Received:  {Inspected, Refunded},
		Inspected: {Refunded, Rejected},
		Refunded:  {},
		Rejected:  {},
	}
}

// AllStatuses returns every valid status, in lifecycle order.
func AllStatuses() []Status {
	return []Status{
		Requested, Approved, LabelSent, InTransit,
		Received, Inspected, Refunded, Rejected,
	}
}

// Validate checks if the Status value is one of the defined lifecycle states.
func (s Status) Validate() error {
	if _, ok := allowedTransitions()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("return status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
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
	return UnknownStatus, errs.NewValueIsInvalidErrorWithCause("return status",
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
		return UnknownStatus, errs.NewInvalidTransitionError("return", s.String(), target.String())
	}
	return target, nil
}

// IsTerminal reports whether no further transitions are allowed.
func (s Status) IsTerminal() bool {
	return len(allowedTransitions()[s]) == 0
}
