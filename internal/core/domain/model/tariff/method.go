package tariff

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Method is the pricing method of a tariff. It selects the cost formula the
// rate pricer dispatches on.
//
// Methods:
//
//	Flat            cost = base rate
//	PerWeight       cost from the tier table, or base + perKg × weight
//	PerPriceBracket cost from the bracket containing the order total
//	PerItem         cost = base + perItem × item count
//	Volumetric      cost = base + perKg × billable weight
type Method int

const (
	// UnknownMethod represents an invalid or undefined method.
	// This value (0) helps catch uninitialized Method values.
	UnknownMethod Method = iota

	// Flat prices every shipment at the base rate, independent of inputs.
	Flat

	// PerWeight prices by billable weight, through a tier table when one is
	// present and linearly on the per-kg rate otherwise.
	PerWeight

	// PerPriceBracket prices by the order total through a bracket table.
	PerPriceBracket

	// PerItem prices linearly on the number of items.
	PerItem

	// Volumetric prices linearly on billable weight, which already folds in
	// dimensional weight.
	Volumetric
)

func getMethodStrings() map[Method]string {
	return map[Method]string{
		UnknownMethod:   "Unknown",
		Flat:            "Flat",
		PerWeight:       "PerWeight",
		PerPriceBracket: "PerPriceBracket",
		PerItem:         "PerItem",
		Volumetric:      "Volumetric",
	}
}

func getValidMethodStrings() map[Method]string {
	//nolint:exhaustive // UnknownMethod is intentionally excluded as it's invalid
	return map[Method]string{
		Flat:            "Flat",
		PerWeight:       "PerWeight",
		PerPriceBracket: "PerPriceBracket",
		PerItem:         "PerItem",
		Volumetric:      "Volumetric",
	}
}

// Validate checks if the Method value is one of the five pricing methods.
func (m Method) Validate() error {
	if _, ok := getValidMethodStrings()[m]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("pricing method",
			fmt.Errorf("%d is not a valid pricing method", m))
	}
	return nil
}

// String returns the human-readable name of the method.
// Implements fmt.Stringer and is safe on invalid values.
func (m Method) String() string {
	if str, ok := getMethodStrings()[m]; ok {
		return str
	}
	return "Unknown"
}

// MethodFromString parses a method name as stored or received over the API.
func MethodFromString(s string) (Method, error) {
	for m, str := range getValidMethodStrings() {
		if str == s {
			return m, nil
		}
	}
	return UnknownMethod, errs.NewValueIsInvalidErrorWithCause("pricing method",
		fmt.Errorf("%q is not a valid pricing method", s))
}
