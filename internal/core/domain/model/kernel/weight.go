package kernel

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// DefaultVolumetricDivisor is the conventional cm³-per-kg divisor used to
// derive dimensional weight when no divisor is configured.
const DefaultVolumetricDivisor = 5000.0

// Weight is a non-negative mass in kilograms.
type Weight struct {
	kg float64
}

// NewWeight creates a Weight. Negative values are rejected.
func NewWeight(kg float64) (Weight, error) {
	if kg < 0 {
		return Weight{}, errs.NewValueIsInvalidErrorWithCause("weight",
			fmt.Errorf("%v kg is negative", kg))
	}
	return Weight{kg: kg}, nil
}

// Kg returns the weight in kilograms.
func (w Weight) Kg() float64 {
	return w.kg
}

// Add returns the sum of two weights.
func (w Weight) Add(other Weight) Weight {
	return Weight{kg: w.kg + other.kg}
}

// Max returns the greater of two weights.
func (w Weight) Max(other Weight) Weight {
	if other.kg > w.kg {
		return other
	}
	return w
}

// GreaterThan reports whether w exceeds other.
func (w Weight) GreaterThan(other Weight) bool {
	return w.kg > other.kg
}

// IsZero reports whether the weight is exactly zero.
func (w Weight) IsZero() bool {
	return w.kg == 0
}

// Dimensions are the outer measurements of a package in centimeters.
// A zero value is valid and means "dimensions unknown": its volume is zero, so
// dimensional weight never inflates the billable weight of such a package.
type Dimensions struct {
	length float64
	width  float64
	height float64
}

// NewDimensions creates Dimensions. Each side must be non-negative; zero sides
// are allowed and yield a zero volume.
func NewDimensions(length, width, height float64) (Dimensions, error) {
	for name, v := range map[string]float64{"length": length, "width": width, "height": height} {
		if v < 0 {
			return Dimensions{}, errs.NewValueIsInvalidErrorWithCause(name,
				fmt.Errorf("%v cm is negative", v))
		}
	}
	return Dimensions{length: length, width: width, height: height}, nil
}

// Length returns the length in centimeters.
func (d Dimensions) Length() float64 { return d.length }

// Width returns the width in centimeters.
func (d Dimensions) Width() float64 { return d.width }

// Height returns the height in centimeters.
func (d Dimensions) Height() float64 { return d.height }

// Volume returns length × width × height in cubic centimeters.
func (d Dimensions) Volume() float64 {
	return d.length * d.width * d.height
}

// Longest returns the longest single side, used against carrier linear limits.
func (d Dimensions) Longest() float64 {
	longest := d.length
	if d.width > longest {
		longest = d.width
	}
	if d.height > longest {
		longest = d.height
	}
	return longest
}

// Girth returns 2×(width+height), the conventional carrier girth measure.
func (d Dimensions) Girth() float64 {
	return 2 * (d.width + d.height)
}

// BillableWeight derives the chargeable weight of a package from its physical
// attributes:
//
//	dimensional = volume / divisor
//	billable    = max(actual, dimensional)
//
// Zero or missing dimensions yield a zero dimensional weight, so the billable
// weight falls back to the actual weight. The function is pure; callers must
// re-invoke it on every mutation of dimensions or actual weight, since a cached
// billable weight goes stale silently.
func BillableWeight(dims Dimensions, actual Weight, divisor float64) (dimensional, billable Weight, err error) {
	if divisor <= 0 {
		return Weight{}, Weight{}, errs.NewValueIsInvalidErrorWithCause("volumetricDivisor",
			fmt.Errorf("%v is not greater than 0", divisor))
	}

	dimensional = Weight{kg: dims.Volume() / divisor}
	return dimensional, actual.Max(dimensional), nil
}
