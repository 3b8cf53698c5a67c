package shipment

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
)

// ErrPackageIsNotConstructed is returned when a Package instance was not
// created through NewPackage or RestorePackage.
var ErrPackageIsNotConstructed = errors.New("Package must be created via NewPackage constructor")

// Package is one physical parcel inside a shipment. It is owned by its
// shipment and shares the shipment's lifecycle.
//
// Dimensional and billable weight are derived fields: they are recomputed
// through the billable-weight calculator on construction and on every physical
// mutation, never accepted from the caller. A stale cached weight is a billing
// bug, so UpdatePhysical is the only way to touch dimensions or actual weight.
type Package struct {
	id kernel.UUID

	dimensions    kernel.Dimensions
	actualWeight  kernel.Weight
	declaredValue kernel.Money
	contents      string

	dimensionalWeight kernel.Weight
	billableWeight    kernel.Weight

	trackingNumber string

	isConstructed bool
}

// NewPackage creates a Package and derives its weights with the given
// volumetric divisor.
func NewPackage(
	id kernel.UUID,
	dimensions kernel.Dimensions,
	actualWeight kernel.Weight,
	declaredValue kernel.Money,
	contents string,
	volumetricDivisor float64,
) (*Package, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := declaredValue.Validate(); err != nil {
		return nil, err
	}

	p := &Package{
		id:            id,
		declaredValue: declaredValue,
		contents:      contents,
		isConstructed: true,
	}

	if err := p.UpdatePhysical(dimensions, actualWeight, volumetricDivisor); err != nil {
		return nil, err
	}

	return p, nil
}

// RestorePackage reconstructs a Package from persistence. Derived weights are
// recomputed rather than read back, so a divisor change takes effect on load.
func RestorePackage(
	id kernel.UUID,
	dimensions kernel.Dimensions,
	actualWeight kernel.Weight,
	declaredValue kernel.Money,
	contents string,
	trackingNumber string,
	volumetricDivisor float64,
) (*Package, error) {
	p, err := NewPackage(id, dimensions, actualWeight, declaredValue, contents, volumetricDivisor)
	if err != nil {
		return nil, err
	}
	p.trackingNumber = trackingNumber
	return p, nil
}

// Validate ensures the Package was created through a constructor.
func (p *Package) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPackageIsNotConstructed
	}
	return nil
}

// UpdatePhysical replaces dimensions and actual weight, recomputing the
// derived weights in the same step.
func (p *Package) UpdatePhysical(dimensions kernel.Dimensions, actualWeight kernel.Weight, volumetricDivisor float64) error {
	dimensional, billable, err := kernel.BillableWeight(dimensions, actualWeight, volumetricDivisor)
	if err != nil {
		return err
	}

	p.dimensions = dimensions
	p.actualWeight = actualWeight
	p.dimensionalWeight = dimensional
	p.billableWeight = billable
	return nil
}

// ID returns the package identifier.
func (p *Package) ID() kernel.UUID { return p.id }

// Dimensions returns the package's outer measurements.
func (p *Package) Dimensions() kernel.Dimensions { return p.dimensions }

// ActualWeight returns the scale weight.
func (p *Package) ActualWeight() kernel.Weight { return p.actualWeight }

// DeclaredValue returns the declared contents value.
func (p *Package) DeclaredValue() kernel.Money { return p.declaredValue }

// Contents returns the contents manifest text.
func (p *Package) Contents() string { return p.contents }

// DimensionalWeight returns the derived volume-based weight.
func (p *Package) DimensionalWeight() kernel.Weight { return p.dimensionalWeight }

// BillableWeight returns the derived chargeable weight.
func (p *Package) BillableWeight() kernel.Weight { return p.billableWeight }

// TrackingNumber returns the package-level tracking number, empty before
// label generation.
func (p *Package) TrackingNumber() string { return p.trackingNumber }
