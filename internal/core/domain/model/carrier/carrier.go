// Package carrier contains the Carrier aggregate: a transport operator with
// capability flags and physical service limits that tariffs belong to.
package carrier

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrCarrierIsNotConstructed is returned when a Carrier instance was not
// created through NewCarrier or RestoreCarrier.
var ErrCarrierIsNotConstructed = errors.New("Carrier must be created via NewCarrier constructor")

// Capabilities are the feature flags of a carrier. A shipment option that
// needs a capability the carrier lacks is rejected at validation time.
type Capabilities struct {
	Tracking     bool
	Labels       bool
	Returns      bool
	PickupPoints bool
	Insurance    bool
}

// ServiceLimits bound what a carrier physically accepts. A zero limit means
// "no limit" for that measure.
type ServiceLimits struct {
	// MaxWeightKg bounds the billable weight of a whole shipment.
	MaxWeightKg float64
	// MaxLengthCm bounds the longest single side of any package.
	MaxLengthCm float64
	// MaxGirthCm bounds 2×(width+height) of any package.
	MaxGirthCm float64
}

// DeliveryDays is the standard delivery estimate range in business days.
type DeliveryDays struct {
	Min int
	Max int
}

// Carrier is the aggregate for a transport operator. Carriers are soft-
// deactivated, never hard-deleted, because shipments keep referencing them.
type Carrier struct {
	id       kernel.UUID
	tenantID kernel.TenantID

	code         string
	name         string
	capabilities Capabilities
	limits       ServiceLimits
	deliveryDays DeliveryDays
	active       bool
	version      int64

	isConstructed bool
}

// NewCarrier creates an active Carrier.
func NewCarrier(
	id kernel.UUID,
	tenantID kernel.TenantID,
	code string,
	name string,
	capabilities Capabilities,
	limits ServiceLimits,
	deliveryDays DeliveryDays,
) (*Carrier, error) {
	c := &Carrier{
		active:        true,
		isConstructed: true,
	}

	if err := errors.Join(
		c.setID(id),
		c.setTenantID(tenantID),
		c.setCode(code),
		c.setName(name),
		c.setLimits(limits),
		c.setDeliveryDays(deliveryDays),
	); err != nil {
		return nil, err
	}

	c.capabilities = capabilities
	return c, nil
}

// RestoreCarrier reconstructs a Carrier from persistence.
func RestoreCarrier(
	id kernel.UUID,
	tenantID kernel.TenantID,
	code string,
	name string,
	capabilities Capabilities,
	limits ServiceLimits,
	deliveryDays DeliveryDays,
	active bool,
	version int64,
) (*Carrier, error) {
	c, err := NewCarrier(id, tenantID, code, name, capabilities, limits, deliveryDays)
	if err != nil {
		return nil, err
	}

	c.active = active
	c.version = version
	return c, nil
}

// Validate ensures the Carrier was created through a constructor.
func (c *Carrier) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCarrierIsNotConstructed
	}
	return nil
}

// ID returns the carrier's unique identifier.
func (c *Carrier) ID() kernel.UUID { return c.id }

// TenantID returns the owning tenant.
func (c *Carrier) TenantID() kernel.TenantID { return c.tenantID }

// Code returns the operator-facing unique carrier code.
func (c *Carrier) Code() string { return c.code }

// Name returns the display name.
func (c *Carrier) Name() string { return c.name }

// Capabilities returns the carrier's feature flags.
func (c *Carrier) Capabilities() Capabilities { return c.capabilities }

// Limits returns the carrier's physical service limits.
func (c *Carrier) Limits() ServiceLimits { return c.limits }

// DeliveryDays returns the standard delivery estimate range.
func (c *Carrier) DeliveryDays() DeliveryDays { return c.deliveryDays }

// IsActive reports whether the carrier accepts new shipments.
func (c *Carrier) IsActive() bool { return c.active }

// Version returns the optimistic-concurrency version counter.
func (c *Carrier) Version() int64 { return c.version }

// AcceptsWeight reports whether a total billable weight is within the
// carrier's weight limit. A zero limit accepts any weight.
func (c *Carrier) AcceptsWeight(billable kernel.Weight) bool {
	return c.limits.MaxWeightKg == 0 || billable.Kg() <= c.limits.MaxWeightKg
}

// AcceptsDimensions reports whether a package's measurements are within the
// carrier's linear and girth limits. Zero limits accept any size.
func (c *Carrier) AcceptsDimensions(dims kernel.Dimensions) bool {
	if c.limits.MaxLengthCm != 0 && dims.Longest() > c.limits.MaxLengthCm {
		return false
	}
	if c.limits.MaxGirthCm != 0 && dims.Girth() > c.limits.MaxGirthCm {
		return false
	}
	return true
}

// Update replaces the operator-editable attributes; setting active true
// restores a deactivated carrier.
func (c *Carrier) Update(
	name string,
	capabilities Capabilities,
	limits ServiceLimits,
	deliveryDays DeliveryDays,
	active bool,
) error {
	if err := c.Validate(); err != nil {
		return err
	}

	if err := errors.Join(
		c.setName(name),
		c.setLimits(limits),
		c.setDeliveryDays(deliveryDays),
	); err != nil {
		return err
	}

	c.capabilities = capabilities
	c.active = active
	return nil
}

// Deactivate soft-deletes the carrier. The referential guard against
// shipments is the caller's concern.
func (c *Carrier) Deactivate() {
	c.active = false
}

func (c *Carrier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Carrier) setTenantID(tenantID kernel.TenantID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}
	c.tenantID = tenantID
	return nil
}

func (c *Carrier) setCode(code string) error {
	if strings.TrimSpace(code) == "" {
		return errs.NewValueIsRequiredError("carrier code")
	}
	c.code = strings.TrimSpace(code)
	return nil
}

func (c *Carrier) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("carrier name")
	}
	c.name = strings.TrimSpace(name)
	return nil
}

func (c *Carrier) setLimits(limits ServiceLimits) error {
	for name, v := range map[string]float64{
		"maxWeightKg": limits.MaxWeightKg,
		"maxLengthCm": limits.MaxLengthCm,
		"maxGirthCm":  limits.MaxGirthCm,
	} {
		if v < 0 {
			return errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%v is negative", v))
		}
	}
	c.limits = limits
	return nil
}

func (c *Carrier) setDeliveryDays(days DeliveryDays) error {
	if days.Min < 0 || days.Max < 0 {
		return errs.NewValueIsInvalidError("deliveryDays")
	}
	if days.Max < days.Min {
		return errs.NewValueIsInvalidErrorWithCause("deliveryDays",
			fmt.Errorf("max %d is below min %d", days.Max, days.Min))
	}
	c.deliveryDays = days
	return nil
}
