package shipment

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// ErrAddressIsNotConstructed indicates a zero-value Address.
var ErrAddressIsNotConstructed = errors.New("Address must be created via NewAddress constructor")

// Address is a postal address snapshot. Shipments freeze origin and
// destination at creation; later edits to whatever address book the caller
// keeps never reach an existing shipment.
type Address struct {
	name        string
	street      string
	city        string
	postalCode  string
	countryCode string
	residential bool

	isConstructed bool
}

// NewAddress creates a validated address snapshot. Name is optional; street,
// city, postal code and an ISO alpha-2 country code are required.
func NewAddress(name, street, city, postalCode, countryCode string, residential bool) (Address, error) {
	a := Address{
		name:        strings.TrimSpace(name),
		street:      strings.TrimSpace(street),
		city:        strings.TrimSpace(city),
		postalCode:  strings.ToUpper(strings.TrimSpace(postalCode)),
		countryCode: strings.ToUpper(strings.TrimSpace(countryCode)),
		residential: residential,

		isConstructed: true,
	}

	if a.street == "" {
		return Address{}, errs.NewValueIsRequiredError("street")
	}
	if a.city == "" {
		return Address{}, errs.NewValueIsRequiredError("city")
	}
	if a.postalCode == "" {
		return Address{}, errs.NewValueIsRequiredError("postalCode")
	}
	if len(a.countryCode) != 2 ||
		a.countryCode[0] < 'A' || a.countryCode[0] > 'Z' ||
		a.countryCode[1] < 'A' || a.countryCode[1] > 'Z' {
		return Address{}, errs.NewValueIsInvalidErrorWithCause("countryCode",
			fmt.Errorf("%q is not an ISO alpha-2 country code", countryCode))
	}

	return a, nil
}

// Validate returns ErrAddressIsNotConstructed for the zero value.
func (a Address) Validate() error {
	if !a.isConstructed {
		return ErrAddressIsNotConstructed
	}
	return nil
}

// Name returns the addressee name, possibly empty.
func (a Address) Name() string { return a.name }

// Street returns the street line.
func (a Address) Street() string { return a.street }

// City returns the city.
func (a Address) City() string { return a.city }

// PostalCode returns the normalized postal code.
func (a Address) PostalCode() string { return a.postalCode }

// CountryCode returns the uppercase ISO alpha-2 country code.
func (a Address) CountryCode() string { return a.countryCode }

// IsResidential reports whether the address is a residential destination.
func (a Address) IsResidential() bool { return a.residential }
