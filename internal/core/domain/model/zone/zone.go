// Package zone contains the delivery zone aggregate: a named group of
// destination countries and postal-code patterns that tariffs are scoped to.
package zone

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrZoneIsNotConstructed is returned when a Zone instance was not created
// through NewZone or RestoreZone.
var ErrZoneIsNotConstructed = errors.New("Zone must be created via NewZone constructor")

// Zone is the aggregate describing a serviced delivery area.
//
// Matching semantics, in order:
//   - the destination country must be in the zone's country list
//   - an empty allow-list matches every postal code of those countries,
//     except codes matching an exclusion pattern
//   - a non-empty allow-list restricts matches to codes matching at least one
//     allow pattern, still subject to exclusions
//
// Exclusions always win over allows. Zones carry a sort priority; resolution
// across zones is the resolver's concern, in ascending priority order.
type Zone struct {
	id       kernel.UUID
	tenantID kernel.TenantID

	code      string
	name      string
	countries []string
	allow     []PostalPattern
	deny      []PostalPattern
	priority  int
	active    bool
	version   int64

	isConstructed bool
}

// NewZone creates a Zone from operator input. Pattern literals are parsed
// eagerly so a malformed pattern is rejected at creation, not at match time.
func NewZone(
	id kernel.UUID,
	tenantID kernel.TenantID,
	code string,
	name string,
	countries []string,
	allowLiterals []string,
	denyLiterals []string,
	priority int,
) (*Zone, error) {
	z := &Zone{
		active:        true,
		isConstructed: true,
	}

	if err := errors.Join(
		z.setID(id),
		z.setTenantID(tenantID),
		z.setCode(code),
		z.setName(name),
		z.setCountries(countries),
		z.setAllow(allowLiterals),
		z.setDeny(denyLiterals),
		z.setPriority(priority),
	); err != nil {
		return nil, err
	}

	return z, nil
}

// RestoreZone reconstructs a Zone from persistence, including its stored
// active flag and version counter.
func RestoreZone(
	id kernel.UUID,
	tenantID kernel.TenantID,
	code string,
	name string,
	countries []string,
	allowLiterals []string,
	denyLiterals []string,
	priority int,
	active bool,
	version int64,
) (*Zone, error) {
	z, err := NewZone(id, tenantID, code, name, countries, allowLiterals, denyLiterals, priority)
	if err != nil {
		return nil, err
	}

	z.active = active
	z.version = version
	return z, nil
}

// Validate ensures the Zone was created through a constructor.
func (z *Zone) Validate() error {
	if z == nil || !z.isConstructed {
		return ErrZoneIsNotConstructed
	}
	return nil
}

// ID returns the zone's unique identifier.
func (z *Zone) ID() kernel.UUID { return z.id }

// TenantID returns the owning tenant.
func (z *Zone) TenantID() kernel.TenantID { return z.tenantID }

// Code returns the operator-facing unique zone code.
func (z *Zone) Code() string { return z.code }

// Name returns the display name.
func (z *Zone) Name() string { return z.name }

// Countries returns the ISO country codes the zone serves.
func (z *Zone) Countries() []string {
	out := make([]string, len(z.countries))
	copy(out, z.countries)
	return out
}

// AllowPatterns returns the allow-list pattern literals.
func (z *Zone) AllowPatterns() []string { return patternLiterals(z.allow) }

// DenyPatterns returns the exclusion pattern literals.
func (z *Zone) DenyPatterns() []string { return patternLiterals(z.deny) }

// Priority returns the sort priority; lower resolves first.
func (z *Zone) Priority() int { return z.priority }

// IsActive reports whether the zone participates in resolution.
func (z *Zone) IsActive() bool { return z.active }

// Version returns the optimistic-concurrency version counter.
func (z *Zone) Version() int64 { return z.version }

// ServesCountry reports whether the destination country is in the zone's list.
// Comparison is case-insensitive on the ISO alpha-2 code.
func (z *Zone) ServesCountry(countryCode string) bool {
	normalized := strings.ToUpper(strings.TrimSpace(countryCode))
	for _, c := range z.countries {
		if c == normalized {
			return true
		}
	}
	return false
}

// MatchesPostalCode applies the allow/deny semantics to a postal code.
// Exclusions take precedence over allow patterns.
func (z *Zone) MatchesPostalCode(postalCode string) bool {
	code := strings.ToUpper(strings.TrimSpace(postalCode))

	if anyMatches(z.deny, code) {
		return false
	}
	if len(z.allow) == 0 {
		return true
	}
	return anyMatches(z.allow, code)
}

// Update replaces the operator-editable attributes and reactivates the zone if
// requested. The identifier, tenant and version are untouched; the repository
// bumps the version on a successful write.
func (z *Zone) Update(
	name string,
	countries []string,
	allowLiterals []string,
	denyLiterals []string,
	priority int,
	active bool,
) error {
	if err := z.Validate(); err != nil {
		return err
	}

	if err := errors.Join(
		z.setName(name),
		z.setCountries(countries),
		z.setAllow(allowLiterals),
		z.setDeny(denyLiterals),
		z.setPriority(priority),
	); err != nil {
		return err
	}

	z.active = active
	return nil
}

// Deactivate soft-deletes the zone. The referential guard against tariffs is
// the caller's concern; the aggregate only flips the flag.
func (z *Zone) Deactivate() {
	z.active = false
}

func (z *Zone) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	z.id = id
	return nil
}

func (z *Zone) setTenantID(tenantID kernel.TenantID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}
	z.tenantID = tenantID
	return nil
}

func (z *Zone) setCode(code string) error {
	if strings.TrimSpace(code) == "" {
		return errs.NewValueIsRequiredError("zone code")
	}
	z.code = strings.TrimSpace(code)
	return nil
}

func (z *Zone) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("zone name")
	}
	z.name = strings.TrimSpace(name)
	return nil
}

func (z *Zone) setCountries(countries []string) error {
	if len(countries) == 0 {
		return errs.NewValueIsRequiredError("countries")
	}

	normalized := make([]string, 0, len(countries))
	for _, c := range countries {
		code := strings.ToUpper(strings.TrimSpace(c))
		if len(code) != 2 || code[0] < 'A' || code[0] > 'Z' || code[1] < 'A' || code[1] > 'Z' {
			return errs.NewValueIsInvalidErrorWithCause("countries",
				fmt.Errorf("%q is not an ISO alpha-2 country code", c))
		}
		normalized = append(normalized, code)
	}

	z.countries = normalized
	return nil
}

func (z *Zone) setAllow(literals []string) error {
	patterns, err := ParsePostalPatterns(literals)
	if err != nil {
		return err
	}
	z.allow = patterns
	return nil
}

func (z *Zone) setDeny(literals []string) error {
	patterns, err := ParsePostalPatterns(literals)
	if err != nil {
		return err
	}
	z.deny = patterns
	return nil
}

func (z *Zone) setPriority(priority int) error {
	if priority < 0 {
		return errs.NewValueIsInvalidErrorWithCause("priority",
			fmt.Errorf("%d is negative", priority))
	}
	z.priority = priority
	return nil
}

func patternLiterals(patterns []PostalPattern) []string {
	out := make([]string, len(patterns))
	for i, p := range patterns {
		out[i] = p.String()
	}
	return out
}
