package services

import (
	"errors"
	"sort"
	"strings"

	"fulfillment/internal/core/domain/model/zone"
)

// ErrAddressNotServiceable is returned when no active zone matches the
// destination. This is the single hard failure mode of zone resolution.
var ErrAddressNotServiceable = errors.New("address is not serviceable")

// ZoneResolver is a domain service that matches a destination address to a
// delivery zone.
//
// Candidate zones are the active ones serving the destination country,
// examined in ascending priority order; the first whose postal rules accept
// the code wins. The sort is stable, so two zones with equal priority resolve
// in their given order and the outcome is deterministic for a fixed zone set.
type ZoneResolver struct{}

// NewZoneResolver creates a new ZoneResolver instance.
func NewZoneResolver() ZoneResolver {
	return ZoneResolver{}
}

// Resolve returns the first matching zone for the destination, or
// ErrAddressNotServiceable.
func (r ZoneResolver) Resolve(countryCode, postalCode string, zones []*zone.Zone) (*zone.Zone, error) {
	countryCode = strings.ToUpper(strings.TrimSpace(countryCode))
	postalCode = strings.ToUpper(strings.TrimSpace(postalCode))

	candidates := make([]*zone.Zone, 0, len(zones))
	for _, z := range zones {
		if err := z.Validate(); err != nil {
			return nil, err
		}
		if z.IsActive() && z.ServesCountry(countryCode) {
			candidates = append(candidates, z)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Priority() < candidates[j].Priority()
	})

	for _, z := range candidates {
		if z.MatchesPostalCode(postalCode) {
			return z, nil
		}
	}

	return nil, ErrAddressNotServiceable
}
