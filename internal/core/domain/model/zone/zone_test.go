package zone_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/zone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestZone(t *testing.T, allow, deny []string) *zone.Zone {
	t.Helper()
	z, err := zone.NewZone(
		kernel.NewUUID(),
		kernel.NewTenantID(),
		"FR-METRO",
		"France métropolitaine",
		[]string{"FR"},
		allow,
		deny,
		10,
	)
	require.NoError(t, err)
	return z
}

func TestNewZone(t *testing.T) {
	t.Run("creates an active zone with normalized countries", func(t *testing.T) {
		z, err := zone.NewZone(
			kernel.NewUUID(), kernel.NewTenantID(),
			"EU-WEST", "Western Europe",
			[]string{"fr", " de ", "BE"},
			nil, nil, 5,
		)
		require.NoError(t, err)

		assert.True(t, z.IsActive())
		assert.Equal(t, []string{"FR", "DE", "BE"}, z.Countries())
		assert.Equal(t, int64(0), z.Version())
	})

	t.Run("requires at least one country", func(t *testing.T) {
		_, err := zone.NewZone(kernel.NewUUID(), kernel.NewTenantID(), "X", "X", nil, nil, nil, 0)
		require.Error(t, err)
	})

	t.Run("rejects malformed country codes", func(t *testing.T) {
		_, err := zone.NewZone(kernel.NewUUID(), kernel.NewTenantID(), "X", "X",
			[]string{"FRA"}, nil, nil, 0)
		require.Error(t, err)
	})

	t.Run("rejects malformed patterns at creation", func(t *testing.T) {
		_, err := zone.NewZone(kernel.NewUUID(), kernel.NewTenantID(), "X", "X",
			[]string{"FR"}, []string{"75001", ""}, nil, 0)
		require.Error(t, err)
	})

	t.Run("rejects negative priority", func(t *testing.T) {
		_, err := zone.NewZone(kernel.NewUUID(), kernel.NewTenantID(), "X", "X",
			[]string{"FR"}, nil, nil, -1)
		require.Error(t, err)
	})

	t.Run("requires constructor", func(t *testing.T) {
		var z zone.Zone
		require.ErrorIs(t, z.Validate(), zone.ErrZoneIsNotConstructed)
	})
}

func TestZone_ServesCountry(t *testing.T) {
	z := newTestZone(t, nil, nil)

	assert.True(t, z.ServesCountry("FR"))
	assert.True(t, z.ServesCountry("fr"))
	assert.True(t, z.ServesCountry(" FR "))
	assert.False(t, z.ServesCountry("DE"))
}

func TestZone_MatchesPostalCode(t *testing.T) {
	t.Run("empty allow-list matches everything except exclusions", func(t *testing.T) {
		z := newTestZone(t, nil, []string{"97*", "98*"})

		assert.True(t, z.MatchesPostalCode("75001"))
		assert.True(t, z.MatchesPostalCode("69001"))
		assert.False(t, z.MatchesPostalCode("97400"))
		assert.False(t, z.MatchesPostalCode("98000"))
	})

	t.Run("non-empty allow-list restricts matches", func(t *testing.T) {
		z := newTestZone(t, []string{"75*", "10000-19999"}, nil)

		assert.True(t, z.MatchesPostalCode("75001"))
		assert.True(t, z.MatchesPostalCode("15000"))
		assert.False(t, z.MatchesPostalCode("69001"))
	})

	t.Run("exclusion wins over a matching allow pattern", func(t *testing.T) {
		z := newTestZone(t, []string{"75*"}, []string{"75001"})

		assert.False(t, z.MatchesPostalCode("75001"))
		assert.True(t, z.MatchesPostalCode("75002"))
	})

	t.Run("matching is deterministic across runs", func(t *testing.T) {
		z := newTestZone(t, []string{"75*"}, []string{"75008"})
		for i := 0; i < 100; i++ {
			assert.True(t, z.MatchesPostalCode("75001"))
			assert.False(t, z.MatchesPostalCode("75008"))
		}
	})
}

func TestZone_Update(t *testing.T) {
	z := newTestZone(t, nil, nil)
	z.Deactivate()
	require.False(t, z.IsActive())

	err := z.Update("Renamed", []string{"FR", "MC"}, []string{"06*"}, nil, 3, true)
	require.NoError(t, err)

	assert.Equal(t, "Renamed", z.Name())
	assert.Equal(t, []string{"FR", "MC"}, z.Countries())
	assert.Equal(t, []string{"06*"}, z.AllowPatterns())
	assert.Equal(t, 3, z.Priority())
	assert.True(t, z.IsActive(), "update restores a deactivated zone")
}
