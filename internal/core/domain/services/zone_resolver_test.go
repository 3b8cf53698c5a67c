package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/zone"
	"fulfillment/internal/core/domain/services"
)

func newZone(t *testing.T, tenantID kernel.TenantID, code string, countries, allow, deny []string, priority int) *zone.Zone {
	t.Helper()
	z, err := zone.NewZone(kernel.NewUUID(), tenantID, code, "zone "+code, countries, allow, deny, priority)
	require.NoError(t, err)
	return z
}

func TestZoneResolver_Resolve(t *testing.T) {
	tenantID := kernel.NewTenantID()
	resolver := services.NewZoneResolver()

	t.Run("should return first match in priority order", func(t *testing.T) {
		metro := newZone(t, tenantID, "fr-metro", []string{"FR"}, nil, []string{"97*", "98*"}, 10)
		domtom := newZone(t, tenantID, "fr-domtom", []string{"FR"}, []string{"97*", "98*"}, nil, 20)

		resolved, err := resolver.Resolve("FR", "75001", []*zone.Zone{domtom, metro})
		require.NoError(t, err)
		assert.Equal(t, "fr-metro", resolved.Code())

		resolved, err = resolver.Resolve("FR", "97400", []*zone.Zone{domtom, metro})
		require.NoError(t, err)
		assert.Equal(t, "fr-domtom", resolved.Code())
	})

	t.Run("should skip zones for other countries", func(t *testing.T) {
		de := newZone(t, tenantID, "de", []string{"DE"}, nil, nil, 1)
		fr := newZone(t, tenantID, "fr", []string{"FR"}, nil, nil, 2)

		resolved, err := resolver.Resolve("fr", "75001", []*zone.Zone{de, fr})
		require.NoError(t, err)
		assert.Equal(t, "fr", resolved.Code())
	})

	t.Run("should skip inactive zones", func(t *testing.T) {
		z := newZone(t, tenantID, "fr", []string{"FR"}, nil, nil, 1)
		z.Deactivate()

		_, err := resolver.Resolve("FR", "75001", []*zone.Zone{z})
		assert.ErrorIs(t, err, services.ErrAddressNotServiceable)
	})

	t.Run("should fail when no zone matches", func(t *testing.T) {
		corsica := newZone(t, tenantID, "fr-corsica", []string{"FR"}, []string{"20000-20999"}, nil, 1)

		_, err := resolver.Resolve("FR", "75001", []*zone.Zone{corsica})
		assert.ErrorIs(t, err, services.ErrAddressNotServiceable)
	})

	t.Run("should be deterministic across runs", func(t *testing.T) {
		a := newZone(t, tenantID, "a", []string{"FR"}, nil, nil, 5)
		b := newZone(t, tenantID, "b", []string{"FR"}, nil, nil, 5)
		zones := []*zone.Zone{a, b}

		for range 50 {
			resolved, err := resolver.Resolve("FR", "31000", zones)
			require.NoError(t, err)
			// Equal priorities keep the given order, stably.
			assert.Equal(t, "a", resolved.Code())
		}
	})
}
