package zone_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/zone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePostalPattern(t *testing.T) {
	t.Run("exact pattern matches only the literal code", func(t *testing.T) {
		p, err := zone.ParsePostalPattern("75001")
		require.NoError(t, err)

		assert.True(t, p.Matches("75001"))
		assert.False(t, p.Matches("75002"))
		assert.False(t, p.Matches("7500"))
		assert.Equal(t, "75001", p.String())
	})

	t.Run("prefix pattern matches any code with the prefix", func(t *testing.T) {
		p, err := zone.ParsePostalPattern("75*")
		require.NoError(t, err)

		assert.True(t, p.Matches("75001"))
		assert.True(t, p.Matches("75"))
		assert.False(t, p.Matches("69001"))
		assert.Equal(t, "75*", p.String())
	})

	t.Run("bare wildcard matches everything", func(t *testing.T) {
		p, err := zone.ParsePostalPattern("*")
		require.NoError(t, err)

		assert.True(t, p.Matches("anything"))
		assert.True(t, p.Matches(""))
	})

	t.Run("range pattern uses inclusive lexicographic bounds", func(t *testing.T) {
		p, err := zone.ParsePostalPattern("10000-19999")
		require.NoError(t, err)

		assert.True(t, p.Matches("10000"))
		assert.True(t, p.Matches("15000"))
		assert.True(t, p.Matches("19999"))
		assert.False(t, p.Matches("09999"))
		assert.False(t, p.Matches("20000"))
		assert.Equal(t, "10000-19999", p.String())
	})

	t.Run("rejects malformed patterns", func(t *testing.T) {
		for _, literal := range []string{"", "  ", "10000-", "-19999", "1-2-3", "10*0*", "10-20*"} {
			_, err := zone.ParsePostalPattern(literal)
			require.Error(t, err, "literal %q", literal)
		}
	})

	t.Run("rejects ranges with reversed bounds", func(t *testing.T) {
		_, err := zone.ParsePostalPattern("19999-10000")
		require.Error(t, err)
	})
}

func TestParsePostalPatterns(t *testing.T) {
	t.Run("parses a mixed list", func(t *testing.T) {
		patterns, err := zone.ParsePostalPatterns([]string{"75001", "75*", "10000-19999"})
		require.NoError(t, err)
		require.Len(t, patterns, 3)
	})

	t.Run("fails on the first invalid literal", func(t *testing.T) {
		_, err := zone.ParsePostalPatterns([]string{"75001", ""})
		require.Error(t, err)
	})
}
