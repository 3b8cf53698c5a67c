package kernel_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWeight(t *testing.T) {
	t.Run("accepts non-negative values", func(t *testing.T) {
		w, err := kernel.NewWeight(1.5)
		require.NoError(t, err)
		assert.InDelta(t, 1.5, w.Kg(), 1e-9)
	})

	t.Run("accepts zero", func(t *testing.T) {
		w, err := kernel.NewWeight(0)
		require.NoError(t, err)
		assert.True(t, w.IsZero())
	})

	t.Run("rejects negative values", func(t *testing.T) {
		_, err := kernel.NewWeight(-0.1)
		require.Error(t, err)
	})
}

func TestWeight_Max(t *testing.T) {
	light, _ := kernel.NewWeight(0.6)
	heavy, _ := kernel.NewWeight(1.5)

	assert.InDelta(t, 1.5, light.Max(heavy).Kg(), 1e-9)
	assert.InDelta(t, 1.5, heavy.Max(light).Kg(), 1e-9)
}

func TestNewDimensions(t *testing.T) {
	t.Run("computes volume, longest side and girth", func(t *testing.T) {
		d, err := kernel.NewDimensions(20, 15, 10)
		require.NoError(t, err)

		assert.InDelta(t, 3000.0, d.Volume(), 1e-9)
		assert.InDelta(t, 20.0, d.Longest(), 1e-9)
		assert.InDelta(t, 50.0, d.Girth(), 1e-9)
	})

	t.Run("rejects negative sides", func(t *testing.T) {
		_, err := kernel.NewDimensions(20, -1, 10)
		require.Error(t, err)
	})

	t.Run("zero value has zero volume", func(t *testing.T) {
		var d kernel.Dimensions
		assert.InDelta(t, 0.0, d.Volume(), 1e-9)
	})
}

func TestBillableWeight(t *testing.T) {
	t.Run("actual weight wins when dimensional is lighter", func(t *testing.T) {
		// 20×15×10 / 5000 = 0.6 kg dimensional against 1.5 kg actual.
		dims, _ := kernel.NewDimensions(20, 15, 10)
		actual, _ := kernel.NewWeight(1.5)

		dimensional, billable, err := kernel.BillableWeight(dims, actual, kernel.DefaultVolumetricDivisor)
		require.NoError(t, err)
		assert.InDelta(t, 0.6, dimensional.Kg(), 1e-9)
		assert.InDelta(t, 1.5, billable.Kg(), 1e-9)
	})

	t.Run("dimensional weight wins for bulky packages", func(t *testing.T) {
		dims, _ := kernel.NewDimensions(50, 50, 50)
		actual, _ := kernel.NewWeight(2)

		dimensional, billable, err := kernel.BillableWeight(dims, actual, 5000)
		require.NoError(t, err)
		assert.InDelta(t, 25.0, dimensional.Kg(), 1e-9)
		assert.InDelta(t, 25.0, billable.Kg(), 1e-9)
	})

	t.Run("missing dimensions fall back to actual weight", func(t *testing.T) {
		var dims kernel.Dimensions
		actual, _ := kernel.NewWeight(3.2)

		dimensional, billable, err := kernel.BillableWeight(dims, actual, 5000)
		require.NoError(t, err)
		assert.True(t, dimensional.IsZero())
		assert.InDelta(t, 3.2, billable.Kg(), 1e-9)
	})

	t.Run("rejects non-positive divisor", func(t *testing.T) {
		actual, _ := kernel.NewWeight(1)
		_, _, err := kernel.BillableWeight(kernel.Dimensions{}, actual, 0)
		require.Error(t, err)
	})

	t.Run("max property holds across inputs", func(t *testing.T) {
		cases := []struct {
			l, w, h, actual float64
		}{
			{0, 0, 0, 0},
			{10, 10, 10, 0.1},
			{10, 10, 10, 5},
			{100, 40, 40, 10},
			{1, 1, 1, 0},
		}
		for _, tc := range cases {
			dims, err := kernel.NewDimensions(tc.l, tc.w, tc.h)
			require.NoError(t, err)
			actual, err := kernel.NewWeight(tc.actual)
			require.NoError(t, err)

			dimensional, billable, err := kernel.BillableWeight(dims, actual, 5000)
			require.NoError(t, err)
			assert.InDelta(t, (tc.l*tc.w*tc.h)/5000, dimensional.Kg(), 1e-9)
			assert.InDelta(t, actual.Max(dimensional).Kg(), billable.Kg(), 1e-9)
		}
	})
}
