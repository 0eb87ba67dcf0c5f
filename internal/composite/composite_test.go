package composite_test

import (
	"testing"
	"time"

	"github.com/heatwatch/heat-island-api-poc/internal/composite"
	"github.com/heatwatch/heat-island-api-poc/internal/raster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var gt = raster.GeoTransform{-93.0, 0.01, 0, 18.0, 0, -0.01}

func newScene(t *testing.T, day int, thermal []float64, valid []bool) *raster.Scene {
	t.Helper()
	acquired := time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC)
	s, err := raster.NewScene(2, 2, gt, true, acquired, 0,
		map[string][]float64{"ST_B10": thermal}, valid)
	require.NoError(t, err)
	return s
}

func TestReduce_MedianOfThreeScenes(t *testing.T) {
	scenes := []*raster.Scene{
		newScene(t, 1, []float64{10, 20, 30, 40}, nil),
		newScene(t, 2, []float64{12, 18, 29, 41}, nil),
		newScene(t, 3, []float64{11, 22, 31, 39}, nil),
	}

	comp, err := composite.Reduce(scenes, composite.Options{Percentile: 50, TagBands: true})
	require.NoError(t, err)

	assert.Equal(t, "p50", comp.Reducer)
	band, err := comp.Band("ST_B10_p50")
	require.NoError(t, err)
	assert.Equal(t, []float64{11, 20, 30, 40}, band)
	for i := 0; i < 4; i++ {
		assert.True(t, comp.Valid[i])
	}
}

func TestReduce_EmptyStack(t *testing.T) {
	_, err := composite.Reduce(nil, composite.Options{Percentile: 50})
	assert.ErrorIs(t, err, raster.ErrEmptyInput)
}

func TestReduce_UnevenValidity(t *testing.T) {
	// Pixel 0 has one reading, pixel 1 has two, pixel 2 has none,
	// pixel 3 has three.
	scenes := []*raster.Scene{
		newScene(t, 1, []float64{5, 10, 99, 1}, []bool{true, true, false, true}),
		newScene(t, 2, []float64{99, 20, 99, 2}, []bool{false, true, false, true}),
		newScene(t, 3, []float64{99, 99, 99, 3}, []bool{false, false, false, true}),
	}

	comp, err := composite.Reduce(scenes, composite.Options{Percentile: 50, TagBands: true})
	require.NoError(t, err)

	band, err := comp.Band("ST_B10_p50")
	require.NoError(t, err)
	assert.Equal(t, 5.0, band[0])
	assert.Equal(t, 15.0, band[1])
	assert.Equal(t, 2.0, band[3])

	// No valid reading anywhere means an invalid pixel, not a zero.
	assert.False(t, comp.Valid[2])
	assert.True(t, comp.Valid[0])
}

func TestReduce_PercentileBetweenMinAndMax(t *testing.T) {
	scenes := []*raster.Scene{
		newScene(t, 1, []float64{3, 8, 1, 4}, nil),
		newScene(t, 2, []float64{7, 2, 9, 6}, nil),
		newScene(t, 3, []float64{5, 5, 5, 5}, nil),
	}

	for _, pct := range []float64{0, 25, 50, 75, 90, 100} {
		comp, err := composite.Reduce(scenes, composite.Options{Percentile: pct})
		require.NoError(t, err)
		band, err := comp.Band("ST_B10")
		require.NoError(t, err)
		for i := range band {
			lo, hi := 1e300, -1e300
			for _, s := range scenes {
				v := s.Bands["ST_B10"][i]
				if v < lo {
					lo = v
				}
				if v > hi {
					hi = v
				}
			}
			assert.GreaterOrEqual(t, band[i], lo)
			assert.LessOrEqual(t, band[i], hi)
		}
	}
}

func TestReduce_UntaggedBandsKeepNames(t *testing.T) {
	comp, err := composite.Reduce([]*raster.Scene{
		newScene(t, 1, []float64{1, 2, 3, 4}, nil),
	}, composite.Options{Percentile: 50})
	require.NoError(t, err)

	_, err = comp.Band("ST_B10")
	assert.NoError(t, err)
}

func TestReduce_FractionalPercentileTag(t *testing.T) {
	comp, err := composite.Reduce([]*raster.Scene{
		newScene(t, 1, []float64{1, 2, 3, 4}, nil),
	}, composite.Options{Percentile: 97.5, TagBands: true})
	require.NoError(t, err)

	_, err = comp.Band("ST_B10_p97_5")
	assert.NoError(t, err)
}

func TestReduce_GridMismatch(t *testing.T) {
	small, err := raster.NewScene(1, 1, gt, true, time.Now(), 0,
		map[string][]float64{"ST_B10": {1}}, nil)
	require.NoError(t, err)

	_, err = composite.Reduce([]*raster.Scene{
		newScene(t, 1, []float64{1, 2, 3, 4}, nil),
		small,
	}, composite.Options{Percentile: 50})
	assert.Error(t, err)
}

func TestReduce_MissingBand(t *testing.T) {
	other, err := raster.NewScene(2, 2, gt, true, time.Now(), 0,
		map[string][]float64{"QA_PIXEL": {0, 0, 0, 0}}, nil)
	require.NoError(t, err)

	_, err = composite.Reduce([]*raster.Scene{
		newScene(t, 1, []float64{1, 2, 3, 4}, nil),
		other,
	}, composite.Options{Percentile: 50})

	var bandErr *raster.BandMismatchError
	require.ErrorAs(t, err, &bandErr)
	assert.Equal(t, "ST_B10", bandErr.Band)
}
