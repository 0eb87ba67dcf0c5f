package zonal_test

import (
	"math"
	"testing"

	"github.com/heatwatch/heat-island-api-poc/internal/raster"
	"github.com/heatwatch/heat-island-api-poc/internal/zonal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 30 m projected pixels.
var projectedGT = raster.GeoTransform{500000, 30, 0, 2000000, 0, -30}

func newRaster(width, height int, gt raster.GeoTransform, geographic bool, values []float64, valid []bool) *raster.Raster {
	if valid == nil {
		valid = make([]bool, len(values))
		for i := range valid {
			valid[i] = true
		}
	}
	return &raster.Raster{
		Width:        width,
		Height:       height,
		GeoTransform: gt,
		Geographic:   geographic,
		Bands:        map[string][]float64{"LST_Celsius": values},
		Valid:        valid,
	}
}

func allTrue(n int) []bool {
	region := make([]bool, n)
	for i := range region {
		region[i] = true
	}
	return region
}

func TestAggregate_BasicStats(t *testing.T) {
	r := newRaster(2, 2, projectedGT, false, []float64{10, 20, 30, 40}, nil)

	stats, err := zonal.Aggregate(r, "LST_Celsius", allTrue(4), nil, []float64{5, 50, 95})
	require.NoError(t, err)

	assert.Equal(t, 4, stats.Count)
	assert.InDelta(t, 25, stats.Mean, 1e-9)
	assert.Equal(t, 10.0, stats.Min)
	assert.Equal(t, 40.0, stats.Max)
	assert.InDelta(t, 25, stats.Percentiles["p50"], 1e-9)
	// Four 30x30 m pixels are 0.36 ha.
	assert.InDelta(t, 0.36, stats.AreaHa, 1e-9)
	assert.False(t, stats.Empty())
}

func TestAggregate_MaskRestriction(t *testing.T) {
	r := newRaster(2, 2, projectedGT, false, []float64{10, 20, 30, 40}, nil)
	m := &raster.Mask{Width: 2, Height: 2, GeoTransform: projectedGT, Set: []bool{false, false, true, true}}

	stats, err := zonal.Aggregate(r, "LST_Celsius", allTrue(4), m, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Count)
	assert.InDelta(t, 35, stats.Mean, 1e-9)
	assert.InDelta(t, 0.18, stats.AreaHa, 1e-9)
}

func TestAggregate_FullMaskEqualsNoMask(t *testing.T) {
	r := newRaster(2, 2, projectedGT, false, []float64{1, 2, 3, 4}, []bool{true, false, true, true})
	region := allTrue(4)

	// A mask covering exactly the valid footprint changes nothing.
	m := &raster.Mask{Width: 2, Height: 2, GeoTransform: projectedGT, Set: []bool{true, false, true, true}}

	withMask, err := zonal.Aggregate(r, "LST_Celsius", region, m, []float64{50})
	require.NoError(t, err)
	without, err := zonal.Aggregate(r, "LST_Celsius", region, nil, []float64{50})
	require.NoError(t, err)

	assert.Equal(t, without, withMask)
}

func TestAggregate_EmptyPopulationIsNotAnError(t *testing.T) {
	r := newRaster(2, 1, projectedGT, false, []float64{1, 2}, []bool{false, false})

	stats, err := zonal.Aggregate(r, "LST_Celsius", allTrue(2), nil, []float64{50})
	require.NoError(t, err)

	assert.True(t, stats.Empty())
	assert.Equal(t, 0, stats.Count)
	assert.True(t, math.IsNaN(stats.Mean))
	assert.True(t, math.IsNaN(stats.Min))
	assert.True(t, math.IsNaN(stats.Percentiles["p50"]))
	assert.Equal(t, 0.0, stats.AreaHa)
}

func TestAggregate_GeographicAreaShrinksWithLatitude(t *testing.T) {
	// Two one-pixel rasters of the same angular size, one near the
	// equator and one at 60 degrees north.
	equatorGT := raster.GeoTransform{-93, 0.0003, 0, 0.0, 0, -0.0003}
	northGT := raster.GeoTransform{-93, 0.0003, 0, 60.0, 0, -0.0003}

	equator, err := zonal.Aggregate(newRaster(1, 1, equatorGT, true, []float64{1}, nil), "LST_Celsius", allTrue(1), nil, nil)
	require.NoError(t, err)
	north, err := zonal.Aggregate(newRaster(1, 1, northGT, true, []float64{1}, nil), "LST_Celsius", allTrue(1), nil, nil)
	require.NoError(t, err)

	require.Greater(t, equator.AreaHa, 0.0)
	require.Greater(t, north.AreaHa, 0.0)
	// cos(60°) = 0.5: the high-latitude pixel covers about half the area.
	assert.InDelta(t, 0.5, north.AreaHa/equator.AreaHa, 0.02)
}

func TestAggregate_RegionSizeMismatch(t *testing.T) {
	r := newRaster(2, 1, projectedGT, false, []float64{1, 2}, nil)

	_, err := zonal.Aggregate(r, "LST_Celsius", allTrue(3), nil, nil)
	assert.Error(t, err)
}

func TestAggregate_MissingBand(t *testing.T) {
	r := newRaster(1, 1, projectedGT, false, []float64{1}, nil)

	_, err := zonal.Aggregate(r, "nope", allTrue(1), nil, nil)
	var bandErr *raster.BandMismatchError
	require.ErrorAs(t, err, &bandErr)
}
