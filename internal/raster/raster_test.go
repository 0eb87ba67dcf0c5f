package raster_test

import (
	"testing"
	"time"

	"github.com/heatwatch/heat-island-api-poc/internal/raster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testGT = raster.GeoTransform{-93.0, 0.01, 0, 18.0, 0, -0.01}

func TestNewScene_AllValidByDefault(t *testing.T) {
	s, err := raster.NewScene(2, 2, testGT, true, time.Now(), 10,
		map[string][]float64{"ST_B10": {1, 2, 3, 4}}, nil)
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		assert.True(t, s.Valid[i])
	}
}

func TestNewScene_BandGridMismatch(t *testing.T) {
	_, err := raster.NewScene(2, 2, testGT, true, time.Now(), 10,
		map[string][]float64{"ST_B10": {1, 2, 3}}, nil)
	require.Error(t, err)

	var bandErr *raster.BandMismatchError
	require.ErrorAs(t, err, &bandErr)
	assert.Equal(t, "ST_B10", bandErr.Band)
}

func TestScene_BandMissing(t *testing.T) {
	s, err := raster.NewScene(1, 1, testGT, true, time.Now(), 0,
		map[string][]float64{"ST_B10": {1}}, nil)
	require.NoError(t, err)

	_, err = s.Band("QA_PIXEL")
	var bandErr *raster.BandMismatchError
	require.ErrorAs(t, err, &bandErr)
}

func TestScene_WithValidityDoesNotMutate(t *testing.T) {
	s, err := raster.NewScene(2, 1, testGT, true, time.Now(), 0,
		map[string][]float64{"ST_B10": {1, 2}}, []bool{true, true})
	require.NoError(t, err)

	narrowed := s.WithValidity([]bool{true, false})
	assert.True(t, s.Valid[1])
	assert.False(t, narrowed.Valid[1])
	// Band data is shared, not copied.
	assert.Equal(t, s.Bands["ST_B10"], narrowed.Bands["ST_B10"])
}

func TestGeoTransform_Apply(t *testing.T) {
	x, y := testGT.Apply(0.5, 0.5)
	assert.InDelta(t, -92.995, x, 1e-9)
	assert.InDelta(t, 17.995, y, 1e-9)

	col, row := testGT.PixelAt(x, y)
	assert.Equal(t, 0, col)
	assert.Equal(t, 0, row)
}

func TestGeoTransform_PixelOfInvertsApply(t *testing.T) {
	x, y := testGT.Apply(3.25, 7.75)
	col, row := testGT.PixelOf(x, y)
	assert.InDelta(t, 3.25, col, 1e-9)
	assert.InDelta(t, 7.75, row, 1e-9)
}

func TestGeoTransform_PixelAtFloorsOutsideOrigin(t *testing.T) {
	// A coordinate half a pixel left of and above the origin lands in
	// pixel (-1, -1), not pixel (0, 0).
	x, y := testGT.Apply(-0.5, -0.5)
	col, row := testGT.PixelAt(x, y)
	assert.Equal(t, -1, col)
	assert.Equal(t, -1, row)
}

func TestMask_Count(t *testing.T) {
	m := &raster.Mask{Width: 2, Height: 2, Set: []bool{true, false, true, false}}
	assert.Equal(t, 2, m.Count())
}
