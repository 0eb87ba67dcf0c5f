package roi_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/heatwatch/heat-island-api-poc/internal/raster"
	"github.com/heatwatch/heat-island-api-poc/internal/roi"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square(minX, minY, maxX, maxY float64) orb.Polygon {
	return orb.Polygon{orb.Ring{
		{minX, minY}, {maxX, minY}, {maxX, maxY}, {minX, maxY}, {minX, minY},
	}}
}

func TestNew_RejectsZeroArea(t *testing.T) {
	degenerate := orb.Polygon{orb.Ring{{0, 0}, {1, 1}, {0, 0}}}

	_, err := roi.New("broken", degenerate)
	assert.ErrorIs(t, err, raster.ErrGeometry)
}

func TestNew_RejectsNonPolygon(t *testing.T) {
	_, err := roi.New("point", orb.Point{1, 2})
	assert.ErrorIs(t, err, raster.ErrGeometry)
}

func TestContains(t *testing.T) {
	region, err := roi.New("town", square(-93, 17, -92, 18))
	require.NoError(t, err)

	assert.True(t, region.Contains(orb.Point{-92.5, 17.5}))
	assert.False(t, region.Contains(orb.Point{-91, 17.5}))
}

func TestFootprint(t *testing.T) {
	// A 4x4 grid of 0.1 degree pixels from (-93, 18) going south; the
	// region covers the northwest 2x2 pixel block.
	gt := raster.GeoTransform{-93, 0.1, 0, 18, 0, -0.1}
	region, err := roi.New("block", square(-93, 17.8, -92.8, 18))
	require.NoError(t, err)

	inside := region.Footprint(gt, 4, 4)

	wantCount := 0
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			want := row < 2 && col < 2
			assert.Equal(t, want, inside[row*4+col], "pixel (%d,%d)", col, row)
			if want {
				wantCount++
			}
		}
	}
	assert.Equal(t, 4, wantCount)
}

func TestLoadLocality(t *testing.T) {
	path := filepath.Join(t.TempDir(), "localities.geojson")
	data := `{
		"type": "FeatureCollection",
		"features": [
			{"type": "Feature", "properties": {"NOMGEO": "Teapa"},
			 "geometry": {"type": "Polygon", "coordinates": [[[-93, 17.5], [-92.9, 17.5], [-92.9, 17.6], [-93, 17.6], [-93, 17.5]]]}},
			{"type": "Feature", "properties": {"NOMGEO": "Empty"},
			 "geometry": {"type": "Polygon", "coordinates": [[[0, 0], [0, 0], [0, 0], [0, 0]]]}}
		]
	}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	region, err := roi.LoadLocality(path, "NOMGEO", "Teapa")
	require.NoError(t, err)
	assert.Equal(t, "Teapa", region.Name)
	assert.True(t, region.Contains(orb.Point{-92.95, 17.55}))

	// A degenerate feature is an error, not a silent zero.
	_, err = roi.LoadLocality(path, "NOMGEO", "Empty")
	assert.ErrorIs(t, err, raster.ErrGeometry)

	_, err = roi.LoadLocality(path, "NOMGEO", "Nowhere")
	assert.Error(t, err)

	names, err := roi.ListLocalities(path, "NOMGEO")
	require.NoError(t, err)
	assert.Equal(t, []string{"Teapa", "Empty"}, names)
}
