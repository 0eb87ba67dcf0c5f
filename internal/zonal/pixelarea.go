package zonal

import (
	"math"

	"github.com/heatwatch/heat-island-api-poc/internal/raster"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// pixelArea returns the geographic area in square meters of one pixel in
// the given row. For projected rasters the pixel footprint is constant;
// for geographic rasters it shrinks with latitude, so the first pixel of
// the row is measured on the WGS84 ellipsoid. Rows share one area because
// north-up transforms keep a row at constant latitude.
func pixelArea(gt raster.GeoTransform, geographic bool, row int) float64 {
	if !geographic {
		return math.Abs(gt[1] * gt[5])
	}
	x0, y0 := gt.Apply(0, float64(row))
	x1, y1 := gt.Apply(1, float64(row+1))
	ring := orb.Ring{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}, {x0, y0}}
	return math.Abs(geo.Area(orb.Polygon{ring}))
}
