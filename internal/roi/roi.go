package roi

import (
	"fmt"
	"os"

	"github.com/heatwatch/heat-island-api-poc/internal/raster"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

// ROI is the region of interest scoping an analysis: a polygon or
// multipolygon in the same coordinate reference system as the scenes.
type ROI struct {
	Name string

	geom orb.MultiPolygon
}

// New builds an ROI from a polygon or multipolygon geometry. Degenerate
// geometries (zero area) are rejected with raster.ErrGeometry.
func New(name string, geom orb.Geometry) (*ROI, error) {
	var mp orb.MultiPolygon
	switch g := geom.(type) {
	case orb.Polygon:
		mp = orb.MultiPolygon{g}
	case orb.MultiPolygon:
		mp = g
	default:
		return nil, fmt.Errorf("%w: geometry type %s is not a polygon", raster.ErrGeometry, geom.GeoJSONType())
	}
	if planar.Area(mp) == 0 {
		return nil, fmt.Errorf("%w: %s has zero area", raster.ErrGeometry, name)
	}
	return &ROI{Name: name, geom: mp}, nil
}

// LoadLocality reads a GeoJSON feature collection of locality polygons and
// returns the ROI of the feature whose nameProperty matches name.
func LoadLocality(path, nameProperty, name string) (*ROI, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read localities file: %w", err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse localities file %s: %w", path, err)
	}
	for _, feature := range fc.Features {
		if v, ok := feature.Properties[nameProperty].(string); ok && v == name {
			return New(name, feature.Geometry)
		}
	}
	return nil, fmt.Errorf("locality %q not found in %s", name, path)
}

// ListLocalities returns the nameProperty value of every feature in a
// localities file, in file order.
func ListLocalities(path, nameProperty string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read localities file: %w", err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse localities file %s: %w", path, err)
	}
	var names []string
	for _, feature := range fc.Features {
		if v, ok := feature.Properties[nameProperty].(string); ok {
			names = append(names, v)
		}
	}
	return names, nil
}

// Geometry returns the region geometry.
func (r *ROI) Geometry() orb.MultiPolygon {
	return r.geom
}

// Bound returns the bounding box of the region.
func (r *ROI) Bound() orb.Bound {
	return r.geom.Bound()
}

// Centroid returns the area-weighted centroid of the region.
func (r *ROI) Centroid() orb.Point {
	center, _ := planar.CentroidArea(r.geom)
	return center
}

// Contains reports whether the point lies inside the region.
func (r *ROI) Contains(p orb.Point) bool {
	return planar.MultiPolygonContains(r.geom, p)
}

// Footprint rasterizes the region onto a grid: entry i is true when the
// center of pixel i falls inside the region.
func (r *ROI) Footprint(gt raster.GeoTransform, width, height int) []bool {
	inside := make([]bool, width*height)
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			x, y := gt.Apply(float64(col)+0.5, float64(row)+0.5)
			inside[row*width+col] = r.Contains(orb.Point{x, y})
		}
	}
	return inside
}
