// Package scene supplies raster scenes to the analysis pipeline. The
// source is a collaborator: how scenes got on disk (or into memory) is
// not this module's concern.
package scene

import (
	"context"
	"sort"
	"time"

	"github.com/heatwatch/heat-island-api-poc/internal/raster"
	"github.com/paulmach/orb"
)

// Query selects scenes by spatial bounds, acquisition date range and a
// maximum cloud-cover percentage.
type Query struct {
	Bound         orb.Bound
	Start, End    time.Time
	MaxCloudCover float64
}

// Source yields scenes matching a query, ordered by acquisition time.
type Source interface {
	Scenes(ctx context.Context, q Query) ([]*raster.Scene, error)
}

// Matches reports whether a scene satisfies the query: its footprint
// intersects the bound, its acquisition time falls inside [Start, End]
// and its cloud cover is strictly below the maximum.
func (q Query) Matches(s *raster.Scene) bool {
	if !q.Bound.Intersects(Footprint(s)) {
		return false
	}
	if s.AcquiredAt.Before(q.Start) || s.AcquiredAt.After(q.End) {
		return false
	}
	return s.CloudCover < q.MaxCloudCover
}

// Filter applies the query to an in-memory scene set and returns the
// matches ordered by acquisition time.
func Filter(scenes []*raster.Scene, q Query) []*raster.Scene {
	var out []*raster.Scene
	for _, s := range scenes {
		if q.Matches(s) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].AcquiredAt.Before(out[j].AcquiredAt)
	})
	return out
}

// Footprint returns the geographic bounding box of a scene.
func Footprint(s *raster.Scene) orb.Bound {
	x0, y0 := s.GeoTransform.Apply(0, 0)
	x1, y1 := s.GeoTransform.Apply(float64(s.Width), float64(s.Height))
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	return orb.Bound{Min: orb.Point{x0, y0}, Max: orb.Point{x1, y1}}
}
