// Package analysis runs the full heat island pipeline: scene filtering,
// quality masking, temporal compositing, temperature conversion, threshold
// detection, component cleaning and zonal statistics.
package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/heatwatch/heat-island-api-poc/internal/composite"
	"github.com/heatwatch/heat-island-api-poc/internal/detect"
	"github.com/heatwatch/heat-island-api-poc/internal/landsat"
	"github.com/heatwatch/heat-island-api-poc/internal/lst"
	"github.com/heatwatch/heat-island-api-poc/internal/raster"
	"github.com/heatwatch/heat-island-api-poc/internal/roi"
	"github.com/heatwatch/heat-island-api-poc/internal/scene"
	"github.com/heatwatch/heat-island-api-poc/internal/zonal"
	"golang.org/x/sync/errgroup"
)

// Params tunes the pipeline. Zero values are not usable; start from
// DefaultParams.
type Params struct {
	// CompositePercentile is the per-pixel reducer of the temporal
	// composite.
	CompositePercentile float64
	// DetectionPercentile sets the hot threshold; accepted range 80-95.
	DetectionPercentile float64
	// MinPatchPixels is the smallest connected patch kept as a heat island.
	MinPatchPixels int
	// Connectivity for patch labeling, 4 or 8.
	Connectivity detect.Connectivity
	// ComponentSizeCap bounds patch size counting; must be at least
	// MinPatchPixels.
	ComponentSizeCap int
	// MaxCloudCover excludes scenes at or above this cloud percentage.
	MaxCloudCover float64
	// Workers bounds the compositing worker pool. Zero means GOMAXPROCS.
	Workers int
	// SkipRGB disables the true-color reference composite.
	SkipRGB bool
}

// DefaultParams mirrors the operational defaults: median composite, 90th
// percentile threshold, 3-pixel minimum patch with 8-connectivity, size
// counting capped at 1024, scenes under 30% cloud.
func DefaultParams() Params {
	return Params{
		CompositePercentile: 50,
		DetectionPercentile: 90,
		MinPatchPixels:      3,
		Connectivity:        detect.Connectivity8,
		ComponentSizeCap:    1024,
		MaxCloudCover:       30,
	}
}

// Validate rejects parameter combinations the pipeline refuses to run
// with.
func (p Params) Validate() error {
	if p.CompositePercentile < 0 || p.CompositePercentile > 100 {
		return fmt.Errorf("composite percentile %.2f outside [0, 100]", p.CompositePercentile)
	}
	if p.DetectionPercentile < 80 || p.DetectionPercentile > 95 {
		return fmt.Errorf("detection percentile %.2f outside accepted range [80, 95]", p.DetectionPercentile)
	}
	if p.MinPatchPixels < 1 {
		return fmt.Errorf("minimum patch size %d must be at least 1", p.MinPatchPixels)
	}
	if p.ComponentSizeCap < p.MinPatchPixels {
		return fmt.Errorf("component size cap %d is below minimum patch size %d", p.ComponentSizeCap, p.MinPatchPixels)
	}
	if p.Connectivity != detect.Connectivity4 && p.Connectivity != detect.Connectivity8 {
		return fmt.Errorf("connectivity must be 4 or 8, got %d", p.Connectivity)
	}
	if p.MaxCloudCover <= 0 {
		return fmt.Errorf("max cloud cover %.2f must be positive", p.MaxCloudCover)
	}
	return nil
}

// Result carries every product of one pipeline run.
type Result struct {
	SceneCount int

	// Composite is the percentile composite of all masked bands.
	Composite *raster.Raster
	// RGB is the cloud-masked median true-color reference composite with
	// reflectance-scaled optical bands. Nil when SkipRGB is set.
	RGB *raster.Raster
	// LST is the single-band surface temperature raster in Celsius.
	LST *raster.Raster

	ThresholdC float64
	RawMask    *raster.Mask
	CleanMask  *raster.Mask

	// RegionStats covers every valid LST pixel inside the region;
	// HotStats is restricted to the cleaned mask.
	RegionStats zonal.Stats
	HotStats    zonal.Stats

	HotAreaHa   float64
	TotalAreaHa float64
	// HotPercent is hot-zone area over total region area, as a percentage.
	HotPercent float64
}

// Run executes the pipeline over the scenes a source yields for the
// region and date range. No scene passing the filters is raster.ErrEmptyInput;
// a region with no valid composited pixels is raster.ErrInsufficientData.
func Run(ctx context.Context, src scene.Source, region *roi.ROI, start, end time.Time, p Params) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	query := scene.Query{
		Bound:         region.Bound(),
		Start:         start,
		End:           end,
		MaxCloudCover: p.MaxCloudCover,
	}
	scenes, err := src.Scenes(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("scene source failed: %w", err)
	}
	scenes = scene.Filter(scenes, query)
	if len(scenes) == 0 {
		return nil, fmt.Errorf("%w for %s between %s and %s under %.0f%% cloud: widen the date range or relax the cloud threshold",
			raster.ErrEmptyInput, region.Name, start.Format("2006-01-02"), end.Format("2006-01-02"), p.MaxCloudCover)
	}

	result := &Result{SceneCount: len(scenes)}

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		comp, err := thermalComposite(scenes, p)
		if err != nil {
			return err
		}
		result.Composite = comp
		return nil
	})
	if !p.SkipRGB {
		g.Go(func() error {
			rgb, err := rgbComposite(scenes, p)
			if err != nil {
				return fmt.Errorf("true-color composite: %w", err)
			}
			result.RGB = rgb
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	thermalBand := landsat.BandThermal + "_" + result.Composite.Reducer
	result.LST, err = lst.ToCelsius(result.Composite, thermalBand)
	if err != nil {
		return nil, err
	}

	footprint := region.Footprint(result.LST.GeoTransform, result.LST.Width, result.LST.Height)

	result.ThresholdC, result.RawMask, err = detect.Threshold(result.LST, lst.BandCelsius, footprint, p.DetectionPercentile)
	if err != nil {
		return nil, fmt.Errorf("threshold detection over %s: %w", region.Name, err)
	}

	result.CleanMask, err = detect.Clean(result.RawMask, p.MinPatchPixels, p.ComponentSizeCap, p.Connectivity)
	if err != nil {
		return nil, err
	}

	result.RegionStats, err = zonal.Aggregate(result.LST, lst.BandCelsius, footprint, nil, []float64{5, 50, 95})
	if err != nil {
		return nil, err
	}
	result.HotStats, err = zonal.Aggregate(result.LST, lst.BandCelsius, footprint, result.CleanMask, []float64{50, 95})
	if err != nil {
		return nil, err
	}

	result.HotAreaHa = result.HotStats.AreaHa
	result.TotalAreaHa = result.RegionStats.AreaHa
	if result.TotalAreaHa > 0 {
		result.HotPercent = result.HotAreaHa / result.TotalAreaHa * 100
	}
	return result, nil
}

func thermalComposite(scenes []*raster.Scene, p Params) (*raster.Raster, error) {
	masked := make([]*raster.Scene, 0, len(scenes))
	for _, s := range scenes {
		m, err := landsat.MaskQuality(s, landsat.DefaultQuality())
		if err != nil {
			return nil, err
		}
		masked = append(masked, m)
	}
	return composite.Reduce(masked, composite.Options{
		Percentile: p.CompositePercentile,
		Workers:    p.Workers,
		TagBands:   true,
	})
}

// rgbComposite reproduces the true-color reference mosaic: cloud/shadow
// masked only, reflectance scaled, median reduced, untagged band names.
func rgbComposite(scenes []*raster.Scene, p Params) (*raster.Raster, error) {
	cfg := landsat.DefaultQuality()
	cfg.ThermalBand = ""

	masked := make([]*raster.Scene, 0, len(scenes))
	for _, s := range scenes {
		m, err := landsat.MaskQuality(s, cfg)
		if err != nil {
			return nil, err
		}
		m, err = landsat.ScaleReflectance(m)
		if err != nil {
			return nil, err
		}
		masked = append(masked, m)
	}
	return composite.Reduce(masked, composite.Options{
		Percentile: 50,
		Workers:    p.Workers,
	})
}
