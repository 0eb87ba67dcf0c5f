// Package detect derives hot-patch masks from a temperature raster: a
// percentile threshold over the region population, then connected-component
// denoising of the resulting mask.
package detect

import (
	"fmt"

	"github.com/heatwatch/heat-island-api-poc/internal/raster"
)

// Threshold computes the pct-th percentile of the band over the pixels
// that are both valid and inside the region, and returns it together with
// the binary mask of pixels at or above it. Pixels outside the region or
// invalid are never set in the mask, whatever their raw value.
//
// An empty restricted population returns raster.ErrInsufficientData; a
// threshold of zero is never silently substituted.
func Threshold(r *raster.Raster, band string, region []bool, pct float64) (float64, *raster.Mask, error) {
	data, err := r.Band(band)
	if err != nil {
		return 0, nil, err
	}
	if len(region) != len(data) {
		return 0, nil, fmt.Errorf("region footprint has %d entries, raster has %d pixels", len(region), len(data))
	}

	population := make([]float64, 0, len(data))
	for i, v := range data {
		if r.Valid[i] && region[i] {
			population = append(population, v)
		}
	}
	if len(population) == 0 {
		return 0, nil, fmt.Errorf("%w: band %s", raster.ErrInsufficientData, band)
	}

	threshold, err := raster.Percentile(population, pct)
	if err != nil {
		return 0, nil, err
	}

	set := make([]bool, len(data))
	for i, v := range data {
		set[i] = r.Valid[i] && region[i] && v >= threshold
	}
	return threshold, &raster.Mask{
		Width:        r.Width,
		Height:       r.Height,
		GeoTransform: r.GeoTransform,
		Geographic:   r.Geographic,
		Set:          set,
	}, nil
}
