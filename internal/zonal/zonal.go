// Package zonal computes summary statistics of a raster band over the
// pixels falling inside a region and, optionally, a mask.
package zonal

import (
	"fmt"
	"math"
	"strconv"

	"github.com/heatwatch/heat-island-api-poc/internal/raster"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats is one zonal statistics record. A record with Count zero is the
// normal "no pixels matched" outcome, not an error: Mean/Min/Max and the
// percentiles are NaN and AreaHa is zero.
type Stats struct {
	Count       int
	Mean        float64
	Min         float64
	Max         float64
	Percentiles map[string]float64
	AreaHa      float64
}

// Empty reports whether no pixels matched the restriction.
func (s Stats) Empty() bool {
	return s.Count == 0
}

// Aggregate computes count, mean, min, max, the requested percentiles and
// the summed pixel area in hectares over the restricted population: valid
// pixels inside the region, further restricted to the mask when one is
// given. Pixel area is derived from the geotransform and, for geographic
// rasters, the latitude of the pixel's row, so area sums stay correct away
// from the equator.
func Aggregate(r *raster.Raster, band string, region []bool, mask *raster.Mask, percentiles []float64) (Stats, error) {
	data, err := r.Band(band)
	if err != nil {
		return Stats{}, err
	}
	if len(region) != len(data) {
		return Stats{}, fmt.Errorf("region footprint has %d entries, raster has %d pixels", len(region), len(data))
	}
	if mask != nil && (mask.Width != r.Width || mask.Height != r.Height) {
		return Stats{}, fmt.Errorf("mask grid %dx%d does not match raster grid %dx%d", mask.Width, mask.Height, r.Width, r.Height)
	}

	values := make([]float64, 0, len(data))
	areaM2 := 0.0
	for row := 0; row < r.Height; row++ {
		rowArea := math.NaN()
		for col := 0; col < r.Width; col++ {
			i := row*r.Width + col
			if !r.Valid[i] || !region[i] {
				continue
			}
			if mask != nil && !mask.Set[i] {
				continue
			}
			values = append(values, data[i])
			if math.IsNaN(rowArea) {
				rowArea = pixelArea(r.GeoTransform, r.Geographic, row)
			}
			areaM2 += rowArea
		}
	}

	if len(values) == 0 {
		return emptyStats(percentiles), nil
	}

	out := Stats{
		Count:       len(values),
		Mean:        stat.Mean(values, nil),
		Min:         floats.Min(values),
		Max:         floats.Max(values),
		Percentiles: make(map[string]float64, len(percentiles)),
		AreaHa:      areaM2 / 10000,
	}
	for _, p := range percentiles {
		v, err := raster.Percentile(values, p)
		if err != nil {
			return Stats{}, err
		}
		out.Percentiles[percentileKey(p)] = v
	}
	return out, nil
}

func emptyStats(percentiles []float64) Stats {
	s := Stats{
		Mean:        math.NaN(),
		Min:         math.NaN(),
		Max:         math.NaN(),
		Percentiles: make(map[string]float64, len(percentiles)),
	}
	for _, p := range percentiles {
		s.Percentiles[percentileKey(p)] = math.NaN()
	}
	return s
}

func percentileKey(p float64) string {
	return "p" + strconv.FormatFloat(p, 'f', -1, 64)
}
