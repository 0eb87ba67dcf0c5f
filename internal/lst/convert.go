// Package lst converts raw thermal digital counts to land surface
// temperature.
package lst

import (
	"fmt"

	"github.com/heatwatch/heat-island-api-poc/internal/landsat"
	"github.com/heatwatch/heat-island-api-poc/internal/raster"
)

// BandCelsius names the converted temperature band.
const BandCelsius = "LST_Celsius"

// ToPhysical applies the two-stage affine conversion
// value*scale + offset - absoluteOffset to every valid pixel of one band,
// returning a single-band raster named outBand. Invalid pixels stay
// invalid; conversion never heals them.
func ToPhysical(r *raster.Raster, band string, scale, offset, absoluteOffset float64, outBand string) (*raster.Raster, error) {
	data, err := r.Band(band)
	if err != nil {
		return nil, err
	}
	if outBand == "" {
		return nil, fmt.Errorf("output band name must not be empty")
	}

	out := make([]float64, len(data))
	for i, v := range data {
		if r.Valid[i] {
			out[i] = v*scale + offset - absoluteOffset
		}
	}
	return &raster.Raster{
		Width:        r.Width,
		Height:       r.Height,
		GeoTransform: r.GeoTransform,
		Geographic:   r.Geographic,
		Reducer:      r.Reducer,
		Bands:        map[string][]float64{outBand: out},
		Valid:        r.Valid,
	}, nil
}

// ToCelsius converts a composited ST_B10 band to degrees Celsius using the
// Landsat 8 L2 coefficients: counts to Kelvin, then Kelvin to Celsius.
func ToCelsius(r *raster.Raster, band string) (*raster.Raster, error) {
	return ToPhysical(r, band, landsat.ThermalScale, landsat.ThermalOffset, landsat.CelsiusOffset, BandCelsius)
}

// Invert recovers the raw digital count behind a converted value. Inverse
// of the ToPhysical affine transform.
func Invert(value, scale, offset, absoluteOffset float64) float64 {
	return (value + absoluteOffset - offset) / scale
}
