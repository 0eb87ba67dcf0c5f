package landsat

import (
	"github.com/heatwatch/heat-island-api-poc/internal/raster"
)

// ScaleReflectance returns a copy of the scene with the optical bands
// converted from digital counts to surface reflectance. Non-optical bands
// are shared unchanged, as is validity.
func ScaleReflectance(s *raster.Scene) (*raster.Scene, error) {
	bands := make(map[string][]float64, len(s.Bands))
	for name, data := range s.Bands {
		bands[name] = data
	}
	for _, name := range OpticalBands {
		data, err := s.Band(name)
		if err != nil {
			return nil, err
		}
		scaled := make([]float64, len(data))
		for i, v := range data {
			scaled[i] = v*OpticalScale + OpticalOffset
		}
		bands[name] = scaled
	}
	out := *s
	out.Bands = bands
	return &out, nil
}
