package output

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/heatwatch/heat-island-api-poc/internal/detect"
	"github.com/heatwatch/heat-island-api-poc/internal/lst"
	"github.com/heatwatch/heat-island-api-poc/internal/raster"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// HotZoneFeatures builds one point feature per hot pixel, at the pixel
// center, tagged with its connected-patch id and its temperature.
func HotZoneFeatures(mask *raster.Mask, temperature *raster.Raster, conn detect.Connectivity) (*geojson.FeatureCollection, error) {
	if temperature.Width != mask.Width || temperature.Height != mask.Height {
		return nil, fmt.Errorf("temperature grid %dx%d does not match mask grid %dx%d",
			temperature.Width, temperature.Height, mask.Width, mask.Height)
	}
	data, err := temperature.Band(lst.BandCelsius)
	if err != nil {
		return nil, err
	}

	ids, _ := detect.Components(mask, conn)
	fc := geojson.NewFeatureCollection()
	for i, on := range mask.Set {
		if !on {
			continue
		}
		col, row := i%mask.Width, i/mask.Width
		x, y := mask.GeoTransform.Apply(float64(col)+0.5, float64(row)+0.5)
		feature := geojson.NewFeature(orb.Point{x, y})
		feature.Properties["patch"] = ids[i]
		feature.Properties["lst_c"] = data[i]
		fc.Append(feature)
	}
	return fc, nil
}

// WriteHotZoneGeoJSON writes the hot-zone features to a file.
func WriteHotZoneGeoJSON(path string, mask *raster.Mask, temperature *raster.Raster, conn detect.Connectivity) error {
	fc, err := HotZoneFeatures(mask, temperature, conn)
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create GeoJSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(fc); err != nil {
		return fmt.Errorf("failed to encode GeoJSON: %w", err)
	}
	return nil
}
