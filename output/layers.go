// Package output renders and exports analysis products. It sits outside
// the analysis core: the pipeline emits rasters, masks and statistics, and
// this package turns them into files a person can look at.
package output

import (
	"fmt"

	"github.com/heatwatch/heat-island-api-poc/internal/raster"
	"github.com/heatwatch/heat-island-api-poc/internal/roi"
)

// Layer is one renderable product. The set of variants is closed: a
// raster band (or true-color triple), a binary mask overlay, or a region
// outline.
type Layer interface {
	isLayer()
}

// RasterLayer draws one band through a palette, or a true-color image
// when RGBBands is set. Values are stretched linearly from Min to Max.
type RasterLayer struct {
	Raster   *raster.Raster
	Band     string
	RGBBands [3]string
	Min, Max float64
	Palette  Palette
}

// MaskLayer paints set pixels in one color.
type MaskLayer struct {
	Mask       *raster.Mask
	R, G, B, A uint8
}

// GeometryLayer strokes the region outline.
type GeometryLayer struct {
	Region    *roi.ROI
	LineWidth float64
	R, G, B   uint8
}

func (RasterLayer) isLayer()   {}
func (MaskLayer) isLayer()     {}
func (GeometryLayer) isLayer() {}

// Renderer turns a layer stack into an image file.
type Renderer interface {
	Render(path string, layers ...Layer) error
}

// gridOf finds the pixel grid of the first raster or mask layer; geometry
// alone cannot establish a grid.
func gridOf(layers []Layer) (width, height int, gt raster.GeoTransform, err error) {
	for _, l := range layers {
		switch v := l.(type) {
		case RasterLayer:
			return v.Raster.Width, v.Raster.Height, v.Raster.GeoTransform, nil
		case MaskLayer:
			return v.Mask.Width, v.Mask.Height, v.Mask.GeoTransform, nil
		}
	}
	return 0, 0, raster.GeoTransform{}, fmt.Errorf("no raster or mask layer to establish the output grid")
}
