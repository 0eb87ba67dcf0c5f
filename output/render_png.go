package output

import (
	"fmt"
	"math"

	"github.com/fogleman/gg"
	"github.com/heatwatch/heat-island-api-poc/internal/raster"
)

// PNGRenderer rasterizes a layer stack to a PNG on the grid of the first
// raster or mask layer. Later layers draw over earlier ones.
type PNGRenderer struct{}

func (PNGRenderer) Render(path string, layers ...Layer) error {
	width, height, gt, err := gridOf(layers)
	if err != nil {
		return err
	}

	dc := gg.NewContext(width, height)
	for _, l := range layers {
		switch v := l.(type) {
		case RasterLayer:
			if err := drawRaster(dc, v, width, height); err != nil {
				return err
			}
		case MaskLayer:
			if v.Mask.Width != width || v.Mask.Height != height {
				return fmt.Errorf("mask layer grid %dx%d does not match output grid %dx%d", v.Mask.Width, v.Mask.Height, width, height)
			}
			drawMask(dc, v, width)
		case GeometryLayer:
			drawGeometry(dc, v, gt)
		}
	}

	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("failed to save PNG %s: %w", path, err)
	}
	return nil
}

func drawRaster(dc *gg.Context, l RasterLayer, width, height int) error {
	if l.Raster.Width != width || l.Raster.Height != height {
		return fmt.Errorf("raster layer grid %dx%d does not match output grid %dx%d", l.Raster.Width, l.Raster.Height, width, height)
	}
	if l.RGBBands[0] != "" {
		return drawTrueColor(dc, l, width, height)
	}

	data, err := l.Raster.Band(l.Band)
	if err != nil {
		return err
	}
	palette := l.Palette
	if palette == nil {
		palette = Grayscale
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := y*width + x
			if !l.Raster.Valid[i] {
				continue
			}
			r, g, b := palette(stretch(data[i], l.Min, l.Max))
			dc.SetRGB255(int(r), int(g), int(b))
			dc.SetPixel(x, y)
		}
	}
	return nil
}

func drawTrueColor(dc *gg.Context, l RasterLayer, width, height int) error {
	var bands [3][]float64
	for k, name := range l.RGBBands {
		data, err := l.Raster.Band(name)
		if err != nil {
			return err
		}
		bands[k] = data
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := y*width + x
			if !l.Raster.Valid[i] {
				continue
			}
			r := stretch(bands[0][i], l.Min, l.Max)
			g := stretch(bands[1][i], l.Min, l.Max)
			b := stretch(bands[2][i], l.Min, l.Max)
			dc.SetRGB255(int(r*255), int(g*255), int(b*255))
			dc.SetPixel(x, y)
		}
	}
	return nil
}

func drawMask(dc *gg.Context, l MaskLayer, width int) {
	for i, on := range l.Mask.Set {
		if !on {
			continue
		}
		dc.SetRGBA255(int(l.R), int(l.G), int(l.B), int(l.A))
		dc.SetPixel(i%width, i/width)
	}
}

func drawGeometry(dc *gg.Context, l GeometryLayer, gt raster.GeoTransform) {
	lineWidth := l.LineWidth
	if lineWidth == 0 {
		lineWidth = 1.5
	}
	dc.SetRGB255(int(l.R), int(l.G), int(l.B))
	dc.SetLineWidth(lineWidth)
	for _, polygon := range l.Region.Geometry() {
		for _, ring := range polygon {
			for k, pt := range ring {
				col, row := gt.PixelOf(pt[0], pt[1])
				if k == 0 {
					dc.MoveTo(col, row)
				} else {
					dc.LineTo(col, row)
				}
			}
			dc.ClosePath()
			dc.Stroke()
		}
	}
}

func stretch(v, min, max float64) float64 {
	if max <= min {
		return 0
	}
	t := (v - min) / (max - min)
	return math.Max(0, math.Min(1, t))
}
