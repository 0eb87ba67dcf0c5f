package raster

import (
	"fmt"
	"math"
	"time"
)

// GeoTransform is the six-coefficient affine transform mapping pixel
// coordinates to geographic coordinates, in GDAL order:
// [origin X, pixel width, row rotation, origin Y, column rotation, pixel height].
type GeoTransform [6]float64

// Apply maps fractional pixel coordinates to geographic coordinates.
// Pass col+0.5, row+0.5 for the center of a pixel.
func (gt GeoTransform) Apply(col, row float64) (x, y float64) {
	x = gt[0] + gt[1]*col + gt[2]*row
	y = gt[3] + gt[4]*col + gt[5]*row
	return x, y
}

// PixelOf maps a geographic coordinate to fractional pixel coordinates,
// the inverse of Apply. Only valid for north-up transforms (no rotation
// terms).
func (gt GeoTransform) PixelOf(x, y float64) (col, row float64) {
	return (x - gt[0]) / gt[1], (y - gt[3]) / gt[5]
}

// PixelAt maps a geographic coordinate to the integer pixel containing it.
// Coordinates left of or above the origin floor toward negative indices
// rather than truncating toward pixel zero.
func (gt GeoTransform) PixelAt(x, y float64) (col, row int) {
	c, r := gt.PixelOf(x, y)
	return int(math.Floor(c)), int(math.Floor(r))
}

// Scene is one time-stamped multi-band acquisition. All bands share one
// grid, one geotransform and one validity array. Scenes are not mutated
// after creation; masking produces a new scene with a narrowed validity.
type Scene struct {
	Width, Height int
	GeoTransform  GeoTransform
	Geographic    bool
	AcquiredAt    time.Time
	CloudCover    float64

	Bands map[string][]float64
	Valid []bool
}

// NewScene validates that every band covers the same width*height grid
// and returns the assembled scene. A nil validity means all pixels valid.
func NewScene(width, height int, gt GeoTransform, geographic bool, acquiredAt time.Time, cloudCover float64, bands map[string][]float64, valid []bool) (*Scene, error) {
	n := width * height
	if n <= 0 {
		return nil, fmt.Errorf("scene grid %dx%d is empty", width, height)
	}
	for name, data := range bands {
		if len(data) != n {
			return nil, &BandMismatchError{Band: name, Reason: fmt.Sprintf("has %d samples, grid is %dx%d", len(data), width, height)}
		}
	}
	if valid == nil {
		valid = make([]bool, n)
		for i := range valid {
			valid[i] = true
		}
	} else if len(valid) != n {
		return nil, fmt.Errorf("validity array has %d entries, grid is %dx%d", len(valid), width, height)
	}
	return &Scene{
		Width:        width,
		Height:       height,
		GeoTransform: gt,
		Geographic:   geographic,
		AcquiredAt:   acquiredAt,
		CloudCover:   cloudCover,
		Bands:        bands,
		Valid:        valid,
	}, nil
}

// Band returns the samples of a named band.
func (s *Scene) Band(name string) ([]float64, error) {
	data, ok := s.Bands[name]
	if !ok {
		return nil, &BandMismatchError{Band: name, Reason: "band not present in scene"}
	}
	return data, nil
}

// WithValidity returns a copy of the scene sharing its band arrays but
// carrying the given validity array.
func (s *Scene) WithValidity(valid []bool) *Scene {
	out := *s
	out.Valid = valid
	return &out
}

// Raster is a multi-band raster with no time dimension, as produced by
// temporal reduction or band math. Reducer records the provenance of the
// bands, e.g. "p50" or "median". Read-only after creation.
type Raster struct {
	Width, Height int
	GeoTransform  GeoTransform
	Geographic    bool
	Reducer       string

	Bands map[string][]float64
	Valid []bool
}

// Band returns the samples of a named band.
func (r *Raster) Band(name string) ([]float64, error) {
	data, ok := r.Bands[name]
	if !ok {
		return nil, &BandMismatchError{Band: name, Reason: "band not present in raster"}
	}
	return data, nil
}

// Mask is a single-band boolean raster aligned to the raster it was
// derived from.
type Mask struct {
	Width, Height int
	GeoTransform  GeoTransform
	Geographic    bool

	Set []bool
}

// Count returns the number of set pixels.
func (m *Mask) Count() int {
	n := 0
	for _, v := range m.Set {
		if v {
			n++
		}
	}
	return n
}
