// Package composite reduces a stack of time-stamped scenes into one
// multi-band raster with a per-pixel percentile reducer.
package composite

import (
	"fmt"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"github.com/gammazero/workerpool"
	"github.com/heatwatch/heat-island-api-poc/internal/raster"
)

// Options configures a reduction.
type Options struct {
	// Percentile in [0, 100]. 50 gives the median composite.
	Percentile float64
	// Workers bounds the worker pool. Zero means GOMAXPROCS.
	Workers int
	// TagBands appends the reducer suffix to each output band name,
	// e.g. ST_B10 percentile 50 becomes ST_B10_p50, so downstream
	// stages can tell a reduced band from a raw one.
	TagBands bool
}

const stripeRows = 64

// Reduce composites the scenes per band, per pixel: the output sample is
// the requested percentile of the values from every scene where that pixel
// is valid. Pixels with no valid reading in any scene come out invalid,
// not zero. Scenes may have arbitrarily uneven validity coverage.
//
// All scenes must share one grid, one geotransform and the band set of the
// first scene. An empty stack returns raster.ErrEmptyInput.
func Reduce(scenes []*raster.Scene, opts Options) (*raster.Raster, error) {
	if len(scenes) == 0 {
		return nil, raster.ErrEmptyInput
	}
	if opts.Percentile < 0 || opts.Percentile > 100 {
		return nil, fmt.Errorf("composite percentile %.2f outside [0, 100]", opts.Percentile)
	}

	first := scenes[0]
	bandNames := make([]string, 0, len(first.Bands))
	for name := range first.Bands {
		bandNames = append(bandNames, name)
	}
	sort.Strings(bandNames)

	for _, s := range scenes {
		if s.Width != first.Width || s.Height != first.Height {
			return nil, fmt.Errorf("scene %s grid %dx%d does not match stack grid %dx%d",
				s.AcquiredAt.Format("2006-01-02"), s.Width, s.Height, first.Width, first.Height)
		}
		for _, name := range bandNames {
			if _, ok := s.Bands[name]; !ok {
				return nil, &raster.BandMismatchError{Band: name, Reason: fmt.Sprintf("missing from scene %s", s.AcquiredAt.Format("2006-01-02"))}
			}
		}
	}

	tag := reducerTag(opts.Percentile)
	n := first.Width * first.Height
	valid := make([]bool, n)
	out := make(map[string][]float64, len(bandNames))
	outNames := make(map[string]string, len(bandNames))
	for _, name := range bandNames {
		out[name] = make([]float64, n)
		if opts.TagBands {
			outNames[name] = name + "_" + tag
		} else {
			outNames[name] = name
		}
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	wp := workerpool.New(workers)
	for startRow := 0; startRow < first.Height; startRow += stripeRows {
		endRow := startRow + stripeRows
		if endRow > first.Height {
			endRow = first.Height
		}
		lo, hi := startRow*first.Width, endRow*first.Width
		wp.Submit(func() {
			reduceStripe(scenes, bandNames, opts.Percentile, lo, hi, out, valid)
		})
	}
	wp.StopWait()

	bands := make(map[string][]float64, len(bandNames))
	for _, name := range bandNames {
		bands[outNames[name]] = out[name]
	}
	return &raster.Raster{
		Width:        first.Width,
		Height:       first.Height,
		GeoTransform: first.GeoTransform,
		Geographic:   first.Geographic,
		Reducer:      tag,
		Bands:        bands,
		Valid:        valid,
	}, nil
}

// reduceStripe fills output pixels [lo, hi). Each stripe is owned by one
// worker, so writes into out and valid are disjoint.
func reduceStripe(scenes []*raster.Scene, bandNames []string, pct float64, lo, hi int, out map[string][]float64, valid []bool) {
	values := make([]float64, 0, len(scenes))
	for i := lo; i < hi; i++ {
		anyValid := false
		for _, s := range scenes {
			if s.Valid[i] {
				anyValid = true
				break
			}
		}
		if !anyValid {
			continue
		}
		valid[i] = true
		for _, name := range bandNames {
			values = values[:0]
			for _, s := range scenes {
				if s.Valid[i] {
					values = append(values, s.Bands[name][i])
				}
			}
			sort.Float64s(values)
			v, _ := raster.PercentileSorted(values, pct)
			out[name][i] = v
		}
	}
}

func reducerTag(pct float64) string {
	s := strconv.FormatFloat(pct, 'f', -1, 64)
	s = strings.ReplaceAll(s, ".", "_")
	return "p" + s
}
