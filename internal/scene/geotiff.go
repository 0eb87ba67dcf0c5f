package scene

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"time"

	"github.com/airbusgeo/godal"
	"github.com/heatwatch/heat-island-api-poc/internal/landsat"
	"github.com/heatwatch/heat-island-api-poc/internal/raster"
	"github.com/schollz/progressbar/v3"
)

// StackedBandOrder is the band layout expected in each scene GeoTIFF. The
// acquisition layer stacks the Level-2 product into one file per scene in
// this order.
var StackedBandOrder = []string{
	landsat.BandBlue,
	landsat.BandGreen,
	landsat.BandRed,
	landsat.BandThermal,
	landsat.BandQA,
}

// acquisitionDatePattern matches the acquisition date token of a Landsat
// product id, e.g. LC08_L2SP_021047_20240115_20240123_02_T1.tif.
var acquisitionDatePattern = regexp.MustCompile(`_(\d{8})_`)

// DirSource reads scenes from stacked GeoTIFF files in one directory.
type DirSource struct {
	Dir string
	// Geographic marks the scene CRS as geographic (degrees) rather than
	// projected (meters); it drives latitude-aware pixel areas downstream.
	Geographic bool
	// Progress draws a terminal progress bar while loading.
	Progress bool
}

// Scenes loads every *.tif under Dir that matches the query, ordered by
// acquisition time. Cloud cover is read from the CLOUD_COVER metadata item
// the acquisition layer copies out of the product MTL.
func (d *DirSource) Scenes(ctx context.Context, q Query) ([]*raster.Scene, error) {
	paths, err := filepath.Glob(filepath.Join(d.Dir, "*.tif"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scene directory %s: %w", d.Dir, err)
	}
	more, err := filepath.Glob(filepath.Join(d.Dir, "*.TIF"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scene directory %s: %w", d.Dir, err)
	}
	paths = append(paths, more...)
	sort.Strings(paths)

	var bar *progressbar.ProgressBar
	if d.Progress {
		bar = progressbar.Default(int64(len(paths)), "Loading scenes")
	}

	var scenes []*raster.Scene
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s, err := d.load(path, q)
		if err != nil {
			return nil, fmt.Errorf("scene %s: %w", filepath.Base(path), err)
		}
		if s != nil {
			scenes = append(scenes, s)
		}
		if bar != nil {
			bar.Add(1)
		}
	}
	if bar != nil {
		bar.Finish()
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].AcquiredAt.Before(scenes[j].AcquiredAt)
	})
	return scenes, nil
}

// load opens one scene file and reads its bands if it matches the query.
// A non-matching scene returns (nil, nil) without reading pixel data.
func (d *DirSource) load(path string, q Query) (*raster.Scene, error) {
	acquiredAt, err := acquisitionDate(path)
	if err != nil {
		return nil, err
	}

	ds, err := godal.Open(path, godal.ErrLogger(func(ec godal.ErrorCategory, code int, msg string) error {
		if ec == godal.CE_Warning {
			return nil
		}
		return fmt.Errorf("gdal error %d: %s", code, msg)
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to open: %w", err)
	}
	defer ds.Close()

	gtRaw, err := ds.GeoTransform()
	if err != nil {
		return nil, fmt.Errorf("failed to read geotransform: %w", err)
	}
	gt := raster.GeoTransform(gtRaw)
	width := ds.Structure().SizeX
	height := ds.Structure().SizeY

	cloudCover := 0.0
	if v := ds.Metadata("CLOUD_COVER"); v != "" {
		cloudCover, err = strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("bad CLOUD_COVER metadata %q: %w", v, err)
		}
	}

	probe := &raster.Scene{
		Width: width, Height: height,
		GeoTransform: gt, Geographic: d.Geographic,
		AcquiredAt: acquiredAt, CloudCover: cloudCover,
	}
	if !q.Matches(probe) {
		return nil, nil
	}

	gdalBands := ds.Bands()
	if len(gdalBands) < len(StackedBandOrder) {
		return nil, &raster.BandMismatchError{
			Band:   StackedBandOrder[len(gdalBands)],
			Reason: fmt.Sprintf("file has %d bands, expected %d", len(gdalBands), len(StackedBandOrder)),
		}
	}

	bands := make(map[string][]float64, len(StackedBandOrder))
	for i, name := range StackedBandOrder {
		data := make([]float64, width*height)
		if err := gdalBands[i].Read(0, 0, data, width, height); err != nil {
			return nil, fmt.Errorf("failed to read band %s: %w", name, err)
		}
		bands[name] = data
	}

	return raster.NewScene(width, height, gt, d.Geographic, acquiredAt, cloudCover, bands, nil)
}

func acquisitionDate(path string) (time.Time, error) {
	m := acquisitionDatePattern.FindStringSubmatch(filepath.Base(path))
	if m == nil {
		return time.Time{}, fmt.Errorf("no acquisition date in file name %s", filepath.Base(path))
	}
	t, err := time.Parse("20060102", m[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("bad acquisition date in file name %s: %w", filepath.Base(path), err)
	}
	return t, nil
}
