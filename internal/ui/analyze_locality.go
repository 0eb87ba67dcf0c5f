package ui

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/heatwatch/heat-island-api-poc/internal/analysis"
	"github.com/heatwatch/heat-island-api-poc/internal/cache"
	"github.com/heatwatch/heat-island-api-poc/internal/detect"
	"github.com/heatwatch/heat-island-api-poc/internal/landsat"
	"github.com/heatwatch/heat-island-api-poc/internal/lst"
	"github.com/heatwatch/heat-island-api-poc/internal/notification"
	"github.com/heatwatch/heat-island-api-poc/internal/properties"
	"github.com/heatwatch/heat-island-api-poc/internal/roi"
	"github.com/heatwatch/heat-island-api-poc/internal/scene"
	"github.com/heatwatch/heat-island-api-poc/output"
)

// AnalyzeLocality handles the UI for the full heat island analysis of one
// locality over a date range
func AnalyzeLocality() {
	PrintWarning("- The localities GeoJSON file must contain the locality polygon.\n- Stacked Landsat scene '.tif' files must be present in the scenes folder.")

	locality, err := ReadLocality()
	if err != nil {
		PrintError(err.Error())
		return
	}

	startDate, endDate, err := ReadDateRange()
	if err != nil {
		PrintError(err.Error())
		return
	}

	params := analysis.DefaultParams()

	percentile, err := ReadIntDefault("Percentile for the heat threshold (80-95)", 80, 95, 90)
	if err != nil {
		PrintError(err.Error())
		return
	}
	params.DetectionPercentile = float64(percentile)

	minPatch, err := ReadIntDefault("Minimum pixels per heat patch (1-10)", 1, 10, 3)
	if err != nil {
		PrintError(err.Error())
		return
	}
	params.MinPatchPixels = minPatch

	summaryCache := cache.NewFileCache[analysis.Summary](filepath.Join(properties.RootPath(), "data", "cache", "analysis"), 0)
	cacheKey := summaryCache.Key(locality, startDate.Format("2006-01-02"), endDate.Format("2006-01-02"), percentile, minPatch)
	if summary, ok := summaryCache.Get(cacheKey); ok {
		PrintSuccess("Found a cached analysis for these parameters:")
		printSummary(summary)
		return
	}

	region, err := roi.LoadLocality(properties.LocalitiesPath(), properties.LocalityNameProperty(), locality)
	if err != nil {
		PrintError(err.Error())
		return
	}

	source := &scene.DirSource{
		Dir:        properties.ScenesPath(),
		Geographic: properties.ScenesAreGeographic(),
		Progress:   true,
	}

	start := time.Now()
	result, err := analysis.Run(context.Background(), source, region, startDate, endDate, params)
	if err != nil {
		PrintError(fmt.Sprintf("Error analyzing %s: %s", locality, err.Error()))
		notification.SendDiscordErrorNotification(fmt.Sprintf("Heat island analysis failed for %s: %s", locality, err.Error()))
		return
	}
	fmt.Printf("Analysis took %v\n", time.Since(start))

	summary := result.Summarize(locality, startDate, endDate)
	printSummary(summary)

	resultPath, err := CreateResultDirectory(locality)
	if err != nil {
		PrintError(err.Error())
		return
	}
	basePath := fmt.Sprintf("%s/%s_%s_%s", resultPath, locality, startDate.Format("2006-01-02"), endDate.Format("2006-01-02"))

	if err := writeOutputs(basePath, region, result, summary, params.Connectivity); err != nil {
		PrintError(err.Error())
		return
	}

	if err := summaryCache.Set(cacheKey, summary); err != nil {
		PrintWarning(fmt.Sprintf("Could not cache the analysis: %s", err.Error()))
	}

	notification.SendDiscordSuccessNotification(fmt.Sprintf(
		"Heat island analysis finished for %s: %.1f ha hot zone (%.1f%% of the urban area), threshold %.1f °C",
		locality, summary.HotAreaHa, summary.HotPercent, summary.ThresholdC))

	PrintSuccess(fmt.Sprintf("Successful analysis!\nTemperature map located at: %s_lst.png\nHot zones image located at: %s_hot.png\nHot zones geojson located at: %s_hot.geojson\nReport located at: %s_report.csv",
		basePath, basePath, basePath, basePath))
}

func writeOutputs(basePath string, region *roi.ROI, result *analysis.Result, summary analysis.Summary, conn detect.Connectivity) error {
	renderer := output.PNGRenderer{}

	err := renderer.Render(basePath+"_lst.png",
		output.RasterLayer{
			Raster:  result.LST,
			Band:    lst.BandCelsius,
			Min:     result.RegionStats.Min,
			Max:     result.RegionStats.Max,
			Palette: output.Heat,
		},
		output.GeometryLayer{Region: region, R: 255, G: 255, B: 255},
	)
	if err != nil {
		return fmt.Errorf("error creating temperature map: %w", err)
	}

	hotLayers := []output.Layer{}
	if result.RGB != nil {
		hotLayers = append(hotLayers, output.RasterLayer{
			Raster:   result.RGB,
			RGBBands: [3]string{landsat.BandRed, landsat.BandGreen, landsat.BandBlue},
			Min:      0,
			Max:      0.3,
		})
	}
	hotLayers = append(hotLayers,
		output.MaskLayer{Mask: result.CleanMask, R: 255, A: 255},
		output.GeometryLayer{Region: region, R: 255, G: 255, B: 0},
	)
	if err := renderer.Render(basePath+"_hot.png", hotLayers...); err != nil {
		return fmt.Errorf("error creating hot zones image: %w", err)
	}

	if err := output.WriteHotZoneGeoJSON(basePath+"_hot.geojson", result.CleanMask, result.LST, conn); err != nil {
		return fmt.Errorf("error creating hot zones geojson: %w", err)
	}

	if err := output.WriteSummaryCSV(basePath+"_report.csv", []analysis.Summary{summary}); err != nil {
		return fmt.Errorf("error creating report: %w", err)
	}
	return nil
}

func printSummary(s analysis.Summary) {
	fmt.Printf("\n%sHeat island analysis for %s (%s to %s)%s\n", ColorGreen, s.Locality, s.Start.Format("2006-01-02"), s.End.Format("2006-01-02"), ColorReset)
	fmt.Printf("%sScenes used: %d%s\n", ColorGreen, s.SceneCount, ColorReset)
	fmt.Printf("%sSurface temperature: mean %.1f °C, min %.1f °C, max %.1f °C (p5 %.1f, p50 %.1f, p95 %.1f)%s\n",
		ColorGreen, s.MeanC, s.MinC, s.MaxC, s.P5C, s.P50C, s.P95C, ColorReset)
	fmt.Printf("%sHeat threshold: %.1f °C%s\n", ColorGreen, s.ThresholdC, ColorReset)
	if s.HotAreaHa > 0 {
		fmt.Printf("%sHot zones: %.1f ha of %.1f ha (%.1f%%), mean %.1f °C, max %.1f °C%s\n",
			ColorGreen, s.HotAreaHa, s.TotalAreaHa, s.HotPercent, s.HotMeanC, s.HotMaxC, ColorReset)
	} else {
		fmt.Printf("%sHot zones: none found above the threshold%s\n", ColorGreen, ColorReset)
	}
}
