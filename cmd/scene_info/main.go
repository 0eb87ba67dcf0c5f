// scene_info prints the structure of every scene file in the scenes
// folder: grid size, geotransform, bands, acquisition date and cloud
// cover. Useful to verify a freshly stacked GeoTIFF before analysis.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/airbusgeo/godal"
	"github.com/heatwatch/heat-island-api-poc/internal/properties"
	"github.com/heatwatch/heat-island-api-poc/internal/scene"
	"github.com/joho/godotenv"
	"github.com/paulmach/orb"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	godal.RegisterAll()

	source := &scene.DirSource{
		Dir:        properties.ScenesPath(),
		Geographic: properties.ScenesAreGeographic(),
	}

	// A query wide enough to match everything on disk.
	query := scene.Query{
		Bound:         orb.Bound{Min: orb.Point{-180, -90}, Max: orb.Point{180, 90}},
		Start:         time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
		End:           time.Now(),
		MaxCloudCover: 101,
	}
	if !source.Geographic {
		query.Bound = orb.Bound{Min: orb.Point{-1e9, -1e9}, Max: orb.Point{1e9, 1e9}}
	}

	scenes, err := source.Scenes(context.Background(), query)
	if err != nil {
		log.Fatalf("Failed to load scenes: %v", err)
	}

	fmt.Printf("=== %d scenes in %s ===\n", len(scenes), source.Dir)
	for _, s := range scenes {
		bound := scene.Footprint(s)
		fmt.Printf("\n%s\n", s.AcquiredAt.Format("2006-01-02"))
		fmt.Printf("  Grid: %dx%d\n", s.Width, s.Height)
		fmt.Printf("  Extent: (%.5f, %.5f) to (%.5f, %.5f)\n", bound.Min[0], bound.Min[1], bound.Max[0], bound.Max[1])
		fmt.Printf("  Cloud cover: %.1f%%\n", s.CloudCover)
		for name := range s.Bands {
			fmt.Printf("  Band: %s\n", name)
		}
	}
}
