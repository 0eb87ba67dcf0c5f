package properties

import (
	"os"
	"path/filepath"
)

func RootPath() string {
	return os.Getenv("ROOT_PATH")
}

// LocalitiesPath is the GeoJSON file of urban area polygons.
func LocalitiesPath() string {
	if p := os.Getenv("LOCALITIES_PATH"); p != "" {
		return p
	}
	return filepath.Join(RootPath(), "data", "localities.geojson")
}

// ScenesPath holds one stacked GeoTIFF per Landsat scene.
func ScenesPath() string {
	if p := os.Getenv("SCENES_PATH"); p != "" {
		return p
	}
	return filepath.Join(RootPath(), "data", "scenes")
}

// ResultPath is where reports and rendered images are written.
func ResultPath() string {
	return filepath.Join(RootPath(), "data", "result")
}

// LocalityNameProperty is the GeoJSON property holding the locality name.
func LocalityNameProperty() string {
	if p := os.Getenv("LOCALITY_NAME_PROPERTY"); p != "" {
		return p
	}
	return "NOMGEO"
}

// ScenesAreGeographic marks the scene CRS as degrees rather than meters.
func ScenesAreGeographic() bool {
	return os.Getenv("SCENES_PROJECTED") == ""
}

func DiscordErrorNotificationUrl() string {
	return os.Getenv("DISCORD_ERROR_NOTIFICATION_URL")
}

func DiscordSuccessNotificationUrl() string {
	return os.Getenv("DISCORD_SUCCESS_NOTIFICATION_URL")
}
