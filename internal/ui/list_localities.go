package ui

import (
	"fmt"

	"github.com/heatwatch/heat-island-api-poc/internal/properties"
	"github.com/heatwatch/heat-island-api-poc/internal/roi"
)

// ListLocalityNames returns the locality names of the configured
// localities file
func ListLocalityNames() ([]string, error) {
	return roi.ListLocalities(properties.LocalitiesPath(), properties.LocalityNameProperty())
}

// ListLocalities handles the UI for viewing the list of available
// localities
func ListLocalities() {
	names, err := ListLocalityNames()
	if err != nil {
		PrintError(fmt.Sprintf("Error reading localities file: %s", err.Error()))
		return
	}

	PrintWarning("To add a new locality, add its polygon as a feature of the localities GeoJSON file.")

	fmt.Printf("\n%sAvailable localities:%s\n", ColorGreen, ColorReset)
	for _, name := range names {
		fmt.Printf("%s- %s%s\n", ColorGreen, name, ColorReset)
	}
}
