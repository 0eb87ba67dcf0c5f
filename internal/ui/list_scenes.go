package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/heatwatch/heat-island-api-poc/internal/properties"
)

// ListScenes handles the UI for viewing the list of available scene files
func ListScenes() {
	files, err := os.ReadDir(properties.ScenesPath())
	if err != nil {
		PrintError(fmt.Sprintf("Error reading scenes folder: %s", err.Error()))
		return
	}

	PrintWarning("To add a new scene, place its stacked '.tif' file in the scenes folder.\nThe file name must carry the Landsat product id with its acquisition date.")

	fmt.Printf("\n%sAvailable scenes:%s\n", ColorGreen, ColorReset)
	count := 0
	for _, file := range files {
		name := file.Name()
		if strings.HasSuffix(strings.ToLower(name), ".tif") {
			fmt.Printf("%s- %s%s\n", ColorGreen, name, ColorReset)
			count++
		}
	}
	if count == 0 {
		PrintError("No scene files found")
	}
}
