package ui

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/heatwatch/heat-island-api-poc/internal/properties"
)

// Colors for consistent UI
const (
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorReset  = "\033[0m"
)

// PrintWarning displays a warning message with consistent formatting
func PrintWarning(message string) {
	fmt.Printf("%s\nWarning:%s\n", ColorYellow, ColorReset)
	fmt.Printf("%s%s%s\n", ColorYellow, message, ColorReset)
}

// PrintError displays an error message with consistent formatting
func PrintError(message string) {
	fmt.Printf("\n%sError: %s%s\n", ColorRed, message, ColorReset)
}

// PrintSuccess displays a success message with consistent formatting
func PrintSuccess(message string) {
	fmt.Printf("\n%s%s%s\n", ColorGreen, message, ColorReset)
}

// PrintInfo displays an info message with consistent formatting
func PrintInfo(message string) {
	fmt.Printf("%s%s%s", ColorBlue, message, ColorReset)
}

// ReadString reads a string from stdin with trimming
func ReadString(prompt string) string {
	reader := bufio.NewReader(os.Stdin)
	PrintInfo(prompt)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

// ReadInt reads an integer from stdin with validation
func ReadInt(prompt string, min, max int) (int, error) {
	PrintInfo(prompt)
	var input string
	fmt.Scanln(&input)
	input = strings.TrimSpace(input)

	value, err := strconv.Atoi(input)
	if err != nil {
		return 0, fmt.Errorf("invalid number: %s", input)
	}

	if value < min || value > max {
		return 0, fmt.Errorf("value must be between %d and %d", min, max)
	}

	return value, nil
}

// ReadIntDefault reads an integer like ReadInt, but an empty input keeps
// the default value
func ReadIntDefault(prompt string, min, max, def int) (int, error) {
	input := ReadString(fmt.Sprintf("%s [%d]: ", prompt, def))
	if input == "" {
		return def, nil
	}

	value, err := strconv.Atoi(input)
	if err != nil {
		return 0, fmt.Errorf("invalid number: %s", input)
	}

	if value < min || value > max {
		return 0, fmt.Errorf("value must be between %d and %d", min, max)
	}

	return value, nil
}

// ReadDate reads a date from stdin with validation
func ReadDate(prompt string) (time.Time, error) {
	input := ReadString(prompt)
	if input == "today" {
		return time.Now(), nil
	}
	date, err := time.Parse("2006-01-02", input)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %s. Please use YYYY-MM-DD", input)
	}
	return date, nil
}

// ReadDateRange reads a start and end date
func ReadDateRange() (time.Time, time.Time, error) {
	startDate, err := ReadDate("Enter the start date (YYYY-MM-DD): ")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	endDate, err := ReadDate("Enter the end date (YYYY-MM-DD | today): ")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	if endDate.Before(startDate) {
		return time.Time{}, time.Time{}, fmt.Errorf("end date is before start date")
	}
	return startDate, endDate, nil
}

// ReadLocality lists the available localities and reads a choice
func ReadLocality() (string, error) {
	names, err := ListLocalityNames()
	if err != nil {
		return "", err
	}

	fmt.Printf("\n%sAvailable localities:%s\n", ColorGreen, ColorReset)
	for i, name := range names {
		fmt.Printf("%s%d. %s%s\n", ColorGreen, i+1, name, ColorReset)
	}

	choice, err := ReadInt("Enter the number of the locality to analyze: ", 1, len(names))
	if err != nil {
		return "", err
	}
	return names[choice-1], nil
}

// CreateResultDirectory creates the result directory for one locality
func CreateResultDirectory(locality string) (string, error) {
	resultPath := fmt.Sprintf("%s/%s", properties.ResultPath(), locality)
	err := os.MkdirAll(resultPath, os.ModePerm)
	if err != nil {
		return "", fmt.Errorf("failed to create result folder: %v", err)
	}
	return resultPath, nil
}
