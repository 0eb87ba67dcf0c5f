// Package landsat carries the Landsat 8 Collection 2 Level-2 band layout
// and radiometric constants used by the heat island pipeline.
package landsat

// Band names as distributed in Collection 2 Level-2 products.
const (
	BandBlue    = "SR_B2"
	BandGreen   = "SR_B3"
	BandRed     = "SR_B4"
	BandThermal = "ST_B10"
	BandQA      = "QA_PIXEL"
)

// QA_PIXEL bit flags.
const (
	QACloudBit  = 1 << 5
	QAShadowBit = 1 << 3
)

// Thermal band validity range: 0 is no-data, 65535 is a saturated 16-bit
// sensor reading.
const (
	ThermalNoData     = 0
	ThermalSaturation = 65535
)

// Radiometric conversion coefficients.
const (
	// ST_B10 digital counts to Kelvin.
	ThermalScale  = 0.00341802
	ThermalOffset = 149.0
	// Kelvin to Celsius.
	CelsiusOffset = 273.15

	// SR_B* digital counts to surface reflectance.
	OpticalScale  = 0.0000275
	OpticalOffset = -0.2
)

// OpticalBands lists the visible bands used for the true-color reference
// composite, in blue/green/red order.
var OpticalBands = []string{BandBlue, BandGreen, BandRed}
