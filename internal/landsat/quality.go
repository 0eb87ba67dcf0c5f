package landsat

import (
	"github.com/heatwatch/heat-island-api-poc/internal/raster"
)

// QualityConfig selects the quality band, the bit flags that exclude a
// pixel, and the raw range outside which the thermal band is unusable.
type QualityConfig struct {
	QABand      string
	CloudMask   uint16
	ShadowMask  uint16
	ThermalBand string
	ThermalMin  float64
	ThermalMax  float64
}

// DefaultQuality is the Landsat 8 L2 configuration: QA_PIXEL cloud and
// shadow bits, ST_B10 strictly between no-data and saturation.
func DefaultQuality() QualityConfig {
	return QualityConfig{
		QABand:      BandQA,
		CloudMask:   QACloudBit,
		ShadowMask:  QAShadowBit,
		ThermalBand: BandThermal,
		ThermalMin:  ThermalNoData,
		ThermalMax:  ThermalSaturation,
	}
}

// MaskQuality narrows a scene's validity by cloud/shadow flags and thermal
// sensor validity. A pixel stays valid only if it was valid before, its QA
// sample has neither the cloud nor the shadow bit set, and its thermal
// sample lies strictly inside (ThermalMin, ThermalMax). An empty
// ThermalBand skips the thermal check, which is how the true-color
// reference mosaic is masked. The input scene is not modified; band arrays
// are shared with the result.
func MaskQuality(s *raster.Scene, cfg QualityConfig) (*raster.Scene, error) {
	qa, err := s.Band(cfg.QABand)
	if err != nil {
		return nil, err
	}
	var thermal []float64
	if cfg.ThermalBand != "" {
		thermal, err = s.Band(cfg.ThermalBand)
		if err != nil {
			return nil, err
		}
	}

	valid := make([]bool, len(s.Valid))
	for i, wasValid := range s.Valid {
		if !wasValid {
			continue
		}
		bits := uint16(qa[i])
		if bits&cfg.CloudMask != 0 || bits&cfg.ShadowMask != 0 {
			continue
		}
		if thermal != nil && (thermal[i] <= cfg.ThermalMin || thermal[i] >= cfg.ThermalMax) {
			continue
		}
		valid[i] = true
	}
	return s.WithValidity(valid), nil
}
