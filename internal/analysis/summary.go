package analysis

import "time"

// Summary is the flat scalar view of a Result, used for report exports
// and the results cache.
type Summary struct {
	Locality   string    `csv:"locality" json:"locality"`
	Start      time.Time `csv:"start" json:"start"`
	End        time.Time `csv:"end" json:"end"`
	SceneCount int       `csv:"scenes" json:"scenes"`

	ThresholdC float64 `csv:"threshold_c" json:"threshold_c"`
	MeanC      float64 `csv:"mean_c" json:"mean_c"`
	MinC       float64 `csv:"min_c" json:"min_c"`
	MaxC       float64 `csv:"max_c" json:"max_c"`
	P5C        float64 `csv:"p5_c" json:"p5_c"`
	P50C       float64 `csv:"p50_c" json:"p50_c"`
	P95C       float64 `csv:"p95_c" json:"p95_c"`

	HotMeanC    float64 `csv:"hot_mean_c" json:"hot_mean_c"`
	HotMaxC     float64 `csv:"hot_max_c" json:"hot_max_c"`
	HotAreaHa   float64 `csv:"hot_area_ha" json:"hot_area_ha"`
	TotalAreaHa float64 `csv:"total_area_ha" json:"total_area_ha"`
	HotPercent  float64 `csv:"hot_percent" json:"hot_percent"`
}

// Summarize flattens the result for a named locality and date range.
func (r *Result) Summarize(locality string, start, end time.Time) Summary {
	return Summary{
		Locality:    locality,
		Start:       start,
		End:         end,
		SceneCount:  r.SceneCount,
		ThresholdC:  r.ThresholdC,
		MeanC:       r.RegionStats.Mean,
		MinC:        r.RegionStats.Min,
		MaxC:        r.RegionStats.Max,
		P5C:         r.RegionStats.Percentiles["p5"],
		P50C:        r.RegionStats.Percentiles["p50"],
		P95C:        r.RegionStats.Percentiles["p95"],
		HotMeanC:    r.HotStats.Mean,
		HotMaxC:     r.HotStats.Max,
		HotAreaHa:   r.HotAreaHa,
		TotalAreaHa: r.TotalAreaHa,
		HotPercent:  r.HotPercent,
	}
}
