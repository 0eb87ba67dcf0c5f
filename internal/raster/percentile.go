package raster

import (
	"fmt"
	"math"
	"sort"
)

// Percentile computes the p-th percentile (0..100) of values with linear
// interpolation between order statistics: rank = p/100 * (n-1), and a
// fractional rank interpolates between the surrounding values. The input
// is not modified.
func Percentile(values []float64, p float64) (float64, error) {
	if len(values) == 0 {
		return 0, fmt.Errorf("percentile of empty population")
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return PercentileSorted(sorted, p)
}

// PercentileSorted is Percentile over an already ascending-sorted slice,
// avoiding the copy and sort. Used by the per-pixel hot loops.
func PercentileSorted(sorted []float64, p float64) (float64, error) {
	n := len(sorted)
	if n == 0 {
		return 0, fmt.Errorf("percentile of empty population")
	}
	if p < 0 || p > 100 {
		return 0, fmt.Errorf("percentile %.2f outside [0, 100]", p)
	}
	if n == 1 {
		return sorted[0], nil
	}
	rank := p / 100 * float64(n-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo], nil
	}
	frac := rank - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac, nil
}
