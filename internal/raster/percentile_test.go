package raster_test

import (
	"testing"

	"github.com/heatwatch/heat-island-api-poc/internal/raster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentile_LinearInterpolation(t *testing.T) {
	// Ten degrees Celsius values; the 90th percentile falls between the
	// 9th and 10th order statistics.
	values := []float64{30, 31, 32, 33, 34, 35, 36, 37, 38, 39}

	p90, err := raster.Percentile(values, 90)
	require.NoError(t, err)
	assert.InDelta(t, 38.1, p90, 1e-9)
}

func TestPercentile_Median(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"odd count", []float64{30, 10, 20}, 20},
		{"even count interpolates", []float64{1, 2}, 1.5},
		{"single value", []float64{42}, 42},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := raster.Percentile(tt.values, 50)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestPercentile_Extremes(t *testing.T) {
	values := []float64{5, 1, 3}

	p0, err := raster.Percentile(values, 0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, p0)

	p100, err := raster.Percentile(values, 100)
	require.NoError(t, err)
	assert.Equal(t, 5.0, p100)
}

func TestPercentile_InputUntouched(t *testing.T) {
	values := []float64{3, 1, 2}
	_, err := raster.Percentile(values, 50)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 1, 2}, values)
}

func TestPercentile_Errors(t *testing.T) {
	_, err := raster.Percentile(nil, 50)
	assert.Error(t, err)

	_, err = raster.Percentile([]float64{1}, -1)
	assert.Error(t, err)

	_, err = raster.Percentile([]float64{1}, 100.5)
	assert.Error(t, err)
}
