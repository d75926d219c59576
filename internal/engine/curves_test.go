package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurve_Rate(t *testing.T) {
	c := DefaultAssumptions().Curves.PowerPerUnit

	tests := []struct {
		name string
		year float64
		want float64
	}{
		{"early anchor", 2025, 1.3},
		{"late anchor", 2040, 1.2},
		{"midpoint", 2032.5, 1.25},
		{"one year in", 2026, 1.3 - 0.1/15},
		{"before early anchor clamps", 2000, 1.3},
		{"after late anchor clamps", 2100, 1.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Rate(tt.year)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestCurve_Rate_NonFinite(t *testing.T) {
	c := DefaultAssumptions().Curves.CostPerUnit

	for _, year := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := c.Rate(year)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidYear)
	}
}

func TestCurve_Cumulative(t *testing.T) {
	c := DefaultAssumptions().Curves.PowerPerUnit

	assert.Equal(t, 1.0, c.Cumulative(2020), "before base year")
	assert.Equal(t, 1.0, c.Cumulative(EfficiencyBaseYear), "at base year")

	// Compounding, not simple multiplication by elapsed years.
	want := 1.0
	for y := 2026; y <= 2030; y++ {
		r, err := c.Rate(float64(y))
		require.NoError(t, err)
		want *= r
	}
	assert.InDelta(t, want, c.Cumulative(2030), 1e-12)
	assert.InDelta(t, 3.4355078131, c.Cumulative(2030), 1e-9)
}

func TestCurve_Cumulative_ComputeDensityHorizon(t *testing.T) {
	c := DefaultAssumptions().Curves.ComputeDensity

	// 1.35×/year decaying to 1.25×/year compounds to roughly 66× by 2040.
	assert.InDelta(t, 66.24, c.Cumulative(2040), 0.01)
	assert.Greater(t, c.Cumulative(2041), c.Cumulative(2040))
}

func TestCurveProvider_Rates_ClampOutsideAnchors(t *testing.T) {
	a := DefaultAssumptions()
	p := NewCurveProvider(a.Curves, a.Years)

	early, err := p.Rates(EarlyAnchorYear)
	require.NoError(t, err)
	late, err := p.Rates(LateAnchorYear)
	require.NoError(t, err)

	for _, year := range []float64{1970, 2000, 2024, 2024.5} {
		got, err := p.Rates(year)
		require.NoError(t, err)
		assert.Equal(t, early, got, "year %v should equal early anchor rates", year)
	}
	for _, year := range []float64{2040.25, 2050, 2200} {
		got, err := p.Rates(year)
		require.NoError(t, err)
		assert.Equal(t, late, got, "year %v should equal late anchor rates", year)
	}
}

func TestCurveProvider_Rates_Monotonic(t *testing.T) {
	a := DefaultAssumptions()
	p := NewCurveProvider(a.Curves, a.Years)

	prev, err := p.Rates(EarlyAnchorYear)
	require.NoError(t, err)
	for y := EarlyAnchorYear + 1; y <= LateAnchorYear; y++ {
		got, err := p.Rates(float64(y))
		require.NoError(t, err)
		assert.Less(t, got.ComputeDensityRate, prev.ComputeDensityRate)
		assert.Less(t, got.PowerPerUnitRate, prev.PowerPerUnitRate)
		assert.Less(t, got.CostPerUnitRate, prev.CostPerUnitRate)
		prev = got
	}
}

func TestCurveProvider_UnsupportedYear(t *testing.T) {
	a := DefaultAssumptions()
	p := NewCurveProvider(a.Curves, a.Years)

	tests := []struct {
		name string
		year float64
	}{
		{"NaN", math.NaN()},
		{"+Inf", math.Inf(1)},
		{"below window", DefaultMinYear - 1},
		{"above window", DefaultMaxYear + 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Rates(tt.year)
			assert.ErrorIs(t, err, ErrInvalidYear)
		})
	}

	_, err := p.Factors(DefaultMaxYear + 1)
	assert.ErrorIs(t, err, ErrInvalidYear)
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name string
		v    float64
		min  float64
		max  float64
		want float64
	}{
		{"value within range", 0.5, 0.0, 1.0, 0.5},
		{"value below min", -0.5, 0.0, 1.0, 0.0},
		{"value above max", 1.5, 0.0, 1.0, 1.0},
		{"year below anchors", 2000, 2025, 2040, 2025},
		{"year above anchors", 2050, 2025, 2040, 2040},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clamp(tt.v, tt.min, tt.max))
		})
	}
}
